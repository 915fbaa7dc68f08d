package rest

import (
	"errors"
	"math/rand/v2"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/fe8rguide/game/randomrun"
	"github.com/kasuganosora/fe8rguide/model"
	"gorm.io/gorm"
)

// RandomRunHandler draws random parties from the stored units.
type RandomRunHandler struct {
	db  *gorm.DB
	rng func() *rand.Rand
}

// NewRandomRunHandler creates a RandomRunHandler. A nil rng source gives
// every request a freshly seeded generator.
func NewRandomRunHandler(db *gorm.DB, rng func() *rand.Rand) *RandomRunHandler {
	if rng == nil {
		rng = func() *rand.Rand { return nil }
	}
	return &RandomRunHandler{db: db, rng: rng}
}

// Generate picks a party and a promotion path for each member.
// POST /api/random-run
func (h *RandomRunHandler) Generate(c *gin.Context) {
	var opts randomrun.Options
	if err := c.ShouldBindJSON(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	db := h.db.WithContext(c.Request.Context())
	pool, err := candidatePool(db)
	if err != nil {
		fail(c, err, "units")
		return
	}
	promos, err := promotionTable(db)
	if err != nil {
		fail(c, err, "promotions")
		return
	}

	gen := randomrun.NewGenerator(h.rng(), func(nid string) []string { return promos[nid] })
	picks, err := gen.Generate(pool, opts)
	switch {
	case errors.Is(err, randomrun.ErrUnknownLord):
		c.JSON(http.StatusNotFound, gin.H{"error": "lord not found"})
		return
	case errors.Is(err, randomrun.ErrInvalidOptions):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		fail(c, err, "random run")
		return
	}
	c.JSON(http.StatusOK, gin.H{"units": picks})
}

// candidatePool loads every unit with its bucket and base class categories.
func candidatePool(db *gorm.DB) ([]randomrun.Candidate, error) {
	var units []*model.Unit
	if err := db.Preload("Categories").Preload("BaseClass.Categories").Order("nid").Find(&units).Error; err != nil {
		return nil, err
	}
	pool := make([]randomrun.Candidate, 0, len(units))
	for _, u := range units {
		cand := randomrun.Candidate{Nid: u.Nid, Name: u.Name}
		if len(u.Categories) > 0 {
			cand.Category = u.Categories[0].Nid
		}
		if u.BaseClass != nil {
			cand.ClassNid = u.BaseClass.Nid
			cand.ClassName = u.BaseClass.Name
			for _, cc := range u.BaseClass.Categories {
				cand.ClassCategories = append(cand.ClassCategories, cc.Nid)
			}
		}
		pool = append(pool, cand)
	}
	return pool, nil
}
