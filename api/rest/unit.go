package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/fe8rguide/game/classify"
	"github.com/kasuganosora/fe8rguide/model"
	"gorm.io/gorm"
)

// UnitHandler serves units.
type UnitHandler struct {
	db *gorm.DB
}

// NewUnitHandler creates a UnitHandler.
func NewUnitHandler(db *gorm.DB) *UnitHandler {
	return &UnitHandler{db: db}
}

// Categories lists the unit buckets grouped by type.
// GET /api/units/categories
func (h *UnitHandler) Categories(c *gin.Context) {
	var cats []*model.UnitCategory
	if err := h.db.WithContext(c.Request.Context()).Order("order_key").Find(&cats).Error; err != nil {
		fail(c, err, "unit categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groupByType(cats, func(uc *model.UnitCategory) string { return uc.Type })})
}

// List returns the units of one bucket grouped by initial.
// GET /api/units?category=Vanilla&sort=alpha_inc
func (h *UnitHandler) List(c *gin.Context) {
	catNid, sort, ok := listParams(c, classify.UnitVanilla, SortAlphaInc, SortAlphaInc, SortAlphaDec)
	if !ok {
		return
	}
	db := h.db.WithContext(c.Request.Context())

	var cat model.UnitCategory
	if err := db.First(&cat, "nid = ?", catNid).Error; err != nil {
		fail(c, err, "unit category")
		return
	}
	var units []*model.Unit
	err := db.Joins("JOIN unit_category_assoc uca ON uca.unit_nid = units.nid").
		Where("uca.category_nid = ?", cat.Nid).
		Find(&units).Error
	if err != nil {
		fail(c, err, "units")
		return
	}
	groups := groupAlpha(units, func(u *model.Unit) string { return u.Name }, descending(sort))
	c.JSON(http.StatusOK, gin.H{"category": cat, "sort": sort, "groups": groups})
}

func preloadUnitSheet(db *gorm.DB) *gorm.DB {
	return db.
		Preload("BaseClass").
		Preload("Affinity").
		Preload("Categories").
		Preload("StartingItems").
		Preload("Supports", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		Preload("LearnedSkills", func(db *gorm.DB) *gorm.DB { return db.Order("level, skill_nid") }).
		Preload("LearnedSkills.Skill").
		Preload("Arsenals.Items")
}

// Detail returns one unit with everything its sheet shows.
// GET /api/units/:nid
func (h *UnitHandler) Detail(c *gin.Context) {
	var unit model.Unit
	if err := preloadUnitSheet(h.db.WithContext(c.Request.Context())).First(&unit, "nid = ?", c.Param("nid")).Error; err != nil {
		fail(c, err, "unit")
		return
	}
	c.JSON(http.StatusOK, gin.H{"unit": unit})
}

// ClassStats is a unit's numbers in a given class.
type ClassStats struct {
	Growths  map[string]int `json:"growths"`
	MaxStats map[string]int `json:"max_stats"`
}

// classStats adds the class growth bonus to the unit's growths and the
// unit's cap modifiers to the class caps.
func classStats(u *model.Unit, cl *model.Class) ClassStats {
	return ClassStats{
		Growths:  sumStats(u.Growths.Data(), cl.GrowthBonus.Data()),
		MaxStats: sumStats(cl.MaxStats.Data(), u.StatCapModifiers.Data()),
	}
}

func sumStats(a, b map[string]int) map[string]int {
	out := make(map[string]int, len(a)+len(b))
	for k, v := range a {
		out[k] += v
	}
	for k, v := range b {
		out[k] += v
	}
	return out
}

// ClassSheet returns a unit seen in one class.
// GET /api/units/:nid/classes/:class
func (h *UnitHandler) ClassSheet(c *gin.Context) {
	db := h.db.WithContext(c.Request.Context())
	var unit model.Unit
	if err := preloadUnitSheet(db).First(&unit, "nid = ?", c.Param("nid")).Error; err != nil {
		fail(c, err, "unit")
		return
	}
	var class model.Class
	err := db.Preload("Weapons").
		Preload("LearnedSkills", func(db *gorm.DB) *gorm.DB { return db.Order("level, skill_nid") }).
		Preload("LearnedSkills.Skill").
		First(&class, "nid = ?", c.Param("class")).Error
	if err != nil {
		fail(c, err, "class")
		return
	}
	c.JSON(http.StatusOK, gin.H{"unit": unit, "class": class, "stats": classStats(&unit, &class)})
}
