package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/fe8rguide/game/promo"
	"github.com/kasuganosora/fe8rguide/model"
	"gorm.io/gorm"
)

// ClassHandler serves classes.
type ClassHandler struct {
	db *gorm.DB
}

// NewClassHandler creates a ClassHandler.
func NewClassHandler(db *gorm.DB) *ClassHandler {
	return &ClassHandler{db: db}
}

// Categories lists class categories grouped by type.
// GET /api/classes/categories
func (h *ClassHandler) Categories(c *gin.Context) {
	var cats []*model.ClassCategory
	if err := h.db.WithContext(c.Request.Context()).Order("order_key").Find(&cats).Error; err != nil {
		fail(c, err, "class categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groupByType(cats, func(cc *model.ClassCategory) string { return cc.Type })})
}

// List returns the classes of one category grouped by initial.
// GET /api/classes?category=class_tier_t1&sort=alpha_inc
func (h *ClassHandler) List(c *gin.Context) {
	catNid, sort, ok := listParams(c, "class_tier_t1", SortAlphaInc, SortAlphaInc, SortAlphaDec)
	if !ok {
		return
	}
	db := h.db.WithContext(c.Request.Context())

	var cat model.ClassCategory
	if err := db.First(&cat, "nid = ?", catNid).Error; err != nil {
		fail(c, err, "class category")
		return
	}
	var classes []*model.Class
	err := db.Joins("JOIN class_category_assoc cca ON cca.class_nid = classes.nid").
		Where("cca.category_nid = ?", cat.Nid).
		Find(&classes).Error
	if err != nil {
		fail(c, err, "classes")
		return
	}
	groups := groupAlpha(classes, func(cl *model.Class) string { return cl.Name }, descending(sort))
	c.JSON(http.StatusOK, gin.H{"category": cat, "sort": sort, "groups": groups})
}

// Detail returns one class with its categories, weapons, promotions and
// learned skills.
// GET /api/classes/:nid
func (h *ClassHandler) Detail(c *gin.Context) {
	var class model.Class
	err := h.db.WithContext(c.Request.Context()).
		Preload("Categories", orderByOrderKey).
		Preload("Weapons").
		Preload("TurnsInto").
		Preload("PromotesFrom").
		Preload("LearnedSkills", func(db *gorm.DB) *gorm.DB { return db.Order("level, skill_nid") }).
		Preload("LearnedSkills.Skill").
		First(&class, "nid = ?", c.Param("nid")).Error
	if err != nil {
		fail(c, err, "class")
		return
	}
	c.JSON(http.StatusOK, gin.H{"class": class})
}

// Promotions returns the classes a class promotes into and from.
// GET /api/classes/:nid/promotions
func (h *ClassHandler) Promotions(c *gin.Context) {
	db := h.db.WithContext(c.Request.Context())
	var class model.Class
	if err := db.Select("nid").First(&class, "nid = ?", c.Param("nid")).Error; err != nil {
		fail(c, err, "class")
		return
	}
	entry := promo.Entry{TurnsInto: []string{}, TurnsFrom: []string{}}
	var links []model.ClassPromotionLink
	err := db.Where("base_class_nid = ? OR target_class_nid = ?", class.Nid, class.Nid).
		Order("base_class_nid, target_class_nid").
		Find(&links).Error
	if err != nil {
		fail(c, err, "promotions")
		return
	}
	for _, l := range links {
		if l.BaseClassNid == class.Nid {
			entry.TurnsInto = append(entry.TurnsInto, l.TargetClassNid)
		}
		if l.TargetClassNid == class.Nid {
			entry.TurnsFrom = append(entry.TurnsFrom, l.BaseClassNid)
		}
	}
	c.JSON(http.StatusOK, gin.H{"class": class.Nid, "promotions": entry})
}

// promotionTable loads every stored promotion edge keyed by base class.
func promotionTable(db *gorm.DB) (map[string][]string, error) {
	var links []model.ClassPromotionLink
	if err := db.Order("base_class_nid, target_class_nid").Find(&links).Error; err != nil {
		return nil, err
	}
	out := make(map[string][]string)
	for _, l := range links {
		out[l.BaseClassNid] = append(out[l.BaseClassNid], l.TargetClassNid)
	}
	return out, nil
}
