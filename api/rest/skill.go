package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/fe8rguide/model"
	"gorm.io/gorm"
)

// featSourcePrefix selects the Feat tiers among the skill source categories.
const featSourcePrefix = "MyUnit/T"

// SkillRef is a skill as listed in the index.
type SkillRef struct {
	Nid  string `json:"nid"`
	Name string `json:"name"`
}

// FeatTier is one Feat source category and its skills.
type FeatTier struct {
	Nid    string     `json:"nid"`
	Name   string     `json:"name"`
	Skills []SkillRef `json:"skills"`
}

// SkillHandler serves skills.
type SkillHandler struct {
	db *gorm.DB
}

// NewSkillHandler creates a SkillHandler.
func NewSkillHandler(db *gorm.DB) *SkillHandler {
	return &SkillHandler{db: db}
}

// Index lists the Feat tiers with their skills ordered by name.
// GET /api/skills
func (h *SkillHandler) Index(c *gin.Context) {
	db := h.db.WithContext(c.Request.Context())
	var cats []*model.SkillCategory
	if err := db.Where("nid LIKE ?", featSourcePrefix+"%").Order("nid").Find(&cats).Error; err != nil {
		fail(c, err, "skill categories")
		return
	}
	tiers := make([]FeatTier, 0, len(cats))
	for _, cat := range cats {
		skills := []SkillRef{}
		err := db.Model(&model.Skill{}).
			Select("nid", "name").
			Where("source_category_nid = ?", cat.Nid).
			Order("name").
			Scan(&skills).Error
		if err != nil {
			fail(c, err, "skills")
			return
		}
		tiers = append(tiers, FeatTier{Nid: cat.Nid, Name: cat.Name, Skills: skills})
	}
	c.JSON(http.StatusOK, gin.H{"tiers": tiers})
}

// Detail returns one skill with its source and Feat categories.
// GET /api/skills/:nid
func (h *SkillHandler) Detail(c *gin.Context) {
	var skill model.Skill
	err := h.db.WithContext(c.Request.Context()).
		Preload("SourceCategory").
		Preload("Categories", orderByOrderKey).
		First(&skill, "nid = ?", c.Param("nid")).Error
	if err != nil {
		fail(c, err, "skill")
		return
	}
	c.JSON(http.StatusOK, gin.H{"skill": skill})
}
