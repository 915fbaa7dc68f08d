package model

// Skill is an ability or status effect. Desc holds rendered HTML.
type Skill struct {
	Nid               string           `gorm:"primaryKey;size:191" json:"nid"`
	Name              string           `gorm:"size:191;not null" json:"name"`
	Desc              string           `gorm:"type:text" json:"desc"`
	IconClass         string           `gorm:"size:255" json:"icon_class"`
	IsHidden          bool             `gorm:"default:false" json:"is_hidden"`
	SourceCategoryNid string           `gorm:"size:191;index" json:"source_category_nid"`
	SourceCategory    *SkillCategory   `gorm:"foreignKey:SourceCategoryNid;references:Nid" json:"source_category,omitempty"`
	Categories        []*SkillCategory `gorm:"many2many:skill_category_assoc;joinForeignKey:SkillNid;joinReferences:CategoryNid" json:"categories,omitempty"`
}

// DisplayName and Description let skills go through name deduplication.
func (s *Skill) DisplayName() string { return s.Name }
func (s *Skill) Description() string { return s.Desc }

// SkillCategory groups skills: source paths, feat tiers and feat types.
type SkillCategory struct {
	Nid      string   `gorm:"primaryKey;size:191" json:"nid"`
	Name     string   `gorm:"size:191;not null" json:"name"`
	Type     string   `gorm:"size:64;index" json:"type"`
	OrderKey int      `json:"order_key"`
	Skills   []*Skill `gorm:"many2many:skill_category_assoc;joinForeignKey:CategoryNid;joinReferences:SkillNid" json:"skills,omitempty"`
}
