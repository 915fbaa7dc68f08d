package model

import "gorm.io/datatypes"

// StatTable maps the ten stat abbreviations (HP, STR, MAG, ...) to values.
type StatTable = datatypes.JSONType[map[string]int]

// NewStatTable wraps m for storage; nil becomes an empty table.
func NewStatTable(m map[string]int) StatTable {
	if m == nil {
		m = map[string]int{}
	}
	return datatypes.NewJSONType(m)
}

// Weapon is a weapon proficiency type.
type Weapon struct {
	Nid       string `gorm:"primaryKey;size:191" json:"nid"`
	Name      string `gorm:"size:191;not null" json:"name"`
	IconClass string `gorm:"size:255" json:"icon_class"`
}

// Class is a playable class.
type Class struct {
	Nid           string           `gorm:"primaryKey;size:191" json:"nid"`
	Name          string           `gorm:"size:191;not null" json:"name"`
	Desc          string           `gorm:"type:text" json:"desc"`
	Tier          int              `json:"tier"`
	MaxLevel      int              `json:"max_level"`
	AltName       string           `gorm:"size:191" json:"alt_name"`
	Bases         StatTable        `json:"bases"`
	Growths       StatTable        `json:"growths"`
	GrowthBonus   StatTable        `json:"growth_bonus"`
	MaxStats      StatTable        `json:"max_stats"`
	Promotion     StatTable        `json:"promotion"`
	MapSpriteNid  string           `gorm:"size:191" json:"map_sprite_nid"`
	Categories    []*ClassCategory `gorm:"many2many:class_category_assoc;joinForeignKey:ClassNid;joinReferences:CategoryNid" json:"categories,omitempty"`
	Weapons       []*Weapon        `gorm:"many2many:class_weapon_assoc;joinForeignKey:ClassNid;joinReferences:WeaponNid" json:"weapons,omitempty"`
	TurnsInto     []*Class         `gorm:"many2many:class_turns_into_assoc;joinForeignKey:BaseClassNid;joinReferences:TargetClassNid" json:"turns_into,omitempty"`
	PromotesFrom  []*Class         `gorm:"many2many:class_turns_into_assoc;joinForeignKey:TargetClassNid;joinReferences:BaseClassNid" json:"promotes_from,omitempty"`
	LearnedSkills []*ClassSkill    `gorm:"foreignKey:ClassNid;references:Nid" json:"learned_skills,omitempty"`
}

// ClassCategory groups classes by tier, class type and weapon.
type ClassCategory struct {
	Nid      string `gorm:"primaryKey;size:191" json:"nid"`
	Name     string `gorm:"size:191;not null" json:"name"`
	Type     string `gorm:"size:64;index" json:"type"`
	OrderKey int    `json:"order_key"`
}

// ClassSkill is a skill a class learns at Level.
type ClassSkill struct {
	ClassNid string `gorm:"primaryKey;size:191" json:"class_nid"`
	SkillNid string `gorm:"primaryKey;size:191" json:"skill_nid"`
	Level    int    `json:"level"`
	Skill    *Skill `gorm:"foreignKey:SkillNid;references:Nid" json:"skill,omitempty"`
}

func (ClassSkill) TableName() string { return "class_skill_assoc" }
