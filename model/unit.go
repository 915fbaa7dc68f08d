package model

import "gorm.io/datatypes"

// Affinity grants support bonuses; Bonus is the ranked bonus table as-is.
type Affinity struct {
	Nid       string         `gorm:"primaryKey;size:191" json:"nid"`
	Name      string         `gorm:"size:191;not null" json:"name"`
	Desc      string         `gorm:"type:text" json:"desc"`
	Bonus     datatypes.JSON `json:"bonus"`
	IconClass string         `gorm:"size:255" json:"icon_class"`
}

// Unit is a playable or recruitable character.
type Unit struct {
	Nid              string          `gorm:"primaryKey;size:191" json:"nid"`
	Name             string          `gorm:"size:191;not null" json:"name"`
	Desc             string          `gorm:"type:text" json:"desc"`
	Level            int             `json:"level"`
	PortraitNid      string          `gorm:"size:191" json:"portrait_nid"`
	BaseClassNid     *string         `gorm:"size:191;index" json:"base_class_nid"`
	BaseClass        *Class          `gorm:"foreignKey:BaseClassNid;references:Nid" json:"base_class,omitempty"`
	AffinityNid      *string         `gorm:"size:191" json:"affinity_nid"`
	Affinity         *Affinity       `gorm:"foreignKey:AffinityNid;references:Nid" json:"affinity,omitempty"`
	Bases            StatTable       `json:"bases"`
	Growths          StatTable       `json:"growths"`
	StatCapModifiers StatTable       `json:"stat_cap_modifiers"`
	Categories       []*UnitCategory `gorm:"many2many:unit_category_assoc;joinForeignKey:UnitNid;joinReferences:CategoryNid" json:"categories,omitempty"`
	StartingItems    []*Item         `gorm:"many2many:unit_item_assoc;joinForeignKey:UnitNid;joinReferences:ItemNid" json:"starting_items,omitempty"`
	Supports         []*Unit         `gorm:"many2many:unit_support_assoc;joinForeignKey:UnitNid;joinReferences:SupportNid" json:"supports,omitempty"`
	LearnedSkills    []*UnitSkill    `gorm:"foreignKey:UnitNid;references:Nid" json:"learned_skills,omitempty"`
	Arsenals         []*Arsenal      `gorm:"foreignKey:OwnerNid;references:Nid" json:"arsenals,omitempty"`
}

// UnitCategory is one of the unit buckets (Vanilla, Monsters, Dragon's Gate).
type UnitCategory struct {
	Nid      string `gorm:"primaryKey;size:191" json:"nid"`
	Name     string `gorm:"size:191;not null" json:"name"`
	Type     string `gorm:"size:64" json:"type"`
	OrderKey int    `json:"order_key"`
}

// UnitSkill is a skill a unit learns at Level.
type UnitSkill struct {
	UnitNid  string `gorm:"primaryKey;size:191" json:"unit_nid"`
	SkillNid string `gorm:"primaryKey;size:191" json:"skill_nid"`
	Level    int    `json:"level"`
	Skill    *Skill `gorm:"foreignKey:SkillNid;references:Nid" json:"skill,omitempty"`
}

func (UnitSkill) TableName() string { return "unit_skill_assoc" }
