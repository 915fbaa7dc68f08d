package model

// Join rows for the many-to-many tables. The importer inserts these directly
// so duplicate pairs can be ignored per row.

type ItemCategoryLink struct {
	ItemNid     string `gorm:"primaryKey;size:191"`
	CategoryNid string `gorm:"primaryKey;size:191"`
}

func (ItemCategoryLink) TableName() string { return "item_category_assoc" }

type SkillCategoryLink struct {
	SkillNid    string `gorm:"primaryKey;size:191"`
	CategoryNid string `gorm:"primaryKey;size:191"`
}

func (SkillCategoryLink) TableName() string { return "skill_category_assoc" }

type ItemSkillLink struct {
	ItemNid  string `gorm:"primaryKey;size:191"`
	SkillNid string `gorm:"primaryKey;size:191"`
}

func (ItemSkillLink) TableName() string { return "item_skill_assoc" }

type SubItemLink struct {
	SuperItemNid string `gorm:"primaryKey;size:191"`
	SubItemNid   string `gorm:"primaryKey;size:191"`
}

func (SubItemLink) TableName() string { return "sub_item_assoc" }

type ShopItemLink struct {
	ShopNid string `gorm:"primaryKey;size:191"`
	ItemNid string `gorm:"primaryKey;size:191"`
}

func (ShopItemLink) TableName() string { return "shop_item_assoc" }

type ArsenalItemLink struct {
	ArsenalNid string `gorm:"primaryKey;size:191"`
	ItemNid    string `gorm:"primaryKey;size:191"`
}

func (ArsenalItemLink) TableName() string { return "arsenal_item_assoc" }

type ClassCategoryLink struct {
	ClassNid    string `gorm:"primaryKey;size:191"`
	CategoryNid string `gorm:"primaryKey;size:191"`
}

func (ClassCategoryLink) TableName() string { return "class_category_assoc" }

type ClassWeaponLink struct {
	ClassNid  string `gorm:"primaryKey;size:191"`
	WeaponNid string `gorm:"primaryKey;size:191"`
}

func (ClassWeaponLink) TableName() string { return "class_weapon_assoc" }

type ClassPromotionLink struct {
	BaseClassNid   string `gorm:"primaryKey;size:191"`
	TargetClassNid string `gorm:"primaryKey;size:191"`
}

func (ClassPromotionLink) TableName() string { return "class_turns_into_assoc" }

type UnitCategoryLink struct {
	UnitNid     string `gorm:"primaryKey;size:191"`
	CategoryNid string `gorm:"primaryKey;size:191"`
}

func (UnitCategoryLink) TableName() string { return "unit_category_assoc" }

type UnitItemLink struct {
	UnitNid string `gorm:"primaryKey;size:191"`
	ItemNid string `gorm:"primaryKey;size:191"`
}

func (UnitItemLink) TableName() string { return "unit_item_assoc" }

type UnitSupportLink struct {
	UnitNid    string `gorm:"primaryKey;size:191"`
	SupportNid string `gorm:"primaryKey;size:191"`
}

func (UnitSupportLink) TableName() string { return "unit_support_assoc" }
