package model

// Item is a weapon, consumable or accessory. Desc holds rendered HTML.
type Item struct {
	Nid                string          `gorm:"primaryKey;size:191" json:"nid"`
	Name               string          `gorm:"size:191;not null" json:"name"`
	Desc               string          `gorm:"type:text" json:"desc"`
	Value              int             `json:"value"`
	WeaponRank         string          `gorm:"size:16" json:"weapon_rank"`
	WeaponRankOrderKey int             `gorm:"index" json:"weapon_rank_order_key"`
	WeaponType         string          `gorm:"size:64" json:"weapon_type"`
	Target             string          `gorm:"size:64" json:"target"`
	Damage             int             `json:"damage"`
	Weight             int             `json:"weight"`
	Crit               int             `json:"crit"`
	Hit                int             `json:"hit"`
	MinRange           int             `json:"min_range"`
	MaxRange           int             `json:"max_range"`
	IconClass          string          `gorm:"size:255" json:"icon_class"`
	Categories         []*ItemCategory `gorm:"many2many:item_category_assoc;joinForeignKey:ItemNid;joinReferences:CategoryNid" json:"categories,omitempty"`
	StatusOnEquip      []*Skill        `gorm:"many2many:item_skill_assoc;joinForeignKey:ItemNid;joinReferences:SkillNid" json:"status_on_equip,omitempty"`
	SubItems           []*Item         `gorm:"many2many:sub_item_assoc;joinForeignKey:SuperItemNid;joinReferences:SubItemNid" json:"sub_items,omitempty"`
	SuperItems         []*Item         `gorm:"many2many:sub_item_assoc;joinForeignKey:SubItemNid;joinReferences:SuperItemNid" json:"super_items,omitempty"`
	Shops              []*Shop         `gorm:"many2many:shop_item_assoc;joinForeignKey:ItemNid;joinReferences:ShopNid" json:"shops,omitempty"`
	Arsenals           []*Arsenal      `gorm:"many2many:arsenal_item_assoc;joinForeignKey:ItemNid;joinReferences:ArsenalNid" json:"arsenals,omitempty"`
}

// ItemCategory groups items by weapon type, weapon subtype and element.
type ItemCategory struct {
	Nid      string `gorm:"primaryKey;size:191" json:"nid"`
	Name     string `gorm:"size:191;not null" json:"name"`
	Type     string `gorm:"size:64;index" json:"type"`
	OrderKey int    `json:"order_key"`
}

// Shop is a vendor inventory merged from shop events with identical item sets.
type Shop struct {
	Nid       string  `gorm:"primaryKey;size:191" json:"nid"`
	Name      string  `gorm:"size:255;not null" json:"name"`
	Type      string  `gorm:"size:64" json:"type"`
	OrderName string  `gorm:"size:255;index" json:"order_name"`
	AbbrName  string  `gorm:"size:191" json:"abbr_name"`
	Items     []*Item `gorm:"many2many:shop_item_assoc;joinForeignKey:ShopNid;joinReferences:ItemNid" json:"items,omitempty"`
}

// Arsenal is a unit's personal weapon collection.
type Arsenal struct {
	Nid       string  `gorm:"primaryKey;size:191" json:"nid"`
	Name      string  `gorm:"size:191;not null" json:"name"`
	Desc      string  `gorm:"type:text" json:"desc"`
	IconClass string  `gorm:"size:255" json:"icon_class"`
	OwnerNid  *string `gorm:"size:191;index" json:"owner_nid"`
	Owner     *Unit   `gorm:"foreignKey:OwnerNid;references:Nid" json:"owner,omitempty"`
	Items     []*Item `gorm:"many2many:arsenal_item_assoc;joinForeignKey:ArsenalNid;joinReferences:ItemNid" json:"items,omitempty"`
}
