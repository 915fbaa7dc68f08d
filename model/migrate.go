package model

import (
	"fmt"

	"gorm.io/gorm"
)

// gameModels are the tables rebuilt by every data refresh. Join tables follow
// their entities.
var gameModels = []interface{}{
	&SkillCategory{},
	&Skill{},
	&ItemCategory{},
	&Item{},
	&Shop{},
	&Weapon{},
	&ClassCategory{},
	&Class{},
	&ClassSkill{},
	&Affinity{},
	&UnitCategory{},
	&Unit{},
	&UnitSkill{},
	&Arsenal{},
	&SkillCategoryLink{},
	&ItemCategoryLink{},
	&ItemSkillLink{},
	&SubItemLink{},
	&ShopItemLink{},
	&ArsenalItemLink{},
	&ClassCategoryLink{},
	&ClassWeaponLink{},
	&ClassPromotionLink{},
	&UnitCategoryLink{},
	&UnitItemLink{},
	&UnitSupportLink{},
}

// refreshModels keep the refresh history and survive Reset.
var refreshModels = []interface{}{
	&RefreshRun{},
	&RefreshSkip{},
}

// AutoMigrate creates or updates all tables in the given database.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(gameModels...); err != nil {
		return err
	}
	return db.AutoMigrate(refreshModels...)
}

// Reset drops every game table and creates it again empty.
func Reset(db *gorm.DB) error {
	m := db.Migrator()
	for i := len(gameModels) - 1; i >= 0; i-- {
		if err := m.DropTable(gameModels[i]); err != nil {
			return fmt.Errorf("model: drop %T: %w", gameModels[i], err)
		}
	}
	return AutoMigrate(db)
}
