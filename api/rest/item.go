package rest

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/fe8rguide/model"
	"gorm.io/gorm"
)

// unlistedSuffixes mark item variants kept out of the category listings.
var unlistedSuffixes = []string{"_P", "_A", "_D", "_Test"}

func listable(nid string) bool {
	return !slices.ContainsFunc(unlistedSuffixes, func(s string) bool { return strings.HasSuffix(nid, s) })
}

// ItemHandler serves items, arsenals and shops.
type ItemHandler struct {
	db *gorm.DB
}

// NewItemHandler creates an ItemHandler.
func NewItemHandler(db *gorm.DB) *ItemHandler {
	return &ItemHandler{db: db}
}

// Categories lists item categories grouped by type.
// GET /api/items/categories
func (h *ItemHandler) Categories(c *gin.Context) {
	var cats []*model.ItemCategory
	if err := h.db.WithContext(c.Request.Context()).Order("order_key").Find(&cats).Error; err != nil {
		fail(c, err, "item categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groupByType(cats, func(ic *model.ItemCategory) string { return ic.Type })})
}

// List returns the items of one category, grouped by weapon rank or initial.
// Arsenal contents and variant items are left out.
// GET /api/items?category=wtype_Sword&sort=wrank_inc
func (h *ItemHandler) List(c *gin.Context) {
	catNid, sort, ok := listParams(c, "wtype_Sword", SortRankInc, SortRankInc, SortRankDec, SortAlphaInc, SortAlphaDec)
	if !ok {
		return
	}
	db := h.db.WithContext(c.Request.Context())

	var cat model.ItemCategory
	if err := db.First(&cat, "nid = ?", catNid).Error; err != nil {
		fail(c, err, "item category")
		return
	}
	var rows []*model.Item
	err := db.Joins("JOIN item_category_assoc ica ON ica.item_nid = items.nid").
		Where("ica.category_nid = ?", cat.Nid).
		Where("NOT EXISTS (SELECT 1 FROM arsenal_item_assoc aia WHERE aia.item_nid = items.nid)").
		Find(&rows).Error
	if err != nil {
		fail(c, err, "items")
		return
	}
	items := slices.DeleteFunc(rows, func(it *model.Item) bool { return !listable(it.Nid) })

	name := func(it *model.Item) string { return it.Name }
	var groups []Group[*model.Item]
	if strings.HasPrefix(sort, "wrank_") {
		rank := func(it *model.Item) (string, int) { return it.WeaponRank, it.WeaponRankOrderKey }
		groups = groupRank(items, rank, name, descending(sort))
	} else {
		groups = groupAlpha(items, name, descending(sort))
	}
	c.JSON(http.StatusOK, gin.H{"category": cat, "sort": sort, "groups": groups})
}

// Detail returns one item with its categories, statuses, containers, shops
// and arsenals.
// GET /api/items/:nid
func (h *ItemHandler) Detail(c *gin.Context) {
	var item model.Item
	err := h.db.WithContext(c.Request.Context()).
		Preload("Categories", orderByOrderKey).
		Preload("StatusOnEquip").
		Preload("SubItems").
		Preload("SuperItems").
		Preload("Shops").
		Preload("Arsenals").
		First(&item, "nid = ?", c.Param("nid")).Error
	if err != nil {
		fail(c, err, "item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// Arsenals returns the arsenals owned by a unit.
// GET /api/arsenals/:unit
func (h *ItemHandler) Arsenals(c *gin.Context) {
	db := h.db.WithContext(c.Request.Context())
	var owner model.Unit
	if err := db.Select("nid", "name").First(&owner, "nid = ?", c.Param("unit")).Error; err != nil {
		fail(c, err, "unit")
		return
	}
	var arsenals []*model.Arsenal
	if err := db.Preload("Items").Where("owner_nid = ?", owner.Nid).Order("nid").Find(&arsenals).Error; err != nil {
		fail(c, err, "arsenals")
		return
	}
	c.JSON(http.StatusOK, gin.H{"unit": owner.Nid, "arsenals": arsenals})
}

// Shops lists every shop in display order.
// GET /api/shops
func (h *ItemHandler) Shops(c *gin.Context) {
	var shops []*model.Shop
	if err := h.db.WithContext(c.Request.Context()).Order("order_name ASC").Find(&shops).Error; err != nil {
		fail(c, err, "shops")
		return
	}
	c.JSON(http.StatusOK, gin.H{"shops": shops})
}

// Shop returns one shop's stock and the weapon types it carries.
// GET /api/shops/:nid
func (h *ItemHandler) Shop(c *gin.Context) {
	var shop model.Shop
	err := h.db.WithContext(c.Request.Context()).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		First(&shop, "nid = ?", c.Param("nid")).Error
	if err != nil {
		fail(c, err, "shop")
		return
	}
	wtypes := []string{}
	for _, it := range shop.Items {
		if !slices.Contains(wtypes, it.WeaponType) {
			wtypes = append(wtypes, it.WeaponType)
		}
	}
	slices.Sort(wtypes)
	c.JSON(http.StatusOK, gin.H{"shop": shop, "weapon_types": wtypes})
}

func orderByOrderKey(db *gorm.DB) *gorm.DB { return db.Order("order_key") }
