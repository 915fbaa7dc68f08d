package classify

import (
	"slices"
	"strings"

	"github.com/kasuganosora/fe8rguide/game/textstyle"
	"github.com/kasuganosora/fe8rguide/resource"
)

const (
	CatAccessory  = "wtype_Accessory"
	CatHeldItem   = "wtype_HeldItem"
	CatConsumable = "wtype_Consumable"
	CatDagger     = "wstype_Dagger"

	// MiscWeaponType labels items without a weapon_type component.
	MiscWeaponType = "Misc"
	// PrfRank is assigned to personal weapons that declare no rank.
	PrfRank = "Prf"
)

// ItemCategoryDefaults is the fixed item taxonomy seeded at the start of
// every refresh, in display order.
func ItemCategoryDefaults() []Category {
	return []Category{
		{Nid: CatAccessory, Type: "Item Type", Name: "Accessories"},
		{Nid: CatHeldItem, Type: "Item Type", Name: "Held Items"},
		{Nid: CatConsumable, Type: "Item Type", Name: "Consumables"},
		{Nid: "wtype_Sword", Type: "Item Type", Name: "Swords"},
		{Nid: "wtype_Axe", Type: "Item Type", Name: "Axes"},
		{Nid: "wtype_Lance", Type: "Item Type", Name: "Lances"},
		{Nid: "wtype_Bow", Type: "Item Type", Name: "Bows"},
		{Nid: "wtype_Staff", Type: "Item Type", Name: "Staves"},
		{Nid: "wtype_Anima", Type: "Item Type", Name: "Anima Tomes"},
		{Nid: "wtype_Dark", Type: "Item Type", Name: "Dark Tomes"},
		{Nid: "wtype_Light", Type: "Item Type", Name: "Light Tomes"},
		{Nid: CatDagger, Type: "Weapon Subtype", Name: "Daggers"},
		{Nid: "wstype_Blade", Type: "Weapon Subtype", Name: "Blades"},
		{Nid: "wstype_Warhammer", Type: "Weapon Subtype", Name: "Warhammers"},
		{Nid: "wstype_Greatlance", Type: "Weapon Subtype", Name: "Greatlances"},
		{Nid: "etype_Fire", Type: "Element", Name: "Fire"},
		{Nid: "etype_Wind", Type: "Element", Name: "Wind"},
		{Nid: "etype_Water", Type: "Element", Name: "Water"},
		{Nid: "etype_Thunder", Type: "Element", Name: "Thunder"},
		{Nid: "etype_Dark", Type: "Element", Name: "Dark"},
		{Nid: "etype_Light", Type: "Element", Name: "Light"},
		{Nid: "etype_Ice", Type: "Element", Name: "Ice"},
		{Nid: "etype_Earth", Type: "Element", Name: "Earth"},
	}
}

var weaponSubtypes = []string{"Dagger", "Blade", "Warhammer", "Greatlance"}

// ItemCategories returns the category nids an item belongs to. At most one
// weapon-type category is chosen, in priority order; element and subtype
// categories are added independently. Only registered nids are returned.
// arsenalContainer marks items that are personal weapon containers, which
// never count as consumables.
func ItemCategories(c resource.Components, arsenalContainer bool, reg *Registry) []string {
	var out []string
	add := func(nid string) {
		if reg.Has(nid) && !slices.Contains(out, nid) {
			out = append(out, nid)
		}
	}

	switch wtype := "wtype_" + c.Text("weapon_type"); {
	case reg.Has(wtype):
		add(wtype)
	case c.Bool("equippable_accessory"):
		add(CatAccessory)
	case c.Text("status_on_hold") != "" || len(c.List("multi_status_on_hold")) > 0:
		add(CatHeldItem)
	case c.Bool("usable") || c.Has("uses") || c.Has("c_uses"):
		add(CatConsumable)
	case !arsenalContainer && len(c.List("multi_item")) > 0:
		add(CatConsumable)
	}

	for _, tag := range c.List("item_tags") {
		if slices.Contains(weaponSubtypes, tag) {
			add("wstype_" + tag)
		} else {
			add("etype_" + tag)
		}
	}
	// the engine marks daggers through a status rather than a tag
	if strings.Contains(c.Text("status_on_equip"), "Quick_Knife") {
		add(CatDagger)
	}
	return out
}

var rankOrder = map[string]int{
	"":    -1,
	"Prf": 0,
	"E":   1,
	"D":   2,
	"C":   3,
	"B":   4,
	"A":   5,
	"S":   6,
	"SS":  7,
	"SSS": 8,
	"X":   9,
}

// WeaponRankOrderKey maps a weapon rank onto its display order. Unknown ranks
// sort after X.
func WeaponRankOrderKey(rank string) int {
	if k, ok := rankOrder[rank]; ok {
		return k
	}
	return 10
}

// WeaponType returns the item's weapon type, or Misc.
func WeaponType(c resource.Components) string {
	if wt := c.Text("weapon_type"); wt != "" {
		return wt
	}
	return MiscWeaponType
}

// WeaponRank returns the declared rank. Personal weapons of a real type
// without a rank are reported as Prf.
func WeaponRank(c resource.Components, weaponType string) string {
	rank := c.Text("weapon_rank")
	if rank == "" && weaponType != MiscWeaponType && len(c.List("prf_unit")) > 0 {
		return PrfRank
	}
	return rank
}

// Target returns the title-cased target mode from the first target_*
// component, e.g. target_enemy → "Enemy".
func Target(c resource.Components) string {
	for _, name := range c.Names() {
		if !strings.HasPrefix(name, "target") {
			continue
		}
		parts := strings.Split(name, "_")
		if len(parts) < 2 {
			return ""
		}
		return textstyle.Title(parts[1])
	}
	return ""
}
