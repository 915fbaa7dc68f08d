package importer

import (
	"fmt"
	"slices"
	"sort"

	"github.com/kasuganosora/fe8rguide/game/arsenal"
	"github.com/kasuganosora/fe8rguide/game/classify"
	"github.com/kasuganosora/fe8rguide/game/crossref"
	"github.com/kasuganosora/fe8rguide/game/shop"
	"github.com/kasuganosora/fe8rguide/game/textstyle"
	"github.com/kasuganosora/fe8rguide/model"
	"github.com/kasuganosora/fe8rguide/resource"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const skillSourceType = "Source"

// ---- categories ----

func (st *state) categories(tx *gorm.DB) error {
	st.skillCats = classify.NewRegistry(classify.Category{
		Nid: classify.MiscSkillCategory, Name: classify.MiscSkillCategory, Type: skillSourceType,
	})
	var paths []string
	for _, p := range st.rl.SkillCategories {
		if p != "" && !slices.Contains(paths, p) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	for _, p := range paths {
		st.skillCats.Register(p, classify.SourceCategoryName(p), skillSourceType)
	}
	for _, c := range classify.FeatCategoryDefaults() {
		st.skillCats.Register(c.Nid, c.Name, c.Type)
	}
	st.itemCats = classify.NewRegistry(classify.ItemCategoryDefaults()...)
	unitCats := classify.NewRegistry(classify.UnitCategoryDefaults()...)

	var skillRows []*model.SkillCategory
	for _, c := range st.skillCats.All() {
		skillRows = append(skillRows, &model.SkillCategory{Nid: c.Nid, Name: c.Name, Type: c.Type, OrderKey: c.OrderKey})
	}
	var itemRows []*model.ItemCategory
	for _, c := range st.itemCats.All() {
		itemRows = append(itemRows, &model.ItemCategory{Nid: c.Nid, Name: c.Name, Type: c.Type, OrderKey: c.OrderKey})
	}
	var unitRows []*model.UnitCategory
	for _, c := range unitCats.All() {
		unitRows = append(unitRows, &model.UnitCategory{Nid: c.Nid, Name: c.Name, Type: c.Type, OrderKey: c.OrderKey})
	}
	if err := insertRows(tx, skillRows, st.batch); err != nil {
		return err
	}
	if err := insertRows(tx, itemRows, st.batch); err != nil {
		return err
	}
	if err := insertRows(tx, unitRows, st.batch); err != nil {
		return err
	}
	st.sr.Rows = len(skillRows) + len(itemRows) + len(unitRows)
	return nil
}

// ---- skills ----

func (st *state) skills(tx *gorm.DB) error {
	var rows []*model.Skill
	var cats linkSet[model.SkillCategoryLink]
	seen := make(map[string]bool)
	for _, rec := range st.rl.Skills {
		if !st.claim(seen, rec.Nid) {
			continue
		}
		src := classify.MiscSkillCategory
		if p := st.rl.SkillCategories[rec.Nid]; p != "" {
			src = p
		}
		sk := &model.Skill{
			Nid:               rec.Nid,
			Name:              textstyle.StripInlineTags(rec.Name),
			Desc:              textstyle.Render(rec.Desc),
			IconClass:         textstyle.IconClass(rec.Nid, "skill", rec.IconNid),
			IsHidden:          rec.Components.Bool("hidden"),
			SourceCategoryNid: src,
		}
		st.skillByNid[rec.Nid] = sk
		rows = append(rows, sk)
		for _, cat := range classify.FeatCategories(rec.Nid, rec.Desc, rec.Components) {
			st.note(rec.Nid, cat, cats.add(model.SkillCategoryLink{SkillNid: rec.Nid, CategoryNid: cat}))
		}
	}
	if err := insertRows(tx, rows, st.batch); err != nil {
		return err
	}
	st.sr.Rows = len(rows)
	return flushLinks(st, tx, &cats)
}

// ---- items ----

func (st *state) items(tx *gorm.DB) error {
	st.containers, st.skippedContainers = arsenal.Containers(st.rl.Items)

	var rows []*model.Item
	var cats linkSet[model.ItemCategoryLink]
	var statuses linkSet[model.ItemSkillLink]
	seen := make(map[string]bool)
	for _, rec := range st.rl.Items {
		if !st.claim(seen, rec.Nid) {
			continue
		}
		c := rec.Components
		wtype := classify.WeaponType(c)
		rank := classify.WeaponRank(c, wtype)
		it := &model.Item{
			Nid:                rec.Nid,
			Name:               textstyle.StripInlineTags(rec.Name),
			Desc:               textstyle.Render(rec.Desc),
			Value:              c.Int("value"),
			WeaponRank:         rank,
			WeaponRankOrderKey: classify.WeaponRankOrderKey(rank),
			WeaponType:         wtype,
			Target:             classify.Target(c),
			Damage:             c.Int("damage"),
			Weight:             c.Int("weight"),
			Crit:               c.Int("crit"),
			Hit:                c.Int("hit"),
			MinRange:           c.Int("min_range"),
			MaxRange:           c.Int("max_range"),
			IconClass:          textstyle.IconClass(rec.Nid, "item", rec.IconNid),
		}
		st.itemByNid[rec.Nid] = it
		rows = append(rows, it)

		for _, cat := range classify.ItemCategories(c, arsenal.IsContainerNid(rec.Nid), st.itemCats) {
			st.note(rec.Nid, cat, cats.add(model.ItemCategoryLink{ItemNid: rec.Nid, CategoryNid: cat}))
		}
		st.linkStatuses(rec, &statuses)
	}
	if err := insertRows(tx, rows, st.batch); err != nil {
		return err
	}
	st.sr.Rows = len(rows)
	if err := flushLinks(st, tx, &cats); err != nil {
		return err
	}
	return flushLinks(st, tx, &statuses)
}

// linkStatuses links an item to the statuses it grants. Among statuses with
// the same display name only the one with the longest description is kept.
func (st *state) linkStatuses(rec *resource.ItemRecord, links *linkSet[model.ItemSkillLink]) {
	var found []*model.Skill
	for _, nid := range crossref.StatusCandidates(rec.Components) {
		res := present(st.skillByNid, nid, SkipMissingSkill)
		if !res.Linked {
			st.note(rec.Nid, nid, res)
			continue
		}
		found = append(found, st.skillByNid[nid])
	}
	kept := make(map[*model.Skill]bool)
	for _, sk := range crossref.DedupeByName(found) {
		kept[sk] = true
	}
	for _, sk := range found {
		switch {
		case kept[sk]:
			st.note(rec.Nid, sk.Nid, links.add(model.ItemSkillLink{ItemNid: rec.Nid, SkillNid: sk.Nid}))
		case crossref.IsBoilerplate(sk.Desc):
			st.note(rec.Nid, sk.Nid, skipped(SkipBoilerplateStatus))
		default:
			st.note(rec.Nid, sk.Nid, skipped(SkipDuplicateStatus))
		}
	}
}

// ---- sub items ----

// subItems links multi-item containers to what they offer. Every offered item
// loses its own categories so it stays out of the category listings.
func (st *state) subItems(tx *gorm.DB) error {
	var links linkSet[model.SubItemLink]
	for _, rec := range st.rl.Items {
		for _, sub := range crossref.SubItemNids(rec.Components) {
			res := present(st.itemByNid, sub, SkipMissingItem)
			if res.Linked {
				res = links.add(model.SubItemLink{SuperItemNid: rec.Nid, SubItemNid: sub})
			}
			st.note(rec.Nid, sub, res)
			if res.Linked {
				st.superOf[sub] = append(st.superOf[sub], rec.Nid)
			}
		}
	}
	if err := flushLinks(st, tx, &links); err != nil {
		return err
	}

	strip := make([]string, 0, len(st.superOf))
	for sub := range st.superOf {
		strip = append(strip, sub)
	}
	if len(strip) == 0 {
		return nil
	}
	sort.Strings(strip)
	res := tx.Where("item_nid IN ?", strip).Delete(&model.ItemCategoryLink{})
	if res.Error != nil {
		return fmt.Errorf("strip sub-item categories: %w", res.Error)
	}
	st.sr.Counters["categories_stripped"] = int(res.RowsAffected)
	st.sr.Counters["stripped_items"] = len(strip)
	return nil
}

// ---- shops ----

func (st *state) shops(tx *gorm.DB) error {
	for _, ev := range st.rl.Events {
		if !shop.IsShopEvent(ev.Nid) {
			continue
		}
		if _, ok := shop.ItemsFromSource(ev.Source); !ok {
			st.note(ev.Nid, "", skipped(SkipNoShopItems))
		}
	}

	var rows []*model.Shop
	var links linkSet[model.ShopItemLink]
	for _, g := range shop.GroupEvents(st.rl.Events) {
		abbr, ok := st.cur.Abbreviation(g.Nid)
		if !ok {
			if st.strict {
				return fmt.Errorf("%w: %s", ErrMissingAbbreviation, g.Nid)
			}
			st.log.Warn("shop has no abbreviation, using its name", zap.String("shop", g.Nid))
			st.note(g.Nid, "", skipped(SkipMissingAbbr))
			abbr = g.Name
		}
		rows = append(rows, &model.Shop{
			Nid:       g.Nid,
			Name:      g.Name,
			Type:      g.Type,
			OrderName: g.OrderName,
			AbbrName:  abbr,
		})
		for _, nid := range g.ItemNids {
			res := present(st.itemByNid, nid, SkipMissingItem)
			if res.Linked {
				res = links.add(model.ShopItemLink{ShopNid: g.Nid, ItemNid: nid})
			}
			st.note(g.Nid, nid, res)
		}
	}
	if err := insertRows(tx, rows, st.batch); err != nil {
		return err
	}
	st.sr.Rows = len(rows)
	return flushLinks(st, tx, &links)
}

// dragonsGateShop builds the Dragon's Gate vendor from item nids alone.
func (st *state) dragonsGateShop(tx *gorm.DB) error {
	abbr, ok := st.cur.Abbreviation(shop.DragonGateNid)
	if !ok {
		abbr = shop.DragonGateAbbr
	}
	row := &model.Shop{
		Nid:       shop.DragonGateNid,
		Name:      shop.DragonGateName,
		Type:      shop.TypeVendor,
		OrderName: shop.DragonGateOrderName,
		AbbrName:  abbr,
	}
	var links linkSet[model.ShopItemLink]
	for _, rec := range st.rl.Items {
		if shop.IsDragonGateItem(rec.Nid) {
			links.add(model.ShopItemLink{ShopNid: row.Nid, ItemNid: rec.Nid})
		}
	}
	if err := insertRows(tx, []*model.Shop{row}, st.batch); err != nil {
		return err
	}
	st.sr.Rows = 1
	return flushLinks(st, tx, &links)
}

// ---- weapons and affinities ----

func (st *state) reference(tx *gorm.DB) error {
	var weapons []*model.Weapon
	seen := make(map[string]bool)
	for _, rec := range st.rl.Weapons {
		if !st.claim(seen, rec.Nid) {
			continue
		}
		st.weaponNames[rec.Nid] = rec.Name
		weapons = append(weapons, &model.Weapon{
			Nid:       rec.Nid,
			Name:      rec.Name,
			IconClass: textstyle.IconClass(rec.Nid, "weapon", rec.IconNid),
		})
	}

	var affinities []*model.Affinity
	seen = make(map[string]bool)
	for _, rec := range st.rl.Affinities {
		if !st.claim(seen, rec.Nid) {
			continue
		}
		bonus := datatypes.JSON(rec.Bonus)
		if len(bonus) == 0 || string(bonus) == "null" {
			bonus = datatypes.JSON("[]")
		}
		st.affinitySet[rec.Nid] = true
		affinities = append(affinities, &model.Affinity{
			Nid:       rec.Nid,
			Name:      rec.Name,
			Desc:      textstyle.Render(rec.Desc),
			Bonus:     bonus,
			IconClass: textstyle.IconClass(rec.Nid, "affinity", rec.Nid),
		})
	}
	if err := insertRows(tx, weapons, st.batch); err != nil {
		return err
	}
	if err := insertRows(tx, affinities, st.batch); err != nil {
		return err
	}
	st.sr.Rows = len(weapons) + len(affinities)
	return nil
}

// ---- classes ----

func (st *state) classes(tx *gorm.DB) error {
	st.classCats = classify.NewRegistry(classify.ClassCategoryDefaults()...)

	// promotion targets may come later in the file
	var recs []*resource.ClassRecord
	for _, rec := range st.rl.Classes {
		if st.claim(st.classSet, rec.Nid) {
			recs = append(recs, rec)
		}
	}

	var rows []*model.Class
	var skills []*model.ClassSkill
	var cats linkSet[model.ClassCategoryLink]
	var weapons linkSet[model.ClassWeaponLink]
	var promos linkSet[model.ClassPromotionLink]
	for _, rec := range recs {
		rows = append(rows, &model.Class{
			Nid:          rec.Nid,
			Name:         rec.Name,
			Desc:         textstyle.Render(rec.Desc),
			Tier:         rec.Tier,
			MaxLevel:     rec.MaxLevel,
			AltName:      textstyle.AltName(rec.Name, rec.Nid),
			Bases:        model.NewStatTable(rec.Bases),
			Growths:      model.NewStatTable(rec.Growths),
			GrowthBonus:  model.NewStatTable(rec.GrowthBonus),
			MaxStats:     model.NewStatTable(rec.MaxStats),
			Promotion:    model.NewStatTable(rec.Promotion),
			MapSpriteNid: rec.MapSpriteNid,
		})
		for _, cat := range classify.ClassCategories(rec, st.weaponNames, st.classCats) {
			st.note(rec.Nid, cat, cats.add(model.ClassCategoryLink{ClassNid: rec.Nid, CategoryNid: cat}))
		}
		for _, w := range classify.ProficientWeapons(rec) {
			res := present(st.weaponNames, w, SkipMissingWeapon)
			if res.Linked {
				res = weapons.add(model.ClassWeaponLink{ClassNid: rec.Nid, WeaponNid: w})
			}
			st.note(rec.Nid, w, res)
		}
		for _, target := range rec.TurnsInto {
			if target == "" {
				continue
			}
			res := present(st.classSet, target, SkipMissingClass)
			if res.Linked {
				res = promos.add(model.ClassPromotionLink{BaseClassNid: rec.Nid, TargetClassNid: target})
			}
			st.note(rec.Nid, target, res)
		}
		for _, ls := range st.learnedSkills(rec.Nid, rec.LearnedSkills) {
			skills = append(skills, &model.ClassSkill{ClassNid: rec.Nid, SkillNid: ls.SkillNid, Level: ls.Level})
		}
	}

	var catRows []*model.ClassCategory
	for _, c := range st.classCats.All() {
		catRows = append(catRows, &model.ClassCategory{Nid: c.Nid, Name: c.Name, Type: c.Type, OrderKey: c.OrderKey})
	}
	if err := insertRows(tx, catRows, st.batch); err != nil {
		return err
	}
	if err := insertRows(tx, rows, st.batch); err != nil {
		return err
	}
	if err := insertRows(tx, skills, st.batch); err != nil {
		return err
	}
	st.sr.Rows = len(rows)
	st.sr.Links += len(skills)
	st.sr.Counters["categories"] = len(catRows)
	if err := flushLinks(st, tx, &cats); err != nil {
		return err
	}
	if err := flushLinks(st, tx, &weapons); err != nil {
		return err
	}
	return flushLinks(st, tx, &promos)
}

// ---- units ----

func (st *state) units(tx *gorm.DB) error {
	var rows []*model.Unit
	var skills []*model.UnitSkill
	var cats linkSet[model.UnitCategoryLink]
	var items linkSet[model.UnitItemLink]
	for _, rec := range st.rl.Units {
		cat, ok := classify.UnitCategory(rec.Nid, st.rl.UnitCategories)
		if !ok {
			reason := SkipUncategorizedUnit
			if classify.IsExcludedUnit(rec.Nid) {
				reason = SkipExcludedUnit
			}
			st.note(rec.Nid, st.rl.UnitCategories[rec.Nid], skipped(reason))
			continue
		}
		if !st.claim(st.unitSet, rec.Nid) {
			continue
		}
		u := &model.Unit{
			Nid:              rec.Nid,
			Name:             rec.Name,
			Desc:             textstyle.Render(rec.Desc),
			Level:            rec.Level,
			PortraitNid:      rec.PortraitNid,
			Bases:            model.NewStatTable(rec.Bases),
			Growths:          model.NewStatTable(rec.Growths),
			StatCapModifiers: model.NewStatTable(rec.StatCapModifiers),
		}
		if rec.Klass != "" {
			res := present(st.classSet, rec.Klass, SkipMissingClass)
			st.note(rec.Nid, rec.Klass, res)
			if res.Linked {
				klass := rec.Klass
				u.BaseClassNid = &klass
			}
		}
		if rec.Affinity != "" {
			res := present(st.affinitySet, rec.Affinity, SkipMissingAffinity)
			st.note(rec.Nid, rec.Affinity, res)
			if res.Linked {
				aff := rec.Affinity
				u.AffinityNid = &aff
			}
		}
		rows = append(rows, u)

		st.note(rec.Nid, cat, cats.add(model.UnitCategoryLink{UnitNid: rec.Nid, CategoryNid: cat}))
		for _, si := range rec.StartingItems {
			res := present(st.itemByNid, si.ItemNid, SkipMissingItem)
			if res.Linked {
				res = items.add(model.UnitItemLink{UnitNid: rec.Nid, ItemNid: si.ItemNid})
			}
			st.note(rec.Nid, si.ItemNid, res)
		}
		for _, ls := range st.learnedSkills(rec.Nid, rec.LearnedSkills) {
			skills = append(skills, &model.UnitSkill{UnitNid: rec.Nid, SkillNid: ls.SkillNid, Level: ls.Level})
		}
	}

	var supports linkSet[model.UnitSupportLink]
	for _, p := range st.rl.SupportPairs {
		missing := ""
		for _, nid := range []string{p.Unit1, p.Unit2} {
			if !st.unitSet[nid] {
				missing = nid
				break
			}
		}
		if missing != "" {
			st.log.Warn("support pair references a missing unit",
				zap.String("pair", p.Nid), zap.String("unit", missing))
			st.note(p.Nid, missing, skipped(SkipDanglingSupport))
			continue
		}
		for _, e := range crossref.SupportEdges(p) {
			st.note(e.From, e.To, supports.add(model.UnitSupportLink{UnitNid: e.From, SupportNid: e.To}))
		}
	}

	if err := insertRows(tx, rows, st.batch); err != nil {
		return err
	}
	if err := insertRows(tx, skills, st.batch); err != nil {
		return err
	}
	st.sr.Rows = len(rows)
	st.sr.Links += len(skills)
	if err := flushLinks(st, tx, &cats); err != nil {
		return err
	}
	if err := flushLinks(st, tx, &items); err != nil {
		return err
	}
	return flushLinks(st, tx, &supports)
}

// ---- arsenals ----

func (st *state) arsenals(tx *gorm.DB) error {
	for _, nid := range st.skippedContainers {
		st.note(nid, "", skipped(SkipArsenalOwner))
	}

	var rows []*model.Arsenal
	var owned []arsenal.Container
	for _, c := range st.containers {
		owner := c.OwnerNid
		if res := present(st.unitSet, owner, SkipMissingUnit); !res.Linked {
			st.note(c.Nid, owner, res)
			continue
		}
		owned = append(owned, c)
		rows = append(rows, &model.Arsenal{
			Nid:       c.Nid,
			Name:      textstyle.StripInlineTags(c.Name),
			Desc:      textstyle.Render(c.Desc),
			IconClass: c.IconClass,
			OwnerNid:  &owner,
		})
	}

	assigner := arsenal.NewAssigner(owned)
	var links linkSet[model.ArsenalItemLink]
	for _, nid := range resource.SortedKeys(st.rl.ItemCategories) {
		it, ok := st.itemByNid[nid]
		if !ok {
			st.note(nid, "", skipped(SkipMissingItem))
			continue
		}
		d := assigner.Assign(arsenal.Item{Nid: nid, Desc: it.Desc, SuperItems: st.superOf[nid]}, st.rl.ItemCategories[nid])
		if !d.Assigned() {
			// most items are simply not personal weapons
			if d.Reason != arsenal.ReasonNotPersonal {
				st.note(nid, d.Owner, skipped(arsenalReason(string(d.Reason))))
			}
			continue
		}
		st.note(nid, d.ArsenalNid, links.add(model.ArsenalItemLink{ArsenalNid: d.ArsenalNid, ItemNid: nid}))
	}
	if err := insertRows(tx, rows, st.batch); err != nil {
		return err
	}
	st.sr.Rows = len(rows)
	return flushLinks(st, tx, &links)
}
