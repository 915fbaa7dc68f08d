package classify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kasuganosora/fe8rguide/game/textstyle"
	"github.com/kasuganosora/fe8rguide/resource"
)

// ClassCategoryDefaults seeds the tier categories so they always sort first.
func ClassCategoryDefaults() []Category {
	cats := []Category{{Nid: ClassTierNid(0), Type: "Tier", Name: "Untiered"}}
	for t := 1; t <= 3; t++ {
		cats = append(cats, Category{Nid: ClassTierNid(t), Type: "Tier", Name: fmt.Sprintf("Tier %d", t)})
	}
	return cats
}

// ClassTierNid returns the tier category nid, e.g. class_tier_t1.
func ClassTierNid(tier int) string {
	return fmt.Sprintf("class_tier_t%d", tier)
}

// ClassCategories returns the category nids for a class, registering tag and
// weapon categories the first time they are seen. weaponNames maps weapon
// nid → display name; weapons missing from it are ignored.
func ClassCategories(rec *resource.ClassRecord, weaponNames map[string]string, reg *Registry) []string {
	tier := rec.Tier
	if tier < 0 || tier > 3 {
		tier = 0
	}
	out := []string{ClassTierNid(tier)}

	for _, tag := range rec.Tags {
		if tag == "" {
			continue
		}
		nid := "class_cat_" + strings.ToLower(tag)
		reg.Register(nid, textstyle.Title(tag), "Class Type")
		out = appendUnique(out, nid)
	}

	for _, w := range ProficientWeapons(rec) {
		name, ok := weaponNames[w]
		if !ok {
			continue
		}
		nid := "class_wtype_" + w
		reg.Register(nid, name, "Weapon")
		out = appendUnique(out, nid)
	}
	return out
}

// ProficientWeapons lists, sorted, the weapons a class starts with any
// proficiency in.
func ProficientWeapons(rec *resource.ClassRecord) []string {
	var out []string
	for w, gain := range rec.WexpGain {
		if gain.Proficient() {
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}

func appendUnique(s []string, v string) []string {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}
