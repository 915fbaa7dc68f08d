package classify

import (
	"strings"

	"github.com/kasuganosora/fe8rguide/resource"
)

const (
	FeatActive  = "feat_type_Active"
	FeatSupport = "feat_type_Support"
	FeatPassive = "feat_type_Passive"

	// MiscSkillCategory is the source category for unmapped skills.
	MiscSkillCategory = "Misc"
)

var featTiers = []string{"_T1", "_T2", "_T3"}

var (
	activeComponents = []string{
		"ability", "combat_art", "build_charge", "drain_charge",
		"upkeep_charge", "combat_art_set_max_range", "activated_item",
	}
	activeMarkers = []string{"<red>CA:</>", "CD:"}

	supportComponents = []string{"canter", "aura", "ally_lifelink", "share_status"}
	supportMarkers    = []string{"ally", "allies", "enemy within", "enemies within", "adjacent"}
)

// FeatCategoryDefaults lists the derived Feat categories.
func FeatCategoryDefaults() []Category {
	return []Category{
		{Nid: "feat_tier_T1", Type: "Feat Tier", Name: "Tier 1"},
		{Nid: "feat_tier_T2", Type: "Feat Tier", Name: "Tier 2"},
		{Nid: "feat_tier_T3", Type: "Feat Tier", Name: "Tier 3"},
		{Nid: FeatActive, Type: "Feat Type", Name: "Active"},
		{Nid: FeatSupport, Type: "Feat Type", Name: "Support"},
		{Nid: FeatPassive, Type: "Feat Type", Name: "Passive"},
	}
}

// IsFeat reports whether a skill nid belongs to the tiered Feat family.
func IsFeat(nid string) bool {
	return featTier(nid) != "" && !strings.Contains(nid, "_Pair_Up")
}

func featTier(nid string) string {
	for _, t := range featTiers {
		if strings.HasSuffix(nid, t) {
			return t[1:]
		}
	}
	return ""
}

// FeatCategories returns exactly one tier and one type category for Feat
// skills and nil for everything else. desc is the raw, unrendered text.
func FeatCategories(nid, desc string, c resource.Components) []string {
	if !IsFeat(nid) {
		return nil
	}
	return []string{"feat_tier_" + featTier(nid), featType(desc, c)}
}

func featType(desc string, c resource.Components) string {
	if hasAny(c, activeComponents) || containsAny(desc, activeMarkers) {
		return FeatActive
	}
	if hasAny(c, supportComponents) || containsAny(desc, supportMarkers) {
		return FeatSupport
	}
	return FeatPassive
}

func hasAny(c resource.Components, names []string) bool {
	for _, n := range names {
		if c.Has(n) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// SourceCategoryName names a skills.category.json path for display:
// "MyUnit/T2" → "Feats (Tier 2)".
func SourceCategoryName(path string) string {
	if tier, ok := strings.CutPrefix(path, "MyUnit/T"); ok {
		return "Feats (Tier " + tier + ")"
	}
	return path
}
