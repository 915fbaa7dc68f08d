package classify

import "strings"

const (
	UnitVanilla    = "Vanilla"
	UnitMonsters   = "Monsters"
	UnitDragonGate = "Dragon Gate"
)

// excludedUnits never appear in the dataset. Entries with a leading
// underscore match as nid suffixes.
var excludedUnits = []string{"_Plushie", "Orson", "Orson_Evil", "Davius_Old", "MyUnit"}

// UnitCategoryDefaults lists the three recognized unit buckets.
func UnitCategoryDefaults() []Category {
	return []Category{
		{Nid: UnitVanilla, Type: "Unit Type", Name: "Vanilla"},
		{Nid: UnitMonsters, Type: "Unit Type", Name: "Monsters"},
		{Nid: UnitDragonGate, Type: "Unit Type", Name: "Dragon's Gate"},
	}
}

// IsExcludedUnit reports whether nid is on the unit exclusion list.
func IsExcludedUnit(nid string) bool {
	for _, ex := range excludedUnits {
		if nid == ex || (strings.HasPrefix(ex, "_") && strings.HasSuffix(nid, ex)) {
			return true
		}
	}
	return false
}

// UnitCategory returns the bucket for a unit, or false when the unit must be
// dropped: excluded by name, unmapped, or mapped outside the three buckets.
func UnitCategory(nid string, categoryMap map[string]string) (string, bool) {
	if IsExcludedUnit(nid) {
		return "", false
	}
	switch cat := categoryMap[nid]; cat {
	case UnitVanilla, UnitMonsters, UnitDragonGate:
		return cat, true
	default:
		return "", false
	}
}
