// Package arsenal builds per-unit personal weapon collections and decides
// which arsenal each personal weapon belongs to.
package arsenal

import (
	"sort"
	"strings"

	"github.com/kasuganosora/fe8rguide/game/textstyle"
	"github.com/kasuganosora/fe8rguide/resource"
)

var (
	containerMarks = []string{"_Arsenal", "bending", "_Studies", "_Stash", "Shiro_Grimoire"}
	excludedItems  = map[string]bool{"Davius_Arsenal_Old": true}
	excludedOwners = map[string]bool{"_Plushie": true, "Orson": true, "Orson_Evil": true, "Davius_Old": true, "MyUnit": true}
)

// Container is an arsenal: a personal weapon container owned by one unit.
type Container struct {
	Nid       string
	Name      string
	Desc      string // raw markup
	IconClass string
	OwnerNid  string
}

// Myrrh has no container item in the data; her arsenal is built by hand.
func myrrhArsenal() Container {
	return Container{
		Nid:       "Myrrh_Arsenal",
		Name:      "Myrrh's Arsenal",
		Desc:      "Arsenal of a Manakete.\n<red>Prof:</><icon>Monster</>",
		IconClass: "Dragonstone-item-icon Neutral-icon",
		OwnerNid:  "Myrrh",
	}
}

// IsContainerNid reports whether an item nid marks a personal weapon container.
func IsContainerNid(nid string) bool {
	if excludedItems[nid] {
		return false
	}
	for _, m := range containerMarks {
		if strings.HasSuffix(nid, m) {
			return true
		}
	}
	return false
}

// Containers returns one Container per marked item with a non-excluded
// prf_unit owner, followed by the synthesized Myrrh arsenal. Marked items
// that cannot become arsenals are returned in skipped.
func Containers(items []*resource.ItemRecord) (out []Container, skipped []string) {
	seen := make(map[string]bool)
	for _, it := range items {
		if !IsContainerNid(it.Nid) || seen[it.Nid] {
			continue
		}
		seen[it.Nid] = true
		owners := it.Components.List("prf_unit")
		if len(owners) == 0 || excludedOwners[owners[0]] {
			skipped = append(skipped, it.Nid)
			continue
		}
		out = append(out, Container{
			Nid:       it.Nid,
			Name:      it.Name,
			Desc:      it.Desc,
			IconClass: textstyle.IconClass(it.Nid, "item", it.IconNid),
			OwnerNid:  owners[0],
		})
	}
	if myrrh := myrrhArsenal(); !seen[myrrh.Nid] {
		out = append(out, myrrh)
	}
	return out, skipped
}

// Reason explains why an item was not placed in an arsenal.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonNotPersonal   Reason = "not_personal_weapon"
	ReasonExcludedItem  Reason = "excluded_item"
	ReasonEmptyDesc     Reason = "empty_description"
	ReasonExcludedOwner Reason = "excluded_owner"
	ReasonIsContainer   Reason = "is_container"
	ReasonNestedSubItem Reason = "nested_sub_item"
	ReasonNoArsenal     Reason = "no_arsenal_for_owner"
	ReasonNoRuleMatch   Reason = "no_rule_match"
	ReasonUnresolved    Reason = "unresolved_multi_arsenal_owner"
)

// Item is what the assigner needs to know about a candidate item.
type Item struct {
	Nid        string
	Desc       string
	SuperItems []string
}

// Decision is the outcome for one item.
type Decision struct {
	ItemNid    string
	Owner      string
	ArsenalNid string
	Reason     Reason
}

// Assigned reports whether the item was placed in an arsenal.
func (d Decision) Assigned() bool { return d.Reason == ReasonNone && d.ArsenalNid != "" }

// overrides place items directly, ahead of every other rule. When the target
// arsenal does not exist the item falls through to the general rules.
var overrides = map[string]string{
	"Lunar_Brace": "Eirikas_Arsenal",
	"Solar_Brace": "Ephraims_Arsenal",
	"Dragonstone": "Myrrh_Arsenal",
}

var excludedSuffixes = []string{"_Old", "_Multi", "_Warp_2", "_Warp"}

// ownerAliases maps category path names onto unit nids.
var ownerAliases = map[string]string{
	"L'arachel": "Larachel",
	"Pro":       "ProTagonist",
}

// multiRules split the items of owners with several arsenals.
var multiRules = map[string]func(itemNid string) (string, Reason){
	"ProTagonist": bendingRule,
	"Tana":        tanaRule,
}

var bendingContainers = []string{"Airbending", "Earthbending", "Firebending", "Waterbending"}

func bendingRule(nid string) (string, Reason) {
	for _, c := range bendingContainers {
		if nid == c {
			return "", ReasonIsContainer
		}
	}
	for _, c := range bendingContainers {
		element := strings.TrimSuffix(c, "bending")
		if strings.HasPrefix(nid, element) {
			return c, ReasonNone
		}
	}
	return "", ReasonNoRuleMatch
}

func tanaRule(nid string) (string, Reason) {
	if nid == "Tanas_Stash" || nid == "Tanas_Arsenal" {
		return "", ReasonIsContainer
	}
	if strings.Contains(nid, "_Buff") || strings.Contains(nid, "_Heal") {
		return "Tanas_Stash", ReasonNone
	}
	return "Tanas_Arsenal", ReasonNone
}

// Assigner places personal weapons into arsenals.
type Assigner struct {
	arsenals map[string]Container
	byOwner  map[string][]string
}

// NewAssigner indexes the arsenals that made it into the dataset.
func NewAssigner(arsenals []Container) *Assigner {
	a := &Assigner{
		arsenals: make(map[string]Container, len(arsenals)),
		byOwner:  make(map[string][]string),
	}
	for _, c := range arsenals {
		a.arsenals[c.Nid] = c
		a.byOwner[c.OwnerNid] = append(a.byOwner[c.OwnerNid], c.Nid)
	}
	for _, nids := range a.byOwner {
		sort.Strings(nids)
	}
	return a
}

// HasArsenal reports whether nid is a known arsenal.
func (a *Assigner) HasArsenal(nid string) bool {
	_, ok := a.arsenals[nid]
	return ok
}

// Assign decides where an item with the given items.category.json path goes.
// Rules run in order: override table, exclusion filters, single-arsenal
// owners, then named multi-arsenal owners. An owner with several arsenals and
// no named rule is reported as unresolved rather than guessed.
func (a *Assigner) Assign(it Item, categoryPath string) Decision {
	d := Decision{ItemNid: it.Nid}

	if target, ok := overrides[it.Nid]; ok && a.HasArsenal(target) {
		d.ArsenalNid = target
		d.Owner = a.arsenals[target].OwnerNid
		return d
	}

	if !strings.HasPrefix(categoryPath, "Personal Weapons") {
		return d.skip(ReasonNotPersonal)
	}
	for _, s := range excludedSuffixes {
		if strings.HasSuffix(it.Nid, s) {
			return d.skip(ReasonExcludedItem)
		}
	}
	if it.Desc == "" {
		return d.skip(ReasonEmptyDesc)
	}

	segments := strings.Split(categoryPath, "/")
	if len(segments) < 2 || segments[1] == "" {
		return d.skip(ReasonNotPersonal)
	}
	owner := segments[1]
	switch {
	case owner == "Davius Old",
		owner == "Lindsey" && strings.HasSuffix(it.Nid, "_D"),
		owner == "Azuth" && strings.HasSuffix(it.Nid, "_A"):
		d.Owner = owner
		return d.skip(ReasonExcludedOwner)
	}
	if alias, ok := ownerAliases[owner]; ok {
		owner = alias
	}
	d.Owner = owner

	candidates := a.byOwner[owner]
	switch len(candidates) {
	case 0:
		return d.skip(ReasonNoArsenal)
	case 1:
		if it.Nid == candidates[0] {
			return d.skip(ReasonIsContainer)
		}
		if a.nestedInForeignContainer(it) {
			return d.skip(ReasonNestedSubItem)
		}
		d.ArsenalNid = candidates[0]
		return d
	}

	rule, ok := multiRules[owner]
	if !ok {
		return d.skip(ReasonUnresolved)
	}
	target, reason := rule(it.Nid)
	if reason != ReasonNone {
		return d.skip(reason)
	}
	if !a.HasArsenal(target) {
		return d.skip(ReasonNoArsenal)
	}
	d.ArsenalNid = target
	return d
}

// nestedInForeignContainer reports whether an item is offered only through
// multi-item containers that are not arsenals.
func (a *Assigner) nestedInForeignContainer(it Item) bool {
	if len(it.SuperItems) == 0 {
		return false
	}
	for _, s := range it.SuperItems {
		if a.HasArsenal(s) {
			return false
		}
	}
	return true
}

func (d Decision) skip(r Reason) Decision {
	d.Reason = r
	d.ArsenalNid = ""
	return d
}
