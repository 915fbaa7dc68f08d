// Package shop groups narrative shop events with identical inventories into
// shop listings.
package shop

import (
	"sort"
	"strings"
	"unicode"

	"github.com/kasuganosora/fe8rguide/game/textstyle"
	"github.com/kasuganosora/fe8rguide/resource"
)

const (
	TypeArmory     = "Armory"
	TypeVendor     = "Vendor"
	TypeSecretShop = "Secret Shop"

	// Dragon's Gate shop, built outside the grouping.
	DragonGateNid       = "Dragon_Gate_Vendor"
	DragonGateName      = "Dragon's Gate (Anna)"
	DragonGateOrderName = "Z_Dragon_Gate"
	DragonGateAbbr      = "Dragon's Gate"
	DragonGateSuffix    = "_DG"

	sourcePrefix = "shop;"
)

var shopSuffixes = []string{"Vendor", "SecretShop", "Armory"}

// Group is one shop listing built from events that sell the same items.
type Group struct {
	Nid       string
	Name      string
	Type      string
	OrderName string
	EventNids []string
	ItemNids  []string
}

// IsShopEvent reports whether an event nid denotes a shop handled by the
// grouping. Dragon's Gate events are handled separately.
func IsShopEvent(nid string) bool {
	if strings.Contains(nid, "Dragons_Gate") {
		return false
	}
	for _, s := range shopSuffixes {
		if strings.HasSuffix(nid, s) {
			return true
		}
	}
	return false
}

// ItemsFromSource extracts the item list from the first "shop;" annotation:
// the third semicolon-separated field, comma separated.
func ItemsFromSource(source []string) ([]string, bool) {
	for _, s := range source {
		if !strings.HasPrefix(s, sourcePrefix) {
			continue
		}
		fields := strings.Split(s, ";")
		if len(fields) < 3 {
			return nil, false
		}
		var items []string
		for _, nid := range strings.Split(fields[2], ",") {
			if nid = strings.TrimSpace(nid); nid != "" {
				items = append(items, nid)
			}
		}
		return items, true
	}
	return nil, false
}

// GroupEvents merges shop events whose sorted item lists are identical. The
// result is ordered by OrderName and does not depend on input order.
func GroupEvents(events []*resource.EventRecord) []Group {
	byKey := make(map[string]*Group)
	for _, ev := range events {
		if ev == nil || !IsShopEvent(ev.Nid) {
			continue
		}
		items, ok := ItemsFromSource(ev.Source)
		if !ok {
			continue
		}
		sorted := append([]string(nil), items...)
		sort.Strings(sorted)
		key := strings.Join(sorted, "\x00")
		g, ok := byKey[key]
		if !ok {
			g = &Group{ItemNids: sorted}
			byKey[key] = g
		}
		g.EventNids = append(g.EventNids, ev.Nid)
	}

	out := make([]Group, 0, len(byKey))
	for _, g := range byKey {
		sort.SliceStable(g.EventNids, func(i, j int) bool {
			pi, pj := textstyle.PadDigits(g.EventNids[i], 2), textstyle.PadDigits(g.EventNids[j], 2)
			if pi != pj {
				return pi < pj
			}
			return g.EventNids[i] < g.EventNids[j]
		})
		g.Nid = strings.ReplaceAll(strings.Join(g.EventNids, "_"), " ", "_")
		g.Name, g.Type = DisplayName(g.EventNids)
		g.OrderName = textstyle.PadDigits(g.Nid, 2)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderName != out[j].OrderName {
			return out[i].OrderName < out[j].OrderName
		}
		return out[i].Nid < out[j].Nid
	})
	return out
}

// ShopType derives the listing type from the first event nid.
func ShopType(nid string) string {
	switch {
	case strings.Contains(nid, "SecretShop"):
		return TypeSecretShop
	case strings.Contains(nid, "Armory"):
		return TypeArmory
	default:
		return TypeVendor
	}
}

// DisplayName builds "Chapter 5 / Chapter 9 Armory" style names from the
// ordered event nids of a group.
func DisplayName(eventNids []string) (string, string) {
	if len(eventNids) == 0 {
		return "", ""
	}
	typ := ShopType(eventNids[0])
	parts := make([]string, 0, len(eventNids))
	for _, nid := range eventNids {
		if p := namePart(nid); p != "" {
			parts = append(parts, p)
		}
	}
	name := strings.Join(parts, " / ") + " " + typ
	return strings.Join(strings.Fields(name), " "), typ
}

func namePart(nid string) string {
	s := nid
	for _, m := range shopSuffixes {
		s = strings.ReplaceAll(s, m, "")
	}
	s = strings.ReplaceAll(s, "Global", "")
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", " "))
	if s == "" {
		return ""
	}
	if unicode.IsDigit(rune(s[0])) {
		return "Chapter " + s
	}
	return textstyle.SplitCamel(strings.ReplaceAll(s, " ", ""))
}

// IsDragonGateItem reports whether an item is sold at the Dragon's Gate.
func IsDragonGateItem(nid string) bool {
	return strings.HasSuffix(nid, DragonGateSuffix)
}
