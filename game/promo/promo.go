// Package promo builds the class promotion map: forward edges from
// turns_into and their exact transpose.
package promo

import (
	"slices"
	"sort"

	"github.com/kasuganosora/fe8rguide/resource"
)

// Entry lists where a class promotes to and where it can be reached from.
type Entry struct {
	TurnsInto []string `json:"turns_into"`
	TurnsFrom []string `json:"turns_from"`
}

// Map is keyed by class nid.
type Map map[string]*Entry

// BuildPromoMap derives the promotion map. Every class gets an entry; targets
// outside the class list get one too so the transpose stays exact. Cycles are
// kept as they are.
func BuildPromoMap(classes []*resource.ClassRecord) Map {
	m := make(Map, len(classes))
	entry := func(nid string) *Entry {
		e, ok := m[nid]
		if !ok {
			e = &Entry{TurnsInto: []string{}, TurnsFrom: []string{}}
			m[nid] = e
		}
		return e
	}
	for _, c := range classes {
		src := entry(c.Nid)
		for _, target := range c.TurnsInto {
			if target == "" || slices.Contains(src.TurnsInto, target) {
				continue
			}
			src.TurnsInto = append(src.TurnsInto, target)
			dst := entry(target)
			dst.TurnsFrom = append(dst.TurnsFrom, c.Nid)
		}
	}
	for _, e := range m {
		sort.Strings(e.TurnsFrom)
	}
	return m
}
