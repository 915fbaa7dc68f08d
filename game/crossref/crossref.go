// Package crossref resolves links between records: item statuses, sub-items,
// learned skills and support pairs.
package crossref

import (
	"strings"

	"github.com/kasuganosora/fe8rguide/resource"
)

// statusExcludes marks internal mechanic statuses that never show on an item.
var statusExcludes = []string{
	"_hide", "_Penalty", "_Gain", "_Proc", "_Weapon",
	"_AOE_Splash", "_Boss", "Avo_Ddg_", "_Buff",
}

// boilerplatePrefixes mark editor placeholder descriptions (case-insensitive).
var boilerplatePrefixes = []string{"placeholder", "used for", "helper status", "do not use"}

// learnedSkillExcludes are suffixes of skills that are never listed as learned.
var learnedSkillExcludes = []string{
	"Absolute_Mastery_Anima", "Absolute_Mastery_Light",
	"Absolute_Mastery_Staff", "Absolute_Mastery_Dark",
	"_hide", "Feat_Enabler",
}

// StatusCandidates gathers status nids from an item's status components in
// component order, without duplicates or excluded markers.
func StatusCandidates(c resource.Components) []string {
	var raw []string
	for _, name := range []string{"status_on_equip", "status_on_hit"} {
		if v := c.Decode(name, resource.KindText); v.Text != "" {
			raw = append(raw, v.Text)
		}
	}
	for _, name := range []string{"multi_status_on_equip", "statuses_on_hit"} {
		raw = append(raw, c.List(name)...)
	}

	seen := make(map[string]bool, len(raw))
	var out []string
	for _, nid := range raw {
		if nid == "" || seen[nid] || isExcludedStatus(nid) {
			continue
		}
		seen[nid] = true
		out = append(out, nid)
	}
	return out
}

func isExcludedStatus(nid string) bool {
	for _, ex := range statusExcludes {
		if strings.Contains(nid, ex) {
			return true
		}
	}
	return false
}

// IsBoilerplate reports whether a description is empty or editor filler.
func IsBoilerplate(desc string) bool {
	d := strings.ToLower(strings.TrimSpace(desc))
	if d == "" {
		return true
	}
	for _, p := range boilerplatePrefixes {
		if strings.HasPrefix(d, p) {
			return true
		}
	}
	return false
}

// Described is anything with a display name and description.
type Described interface {
	DisplayName() string
	Description() string
}

// DedupeByName keeps one entry per display name: the one with the longest
// description, ties going to the first seen. Output keeps first-seen order of
// names. Entries with boilerplate descriptions are dropped first.
func DedupeByName[T Described](in []T) []T {
	idx := make(map[string]int, len(in))
	var out []T
	for _, v := range in {
		if IsBoilerplate(v.Description()) {
			continue
		}
		name := v.DisplayName()
		i, ok := idx[name]
		if !ok {
			idx[name] = len(out)
			out = append(out, v)
			continue
		}
		if len(v.Description()) > len(out[i].Description()) {
			out[i] = v
		}
	}
	return out
}

// LearnedSkills drops hidden and internal skills from a learn list.
func LearnedSkills(in []resource.LearnedSkill) []resource.LearnedSkill {
	var out []resource.LearnedSkill
	for _, ls := range in {
		if ls.SkillNid == "" || isExcludedLearned(ls.SkillNid) {
			continue
		}
		out = append(out, ls)
	}
	return out
}

func isExcludedLearned(nid string) bool {
	for _, ex := range learnedSkillExcludes {
		if strings.HasSuffix(nid, ex) {
			return true
		}
	}
	return false
}

// Edge is a directed unit → unit support link.
type Edge struct {
	From string
	To   string
}

// SupportEdges expands pairs into directed edges: both directions unless the
// pair is one-way.
func SupportEdges(p *resource.SupportPair) []Edge {
	if p.OneWay {
		return []Edge{{From: p.Unit1, To: p.Unit2}}
	}
	return []Edge{{From: p.Unit1, To: p.Unit2}, {From: p.Unit2, To: p.Unit1}}
}

// SubItemNids returns the items a multi-item container offers.
func SubItemNids(c resource.Components) []string {
	var out []string
	for _, nid := range c.List("multi_item") {
		if nid != "" {
			out = append(out, nid)
		}
	}
	return out
}
