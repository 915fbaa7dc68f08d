package importer

import (
	"sort"
	"time"
)

// SkipReason says why a record or link was left out of the store.
type SkipReason string

const (
	SkipNone              SkipReason = ""
	SkipMissingSkill      SkipReason = "missing_skill"
	SkipMissingItem       SkipReason = "missing_item"
	SkipMissingClass      SkipReason = "missing_class"
	SkipMissingUnit       SkipReason = "missing_unit"
	SkipMissingAffinity   SkipReason = "missing_affinity"
	SkipMissingWeapon     SkipReason = "missing_weapon"
	SkipDuplicateNid      SkipReason = "duplicate_nid"
	SkipDuplicateLink     SkipReason = "duplicate_link"
	SkipBoilerplateStatus SkipReason = "boilerplate_status"
	SkipDuplicateStatus   SkipReason = "duplicate_status_name"
	SkipExcludedUnit      SkipReason = "excluded_unit"
	SkipUncategorizedUnit SkipReason = "uncategorized_unit"
	SkipExcludedSkill     SkipReason = "excluded_learned_skill"
	SkipDanglingSupport   SkipReason = "dangling_support"
	SkipMalformedSkill    SkipReason = "malformed_learned_skill"
	SkipNoShopItems       SkipReason = "shop_without_items"
	SkipMissingAbbr       SkipReason = "missing_abbreviation"
	SkipArsenalOwner      SkipReason = "arsenal_owner_excluded"
)

// arsenalReason prefixes the assigner's own reasons.
func arsenalReason(r string) SkipReason {
	return SkipReason("arsenal_" + r)
}

// LinkResult is the outcome of one linkage attempt.
type LinkResult struct {
	Linked bool
	Reason SkipReason
}

func linked() LinkResult                { return LinkResult{Linked: true} }
func skipped(r SkipReason) LinkResult { return LinkResult{Reason: r} }

// maxSamples bounds the detail kept per reason in the report.
const maxSamples = 10

// Skip is one left-out record or link.
type Skip struct {
	Stage   string     `json:"stage"`
	Reason  SkipReason `json:"reason"`
	Subject string     `json:"subject"`
	Target  string     `json:"target,omitempty"`
}

// StageReport is what one stage wrote.
type StageReport struct {
	Name       string         `json:"name"`
	Rows       int            `json:"rows"`
	Links      int            `json:"links"`
	Counters   map[string]int `json:"counters,omitempty"`
	DurationMs int64          `json:"duration_ms"`
}

// Report summarizes a refresh run.
type Report struct {
	TraceID    string                `json:"trace_id"`
	DataPath   string                `json:"data_path"`
	StartedAt  time.Time             `json:"started_at"`
	DurationMs int64                 `json:"duration_ms"`
	Stages     []*StageReport        `json:"stages"`
	Skips      map[SkipReason]int    `json:"skips"`
	Samples    map[SkipReason][]Skip `json:"samples"`

	pending []Skip
}

func newReport(traceID, dataPath string) *Report {
	return &Report{
		TraceID:   traceID,
		DataPath:  dataPath,
		StartedAt: time.Now(),
		Skips:     make(map[SkipReason]int),
		Samples:   make(map[SkipReason][]Skip),
	}
}

// record counts a failed result and keeps it for the audit trail. Linked
// results are ignored.
func (r *Report) record(stage, subject, target string, res LinkResult) {
	if res.Linked {
		return
	}
	s := Skip{Stage: stage, Reason: res.Reason, Subject: subject, Target: target}
	r.Skips[res.Reason]++
	if len(r.Samples[res.Reason]) < maxSamples {
		r.Samples[res.Reason] = append(r.Samples[res.Reason], s)
	}
	r.pending = append(r.pending, s)
}

// drain hands over the skips recorded since the last call.
func (r *Report) drain() []Skip {
	out := r.pending
	r.pending = nil
	return out
}

// discard drops the pending skips of a stage that rolled back.
func (r *Report) discard(stage string) {
	for _, s := range r.pending {
		r.Skips[s.Reason]--
		if r.Skips[s.Reason] <= 0 {
			delete(r.Skips, s.Reason)
		}
	}
	for reason, samples := range r.Samples {
		kept := samples[:0]
		for _, s := range samples {
			if s.Stage != stage {
				kept = append(kept, s)
			}
		}
		if len(kept) == 0 {
			delete(r.Samples, reason)
		} else {
			r.Samples[reason] = kept
		}
	}
	r.pending = nil
}

// Stage returns the report of a stage by name, or nil.
func (r *Report) Stage(name string) *StageReport {
	for _, s := range r.Stages {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// TotalSkips sums all skip counts.
func (r *Report) TotalSkips() int {
	n := 0
	for _, c := range r.Skips {
		n += c
	}
	return n
}

// Reasons lists the reasons seen, sorted.
func (r *Report) Reasons() []SkipReason {
	out := make([]SkipReason, 0, len(r.Skips))
	for k := range r.Skips {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// HasSkip reports whether a skip with the given reason, subject and target
// is among the samples. An empty target matches any target.
func (r *Report) HasSkip(reason SkipReason, subject, target string) bool {
	for _, s := range r.Samples[reason] {
		if s.Subject == subject && (target == "" || s.Target == target) {
			return true
		}
	}
	return false
}
