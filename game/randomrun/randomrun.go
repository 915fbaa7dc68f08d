// Package randomrun picks a random party and a random promotion path for
// each member.
package randomrun

import (
	"errors"
	"math/rand/v2"
	"slices"
)

var (
	ErrUnknownLord    = errors.New("randomrun: unknown lord")
	ErrInvalidOptions = errors.New("randomrun: num_units must be at least 1")
)

// Lords lead every run.
var Lords = []string{"Eirika", "Ephraim"}

// LordRandom asks for a random lord.
const LordRandom = "Random"

var thiefClasses = []string{"Thief", "Pirate", "Outlaw"}

// maxPromotions bounds the promotion path after the base class.
const maxPromotions = 3

// Candidate is a unit eligible for a run.
type Candidate struct {
	Nid             string
	Name            string
	ClassNid        string
	ClassName       string
	Category        string   // unit bucket
	ClassCategories []string // class category nids of the base class
}

// Options mirrors the run form.
type Options struct {
	Lord            string `json:"lord"`
	NumUnits        int    `json:"num_units"`
	FinalClassOnly  bool   `json:"final_class_only"` // list only the last class of each path
	UniqueClasses   bool   `json:"unique_classes"`   // no two members share a base class
	AddThief        bool   `json:"add_thief"`
	AddFlier        bool   `json:"add_flier"`
	AddSupport      bool   `json:"add_support"`
	IncludeMonsters bool   `json:"include_monsters"`
	IncludeDG       bool   `json:"include_dg"`
}

// Pick is one party member and the classes it goes through.
type Pick struct {
	UnitNid  string   `json:"unit_nid"`
	UnitName string   `json:"unit_name"`
	Classes  []string `json:"classes"`
}

// Promotions returns the classes a class can promote into.
type Promotions func(classNid string) []string

// Generator draws runs from an injected random source.
type Generator struct {
	rng   *rand.Rand
	promo Promotions
}

// NewGenerator creates a Generator. A nil rng uses a randomly seeded source.
func NewGenerator(rng *rand.Rand, promo Promotions) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{rng: rng, promo: promo}
}

// Generate picks the lord, then the optional thief, flier and support
// members, then fills the party from the remaining eligible units. Units are
// never picked twice; slots that cannot be filled are left empty.
func (g *Generator) Generate(pool []Candidate, opts Options) ([]Pick, error) {
	if opts.NumUnits < 1 {
		return nil, ErrInvalidOptions
	}
	lordNid := opts.Lord
	if lordNid == "" || lordNid == LordRandom {
		lordNid = Lords[g.rng.IntN(len(Lords))]
	}
	lordIdx := slices.IndexFunc(pool, func(c Candidate) bool { return c.Nid == lordNid })
	if lordIdx < 0 {
		return nil, ErrUnknownLord
	}

	party := []Candidate{pool[lordIdx]}
	taken := map[string]bool{lordNid: true}
	usedClass := map[string]bool{pool[lordIdx].ClassNid: true}
	free := func(c Candidate) bool {
		return !taken[c.Nid] && !(opts.UniqueClasses && usedClass[c.ClassNid])
	}
	add := func(c Candidate) {
		taken[c.Nid] = true
		usedClass[c.ClassNid] = true
		party = append(party, c)
	}
	eligible := g.eligible(pool, opts)

	pickOne := func(match func(Candidate) bool) {
		if len(party) >= opts.NumUnits {
			return
		}
		var matches []Candidate
		for _, c := range eligible {
			if free(c) && match(c) {
				matches = append(matches, c)
			}
		}
		if len(matches) == 0 {
			return
		}
		add(matches[g.rng.IntN(len(matches))])
	}
	if opts.AddThief {
		pickOne(func(c Candidate) bool { return slices.Contains(thiefClasses, c.ClassName) })
	}
	if opts.AddFlier {
		pickOne(func(c Candidate) bool { return slices.Contains(c.ClassCategories, "class_cat_flying") })
	}
	if opts.AddSupport {
		pickOne(func(c Candidate) bool { return slices.Contains(c.ClassCategories, "class_cat_support") })
	}

	var rest []Candidate
	for _, c := range eligible {
		if !taken[c.Nid] && !slices.Contains(Lords, c.Nid) {
			rest = append(rest, c)
		}
	}
	g.rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })
	for _, c := range rest {
		if len(party) >= opts.NumUnits {
			break
		}
		if free(c) {
			add(c)
		}
	}

	picks := make([]Pick, 0, len(party))
	for _, c := range party {
		classes := g.path(c.ClassNid)
		if opts.FinalClassOnly && len(classes) > 1 {
			classes = classes[len(classes)-1:]
		}
		picks = append(picks, Pick{UnitNid: c.Nid, UnitName: c.Name, Classes: classes})
	}
	return picks, nil
}

func (g *Generator) eligible(pool []Candidate, opts Options) []Candidate {
	allowed := []string{"Vanilla"}
	if opts.IncludeMonsters {
		allowed = append(allowed, "Monsters")
	}
	if opts.IncludeDG {
		allowed = append(allowed, "Dragon Gate")
	}
	var out []Candidate
	for _, c := range pool {
		if slices.Contains(allowed, c.Category) {
			out = append(out, c)
		}
	}
	return out
}

// path walks up to maxPromotions random promotions from the base class.
func (g *Generator) path(base string) []string {
	if base == "" {
		return []string{}
	}
	out := []string{base}
	cur := base
	for i := 0; i < maxPromotions && g.promo != nil; i++ {
		next := g.promo(cur)
		if len(next) == 0 {
			break
		}
		cur = next[g.rng.IntN(len(next))]
		out = append(out, cur)
	}
	return out
}
