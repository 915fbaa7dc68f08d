package importer

import (
	"fmt"

	"github.com/kasuganosora/fe8rguide/game/arsenal"
	"github.com/kasuganosora/fe8rguide/game/classify"
	"github.com/kasuganosora/fe8rguide/game/crossref"
	"github.com/kasuganosora/fe8rguide/model"
	"github.com/kasuganosora/fe8rguide/resource"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// state carries what earlier stages resolved to the later ones.
type state struct {
	rl     *resource.Loader
	cur    *Curation
	strict bool
	batch  int
	rep    *Report
	log    *zap.Logger
	sr     *StageReport

	skillCats *classify.Registry
	itemCats  *classify.Registry
	classCats *classify.Registry

	skillByNid  map[string]*model.Skill
	itemByNid   map[string]*model.Item
	superOf     map[string][]string
	weaponNames map[string]string
	affinitySet map[string]bool
	classSet    map[string]bool
	unitSet     map[string]bool

	containers        []arsenal.Container
	skippedContainers []string
}

func newState(rl *resource.Loader, cur *Curation, opts Options, rep *Report, log *zap.Logger) *state {
	return &state{
		rl:          rl,
		cur:         cur,
		strict:      opts.Strict,
		batch:       opts.BatchSize,
		rep:         rep,
		log:         log,
		skillByNid:  make(map[string]*model.Skill),
		itemByNid:   make(map[string]*model.Item),
		superOf:     make(map[string][]string),
		weaponNames: make(map[string]string),
		affinitySet: make(map[string]bool),
		classSet:    make(map[string]bool),
		unitSet:     make(map[string]bool),
	}
}

// note records the outcome of a link attempt in the current stage.
func (st *state) note(subject, target string, res LinkResult) {
	st.rep.record(st.sr.Name, subject, target, res)
}

// present resolves nid against a set of stored records.
func present[V any](m map[string]V, nid string, miss SkipReason) LinkResult {
	if _, ok := m[nid]; ok {
		return linked()
	}
	return skipped(miss)
}

// linkSet collects join rows, refusing pairs it has already seen.
type linkSet[T comparable] struct {
	seen map[T]struct{}
	rows []T
}

func (ls *linkSet[T]) add(row T) LinkResult {
	if ls.seen == nil {
		ls.seen = make(map[T]struct{})
	}
	if _, ok := ls.seen[row]; ok {
		return skipped(SkipDuplicateLink)
	}
	ls.seen[row] = struct{}{}
	ls.rows = append(ls.rows, row)
	return linked()
}

// insertRows writes entity rows without touching their associations.
func insertRows[T any](tx *gorm.DB, rows []*T, batch int) error {
	if len(rows) == 0 {
		return nil
	}
	if err := tx.Omit(clause.Associations).CreateInBatches(rows, batch).Error; err != nil {
		return fmt.Errorf("insert %T: %w", rows[0], err)
	}
	return nil
}

// insertLinks writes join rows. Pairs already stored are ignored per row.
func (st *state) insertLinks(tx *gorm.DB, rows any, n int) error {
	if n == 0 {
		return nil
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(rows, st.batch).Error; err != nil {
		return fmt.Errorf("insert %T: %w", rows, err)
	}
	st.sr.Links += n
	return nil
}

func flushLinks[T comparable](st *state, tx *gorm.DB, ls *linkSet[T]) error {
	return st.insertLinks(tx, &ls.rows, len(ls.rows))
}

// claim marks nid as taken, noting a duplicate when it already was.
func (st *state) claim(seen map[string]bool, nid string) bool {
	if nid == "" {
		return false
	}
	if seen[nid] {
		st.note(nid, "", skipped(SkipDuplicateNid))
		return false
	}
	seen[nid] = true
	return true
}

// learnedSkills filters a learn list and resolves it against stored skills.
func (st *state) learnedSkills(owner string, in []resource.LearnedSkill) []resource.LearnedSkill {
	kept := make(map[resource.LearnedSkill]bool)
	for _, ls := range crossref.LearnedSkills(in) {
		kept[ls] = true
	}
	var out []resource.LearnedSkill
	seen := make(map[string]bool)
	for _, ls := range in {
		if ls.SkillNid == "" {
			st.note(owner, "", skipped(SkipMalformedSkill))
			continue
		}
		if !kept[ls] {
			st.note(owner, ls.SkillNid, skipped(SkipExcludedSkill))
			continue
		}
		res := present(st.skillByNid, ls.SkillNid, SkipMissingSkill)
		if res.Linked && seen[ls.SkillNid] {
			res = skipped(SkipDuplicateLink)
		}
		st.note(owner, ls.SkillNid, res)
		if res.Linked {
			seen[ls.SkillNid] = true
			out = append(out, ls)
		}
	}
	return out
}
