package crossref

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/kasuganosora/fe8rguide/resource"
	"github.com/stretchr/testify/assert"
)

type skill struct {
	nid, name, desc string
}

func (s skill) DisplayName() string { return s.name }
func (s skill) Description() string { return s.desc }

func nids(in []skill) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = s.nid
	}
	return out
}

// ---- StatusCandidates ----

func TestStatusCandidates(t *testing.T) {
	c := resource.NewComponents(
		[2]any{"status_on_equip", "Quick_Strike_1"},
		[2]any{"status_on_hit", "Poison_Proc"},
		[2]any{"multi_status_on_equip", []string{"Quick_Strike_2", "Secret_hide", "Quick_Strike_1"}},
		[2]any{"statuses_on_hit", []string{"Avo_Ddg_10", "Frail", "Rage_Buff"}},
	)
	assert.Equal(t, []string{"Quick_Strike_1", "Quick_Strike_2", "Frail"}, StatusCandidates(c))
}

func TestStatusCandidates_None(t *testing.T) {
	assert.Empty(t, StatusCandidates(resource.NewComponents([2]any{"damage", 3})))
	assert.Empty(t, StatusCandidates(resource.NewComponents([2]any{"status_on_equip", nil})))
}

// ---- DedupeByName ----

func TestDedupeByName_LongestWins(t *testing.T) {
	in := []skill{
		{"Quick_Strike_1", "Quick Strike", strings.Repeat("a", 10)},
		{"Quick_Strike_2", "Quick Strike", strings.Repeat("b", 40)},
	}
	assert.Equal(t, []string{"Quick_Strike_2"}, nids(DedupeByName(in)))
}

func TestDedupeByName_TieKeepsFirst(t *testing.T) {
	in := []skill{
		{"A_1", "Alpha", "same"},
		{"B", "Beta", "x"},
		{"A_2", "Alpha", "also"},
	}
	assert.Equal(t, []string{"A_1", "B"}, nids(DedupeByName(in)))
}

func TestDedupeByName_DropsBoilerplate(t *testing.T) {
	in := []skill{
		{"Knife", "Quick Knife", "Placeholder status."},
		{"Empty", "Empty", "  "},
		{"Helper", "Helper", "HELPER STATUS for the engine"},
		{"Used", "Used", "Used for internal checks"},
		{"Dont", "Dont", "Do not use"},
		{"Real", "Real", "Deals damage."},
	}
	assert.Equal(t, []string{"Real"}, nids(DedupeByName(in)))
}

func TestDedupeByName_Idempotent(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	names := []string{"A", "B", "C", "D"}
	var in []skill
	for i := 0; i < 50; i++ {
		n := names[r.IntN(len(names))]
		in = append(in, skill{nid: n + strings.Repeat("_", i), name: n, desc: strings.Repeat("d", 1+r.IntN(20))})
	}
	once := DedupeByName(in)
	twice := DedupeByName(once)
	assert.Equal(t, once, twice)

	longest := map[string]int{}
	for _, s := range in {
		longest[s.name] = max(longest[s.name], len(s.desc))
	}
	for _, s := range once {
		assert.Equal(t, longest[s.name], len(s.desc), s.name)
	}
}

// ---- LearnedSkills ----

func TestLearnedSkills(t *testing.T) {
	in := []resource.LearnedSkill{
		{Level: 1, SkillNid: "Canto"},
		{Level: 1, SkillNid: "Feat_Enabler"},
		{Level: 5, SkillNid: "Secret_hide"},
		{Level: 10, SkillNid: "Absolute_Mastery_Light"},
		{Level: 10, SkillNid: "Sol"},
	}
	got := LearnedSkills(in)
	assert.Equal(t, []resource.LearnedSkill{{Level: 1, SkillNid: "Canto"}, {Level: 10, SkillNid: "Sol"}}, got)
}

// ---- SupportEdges ----

func TestSupportEdges(t *testing.T) {
	both := SupportEdges(&resource.SupportPair{Unit1: "Eirika", Unit2: "Ephraim"})
	assert.Equal(t, []Edge{{"Eirika", "Ephraim"}, {"Ephraim", "Eirika"}}, both)

	one := SupportEdges(&resource.SupportPair{Unit1: "Tana", Unit2: "Eirika", OneWay: true})
	assert.Equal(t, []Edge{{"Tana", "Eirika"}}, one)
}

func TestSubItemNids(t *testing.T) {
	c := resource.NewComponents([2]any{"multi_item", []any{"Fire_Ball", "", nil, "Air_Slash"}})
	assert.Equal(t, []string{"Fire_Ball", "Air_Slash"}, SubItemNids(c))
	assert.Nil(t, SubItemNids(nil))
}
