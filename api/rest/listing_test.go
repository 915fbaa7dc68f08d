package rest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	name  string
	rank  string
	order int
	typ   string
}

func rowName(r row) string { return r.name }

func TestListable(t *testing.T) {
	assert.True(t, listable("Iron_Sword"))
	assert.True(t, listable("Silver_Sword_DG"))
	for _, nid := range []string{"Iron_Sword_P", "Axe_A", "Lance_D", "Iron_Sword_Test"} {
		assert.False(t, listable(nid), nid)
	}
}

func TestGroupAlpha(t *testing.T) {
	rows := []row{{name: "steel"}, {name: "Iron"}, {name: "Silver"}, {name: ""}, {name: "éclair"}}

	got := groupAlpha(rows, rowName, false)
	require.Len(t, got, 4)
	assert.Equal(t, []string{"#", "I", "S", "É"}, []string{got[0].Key, got[1].Key, got[2].Key, got[3].Key})
	assert.Equal(t, []row{{name: "Silver"}, {name: "steel"}}, got[2].Members, "members by name, case kept")

	desc := groupAlpha(rows, rowName, true)
	assert.Equal(t, "É", desc[0].Key)
	assert.Equal(t, "#", desc[3].Key)
}

func TestGroupRank(t *testing.T) {
	rows := []row{
		{name: "Steel", rank: "D", order: 2},
		{name: "Iron", rank: "E", order: 1},
		{name: "Knife", rank: "E", order: 1},
		{name: "Rapier", rank: "Prf", order: 0},
	}
	rank := func(r row) (string, int) { return r.rank, r.order }

	inc := groupRank(rows, rank, rowName, false)
	require.Len(t, inc, 3)
	assert.Equal(t, "Prf", inc[0].Key)
	assert.Equal(t, "E", inc[1].Key)
	assert.Equal(t, 1, inc[1].Order)
	assert.Equal(t, "Iron", inc[1].Members[0].name)

	dec := groupRank(rows, rank, rowName, true)
	assert.Equal(t, []string{"D", "E", "Prf"}, []string{dec[0].Key, dec[1].Key, dec[2].Key})
}

func TestGroupByType_KeepsRuns(t *testing.T) {
	rows := []row{{name: "a", typ: "Tier"}, {name: "b", typ: "Tier"}, {name: "c", typ: "Weapon"}, {name: "d", typ: "Tier"}}
	got := groupByType(rows, func(r row) string { return r.typ })
	require.Len(t, got, 3)
	assert.Len(t, got[0].Categories, 2)
	assert.Equal(t, "Tier", got[2].Type)

	assert.Empty(t, groupByType([]row(nil), func(r row) string { return r.typ }))
	assert.NotNil(t, groupByType([]row(nil), func(r row) string { return r.typ }))
}
