package promo

import (
	"slices"
	"testing"

	"github.com/kasuganosora/fe8rguide/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func class(nid string, into ...string) *resource.ClassRecord {
	return &resource.ClassRecord{Nid: nid, TurnsInto: into}
}

func TestBuildPromoMap(t *testing.T) {
	m := BuildPromoMap([]*resource.ClassRecord{
		class("Eirika_Lord", "Eirika_Great_Lord"),
		class("Eirika_Great_Lord"),
		class("Cleric", "Bishop", "Sage", "Bishop"),
		class("Monk", "Bishop"),
		class("Bishop"),
	})

	require.Contains(t, m, "Sage", "targets without a record still get an entry")
	assert.Equal(t, []string{"Eirika_Great_Lord"}, m["Eirika_Lord"].TurnsInto)
	assert.Equal(t, []string{"Eirika_Lord"}, m["Eirika_Great_Lord"].TurnsFrom)
	assert.Equal(t, []string{"Bishop", "Sage"}, m["Cleric"].TurnsInto)
	assert.Equal(t, []string{"Cleric", "Monk"}, m["Bishop"].TurnsFrom)
	assert.Empty(t, m["Bishop"].TurnsInto)
}

func TestBuildPromoMap_Transpose(t *testing.T) {
	classes := []*resource.ClassRecord{
		class("A", "B", "C"),
		class("B", "C", "A"), // cycle
		class("C"),
		class("D", "E"),
	}
	m := BuildPromoMap(classes)
	for a, ea := range m {
		for b, eb := range m {
			assert.Equal(t, slices.Contains(ea.TurnsInto, b), slices.Contains(eb.TurnsFrom, a), "%s → %s", a, b)
		}
	}
}
