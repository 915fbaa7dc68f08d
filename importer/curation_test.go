package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCuration_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curation.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`shop_abbreviations:
  2_Armory_Global_IdeArmory: Ide Village
  3_Vendor: Chapter 3
`), 0o644))

	cur, err := LoadCuration(path)
	require.NoError(t, err)

	abbr, ok := cur.Abbreviation("2_Armory_Global_IdeArmory")
	assert.True(t, ok)
	assert.Equal(t, "Ide Village", abbr, "file entries win")

	abbr, ok = cur.Abbreviation("3_Vendor")
	assert.True(t, ok)
	assert.Equal(t, "Chapter 3", abbr)

	abbr, ok = cur.Abbreviation("Global_RaustenCourtVendor")
	assert.True(t, ok)
	assert.Equal(t, "Rausten Court", abbr)

	_, ok = cur.Abbreviation("99_Vendor")
	assert.False(t, ok)
}

func TestLoadCuration_EmptyPath(t *testing.T) {
	cur, err := LoadCuration("")
	require.NoError(t, err)
	abbr, ok := cur.Abbreviation("Dragon_Gate_Vendor")
	assert.True(t, ok)
	assert.Equal(t, "Dragon's Gate", abbr)
}

func TestLoadCuration_Errors(t *testing.T) {
	_, err := LoadCuration(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shop_abbreviations: [unclosed"), 0o644))
	_, err = LoadCuration(path)
	assert.Error(t, err)
}

func TestDefaultCuration_IsACopy(t *testing.T) {
	a := DefaultCuration()
	a.ShopAbbreviations["2_Armory_Global_IdeArmory"] = "changed"
	b := DefaultCuration()
	assert.Equal(t, "Ide", b.ShopAbbreviations["2_Armory_Global_IdeArmory"])
}
