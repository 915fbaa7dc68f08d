package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/kasuganosora/fe8rguide/config"
	"github.com/kasuganosora/fe8rguide/game/promo"
	mw "github.com/kasuganosora/fe8rguide/middleware"
	"github.com/kasuganosora/fe8rguide/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromoMapCommand(t *testing.T) {
	dir := testutil.WriteFixtureDir(t)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"promo-map", "--data", dir})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		promoData = ""
	})

	require.NoError(t, rootCmd.Execute())

	var m promo.Map
	require.NoError(t, json.Unmarshal(out.Bytes(), &m))
	require.Contains(t, m, "Cleric")
	assert.Equal(t, []string{"Bishop"}, m["Cleric"].TurnsInto)
	assert.Equal(t, []string{"Cleric"}, m["Bishop"].TurnsFrom)
	assert.Equal(t, []string{"Ephraim_Lord"}, m["Missing_Class"].TurnsFrom, "unknown targets keep the transpose exact")
}

func TestRefreshCommand_MissingConfig(t *testing.T) {
	rootCmd.SetArgs([]string{"refresh", "--config", t.TempDir() + "/nope.yaml"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		cfgPath = "config/config.yaml"
	})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config")
}

func TestClearPages_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set(mw.PageCachePrefix+"/api/items", "{}"))
	require.NoError(t, mr.Set("other", "kept"))

	a := &app{cfg: &config.Config{Cache: config.CacheConfig{RedisAddr: mr.Addr()}}, logger: testutil.Logger()}
	cleared, err := a.clearPages(context.Background())
	require.NoError(t, err)
	assert.True(t, cleared)
	assert.False(t, mr.Exists(mw.PageCachePrefix+"/api/items"))
	assert.True(t, mr.Exists("other"))
}

func TestClearPages_LocalCacheSkipped(t *testing.T) {
	a := &app{cfg: &config.Config{}, logger: testutil.Logger()}
	cleared, err := a.clearPages(context.Background())
	require.NoError(t, err)
	assert.False(t, cleared, "a separate process cannot reach serve's in-process cache")
}
