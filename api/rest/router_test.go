package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/fe8rguide/api/rest"
	"github.com/kasuganosora/fe8rguide/cache"
	"github.com/kasuganosora/fe8rguide/importer"
	mw "github.com/kasuganosora/fe8rguide/middleware"
	"github.com/kasuganosora/fe8rguide/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const adminIP = "10.0.0.7"

type apiSetup struct {
	r     *gin.Engine
	db    *gorm.DB
	cache cache.Cache
}

// newAPI refreshes the fixture dataset into a fresh DB and builds the router.
func newAPI(t *testing.T) *apiSetup {
	t.Helper()
	db := testutil.SetupTestDB(t)
	dir := testutil.WriteFixtureDir(t)
	cur, err := importer.LoadCuration(testutil.CurationPath(dir))
	require.NoError(t, err)
	_, err = importer.New(db, cur, importer.Options{}, testutil.Logger()).Run(context.Background(), dir)
	require.NoError(t, err)

	c := testutil.SetupTestCache(t)
	r := rest.NewRouter(rest.RouterConfig{
		DB:         db,
		Logger:     testutil.Logger(),
		Cache:      c,
		PageTTL:    time.Minute,
		AllowedIPs: []string{adminIP},
	})
	return &apiSetup{r: r, db: db, cache: c}
}

func do(r http.Handler, method, url string, body any) *httptest.ResponseRecorder {
	var rd *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, url, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getJSON[T any](t *testing.T, r http.Handler, url string) T {
	t.Helper()
	w := do(r, http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, w.Code, "GET %s: %s", url, w.Body.String())
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

type ref struct {
	Nid  string `json:"nid"`
	Name string `json:"name"`
}

type group struct {
	Key     string `json:"key"`
	Order   int    `json:"order"`
	Members []ref  `json:"members"`
}

type listing struct {
	Category ref     `json:"category"`
	Sort     string  `json:"sort"`
	Groups   []group `json:"groups"`
}

func keys(groups []group) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Key
	}
	return out
}

func memberNids(groups []group) []string {
	var out []string
	for _, g := range groups {
		for _, m := range g.Members {
			out = append(out, m.Nid)
		}
	}
	return out
}

func groupFor(t *testing.T, groups []group, key string) group {
	t.Helper()
	i := slices.IndexFunc(groups, func(g group) bool { return g.Key == key })
	require.GreaterOrEqual(t, i, 0, "group %q missing from %v", key, keys(groups))
	return groups[i]
}

func TestHealth(t *testing.T) {
	api := newAPI(t)
	w := do(api.r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(mw.TraceIDHeader))
}

func TestItemCategories_GroupedByType(t *testing.T) {
	api := newAPI(t)
	resp := getJSON[struct {
		Groups []struct {
			Type       string `json:"type"`
			Categories []ref  `json:"categories"`
		} `json:"groups"`
	}](t, api.r, "/api/items/categories")

	require.Len(t, resp.Groups, 3)
	assert.Equal(t, "Item Type", resp.Groups[0].Type)
	assert.Equal(t, "Weapon Subtype", resp.Groups[1].Type)
	assert.Equal(t, "Element", resp.Groups[2].Type)
	assert.Equal(t, "wtype_Accessory", resp.Groups[0].Categories[0].Nid)
}

func TestItemList_RankGrouping(t *testing.T) {
	api := newAPI(t)
	resp := getJSON[listing](t, api.r, "/api/items")

	assert.Equal(t, "wtype_Sword", resp.Category.Nid, "default category")
	assert.Equal(t, rest.SortRankInc, resp.Sort)

	order := keys(resp.Groups)
	idx := func(k string) int { return slices.Index(order, k) }
	for _, k := range []string{"Prf", "E", "D", "C", "A"} {
		require.GreaterOrEqual(t, idx(k), 0, "rank %s in %v", k, order)
	}
	assert.Less(t, idx("Prf"), idx("E"))
	assert.Less(t, idx("E"), idx("D"))
	assert.Less(t, idx("D"), idx("C"))
	assert.Less(t, idx("C"), idx("A"))

	e := groupFor(t, resp.Groups, "E")
	assert.Equal(t, 1, e.Order)
	assert.Equal(t, []string{"Iron_Sword", "Knife"}, memberNids([]group{e}))

	listed := memberNids(resp.Groups)
	assert.NotContains(t, listed, "Rapier", "arsenal contents are not listed")
	assert.NotContains(t, listed, "Sieglinde")
	assert.NotContains(t, listed, "Moonlight", "stripped sub-items have no category")
	assert.Contains(t, listed, "Silver_Sword_DG")

	desc := getJSON[listing](t, api.r, "/api/items?category=wtype_Sword&sort=wrank_dec")
	rev := keys(desc.Groups)
	assert.Equal(t, "A", rev[0])
	assert.Less(t, slices.Index(rev, "E"), slices.Index(rev, "Prf"))
}

func TestItemList_AlphaGrouping(t *testing.T) {
	api := newAPI(t)
	resp := getJSON[listing](t, api.r, "/api/items?category=wtype_Sword&sort=alpha_inc")

	order := keys(resp.Groups)
	assert.True(t, slices.IsSorted(order), "keys ascending: %v", order)
	s := groupFor(t, resp.Groups, "S")
	assert.Equal(t, []string{"Silver_Sword_DG", "Steel_Sword"}, memberNids([]group{s}))

	desc := getJSON[listing](t, api.r, "/api/items?category=wtype_Sword&sort=alpha_dec")
	rev := keys(desc.Groups)
	slices.Reverse(rev)
	assert.Equal(t, order, rev)
}

func TestItemList_BadRequests(t *testing.T) {
	api := newAPI(t)
	assert.Equal(t, http.StatusBadRequest, do(api.r, http.MethodGet, "/api/items?sort=price", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(api.r, http.MethodGet, "/api/items?category=wtype_Gun", nil).Code)
}

func TestItemDetail(t *testing.T) {
	api := newAPI(t)
	resp := getJSON[struct {
		Item struct {
			Nid           string `json:"nid"`
			Name          string `json:"name"`
			StatusOnEquip []ref  `json:"status_on_equip"`
			Categories    []ref  `json:"categories"`
		} `json:"item"`
	}](t, api.r, "/api/items/Quick_Blade")

	assert.Equal(t, "Quick Blade", resp.Item.Name)
	require.Len(t, resp.Item.StatusOnEquip, 1)
	assert.Equal(t, "Quick_Strike_2", resp.Item.StatusOnEquip[0].Nid)

	w := do(api.r, http.MethodGet, "/api/items/Excalibur", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"item not found"}`, w.Body.String())
}

func TestArsenals(t *testing.T) {
	api := newAPI(t)
	resp := getJSON[struct {
		Unit     string `json:"unit"`
		Arsenals []struct {
			Nid   string `json:"nid"`
			Items []ref  `json:"items"`
		} `json:"arsenals"`
	}](t, api.r, "/api/arsenals/Tana")

	require.Len(t, resp.Arsenals, 2)
	assert.Equal(t, "Tanas_Arsenal", resp.Arsenals[0].Nid)
	assert.Equal(t, "Tanas_Stash", resp.Arsenals[1].Nid)
	require.Len(t, resp.Arsenals[1].Items, 1)
	assert.Equal(t, "Tana_Heal", resp.Arsenals[1].Items[0].Nid)

	assert.Equal(t, http.StatusNotFound, do(api.r, http.MethodGet, "/api/arsenals/Ghost", nil).Code)
}

func TestShops(t *testing.T) {
	api := newAPI(t)
	list := getJSON[struct {
		Shops []ref `json:"shops"`
	}](t, api.r, "/api/shops")
	assert.Len(t, list.Shops, 4)

	shop := getJSON[struct {
		Shop struct {
			Nid      string `json:"nid"`
			AbbrName string `json:"abbr_name"`
			Items    []ref  `json:"items"`
		} `json:"shop"`
		WeaponTypes []string `json:"weapon_types"`
	}](t, api.r, "/api/shops/5_Armory_9_Armory")
	assert.Equal(t, "Chapter 5 / 9", shop.Shop.AbbrName)
	assert.Equal(t, []string{"Iron_Lance", "Iron_Sword"}, []string{shop.Shop.Items[0].Nid, shop.Shop.Items[1].Nid})
	assert.Equal(t, []string{"Lance", "Sword"}, shop.WeaponTypes)

	assert.Equal(t, http.StatusNotFound, do(api.r, http.MethodGet, "/api/shops/3_Vendor", nil).Code)
}

func TestSkills(t *testing.T) {
	api := newAPI(t)
	idx := getJSON[struct {
		Tiers []rest.FeatTier `json:"tiers"`
	}](t, api.r, "/api/skills")

	require.Len(t, idx.Tiers, 3)
	assert.Equal(t, "MyUnit/T1", idx.Tiers[0].Nid)
	assert.Equal(t, "Feats (Tier 1)", idx.Tiers[0].Name)
	assert.Equal(t, []rest.SkillRef{{Nid: "Vantage_T1", Name: "Vantage"}}, idx.Tiers[0].Skills)
	assert.Equal(t, []rest.SkillRef{{Nid: "Lunge_T3", Name: "Lunge"}}, idx.Tiers[2].Skills)

	skill := getJSON[struct {
		Skill struct {
			Nid            string `json:"nid"`
			SourceCategory ref    `json:"source_category"`
			Categories     []ref  `json:"categories"`
		} `json:"skill"`
	}](t, api.r, "/api/skills/Rally_T2")
	assert.Equal(t, "MyUnit/T2", skill.Skill.SourceCategory.Nid)
	assert.Len(t, skill.Skill.Categories, 2)

	assert.Equal(t, http.StatusNotFound, do(api.r, http.MethodGet, "/api/skills/Astra", nil).Code)
}

func TestClasses(t *testing.T) {
	api := newAPI(t)
	cats := getJSON[struct {
		Groups []struct {
			Type string `json:"type"`
		} `json:"groups"`
	}](t, api.r, "/api/classes/categories")
	require.NotEmpty(t, cats.Groups)
	assert.Equal(t, "Tier", cats.Groups[0].Type)

	list := getJSON[listing](t, api.r, "/api/classes")
	assert.Equal(t, "class_tier_t1", list.Category.Nid)
	assert.Equal(t, []string{"C", "L", "P", "T"}, keys(list.Groups))
	assert.ElementsMatch(t, []string{"Eirika_Lord", "Ephraim_Lord"}, memberNids([]group{groupFor(t, list.Groups, "L")}))

	desc := getJSON[listing](t, api.r, "/api/classes?category=class_tier_t1&sort=alpha_dec")
	assert.Equal(t, []string{"T", "P", "L", "C"}, keys(desc.Groups))
	assert.Equal(t, http.StatusBadRequest, do(api.r, http.MethodGet, "/api/classes?sort=wrank_inc", nil).Code)

	detail := getJSON[struct {
		Class struct {
			Nid           string `json:"nid"`
			AltName       string `json:"alt_name"`
			TurnsInto     []ref  `json:"turns_into"`
			LearnedSkills []struct {
				Level int `json:"level"`
				Skill ref `json:"skill"`
			} `json:"learned_skills"`
		} `json:"class"`
	}](t, api.r, "/api/classes/Eirika_Lord")
	assert.Equal(t, "Eirika", detail.Class.AltName)
	require.Len(t, detail.Class.TurnsInto, 1)
	assert.Equal(t, "Eirika_Great_Lord", detail.Class.TurnsInto[0].Nid)
	require.Len(t, detail.Class.LearnedSkills, 1)
	assert.Equal(t, "Canto", detail.Class.LearnedSkills[0].Skill.Nid)
}

func TestClassPromotions(t *testing.T) {
	api := newAPI(t)
	type promos struct {
		Class      string `json:"class"`
		Promotions struct {
			TurnsInto []string `json:"turns_into"`
			TurnsFrom []string `json:"turns_from"`
		} `json:"promotions"`
	}
	great := getJSON[promos](t, api.r, "/api/classes/Eirika_Great_Lord/promotions")
	assert.Empty(t, great.Promotions.TurnsInto)
	assert.Equal(t, []string{"Eirika_Lord"}, great.Promotions.TurnsFrom)

	lord := getJSON[promos](t, api.r, "/api/classes/Ephraim_Lord/promotions")
	assert.Equal(t, []string{"Ephraim_Great_Lord"}, lord.Promotions.TurnsInto, "unknown targets are not stored")

	assert.Equal(t, http.StatusNotFound, do(api.r, http.MethodGet, "/api/classes/Missing_Class/promotions", nil).Code)
}

func TestUnits(t *testing.T) {
	api := newAPI(t)
	cats := getJSON[struct {
		Groups []struct {
			Type       string `json:"type"`
			Categories []ref  `json:"categories"`
		} `json:"groups"`
	}](t, api.r, "/api/units/categories")
	require.Len(t, cats.Groups, 1)
	assert.Len(t, cats.Groups[0].Categories, 3)

	list := getJSON[listing](t, api.r, "/api/units")
	assert.Equal(t, "Vanilla", list.Category.Nid)
	assert.Equal(t, []string{"C", "E", "M", "P", "T"}, keys(list.Groups))
	assert.Equal(t, []string{"Eirika", "Ephraim"}, memberNids([]group{groupFor(t, list.Groups, "E")}))
	assert.NotContains(t, memberNids(list.Groups), "Orson_Evil")

	monsters := getJSON[listing](t, api.r, "/api/units?category=Monsters&sort=alpha_dec")
	assert.Equal(t, []string{"Myrrh"}, memberNids(monsters.Groups))

	detail := getJSON[struct {
		Unit struct {
			Nid       string `json:"nid"`
			BaseClass ref    `json:"base_class"`
			Supports  []ref  `json:"supports"`
			Arsenals  []ref  `json:"arsenals"`
		} `json:"unit"`
	}](t, api.r, "/api/units/Eirika")
	assert.Equal(t, "Eirika_Lord", detail.Unit.BaseClass.Nid)
	assert.Equal(t, []ref{{Nid: "Ephraim", Name: "Ephraim"}}, detail.Unit.Supports)
	require.Len(t, detail.Unit.Arsenals, 1)
	assert.Equal(t, "Eirikas_Arsenal", detail.Unit.Arsenals[0].Nid)

	assert.Equal(t, http.StatusNotFound, do(api.r, http.MethodGet, "/api/units/Lyon", nil).Code)
}

func TestUnitClassSheet(t *testing.T) {
	api := newAPI(t)
	resp := getJSON[struct {
		Unit  ref `json:"unit"`
		Class ref `json:"class"`
		Stats struct {
			Growths  map[string]int `json:"growths"`
			MaxStats map[string]int `json:"max_stats"`
		} `json:"stats"`
	}](t, api.r, "/api/units/Eirika/classes/Eirika_Lord")

	assert.Equal(t, "Eirika", resp.Unit.Nid)
	assert.Equal(t, "Eirika_Lord", resp.Class.Nid)
	assert.Equal(t, 70, resp.Stats.Growths["HP"])
	assert.Equal(t, 60, resp.Stats.MaxStats["HP"])

	w := do(api.r, http.MethodGet, "/api/units/Eirika/classes/Missing_Class", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"class not found"}`, w.Body.String())
}

func TestRandomRun(t *testing.T) {
	api := newAPI(t)
	w := do(api.r, http.MethodPost, "/api/random-run", map[string]any{
		"lord": "Eirika", "num_units": 3, "add_thief": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Units []struct {
			UnitNid string   `json:"unit_nid"`
			Classes []string `json:"classes"`
		} `json:"units"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Units, 3)
	assert.Equal(t, "Eirika", resp.Units[0].UnitNid)
	assert.Equal(t, []string{"Eirika_Lord", "Eirika_Great_Lord"}, resp.Units[0].Classes)
	assert.Equal(t, "Colm", resp.Units[1].UnitNid, "the only eligible thief")
	assert.Equal(t, []string{"Thief"}, resp.Units[1].Classes)
	assert.Contains(t, []string{"Tana", "ProTagonist", "Moulder"}, resp.Units[2].UnitNid)
}

func TestRandomRun_Errors(t *testing.T) {
	api := newAPI(t)
	assert.Equal(t, http.StatusNotFound,
		do(api.r, http.MethodPost, "/api/random-run", map[string]any{"lord": "Lyon", "num_units": 2}).Code)
	assert.Equal(t, http.StatusBadRequest,
		do(api.r, http.MethodPost, "/api/random-run", map[string]any{"lord": "Eirika", "num_units": 0}).Code)

	req := httptest.NewRequest(http.MethodPost, "/api/random-run", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	api.r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminRefresh_Whitelisted(t *testing.T) {
	api := newAPI(t)

	w := do(api.r, http.MethodGet, "/api/admin/refresh", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/refresh", nil)
	req.Header.Set("X-Real-IP", adminIP)
	w = httptest.NewRecorder()
	api.r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Run struct {
			TraceID string `json:"trace_id"`
			Error   string `json:"error"`
			Report  struct {
				Skips  map[string]int `json:"skips"`
				Stages []struct {
					Name string `json:"name"`
				} `json:"stages"`
			} `json:"report"`
		} `json:"run"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Run.TraceID)
	assert.Empty(t, resp.Run.Error)
	assert.Len(t, resp.Run.Report.Stages, 10)
	assert.Positive(t, resp.Run.Report.Skips["missing_item"])
}

func TestAdminRefresh_NoRunYet(t *testing.T) {
	r := rest.NewRouter(rest.RouterConfig{DB: testutil.SetupTestDB(t), AllowedIPs: []string{adminIP}})
	req := httptest.NewRequest(http.MethodGet, "/api/admin/refresh", nil)
	req.Header.Set("X-Real-IP", adminIP)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPageCache_ServesRepeatsAndClears(t *testing.T) {
	api := newAPI(t)

	first := do(api.r, http.MethodGet, "/api/items/Iron_Sword", nil)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get(mw.PageCacheHeader))

	second := do(api.r, http.MethodGet, "/api/items/Iron_Sword", nil)
	assert.Equal(t, "HIT", second.Header().Get(mw.PageCacheHeader))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	missing := do(api.r, http.MethodGet, "/api/items/Excalibur", nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	again := do(api.r, http.MethodGet, "/api/items/Excalibur", nil)
	assert.Equal(t, "MISS", again.Header().Get(mw.PageCacheHeader), "errors are not cached")

	require.NoError(t, api.cache.DelPrefix(context.Background(), mw.PageCachePrefix))
	third := do(api.r, http.MethodGet, "/api/items/Iron_Sword", nil)
	assert.Equal(t, "MISS", third.Header().Get(mw.PageCacheHeader))

	run := do(api.r, http.MethodPost, "/api/random-run", map[string]any{"lord": "Ephraim", "num_units": 1})
	assert.Empty(t, run.Header().Get(mw.PageCacheHeader), "writes bypass the page cache")
}
