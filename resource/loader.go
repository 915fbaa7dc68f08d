package resource

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tidwall/gjson"
)

// ErrMissingDir is returned when the configured game_data directory does not exist.
var ErrMissingDir = errors.New("resource: data directory does not exist")

// ---- LT game_data structures ----

// ItemRecord is one entry of items.json.
type ItemRecord struct {
	Nid        string     `json:"nid"`
	Name       string     `json:"name"`
	Desc       string     `json:"desc"`
	IconNid    string     `json:"icon_nid"`
	Components Components `json:"components"`
}

// SkillRecord is one entry of skills.json.
type SkillRecord struct {
	Nid        string     `json:"nid"`
	Name       string     `json:"name"`
	Desc       string     `json:"desc"`
	IconNid    string     `json:"icon_nid"`
	Components Components `json:"components"`
}

// LearnedSkill is a [level, skill_nid] pair.
type LearnedSkill struct {
	Level    int
	SkillNid string
}

// A malformed pair decodes to the zero value so one bad entry does not fail
// the whole file; callers drop entries without a SkillNid.
func (ls *LearnedSkill) UnmarshalJSON(b []byte) error {
	arr := gjson.ParseBytes(b).Array()
	if len(arr) < 2 {
		*ls = LearnedSkill{}
		return nil
	}
	ls.Level = int(arr[0].Int())
	ls.SkillNid = arr[1].String()
	return nil
}

// WexpGain is a class's per-weapon proficiency entry: [usable, wexp_gain, cap].
type WexpGain struct {
	Usable bool
	Gain   int
	Cap    int
}

func (w *WexpGain) UnmarshalJSON(b []byte) error {
	arr := gjson.ParseBytes(b).Array()
	if len(arr) > 0 {
		w.Usable = arr[0].Bool()
	}
	if len(arr) > 1 {
		w.Gain = int(arr[1].Int())
	}
	if len(arr) > 2 {
		w.Cap = int(arr[2].Int())
	}
	return nil
}

// Proficient reports whether the class starts with any proficiency in the weapon.
func (w WexpGain) Proficient() bool {
	return w.Usable || w.Gain > 0
}

// ClassRecord is one entry of classes.json.
type ClassRecord struct {
	Nid           string              `json:"nid"`
	Name          string              `json:"name"`
	Desc          string              `json:"desc"`
	Tier          int                 `json:"tier"`
	MaxLevel      int                 `json:"max_level"`
	Tags          []string            `json:"tags"`
	Bases         map[string]int      `json:"bases"`
	Growths       map[string]int      `json:"growths"`
	GrowthBonus   map[string]int      `json:"growth_bonus"`
	MaxStats      map[string]int      `json:"max_stats"`
	Promotion     map[string]int      `json:"promotion"`
	TurnsInto     []string            `json:"turns_into"`
	WexpGain      map[string]WexpGain `json:"wexp_gain"`
	LearnedSkills []LearnedSkill      `json:"learned_skills"`
	MapSpriteNid  string              `json:"map_sprite_nid"`
}

// StartingItem is a [item_nid, droppable] pair.
type StartingItem struct {
	ItemNid   string
	Droppable bool
}

func (si *StartingItem) UnmarshalJSON(b []byte) error {
	r := gjson.ParseBytes(b)
	if !r.IsArray() {
		si.ItemNid = r.String()
		return nil
	}
	arr := r.Array()
	if len(arr) == 0 {
		return fmt.Errorf("resource: starting item %s: empty", b)
	}
	si.ItemNid = arr[0].String()
	if len(arr) > 1 {
		si.Droppable = arr[1].Bool()
	}
	return nil
}

// UnitRecord is one entry of units.json.
type UnitRecord struct {
	Nid              string         `json:"nid"`
	Name             string         `json:"name"`
	Desc             string         `json:"desc"`
	Level            int            `json:"level"`
	Klass            string         `json:"klass"`
	Affinity         string         `json:"affinity"`
	PortraitNid      string         `json:"portrait_nid"`
	Bases            map[string]int `json:"bases"`
	Growths          map[string]int `json:"growths"`
	StatCapModifiers map[string]int `json:"stat_cap_modifiers"`
	StartingItems    []StartingItem `json:"starting_items"`
	LearnedSkills    []LearnedSkill `json:"learned_skills"`
}

// EventRecord is one entry of events.json. Only the annotations matter here.
type EventRecord struct {
	Nid    string   `json:"nid"`
	Source []string `json:"_source"`
}

// AffinityRecord is one entry of affinities.json.
type AffinityRecord struct {
	Nid   string          `json:"nid"`
	Name  string          `json:"name"`
	Desc  string          `json:"desc"`
	Bonus json.RawMessage `json:"bonus"`
}

// SupportPair is one entry of support_pairs.json.
type SupportPair struct {
	Nid    string `json:"nid"`
	Unit1  string `json:"unit1"`
	Unit2  string `json:"unit2"`
	OneWay bool   `json:"one_way"`
}

// WeaponRecord is one entry of weapons.json.
type WeaponRecord struct {
	Nid     string `json:"nid"`
	Name    string `json:"name"`
	IconNid string `json:"icon_nid"`
}

// ---- Loader ----

// Loader reads and holds every game_data file the refresh consumes.
type Loader struct {
	DataPath string

	Items        []*ItemRecord
	Skills       []*SkillRecord
	Classes      []*ClassRecord
	Units        []*UnitRecord
	Events       []*EventRecord
	Affinities   []*AffinityRecord
	SupportPairs []*SupportPair
	Weapons      []*WeaponRecord

	// Externally curated nid → category path maps.
	UnitCategories  map[string]string
	SkillCategories map[string]string
	ItemCategories  map[string]string
}

// NewLoader creates a Loader for the given game_data directory.
func NewLoader(dataPath string) *Loader {
	return &Loader{DataPath: dataPath}
}

// Load reads all files. Any missing or malformed file aborts the load.
func (rl *Loader) Load() error {
	if st, err := os.Stat(rl.DataPath); err != nil || !st.IsDir() {
		return fmt.Errorf("%w: %s", ErrMissingDir, rl.DataPath)
	}
	loaders := []func() error{
		rl.loadSkills,
		rl.loadItems,
		rl.loadClasses,
		rl.loadUnits,
		rl.loadEvents,
		rl.loadAffinities,
		rl.loadSupportPairs,
		rl.loadWeapons,
		rl.loadCategoryMaps,
	}
	for _, fn := range loaders {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

func (rl *Loader) path(file string) string {
	return filepath.Join(rl.DataPath, file)
}

func loadJSONArray[T any](path string) ([]*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("resource: read %s: %w", path, err)
	}
	var arr []*T
	if err := json.Unmarshal(data, &arr); err != nil {
		return nil, fmt.Errorf("resource: parse %s: %w", path, err)
	}
	// null entries carry nothing useful
	out := arr[:0]
	for _, v := range arr {
		if v != nil {
			out = append(out, v)
		}
	}
	return out, nil
}

func loadJSONObject[T any](path string, out *T) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("resource: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("resource: parse %s: %w", path, err)
	}
	return nil
}

func (rl *Loader) loadSkills() error {
	var err error
	rl.Skills, err = loadJSONArray[SkillRecord](rl.path("skills.json"))
	return err
}

func (rl *Loader) loadItems() error {
	var err error
	rl.Items, err = loadJSONArray[ItemRecord](rl.path("items.json"))
	return err
}

func (rl *Loader) loadClasses() error {
	var err error
	rl.Classes, err = loadJSONArray[ClassRecord](rl.path("classes.json"))
	return err
}

func (rl *Loader) loadUnits() error {
	var err error
	rl.Units, err = loadJSONArray[UnitRecord](rl.path("units.json"))
	return err
}

func (rl *Loader) loadEvents() error {
	var err error
	rl.Events, err = loadJSONArray[EventRecord](rl.path("events.json"))
	return err
}

func (rl *Loader) loadAffinities() error {
	var err error
	rl.Affinities, err = loadJSONArray[AffinityRecord](rl.path("affinities.json"))
	return err
}

func (rl *Loader) loadSupportPairs() error {
	var err error
	rl.SupportPairs, err = loadJSONArray[SupportPair](rl.path("support_pairs.json"))
	return err
}

func (rl *Loader) loadWeapons() error {
	var err error
	rl.Weapons, err = loadJSONArray[WeaponRecord](rl.path("weapons.json"))
	return err
}

func (rl *Loader) loadCategoryMaps() error {
	rl.UnitCategories = make(map[string]string)
	rl.SkillCategories = make(map[string]string)
	rl.ItemCategories = make(map[string]string)
	if err := loadJSONObject(rl.path("units.category.json"), &rl.UnitCategories); err != nil {
		return err
	}
	if err := loadJSONObject(rl.path("skills.category.json"), &rl.SkillCategories); err != nil {
		return err
	}
	return loadJSONObject(rl.path("items.category.json"), &rl.ItemCategories)
}

// SortedKeys returns the keys of a category map in a stable order.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
