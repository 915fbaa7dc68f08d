package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// FixtureFiles is a miniature game_data export covering every rule the
// refresh applies. Tests may copy and edit it before writing.
func FixtureFiles() map[string]string {
	return map[string]string{
		"items.json":           fixtureItems,
		"skills.json":          fixtureSkills,
		"classes.json":         fixtureClasses,
		"units.json":           fixtureUnits,
		"events.json":          fixtureEvents,
		"affinities.json":      fixtureAffinities,
		"support_pairs.json":   fixtureSupportPairs,
		"weapons.json":         fixtureWeapons,
		"units.category.json":  fixtureUnitCategories,
		"skills.category.json": fixtureSkillCategories,
		"items.category.json":  fixtureItemCategories,
	}
}

// WriteFixtureDir writes the fixture dataset into a temp dir and returns its
// path. A curation.yaml with the shop abbreviations is written alongside.
func WriteFixtureDir(t *testing.T) string {
	t.Helper()
	return WriteDir(t, FixtureFiles())
}

// WriteDir writes files (name → content) into a fresh temp dir.
func WriteDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644), "WriteDir: %s", name)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "curation.yaml"), []byte(fixtureCuration), 0o644), "WriteDir: curation.yaml")
	return dir
}

// CurationPath returns the curation file written by WriteDir.
func CurationPath(dir string) string {
	return filepath.Join(dir, "curation.yaml")
}

const fixtureCuration = `shop_abbreviations:
  2_Vendor: Chapter 2
  5_Armory_9_Armory: Chapter 5 / 9
  10_SecretShop: Secret
`

const fixtureItems = `[
  {"nid": "Iron_Sword", "name": "Iron Sword", "desc": "A basic sword.", "icon_nid": "Sword",
   "components": [["weapon_type", "Sword"], ["weapon_rank", "E"], ["damage", 5], ["weight", 5], ["hit", 90], ["crit", 0],
                  ["min_range", 1], ["max_range", 1], ["value", 460], ["target_enemy", null]]},
  {"nid": "Iron_Lance", "name": "Iron Lance", "desc": "A basic lance.", "icon_nid": "Lance",
   "components": [["weapon_type", "Lance"], ["weapon_rank", "E"], ["damage", 7], ["value", 360], ["target_enemy", null]]},
  {"nid": "Steel_Sword", "name": "Steel Sword", "desc": "A heavy sword.", "icon_nid": "Sword",
   "components": [["weapon_type", "Sword"], ["weapon_rank", "D"], ["damage", 8], ["target_enemy", null]]},
  {"nid": "Vulnerary", "name": "Vulnerary", "desc": "Restores <blue>10</> HP.", "icon_nid": "Potion",
   "components": [["usable", null], ["uses", 3], ["value", 300], ["target_ally", null]]},
  {"nid": "Power_Ring", "name": "Power Ring", "desc": "Raises Str.", "icon_nid": "Ring",
   "components": [["equippable_accessory", null], ["status_on_equip", "Power_Ring_Gain"]]},
  {"nid": "Lucky_Charm", "name": "Lucky Charm", "desc": "Held for luck.", "icon_nid": "",
   "components": [["status_on_hold", "Charm"]]},
  {"nid": "Fire_Tome", "name": "Fire", "desc": "Basic fire magic.", "icon_nid": "Tome",
   "components": [["weapon_type", "Anima"], ["weapon_rank", "D"], ["item_tags", ["Fire"]], ["target_enemy", null]]},
  {"nid": "Knife", "name": "Knife", "desc": "Quick and light.", "icon_nid": "Knife",
   "components": [["weapon_type", "Sword"], ["weapon_rank", "E"], ["item_tags", ["Blade", "Shadow"]], ["status_on_equip", "Quick_Knife"]]},
  {"nid": "Quick_Blade", "name": "Quick Blade<icon>Sword</icon>", "desc": "Strikes fast.", "icon_nid": "Sword",
   "components": [["weapon_type", "Sword"], ["weapon_rank", "C"], ["status_on_equip", "Quick_Strike_1"],
                  ["multi_status_on_equip", ["Quick_Strike_2", "Secret_hide", "Missing_Status"]]]},
  {"nid": "Silver_Sword_DG", "name": "Silver Sword", "desc": "Sold at the gate.", "icon_nid": "Sword",
   "components": [["weapon_type", "Sword"], ["weapon_rank", "A"]]},
  {"nid": "Eirikas_Arsenal", "name": "Eirika's Arsenal", "desc": "Eirika's weapons.", "icon_nid": "Arsenal",
   "components": [["prf_unit", ["Eirika"]], ["multi_item", ["Rapier", "Sieglinde"]]]},
  {"nid": "Ephraims_Arsenal", "name": "Ephraim's Arsenal", "desc": "Ephraim's weapons.", "icon_nid": "Arsenal",
   "components": [["prf_unit", ["Ephraim"]], ["multi_item", ["Reginleif"]]]},
  {"nid": "Rapier", "name": "Rapier", "desc": "Effective against cavalry.", "icon_nid": "Sword",
   "components": [["weapon_type", "Sword"], ["prf_unit", ["Eirika"]], ["damage", 7]]},
  {"nid": "Sieglinde", "name": "Sieglinde", "desc": "Sacred sword.", "icon_nid": "Sword",
   "components": [["weapon_type", "Sword"], ["weapon_rank", "S"], ["prf_unit", ["Eirika"]]]},
  {"nid": "Reginleif", "name": "Reginleif", "desc": "Sacred lance.", "icon_nid": "Lance",
   "components": [["weapon_type", "Lance"], ["weapon_rank", "S"], ["prf_unit", ["Ephraim"]]]},
  {"nid": "Tanas_Arsenal", "name": "Tana's Arsenal", "desc": "Tana's lances.", "icon_nid": "Arsenal",
   "components": [["prf_unit", ["Tana"]], ["multi_item", ["Tana_Lance"]]]},
  {"nid": "Tanas_Stash", "name": "Tana's Stash", "desc": "Tana's supplies.", "icon_nid": "Arsenal",
   "components": [["prf_unit", ["Tana"]], ["multi_item", ["Tana_Heal"]]]},
  {"nid": "Tana_Lance", "name": "Frelian Lance", "desc": "Tana's lance.", "icon_nid": "Lance",
   "components": [["weapon_type", "Lance"], ["prf_unit", ["Tana"]]]},
  {"nid": "Tana_Heal", "name": "Frelian Mend", "desc": "Tana's staff.", "icon_nid": "Staff",
   "components": [["weapon_type", "Staff"], ["prf_unit", ["Tana"]]]},
  {"nid": "Airbending", "name": "Airbending", "desc": "Wind arts.", "icon_nid": "Arsenal",
   "components": [["prf_unit", ["ProTagonist"]], ["multi_item", ["Air_Slash"]]]},
  {"nid": "Firebending", "name": "Firebending", "desc": "Fire arts.", "icon_nid": "Arsenal",
   "components": [["prf_unit", ["ProTagonist"]], ["multi_item", ["Fire_Ball"]]]},
  {"nid": "Air_Slash", "name": "Air Slash", "desc": "A cutting gust.", "icon_nid": "Tome",
   "components": [["weapon_type", "Anima"], ["prf_unit", ["ProTagonist"]], ["item_tags", ["Wind"]]]},
  {"nid": "Fire_Ball", "name": "Fire Ball", "desc": "A ball of fire.", "icon_nid": "Tome",
   "components": [["weapon_type", "Anima"], ["prf_unit", ["ProTagonist"]], ["item_tags", ["Fire"]]]},
  {"nid": "Ghost_Arsenal", "name": "Ghost's Arsenal", "desc": "Nobody's weapons.", "icon_nid": "Arsenal",
   "components": [["prf_unit", ["Ghost"]]]},
  {"nid": "Lunar_Brace", "name": "Lunar Brace", "desc": "Pierces defenses.", "icon_nid": "Ring",
   "components": [["equippable_accessory", null], ["prf_unit", ["Eirika"]]]},
  {"nid": "Dragonstone", "name": "Dragonstone", "desc": "Breathes fire.", "icon_nid": "Stone",
   "components": [["weapon_type", "Monster"], ["prf_unit", ["Myrrh"]], ["uses", 50]]},
  {"nid": "Rapier_Old", "name": "Rapier", "desc": "Old rapier.", "icon_nid": "Sword",
   "components": [["weapon_type", "Sword"], ["prf_unit", ["Eirika"]]]},
  {"nid": "Eirika_Blank", "name": "Blank", "desc": "", "icon_nid": "",
   "components": [["weapon_type", "Sword"]]},
  {"nid": "Eirika_Blades", "name": "Eirika's Blades", "desc": "Choose a blade.", "icon_nid": "Sword",
   "components": [["multi_item", ["Moonlight"]]]},
  {"nid": "Moonlight", "name": "Moonlight", "desc": "A pale blade.", "icon_nid": "Sword",
   "components": [["weapon_type", "Sword"], ["prf_unit", ["Eirika"]]]},
  {"nid": "Mystery_Blade", "name": "Mystery Blade", "desc": "Nobody can wield it.", "icon_nid": "Sword",
   "components": [["weapon_type", "Sword"]]},
  {"nid": "Elixir_Bag", "name": "Elixir Bag", "desc": "Holds elixirs.", "icon_nid": "Potion",
   "components": [["multi_item", ["Elixir", "Missing_Item"]]]},
  {"nid": "Elixir", "name": "Elixir", "desc": "Fully heals.", "icon_nid": "Potion",
   "components": [["usable", null], ["uses", 1], ["target_ally", null]]}
]`

const fixtureSkills = `[
  {"nid": "Quick_Strike_1", "name": "Quick Strike", "desc": "Hits fast.", "icon_nid": "Skills", "components": []},
  {"nid": "Quick_Strike_2", "name": "Quick Strike", "desc": "Strikes twice when attacking; Speed +20.", "icon_nid": "Skills", "components": []},
  {"nid": "Secret_hide", "name": "Secret", "desc": "Hidden effect.", "icon_nid": "", "components": [["hidden", null]]},
  {"nid": "Quick_Knife", "name": "Quick Knife", "desc": "Placeholder status.", "icon_nid": "", "components": []},
  {"nid": "Charm", "name": "Charm", "desc": "Allies within 2 spaces gain +5 Luck.", "icon_nid": "Skills", "components": [["aura", null]]},
  {"nid": "Vantage_T1", "name": "Vantage", "desc": "Strike first when HP is low.", "icon_nid": "Skills", "components": []},
  {"nid": "Rally_T2", "name": "Rally", "desc": "Boosts stats.", "icon_nid": "Skills", "components": [["aura", null]]},
  {"nid": "Lunge_T3", "name": "Lunge", "desc": "<red>CA:</> Swap places after combat.", "icon_nid": "Skills", "components": [["combat_art", "Lunge_CA"]]},
  {"nid": "Swap_Pair_Up_T1", "name": "Pair Up", "desc": "Pair with an ally.", "icon_nid": "Skills", "components": []},
  {"nid": "Sol", "name": "Sol", "desc": "Heal on hit.", "icon_nid": "Skills", "components": []},
  {"nid": "Canto", "name": "Canto", "desc": "Move after acting.", "icon_nid": "Skills", "components": []},
  {"nid": "Feat_Enabler", "name": "Feats", "desc": "Enables feats.", "icon_nid": "", "components": [["hidden", null]]}
]`

const fixtureClasses = `[
  {"nid": "Eirika_Lord", "name": "Lord", "desc": "Eirika's class.", "tier": 1, "max_level": 20, "tags": ["Lord"],
   "bases": {"HP": 16, "STR": 4, "MAG": 2, "SKL": 8, "SPD": 9, "LCK": 5, "DEF": 3, "RES": 1, "CON": 5, "MOV": 5},
   "growths": {"HP": 70, "STR": 40}, "growth_bonus": {}, "max_stats": {"HP": 60}, "promotion": {},
   "turns_into": ["Eirika_Great_Lord"], "wexp_gain": {"Sword": [true, 0, 0], "Lance": [false, 0, 0]},
   "learned_skills": [[1, "Canto"], [1, "Feat_Enabler"]], "map_sprite_nid": "Eirika_Lord"},
  {"nid": "Eirika_Great_Lord", "name": "Great Lord", "desc": "Promoted.", "tier": 2, "max_level": 20, "tags": ["Mounted"],
   "bases": {"HP": 20}, "growths": {}, "growth_bonus": {}, "max_stats": {}, "promotion": {"HP": 4, "DEF": 2},
   "turns_into": [], "wexp_gain": {"Sword": [true, 0, 0], "Lance": [false, 1, 0]},
   "learned_skills": [[10, "Sol"]], "map_sprite_nid": "Eirika_Great_Lord"},
  {"nid": "Ephraim_Lord", "name": "Lord", "desc": "Ephraim's class.", "tier": 1, "max_level": 20, "tags": ["Lord"],
   "bases": {}, "growths": {}, "growth_bonus": {}, "max_stats": {}, "promotion": {},
   "turns_into": ["Ephraim_Great_Lord", "Missing_Class"], "wexp_gain": {"Lance": [true, 0, 0]},
   "learned_skills": [[1, "Missing_Skill"]], "map_sprite_nid": "Ephraim_Lord"},
  {"nid": "Ephraim_Great_Lord", "name": "Great Lord", "desc": "Promoted.", "tier": 2, "max_level": 20, "tags": [],
   "bases": {}, "growths": {}, "growth_bonus": {}, "max_stats": {}, "promotion": {},
   "turns_into": [], "wexp_gain": {"Lance": [true, 0, 0], "Sword": [false, 1, 0]}, "learned_skills": []},
  {"nid": "Thief", "name": "Thief", "desc": "Steals.", "tier": 1, "max_level": 20, "tags": [],
   "bases": {}, "growths": {}, "growth_bonus": {}, "max_stats": {}, "promotion": {},
   "turns_into": [], "wexp_gain": {"Sword": [true, 0, 0]}, "learned_skills": []},
  {"nid": "Cleric", "name": "Cleric", "desc": "Heals.", "tier": 1, "max_level": 20, "tags": ["Support"],
   "bases": {}, "growths": {}, "growth_bonus": {}, "max_stats": {}, "promotion": {},
   "turns_into": ["Bishop"], "wexp_gain": {"Staff": [true, 0, 0]}, "learned_skills": []},
  {"nid": "Bishop", "name": "Bishop", "desc": "Heals more.", "tier": 2, "max_level": 20, "tags": ["Support"],
   "bases": {}, "growths": {}, "growth_bonus": {}, "max_stats": {}, "promotion": {},
   "turns_into": [], "wexp_gain": {"Staff": [true, 0, 0], "Light": [true, 0, 0]}, "learned_skills": []},
  {"nid": "Pegasus_Knight", "name": "Pegasus Knight", "desc": "Flies.", "tier": 1, "max_level": 20, "tags": ["Flying"],
   "bases": {}, "growths": {}, "growth_bonus": {}, "max_stats": {}, "promotion": {},
   "turns_into": [], "wexp_gain": {"Lance": [true, 0, 0]}, "learned_skills": []},
  {"nid": "Manakete", "name": "Manakete", "desc": "Dragon kin.", "tier": 0, "max_level": 20, "tags": [],
   "bases": {}, "growths": {}, "growth_bonus": {}, "max_stats": {}, "promotion": {},
   "turns_into": [], "wexp_gain": {}, "learned_skills": []},
  {"nid": "Journeyman", "name": "Journeyman", "desc": "A wanderer.", "tier": 0, "max_level": 20, "tags": [],
   "bases": {}, "growths": {}, "growth_bonus": {}, "max_stats": {}, "promotion": {},
   "turns_into": [], "wexp_gain": {"Anima": [true, 0, 0]}, "learned_skills": []}
]`

const fixtureUnits = `[
  {"nid": "Eirika", "name": "Eirika", "desc": "Princess of Renais.", "level": 1, "klass": "Eirika_Lord", "affinity": "Light",
   "bases": {"HP": 16, "STR": 4}, "growths": {"HP": 70}, "stat_cap_modifiers": {},
   "starting_items": [["Rapier", false], ["Vulnerary", false], ["Missing_Item", false]],
   "learned_skills": [[1, "Sol"], [5, "Secret_hide"], [7]], "portrait_nid": "Eirika"},
  {"nid": "Ephraim", "name": "Ephraim", "desc": "Prince of Renais.", "level": 4, "klass": "Ephraim_Lord", "affinity": "Fire",
   "bases": {}, "growths": {}, "stat_cap_modifiers": {}, "starting_items": [["Reginleif", false]], "learned_skills": []},
  {"nid": "Tana", "name": "Tana", "desc": "Princess of Frelia.", "level": 4, "klass": "Pegasus_Knight", "affinity": "Wind",
   "bases": {}, "growths": {}, "stat_cap_modifiers": {}, "starting_items": [], "learned_skills": []},
  {"nid": "ProTagonist", "name": "Pro", "desc": "A wanderer.", "level": 1, "klass": "Journeyman", "affinity": "Fire",
   "bases": {}, "growths": {}, "stat_cap_modifiers": {}, "starting_items": [], "learned_skills": []},
  {"nid": "Myrrh", "name": "Myrrh", "desc": "A manakete.", "level": 1, "klass": "Manakete", "affinity": "Light",
   "bases": {}, "growths": {}, "stat_cap_modifiers": {}, "starting_items": [["Dragonstone", false]], "learned_skills": []},
  {"nid": "Orson_Evil", "name": "Orson", "desc": "A traitor.", "level": 10, "klass": "Thief", "affinity": "Fire",
   "bases": {}, "growths": {}, "stat_cap_modifiers": {}, "starting_items": [], "learned_skills": []},
  {"nid": "Colm", "name": "Colm", "desc": "A thief.", "level": 2, "klass": "Thief", "affinity": "Fire",
   "bases": {}, "growths": {}, "stat_cap_modifiers": {}, "starting_items": [], "learned_skills": []},
  {"nid": "Moulder", "name": "Moulder", "desc": "A priest.", "level": 3, "klass": "Cleric", "affinity": "Light",
   "bases": {}, "growths": {}, "stat_cap_modifiers": {}, "starting_items": [], "learned_skills": []},
  {"nid": "Ashe", "name": "Ashe", "desc": "From beyond the gate.", "level": 5, "klass": "Thief", "affinity": "Fire",
   "bases": {}, "growths": {}, "stat_cap_modifiers": {}, "starting_items": [], "learned_skills": []},
  {"nid": "Lyon", "name": "Lyon", "desc": "Prince of Grado.", "level": 10, "klass": "Cleric", "affinity": "Light",
   "bases": {}, "growths": {}, "stat_cap_modifiers": {}, "starting_items": [], "learned_skills": []},
  {"nid": "Ghost", "name": "Ghost", "desc": "Not listed anywhere.", "level": 1, "klass": "Thief", "affinity": "Fire",
   "bases": {}, "growths": {}, "stat_cap_modifiers": {}, "starting_items": [], "learned_skills": []}
]`

const fixtureEvents = `[
  {"nid": "Intro", "_source": ["speak;Eirika;Hello"]},
  {"nid": "9_Armory", "_source": ["music;Shop", "shop;Armory;Iron_Lance,Iron_Sword"]},
  {"nid": "5_Armory", "_source": ["shop;Armory;Iron_Sword,Iron_Lance"]},
  {"nid": "2_Vendor", "_source": ["shop;Vendor;Vulnerary,Elixir"]},
  {"nid": "10_SecretShop", "_source": ["shop;SecretShop;Knife,Missing_Item"]},
  {"nid": "3_Vendor", "_source": ["speak;Vendor;Closed today"]},
  {"nid": "Dragons_Gate_Vendor", "_source": ["shop;Vendor;Silver_Sword_DG"]}
]`

const fixtureAffinities = `[
  {"nid": "Light", "name": "Light", "desc": "Shining.", "bonus": [{"support_rank": "C", "attack": 1}]},
  {"nid": "Fire", "name": "Fire", "desc": "Burning.", "bonus": [{"support_rank": "C", "attack": 2}]}
]`

const fixtureSupportPairs = `[
  {"nid": "Eirika | Ephraim", "unit1": "Eirika", "unit2": "Ephraim", "one_way": false},
  {"nid": "Tana | Eirika", "unit1": "Tana", "unit2": "Eirika", "one_way": true},
  {"nid": "Colm | Ghost", "unit1": "Colm", "unit2": "Ghost", "one_way": false}
]`

const fixtureWeapons = `[
  {"nid": "Sword", "name": "Sword", "icon_nid": "Sword"},
  {"nid": "Lance", "name": "Lance", "icon_nid": "Lance"},
  {"nid": "Staff", "name": "Staff", "icon_nid": "Staff"},
  {"nid": "Anima", "name": "Anima", "icon_nid": "Tome"},
  {"nid": "Light", "name": "Light", "icon_nid": "Tome"}
]`

const fixtureUnitCategories = `{
  "Eirika": "Vanilla", "Ephraim": "Vanilla", "Tana": "Vanilla", "ProTagonist": "Vanilla",
  "Myrrh": "Monsters", "Orson_Evil": "Vanilla", "Colm": "Vanilla", "Moulder": "Vanilla",
  "Ashe": "Dragon Gate", "Lyon": "Bosses"
}`

const fixtureSkillCategories = `{
  "Vantage_T1": "MyUnit/T1", "Rally_T2": "MyUnit/T2", "Lunge_T3": "MyUnit/T3",
  "Sol": "Class Skills", "Canto": "Class Skills"
}`

const fixtureItemCategories = `{
  "Iron_Sword": "Weapons/Swords",
  "Rapier": "Personal Weapons/Eirika",
  "Sieglinde": "Personal Weapons/Eirika",
  "Eirikas_Arsenal": "Personal Weapons/Eirika",
  "Rapier_Old": "Personal Weapons/Eirika",
  "Eirika_Blank": "Personal Weapons/Eirika",
  "Moonlight": "Personal Weapons/Eirika",
  "Nonexistent": "Personal Weapons/Eirika",
  "Reginleif": "Personal Weapons/Ephraim",
  "Tana_Lance": "Personal Weapons/Tana",
  "Tana_Heal": "Personal Weapons/Tana",
  "Air_Slash": "Personal Weapons/Pro",
  "Fire_Ball": "Personal Weapons/Pro",
  "Firebending": "Personal Weapons/Pro",
  "Mystery_Blade": "Personal Weapons/Seth",
  "Lunar_Brace": "Accessories",
  "Dragonstone": "Personal Weapons/Myrrh"
}`
