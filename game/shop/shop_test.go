package shop

import (
	"math/rand/v2"
	"testing"

	"github.com/kasuganosora/fe8rguide/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ev(nid string, source ...string) *resource.EventRecord {
	return &resource.EventRecord{Nid: nid, Source: source}
}

func TestIsShopEvent(t *testing.T) {
	assert.True(t, IsShopEvent("5_Armory"))
	assert.True(t, IsShopEvent("Global_RaustenCourtSecretShop"))
	assert.True(t, IsShopEvent("2_Vendor"))
	assert.False(t, IsShopEvent("Dragons_Gate_Vendor"))
	assert.False(t, IsShopEvent("Intro"))
	assert.False(t, IsShopEvent("Vendor_Intro"))
}

func TestItemsFromSource(t *testing.T) {
	items, ok := ItemsFromSource([]string{"music;Shop", "shop;Armory;Iron_Sword, Iron_Lance;extra", "shop;Vendor;Other"})
	require.True(t, ok)
	assert.Equal(t, []string{"Iron_Sword", "Iron_Lance"}, items)

	_, ok = ItemsFromSource([]string{"speak;Vendor;hi"})
	assert.False(t, ok)

	_, ok = ItemsFromSource([]string{"shop;Armory"})
	assert.False(t, ok)
}

func TestGroupEvents_MergesIdenticalSets(t *testing.T) {
	groups := GroupEvents([]*resource.EventRecord{
		ev("9_Armory", "shop;Armory;Iron_Lance,Iron_Sword"),
		ev("5_Armory", "shop;Armory;Iron_Sword,Iron_Lance"),
		ev("2_Vendor", "shop;Vendor;Vulnerary"),
		ev("3_Vendor", "speak;Vendor;Closed"),
		ev("Dragons_Gate_Vendor", "shop;Vendor;Silver_Sword_DG"),
	})
	require.Len(t, groups, 2)

	assert.Equal(t, "2_Vendor", groups[0].Nid)
	assert.Equal(t, "Chapter 2 Vendor", groups[0].Name)

	g := groups[1]
	assert.Equal(t, "5_Armory_9_Armory", g.Nid)
	assert.Equal(t, []string{"Iron_Lance", "Iron_Sword"}, g.ItemNids)
	assert.Equal(t, "Chapter 5 / Chapter 9 Armory", g.Name)
	assert.Equal(t, TypeArmory, g.Type)
	assert.Equal(t, "05_Armory_09_Armory", g.OrderName)
}

func TestGroupEvents_NearIdenticalNeverMerge(t *testing.T) {
	groups := GroupEvents([]*resource.EventRecord{
		ev("5_Armory", "shop;Armory;Iron_Sword,Iron_Lance"),
		ev("9_Armory", "shop;Armory;Iron_Sword,Iron_Lance,Iron_Axe"),
	})
	assert.Len(t, groups, 2)
}

func TestGroupEvents_DigitAwareNidOrder(t *testing.T) {
	groups := GroupEvents([]*resource.EventRecord{
		ev("10_Armory", "shop;Armory;Steel_Sword"),
		ev("9_Armory", "shop;Armory;Steel_Sword"),
	})
	require.Len(t, groups, 1)
	assert.Equal(t, "9_Armory_10_Armory", groups[0].Nid)
	assert.Equal(t, "Chapter 9 / Chapter 10 Armory", groups[0].Name)
}

func TestGroupEvents_InputOrderInsensitive(t *testing.T) {
	events := []*resource.EventRecord{
		ev("9A_Armory", "shop;Armory;A,B"),
		ev("10B_Armory", "shop;Armory;B,A"),
		ev("Global_BethroenArmory", "shop;Armory;A,B"),
		ev("5_Vendor", "shop;Vendor;C"),
		ev("Global_SerafewVendor", "shop;Vendor;C"),
		ev("14A_SecretShop", "shop;SecretShop;D"),
	}
	want := GroupEvents(events)

	r := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 20; i++ {
		shuffled := append([]*resource.EventRecord(nil), events...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, GroupEvents(shuffled))
	}
}

func TestDisplayName(t *testing.T) {
	name, typ := DisplayName([]string{"9A_Armory", "10B_Armory", "Global_BethroenArmory", "Global_PortKirisArmory"})
	assert.Equal(t, "Chapter 9A / Chapter 10B / Bethroen / Port Kiris Armory", name)
	assert.Equal(t, TypeArmory, typ)

	name, typ = DisplayName([]string{"14A_SecretShop", "Global_JehannaHallSecretShop"})
	assert.Equal(t, "Chapter 14A / Jehanna Hall Secret Shop", name)
	assert.Equal(t, TypeSecretShop, typ)

	name, typ = DisplayName([]string{"Global_RaustenCourtVendor"})
	assert.Equal(t, "Rausten Court Vendor", name)
	assert.Equal(t, TypeVendor, typ)
}

func TestIsDragonGateItem(t *testing.T) {
	assert.True(t, IsDragonGateItem("Silver_Sword_DG"))
	assert.False(t, IsDragonGateItem("DG_Sword"))
	assert.False(t, IsDragonGateItem("Silver_SwordXDG"))
}
