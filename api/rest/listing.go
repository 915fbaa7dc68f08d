package rest

import (
	"errors"
	"net/http"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Sort modes accepted by the listing endpoints. Rank sorting only applies to
// items.
const (
	SortRankInc  = "wrank_inc"
	SortRankDec  = "wrank_dec"
	SortAlphaInc = "alpha_inc"
	SortAlphaDec = "alpha_dec"
)

// Group is one heading of a sorted listing.
type Group[T any] struct {
	Key     string `json:"key"`
	Order   int    `json:"order,omitempty"`
	Members []T    `json:"members"`
}

// TypeGroup is a run of categories sharing a type, in order_key order.
type TypeGroup[T any] struct {
	Type       string `json:"type"`
	Categories []T    `json:"categories"`
}

// groupByType splits rows into runs of equal type. Rows must already be
// ordered so that equal types are adjacent.
func groupByType[T any](rows []T, typ func(T) string) []TypeGroup[T] {
	out := []TypeGroup[T]{}
	for _, r := range rows {
		t := typ(r)
		if n := len(out); n > 0 && out[n-1].Type == t {
			out[n-1].Categories = append(out[n-1].Categories, r)
			continue
		}
		out = append(out, TypeGroup[T]{Type: t, Categories: []T{r}})
	}
	return out
}

// initial is the upper-cased first letter of a display name.
func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return "#"
	}
	return string(unicode.ToUpper(r))
}

// groupAlpha groups rows by initial. Members are ordered by name; groups by
// key, reversed when desc.
func groupAlpha[T any](rows []T, name func(T) string, desc bool) []Group[T] {
	byKey := map[string]*Group[T]{}
	var keys []string
	for _, r := range rows {
		k := initial(name(r))
		g, ok := byKey[k]
		if !ok {
			g = &Group[T]{Key: k}
			byKey[k] = g
			keys = append(keys, k)
		}
		g.Members = append(g.Members, r)
	}
	slices.Sort(keys)
	if desc {
		slices.Reverse(keys)
	}
	out := make([]Group[T], 0, len(keys))
	for _, k := range keys {
		g := byKey[k]
		sortByName(g.Members, name)
		out = append(out, *g)
	}
	return out
}

// groupRank groups rows by rank. Groups are ordered by the rank's order key,
// reversed when desc.
func groupRank[T any](rows []T, rank func(T) (string, int), name func(T) string, desc bool) []Group[T] {
	byKey := map[string]*Group[T]{}
	var groups []*Group[T]
	for _, r := range rows {
		k, order := rank(r)
		g, ok := byKey[k]
		if !ok {
			g = &Group[T]{Key: k, Order: order}
			byKey[k] = g
			groups = append(groups, g)
		}
		g.Members = append(g.Members, r)
	}
	slices.SortFunc(groups, func(a, b *Group[T]) int {
		if a.Order != b.Order {
			if desc {
				return b.Order - a.Order
			}
			return a.Order - b.Order
		}
		return strings.Compare(a.Key, b.Key)
	})
	out := make([]Group[T], 0, len(groups))
	for _, g := range groups {
		sortByName(g.Members, name)
		out = append(out, *g)
	}
	return out
}

func sortByName[T any](rows []T, name func(T) string) {
	slices.SortStableFunc(rows, func(a, b T) int { return strings.Compare(name(a), name(b)) })
}

// listParams reads the category and sort query parameters, falling back to
// the given defaults. It writes a 400 and returns false on an unknown sort.
func listParams(c *gin.Context, defCategory, defSort string, allowed ...string) (string, string, bool) {
	category := c.DefaultQuery("category", defCategory)
	if category == "" {
		category = defCategory
	}
	sort := c.DefaultQuery("sort", defSort)
	if sort == "" {
		sort = defSort
	}
	if !slices.Contains(allowed, sort) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown sort " + sort})
		return "", "", false
	}
	return category, sort, true
}

func descending(sort string) bool { return strings.HasSuffix(sort, "_dec") }

// fail answers a lookup error: 404 for a missing record, 500 otherwise.
func fail(c *gin.Context, err error, what string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
