package resource

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Kind names the value shape a caller expects from a component.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindText
	KindList
)

// Value is a decoded component payload. Only the field matching Kind is set.
type Value struct {
	Kind    Kind
	Present bool
	Bool    bool
	Int     int
	Text    string
	List    []string
}

// Components is the raw `components` array of an LT record: an ordered list of
// [name, value|null] pairs. Lookups never fail; absent components decode to the
// zero value of the requested kind.
type Components json.RawMessage

// UnmarshalJSON keeps the raw bytes so lookups can be decoded lazily.
func (c *Components) UnmarshalJSON(b []byte) error {
	*c = append((*c)[:0], b...)
	return nil
}

// MarshalJSON returns the raw array, or [] for an empty list.
func (c Components) MarshalJSON() ([]byte, error) {
	if len(c) == 0 {
		return []byte("[]"), nil
	}
	return []byte(c), nil
}

// NewComponents builds a Components value from name/value pairs. Used by tests
// and by synthesized records.
func NewComponents(pairs ...[2]any) Components {
	arr := make([][2]any, 0, len(pairs))
	arr = append(arr, pairs...)
	b, _ := json.Marshal(arr)
	return Components(b)
}

// each calls fn for every pair until fn returns false. Anything that is not
// an array holds no pairs.
func (c Components) each(fn func(pair gjson.Result) bool) {
	if len(c) == 0 {
		return
	}
	root := gjson.ParseBytes(c)
	if !root.IsArray() {
		return
	}
	root.ForEach(func(_, pair gjson.Result) bool { return fn(pair) })
}

// lookup returns the value of the first pair whose name matches.
func (c Components) lookup(name string) (gjson.Result, bool) {
	var (
		out   gjson.Result
		found bool
	)
	c.each(func(pair gjson.Result) bool {
		if pair.Get("0").String() != name {
			return true
		}
		out = pair.Get("1")
		found = true
		return false
	})
	return out, found
}

// Names lists component names in source order.
func (c Components) Names() []string {
	var names []string
	c.each(func(pair gjson.Result) bool {
		names = append(names, pair.Get("0").String())
		return true
	})
	return names
}

// Has reports whether the named component is present at all.
func (c Components) Has(name string) bool {
	_, ok := c.lookup(name)
	return ok
}

// Decode returns the named component as the requested kind. A present
// component with a null payload decodes to true for KindBool: many engine
// components are pure flags.
func (c Components) Decode(name string, kind Kind) Value {
	v := Value{Kind: kind}
	raw, ok := c.lookup(name)
	if !ok {
		return v
	}
	v.Present = true
	switch kind {
	case KindBool:
		if raw.Type == gjson.Null || !raw.Exists() {
			v.Bool = true
		} else {
			v.Bool = raw.Bool()
		}
	case KindInt:
		v.Int = int(raw.Int())
	case KindText:
		if raw.Type != gjson.Null {
			v.Text = raw.String()
		}
	case KindList:
		if raw.IsArray() {
			for _, el := range raw.Array() {
				if el.Type == gjson.Null {
					continue
				}
				v.List = append(v.List, el.String())
			}
		}
	}
	return v
}

func (c Components) Bool(name string) bool     { return c.Decode(name, KindBool).Bool }
func (c Components) Int(name string) int       { return c.Decode(name, KindInt).Int }
func (c Components) Text(name string) string   { return c.Decode(name, KindText).Text }
func (c Components) List(name string) []string { return c.Decode(name, KindList).List }
