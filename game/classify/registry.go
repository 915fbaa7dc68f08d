// Package classify derives display categories for items, skills, classes and
// units from engine component flags, tags and description text.
package classify

// Category is a derived grouping. OrderKey follows registration order.
type Category struct {
	Nid      string
	Name     string
	Type     string
	OrderKey int
}

// Registry holds the categories known to a refresh run. Lookups against an
// unregistered nid simply miss; callers decide whether to register on demand.
type Registry struct {
	cats []Category
	idx  map[string]int
}

// NewRegistry creates a Registry seeded with cats in the given order.
func NewRegistry(cats ...Category) *Registry {
	r := &Registry{idx: make(map[string]int, len(cats))}
	for _, c := range cats {
		r.Register(c.Nid, c.Name, c.Type)
	}
	return r
}

// Register adds a category unless the nid is already known and returns the
// stored entry.
func (r *Registry) Register(nid, name, typ string) Category {
	if i, ok := r.idx[nid]; ok {
		return r.cats[i]
	}
	c := Category{Nid: nid, Name: name, Type: typ, OrderKey: len(r.cats)}
	r.idx[nid] = len(r.cats)
	r.cats = append(r.cats, c)
	return c
}

// Has reports whether nid is registered.
func (r *Registry) Has(nid string) bool {
	_, ok := r.idx[nid]
	return ok
}

// Get returns the category registered under nid.
func (r *Registry) Get(nid string) (Category, bool) {
	i, ok := r.idx[nid]
	if !ok {
		return Category{}, false
	}
	return r.cats[i], true
}

// All returns every category in registration order.
func (r *Registry) All() []Category {
	out := make([]Category, len(r.cats))
	copy(out, r.cats)
	return out
}

// Len returns the number of registered categories.
func (r *Registry) Len() int { return len(r.cats) }
