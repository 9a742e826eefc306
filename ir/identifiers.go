package ir

import "slices"

// UnknownIdentifier is the id of any name not present in an Identifiers table.
const UnknownIdentifier = -1

// Identifiers maps names to their position in an ordered list.
//
// The list is copied on construction, so the caller may reuse its slice. A
// nil *Identifiers is an empty table.
type Identifiers struct {
	names []string
	ids   map[string]int
}

func NewIdentifiers(names ...string) *Identifiers {
	t := &Identifiers{
		names: slices.Clone(names),
		ids:   make(map[string]int, len(names)),
	}
	for i, n := range names {
		// first occurrence wins
		if _, ok := t.ids[n]; !ok {
			t.ids[n] = i
		}
	}
	return t
}

func (t *Identifiers) Len() int {
	if t == nil {
		return 0
	}
	return len(t.names)
}

// ID returns the id of name or UnknownIdentifier.
func (t *Identifiers) ID(name string) int {
	if t == nil {
		return UnknownIdentifier
	}
	id, ok := t.ids[name]
	if !ok {
		return UnknownIdentifier
	}
	return id
}

// Name returns the name with the given id, or "(unknown)".
func (t *Identifiers) Name(id int) string {
	if t == nil || id < 0 || id >= len(t.names) {
		return "(unknown)"
	}
	return t.names[id]
}

func (t *Identifiers) Names() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.names)
}
