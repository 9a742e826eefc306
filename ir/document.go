package ir

import (
	"fmt"
	"iter"
)

// Document owns everything parsed from one or more OpenDDL sources.
//
// A Document is not safe for concurrent use.
type Document struct {
	structs *Identifiers
	props   *Identifiers
	gen     uint64
	st      *store
}

// NewDocument returns an empty document resolving names against the given
// tables. Either table may be nil.
func NewDocument(structs, props *Identifiers) *Document {
	return &Document{
		structs: structs,
		props:   props,
		st:      newStore(),
	}
}

func (d *Document) StructureIdentifiers() *Identifiers { return d.structs }
func (d *Document) PropertyIdentifiers() *Identifiers  { return d.props }

// Generation is incremented by every committed parse.
func (d *Document) Generation() uint64 { return d.gen }

func (d *Document) IsEmpty() bool { return len(d.st.structures) == 0 }

// Len is the number of structures in the document, at any depth.
func (d *Document) Len() int { return len(d.st.structures) }

// StructureName returns the name of a structure identifier.
func (d *Document) StructureName(id int) string { return d.structs.Name(id) }

// PropertyName returns the name of a property identifier.
func (d *Document) PropertyName(id int) string { return d.props.Name(id) }

// Structure returns the structure at index i in document order.
func (d *Document) Structure(i int) Structure {
	if i < 0 || i >= len(d.st.structures) {
		panic(fmt.Sprintf("ir: structure index %d out of range [0,%d)", i, len(d.st.structures)))
	}
	return Structure{doc: d, i: i, gen: d.gen}
}

// All yields every structure in document order, parents before children.
func (d *Document) All() iter.Seq[Structure] {
	gen := d.gen
	return func(yield func(Structure) bool) {
		for i := range d.st.structures {
			if !yield(Structure{doc: d, i: i, gen: gen}) {
				return
			}
		}
	}
}

func (d *Document) FindFirstChild() (Structure, bool) {
	if len(d.st.structures) == 0 {
		return Structure{}, false
	}
	return Structure{doc: d, i: 0, gen: d.gen}, true
}

// FirstChild panics if the document is empty.
func (d *Document) FirstChild() Structure {
	s, ok := d.FindFirstChild()
	if !ok {
		panic("ir: Document.FirstChild: the document is empty")
	}
	return s
}

// Children yields the top level structures.
func (d *Document) Children() iter.Seq[Structure] {
	first, ok := d.FindFirstChild()
	return siblings(first, ok, nil)
}

// ChildrenOf yields the top level custom structures with one of ids.
func (d *Document) ChildrenOf(ids ...int) iter.Seq[Structure] {
	first, ok := d.FindFirstChild()
	return siblings(first, ok, ids)
}

func (d *Document) FindFirstChildOf(ids ...int) (Structure, bool) {
	first, ok := d.FindFirstChild()
	if !ok {
		return Structure{}, false
	}
	return first.findSelfOrNextOf(ids)
}

func (d *Document) FindFirstChildOfType(t Type) (Structure, bool) {
	first, ok := d.FindFirstChild()
	if !ok {
		return Structure{}, false
	}
	return first.findSelfOrNextOfType(t)
}

// FirstChildOf panics if there is no such top level structure.
func (d *Document) FirstChildOf(id int) Structure {
	s, ok := d.FindFirstChildOf(id)
	if !ok {
		panic("ir: Document.FirstChildOf: no such child")
	}
	return s
}

// FirstChildOfType panics if there is no such top level structure.
func (d *Document) FirstChildOfType(t Type) Structure {
	s, ok := d.FindFirstChildOfType(t)
	if !ok {
		panic("ir: Document.FirstChildOfType: no such child")
	}
	return s
}

// Unresolved returns the textual paths of every non-null reference that did
// not match any structure.
func (d *Document) Unresolved() []string {
	var res []string
	for _, r := range d.st.refs {
		if r.path != "" && r.target == NullReference {
			res = append(res, r.path)
		}
	}
	return res
}

func (d *Document) check(gen uint64) {
	if gen != d.gen {
		panic(fmt.Errorf("ir: %w: issued at generation %d, document is at %d", ErrStale, gen, d.gen))
	}
}

func siblings(first Structure, found bool, ids []int) iter.Seq[Structure] {
	return func(yield func(Structure) bool) {
		s, ok := first, found
		if ok && len(ids) > 0 {
			s, ok = first.findSelfOrNextOf(ids)
		}
		for ok {
			if !yield(s) {
				return
			}
			if len(ids) > 0 {
				s, ok = s.FindNextOf(ids...)
			} else {
				s, ok = s.FindNext()
			}
		}
	}
}
