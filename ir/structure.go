package ir

import (
	"iter"
	"slices"
)

// Structure is a view of one structure in a Document.
//
// The zero Structure is not valid; Find* methods return it along with false.
type Structure struct {
	doc *Document
	i   int
	gen uint64
}

func (s Structure) rec() *structure {
	s.doc.check(s.gen)
	return &s.doc.st.structures[s.i]
}

func (s Structure) at(i int) Structure { return Structure{doc: s.doc, i: i, gen: s.gen} }

func (s Structure) custom(what string) *customData {
	c, ok := s.rec().data.(customData)
	if !ok {
		panic("ir: Structure." + what + ": not a custom structure")
	}
	return &c
}

func (s Structure) primitive(what string) *primitiveData {
	p, ok := s.rec().data.(primitiveData)
	if !ok {
		panic("ir: Structure." + what + ": not a primitive structure")
	}
	return &p
}

// Valid reports whether s refers to a structure.
func (s Structure) Valid() bool { return s.doc != nil }

func (s Structure) Document() *Document { return s.doc }

// Index is the position of s in document order.
func (s Structure) Index() int { return s.i }

// Offset is the byte offset of the structure's identifier in its source.
func (s Structure) Offset() int { return s.rec().offset }

func (s Structure) IsCustom() bool {
	_, ok := s.rec().data.(customData)
	return ok
}

// Type is the literal type of a primitive structure, CustomType otherwise.
func (s Structure) Type() Type {
	switch p := s.rec().data.(type) {
	case primitiveData:
		return p.typ
	case customData:
		return CustomType
	}
	panic("ir: Structure.Type: uninitialized structure")
}

// Identifier is the structure id of a custom structure.
func (s Structure) Identifier() int { return s.custom("Identifier").id }

// IdentifierName is the identifier as written in the source for custom
// structures and the type keyword for primitive ones.
func (s Structure) IdentifierName() string {
	switch p := s.rec().data.(type) {
	case primitiveData:
		return p.typ.String()
	case customData:
		return s.doc.st.text[p.ident]
	}
	return ""
}

func (s Structure) HasName() bool { return s.rec().name != 0 }

// Name returns the structure name including its leading $ or %, or "".
func (s Structure) Name() string { return s.doc.st.text[s.rec().name] }

// IsGlobal reports whether the structure has a $ name.
func (s Structure) IsGlobal() bool {
	n := s.Name()
	return n != "" && n[0] == '$'
}

func (s Structure) Parent() (Structure, bool) {
	p := s.rec().parent
	if p == NoParent {
		return Structure{}, false
	}
	return s.at(p), true
}

// Depth is 0 for top level structures.
func (s Structure) Depth() int {
	n := 0
	for p := s.rec().parent; p != NoParent; p = s.doc.st.structures[p].parent {
		n++
	}
	return n
}

func (s Structure) FindNext() (Structure, bool) {
	n := s.rec().next
	if n == 0 {
		return Structure{}, false
	}
	return s.at(n), true
}

// FindNextOf returns the next sibling custom structure with one of ids.
func (s Structure) FindNextOf(ids ...int) (Structure, bool) {
	n, ok := s.FindNext()
	if !ok {
		return Structure{}, false
	}
	return n.findSelfOrNextOf(ids)
}

// FindNextSame returns the next sibling of the same id, or of the same type
// for primitive structures.
func (s Structure) FindNextSame() (Structure, bool) {
	switch p := s.rec().data.(type) {
	case customData:
		return s.FindNextOf(p.id)
	case primitiveData:
		n, ok := s.FindNext()
		if !ok {
			return Structure{}, false
		}
		return n.findSelfOrNextOfType(p.typ)
	}
	return Structure{}, false
}

func (s Structure) findSelfOrNextOf(ids []int) (Structure, bool) {
	for x, ok := s, true; ok; x, ok = x.FindNext() {
		if c, isCustom := x.rec().data.(customData); isCustom && slices.Contains(ids, c.id) {
			return x, true
		}
	}
	return Structure{}, false
}

func (s Structure) findSelfOrNextOfType(t Type) (Structure, bool) {
	for x, ok := s, true; ok; x, ok = x.FindNext() {
		if p, isPrim := x.rec().data.(primitiveData); isPrim && p.typ == t {
			return x, true
		}
	}
	return Structure{}, false
}

func (s Structure) HasChildren() bool { return s.custom("HasChildren").firstChild != 0 }

func (s Structure) FindFirstChild() (Structure, bool) {
	fc := s.custom("FindFirstChild").firstChild
	if fc == 0 {
		return Structure{}, false
	}
	return s.at(fc), true
}

// FirstChild panics if s has no children.
func (s Structure) FirstChild() Structure {
	c, ok := s.FindFirstChild()
	if !ok {
		panic("ir: Structure.FirstChild: no children")
	}
	return c
}

func (s Structure) Children() iter.Seq[Structure] {
	first, ok := s.FindFirstChild()
	return siblings(first, ok, nil)
}

// ChildrenOf yields the custom children with one of ids.
func (s Structure) ChildrenOf(ids ...int) iter.Seq[Structure] {
	first, ok := s.FindFirstChild()
	return siblings(first, ok, ids)
}

func (s Structure) FindFirstChildOf(ids ...int) (Structure, bool) {
	first, ok := s.FindFirstChild()
	if !ok {
		return Structure{}, false
	}
	return first.findSelfOrNextOf(ids)
}

func (s Structure) FindFirstChildOfType(t Type) (Structure, bool) {
	first, ok := s.FindFirstChild()
	if !ok {
		return Structure{}, false
	}
	return first.findSelfOrNextOfType(t)
}

// FirstChildOf panics if there is no such child.
func (s Structure) FirstChildOf(id int) Structure {
	c, ok := s.FindFirstChildOf(id)
	if !ok {
		panic("ir: Structure.FirstChildOf: no such child")
	}
	return c
}

// FirstChildOfType panics if there is no such child.
func (s Structure) FirstChildOfType(t Type) Structure {
	c, ok := s.FindFirstChildOfType(t)
	if !ok {
		panic("ir: Structure.FirstChildOfType: no such child")
	}
	return c
}

func (s Structure) PropertyCount() int { return s.custom("PropertyCount").propCount }

func (s Structure) HasProperties() bool { return s.PropertyCount() != 0 }

// Properties yields the properties of a custom structure in source order.
func (s Structure) Properties() iter.Seq[Property] {
	c := s.custom("Properties")
	return func(yield func(Property) bool) {
		for i := c.propBegin; i < c.propBegin+c.propCount; i++ {
			if !yield(Property{doc: s.doc, i: i, gen: s.gen}) {
				return
			}
		}
	}
}

// FindPropertyOf returns the first property with the given id.
func (s Structure) FindPropertyOf(id int) (Property, bool) {
	c := s.custom("FindPropertyOf")
	for i := c.propBegin; i < c.propBegin+c.propCount; i++ {
		if s.doc.st.properties[i].id == id {
			return Property{doc: s.doc, i: i, gen: s.gen}, true
		}
	}
	return Property{}, false
}

// PropertyOf panics if there is no such property.
func (s Structure) PropertyOf(id int) Property {
	p, ok := s.FindPropertyOf(id)
	if !ok {
		panic("ir: Structure.PropertyOf: no such property")
	}
	return p
}

// ArraySize is the total number of literals in a primitive structure.
func (s Structure) ArraySize() int { return s.primitive("ArraySize").count }

// SubArraySize is the declared [N] grouping of a primitive structure, 0 if
// the data is flat.
func (s Structure) SubArraySize() int { return s.primitive("SubArraySize").subArraySize }

// AsReference returns the target of a primitive ref structure holding exactly
// one value. It returns false for null and unresolved references.
func (s Structure) AsReference() (Structure, bool) {
	p := s.primitive("AsReference")
	if p.typ != ReferenceType {
		panic("ir: Structure.AsReference: not of reference type")
	}
	if p.count != 1 {
		panic("ir: Structure.AsReference: not a single value")
	}
	return s.target(p.begin)
}

// AsReferenceArray returns the targets of a primitive ref structure. Null and
// unresolved entries are the zero Structure.
func (s Structure) AsReferenceArray() []Structure {
	p := s.primitive("AsReferenceArray")
	if p.typ != ReferenceType {
		panic("ir: Structure.AsReferenceArray: not of reference type")
	}
	res := make([]Structure, p.count)
	for k := range res {
		res[k], _ = s.target(p.begin + k)
	}
	return res
}

// ReferencePaths returns the reference paths of a ref structure as written,
// with "null" for null references.
func (s Structure) ReferencePaths() []string {
	p := s.primitive("ReferencePaths")
	if p.typ != ReferenceType {
		panic("ir: Structure.ReferencePaths: not of reference type")
	}
	res := make([]string, p.count)
	for k := range res {
		res[k] = refText(s.doc.st.refs[p.begin+k].path)
	}
	return res
}

func (s Structure) target(r int) (Structure, bool) {
	t := s.doc.st.refs[r].target
	if t == NullReference {
		return Structure{}, false
	}
	return s.at(t), true
}

func refText(path string) string {
	if path == "" {
		return "null"
	}
	return path
}

// AsArray returns the literals of a primitive structure in source order.
// The result aliases the document and must not be modified.
func AsArray[T Value](s Structure) []T {
	p := s.primitive("AsArray")
	if want := TypeOf[T](); p.typ != want {
		panic("ir: AsArray: structure is " + p.typ.String() + ", not " + want.String())
	}
	c := *column[T](s.doc.st)
	return c[p.begin : p.begin+p.count : p.begin+p.count]
}

// As returns the single literal of a primitive structure.
func As[T Value](s Structure) T {
	a := AsArray[T](s)
	if len(a) != 1 {
		panic("ir: As: not a single value")
	}
	return a[0]
}

// SubArrays groups the literals of a primitive structure by its sub-array
// size. A flat structure yields one group per literal.
func SubArrays[T Value](s Structure) [][]T {
	a := AsArray[T](s)
	n := s.SubArraySize()
	if n == 0 {
		n = 1
	}
	res := make([][]T, 0, len(a)/n)
	for i := 0; i+n <= len(a); i += n {
		res = append(res, a[i:i+n:i+n])
	}
	return res
}
