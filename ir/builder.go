package ir

// Builder accumulates the result of one parse into a Document. Nothing is
// visible through the Document until Commit; a Builder that is dropped leaves
// the Document untouched.
type Builder struct {
	doc      *Document
	st       *store
	lastRoot int // last top level structure before this build, or -1
	interned map[string]int
}

// NewBuilder starts a build replacing the contents of d.
func (d *Document) NewBuilder() *Builder {
	return &Builder{doc: d, st: newStore(), lastRoot: -1, interned: map[string]int{}}
}

// NewAppendBuilder starts a build adding top level structures after those
// already in d.
func (d *Document) NewAppendBuilder() *Builder {
	b := &Builder{doc: d, st: d.st.clone(), lastRoot: -1, interned: map[string]int{}}
	for i, t := range b.st.text {
		if _, ok := b.interned[t]; !ok {
			b.interned[t] = i
		}
	}
	if len(b.st.structures) > 0 {
		i := 0
		for n := b.st.structures[0].next; n != 0; n = b.st.structures[n].next {
			i = n
		}
		b.lastRoot = i
	}
	return b
}

func (b *Builder) StructureID(name string) int { return b.doc.structs.ID(name) }
func (b *Builder) PropertyID(name string) int  { return b.doc.props.ID(name) }

// Len is the number of structures recorded so far; it is also the index the
// next structure will get.
func (b *Builder) Len() int { return len(b.st.structures) }

// ColumnLen is the current length of the column backing t.
func (b *Builder) ColumnLen(t Type) int { return b.st.columnLen(t) }

// Intern adds s to the header text column, which holds structure names and
// identifiers apart from string data, and returns its index. Equal strings
// share an index and the empty string is always index 0.
func (b *Builder) Intern(s string) int {
	if s == "" {
		return 0
	}
	if i, ok := b.interned[s]; ok {
		return i
	}
	b.st.text = append(b.st.text, s)
	i := len(b.st.text) - 1
	b.interned[s] = i
	return i
}

// Append adds one literal to the column for T.
func Append[T Value](b *Builder, v T) {
	c := column[T](b.st)
	*c = append(*c, v)
}

// AddReference records a reference literal held by structure origin. The
// path is canonical ("$a%b"), or "" for null.
func (b *Builder) AddReference(origin int, path string) {
	b.st.refs = append(b.st.refs, reference{path: path, origin: origin, target: NullReference})
}

// Reserve adds a placeholder for a custom structure whose children are parsed
// next and returns its index.
func (b *Builder) Reserve() int {
	b.st.structures = append(b.st.structures, structure{})
	return len(b.st.structures) - 1
}

// FinishCustom fills a reserved custom structure once its children have been
// added. Its properties are those in [propBegin, propEnd); properties of the
// children follow propEnd.
func (b *Builder) FinishCustom(i, parent, name, offset int, ident string, propBegin, propEnd int) {
	fc := 0
	if i+1 != len(b.st.structures) {
		fc = i + 1
	}
	b.st.structures[i] = structure{
		name:   name,
		parent: parent,
		next:   len(b.st.structures),
		offset: offset,
		data: customData{
			id:         b.StructureID(ident),
			ident:      b.Intern(ident),
			propBegin:  propBegin,
			propCount:  propEnd - propBegin,
			firstChild: fc,
		},
	}
}

// AddPrimitive records a primitive structure whose count literals start at
// begin in the column for t.
func (b *Builder) AddPrimitive(parent, name, offset int, t Type, subArraySize, begin, count int) int {
	i := len(b.st.structures)
	b.st.structures = append(b.st.structures, structure{
		name:   name,
		parent: parent,
		next:   i + 1,
		offset: offset,
		data: primitiveData{
			typ:          t,
			subArraySize: subArraySize,
			begin:        begin,
			count:        count,
		},
	})
	return i
}

// EndList terminates a sibling list whose first and last members are given.
func (b *Builder) EndList(parent, first, last int) {
	b.st.structures[last].next = 0
	if parent == NoParent && b.lastRoot >= 0 {
		b.st.structures[b.lastRoot].next = first
	}
}

// PropertyCount is the number of properties recorded so far.
func (b *Builder) PropertyCount() int { return len(b.st.properties) }

func (b *Builder) addProperty(ident string, kind PropertyKind, pos int) {
	b.st.properties = append(b.st.properties, property{
		id:    b.PropertyID(ident),
		ident: b.Intern(ident),
		kind:  kind,
		pos:   pos,
	})
}

func (b *Builder) AddBoolProperty(ident string, v bool) {
	b.st.bools = append(b.st.bools, v)
	b.addProperty(ident, BoolKind, len(b.st.bools)-1)
}

// AddIntProperty records an integral, binary or character property.
func (b *Builder) AddIntProperty(ident string, kind PropertyKind, v int64) {
	b.st.propInts = append(b.st.propInts, v)
	b.addProperty(ident, kind, len(b.st.propInts)-1)
}

func (b *Builder) AddFloatProperty(ident string, v float64) {
	b.st.propFloats = append(b.st.propFloats, v)
	b.addProperty(ident, FloatKind, len(b.st.propFloats)-1)
}

func (b *Builder) AddStringProperty(ident string, v string) {
	b.st.strings = append(b.st.strings, v)
	b.addProperty(ident, StringKind, len(b.st.strings)-1)
}

func (b *Builder) AddTypeProperty(ident string, v Type) {
	b.st.types = append(b.st.types, v)
	b.addProperty(ident, TypeKind, len(b.st.types)-1)
}

// AddReferenceProperty records a reference property of structure origin.
func (b *Builder) AddReferenceProperty(ident string, origin int, path string) {
	b.AddReference(origin, path)
	b.addProperty(ident, ReferenceKind, len(b.st.refs)-1)
}

// Commit resolves every reference, installs the result in the Document and
// invalidates all outstanding views. It returns the paths that could not be
// resolved; those references read as null.
func (b *Builder) Commit() []string {
	unresolved := resolve(b.st)
	b.doc.st = b.st
	b.doc.gen++
	b.st = nil
	return unresolved
}
