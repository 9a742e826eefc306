package ir

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIdentifiers(t *testing.T) {
	ids := NewIdentifiers("Mesh", "VertexArray", "Mesh")
	if ids.Len() != 3 {
		t.Errorf("len %d", ids.Len())
	}
	if ids.ID("Mesh") != 0 || ids.ID("VertexArray") != 1 || ids.ID("Nope") != UnknownIdentifier {
		t.Error("ID")
	}
	if ids.Name(1) != "VertexArray" || ids.Name(UnknownIdentifier) != "(unknown)" || ids.Name(42) != "(unknown)" {
		t.Error("Name")
	}
	var none *Identifiers
	if none.ID("Mesh") != UnknownIdentifier || none.Len() != 0 {
		t.Error("nil table")
	}
}

func TestTypeText(t *testing.T) {
	for _, typ := range Types() {
		d, err := typ.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Type
		if err := back.UnmarshalText(d); err != nil || back != typ {
			t.Errorf("%s: got %s %v", typ, back, err)
		}
	}
	var x Type
	if err := x.UnmarshalText([]byte("half")); !errors.Is(err, ErrBadType) {
		t.Errorf("got %v", err)
	}
	if _, err := CustomType.MarshalText(); !errors.Is(err, ErrBadType) {
		t.Errorf("got %v", err)
	}
	if t2, ok := LookupType("u32"); !ok || t2 != Uint32Type {
		t.Error("alias")
	}
	if !Int8Type.IsSigned() || Uint8Type.IsSigned() || !DoubleType.IsFloat() || DoubleType.Bits() != 64 {
		t.Error("classification")
	}
}

// build makes:
//
//	Root $r (n = 7, s = "x") {
//	    float[2] %f { {1, 2}, {3, 4} }
//	    ref { $r, null }
//	}
//	Other {}
func build(t *testing.T) *Document {
	t.Helper()
	doc := NewDocument(NewIdentifiers("Root", "Other"), NewIdentifiers("n", "s"))
	b := doc.NewBuilder()
	root := b.Reserve()
	name := b.Intern("$r")
	pb := b.PropertyCount()
	b.AddIntProperty("n", IntegralKind, 7)
	b.AddStringProperty("s", "x")
	pe := b.PropertyCount()

	fname := b.Intern("%f")
	begin := b.ColumnLen(FloatType)
	for _, v := range []float32{1, 2, 3, 4} {
		Append(b, v)
	}
	f := b.AddPrimitive(root, fname, 0, FloatType, 2, begin, 4)

	rbegin := b.ColumnLen(ReferenceType)
	origin := b.Len()
	b.AddReference(origin, "$r")
	b.AddReference(origin, "")
	r := b.AddPrimitive(root, 0, 0, ReferenceType, 0, rbegin, 2)
	b.EndList(root, f, r)
	b.FinishCustom(root, NoParent, name, 0, "Root", pb, pe)

	other := b.Reserve()
	b.FinishCustom(other, NoParent, 0, 0, "Other", b.PropertyCount(), b.PropertyCount())
	b.EndList(NoParent, root, other)
	if u := b.Commit(); len(u) != 0 {
		t.Fatalf("unresolved %v", u)
	}
	return doc
}

func TestViews(t *testing.T) {
	doc := build(t)
	if doc.Len() != 4 || doc.IsEmpty() {
		t.Fatalf("len %d", doc.Len())
	}
	root := doc.FirstChildOf(0)
	if root.Name() != "$r" || !root.IsGlobal() || root.PropertyCount() != 2 {
		t.Error("root")
	}
	if root.PropertyOf(0).Int() != 7 || root.PropertyOf(1).Text() != "x" {
		t.Error("properties")
	}
	if PropertyAs[uint8](root.PropertyOf(0)) != 7 {
		t.Error("PropertyAs")
	}
	if !root.PropertyOf(0).IsTypeCompatibleWith(Uint16Type) || root.PropertyOf(0).IsTypeCompatibleWith(FloatType) {
		t.Error("compatibility")
	}
	f := root.FirstChildOfType(FloatType)
	if diff := cmp.Diff([][]float32{{1, 2}, {3, 4}}, SubArrays[float32](f)); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	refs := root.FirstChildOfType(ReferenceType)
	targets := refs.AsReferenceArray()
	if len(targets) != 2 || targets[0] != root || targets[1].Valid() {
		t.Error("reference targets")
	}
	if diff := cmp.Diff([]string{"$r", "null"}, refs.ReferencePaths()); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	other, ok := root.FindNext()
	if !ok || other.IdentifierName() != "Other" || other.HasChildren() {
		t.Error("other")
	}
	var all []int
	for s := range doc.All() {
		all = append(all, s.Depth())
	}
	if diff := cmp.Diff([]int{0, 1, 1, 0}, all); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestHeaderText(t *testing.T) {
	doc := build(t)
	if diff := cmp.Diff([]string{"x"}, doc.st.strings); diff != "" {
		t.Errorf("string column (-want +got)\n%s", diff)
	}
	root := doc.FirstChild()
	if root.IdentifierName() != "Root" || root.PropertyOf(1).IdentifierName() != "s" {
		t.Error("identifiers")
	}
	b := doc.NewAppendBuilder()
	if b.Intern("Root") != b.Intern("Root") || b.Intern("Root") != doc.st.structures[0].data.(customData).ident {
		t.Error("intern")
	}
}

func mustPanic(t *testing.T, what string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", what)
		}
	}()
	f()
}

func TestMisuse(t *testing.T) {
	doc := build(t)
	root := doc.FirstChild()
	f := root.FirstChild()
	mustPanic(t, "AsArray wrong type", func() { AsArray[float64](f) })
	mustPanic(t, "As on array", func() { As[float32](f) })
	mustPanic(t, "ArraySize on custom", func() { root.ArraySize() })
	mustPanic(t, "Properties on primitive", func() { f.Properties() })
	mustPanic(t, "Bool on int", func() { root.PropertyOf(0).Bool() })
	mustPanic(t, "FirstChildOf missing", func() { doc.FirstChildOf(5) })
	mustPanic(t, "index", func() { doc.Structure(10) })

	b := doc.NewBuilder()
	b.Commit()
	defer func() {
		err, _ := recover().(error)
		if !errors.Is(err, ErrStale) {
			t.Errorf("got %v", err)
		}
	}()
	root.Name()
}

func TestSplitReference(t *testing.T) {
	cases := map[string][]string{
		"$a":     {"$a"},
		"%a%b":   {"%a", "%b"},
		"$a%b%c": {"$a", "%b", "%c"},
	}
	for in, want := range cases {
		if diff := cmp.Diff(want, SplitReference(in)); diff != "" {
			t.Errorf("%s: (-want +got)\n%s", in, diff)
		}
	}
}
