package parse

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mosra/magnum-plugins-sub007/ir"
	"github.com/mosra/magnum-plugins-sub007/token"
)

const (
	SomeStructure = iota
	RootStructure
	HierarchicStructure
)

const (
	SomeProperty = iota
	BooleanProperty
	ReferenceProperty
)

var (
	structs = ir.NewIdentifiers("Some", "Root", "Hierarchic")
	props   = ir.NewIdentifiers("some", "boolean", "reference")
)

func mustParse(t *testing.T, src string) *ir.Document {
	t.Helper()
	buf := &bytes.Buffer{}
	doc, err := Parse([]byte(src), structs, props, ParseDiagnostics(buf))
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	if buf.Len() != 0 {
		t.Fatalf("parse %q: unexpected diagnostics %q", src, buf.String())
	}
	return doc
}

func names(seq func(func(ir.Structure) bool)) []string {
	var res []string
	for s := range seq {
		res = append(res, s.Name())
	}
	return res
}

func TestPrimitive(t *testing.T) {
	doc := mustParse(t, `int16 { 35, -'\x0c', 45 }`)
	s := doc.FirstChild()
	if s.IsCustom() || s.Type() != ir.Int16Type {
		t.Fatalf("got %s", s.Type())
	}
	if _, ok := s.Parent(); ok {
		t.Error("top level structure has a parent")
	}
	if _, ok := s.FindNext(); ok {
		t.Error("unexpected sibling")
	}
	if s.SubArraySize() != 0 || s.ArraySize() != 3 {
		t.Errorf("sizes %d %d", s.SubArraySize(), s.ArraySize())
	}
	if diff := cmp.Diff([]int16{35, -12, 45}, ir.AsArray[int16](s)); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestPrimitiveEmptyAndNamed(t *testing.T) {
	doc := mustParse(t, "float {}")
	if s := doc.FirstChild(); s.ArraySize() != 0 || s.HasName() {
		t.Errorf("empty: %d %q", s.ArraySize(), s.Name())
	}
	doc = mustParse(t, "float %name {}")
	if n := doc.FirstChild().Name(); n != "%name" {
		t.Errorf("got %q", n)
	}
	doc = mustParse(t, "unsigned_int8[2] $name {}")
	s := doc.FirstChild()
	if s.Name() != "$name" || !s.IsGlobal() || s.SubArraySize() != 2 || s.ArraySize() != 0 {
		t.Errorf("got %q %d %d", s.Name(), s.SubArraySize(), s.ArraySize())
	}
}

func TestSubArray(t *testing.T) {
	doc := mustParse(t, "unsigned_int8[2] { {0xca, 0xfe}, {0xba, 0xbe} }")
	s := doc.FirstChild()
	if s.SubArraySize() != 2 || s.ArraySize() != 4 {
		t.Fatalf("sizes %d %d", s.SubArraySize(), s.ArraySize())
	}
	want := [][]uint8{{0xca, 0xfe}, {0xba, 0xbe}}
	if diff := cmp.Diff(want, ir.SubArrays[uint8](s)); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestFloatTriples(t *testing.T) {
	doc := mustParse(t, "float[3] { {1, 2, 3}, {4, 5, 6}, {7, 8, 9} }")
	s := doc.FirstChild()
	want := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}
	if diff := cmp.Diff(want, ir.AsArray[float32](s)); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	groups := ir.SubArrays[float32](s)
	if len(groups) != 3 || len(groups[2]) != 3 || groups[2][0] != 7 {
		t.Errorf("got %v", groups)
	}
}

func TestTopLevelPrimitives(t *testing.T) {
	doc := mustParse(t, `
int32 { 1, 2, 3 }
double { 0.5 }
string { "a", "b" }
bool { true, false, true, true }
`)
	var counts []int
	for s := range doc.Children() {
		counts = append(counts, s.ArraySize())
	}
	if diff := cmp.Diff([]int{3, 1, 2, 4}, counts); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestAllTypes(t *testing.T) {
	doc := mustParse(t, `
b { true }
unsigned_int16 { 0xffff }
int64 { -9223372036854775808 }
unsigned_int64 { 18446744073709551615 }
double { 1e-3 }
f { 0x3f800000 }
type { float, unsigned_int8, ref }
base64 { SGVsbG8= }
string { "multi" "part" }
`)
	s := doc.FirstChild()
	if !ir.As[bool](s) {
		t.Error("bool")
	}
	s, _ = s.FindNext()
	if ir.As[uint16](s) != 0xffff {
		t.Error("uint16")
	}
	s, _ = s.FindNext()
	if ir.As[int64](s) != -9223372036854775808 {
		t.Error("int64")
	}
	s, _ = s.FindNext()
	if ir.As[uint64](s) != 18446744073709551615 {
		t.Error("uint64")
	}
	s, _ = s.FindNext()
	if ir.As[float64](s) != 1e-3 {
		t.Error("double")
	}
	s, _ = s.FindNext()
	if s.Type() != ir.FloatType || ir.As[float32](s) != 1 {
		t.Error("float bits")
	}
	s, _ = s.FindNext()
	if diff := cmp.Diff([]ir.Type{ir.FloatType, ir.Uint8Type, ir.ReferenceType}, ir.AsArray[ir.Type](s)); diff != "" {
		t.Errorf("types (-want +got)\n%s", diff)
	}
	s, _ = s.FindNext()
	if string(ir.As[[]byte](s)) != "Hello" {
		t.Error("base64")
	}
	s, _ = s.FindNext()
	if ir.As[string](s) != "multipart" {
		t.Error("string concatenation")
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		src  string
		msg  string
		kind error
	}{
		{"float 35", "expected { character", token.ErrExpectedListStart},
		{"float { 35", "expected } character", token.ErrExpectedListEnd},
		{"float { 35 45", "expected , character", token.ErrExpectedSeparator},
		{"float { 35,", "expected float literal", token.ErrExpectedLiteral},
		{"unsigned_int8[0] {}", "invalid subarray size", token.ErrInvalidSubArraySize},
		{"unsigned_int8[2 {", "expected ] character", token.ErrExpectedArraySizeEnd},
		{"unsigned_int8[2] { {0xca, 0xfe} {0xba", "expected , character", token.ErrExpectedSeparator},
		{"unsigned_int8[3] { {0xca, 0xfe,", "expected unsigned_int8 literal", token.ErrExpectedLiteral},
		{"unsigned_int8[2] { {0xca, 0xfe},", "expected { character", token.ErrExpectedListStart},
		{"int32[2] { {0xca, 0xfe, 0xba", "expected } character", token.ErrExpectedListEnd},
		{"double[2] { {35 45", "expected , character", token.ErrExpectedSeparator},
		{"float[2] { {35 45", "expected , character", token.ErrExpectedSeparator},
		{"%name { string", "invalid identifier", token.ErrInvalidIdentifier},
		{"Root string", "expected { character", token.ErrExpectedListStart},
		{"Root { ", "expected } character", token.ErrExpectedListEnd},
		{"Root (some = 15.3 boolean", "expected , character", token.ErrExpectedSeparator},
		{"Root (some 15.3", "expected = character", token.ErrExpectedAssignment},
		{"Root (some = 15.3 ", "expected ) character", token.ErrExpectedPropertyListEnd},
		{"Root (%some = 15.3", "invalid identifier", token.ErrInvalidIdentifier},
		{"Root (some = Fail", "invalid property value", token.ErrInvalidPropertyValue},
		{"Root (some = ", "expected property value", token.ErrExpectedPropertyValue},
		{"unsigned_int8 { 256 }", "numeric literal out of range", token.ErrOutOfRange},
		{`string { "open`, "unterminated string literal", token.ErrUnterminatedString},
		{`string { "\q" }`, "invalid escape sequence", token.ErrInvalidEscape},
		{"bool { 1 }", "invalid bool literal", token.ErrInvalidLiteral},
		{"ref { abc }", "invalid ref literal", token.ErrInvalidLiteral},
		{"Root $ {}", "invalid name", token.ErrInvalidName},
		{"/* open", "unterminated comment", token.ErrUnterminatedComment},
	}
	for _, c := range cases {
		buf := &bytes.Buffer{}
		doc, err := Parse([]byte(c.src), structs, props, ParseDiagnostics(buf))
		if err == nil {
			t.Errorf("%q: expected error", c.src)
			continue
		}
		if doc != nil {
			t.Errorf("%q: got a document on error", c.src)
		}
		if !errors.Is(err, ErrParse) || !errors.Is(err, c.kind) {
			t.Errorf("%q: got %v want %v", c.src, err, c.kind)
		}
		want := "parse: " + c.msg + " on line 1\n"
		if diff := cmp.Diff(want, buf.String()); diff != "" {
			t.Errorf("%q: (-want +got)\n%s", c.src, diff)
		}
	}
}

func TestErrorLine(t *testing.T) {
	buf := &bytes.Buffer{}
	_, err := Parse([]byte("Root {\n  float { 1,\n  2 3 }\n}"), structs, props, ParseDiagnostics(buf))
	var te *token.Error
	if !errors.As(err, &te) {
		t.Fatalf("got %v", err)
	}
	if te.Line() != 3 || te.Pos.Col() != 4 {
		t.Errorf("line %d col %d", te.Line(), te.Pos.Col())
	}
	if buf.String() != "parse: expected , character on line 3\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestCustom(t *testing.T) {
	doc := mustParse(t, `Root { string {"hello"} }`)
	root := doc.FirstChild()
	if !root.IsCustom() || root.Identifier() != RootStructure || root.IdentifierName() != "Root" {
		t.Fatalf("got %s", root.IdentifierName())
	}
	if root.HasProperties() {
		t.Error("unexpected properties")
	}
	str := root.FirstChild()
	if p, ok := str.Parent(); !ok || p != root {
		t.Error("parent")
	}
	if ir.As[string](str) != "hello" {
		t.Error("value")
	}

	doc = mustParse(t, "Some {}")
	if s := doc.FirstChild(); s.Identifier() != SomeStructure || s.HasChildren() {
		t.Error("empty custom")
	}

	doc = mustParse(t, "UnspecifiedStructure {}")
	if s := doc.FirstChild(); s.Identifier() != ir.UnknownIdentifier || s.IdentifierName() != "UnspecifiedStructure" {
		t.Error("unknown identifier")
	}

	doc = mustParse(t, "Some %some_name {}")
	if n := doc.FirstChild().Name(); n != "%some_name" {
		t.Errorf("got %q", n)
	}
}

func TestCustomProperties(t *testing.T) {
	doc := mustParse(t, "Root %some_name (boolean = true, some = 15.3) {}")
	root := doc.FirstChild()
	if root.Name() != "%some_name" || root.PropertyCount() != 2 {
		t.Fatalf("got %q %d", root.Name(), root.PropertyCount())
	}
	b := root.PropertyOf(BooleanProperty)
	if !b.IsTypeCompatibleWith(ir.BoolType) || !b.Bool() {
		t.Error("boolean")
	}
	s := root.PropertyOf(SomeProperty)
	if !s.IsTypeCompatibleWith(ir.FloatType) || s.Float() != 15.3 || ir.PropertyAs[float64](s) != 15.3 {
		t.Error("some")
	}
	if _, ok := root.FindPropertyOf(ReferenceProperty); ok {
		t.Error("reference should be absent")
	}

	doc = mustParse(t, "Root () {}")
	if doc.FirstChild().HasProperties() {
		t.Error("empty property list")
	}

	doc = mustParse(t, `Root (unspecified = "hello") {}`)
	var got []int
	for p := range doc.FirstChild().Properties() {
		got = append(got, p.Identifier())
		if p.IdentifierName() != "unspecified" || p.Text() != "hello" {
			t.Error("unknown property")
		}
	}
	if diff := cmp.Diff([]int{ir.UnknownIdentifier}, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestPropertyKinds(t *testing.T) {
	doc := mustParse(t, `Root $x (a = 1, b = -0x10, c = 'x', d = 1e3, e = "s", f = $x, g = null, h = float, i, j = false) {}`)
	var kinds []ir.PropertyKind
	for p := range doc.FirstChild().Properties() {
		kinds = append(kinds, p.Kind())
	}
	want := []ir.PropertyKind{
		ir.IntegralKind, ir.BinaryKind, ir.CharacterKind, ir.FloatKind, ir.StringKind,
		ir.ReferenceKind, ir.ReferenceKind, ir.TypeKind, ir.BoolKind, ir.BoolKind,
	}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	var vals []any
	for p := range doc.FirstChild().Properties() {
		switch p.Kind() {
		case ir.IntegralKind, ir.BinaryKind, ir.CharacterKind:
			vals = append(vals, p.Int())
		case ir.FloatKind:
			vals = append(vals, p.Float())
		case ir.StringKind:
			vals = append(vals, p.Text())
		case ir.ReferenceKind:
			vals = append(vals, p.ReferencePath())
		case ir.TypeKind:
			vals = append(vals, p.TypeValue())
		case ir.BoolKind:
			vals = append(vals, p.Bool())
		}
	}
	wantVals := []any{int64(1), int64(-16), int64('x'), 1000.0, "s", "$x", "null", ir.FloatType, true, false}
	if diff := cmp.Diff(wantVals, vals); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestHierarchy(t *testing.T) {
	doc := mustParse(t, `
// This should finally work.

Root (some /*duplicates are ignored*/ = 15.0, some = 0.5) { string { "hello", "world" } }

Hierarchic %node819 (boolean = false, id = 819) {
    Hierarchic %node820 (boolean = true, id = 820) {
        Some { int32[2] { {3, 4}, {5, 6} } }
    }

    Some { int16[2] { {0, 1}, {2, 3} } }
}

Hierarchic %node821 {}
`)
	root, ok := doc.FindFirstChildOf(RootStructure)
	if !ok || !root.IsCustom() {
		t.Fatal("root")
	}
	if _, ok := root.Parent(); ok {
		t.Error("root parent")
	}
	some, ok := root.FindPropertyOf(SomeProperty)
	if !ok || !some.IsTypeCompatibleWith(ir.FloatType) || some.Float() != 15.0 {
		t.Error("first matching property wins")
	}
	str := root.FirstChild()
	if _, ok := str.FindNext(); ok || str.Type() != ir.StringType {
		t.Error("string child")
	}
	if diff := cmp.Diff([]string{"hello", "world"}, ir.AsArray[string](root.FirstChildOfType(ir.StringType))); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	if _, ok := root.FindNextOf(RootStructure); ok {
		t.Error("second root")
	}
	if _, ok := root.FindPropertyOf(BooleanProperty); ok {
		t.Error("boolean on root")
	}

	a, ok := doc.FindFirstChildOf(HierarchicStructure)
	if !ok || a.Name() != "%node819" {
		t.Fatal("hierarchic a")
	}
	aSome, ok := a.FindFirstChildOf(SomeStructure)
	if !ok {
		t.Fatal("a.Some")
	}
	if p, _ := aSome.Parent(); p != a {
		t.Error("a.Some parent")
	}
	if _, ok := aSome.FindNext(); ok {
		t.Error("a.Some is last")
	}
	data := aSome.FirstChild()
	if data.Type() != ir.Int16Type || data.SubArraySize() != 2 {
		t.Error("a.Some data")
	}
	if diff := cmp.Diff([]int16{0, 1, 2, 3}, ir.AsArray[int16](data)); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}

	b, ok := a.FindFirstChildOf(HierarchicStructure)
	if !ok || b.Name() != "%node820" || b.Depth() != 1 {
		t.Fatal("hierarchic b")
	}
	if !b.PropertyOf(BooleanProperty).Bool() {
		t.Error("b.boolean")
	}
	bData := b.FirstChildOf(SomeStructure).FirstChild()
	if diff := cmp.Diff([]int32{3, 4, 5, 6}, ir.AsArray[int32](bData)); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}

	c, ok := a.FindNextOf(HierarchicStructure)
	if !ok || c.Name() != "%node821" {
		t.Fatal("hierarchic c")
	}
	if _, ok := c.FindNextOf(HierarchicStructure); ok {
		t.Error("c is last")
	}
	if next, ok := a.FindNextSame(); !ok || next != c {
		t.Error("FindNextSame")
	}
}

func TestDocumentChildren(t *testing.T) {
	doc := mustParse(t, `
Root %root1 {}
Hierarchic %hierarchic1 {
    Root %root2 {}
    Hierarchic %hierarchic2 {}
}
Hierarchic %hierarchic3 {}
Unknown %unknown {}
Root %root3 {}
`)
	cases := []struct {
		got  []string
		want []string
	}{
		{names(doc.Children()), []string{"%root1", "%hierarchic1", "%hierarchic3", "%unknown", "%root3"}},
		{names(doc.ChildrenOf(HierarchicStructure)), []string{"%hierarchic1", "%hierarchic3"}},
		{names(doc.ChildrenOf(HierarchicStructure, RootStructure)), []string{"%root1", "%hierarchic1", "%hierarchic3", "%root3"}},
		{names(doc.ChildrenOf(SomeStructure)), nil},
	}
	for i, c := range cases {
		if diff := cmp.Diff(c.want, c.got); diff != "" {
			t.Errorf("%d: (-want +got)\n%s", i, diff)
		}
	}
}

func TestStructureChildren(t *testing.T) {
	doc := mustParse(t, `
Root %root1 {}
Hierarchic %hierarchic1 {
    Root %root2 {}
    Unknown %unknown {}
    Hierarchic %hierarchic2 {
        Root %root3 {}
    }
    Root %root4 {}
}
Hierarchic %hierarchic3 {}
`)
	h := doc.FirstChildOf(HierarchicStructure)
	cases := []struct {
		got  []string
		want []string
	}{
		{names(h.Children()), []string{"%root2", "%unknown", "%hierarchic2", "%root4"}},
		{names(h.ChildrenOf(RootStructure)), []string{"%root2", "%root4"}},
		{names(h.ChildrenOf(RootStructure, HierarchicStructure)), []string{"%root2", "%hierarchic2", "%root4"}},
		{names(doc.FirstChildOf(RootStructure).Children()), nil},
	}
	for i, c := range cases {
		if diff := cmp.Diff(c.want, c.got); diff != "" {
			t.Errorf("%d: (-want +got)\n%s", i, diff)
		}
	}
}

func TestStructureProperties(t *testing.T) {
	doc := mustParse(t, `
Root (some = "string to ignore", boolean = "hello", unknown = "hey", some = "string") {}
Hierarchic () {}
`)
	var got []string
	for p := range doc.FirstChildOf(RootStructure).Properties() {
		got = append(got, ir.PropertyAs[string](p))
	}
	if diff := cmp.Diff([]string{"string to ignore", "hello", "hey", "string"}, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	for range doc.FirstChildOf(HierarchicStructure).Properties() {
		t.Error("unexpected property")
	}
}

func TestStructureEquality(t *testing.T) {
	doc := mustParse(t, "Root {}\nSome {}")
	a := doc.FirstChildOf(RootStructure)
	b := doc.FirstChildOf(SomeStructure)
	if a != doc.FirstChildOf(RootStructure) || a == b {
		t.Error("equality")
	}
}

func TestMesh(t *testing.T) {
	s := ir.NewIdentifiers("Mesh", "VertexArray")
	p := ir.NewIdentifiers("lod", "attrib")
	doc, err := Parse([]byte(`Mesh (lod = 1) { VertexArray (attrib = "position") { float { 1.0, 2.0, 3.0 } } }`), s, p)
	if err != nil {
		t.Fatal(err)
	}
	mesh := doc.FirstChildOf(0)
	if mesh.PropertyCount() != 1 || mesh.PropertyOf(0).Int() != 1 {
		t.Errorf("lod: %d properties", mesh.PropertyCount())
	}
	if _, ok := mesh.FindPropertyOf(1); ok {
		t.Error("attrib belongs to VertexArray")
	}
	va := mesh.FirstChildOf(1)
	if va.PropertyCount() != 1 || va.PropertyOf(1).Text() != "position" {
		t.Errorf("attrib: %d properties", va.PropertyCount())
	}
	if diff := cmp.Diff([]float32{1, 2, 3}, ir.AsArray[float32](va.FirstChildOfType(ir.FloatType))); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestNestedProperties(t *testing.T) {
	s := ir.NewIdentifiers("A", "B")
	p := ir.NewIdentifiers("x", "y", "z")
	doc, err := Parse([]byte(`A (x = 1) { B (y = 2, z = 3) { B (z = 4) {} } B {} } A {}`), s, p)
	if err != nil {
		t.Fatal(err)
	}
	var got []int
	for st := range doc.All() {
		if st.IsCustom() {
			got = append(got, st.PropertyCount())
		}
	}
	if diff := cmp.Diff([]int{1, 2, 1, 0, 0}, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	inner := doc.FirstChild().FirstChild().FirstChild()
	if inner.PropertyOf(2).Int() != 4 {
		t.Error("inner z")
	}
}

func TestChildrenRanges(t *testing.T) {
	s := ir.NewIdentifiers("A", "B", "C")
	doc, err := Parse([]byte(`A {} B {} C { A {} B {} A {} }`), s, nil)
	if err != nil {
		t.Fatal(err)
	}
	count := func(seq func(func(ir.Structure) bool)) int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	c := doc.FirstChildOf(2)
	seqs := []struct {
		name string
		seq  func(func(ir.Structure) bool)
		want int
	}{
		{"doc children", doc.Children(), 3},
		{"doc children of", doc.ChildrenOf(0, 2), 2},
		{"children", c.Children(), 3},
		{"children of", c.ChildrenOf(0), 2},
	}
	for _, sq := range seqs {
		for k := range 2 {
			if n := count(sq.seq); n != sq.want {
				t.Errorf("%s range %d: got %d want %d", sq.name, k, n, sq.want)
			}
		}
	}
}

func TestReference(t *testing.T) {
	doc := mustParse(t, `
Root { ref { %b0 } }
Hierarchic { ref { $b1 } }
Root {
    Root %b0 {}
    Root {
        Root $b1 {}
    }
}
`)
	b0, ok := doc.FirstChildOf(RootStructure).FirstChild().AsReference()
	if !ok || b0.Name() != "%b0" {
		t.Errorf("b0: %v", ok)
	}
	b1, ok := doc.FirstChildOf(HierarchicStructure).FirstChild().AsReference()
	if !ok || b1.Name() != "$b1" {
		t.Errorf("b1: %v", ok)
	}
	again, _ := doc.FirstChildOf(HierarchicStructure).FirstChild().AsReference()
	if again != b1 {
		t.Error("resolution is not stable")
	}
}

func TestReferenceInProperty(t *testing.T) {
	doc := mustParse(t, `
Root (reference = %b0) {}
Hierarchic (reference = $b1) {}
Root {
    Root %b0 {}
    Root {
        Root $b1 {}
    }
}
`)
	b0, ok := doc.FirstChildOf(RootStructure).PropertyOf(ReferenceProperty).AsReference()
	if !ok || b0.Name() != "%b0" {
		t.Error("b0")
	}
	b1, ok := doc.FirstChildOf(HierarchicStructure).PropertyOf(ReferenceProperty).AsReference()
	if !ok || b1.Name() != "$b1" {
		t.Error("b1")
	}
}

func TestReferenceNull(t *testing.T) {
	doc := mustParse(t, "Root (reference = null) {}\nHierarchic { ref { null } }")
	if _, ok := doc.FirstChildOf(RootStructure).PropertyOf(ReferenceProperty).AsReference(); ok {
		t.Error("property")
	}
	if _, ok := doc.FirstChildOf(HierarchicStructure).FirstChild().AsReference(); ok {
		t.Error("data")
	}
	if len(doc.Unresolved()) != 0 {
		t.Error("null is not unresolved")
	}
}

func TestReferenceChain(t *testing.T) {
	doc := mustParse(t, `
ref {
    /* These two are different structures */
    %local1, %root%local1,
    /* Both of these should be found and not result in an error */
    $global1%local2,  $global2
}
Root %root {
    Root %local1 {
        int16 %local3 {}
    }
    ref {
        /* Single name, takes the sibling */
        %local1,
        /* Single name but sibling not found, takes the global one */
        %local4,
        /* Multiple names, takes the global one */
        %local1%local3
    }
    Root $global1 {
        int8 $global2 {}
        float %local2 {}
    }
}
Root %local1 {
    int32 %local3 {}
}
bool %local4 {}
`)
	top := doc.FirstChildOfType(ir.ReferenceType).AsReferenceArray()
	if len(top) != 4 {
		t.Fatalf("got %d", len(top))
	}
	if !top[0].Valid() || top[0].Name() != "%local1" {
		t.Error("top[0]")
	}
	if _, ok := top[0].Parent(); ok {
		t.Error("top[0] is top level")
	}
	if !top[1].Valid() || top[1] == top[0] || top[1].Name() != "%local1" {
		t.Error("top[1]")
	}
	if _, ok := top[1].Parent(); !ok {
		t.Error("top[1] is nested")
	}
	if top[2].Name() != "%local2" || top[2].Type() != ir.FloatType {
		t.Error("top[2]")
	}
	if top[3].Name() != "$global2" || top[3].Type() != ir.Int8Type {
		t.Error("top[3]")
	}

	local := doc.FirstChildOf(RootStructure).FirstChildOfType(ir.ReferenceType).AsReferenceArray()
	if len(local) != 3 {
		t.Fatalf("got %d", len(local))
	}
	if _, ok := local[0].Parent(); !ok || local[0].Name() != "%local1" {
		t.Error("local[0]")
	}
	if local[1].Name() != "%local4" || local[1].Type() != ir.BoolType {
		t.Error("local[1]")
	}
	if local[2].Name() != "%local3" || local[2].Type() != ir.Int32Type {
		t.Error("local[2]")
	}
	paths := doc.FirstChildOfType(ir.ReferenceType).ReferencePaths()
	if diff := cmp.Diff([]string{"%local1", "%root%local1", "$global1%local2", "$global2"}, paths); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestReferenceUnresolved(t *testing.T) {
	buf := &bytes.Buffer{}
	doc, err := Parse([]byte("Hierarchic (reference = %local1) {}"), structs, props, ParseDiagnostics(buf))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := doc.FirstChild().PropertyOf(ReferenceProperty).AsReference(); ok {
		t.Error("resolved")
	}
	doc, err = Parse([]byte(`
Root %root {
    Hierarchic (reference = %local1%local2) {}
    Root %local1 {
        int16 %local2 {}
    }
}`), structs, props, ParseDiagnostics(buf))
	if err != nil {
		t.Fatal(err)
	}
	want := "parse: reference %local1 was not found\n" +
		"parse: reference %local1%local2 was not found\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	if diff := cmp.Diff([]string{"%local1%local2"}, doc.Unresolved()); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestInto(t *testing.T) {
	doc := mustParse(t, "Root %a {}")
	first := doc.FirstChild()
	gen := doc.Generation()

	if err := Into(doc, []byte("Root { ref { %a } }\nSome %b {}"), ParseAppend(), ParseDiagnostics(nil)); err != nil {
		t.Fatal(err)
	}
	if doc.Generation() != gen+1 {
		t.Error("generation")
	}
	if diff := cmp.Diff([]string{"%a", "", "%b"}, names(doc.Children())); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	target, ok := doc.FirstChild().FindNextOf(RootStructure)
	if !ok {
		t.Fatal("appended root")
	}
	if r, ok := target.FirstChild().AsReference(); !ok || r.Name() != "%a" {
		t.Error("reference into earlier structures")
	}

	func() {
		defer func() {
			r := recover()
			err, _ := r.(error)
			if !errors.Is(err, ir.ErrStale) {
				t.Errorf("expected stale view panic, got %v", r)
			}
		}()
		first.Name()
	}()

	gen = doc.Generation()
	if err := Into(doc, []byte("Root {"), ParseDiagnostics(nil)); err == nil {
		t.Fatal("expected error")
	}
	if doc.Generation() != gen || doc.Len() != 4 {
		t.Error("failed parse changed the document")
	}

	if err := Into(doc, []byte("Some {}"), ParseDiagnostics(nil)); err != nil {
		t.Fatal(err)
	}
	if doc.Len() != 1 {
		t.Errorf("replace: got %d structures", doc.Len())
	}
}

func TestDefaultDiagnostics(t *testing.T) {
	o := newParseOpts(nil)
	if o.diag == nil || o.append {
		t.Error("defaults")
	}
	if !strings.HasPrefix(ErrParse.Error(), "parse") {
		t.Error("ErrParse")
	}
}
