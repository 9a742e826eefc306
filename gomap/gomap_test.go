package gomap

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mosra/magnum-plugins-sub007/ir"
	"github.com/mosra/magnum-plugins-sub007/parse"
)

func mustParse(t *testing.T, src string) *ir.Document {
	t.Helper()
	doc, err := parse.Parse([]byte(src), ir.NewIdentifiers(), ir.NewIdentifiers(), parse.ParseDiagnostics(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

type VertexArray struct {
	Attrib    string       `ddl:"prop=attrib required"`
	Positions [][3]float32 `ddl:"data=float"`
}

type IndexArray struct {
	Indices []uint32 `ddl:"data"`
}

type Mesh struct {
	Name    string        `ddl:"name"`
	LOD     uint8         `ddl:"prop=lod"`
	Prim    ir.Type       `ddl:"prop=primitive"`
	Enabled bool          `ddl:"prop=on"`
	Arrays  []VertexArray `ddl:"struct=VertexArray"`
	Index   *IndexArray   `ddl:"struct=IndexArray"`
	Skipped int
}

type Scene struct {
	Meshes []*Mesh  `ddl:"struct=Mesh"`
	Title  []string `ddl:"data=string"`
}

const scene = `
string { "demo" }
Mesh $m (lod = 2, primitive = unsigned_int16, on) {
	VertexArray (attrib = "position") {
		float[3] { {0, 0, 0}, {1, 0, 0}, {0, 1, 0} }
	}
	VertexArray (attrib = "normal") {
		float[3] { {0, 0, 1}, {0, 0, 1}, {0, 0, 1} }
	}
	IndexArray { unsigned_int32 { 0, 1, 2 } }
}
Mesh {}
`

func TestFromDocument(t *testing.T) {
	var got Scene
	if err := FromDocument(mustParse(t, scene), &got); err != nil {
		t.Fatal(err)
	}
	want := Scene{
		Title: []string{"demo"},
		Meshes: []*Mesh{{
			Name:    "$m",
			LOD:     2,
			Prim:    ir.Uint16Type,
			Enabled: true,
			Arrays: []VertexArray{
				{Attrib: "position", Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}},
				{Attrib: "normal", Positions: [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}},
			},
			Index: &IndexArray{Indices: []uint32{0, 1, 2}},
		}, {
			Arrays: []VertexArray{},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

type loose struct {
	Any    any          `ddl:"prop=x"`
	Ref    ir.Structure `ddl:"prop=r"`
	Path   string       `ddl:"prop=r"`
	Groups [][]int64    `ddl:"data=int32"`
	Bytes  []byte       `ddl:"data=base64"`
	Type   string       `ddl:"prop=t"`
	Data   ir.Structure `ddl:"data=int32"`
}

func TestFromStructure(t *testing.T) {
	doc := mustParse(t, `Target $t {}
Holder (x = 1.5, r = $t, t = double) { int32[2] { {1, 2}, {3, 4} } base64 { SGk= } }`)
	holder := doc.FirstChild()
	for s := range doc.Children() {
		holder = s
	}
	var got loose
	if err := FromStructure(holder, &got); err != nil {
		t.Fatal(err)
	}
	if got.Any != 1.5 || got.Path != "$t" || got.Type != "double" || string(got.Bytes) != "Hi" {
		t.Errorf("got %+v", got)
	}
	if got.Ref.Name() != "$t" || got.Data.ArraySize() != 4 {
		t.Error("structure views")
	}
	if diff := cmp.Diff([][]int64{{1, 2}, {3, 4}}, got.Groups); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestFromErrors(t *testing.T) {
	type small struct {
		V int8 `ddl:"prop=v"`
	}
	type unsigned struct {
		V uint16 `ddl:"data"`
	}
	type named struct {
		Name string `ddl:"name required"`
	}
	type badTag struct {
		V int `ddl:"prop"`
	}
	type twoKeys struct {
		V int `ddl:"prop=a data"`
	}
	type wrongSize struct {
		V [][2]float32 `ddl:"data"`
	}
	type arrays struct {
		Arrays []VertexArray `ddl:"struct=VertexArray"`
	}
	type strict struct {
		A int `ddl:"prop=a"`
	}
	cases := []struct {
		name string
		src  string
		v    any
		opts []UnmapOption
		err  error
	}{
		{"range", "S (v = 200) {}", &small{}, nil, ErrRange},
		{"negative", "S { int32 { -1 } }", &unsigned{}, nil, ErrRange},
		{"count", "S { int32 { 1, 2 } }", &unsigned{}, nil, ErrType},
		{"type", `S (v = "x") {}`, &small{}, nil, ErrType},
		{"name", "S {}", &named{}, nil, ErrMissing},
		{"required property", "S { VertexArray {} }", &arrays{}, nil, ErrMissing},
		{"tag", "S {}", &badTag{}, nil, ErrBadTag},
		{"two keys", "S {}", &twoKeys{}, nil, ErrBadTag},
		{"sub-array size", "S { float[3] { {1, 2, 3} } }", &wrongSize{}, nil, ErrType},
		{"no sub-arrays", "S { float { 1, 2 } }", &wrongSize{}, nil, ErrType},
		{"strict property", "S (a = 1, b = 2) {}", &strict{}, []UnmapOption{Strict()}, ErrUnknown},
		{"strict structure", "S (a = 1) { T {} }", &strict{}, []UnmapOption{Strict()}, ErrUnknown},
		{"not a pointer", "S {}", small{}, nil, ErrBadValue},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := FromStructure(mustParse(t, c.src).FirstChild(), c.v, c.opts...)
			if !errors.Is(err, c.err) {
				t.Errorf("got %v want %v", err, c.err)
			}
			var ue *UnmarshalError
			if !errors.As(err, &ue) {
				t.Errorf("not an *UnmarshalError: %v", err)
			}
		})
	}
	if err := FromStructure(mustParse(t, "S (a = 1) { float {} }").FirstChild(), &strict{}, Strict()); err != nil {
		t.Errorf("primitive sub-structures are not strict: %v", err)
	}
}

func TestParseStructTag(t *testing.T) {
	got, err := ParseStructTag(`prop='a b',required data`)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"prop": "a b", "required": "", "data": ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	if _, err := ParseStructTag(`prop='open`); !errors.Is(err, ErrBadTag) {
		t.Errorf("got %v", err)
	}
}
