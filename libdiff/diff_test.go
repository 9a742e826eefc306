package libdiff

import (
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mosra/magnum-plugins-sub007/ir"
	"github.com/mosra/magnum-plugins-sub007/parse"
)

func mustParse(t *testing.T, src string) *ir.Document {
	t.Helper()
	doc, err := parse.Parse([]byte(src), ir.NewIdentifiers("Mesh"), ir.NewIdentifiers("lod"),
		parse.ParseDiagnostics(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestDiffEqual(t *testing.T) {
	a := mustParse(t, "Mesh (lod = 1) { u16 { 0x10, 2 } } // x")
	b := mustParse(t, "Mesh(lod=1){\n unsigned_int16{16,2}\n}")
	res, err := Diff(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Equal() {
		t.Errorf("got\n%s", res)
	}
}

func TestDiff(t *testing.T) {
	a := mustParse(t, "Mesh { float { 1 } }\nMesh { float { 2 } }\nMesh {}")
	b := mustParse(t, "Mesh { float { 1 } }\nMesh { float { 3 } }\nMesh {}")
	res, err := Diff(a, b)
	if err != nil {
		t.Fatal(err)
	}
	want := []Line{
		{Equal, "Mesh {"},
		{Equal, "  float {1}"},
		{Equal, "}"},
		{Equal, "Mesh {"},
		{Delete, "  float {2}"},
		{Insert, "  float {3}"},
		{Equal, "}"},
		{Equal, "Mesh {}"},
	}
	if diff := cmp.Diff(want, res.Lines); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
	if ins, del := res.Changes(); ins != 1 || del != 1 {
		t.Errorf("changes %d %d", ins, del)
	}
	buf := &strings.Builder{}
	if err := res.Write(buf, DiffContext(1)); err != nil {
		t.Fatal(err)
	}
	wantText := "  ...\n  Mesh {\n-   float {2}\n+   float {3}\n  }\n  ...\n"
	if diff := cmp.Diff(wantText, buf.String()); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}
