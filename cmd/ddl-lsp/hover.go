package main

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/mosra/magnum-plugins-sub007/encode"
	"github.com/mosra/magnum-plugins-sub007/ir"
	"github.com/mosra/magnum-plugins-sub007/query"
	"go.lsp.dev/protocol"
)

// maxHoverValues bounds the data values shown for a primitive structure.
const maxHoverValues = 16

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, ok := s.docs.get(params.TextDocument.URI)
	if !ok || doc.doc == nil {
		return nil, nil
	}
	st, ok := doc.structureAt(doc.offset(params.Position))
	if !ok {
		return nil, nil
	}
	r := doc.identifierRange(st)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hoverText(st),
		},
		Range: &r,
	}, nil
}

// structureAt returns the structure starting last at or before off.
func (doc *document) structureAt(off int) (ir.Structure, bool) {
	var res ir.Structure
	found := false
	for st := range doc.doc.All() {
		if st.Offset() <= off && (!found || st.Offset() >= res.Offset()) {
			res, found = st, true
		}
	}
	return res, found
}

func hoverText(st ir.Structure) string {
	var b strings.Builder
	env := query.Env(st)
	fmt.Fprintf(&b, "**%s**", env["ident"])
	if st.HasName() {
		fmt.Fprintf(&b, " `%s`", st.Name())
	}
	fmt.Fprintf(&b, "\n\n`%s`\n", query.Path(st))
	if !st.IsCustom() {
		vals := encode.Literals(st)
		fmt.Fprintf(&b, "\n%d values", len(vals))
		if n := st.SubArraySize(); n != 0 {
			fmt.Fprintf(&b, " in groups of %d", n)
		}
		if len(vals) > maxHoverValues {
			vals = append(vals[:maxHoverValues], "...")
		}
		fmt.Fprintf(&b, ": `%s`\n", strings.Join(vals, ", "))
		return b.String()
	}
	props, _ := env["props"].(map[string]any)
	for _, k := range slices.Sorted(maps.Keys(props)) {
		fmt.Fprintf(&b, "\n- `%s` = `%v`", k, props[k])
	}
	if n := env["count"]; n != 0 {
		fmt.Fprintf(&b, "\n\n%v sub-structures", n)
	}
	b.WriteByte('\n')
	return b.String()
}
