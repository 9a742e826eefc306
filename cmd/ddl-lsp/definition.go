package main

import (
	"context"
	"strings"

	"github.com/mosra/magnum-plugins-sub007/ir"
	"github.com/mosra/magnum-plugins-sub007/token"
	"go.lsp.dev/protocol"
)

// Definition jumps from a reference to the structure it resolved to.
func (s *Server) Definition(ctx context.Context, params *protocol.DefinitionParams) ([]protocol.Location, error) {
	doc, ok := s.docs.get(params.TextDocument.URI)
	if !ok || doc.doc == nil {
		return nil, nil
	}
	target, ok := doc.definition(doc.offset(params.Position))
	if !ok {
		return nil, nil
	}
	return []protocol.Location{{
		URI:   doc.uri,
		Range: doc.identifierRange(target),
	}}, nil
}

func (doc *document) definition(off int) (ir.Structure, bool) {
	toks, err := token.Tokenize(nil, doc.content)
	if err != nil {
		return ir.Structure{}, false
	}
	var path string
	for i := range toks {
		tk := &toks[i]
		if tk.Type == token.TName && tk.Pos.I <= off && off <= tk.Pos.I+len(tk.Bytes) {
			path = strings.ReplaceAll(string(tk.Bytes), "/", "")
			break
		}
	}
	if path == "" {
		return ir.Structure{}, false
	}
	st, ok := doc.structureAt(off)
	if !ok {
		return ir.Structure{}, false
	}
	if !st.IsCustom() {
		if st.Type() != ir.ReferenceType {
			return ir.Structure{}, false
		}
		targets := st.AsReferenceArray()
		for k, p := range st.ReferencePaths() {
			if p == path && targets[k].Valid() {
				return targets[k], true
			}
		}
		return ir.Structure{}, false
	}
	for p := range st.Properties() {
		if p.Kind() == ir.ReferenceKind && p.ReferencePath() == path {
			return p.AsReference()
		}
	}
	return ir.Structure{}, false
}
