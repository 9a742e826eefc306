package main

import (
	"context"
	"iter"

	"github.com/mosra/magnum-plugins-sub007/ir"
	"go.lsp.dev/protocol"
)

func (s *Server) DocumentSymbol(ctx context.Context, params *protocol.DocumentSymbolParams) ([]interface{}, error) {
	doc, ok := s.docs.get(params.TextDocument.URI)
	if !ok || doc.doc == nil {
		return nil, nil
	}
	syms := doc.symbols(doc.doc.Children())
	res := make([]interface{}, len(syms))
	for i := range syms {
		res[i] = syms[i]
	}
	return res, nil
}

func (doc *document) symbols(list iter.Seq[ir.Structure]) []protocol.DocumentSymbol {
	var res []protocol.DocumentSymbol
	for st := range list {
		r := doc.identifierRange(st)
		sym := protocol.DocumentSymbol{
			Name:           symbolName(st),
			Kind:           protocol.SymbolKindArray,
			Detail:         st.Name(),
			Range:          r,
			SelectionRange: r,
		}
		if st.IsCustom() {
			sym.Kind = protocol.SymbolKindStruct
			sym.Children = doc.symbols(st.Children())
		}
		res = append(res, sym)
	}
	return res
}

func symbolName(st ir.Structure) string {
	if st.IsCustom() {
		return st.IdentifierName()
	}
	return st.Type().String()
}
