package main

import (
	"context"

	"github.com/mosra/magnum-plugins-sub007/ir"
	"go.lsp.dev/protocol"
)

// Completion offers the structure identifiers of the schema followed by the
// primitive type keywords.
func (s *Server) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	return &protocol.CompletionList{Items: s.docs.completions()}, nil
}

func (ds *documentStore) completions() []protocol.CompletionItem {
	structs, props := ds.tables()
	var res []protocol.CompletionItem
	for _, name := range structs.Names() {
		res = append(res, protocol.CompletionItem{
			Label:  name,
			Kind:   protocol.CompletionItemKindStruct,
			Detail: "structure",
		})
	}
	for _, name := range props.Names() {
		res = append(res, protocol.CompletionItem{
			Label:  name,
			Kind:   protocol.CompletionItemKindProperty,
			Detail: "property",
		})
	}
	for _, t := range ir.Types() {
		res = append(res, protocol.CompletionItem{
			Label:  t.String(),
			Kind:   protocol.CompletionItemKindKeyword,
			Detail: "primitive type",
		})
	}
	return res
}
