package main

import (
	"context"

	"github.com/mosra/magnum-plugins-sub007/encode"
	"go.lsp.dev/protocol"
)

// Formatting replaces the whole document with its canonical encoding.
func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc, ok := s.docs.get(params.TextDocument.URI)
	if !ok || doc.doc == nil {
		return nil, nil
	}
	opts := []encode.EncodeOption{}
	if n := int(params.Options.TabSize); n > 0 {
		opts = append(opts, encode.Indent(n))
	}
	formatted, err := encode.String(doc.doc, opts...)
	if err != nil {
		return nil, err
	}
	if formatted == string(doc.content) {
		return []protocol.TextEdit{}, nil
	}
	return []protocol.TextEdit{{
		Range:   doc.span(0, len(doc.content)),
		NewText: formatted,
	}}, nil
}
