package main

import (
	"context"
	"errors"
	"slices"

	"github.com/mosra/magnum-plugins-sub007/ir"
	"github.com/mosra/magnum-plugins-sub007/token"
	"go.lsp.dev/protocol"
)

const diagSource = "ddl"

func (s *Server) publishDiagnostics(ctx context.Context, doc *document) error {
	if s.client == nil {
		return nil
	}
	return s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         doc.uri,
		Version:     uint32(doc.version),
		Diagnostics: doc.diagnostics(),
	})
}

// diagnostics reports the parse error, or else the unresolved references
// and schema violations, of doc.
func (doc *document) diagnostics() []protocol.Diagnostic {
	res := []protocol.Diagnostic{}
	if doc.parseErr != nil {
		off := len(doc.content)
		var te *token.Error
		if errors.As(doc.parseErr, &te) {
			off = te.Pos.I
		}
		msg := doc.parseErr.Error()
		if te != nil {
			msg = te.Message()
		}
		return append(res, protocol.Diagnostic{
			Range:    doc.span(off, 1),
			Severity: protocol.DiagnosticSeverityError,
			Source:   diagSource,
			Message:  msg,
		})
	}
	unresolved := doc.doc.Unresolved()
	if len(unresolved) != 0 {
		for st := range doc.doc.All() {
			for _, path := range structureReferences(st) {
				if !slices.Contains(unresolved, path) {
					continue
				}
				res = append(res, protocol.Diagnostic{
					Range:    doc.identifierRange(st),
					Severity: protocol.DiagnosticSeverityWarning,
					Source:   diagSource,
					Message:  "reference " + path + " was not found",
				})
			}
		}
	}
	for _, e := range doc.invalid {
		r := doc.span(0, 0)
		if e.Structure >= 0 && e.Structure < doc.doc.Len() {
			r = doc.identifierRange(doc.doc.Structure(e.Structure))
		}
		res = append(res, protocol.Diagnostic{
			Range:    r,
			Severity: protocol.DiagnosticSeverityError,
			Source:   diagSource,
			Message:  e.Error(),
		})
	}
	return res
}

// structureReferences lists the non-null reference paths held by st, in its
// data for a ref structure and in its properties otherwise.
func structureReferences(st ir.Structure) []string {
	var res []string
	if !st.IsCustom() {
		if st.Type() != ir.ReferenceType {
			return nil
		}
		for _, p := range st.ReferencePaths() {
			if p != "null" {
				res = append(res, p)
			}
		}
		return res
	}
	for p := range st.Properties() {
		if p.Kind() == ir.ReferenceKind && p.ReferencePath() != "null" {
			res = append(res, p.ReferencePath())
		}
	}
	return res
}

// identifierRange covers the identifier or type keyword that opens st.
func (doc *document) identifierRange(st ir.Structure) protocol.Range {
	off := st.Offset()
	end := off
	for end < len(doc.content) && isIdentByte(doc.content[end]) {
		end++
	}
	return doc.span(off, end-off)
}

func isIdentByte(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}
