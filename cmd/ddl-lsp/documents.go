package main

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/mosra/magnum-plugins-sub007/ir"
	"github.com/mosra/magnum-plugins-sub007/parse"
	"github.com/mosra/magnum-plugins-sub007/schema"
	"github.com/mosra/magnum-plugins-sub007/token"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/zap"
)

type documentStore struct {
	mu     sync.RWMutex
	docs   map[protocol.DocumentURI]*document
	schema *schema.File
}

// document is one open text buffer with the result of its last parse.
type document struct {
	uri     protocol.DocumentURI
	version int32
	content []byte
	pd      *token.PosDoc

	doc      *ir.Document
	parseErr error
	invalid  schema.Errors
}

func (ds *documentStore) tables() (*ir.Identifiers, *ir.Identifiers) {
	if ds.schema == nil {
		return ir.NewIdentifiers(), ir.NewIdentifiers()
	}
	return ds.schema.Structures, ds.schema.Properties
}

// load parses content and, when a schema is configured, validates it.
func (ds *documentStore) load(u protocol.DocumentURI, version int32, content []byte) *document {
	doc := &document{
		uri:     u,
		version: version,
		content: content,
		pd:      token.NewPosDoc(content),
	}
	structs, props := ds.tables()
	doc.doc, doc.parseErr = parse.Parse(content, structs, props, parse.ParseDiagnostics(io.Discard))
	if doc.parseErr == nil && ds.schema != nil && ds.schema.Schema != nil {
		err := ds.schema.Schema.Validate(doc.doc, schema.ValidateDiagnostics(nil))
		errors.As(err, &doc.invalid)
	}
	return doc
}

func (ds *documentStore) put(doc *document) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[doc.uri] = doc
}

func (ds *documentStore) get(u protocol.DocumentURI) (*document, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	doc, ok := ds.docs[u]
	return doc, ok
}

func (ds *documentStore) remove(u protocol.DocumentURI) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, u)
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	td := params.TextDocument
	s.log.Debug("open", zap.String("file", uri.URI(td.URI).Filename()))
	doc := s.docs.load(td.URI, td.Version, []byte(td.Text))
	s.docs.put(doc)
	return s.publishDiagnostics(ctx, doc)
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	td := params.TextDocument
	prev, ok := s.docs.get(td.URI)
	if !ok {
		return nil
	}
	content := prev.content
	// Full sync: each change carries the whole buffer.
	for _, change := range params.ContentChanges {
		content = []byte(change.Text)
	}
	doc := s.docs.load(td.URI, td.Version, content)
	s.docs.put(doc)
	return s.publishDiagnostics(ctx, doc)
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(params.TextDocument.URI)
	if s.client == nil {
		return nil
	}
	return s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
}
