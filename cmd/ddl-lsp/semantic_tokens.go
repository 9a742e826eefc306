package main

import (
	"bytes"
	"context"

	"github.com/mosra/magnum-plugins-sub007/token"
	"go.lsp.dev/protocol"
)

// Legend order gives the token type index sent on the wire.
var semanticLegend = protocol.SemanticTokensLegend{
	TokenTypes: []protocol.SemanticTokenTypes{
		protocol.SemanticTokenComment,
		protocol.SemanticTokenStruct,
		protocol.SemanticTokenType,
		protocol.SemanticTokenProperty,
		protocol.SemanticTokenVariable,
		protocol.SemanticTokenString,
		protocol.SemanticTokenNumber,
		protocol.SemanticTokenKeyword,
		protocol.SemanticTokenOperator,
	},
	TokenModifiers: []protocol.SemanticTokenModifiers{},
}

// semanticType maps a token type to its legend index, -1 for tokens that
// are not highlighted.
func semanticType(t token.TokenType) int {
	switch t {
	case token.TComment:
		return 0
	case token.TIdentifier:
		return 1
	case token.TType:
		return 2
	case token.TProperty:
		return 3
	case token.TName:
		return 4
	case token.TString:
		return 5
	case token.TNumber:
		return 6
	case token.TBool, token.TNull:
		return 7
	case token.TPunct:
		return 8
	}
	return -1
}

func (s *Server) SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc, ok := s.docs.get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return &protocol.SemanticTokens{Data: doc.semanticTokens(0, len(doc.content))}, nil
}

func (s *Server) SemanticTokensRange(ctx context.Context, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	doc, ok := s.docs.get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	from, to := doc.offset(params.Range.Start), doc.offset(params.Range.End)
	return &protocol.SemanticTokens{Data: doc.semanticTokens(from, to)}, nil
}

// semanticTokens delta encodes the tokens overlapping [from, to). Tokens
// spanning lines are split into one entry per line.
func (doc *document) semanticTokens(from, to int) []uint32 {
	toks, err := token.Tokenize(nil, doc.content)
	if err != nil {
		// unterminated string or comment: highlight nothing rather than
		// something misaligned
		return []uint32{}
	}
	res := []uint32{}
	var line, char uint32
	emit := func(off int, text []byte, typ int) {
		pos := doc.position(off)
		n := uint32(utf16Len(text))
		if n == 0 {
			return
		}
		dc := pos.Character
		if pos.Line == line {
			dc -= char
		}
		res = append(res, pos.Line-line, dc, n, uint32(typ), 0)
		line, char = pos.Line, pos.Character
	}
	for i := range toks {
		tk := &toks[i]
		typ := semanticType(tk.Type)
		start, end := tk.Pos.I, tk.Pos.I+len(tk.Bytes)
		if typ < 0 || end <= from || start >= to {
			continue
		}
		off, text := start, tk.Bytes
		for {
			j := bytes.IndexByte(text, '\n')
			if j < 0 {
				emit(off, text, typ)
				break
			}
			emit(off, bytes.TrimSuffix(text[:j], []byte{'\r'}), typ)
			off += j + 1
			text = text[j+1:]
		}
	}
	return res
}
