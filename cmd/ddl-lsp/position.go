package main

import (
	"unicode/utf8"

	"go.lsp.dev/protocol"
)

// position converts a byte offset to an LSP position, whose character
// counts UTF-16 code units.
func (doc *document) position(off int) protocol.Position {
	off = min(max(off, 0), len(doc.content))
	line, col := doc.pd.LineCol(off)
	start := off - col
	return protocol.Position{
		Line:      uint32(line),
		Character: uint32(utf16Len(doc.content[start:off])),
	}
}

func (doc *document) span(off, n int) protocol.Range {
	return protocol.Range{Start: doc.position(off), End: doc.position(off + n)}
}

// offset converts an LSP position back to a byte offset, clamping to the
// end of the line or of the content.
func (doc *document) offset(pos protocol.Position) int {
	d := doc.content
	i := 0
	for line := uint32(0); line < pos.Line; line++ {
		for i < len(d) && d[i] != '\n' {
			i++
		}
		if i == len(d) {
			return i
		}
		i++
	}
	for units := uint32(0); i < len(d) && d[i] != '\n' && units < pos.Character; {
		r, n := utf8.DecodeRune(d[i:])
		units += uint32(runeUnits(r))
		i += n
	}
	return i
}

func runeUnits(r rune) int {
	if r >= 0x10000 && r <= utf8.MaxRune {
		return 2
	}
	return 1
}

func utf16Len(b []byte) int {
	n := 0
	for len(b) > 0 {
		r, k := utf8.DecodeRune(b)
		n += runeUnits(r)
		b = b[k:]
	}
	return n
}
