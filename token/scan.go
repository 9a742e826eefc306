// Package token scans the lexical elements of OpenDDL.
//
// The scanners are stateless. Each takes the whole source and a cursor and
// returns the decoded value together with the cursor just past it, or an
// *Error positioned at the offending byte. None of them skip leading
// whitespace; call Skip first.
package token

import (
	"bytes"
	"encoding/base64"
	"unicode/utf8"

	"github.com/mosra/magnum-plugins-sub007/ir"
)

// Skip advances past whitespace and comments.
func Skip(d []byte, i int) (int, error) {
	n := len(d)
	for i < n {
		c := d[i]
		switch {
		case c <= ' ':
			i++
		case c == '/' && i+1 < n && d[i+1] == '/':
			j := bytes.IndexByte(d[i:], '\n')
			if j < 0 {
				return n, nil
			}
			i += j + 1
		case c == '/' && i+1 < n && d[i+1] == '*':
			j := bytes.Index(d[i+2:], []byte("*/"))
			if j < 0 {
				return i, NewError(ErrUnterminatedComment, d, i)
			}
			i += j + 4
		default:
			return i, nil
		}
	}
	return i, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || '0' <= c && c <= '9'
}

func identEnd(d []byte, i int) int {
	for i < len(d) && isIdentChar(d[i]) {
		i++
	}
	return i
}

// word reports whether d[i:] starts with w not followed by an identifier
// character.
func word(d []byte, i int, w string) bool {
	if !bytes.HasPrefix(d[i:], []byte(w)) {
		return false
	}
	j := i + len(w)
	return j == len(d) || !isIdentChar(d[j])
}

// Identifier scans [A-Za-z_][A-Za-z0-9_]*.
func Identifier(d []byte, i int) (string, int, error) {
	if i >= len(d) {
		return "", i, NewError(ErrExpectedIdentifier, d, i)
	}
	if !isIdentStart(d[i]) {
		return "", i, NewError(ErrInvalidIdentifier, d, i)
	}
	j := identEnd(d, i+1)
	return string(d[i:j]), j, nil
}

// Name scans a $ or % sigil followed by an identifier. The result keeps the
// sigil.
func Name(d []byte, i int) (string, int, error) {
	if i >= len(d) {
		return "", i, NewError(ErrExpectedName, d, i)
	}
	if d[i] != '$' && d[i] != '%' {
		return "", i, NewError(ErrInvalidName, d, i)
	}
	if i+1 >= len(d) {
		return "", i, NewError(ErrExpectedName, d, i)
	}
	if !isIdentStart(d[i+1]) {
		return "", i, NewError(ErrInvalidName, d, i)
	}
	j := identEnd(d, i+2)
	return string(d[i:j]), j, nil
}

// Bool scans true or false.
func Bool(d []byte, i int) (bool, int, error) {
	switch {
	case i >= len(d):
		return false, i, literalError(ErrExpectedLiteral, ir.BoolType.String(), d, i)
	case word(d, i, "true"):
		return true, i + 4, nil
	case word(d, i, "false"):
		return false, i + 5, nil
	}
	return false, i, literalError(ErrInvalidLiteral, ir.BoolType.String(), d, i)
}

// TypeLiteral scans a primitive type keyword or one of its short aliases.
func TypeLiteral(d []byte, i int) (ir.Type, int, error) {
	if i >= len(d) {
		return 0, i, literalError(ErrExpectedLiteral, ir.TypeType.String(), d, i)
	}
	j := identEnd(d, i)
	t, ok := ir.LookupType(string(d[i:j]))
	if !ok {
		return 0, i, literalError(ErrInvalidLiteral, ir.TypeType.String(), d, i)
	}
	return t, j, nil
}

// Reference scans null or a name chain such as $a%b or %a/%b. The returned
// path is canonical: no separators, "" for null.
func Reference(d []byte, i int) (string, int, error) {
	lit := ir.ReferenceType.String()
	if i >= len(d) {
		return "", i, literalError(ErrExpectedLiteral, lit, d, i)
	}
	if word(d, i, "null") {
		return "", i + 4, nil
	}
	if d[i] != '$' && d[i] != '%' {
		return "", i, literalError(ErrInvalidLiteral, lit, d, i)
	}
	var path []byte
	for {
		n, j, err := Name(d, i)
		if err != nil {
			return "", i, literalError(ErrInvalidLiteral, lit, d, i)
		}
		path = append(path, n...)
		i = j
		switch {
		case i+1 < len(d) && d[i] == '/' && d[i+1] == '%':
			i++
		case i < len(d) && d[i] == '/':
			return "", i, literalError(ErrInvalidLiteral, lit, d, i)
		case i < len(d) && d[i] == '%':
		default:
			return string(path), i, nil
		}
	}
}

func hexVal(c byte) (int, bool) {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0'), true
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10, true
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}

func hexDigits(d []byte, i, n int) (int, bool) {
	if i+n > len(d) {
		return 0, false
	}
	v := 0
	for k := range n {
		x, ok := hexVal(d[i+k])
		if !ok {
			return 0, false
		}
		v = v<<4 | x
	}
	return v, true
}

// escape decodes the escape sequence at d[i] == '\\'. When raw is set, r is
// a single byte value rather than a code point.
func escape(d []byte, i int) (r rune, raw bool, end int, err error) {
	if i+1 >= len(d) {
		return 0, false, i, NewError(ErrInvalidEscape, d, i)
	}
	switch c := d[i+1]; c {
	case '"', '\'', '?', '\\':
		return rune(c), true, i + 2, nil
	case 'a':
		return '\a', true, i + 2, nil
	case 'b':
		return '\b', true, i + 2, nil
	case 'f':
		return '\f', true, i + 2, nil
	case 'n':
		return '\n', true, i + 2, nil
	case 'r':
		return '\r', true, i + 2, nil
	case 't':
		return '\t', true, i + 2, nil
	case 'v':
		return '\v', true, i + 2, nil
	case 'x':
		if v, ok := hexDigits(d, i+2, 2); ok {
			return rune(v), true, i + 4, nil
		}
	case 'u':
		if v, ok := hexDigits(d, i+2, 4); ok && utf8.ValidRune(rune(v)) {
			return rune(v), false, i + 6, nil
		}
	case 'U':
		if v, ok := hexDigits(d, i+2, 6); ok && utf8.ValidRune(rune(v)) {
			return rune(v), false, i + 8, nil
		}
	}
	return 0, false, i, NewError(ErrInvalidEscape, d, i)
}

// String scans one or more double quoted literals separated only by
// whitespace and comments, returning their concatenation.
func String(d []byte, i int) (string, int, error) {
	lit := ir.StringType.String()
	if i >= len(d) || d[i] != '"' {
		return "", i, literalError(ErrExpectedLiteral, lit, d, i)
	}
	var buf []byte
	for {
		i++
		for {
			if i >= len(d) {
				return "", i, NewError(ErrUnterminatedString, d, i)
			}
			c := d[i]
			if c == '"' {
				i++
				break
			}
			switch {
			case c == '\\':
				r, raw, j, err := escape(d, i)
				if err != nil {
					return "", i, err
				}
				if raw {
					buf = append(buf, byte(r))
				} else {
					buf = utf8.AppendRune(buf, r)
				}
				i = j
			case c < ' ':
				return "", i, literalError(ErrInvalidLiteral, lit, d, i)
			case c < utf8.RuneSelf:
				buf = append(buf, c)
				i++
			default:
				r, n := utf8.DecodeRune(d[i:])
				if r == utf8.RuneError && n <= 1 {
					return "", i, literalError(ErrInvalidLiteral, lit, d, i)
				}
				buf = append(buf, d[i:i+n]...)
				i += n
			}
		}
		j, err := Skip(d, i)
		if err != nil {
			return "", i, err
		}
		if j >= len(d) || d[j] != '"' {
			return string(buf), i, nil
		}
		i = j
	}
}

// Char scans a single quoted character literal, returning its bytes as a
// big endian number.
func Char(d []byte, i int) (uint64, int, error) {
	if i >= len(d) || d[i] != '\'' {
		return 0, i, NewError(ErrInvalidCharacter, d, i)
	}
	start := i
	i++
	var v uint64
	n := 0
	for {
		if i >= len(d) {
			return 0, start, NewError(ErrInvalidCharacter, d, start)
		}
		c := d[i]
		switch {
		case c == '\'':
			if n == 0 {
				return 0, start, NewError(ErrInvalidCharacter, d, start)
			}
			return v, i + 1, nil
		case c == '\\':
			r, raw, j, err := escape(d, i)
			if err != nil {
				return 0, i, err
			}
			if !raw {
				return 0, i, NewError(ErrInvalidCharacter, d, i)
			}
			c = byte(r)
			i = j
		case c < ' ' || c > '~':
			return 0, i, NewError(ErrInvalidCharacter, d, i)
		default:
			i++
		}
		if n == 8 {
			return 0, start, NewError(ErrOutOfRange, d, start)
		}
		v = v<<8 | uint64(c)
		n++
	}
}

func isBase64Char(c byte) bool {
	return isIdentChar(c) && c != '_' || c == '+' || c == '/' || c == '='
}

// Base64 scans base64 encoded data, which may be interrupted by whitespace.
func Base64(d []byte, i int) ([]byte, int, error) {
	lit := ir.Base64Type.String()
	var enc []byte
	j := i
	for j < len(d) && (isBase64Char(d[j]) || d[j] <= ' ') {
		if d[j] > ' ' {
			enc = append(enc, d[j])
		}
		j++
	}
	if len(enc) == 0 {
		if i >= len(d) {
			return nil, i, literalError(ErrExpectedLiteral, lit, d, i)
		}
		return nil, i, literalError(ErrInvalidLiteral, lit, d, i)
	}
	codec := base64.StdEncoding
	if len(enc)%4 != 0 {
		codec = base64.RawStdEncoding
	}
	res, err := codec.DecodeString(string(enc))
	if err != nil {
		return nil, i, literalError(ErrInvalidLiteral, lit, d, i)
	}
	for j > i && d[j-1] <= ' ' {
		j--
	}
	return res, j, nil
}
