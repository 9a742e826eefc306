package token

import (
	"bytes"
	"fmt"

	"github.com/mosra/magnum-plugins-sub007/ir"
)

type TokenType int

const (
	TComment TokenType = iota
	TIdentifier
	TType
	TProperty
	TName
	TString
	TNumber
	TBool
	TNull
	TPunct
	TOther
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TComment:    "TComment",
		TIdentifier: "TIdentifier",
		TType:       "TType",
		TProperty:   "TProperty",
		TName:       "TName",
		TString:     "TString",
		TNumber:     "TNumber",
		TBool:       "TBool",
		TNull:       "TNull",
		TPunct:      "TPunct",
		TOther:      "TOther",
	}[t]
}

type Token struct {
	Type  TokenType
	Pos   *Pos
	Bytes []byte
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos.String())
}

func isNumberChar(c byte) bool {
	return isIdentChar(c) || c == '.' || c == '+' || c == '-'
}

// Tokenize splits d into lexical tokens, comments included. It is purely
// lexical: literal values are not decoded or range checked, and bytes that
// belong to no token, such as base64 data, come out as TOther. Only
// unterminated strings and comments are errors.
func Tokenize(dst []Token, d []byte) ([]Token, error) {
	pd := NewPosDoc(d)
	n := len(d)
	emit := func(t TokenType, i, j int) {
		dst = append(dst, Token{Type: t, Pos: pd.Pos(i), Bytes: d[i:j]})
	}
	i := 0
	for i < n {
		c := d[i]
		switch {
		case c <= ' ':
			i++
		case c == '/' && i+1 < n && d[i+1] == '/':
			j := bytes.IndexByte(d[i:], '\n')
			if j < 0 {
				j = n - i
			}
			emit(TComment, i, i+j)
			i += j
		case c == '/' && i+1 < n && d[i+1] == '*':
			j := bytes.Index(d[i+2:], []byte("*/"))
			if j < 0 {
				return dst, &Error{Err: ErrUnterminatedComment, Pos: *pd.Pos(i)}
			}
			emit(TComment, i, i+j+4)
			i += j + 4
		case c == '"':
			j, err := quotedEnd(d, i)
			if err != nil {
				return dst, err
			}
			emit(TString, i, j)
			i = j
		case c == '\'':
			j := i + 1
			for j < n && d[j] != '\'' && d[j] != '\n' {
				if d[j] == '\\' {
					j++
				}
				j++
			}
			j = min(j+1, n)
			emit(TNumber, i, j)
			i = j
		case c == '$' || c == '%':
			j := i + 1
			for j < n && (isIdentChar(d[j]) || d[j] == '%' || d[j] == '$' || d[j] == '/') {
				j++
			}
			emit(TName, i, j)
			i = j
		case '0' <= c && c <= '9' || c == '.' || c == '+' || c == '-':
			j := i + 1
			for j < n && isNumberChar(d[j]) {
				j++
			}
			emit(TNumber, i, j)
			i = j
		case isIdentStart(c):
			j := identEnd(d, i)
			emit(classifyWord(d, i, j), i, j)
			i = j
		case c == '{' || c == '}' || c == '(' || c == ')' || c == '[' || c == ']' || c == ',' || c == '=':
			emit(TPunct, i, i+1)
			i++
		default:
			emit(TOther, i, i+1)
			i++
		}
	}
	return dst, nil
}

func classifyWord(d []byte, i, j int) TokenType {
	if k, err := Skip(d, j); err == nil && k < len(d) && d[k] == '=' {
		return TProperty
	}
	switch w := string(d[i:j]); w {
	case "true", "false":
		return TBool
	case "null":
		return TNull
	default:
		if _, ok := ir.LookupType(w); ok {
			return TType
		}
	}
	return TIdentifier
}

// quotedEnd is the offset just past the double quoted literal at d[i].
func quotedEnd(d []byte, i int) (int, error) {
	for j := i + 1; j < len(d); j++ {
		switch d[j] {
		case '\\':
			j++
		case '"':
			return j + 1, nil
		}
	}
	return i, NewError(ErrUnterminatedString, d, i)
}
