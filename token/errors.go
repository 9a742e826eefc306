package token

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpected              = errors.New("unexpected character")
	ErrInvalidEscape           = errors.New("invalid escape sequence")
	ErrInvalidIdentifier       = errors.New("invalid identifier")
	ErrInvalidName             = errors.New("invalid name")
	ErrInvalidCharacter        = errors.New("invalid character literal")
	ErrInvalidLiteral          = errors.New("invalid literal")
	ErrInvalidPropertyValue    = errors.New("invalid property value")
	ErrInvalidSubArraySize     = errors.New("invalid subarray size")
	ErrOutOfRange              = errors.New("numeric literal out of range")
	ErrUnterminatedString      = errors.New("unterminated string literal")
	ErrUnterminatedComment     = errors.New("unterminated comment")
	ErrExpectedIdentifier      = errors.New("expected identifier")
	ErrExpectedName            = errors.New("expected name")
	ErrExpectedLiteral         = errors.New("expected literal")
	ErrExpectedSeparator       = errors.New("expected , character")
	ErrExpectedListStart       = errors.New("expected { character")
	ErrExpectedListEnd         = errors.New("expected } character")
	ErrExpectedArraySizeEnd    = errors.New("expected ] character")
	ErrExpectedPropertyValue   = errors.New("expected property value")
	ErrExpectedAssignment      = errors.New("expected = character")
	ErrExpectedPropertyListEnd = errors.New("expected ) character")
)

// Error is a scan or parse failure at a position in the source.
type Error struct {
	Err error
	// Literal names the literal kind for ErrInvalidLiteral and
	// ErrExpectedLiteral, e.g. "float".
	Literal string
	Pos     Pos
}

// NewError returns an Error for e at offset i of d.
func NewError(e error, d []byte, i int) *Error {
	return &Error{Err: e, Pos: *NewPosDoc(d).Pos(i)}
}

func literalError(e error, lit string, d []byte, i int) *Error {
	err := NewError(e, d, i)
	err.Literal = lit
	return err
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message is the failure without position, e.g. "expected float literal".
func (e *Error) Message() string {
	if e.Literal != "" {
		switch e.Err {
		case ErrInvalidLiteral:
			return fmt.Sprintf("invalid %s literal", e.Literal)
		case ErrExpectedLiteral:
			return fmt.Sprintf("expected %s literal", e.Literal)
		}
	}
	return e.Err.Error()
}

// Line is the 1-based line of the failure.
func (e *Error) Line() int {
	return e.Pos.Line() + 1
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Message(), e.Pos.String())
}
