package schema

import (
	"errors"
	"strings"

	"github.com/mosra/magnum-plugins-sub007/ir"
)

var (
	ErrPrimitiveInRoot     = errors.New("primitive structure in root")
	ErrUnexpectedStructure = errors.New("unexpected structure")
	ErrTooMany             = errors.New("too many structures")
	ErrTooFew              = errors.New("too few structures")
	ErrMissingSchema       = errors.New("missing schema")
	ErrUnexpectedProperty  = errors.New("unexpected property")
	ErrPropertyType        = errors.New("unexpected property type")
	ErrMissingProperty     = errors.New("missing property")
	ErrPrimitiveCount      = errors.New("wrong primitive sub-structure count")
	ErrPrimitiveType       = errors.New("unexpected primitive sub-structure type")
	ErrArraySize           = errors.New("wrong array size")
)

// Count bounds how many times a structure may appear. Max 0 is unbounded.
type Count struct {
	Min, Max int
}

// Allowed permits structures with identifier ID within Count.
type Allowed struct {
	ID    int
	Count Count
}

// Property describes one property a structure accepts.
type Property struct {
	ID       int
	Type     ir.Type
	Required bool
}

// Structure is the rule set for custom structures with identifier ID.
type Structure struct {
	ID         int
	Properties []Property

	// Primitives lists the allowed primitive sub-structure types. Empty
	// means no primitive sub-structures are allowed.
	Primitives []ir.Type
	// PrimitiveCount is the exact number of primitive sub-structures, 0 for
	// any number.
	PrimitiveCount int
	// ArraySize is the exact number of values in each primitive
	// sub-structure, 0 for any.
	ArraySize int

	Structures []Allowed
}

type Schema struct {
	Roots      []Allowed
	Structures []Structure
}

// Rule returns the rule for structure identifier id.
func (s *Schema) Rule(id int) (*Structure, bool) {
	for i := range s.Structures {
		if s.Structures[i].ID == id {
			return &s.Structures[i], true
		}
	}
	return nil, false
}

func (s *Structure) property(id int) (*Property, bool) {
	for i := range s.Properties {
		if s.Properties[i].ID == id {
			return &s.Properties[i], true
		}
	}
	return nil, false
}

// Error is a single violation found by Validate.
type Error struct {
	Err error
	// Structure is the index of the offending structure, -1 for the
	// document level.
	Structure int

	msg string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.Err }

// Errors collects every violation of one Validate call.
type Errors []*Error

func (es Errors) Error() string {
	var b strings.Builder
	for i, e := range es {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.msg)
	}
	return b.String()
}

func (es Errors) Unwrap() []error {
	res := make([]error, len(es))
	for i, e := range es {
		res[i] = e
	}
	return res
}
