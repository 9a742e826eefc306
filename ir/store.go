package ir

import "slices"

const (
	// NoParent is the parent index of top level structures.
	NoParent = -1
	// NullReference is the target of null and unresolved references.
	NullReference = -1
)

// Value is the set of Go types held in primitive data columns.
type Value interface {
	bool | uint8 | int8 | uint16 | int16 | uint32 | int32 | uint64 | int64 |
		float32 | float64 | string | Type | []byte
}

type structure struct {
	name   int // index into text, 0 for no name
	parent int
	next   int // 0 for the last sibling
	offset int // byte offset of the identifier in its source
	data   payload
}

// payload is either primitiveData or customData.
type payload interface{ isPayload() }

type primitiveData struct {
	typ          Type
	subArraySize int
	begin        int
	count        int
}

type customData struct {
	id         int
	ident      int // index into text of the identifier as written
	propBegin  int
	propCount  int
	firstChild int // 0 when there are no children
}

func (primitiveData) isPayload() {}
func (customData) isPayload()    {}

type property struct {
	id    int
	ident int // index into text
	kind  PropertyKind
	pos   int
}

type reference struct {
	path   string // canonical path, "" for null
	origin int    // structure holding the reference
	target int
}

type store struct {
	bools   []bool
	u8      []uint8
	i8      []int8
	u16     []uint16
	i16     []int16
	u32     []uint32
	i32     []int32
	u64     []uint64
	i64     []int64
	f32     []float32
	f64     []float64
	strings []string
	types   []Type
	blobs   [][]byte
	refs    []reference

	propInts   []int64
	propFloats []float64

	// text holds names and identifiers as written in structure headers.
	text []string

	properties []property
	structures []structure
}

func newStore() *store {
	// text[0] is the empty name
	return &store{text: []string{""}}
}

func (s *store) clone() *store {
	return &store{
		bools:      slices.Clone(s.bools),
		u8:         slices.Clone(s.u8),
		i8:         slices.Clone(s.i8),
		u16:        slices.Clone(s.u16),
		i16:        slices.Clone(s.i16),
		u32:        slices.Clone(s.u32),
		i32:        slices.Clone(s.i32),
		u64:        slices.Clone(s.u64),
		i64:        slices.Clone(s.i64),
		f32:        slices.Clone(s.f32),
		f64:        slices.Clone(s.f64),
		strings:    slices.Clone(s.strings),
		types:      slices.Clone(s.types),
		blobs:      slices.Clone(s.blobs),
		refs:       slices.Clone(s.refs),
		propInts:   slices.Clone(s.propInts),
		propFloats: slices.Clone(s.propFloats),
		text:       slices.Clone(s.text),
		properties: slices.Clone(s.properties),
		structures: slices.Clone(s.structures),
	}
}

// column returns the data column holding values of type T.
func column[T Value](s *store) *[]T {
	var c any
	var zero T
	switch any(zero).(type) {
	case bool:
		c = &s.bools
	case uint8:
		c = &s.u8
	case int8:
		c = &s.i8
	case uint16:
		c = &s.u16
	case int16:
		c = &s.i16
	case uint32:
		c = &s.u32
	case int32:
		c = &s.i32
	case uint64:
		c = &s.u64
	case int64:
		c = &s.i64
	case float32:
		c = &s.f32
	case float64:
		c = &s.f64
	case string:
		c = &s.strings
	case Type:
		c = &s.types
	case []byte:
		c = &s.blobs
	}
	return c.(*[]T)
}

// TypeOf returns the primitive Type whose data is held as T.
func TypeOf[T Value]() Type {
	var zero T
	switch any(zero).(type) {
	case bool:
		return BoolType
	case uint8:
		return Uint8Type
	case int8:
		return Int8Type
	case uint16:
		return Uint16Type
	case int16:
		return Int16Type
	case uint32:
		return Uint32Type
	case int32:
		return Int32Type
	case uint64:
		return Uint64Type
	case int64:
		return Int64Type
	case float32:
		return FloatType
	case float64:
		return DoubleType
	case string:
		return StringType
	case Type:
		return TypeType
	default:
		return Base64Type
	}
}

// columnLen is the current length of the column backing t.
func (s *store) columnLen(t Type) int {
	switch t {
	case BoolType:
		return len(s.bools)
	case Uint8Type:
		return len(s.u8)
	case Int8Type:
		return len(s.i8)
	case Uint16Type:
		return len(s.u16)
	case Int16Type:
		return len(s.i16)
	case Uint32Type:
		return len(s.u32)
	case Int32Type:
		return len(s.i32)
	case Uint64Type:
		return len(s.u64)
	case Int64Type:
		return len(s.i64)
	case FloatType:
		return len(s.f32)
	case DoubleType:
		return len(s.f64)
	case StringType:
		return len(s.strings)
	case ReferenceType:
		return len(s.refs)
	case TypeType:
		return len(s.types)
	case Base64Type:
		return len(s.blobs)
	}
	panic("ir: no column for " + t.String())
}
