package ir

import "fmt"

// Type is the type of a primitive structure, or CustomType.
type Type int

const (
	BoolType Type = iota
	Uint8Type
	Int8Type
	Uint16Type
	Int16Type
	Uint32Type
	Int32Type
	Uint64Type
	Int64Type
	FloatType
	DoubleType
	StringType
	ReferenceType
	TypeType
	Base64Type
	CustomType
)

var typeKeywords = [...]string{
	BoolType:      "bool",
	Uint8Type:     "unsigned_int8",
	Int8Type:      "int8",
	Uint16Type:    "unsigned_int16",
	Int16Type:     "int16",
	Uint32Type:    "unsigned_int32",
	Int32Type:     "int32",
	Uint64Type:    "unsigned_int64",
	Int64Type:     "int64",
	FloatType:     "float",
	DoubleType:    "double",
	StringType:    "string",
	ReferenceType: "ref",
	TypeType:      "type",
	Base64Type:    "base64",
}

// short and sized spellings accepted in addition to the keywords above
var typeAliases = map[string]Type{
	"b":       BoolType,
	"u8":      Uint8Type,
	"uint8":   Uint8Type,
	"i8":      Int8Type,
	"u16":     Uint16Type,
	"uint16":  Uint16Type,
	"i16":     Int16Type,
	"u32":     Uint32Type,
	"uint32":  Uint32Type,
	"i32":     Int32Type,
	"u64":     Uint64Type,
	"uint64":  Uint64Type,
	"i64":     Int64Type,
	"f":       FloatType,
	"f32":     FloatType,
	"float32": FloatType,
	"d":       DoubleType,
	"f64":     DoubleType,
	"float64": DoubleType,
	"s":       StringType,
	"r":       ReferenceType,
	"t":       TypeType,
	"z":       Base64Type,
}

var keywordTypes = func() map[string]Type {
	m := make(map[string]Type, len(typeKeywords)+len(typeAliases))
	for t, k := range typeKeywords {
		m[k] = Type(t)
	}
	for k, t := range typeAliases {
		m[k] = t
	}
	return m
}()

// Types returns all primitive types in declaration order.
func Types() []Type {
	res := make([]Type, 0, CustomType)
	for t := BoolType; t < CustomType; t++ {
		res = append(res, t)
	}
	return res
}

// LookupType maps a type keyword or one of its aliases to a primitive Type.
func LookupType(keyword string) (Type, bool) {
	t, ok := keywordTypes[keyword]
	return t, ok
}

func (t Type) String() string {
	if t >= BoolType && t < CustomType {
		return typeKeywords[t]
	}
	if t == CustomType {
		return "custom"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

func (t Type) IsPrimitive() bool { return t >= BoolType && t < CustomType }

func (t Type) IsInteger() bool { return t >= Uint8Type && t <= Int64Type }

func (t Type) IsFloat() bool { return t == FloatType || t == DoubleType }

// IsSigned reports whether t admits negative literals.
func (t Type) IsSigned() bool {
	switch t {
	case Int8Type, Int16Type, Int32Type, Int64Type, FloatType, DoubleType:
		return true
	}
	return false
}

// Bits is the width of an integer or floating point type, 0 otherwise.
func (t Type) Bits() int {
	switch t {
	case Uint8Type, Int8Type:
		return 8
	case Uint16Type, Int16Type:
		return 16
	case Uint32Type, Int32Type, FloatType:
		return 32
	case Uint64Type, Int64Type, DoubleType:
		return 64
	}
	return 0
}

func (t Type) MarshalText() ([]byte, error) {
	if !t.IsPrimitive() {
		return nil, fmt.Errorf("%w: %d is not a primitive type", ErrBadType, int(t))
	}
	return []byte(typeKeywords[t]), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	v, ok := LookupType(string(d))
	if !ok {
		return fmt.Errorf("%w: %q", ErrBadType, d)
	}
	*t = v
	return nil
}

// PropertyKind is the lexical kind of a property literal.
type PropertyKind int

const (
	BoolKind PropertyKind = iota
	IntegralKind
	FloatKind
	StringKind
	ReferenceKind
	TypeKind
	BinaryKind
	CharacterKind
)

func (k PropertyKind) String() string {
	switch k {
	case BoolKind:
		return "bool"
	case IntegralKind:
		return "integral"
	case FloatKind:
		return "float"
	case StringKind:
		return "string"
	case ReferenceKind:
		return "reference"
	case TypeKind:
		return "type"
	case BinaryKind:
		return "binary"
	case CharacterKind:
		return "character"
	}
	return fmt.Sprintf("PropertyKind(%d)", int(k))
}

// IsInteger reports whether values of kind k are held in the integer column.
func (k PropertyKind) IsInteger() bool {
	return k == IntegralKind || k == BinaryKind || k == CharacterKind
}
