package ir

import "fmt"

// Property is a view of one property of a custom structure.
type Property struct {
	doc *Document
	i   int
	gen uint64
}

func (p Property) rec() *property {
	p.doc.check(p.gen)
	return &p.doc.st.properties[p.i]
}

func (p Property) Valid() bool { return p.doc != nil }

func (p Property) Identifier() int { return p.rec().id }

// IdentifierName is the property name as written in the source.
func (p Property) IdentifierName() string { return p.doc.st.text[p.rec().ident] }

func (p Property) Kind() PropertyKind { return p.rec().kind }

// Type is the primitive type the value converts to without loss.
func (p Property) Type() Type {
	switch k := p.rec().kind; k {
	case BoolKind:
		return BoolType
	case IntegralKind, BinaryKind, CharacterKind:
		return Int64Type
	case FloatKind:
		return DoubleType
	case StringKind:
		return StringType
	case ReferenceKind:
		return ReferenceType
	case TypeKind:
		return TypeType
	default:
		panic(fmt.Sprintf("ir: Property.Type: bad kind %s", k))
	}
}

// IsTypeCompatibleWith reports whether the value may be read as t. Integer
// types accept integral, binary and character literals; float and double
// accept float literals; other types need an exact match.
func (p Property) IsTypeCompatibleWith(t Type) bool {
	k := p.rec().kind
	switch {
	case t.IsInteger():
		return k.IsInteger()
	case t.IsFloat():
		return k == FloatKind
	}
	switch t {
	case BoolType:
		return k == BoolKind
	case StringType:
		return k == StringKind
	case ReferenceType:
		return k == ReferenceKind
	case TypeType:
		return k == TypeKind
	}
	return false
}

func (p Property) want(t Type, what string) *property {
	r := p.rec()
	if !p.IsTypeCompatibleWith(t) {
		panic(fmt.Sprintf("ir: Property.%s: %s property is not compatible with %s", what, r.kind, t))
	}
	return r
}

func (p Property) Bool() bool { return p.doc.st.bools[p.want(BoolType, "Bool").pos] }

func (p Property) Int() int64 { return p.doc.st.propInts[p.want(Int64Type, "Int").pos] }

// Uint returns the integer value reinterpreted as unsigned.
func (p Property) Uint() uint64 { return uint64(p.doc.st.propInts[p.want(Uint64Type, "Uint").pos]) }

func (p Property) Float() float64 { return p.doc.st.propFloats[p.want(DoubleType, "Float").pos] }

func (p Property) Text() string { return p.doc.st.strings[p.want(StringType, "Text").pos] }

func (p Property) TypeValue() Type { return p.doc.st.types[p.want(TypeType, "TypeValue").pos] }

// AsReference returns the target structure, false for null or unresolved.
func (p Property) AsReference() (Structure, bool) {
	r := p.want(ReferenceType, "AsReference")
	t := p.doc.st.refs[r.pos].target
	if t == NullReference {
		return Structure{}, false
	}
	return Structure{doc: p.doc, i: t, gen: p.gen}, true
}

// ReferencePath is the path as written, "null" for a null reference.
func (p Property) ReferencePath() string {
	r := p.want(ReferenceType, "ReferencePath")
	return refText(p.doc.st.refs[r.pos].path)
}

// PropertyAs converts the value of p to T. It panics if the property kind is
// not compatible with TypeOf[T]().
func PropertyAs[T Value](p Property) T {
	var res any
	switch t := TypeOf[T](); {
	case t.IsInteger():
		v := p.Int()
		switch t {
		case Uint8Type:
			res = uint8(v)
		case Int8Type:
			res = int8(v)
		case Uint16Type:
			res = uint16(v)
		case Int16Type:
			res = int16(v)
		case Uint32Type:
			res = uint32(v)
		case Int32Type:
			res = int32(v)
		case Uint64Type:
			res = uint64(v)
		default:
			res = v
		}
	case t == FloatType:
		res = float32(p.Float())
	case t == DoubleType:
		res = p.Float()
	case t == BoolType:
		res = p.Bool()
	case t == StringType:
		res = p.Text()
	case t == TypeType:
		res = p.TypeValue()
	default:
		panic("ir: PropertyAs: properties cannot hold " + t.String())
	}
	return res.(T)
}
