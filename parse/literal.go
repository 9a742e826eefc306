package parse

import (
	"github.com/mosra/magnum-plugins-sub007/ir"
	"github.com/mosra/magnum-plugins-sub007/token"
)

func appendInt[T token.Integer](p *parser, i int) (int, error) {
	v, _, j, err := token.IntLiteral[T](p.d, i)
	if err != nil {
		return i, err
	}
	ir.Append(p.b, v)
	return j, nil
}

func appendFloat[T token.Float](p *parser, i int) (int, error) {
	v, j, err := token.FloatLiteral[T](p.d, i)
	if err != nil {
		return i, err
	}
	ir.Append(p.b, v)
	return j, nil
}

// literal parses one data literal of type t held by structure origin.
func (p *parser) literal(i int, t ir.Type, origin int) (int, error) {
	switch t {
	case ir.BoolType:
		v, j, err := token.Bool(p.d, i)
		if err != nil {
			return i, err
		}
		ir.Append(p.b, v)
		return j, nil
	case ir.Uint8Type:
		return appendInt[uint8](p, i)
	case ir.Int8Type:
		return appendInt[int8](p, i)
	case ir.Uint16Type:
		return appendInt[uint16](p, i)
	case ir.Int16Type:
		return appendInt[int16](p, i)
	case ir.Uint32Type:
		return appendInt[uint32](p, i)
	case ir.Int32Type:
		return appendInt[int32](p, i)
	case ir.Uint64Type:
		return appendInt[uint64](p, i)
	case ir.Int64Type:
		return appendInt[int64](p, i)
	case ir.FloatType:
		return appendFloat[float32](p, i)
	case ir.DoubleType:
		return appendFloat[float64](p, i)
	case ir.StringType:
		v, j, err := token.String(p.d, i)
		if err != nil {
			return i, err
		}
		ir.Append(p.b, v)
		return j, nil
	case ir.ReferenceType:
		path, j, err := token.Reference(p.d, i)
		if err != nil {
			return i, err
		}
		p.b.AddReference(origin, path)
		return j, nil
	case ir.TypeType:
		v, j, err := token.TypeLiteral(p.d, i)
		if err != nil {
			return i, err
		}
		ir.Append(p.b, v)
		return j, nil
	case ir.Base64Type:
		v, j, err := token.Base64(p.d, i)
		if err != nil {
			return i, err
		}
		ir.Append(p.b, v)
		return j, nil
	}
	panic("parse: no literal parser for " + t.String())
}

// properties parses a property list after its ( and returns the offset
// past the closing ).
func (p *parser) properties(i, origin int) (int, error) {
	for n := 0; ; n++ {
		var err error
		if i, err = p.skip(i); err != nil {
			return i, err
		}
		if p.at(i, ')') {
			return i + 1, nil
		}
		if n > 0 {
			if i >= len(p.d) {
				return i, p.fail(token.ErrExpectedPropertyListEnd, i)
			}
			if !p.at(i, ',') {
				return i, p.fail(token.ErrExpectedSeparator, i)
			}
			if i, err = p.skip(i + 1); err != nil {
				return i, err
			}
		}
		ident, j, err := token.Identifier(p.d, i)
		if err != nil {
			return i, err
		}
		if i, err = p.skip(j); err != nil {
			return i, err
		}
		switch {
		case p.at(i, '='):
			if i, err = p.skip(i + 1); err != nil {
				return i, err
			}
			if i, err = p.propertyValue(i, ident, origin); err != nil {
				return i, err
			}
		case p.at(i, ',') || p.at(i, ')'):
			p.b.AddBoolProperty(ident, true)
		default:
			return i, p.fail(token.ErrExpectedAssignment, i)
		}
	}
}

func (p *parser) propertyValue(i int, ident string, origin int) (int, error) {
	d := p.d
	if i >= len(d) {
		return i, p.fail(token.ErrExpectedPropertyValue, i)
	}
	switch c := d[i]; {
	case c == '"':
		v, j, err := token.String(d, i)
		if err != nil {
			return i, err
		}
		p.b.AddStringProperty(ident, v)
		return j, nil
	case c == '$' || c == '%':
		path, j, err := token.Reference(d, i)
		if err != nil {
			return i, err
		}
		p.b.AddReferenceProperty(ident, origin, path)
		return j, nil
	case '0' <= c && c <= '9' || c == '.' || c == '\'' || c == '+' || c == '-':
		return p.numberProperty(i, ident)
	}
	j := i
	for j < len(d) && (d[j] == '_' || 'a' <= d[j] && d[j] <= 'z' || 'A' <= d[j] && d[j] <= 'Z' || '0' <= d[j] && d[j] <= '9') {
		j++
	}
	switch w := string(d[i:j]); w {
	case "null":
		p.b.AddReferenceProperty(ident, origin, "")
		return j, nil
	case "true", "false":
		p.b.AddBoolProperty(ident, w == "true")
		return j, nil
	case "":
	default:
		if t, ok := ir.LookupType(w); ok {
			p.b.AddTypeProperty(ident, t)
			return j, nil
		}
	}
	return i, p.fail(token.ErrInvalidPropertyValue, i)
}

// numberProperty classifies a numeric property literal by its shape: a
// character literal, a 0x/0o/0b binary literal, a float when the decimal
// digits are followed by . or an exponent, an integral literal otherwise.
func (p *parser) numberProperty(i int, ident string) (int, error) {
	d := p.d
	j := i
	neg := false
	if d[j] == '+' || d[j] == '-' {
		neg = d[j] == '-'
		j++
	}
	if j < len(d) && d[j] == '\'' {
		v, _, end, err := token.IntLiteral[int64](d, i)
		if err != nil {
			return i, err
		}
		p.b.AddIntProperty(ident, ir.CharacterKind, v)
		return end, nil
	}
	if j+1 < len(d) && d[j] == '0' && (d[j+1]|0x20 == 'x' || d[j+1]|0x20 == 'o' || d[j+1]|0x20 == 'b') {
		var v int64
		var end int
		var err error
		if neg {
			v, _, end, err = token.IntLiteral[int64](d, i)
		} else {
			var u uint64
			u, _, end, err = token.IntLiteral[uint64](d, i)
			v = int64(u)
		}
		if err != nil {
			return i, err
		}
		p.b.AddIntProperty(ident, ir.BinaryKind, v)
		return end, nil
	}
	for j < len(d) && ('0' <= d[j] && d[j] <= '9' || d[j] == '_') {
		j++
	}
	if j < len(d) && (d[j] == '.' || d[j] == 'e' || d[j] == 'E') {
		v, end, err := token.FloatLiteral[float64](d, i)
		if err != nil {
			return i, err
		}
		p.b.AddFloatProperty(ident, v)
		return end, nil
	}
	v, _, end, err := token.IntLiteral[int64](d, i)
	if err != nil {
		return i, err
	}
	p.b.AddIntProperty(ident, ir.IntegralKind, v)
	return end, nil
}
