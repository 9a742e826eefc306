package encode

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mosra/magnum-plugins-sub007/format"
	"github.com/mosra/magnum-plugins-sub007/ir"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	depth, indent int
	format        format.Format
	wire          bool

	Color func(ir.Type, ColorAttr, string) string

	buf bytes.Buffer
	col int
}

func newEncState(opts []EncodeOption) *EncState {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

// Encode writes every top level structure of doc to w.
func Encode(doc *ir.Document, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	switch es.format {
	case format.JSONFormat, format.YAMLFormat:
		return encodeTree(Tree(doc), w, es)
	}
	for s := range doc.Children() {
		es.structure(s)
	}
	return es.flush(w)
}

// EncodeStructure writes s and its subtree.
func EncodeStructure(s ir.Structure, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	switch es.format {
	case format.JSONFormat, format.YAMLFormat:
		return encodeTree([]*Node{TreeOf(s)}, w, es)
	}
	es.structure(s)
	return es.flush(w)
}

// String encodes doc into a string.
func String(doc *ir.Document, opts ...EncodeOption) (string, error) {
	buf := &strings.Builder{}
	if err := Encode(doc, buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (es *EncState) flush(w io.Writer) error {
	if es.wire && es.buf.Len() > 0 {
		es.buf.WriteByte('\n')
	}
	_, err := w.Write(es.buf.Bytes())
	return err
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

func (es *EncState) write(s string) {
	es.buf.WriteString(s)
	es.col += len(s)
}

// line starts a new structure line at the current depth.
func (es *EncState) line() {
	if es.wire {
		if es.col != 0 {
			es.write(" ")
		}
		return
	}
	if es.col != 0 {
		es.buf.WriteByte('\n')
		es.col = 0
	}
	es.write(strings.Repeat(" ", es.indent*es.depth))
}

func (es *EncState) structure(s ir.Structure) {
	es.line()
	if !s.IsCustom() {
		es.primitive(s)
		if !es.wire {
			es.buf.WriteByte('\n')
			es.col = 0
		}
		return
	}
	es.write(es.color(ir.CustomType, IdentifierColor, s.IdentifierName()))
	if s.HasName() {
		es.write(" " + es.color(ir.CustomType, NameColor, s.Name()))
	}
	if s.HasProperties() {
		es.write(" " + es.color(ir.CustomType, SepColor, "("))
		n := 0
		for p := range s.Properties() {
			if n > 0 {
				es.write(es.color(ir.CustomType, SepColor, ",") + " ")
			}
			n++
			es.write(es.color(ir.CustomType, PropertyColor, p.IdentifierName()) + " = " + es.propertyValue(p))
		}
		es.write(es.color(ir.CustomType, SepColor, ")"))
	}
	es.write(" " + es.color(ir.CustomType, SepColor, "{"))
	if !s.HasChildren() {
		es.write(es.color(ir.CustomType, SepColor, "}"))
		if !es.wire {
			es.buf.WriteByte('\n')
			es.col = 0
		}
		return
	}
	es.depth++
	for c := range s.Children() {
		es.structure(c)
	}
	es.depth--
	es.line()
	es.write(es.color(ir.CustomType, SepColor, "}"))
	if !es.wire {
		es.buf.WriteByte('\n')
		es.col = 0
	}
}

func (es *EncState) primitive(s ir.Structure) {
	t := s.Type()
	head := t.String()
	if n := s.SubArraySize(); n != 0 {
		head += "[" + strconv.Itoa(n) + "]"
	}
	es.write(es.color(t, TypeColor, head))
	if s.HasName() {
		es.write(" " + es.color(t, NameColor, s.Name()))
	}
	vals := Literals(s)
	sep := es.color(t, SepColor, ",") + " "
	es.write(" " + es.color(t, SepColor, "{"))
	n := s.SubArraySize()
	for i, v := range vals {
		if i > 0 {
			es.write(sep)
		}
		if n != 0 && i%n == 0 {
			es.write(es.color(t, SepColor, "{"))
		}
		es.write(es.color(t, ValueColor, v))
		if n != 0 && i%n == n-1 {
			es.write(es.color(t, SepColor, "}"))
		}
	}
	es.write(es.color(t, SepColor, "}"))
}

// Literals returns the data of a primitive structure as OpenDDL literals.
func Literals(s ir.Structure) []string {
	switch t := s.Type(); t {
	case ir.BoolType:
		return format1(ir.AsArray[bool](s), strconv.FormatBool)
	case ir.Uint8Type:
		return format1(ir.AsArray[uint8](s), func(v uint8) string { return strconv.FormatUint(uint64(v), 10) })
	case ir.Int8Type:
		return format1(ir.AsArray[int8](s), func(v int8) string { return strconv.FormatInt(int64(v), 10) })
	case ir.Uint16Type:
		return format1(ir.AsArray[uint16](s), func(v uint16) string { return strconv.FormatUint(uint64(v), 10) })
	case ir.Int16Type:
		return format1(ir.AsArray[int16](s), func(v int16) string { return strconv.FormatInt(int64(v), 10) })
	case ir.Uint32Type:
		return format1(ir.AsArray[uint32](s), func(v uint32) string { return strconv.FormatUint(uint64(v), 10) })
	case ir.Int32Type:
		return format1(ir.AsArray[int32](s), func(v int32) string { return strconv.FormatInt(int64(v), 10) })
	case ir.Uint64Type:
		return format1(ir.AsArray[uint64](s), func(v uint64) string { return strconv.FormatUint(v, 10) })
	case ir.Int64Type:
		return format1(ir.AsArray[int64](s), func(v int64) string { return strconv.FormatInt(v, 10) })
	case ir.FloatType:
		return format1(ir.AsArray[float32](s), Float32)
	case ir.DoubleType:
		return format1(ir.AsArray[float64](s), Float64)
	case ir.StringType:
		return format1(ir.AsArray[string](s), Quote)
	case ir.TypeType:
		return format1(ir.AsArray[ir.Type](s), ir.Type.String)
	case ir.Base64Type:
		return format1(ir.AsArray[[]byte](s), base64.StdEncoding.EncodeToString)
	case ir.ReferenceType:
		return s.ReferencePaths()
	default:
		panic(fmt.Sprintf("encode: no literals for %s", t))
	}
}

func format1[T any](vs []T, f func(T) string) []string {
	res := make([]string, len(vs))
	for i, v := range vs {
		res[i] = f(v)
	}
	return res
}

// Float32 formats v so that it parses back to the same float. Non-finite
// values are written as their bit pattern.
func Float32(v float32) string {
	f := float64(v)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "0x" + strconv.FormatUint(uint64(math.Float32bits(v)), 16)
	}
	return strconv.FormatFloat(f, 'g', -1, 32)
}

func Float64(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "0x" + strconv.FormatUint(math.Float64bits(v), 16)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Quote returns s as a double quoted OpenDDL string literal.
func Quote(s string) string {
	b := &strings.Builder{}
	b.WriteByte('"')
	for i := 0; i < len(s); {
		r, n := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == utf8.RuneError && n == 1, r < 0x20, r == 0x7f:
			fmt.Fprintf(b, `\x%02x`, s[i])
		default:
			b.WriteString(s[i : i+n])
		}
		i += n
	}
	b.WriteByte('"')
	return b.String()
}

func (es *EncState) propertyValue(p ir.Property) string {
	var v string
	t := p.Type()
	switch p.Kind() {
	case ir.BoolKind:
		v = strconv.FormatBool(p.Bool())
	case ir.IntegralKind:
		v = strconv.FormatInt(p.Int(), 10)
	case ir.BinaryKind:
		n := p.Int()
		if n < 0 {
			v = "-0x" + strconv.FormatUint(uint64(-n), 16)
		} else {
			v = "0x" + strconv.FormatUint(uint64(n), 16)
		}
	case ir.CharacterKind:
		v = charLiteral(p.Int())
	case ir.FloatKind:
		v = Float64(p.Float())
		if !strings.ContainsAny(v, ".e") && !strings.HasPrefix(v, "0x") {
			v += ".0"
		}
	case ir.StringKind:
		v = Quote(p.Text())
	case ir.ReferenceKind:
		v = p.ReferencePath()
	case ir.TypeKind:
		v = p.TypeValue().String()
	}
	return es.color(t, ValueColor, v)
}

func charLiteral(n int64) string {
	neg := n < 0
	u := uint64(n)
	if neg {
		u = uint64(-n)
	}
	var bs []byte
	for u != 0 {
		bs = append([]byte{byte(u)}, bs...)
		u >>= 8
	}
	if len(bs) == 0 {
		bs = []byte{0}
	}
	b := &strings.Builder{}
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('\'')
	for _, c := range bs {
		switch {
		case c == '\'' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c < 0x20 || c >= 0x7f:
			fmt.Fprintf(b, `\x%02x`, c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// MustString encodes doc and panics on error.
func MustString(doc *ir.Document, opts ...EncodeOption) string {
	s, err := String(doc, opts...)
	if err != nil {
		panic(err)
	}
	return s
}
