package gomap

import (
	"fmt"
	"iter"
	"math"
	"reflect"

	"github.com/mosra/magnum-plugins-sub007/encode"
	"github.com/mosra/magnum-plugins-sub007/ir"
)

var (
	structureType = reflect.TypeFor[ir.Structure]()
	typeType      = reflect.TypeFor[ir.Type]()
	bytesType     = reflect.TypeFor[[]byte]()
)

// FromStructure decodes the custom structure s into the struct v points to.
func FromStructure(s ir.Structure, v any, opts ...UnmapOption) error {
	val, err := target(v)
	if err != nil {
		return err
	}
	if !s.IsCustom() {
		return fail("", ErrType, "%s is not a custom structure", s.Type())
	}
	d := &decoder{cfg: newUnmapConfig(opts)}
	return d.structure(s, val, "")
}

// FromDocument decodes the top level structures of doc into the struct v
// points to. Only struct and data fields apply at this level.
func FromDocument(doc *ir.Document, v any, opts ...UnmapOption) error {
	val, err := target(v)
	if err != nil {
		return err
	}
	d := &decoder{cfg: newUnmapConfig(opts)}
	return d.fields(level{children: doc.Children()}, val, "")
}

func target(v any) (reflect.Value, error) {
	if v == nil {
		return reflect.Value{}, fail("", ErrBadValue, "destination value cannot be nil")
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer {
		return reflect.Value{}, fail("", ErrBadValue, "destination value must be a pointer")
	}
	if val.IsNil() {
		return reflect.Value{}, fail("", ErrBadValue, "destination pointer cannot be nil")
	}
	val = val.Elem()
	if val.Kind() != reflect.Struct {
		return reflect.Value{}, fail("", ErrBadValue, "destination must point to a struct, got %s", val.Type())
	}
	return val, nil
}

// level is what the fields of one Go struct are decoded from: a custom
// structure, or the document root when s is the zero Structure.
type level struct {
	s        ir.Structure
	children iter.Seq[ir.Structure]
}

type decoder struct {
	cfg *unmapConfig
}

func (d *decoder) structure(s ir.Structure, val reflect.Value, path string) error {
	return d.fields(level{s: s, children: s.Children()}, val, path)
}

func (d *decoder) fields(l level, val reflect.Value, path string) error {
	fis, err := GetStructFields(val.Type())
	if err != nil {
		return &UnmarshalError{FieldPath: path, Message: err.Error(), Err: err}
	}
	props := map[string]bool{}
	idents := map[string]bool{}
	for _, fi := range fis {
		fv := val.FieldByIndex(fi.Index)
		fpath := join(path, fi.Name)
		switch fi.kind {
		case nameField:
			if !l.s.Valid() {
				return fail(fpath, ErrBadTag, "name field at the document level")
			}
			if fi.Required && !l.s.HasName() {
				return fail(fpath, ErrMissing, "%s has no name", l.s.IdentifierName())
			}
			fv.SetString(l.s.Name())
		case propField:
			if !l.s.Valid() {
				return fail(fpath, ErrBadTag, "property field at the document level")
			}
			props[fi.key] = true
			p, ok := findProperty(l.s, fi.key)
			if !ok {
				if fi.Required {
					return fail(fpath, ErrMissing, "missing property %s", fi.key)
				}
				continue
			}
			if err := setProperty(p, fv, fpath); err != nil {
				return err
			}
		case structField:
			idents[fi.key] = true
			if err := d.children(l, fi, fv, fpath); err != nil {
				return err
			}
		case dataField:
			if err := d.data(l, fi, fv, fpath); err != nil {
				return err
			}
		}
	}
	if !d.cfg.strict {
		return nil
	}
	if l.s.Valid() {
		for p := range l.s.Properties() {
			if !props[p.IdentifierName()] {
				return fail(path, ErrUnknown, "unknown property %s", p.IdentifierName())
			}
		}
	}
	for c := range l.children {
		if c.IsCustom() && !idents[c.IdentifierName()] {
			return fail(path, ErrUnknown, "unexpected structure %s", c.IdentifierName())
		}
	}
	return nil
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func findProperty(s ir.Structure, name string) (ir.Property, bool) {
	for p := range s.Properties() {
		if p.IdentifierName() == name {
			return p, true
		}
	}
	return ir.Property{}, false
}

func (d *decoder) children(l level, fi *FieldInfo, fv reflect.Value, path string) error {
	var matches []ir.Structure
	for c := range l.children {
		if c.IsCustom() && c.IdentifierName() == fi.key {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 && fi.Required {
		return fail(path, ErrMissing, "missing %s structure", fi.key)
	}
	if fv.Kind() == reflect.Slice {
		out := reflect.MakeSlice(fv.Type(), len(matches), len(matches))
		for i, c := range matches {
			if err := d.into(c, out.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		fv.Set(out)
		return nil
	}
	if len(matches) == 0 {
		return nil
	}
	return d.into(matches[0], fv, path)
}

func (d *decoder) into(c ir.Structure, v reflect.Value, path string) error {
	if v.Type() == structureType {
		v.Set(reflect.ValueOf(c))
		return nil
	}
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return fail(path, ErrBadValue, "cannot decode structure %s into %s", c.IdentifierName(), v.Type())
	}
	return d.structure(c, v, path)
}

func (d *decoder) data(l level, fi *FieldInfo, fv reflect.Value, path string) error {
	for c := range l.children {
		if !c.IsCustom() && (fi.anyType || c.Type() == fi.dataType) {
			return setData(c, fv, path)
		}
	}
	if fi.Required {
		what := "primitive"
		if !fi.anyType {
			what = fi.dataType.String()
		}
		return fail(path, ErrMissing, "missing %s data", what)
	}
	return nil
}

// values returns the data of a primitive structure flattened: bools,
// int64, uint64, float64, strings, ir.Type, []byte and reference paths.
func values(s ir.Structure) []any {
	switch s.Type() {
	case ir.TypeType:
		return anys(ir.AsArray[ir.Type](s))
	case ir.Base64Type:
		return anys(ir.AsArray[[]byte](s))
	case ir.ReferenceType:
		return anys(s.ReferencePaths())
	}
	return encode.Values(s)
}

func anys[T any](vs []T) []any {
	res := make([]any, len(vs))
	for i, v := range vs {
		res[i] = v
	}
	return res
}

// grouping reports whether an element of type t holds one sub-array.
func grouping(t reflect.Type, data ir.Type) bool {
	switch t.Kind() {
	case reflect.Array:
		return true
	case reflect.Slice:
		return t != bytesType || data != ir.Base64Type
	}
	return false
}

func setData(s ir.Structure, fv reflect.Value, path string) error {
	if fv.Type() == structureType {
		fv.Set(reflect.ValueOf(s))
		return nil
	}
	vals := values(s)
	sub := s.SubArraySize()
	t := fv.Type()
	switch {
	case t.Kind() == reflect.Slice && grouping(t, s.Type()):
		elem := t.Elem()
		if !grouping(elem, s.Type()) {
			out := reflect.MakeSlice(t, len(vals), len(vals))
			if err := setEach(out, vals, path); err != nil {
				return err
			}
			fv.Set(out)
			return nil
		}
		if sub == 0 {
			return fail(path, ErrType, "%s data has no sub-arrays", s.Type())
		}
		if elem.Kind() == reflect.Array && elem.Len() != sub {
			return fail(path, ErrType, "sub-array size %d does not fit %s", sub, elem)
		}
		n := len(vals) / sub
		out := reflect.MakeSlice(t, n, n)
		for g := range n {
			group := out.Index(g)
			if elem.Kind() == reflect.Slice {
				group.Set(reflect.MakeSlice(elem, sub, sub))
			}
			if err := setEach(group, vals[g*sub:(g+1)*sub], fmt.Sprintf("%s[%d]", path, g)); err != nil {
				return err
			}
		}
		fv.Set(out)
		return nil
	case t.Kind() == reflect.Array:
		if len(vals) != t.Len() {
			return fail(path, ErrType, "expected %d values, got %d", t.Len(), len(vals))
		}
		return setEach(fv, vals, path)
	}
	if len(vals) != 1 {
		return fail(path, ErrType, "expected one value, got %d", len(vals))
	}
	return setScalar(fv, vals[0], path)
}

func setEach(v reflect.Value, vals []any, path string) error {
	for i, x := range vals {
		if err := setScalar(v.Index(i), x, fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func setProperty(p ir.Property, fv reflect.Value, path string) error {
	var x any
	switch p.Kind() {
	case ir.BoolKind:
		x = p.Bool()
	case ir.FloatKind:
		x = p.Float()
	case ir.StringKind:
		x = p.Text()
	case ir.TypeKind:
		x = p.TypeValue()
	case ir.ReferenceKind:
		if fv.Type() == structureType {
			target, ok := p.AsReference()
			if !ok {
				return fail(path, ErrMissing, "reference %s does not resolve", p.ReferencePath())
			}
			fv.Set(reflect.ValueOf(target))
			return nil
		}
		x = p.ReferencePath()
	default:
		x = p.Int()
	}
	return setScalar(fv, x, path)
}

func setScalar(v reflect.Value, x any, path string) error {
	if v.Kind() == reflect.Interface && v.NumMethod() == 0 {
		v.Set(reflect.ValueOf(x))
		return nil
	}
	if v.Type() == typeType {
		t, ok := x.(ir.Type)
		if !ok {
			return fail(path, ErrType, "cannot decode %T into %s", x, v.Type())
		}
		v.Set(reflect.ValueOf(t))
		return nil
	}
	switch x := x.(type) {
	case bool:
		if v.Kind() == reflect.Bool {
			v.SetBool(x)
			return nil
		}
	case int64:
		return setInt(v, x, path)
	case uint64:
		return setUint(v, x, path)
	case float64:
		if v.CanFloat() {
			if v.OverflowFloat(x) {
				return fail(path, ErrRange, "value %v overflows %s", x, v.Type())
			}
			v.SetFloat(x)
			return nil
		}
	case string:
		if v.Kind() == reflect.String {
			v.SetString(x)
			return nil
		}
	case ir.Type:
		if v.Kind() == reflect.String {
			v.SetString(x.String())
			return nil
		}
	case []byte:
		if v.Type() == bytesType {
			v.SetBytes(x)
			return nil
		}
	}
	return fail(path, ErrType, "cannot decode %T into %s", x, v.Type())
}

func setInt(v reflect.Value, x int64, path string) error {
	switch {
	case v.CanInt():
		if v.OverflowInt(x) {
			return fail(path, ErrRange, "value %d overflows %s", x, v.Type())
		}
		v.SetInt(x)
	case v.CanUint():
		if x < 0 || v.OverflowUint(uint64(x)) {
			return fail(path, ErrRange, "value %d overflows %s", x, v.Type())
		}
		v.SetUint(uint64(x))
	case v.CanFloat():
		v.SetFloat(float64(x))
	default:
		return fail(path, ErrType, "cannot decode integer into %s", v.Type())
	}
	return nil
}

func setUint(v reflect.Value, x uint64, path string) error {
	switch {
	case v.CanUint():
		if v.OverflowUint(x) {
			return fail(path, ErrRange, "value %d overflows %s", x, v.Type())
		}
		v.SetUint(x)
	case v.CanInt():
		if x > math.MaxInt64 || v.OverflowInt(int64(x)) {
			return fail(path, ErrRange, "value %d overflows %s", x, v.Type())
		}
		v.SetInt(int64(x))
	case v.CanFloat():
		v.SetFloat(float64(x))
	default:
		return fail(path, ErrType, "cannot decode integer into %s", v.Type())
	}
	return nil
}
