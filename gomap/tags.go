package gomap

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/mosra/magnum-plugins-sub007/ir"
)

type fieldKind int

const (
	propField fieldKind = iota
	nameField
	structField
	dataField
)

// FieldInfo holds field metadata extracted from a ddl struct tag.
type FieldInfo struct {
	// Name is the struct field name
	Name  string
	Index []int
	Type  reflect.Type

	kind fieldKind
	// key is the property name or structure identifier
	key      string
	dataType ir.Type
	anyType  bool
	Required bool
}

// ParseStructTag parses a struct tag value into key-value pairs. Parts are
// separated by commas or spaces, values may be quoted: `prop='a b',required`.
func ParseStructTag(tag string) (map[string]string, error) {
	result := make(map[string]string)
	var parts []string
	var current strings.Builder
	var quote byte
	flush := func() {
		if current.Len() != 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
	}
	for i := 0; i < len(tag); i++ {
		c := tag[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
				continue
			}
			current.WriteByte(c)
		case c == '\'' || c == '"':
			quote = c
		case c == ',' || c == ' ':
			flush()
		default:
			current.WriteByte(c)
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("%w: unterminated quote in %q", ErrBadTag, tag)
	}
	flush()
	for _, part := range parts {
		key, value, _ := strings.Cut(part, "=")
		if key == "" {
			return nil, fmt.Errorf("%w: empty key in %q", ErrBadTag, part)
		}
		result[key] = value
	}
	return result, nil
}

var fieldCache sync.Map // reflect.Type -> []*FieldInfo

// GetStructFields returns the ddl tagged fields of struct type typ.
func GetStructFields(typ reflect.Type) ([]*FieldInfo, error) {
	if v, ok := fieldCache.Load(typ); ok {
		return v.([]*FieldInfo), nil
	}
	var res []*FieldInfo
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tag, ok := field.Tag.Lookup("ddl")
		if !ok || tag == "-" {
			continue
		}
		if !field.IsExported() {
			return nil, fmt.Errorf("%w: unexported field %s.%s", ErrBadTag, typ.Name(), field.Name)
		}
		fi, err := fieldInfo(field, tag)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", typ.Name(), field.Name, err)
		}
		res = append(res, fi)
	}
	fieldCache.Store(typ, res)
	return res, nil
}

func fieldInfo(field reflect.StructField, tag string) (*FieldInfo, error) {
	m, err := ParseStructTag(tag)
	if err != nil {
		return nil, err
	}
	fi := &FieldInfo{Name: field.Name, Index: field.Index, Type: field.Type}
	_, fi.Required = m["required"]
	delete(m, "required")
	if len(m) != 1 {
		return nil, fmt.Errorf("%w: want one of prop, name, struct, data in %q", ErrBadTag, tag)
	}
	for k, v := range m {
		switch k {
		case "prop", "struct":
			if v == "" {
				return nil, fmt.Errorf("%w: %s needs a value", ErrBadTag, k)
			}
			fi.kind, fi.key = propField, v
			if k == "struct" {
				fi.kind = structField
			}
		case "name":
			if field.Type.Kind() != reflect.String {
				return nil, fmt.Errorf("%w: name field must be a string", ErrBadTag)
			}
			fi.kind = nameField
		case "data":
			fi.kind, fi.anyType = dataField, v == ""
			if v != "" {
				t, ok := ir.LookupType(v)
				if !ok {
					return nil, fmt.Errorf("%w: unknown data type %q", ErrBadTag, v)
				}
				fi.dataType = t
			}
		default:
			return nil, fmt.Errorf("%w: unknown key %q", ErrBadTag, k)
		}
	}
	return fi, nil
}
