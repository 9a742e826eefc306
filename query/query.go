package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/mosra/magnum-plugins-sub007/debug"
	"github.com/mosra/magnum-plugins-sub007/encode"
	"github.com/mosra/magnum-plugins-sub007/ir"
)

var ErrQuery = errors.New("query")

type Query struct {
	src string
	prg *vm.Program
}

func sampleEnv() map[string]any {
	return map[string]any{
		"id":     0,
		"ident":  "",
		"name":   "",
		"path":   "",
		"type":   "",
		"custom": false,
		"global": false,
		"depth":  0,
		"count":  0,
		"props":  map[string]any{},
		"values": []any{},
	}
}

// Compile checks src against the structure environment.
func Compile(src string) (*Query, error) {
	prg, err := expr.Compile(src, expr.Env(sampleEnv()), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return &Query{src: src, prg: prg}, nil
}

func (q *Query) String() string { return q.src }

// Match evaluates q on s.
func (q *Query) Match(s ir.Structure) (bool, error) {
	env := Env(s)
	res, err := expr.Run(q.prg, env)
	if err != nil {
		if debug.Query() {
			debug.LogAny(env)
		}
		return false, fmt.Errorf("%w: %s at %s: %w", ErrQuery, q.src, Path(s), err)
	}
	b, _ := res.(bool)
	if debug.Query() {
		debug.Logf("query: %s %v\n", Path(s), b)
	}
	return b, nil
}

// Find returns the matching structures of doc in document order.
func (q *Query) Find(doc *ir.Document) ([]ir.Structure, error) {
	var res []ir.Structure
	for s := range doc.All() {
		ok, err := q.Match(s)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, s)
		}
	}
	return res, nil
}

// Env returns the expression environment of s.
func Env(s ir.Structure) map[string]any {
	env := sampleEnv()
	env["name"] = s.Name()
	env["path"] = Path(s)
	env["type"] = s.Type().String()
	env["global"] = s.IsGlobal()
	env["depth"] = s.Depth()
	if !s.IsCustom() {
		env["id"] = ir.UnknownIdentifier
		env["ident"] = s.Type().String()
		vs := encode.Values(s)
		env["values"] = vs
		env["count"] = len(vs)
		return env
	}
	env["id"] = s.Identifier()
	env["ident"] = s.IdentifierName()
	env["custom"] = true
	n := 0
	for range s.Children() {
		n++
	}
	env["count"] = n
	props := map[string]any{}
	for p := range s.Properties() {
		props[p.IdentifierName()] = propertyValue(p)
	}
	env["props"] = props
	return env
}

func propertyValue(p ir.Property) any {
	switch p.Kind() {
	case ir.BoolKind:
		return p.Bool()
	case ir.FloatKind:
		return p.Float()
	case ir.StringKind:
		return p.Text()
	case ir.ReferenceKind:
		return p.ReferencePath()
	case ir.TypeKind:
		return p.TypeValue().String()
	default:
		return p.Int()
	}
}

// Path names s by the identifiers and names of it and its ancestors, as in
// /Mesh$m/VertexArray%v/float.
func Path(s ir.Structure) string {
	var parts []string
	for ok := true; ok; s, ok = s.Parent() {
		part := s.Type().String()
		if s.IsCustom() {
			part = s.IdentifierName()
		}
		parts = append(parts, part+s.Name())
	}
	b := &strings.Builder{}
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(parts[i])
	}
	return b.String()
}
