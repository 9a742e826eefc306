package schema

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goccy/go-yaml"
	"github.com/mosra/magnum-plugins-sub007/ir"
)

var ErrLoad = errors.New("schema file")

// File is a decoded schema file.
type File struct {
	Structures *ir.Identifiers
	Properties *ir.Identifiers
	Schema     *Schema
}

type fileAllowed struct {
	Name string `yaml:"name"`
	Min  int    `yaml:"min"`
	Max  int    `yaml:"max"`
}

type fileProperty struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Required bool   `yaml:"required"`
}

type fileRule struct {
	Properties     []fileProperty `yaml:"properties"`
	Primitives     []string       `yaml:"primitives"`
	PrimitiveCount int            `yaml:"primitiveCount"`
	ArraySize      int            `yaml:"arraySize"`
	Structures     []fileAllowed  `yaml:"structures"`
}

type fileSchema struct {
	Structures []string            `yaml:"structures"`
	Properties []string            `yaml:"properties"`
	Roots      []fileAllowed       `yaml:"roots"`
	Rules      map[string]fileRule `yaml:"rules"`
}

// Load decodes a YAML schema file. Unknown keys, unknown names and bad type
// keywords are errors wrapping ErrLoad.
func Load(data []byte) (*File, error) {
	var fs fileSchema
	if err := yaml.UnmarshalWithOptions(data, &fs, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	f := &File{
		Structures: ir.NewIdentifiers(fs.Structures...),
		Properties: ir.NewIdentifiers(fs.Properties...),
		Schema:     &Schema{},
	}
	roots, err := f.allowed(fs.Roots)
	if err != nil {
		return nil, err
	}
	f.Schema.Roots = roots

	for name, r := range fs.Rules {
		id := f.Structures.ID(name)
		if id == ir.UnknownIdentifier {
			return nil, fmt.Errorf("%w: rule for unknown structure %q", ErrLoad, name)
		}
		st := Structure{ID: id, PrimitiveCount: r.PrimitiveCount, ArraySize: r.ArraySize}
		if r.PrimitiveCount < 0 || r.ArraySize < 0 {
			return nil, fmt.Errorf("%w: negative count in rule %s", ErrLoad, name)
		}
		for _, p := range r.Properties {
			pid := f.Properties.ID(p.Name)
			if pid == ir.UnknownIdentifier {
				return nil, fmt.Errorf("%w: unknown property %q in rule %s", ErrLoad, p.Name, name)
			}
			t, ok := ir.LookupType(p.Type)
			if !ok {
				return nil, fmt.Errorf("%w: bad type %q for property %s", ErrLoad, p.Type, p.Name)
			}
			st.Properties = append(st.Properties, Property{ID: pid, Type: t, Required: p.Required})
		}
		for _, k := range r.Primitives {
			t, ok := ir.LookupType(k)
			if !ok {
				return nil, fmt.Errorf("%w: bad primitive type %q in rule %s", ErrLoad, k, name)
			}
			st.Primitives = append(st.Primitives, t)
		}
		if st.Structures, err = f.allowed(r.Structures); err != nil {
			return nil, err
		}
		f.Schema.Structures = append(f.Schema.Structures, st)
	}
	sort.Slice(f.Schema.Structures, func(i, j int) bool {
		return f.Schema.Structures[i].ID < f.Schema.Structures[j].ID
	})
	return f, nil
}

func (f *File) allowed(as []fileAllowed) ([]Allowed, error) {
	var res []Allowed
	for _, a := range as {
		id := f.Structures.ID(a.Name)
		if id == ir.UnknownIdentifier {
			return nil, fmt.Errorf("%w: unknown structure %q", ErrLoad, a.Name)
		}
		if a.Min < 0 || a.Max < 0 || a.Max != 0 && a.Max < a.Min {
			return nil, fmt.Errorf("%w: bad count for %s", ErrLoad, a.Name)
		}
		res = append(res, Allowed{ID: id, Count: Count{Min: a.Min, Max: a.Max}})
	}
	return res, nil
}
