package encode

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/mosra/magnum-plugins-sub007/format"
	"github.com/mosra/magnum-plugins-sub007/ir"
)

// Node is a structure in the generic tree used for JSON and YAML output.
type Node struct {
	// Structure is the identifier of a custom structure or the type keyword
	// of a primitive one.
	Structure    string         `json:"structure" yaml:"structure"`
	Name         string         `json:"name,omitempty" yaml:"name,omitempty"`
	SubArraySize int            `json:"subArraySize,omitempty" yaml:"subArraySize,omitempty"`
	Properties   []NodeProperty `json:"properties,omitempty" yaml:"properties,omitempty"`
	Data         any            `json:"data,omitempty" yaml:"data,omitempty"`
	Children     []*Node        `json:"children,omitempty" yaml:"children,omitempty"`
}

// jsonNode is the JSON form of a Node with data and children already
// encoded. goccy/go-json faults on nested slices held in an interface inside
// a recursive tree, so each level is marshaled on its own.
type jsonNode struct {
	Structure    string            `json:"structure"`
	Name         string            `json:"name,omitempty"`
	SubArraySize int               `json:"subArraySize,omitempty"`
	Properties   []NodeProperty    `json:"properties,omitempty"`
	Data         json.RawMessage   `json:"data,omitempty"`
	Children     []json.RawMessage `json:"children,omitempty"`
}

func (n Node) MarshalJSON() ([]byte, error) {
	jn := jsonNode{
		Structure:    n.Structure,
		Name:         n.Name,
		SubArraySize: n.SubArraySize,
		Properties:   n.Properties,
	}
	if n.Data != nil {
		d, err := json.Marshal(n.Data)
		if err != nil {
			return nil, err
		}
		jn.Data = d
	}
	for _, c := range n.Children {
		d, err := c.MarshalJSON()
		if err != nil {
			return nil, err
		}
		jn.Children = append(jn.Children, d)
	}
	return json.Marshal(jn)
}

type NodeProperty struct {
	Name  string `json:"name" yaml:"name"`
	Kind  string `json:"kind" yaml:"kind"`
	Value any    `json:"value" yaml:"value"`
}

// Tree converts the top level structures of doc.
func Tree(doc *ir.Document) []*Node {
	var res []*Node
	for s := range doc.Children() {
		res = append(res, TreeOf(s))
	}
	return res
}

// TreeOf converts s and its subtree.
func TreeOf(s ir.Structure) *Node {
	n := &Node{}
	if s.HasName() {
		n.Name = s.Name()
	}
	if !s.IsCustom() {
		n.Structure = s.Type().String()
		n.SubArraySize = s.SubArraySize()
		n.Data = data(s)
		return n
	}
	n.Structure = s.IdentifierName()
	for p := range s.Properties() {
		n.Properties = append(n.Properties, NodeProperty{
			Name:  p.IdentifierName(),
			Kind:  p.Kind().String(),
			Value: propertyData(p),
		})
	}
	for c := range s.Children() {
		n.Children = append(n.Children, TreeOf(c))
	}
	return n
}

func data(s ir.Structure) any {
	switch s.Type() {
	case ir.BoolType:
		return shape(s, ir.AsArray[bool](s))
	case ir.Uint8Type:
		// widened so []uint8 is not taken for binary data
		return shape(s, widen(ir.AsArray[uint8](s)))
	case ir.Int8Type:
		return shape(s, ir.AsArray[int8](s))
	case ir.Uint16Type:
		return shape(s, ir.AsArray[uint16](s))
	case ir.Int16Type:
		return shape(s, ir.AsArray[int16](s))
	case ir.Uint32Type:
		return shape(s, ir.AsArray[uint32](s))
	case ir.Int32Type:
		return shape(s, ir.AsArray[int32](s))
	case ir.Uint64Type:
		return shape(s, ir.AsArray[uint64](s))
	case ir.Int64Type:
		return shape(s, ir.AsArray[int64](s))
	case ir.FloatType:
		return shape(s, ir.AsArray[float32](s))
	case ir.DoubleType:
		return shape(s, ir.AsArray[float64](s))
	case ir.StringType:
		return shape(s, ir.AsArray[string](s))
	default:
		// type, base64 and ref values are written as their literals
		return shape(s, Literals(s))
	}
}

func widen(vs []uint8) []uint16 {
	res := make([]uint16, len(vs))
	for i, v := range vs {
		res[i] = uint16(v)
	}
	return res
}

func shape[T any](s ir.Structure, vs []T) any {
	n := s.SubArraySize()
	if n == 0 {
		return vs
	}
	res := make([][]T, 0, len(vs)/n)
	for i := 0; i+n <= len(vs); i += n {
		res = append(res, vs[i:i+n])
	}
	return res
}

func propertyData(p ir.Property) any {
	switch p.Kind() {
	case ir.BoolKind:
		return p.Bool()
	case ir.IntegralKind, ir.BinaryKind, ir.CharacterKind:
		return p.Int()
	case ir.FloatKind:
		return p.Float()
	case ir.StringKind:
		return p.Text()
	case ir.ReferenceKind:
		return p.ReferencePath()
	default:
		return p.TypeValue().String()
	}
}

func encodeTree(nodes []*Node, w io.Writer, es *EncState) error {
	if nodes == nil {
		nodes = []*Node{}
	}
	var d []byte
	var err error
	switch es.format {
	case format.JSONFormat:
		if es.wire {
			d, err = json.Marshal(nodes)
		} else {
			d, err = json.MarshalIndent(nodes, "", "  ")
		}
		d = append(d, '\n')
	default:
		d, err = yaml.MarshalWithOptions(nodes, yaml.Indent(es.indent), yaml.IndentSequence(true))
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEncoding, es.format, err)
	}
	_, err = w.Write(d)
	return err
}

// Values returns the data of a primitive structure flattened, integers
// widened to int64 or uint64 and floats to float64. Type, base64 and ref
// data are returned as their literals.
func Values(s ir.Structure) []any {
	switch s.Type() {
	case ir.BoolType:
		return anys(ir.AsArray[bool](s), func(v bool) any { return v })
	case ir.Uint8Type:
		return anys(ir.AsArray[uint8](s), func(v uint8) any { return uint64(v) })
	case ir.Int8Type:
		return anys(ir.AsArray[int8](s), func(v int8) any { return int64(v) })
	case ir.Uint16Type:
		return anys(ir.AsArray[uint16](s), func(v uint16) any { return uint64(v) })
	case ir.Int16Type:
		return anys(ir.AsArray[int16](s), func(v int16) any { return int64(v) })
	case ir.Uint32Type:
		return anys(ir.AsArray[uint32](s), func(v uint32) any { return uint64(v) })
	case ir.Int32Type:
		return anys(ir.AsArray[int32](s), func(v int32) any { return int64(v) })
	case ir.Uint64Type:
		return anys(ir.AsArray[uint64](s), func(v uint64) any { return v })
	case ir.Int64Type:
		return anys(ir.AsArray[int64](s), func(v int64) any { return v })
	case ir.FloatType:
		return anys(ir.AsArray[float32](s), func(v float32) any { return float64(v) })
	case ir.DoubleType:
		return anys(ir.AsArray[float64](s), func(v float64) any { return v })
	case ir.StringType:
		return anys(ir.AsArray[string](s), func(v string) any { return v })
	default:
		return anys(Literals(s), func(v string) any { return v })
	}
}

func anys[T any](vs []T, f func(T) any) []any {
	res := make([]any, len(vs))
	for i, v := range vs {
		res[i] = f(v)
	}
	return res
}
