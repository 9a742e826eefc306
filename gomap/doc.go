// Package gomap decodes OpenDDL structures into Go values.
//
// # Usage
//
//	type VertexArray struct {
//	    Attrib    string       `ddl:"prop=attrib required"`
//	    Positions [][3]float32 `ddl:"data=float"`
//	}
//	type Mesh struct {
//	    Name   string        `ddl:"name"`
//	    LOD    uint32        `ddl:"prop=lod"`
//	    Arrays []VertexArray `ddl:"struct=VertexArray"`
//	}
//	type Scene struct {
//	    Meshes []*Mesh `ddl:"struct=Mesh"`
//	}
//	var scene Scene
//	err := gomap.FromDocument(doc, &scene)
//
// Fields are matched only through their ddl tag, untagged fields are left
// alone. Tag keys:
//
//   - prop=NAME: the value of property NAME
//   - name: the structure name with its $ or % sigil
//   - struct=IDENT: sub-structures with identifier IDENT, into a struct, a
//     pointer to one or a slice of either
//   - data or data=TYPE: the data of the first primitive sub-structure, of
//     type TYPE if given, into a scalar, a slice, a slice of slices or a
//     slice of arrays for sub-arrays
//   - required: fail if the property, sub-structure or data is absent
package gomap
