// Package ir provides the in-memory representation of parsed OpenDDL documents.
//
// # Overview
//
// A Document is a columnar arena. Every primitive value type has its own
// append-only column (bools, signed and unsigned integers of each width,
// floats, doubles, strings, types, base64 blobs and references). Structures
// and properties are flat records indexing into those columns, so the whole
// tree is a handful of slices and no pointers.
//
// Structures are stored in document order (depth first, parents before their
// children). Each structure is either primitive, holding a run of literals of
// one Type, or custom, holding properties and child structures. Sibling chains
// are threaded through the records, which keeps Children and FindNext O(1)
// per step.
//
// # Views
//
// Structure and Property are small value handles: a document pointer, an
// index and the generation of the document when the handle was made. They are
// comparable with ==. Parsing into a document again bumps its generation and
// every handle issued before that panics when used.
//
//	doc, err := parse.Parse(data, structs, props)
//	mesh := doc.FirstChildOf(meshID)
//	for va := range mesh.ChildrenOf(vertexArrayID) {
//	    p := va.FirstChildOfType(ir.FloatType)
//	    for _, v := range ir.SubArrays[float32](p) {
//	        ...
//	    }
//	}
//
// # Identifiers
//
// Structure and property names are mapped to small integers by caller
// supplied Identifiers tables. Names missing from a table map to
// UnknownIdentifier; such structures and properties are kept in the tree and
// are skipped by validation.
//
// # Related Packages
//
//   - github.com/mosra/magnum-plugins-sub007/parse - builds Documents from text
//   - github.com/mosra/magnum-plugins-sub007/schema - validates Documents
//   - github.com/mosra/magnum-plugins-sub007/encode - writes Documents back out
package ir
