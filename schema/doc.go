// Package schema describes and checks the shape of an OpenDDL document.
//
// A Schema lists which custom structures may appear at the top level and,
// per structure identifier, which properties it takes, which primitive
// sub-structures it may hold and which custom structures may be nested
// inside it, each with an allowed count.
//
// # Validation
//
// Validate walks the document level by level. Structures whose identifier
// is unknown to the document (UnknownIdentifier) are skipped, as are
// properties with unknown identifiers, so a schema only needs to describe
// what the application reads. Every violation is collected; the returned
// error is an Errors value whose elements unwrap to one of the Err*
// sentinels.
//
// # Schema files
//
// Load reads a schema together with its identifier tables from YAML:
//
//	structures: [Mesh, VertexArray, IndexArray]
//	properties: [attrib, lod]
//	roots:
//	  - {name: Mesh, min: 1}
//	rules:
//	  Mesh:
//	    properties:
//	      - {name: lod, type: unsigned_int32}
//	    structures:
//	      - {name: VertexArray, min: 1}
//	      - {name: IndexArray, max: 1}
//	  VertexArray:
//	    properties:
//	      - {name: attrib, type: string, required: true}
//	    primitives: [float]
//	    primitiveCount: 1
//
// A max of 0 means unbounded.
package schema
