// Package query selects structures of a document with expr-lang
// expressions.
//
// An expression is evaluated once per structure, in document order, and
// must yield a bool. The environment holds:
//
//	id      structure identifier, -1 when unknown or primitive
//	ident   identifier as written, or type keyword of a primitive
//	name    $name or %name, "" when unnamed
//	path    slash separated identifiers and names from the root
//	type    type keyword, "custom" for custom structures
//	custom  whether the structure is custom
//	global  whether the name is global
//	depth   nesting depth, 0 at the top level
//	count   values of a primitive, children of a custom structure
//	props   property values by property identifier as written
//	values  primitive data, empty for custom structures
//
// For example:
//
//	custom && ident == "VertexArray" && props.attrib == "position"
//	type == "float" && count >= 3 && depth > 1
package query
