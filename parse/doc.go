// Package parse parses OpenDDL text into an ir.Document.
//
// # Usage
//
//	structs := ir.NewIdentifiers("Mesh", "VertexArray")
//	props := ir.NewIdentifiers("lod", "attrib")
//	doc, err := parse.Parse(data, structs, props)
//	if err != nil {
//	    return err
//	}
//
//	// Parse more text into the same document
//	err = parse.Into(doc, more, parse.ParseAppend())
//
// A failed parse leaves the target document as it was. Diagnostics of the
// form "parse: expected } character on line 3" go to stderr unless
// redirected with ParseDiagnostics. References that match no structure are
// not errors: they are reported as warnings and read as null.
//
// # Related Packages
//
//   - github.com/mosra/magnum-plugins-sub007/ir - Document and views
//   - github.com/mosra/magnum-plugins-sub007/token - Literal scanners
//   - github.com/mosra/magnum-plugins-sub007/schema - Validation
package parse
