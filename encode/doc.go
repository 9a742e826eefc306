// Package encode writes documents back out as text.
//
// # Usage
//
//	// Canonical OpenDDL
//	err := encode.Encode(doc, os.Stdout)
//
//	// Single line, colored
//	err := encode.Encode(doc, w, encode.EncodeWire(true), encode.EncodeColors(encode.NewColors()))
//
//	// JSON or YAML of the generic tree
//	err := encode.Encode(doc, w, encode.EncodeFormat(format.JSONFormat))
//
// The OpenDDL output reparses to an equal document: structure identifiers,
// names, property kinds, sub-array shapes and reference paths are kept,
// floats are written in their shortest round-tripping form, and non-finite
// floats as bit patterns. Comments and layout of the source are not kept.
//
// # Related Packages
//
//   - github.com/mosra/magnum-plugins-sub007/parse - Parse text into a document
//   - github.com/mosra/magnum-plugins-sub007/format - Output formats
package encode
