// Package format names the encodings a document can be written in.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//	s, err := encode.String(doc, encode.EncodeFormat(f))
//
// Format implements encoding.TextMarshaler and encoding.TextUnmarshaler so
// it can be used directly as a flag or configuration value.
//
// # Related Packages
//
//   - github.com/mosra/magnum-plugins-sub007/encode - Encode documents
package format
