// Package libdiff compares documents by their canonical OpenDDL encoding.
//
// Two documents are equal when they encode to the same text, so layout,
// comments and literal spellings (0x10 and 16 in a data list, u16 and
// unsigned_int16) do not count as differences.
//
// # Usage
//
//	res, err := libdiff.Diff(a, b)
//	if !res.Equal() {
//	    res.Write(os.Stdout, libdiff.DiffColors(true))
//	}
//
// # Related Packages
//
//   - github.com/mosra/magnum-plugins-sub007/encode - Canonical encoding
package libdiff
