package parse

import (
	"io"
	"os"
)

type parseOpts struct {
	diag   io.Writer
	append bool
}

type ParseOption func(*parseOpts)

// ParseDiagnostics sets where error and warning lines are written. A nil
// writer discards them.
func ParseDiagnostics(w io.Writer) ParseOption {
	return func(o *parseOpts) {
		if w == nil {
			w = io.Discard
		}
		o.diag = w
	}
}

// ParseAppend adds the parsed structures after the existing top level
// structures of the document instead of replacing them.
func ParseAppend() ParseOption {
	return func(o *parseOpts) { o.append = true }
}

func newParseOpts(opts []ParseOption) *parseOpts {
	res := &parseOpts{diag: os.Stderr}
	for _, f := range opts {
		f(res)
	}
	return res
}
