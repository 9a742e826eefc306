package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mosra/magnum-plugins-sub007/ir"
	"github.com/mosra/magnum-plugins-sub007/parse"

	"github.com/scott-cotton/cli"
)

type namedDoc struct {
	path string
	doc  *ir.Document
}

func readInput(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

// loadDocs parses each of paths, stdin when there are none. With -a every
// file is parsed into one document, named after the last file.
func (cfg *MainConfig) loadDocs(cc *cli.Context, paths []string) ([]namedDoc, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	structs, props, err := cfg.tables()
	if err != nil {
		return nil, err
	}
	var res []namedDoc
	var doc *ir.Document
	for _, path := range paths {
		d, err := readInput(cc, path)
		if err != nil {
			return nil, err
		}
		var opts []parse.ParseOption
		if cfg.Append && doc != nil {
			opts = append(opts, parse.ParseAppend())
		} else {
			doc = ir.NewDocument(structs, props)
		}
		if err := parse.Into(doc, d, opts...); err != nil {
			return nil, fmt.Errorf("error decoding %s: %w", path, err)
		}
		cfg.logger().Debug("parsed", "file", path, "structures", doc.Len())
		if !cfg.Append {
			res = append(res, namedDoc{path: path, doc: doc})
		}
	}
	if cfg.Append {
		res = append(res, namedDoc{path: paths[len(paths)-1], doc: doc})
	}
	return res, nil
}
