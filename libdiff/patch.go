package libdiff

import (
	"errors"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/mosra/magnum-plugins-sub007/debug"
	"github.com/mosra/magnum-plugins-sub007/encode"
	"github.com/mosra/magnum-plugins-sub007/ir"
)

var ErrPatch = errors.New("patch")

// Patch applies an RFC 6902 JSON patch to the JSON tree of doc, as written
// by encode with the JSON format, and returns the patched tree. Paths
// address the tree, e.g. /0/children/1/data/0.
func Patch(doc *ir.Document, patch []byte) ([]byte, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	nodes := encode.Tree(doc)
	if nodes == nil {
		nodes = []*encode.Node{}
	}
	d, err := json.Marshal(nodes)
	if err != nil {
		return nil, err
	}
	if debug.Diff() {
		debug.Logf("patch: %d operations on %d bytes\n", len(ops), len(d))
	}
	out, err := ops.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return out, nil
}

// PatchYAML is Patch with the result converted to YAML.
func PatchYAML(doc *ir.Document, patch []byte) ([]byte, error) {
	out, err := Patch(doc, patch)
	if err != nil {
		return nil, err
	}
	return yaml.JSONToYAML(out)
}
