package main

import (
	"fmt"
	"os"

	"github.com/mosra/magnum-plugins-sub007/encode"
	"github.com/mosra/magnum-plugins-sub007/libdiff"

	"github.com/scott-cotton/cli"
)

// patch writes the JSON tree of each document with a JSON patch applied,
// as YAML when -y is given.
func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.PatchCmd.Parse(cc, args)
	if err != nil {
		cfg.PatchCmd.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Patch == "" {
		return fmt.Errorf("%w: patch requires -p", cli.ErrUsage)
	}
	p, err := os.ReadFile(cfg.Patch)
	if err != nil {
		return err
	}
	docs, err := cfg.loadDocs(cc, args)
	if err != nil {
		return err
	}
	apply := libdiff.Patch
	if encode.FormatFromOpts(cfg.encOpts(cc.Out)...).IsYAML() {
		apply = libdiff.PatchYAML
	}
	for _, nd := range docs {
		out, err := apply(nd.doc, p)
		if err != nil {
			return fmt.Errorf("error patching %s: %w", nd.path, err)
		}
		if len(out) == 0 || out[len(out)-1] != '\n' {
			out = append(out, '\n')
		}
		if _, err := cc.Out.Write(out); err != nil {
			return err
		}
	}
	return nil
}
