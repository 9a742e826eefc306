package main

import (
	"fmt"

	"github.com/mosra/magnum-plugins-sub007/encode"

	"github.com/scott-cotton/cli"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		cfg.Dump.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	docs, err := cfg.loadDocs(cc, args)
	if err != nil {
		return err
	}
	for _, nd := range docs {
		if err := encode.Encode(nd.doc, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding %s: %w", nd.path, err)
		}
	}
	return nil
}
