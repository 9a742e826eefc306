package main

import (
	"fmt"

	"github.com/mosra/magnum-plugins-sub007/libdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	if cfg.Append {
		return fmt.Errorf("%w: -a does not apply to diff", cli.ErrUsage)
	}
	docs, err := cfg.loadDocs(cc, args)
	if err != nil {
		return err
	}
	res, err := libdiff.Diff(docs[0].doc, docs[1].doc)
	if err != nil {
		return err
	}
	if res.Equal() {
		return nil
	}
	colors := cfg.Color || isTerminal(cc.Out)
	if err := res.Write(cc.Out, libdiff.DiffColors(colors), libdiff.DiffContext(cfg.Context)); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}
