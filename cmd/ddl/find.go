package main

import (
	"fmt"

	"github.com/mosra/magnum-plugins-sub007/encode"
	"github.com/mosra/magnum-plugins-sub007/query"

	"github.com/scott-cotton/cli"
)

func find(cfg *FindConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Find.Parse(cc, args)
	if err != nil {
		cfg.Find.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: find requires an expression", cli.ErrUsage)
	}
	q, err := query.Compile(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	docs, err := cfg.loadDocs(cc, args[1:])
	if err != nil {
		return err
	}
	for _, nd := range docs {
		res, err := q.Find(nd.doc)
		if err != nil {
			return err
		}
		for _, s := range res {
			if cfg.Paths {
				fmt.Fprintf(cc.Out, "%s:%s\n", nd.path, query.Path(s))
				continue
			}
			if err := encode.EncodeStructure(s, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
				return err
			}
		}
	}
	return nil
}
