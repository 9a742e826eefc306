package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	docs, err := cfg.loadDocs(cc, args)
	if err != nil {
		return err
	}
	bad := 0
	for _, nd := range docs {
		unresolved := nd.doc.Unresolved()
		if len(unresolved) != 0 {
			bad++
			cfg.logger().Warn("unresolved references", "file", nd.path, "refs", unresolved)
			continue
		}
		if !cfg.Quiet {
			fmt.Fprintf(cc.Out, "%s: ok, %d structures\n", nd.path, nd.doc.Len())
		}
	}
	if bad != 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
