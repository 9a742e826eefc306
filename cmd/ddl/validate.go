package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mosra/magnum-plugins-sub007/schema"

	"github.com/scott-cotton/cli"
)

func validate(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Validate.Parse(cc, args)
	if err != nil {
		cfg.Validate.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Schema == "" {
		return fmt.Errorf("%w: validate requires a schema (-s)", cli.ErrUsage)
	}
	f, err := cfg.schemaFile()
	if err != nil {
		return err
	}
	docs, err := cfg.loadDocs(cc, args)
	if err != nil {
		return err
	}
	failed := 0
	for _, nd := range docs {
		err := f.Schema.Validate(nd.doc, schema.ValidateDiagnostics(os.Stderr))
		var es schema.Errors
		switch {
		case err == nil:
			fmt.Fprintf(cc.Out, "%s: valid\n", nd.path)
		case errors.As(err, &es):
			failed++
			cfg.logger().Warn("invalid", "file", nd.path, "violations", len(es))
		default:
			return err
		}
	}
	if failed != 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
