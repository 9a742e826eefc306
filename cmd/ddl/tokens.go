package main

import (
	"fmt"

	"github.com/mosra/magnum-plugins-sub007/token"

	"github.com/scott-cotton/cli"
)

func tokens(cfg *TokensConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Tokens.Parse(cc, args)
	if err != nil {
		cfg.Tokens.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, path := range args {
		d, err := readInput(cc, path)
		if err != nil {
			return err
		}
		toks, err := token.Tokenize(nil, d)
		if err != nil {
			return fmt.Errorf("error tokenizing %s: %w", path, err)
		}
		for i := range toks {
			tok := &toks[i]
			line, col := tok.Pos.LineCol()
			fmt.Fprintf(cc.Out, "%s:%d:%d %s %q\n", path, line+1, col+1, tok.Type, tok.Bytes)
		}
	}
	return nil
}
