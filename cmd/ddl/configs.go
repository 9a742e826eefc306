package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mosra/magnum-plugins-sub007/encode"
	"github.com/mosra/magnum-plugins-sub007/format"
	"github.com/mosra/magnum-plugins-sub007/ir"
	"github.com/mosra/magnum-plugins-sub007/schema"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool   `cli:"name=color desc='encode with color'"`
	WireOut bool   `cli:"name=wire desc='output on a single line'"`
	J       bool   `cli:"name=j aliases=json desc='output json'"`
	Y       bool   `cli:"name=y aliases=yaml desc='output yaml'"`
	Schema  string `cli:"name=s aliases=schema desc='schema file with identifier tables'"`
	Append  bool   `cli:"name=a desc='parse all files into one document'"`
	Verbose bool   `cli:"name=v desc='log debug messages'"`

	OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command

	file *schema.File
	log  *slog.Logger
}

// logger is the command log on stderr, at debug level with -v.
func (cfg *MainConfig) logger() *slog.Logger {
	if cfg.log == nil {
		cfg.log = newLogger(os.Stderr, cfg.Verbose)
	}
	return cfg.log
}

// newLogger writes text records without time and without the INFO level.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch {
			case a.Key == slog.TimeKey:
				return slog.Attr{}
			case a.Key == slog.LevelKey && a.Value.String() == "INFO":
				return slog.Attr{}
			}
			return a
		},
	}))
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

// tables returns the identifier tables of the schema file, or empty tables
// when none was given.
func (cfg *MainConfig) tables() (*ir.Identifiers, *ir.Identifiers, error) {
	f, err := cfg.schemaFile()
	if err != nil {
		return nil, nil, err
	}
	if f == nil {
		return ir.NewIdentifiers(), ir.NewIdentifiers(), nil
	}
	return f.Structures, f.Properties, nil
}

func (cfg *MainConfig) schemaFile() (*schema.File, error) {
	if cfg.file != nil || cfg.Schema == "" {
		return cfg.file, nil
	}
	d, err := os.ReadFile(cfg.Schema)
	if err != nil {
		return nil, err
	}
	f, err := schema.Load(d)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", cfg.Schema, err)
	}
	cfg.file = f
	return f, nil
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	var fmt format.Format
	switch {
	case cfg.Y:
		fmt = format.YAMLFormat
	case cfg.J:
		fmt = format.JSONFormat
	}
	if cfg.OutFormat != nil {
		fmt = *cfg.OutFormat
	}
	res := []encode.EncodeOption{
		encode.EncodeFormat(fmt),
		encode.EncodeWire(cfg.WireOut),
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet || !fmt.IsDDL() {
		return res
	}
	if isTerminal(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

type CheckConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q desc='only report errors'"`

	Check *cli.Command
}

type DumpConfig struct {
	*MainConfig

	Dump *cli.Command
}

type ValidateConfig struct {
	*MainConfig

	Validate *cli.Command
}

type FindConfig struct {
	*MainConfig
	Paths bool `cli:"name=p desc='print paths instead of structures'"`

	Find *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Context int `cli:"name=C desc='lines of context, -1 for all'"`

	Diff *cli.Command
}

type TokensConfig struct {
	*MainConfig

	Tokens *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Patch string `cli:"name=p desc='json patch file (RFC 6902)'"`

	PatchCmd *cli.Command
}
