package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/gops/agent"
	"github.com/mosra/magnum-plugins-sub007/schema"
	"github.com/scott-cotton/cli"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

const lsName = "ddl-lsp"

var (
	version = "0.0.1"
)

type MainConfig struct {
	Schema string `cli:"name=s aliases=schema desc='schema file with identifier tables'"`
	Log    string `cli:"name=log desc='log file (default stderr)'"`
	Debug  bool   `cli:"name=debug desc='log at debug level'"`
	Gops   bool   `cli:"name=gops desc='start a gops agent'"`

	Main *cli.Command
}

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, lsName).
		WithSynopsis("ddl-lsp [opts]").
		WithDescription("ddl-lsp is a language server for OpenDDL speaking on stdio.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return lspMain(cfg, cc, args)
		})
}

func main() {
	cli.MainContext(context.Background(), MainCommand())
}

func lspMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Main.Parse(cc, args); err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			logger.Warn("gops agent failed", zap.Error(err))
		}
	}

	server := newServer(logger)
	if cfg.Schema != "" {
		d, err := os.ReadFile(cfg.Schema)
		if err != nil {
			return err
		}
		f, err := schema.Load(d)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", cfg.Schema, err)
		}
		server.docs.schema = f
	}

	ctx := context.Background()
	stream := jsonrpc2.NewStream(&stdioReadWriteCloser{
		read:  os.Stdin,
		write: os.Stdout,
	})
	_, conn, client := protocol.NewServer(ctx, server, stream, logger)
	server.client = client
	<-conn.Done()
	return conn.Err()
}

func newLogger(cfg *MainConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Debug {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	out := "stderr"
	if cfg.Log != "" {
		out = cfg.Log
	}
	zc.OutputPaths = []string{out}
	zc.ErrorOutputPaths = []string{out}
	return zc.Build()
}

type stdioReadWriteCloser struct {
	read  io.Reader
	write io.Writer
}

func (s *stdioReadWriteCloser) Read(p []byte) (n int, err error) {
	return s.read.Read(p)
}

func (s *stdioReadWriteCloser) Write(p []byte) (n int, err error) {
	return s.write.Write(p)
}

func (s *stdioReadWriteCloser) Close() error {
	return nil
}
