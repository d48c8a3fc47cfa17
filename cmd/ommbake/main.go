package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/samcharles93/ommbake/internal/logger"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "ommbake",
		Usage:     "CUDA status diagnostics for the opacity micromap baker",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     rootFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg, err := LoadConfig(configFile)
			if err != nil {
				return ctx, err
			}
			applyConfig(cmd, cfg)
			log, err := logger.Setup(stderr, logFormat, logLevel)
			if err != nil {
				return ctx, err
			}
			return logger.WithContext(ctx, log), nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			decodeCmd(),
			probeCmd(),
			serveCmd(),
			versionCmd(),
		},
	}
}
