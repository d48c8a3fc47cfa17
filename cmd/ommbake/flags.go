package main

import (
	"os"

	"github.com/samcharles93/ommbake/internal/logger"
	"github.com/samcharles93/ommbake/internal/ommerr"
	"github.com/urfave/cli/v3"
)

var (
	configFile string
	logLevel   string
	logFormat  string
	debugSync  bool
)

func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config.yaml",
			Value:       configPath(),
			Destination: &configFile,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (text, json)",
			Value:       "text",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug-sync",
			Usage:       "synchronize the device after every checked call (default on in ommdebug builds)",
			Value:       ommerr.DebugBuild,
			Sources:     cli.EnvVars("OMMBAKE_DEBUG_SYNC"),
			Destination: &debugSync,
		},
	}
}

// checkerOptions applies the resolved flags to a Checker.
func checkerOptions(log logger.Logger) []ommerr.Option {
	return []ommerr.Option{
		ommerr.WithDebugSync(debugSync),
		ommerr.WithErrorStream(os.Stderr),
		ommerr.WithLogger(log.With("component", "ommerr")),
	}
}
