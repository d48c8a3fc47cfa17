package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/samcharles93/ommbake/internal/api"
	"github.com/samcharles93/ommbake/internal/cuda"
	"github.com/samcharles93/ommbake/internal/ommerr"
	"github.com/urfave/cli/v3"
)

func decodeCmd() *cli.Command {
	var (
		family string
		format string
	)
	return &cli.Command{
		Name:      "decode",
		Usage:     "Decode CUDA status codes",
		ArgsUsage: "<code> [code...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "family",
				Usage:       "status family (runtime, driver)",
				Value:       "runtime",
				Destination: &family,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &format,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fam, err := ommerr.ParseFamily(family)
			if err != nil {
				return err
			}
			return runDecode(os.Stdout, cuda.Runtime(), fam, cmd.Args().Slice(), format)
		},
	}
}

func runDecode(w io.Writer, rt ommerr.Runtime, family ommerr.Family, args []string, format string) error {
	if len(args) == 0 {
		return ommerr.New(ommerr.ErrorInvalidValue, "decode: at least one status code is required")
	}
	out := make([]api.StatusResponse, 0, len(args))
	for _, arg := range args {
		code, err := strconv.Atoi(arg)
		if err != nil {
			return ommerr.Newf(ommerr.ErrorInvalidValue, "decode: %q is not an integer status code", arg)
		}
		out = append(out, api.Describe(rt, ommerr.Status{Family: family, Code: code}))
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "text", "":
		for _, s := range out {
			name := s.Name
			if name == "" {
				name = "?"
			}
			if _, err := fmt.Fprintf(w, "%s:%d\t%s\t%s\n", s.Family, s.Code, name, s.Message); err != nil {
				return err
			}
		}
		return nil
	default:
		return ommerr.Newf(ommerr.ErrorInvalidValue, "decode: unknown format %q (expected text or json)", format)
	}
}
