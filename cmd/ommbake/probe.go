package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/samcharles93/ommbake/internal/cuda"
	"github.com/samcharles93/ommbake/internal/logger"
	"github.com/urfave/cli/v3"
)

func probeCmd() *cli.Command {
	var size int64
	return &cli.Command{
		Name:  "probe",
		Usage: "Run a checked allocation and copy round trip on the default device",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:        "bytes",
				Usage:       "size of the probe buffer",
				Value:       1 << 20,
				Destination: &size,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			dev, err := cuda.Open(checkerOptions(log)...)
			if err != nil {
				return fmt.Errorf("probe: %w", err)
			}
			return runProbe(os.Stdout, log, dev, size)
		},
	}
}

func runProbe(w io.Writer, log logger.Logger, dev *cuda.Device, size int64) error {
	count, err := dev.Count()
	if err != nil {
		return err
	}
	log.Info("cuda devices detected", "count", count, "debug_sync", dev.Checker().DebugSync())

	stream, err := dev.NewStream()
	if err != nil {
		return err
	}
	defer stream.Release()

	buf, err := dev.Alloc(size)
	if err != nil {
		return err
	}
	defer buf.Release()

	in := make([]byte, size)
	for i := range in {
		in[i] = byte(i)
	}
	out := make([]byte, size)
	if err := dev.MemcpyH2D(buf, in); err != nil {
		return err
	}
	if err := dev.MemcpyD2H(out, buf); err != nil {
		return err
	}
	if err := stream.Synchronize(); err != nil {
		return err
	}
	if !bytes.Equal(in, out) {
		return fmt.Errorf("probe: device round trip corrupted %d bytes", size)
	}
	_, err = fmt.Fprintf(w, "ok: %d device(s), %d byte round trip\n", count, size)
	return err
}
