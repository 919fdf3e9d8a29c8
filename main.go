//go:build !js
// +build !js

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"

	"github.com/seqsense/pcgallery/cloud"
)

const (
	flagOut    = "out"
	flagPrefix = "prefix"
	flagFormat = "format"
	flagSeed   = "seed"
)

// The wasm build runs in the page. Native build writes the synthetic shapes
// as sample files the page can load.
func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "pcgallery",
		Usage: "write synthetic point clouds for the gallery page",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagOut,
				Value: "./pointcloud",
				Usage: "output directory",
			},
			&cli.StringFlag{
				Name:  flagPrefix,
				Value: "pointcloud_",
				Usage: "file name prefix",
			},
			&cli.StringFlag{
				Name:  flagFormat,
				Value: "xyz",
				Usage: "xyz or pcd",
			},
			&cli.Int64Flag{
				Name:  flagSeed,
				Usage: "random seed",
			},
		},
		Action: writeSynthetic,
	}
}

func writeSynthetic(c *cli.Context) error {
	log := newLogger(zapcore.Lock(os.Stderr), zapcore.InfoLevel)
	defer func() { _ = log.Sync() }()

	format := c.String(flagFormat)
	var write func(a *cloud.Asset, w io.Writer) error
	switch format {
	case "xyz":
		write = (*cloud.Asset).WriteXYZ
	case "pcd":
		write = (*cloud.Asset).WritePCD
	default:
		return errors.Errorf("unknown format %q", format)
	}

	assets, err := cloud.Synthetic(c.Int64(flagSeed))
	if err != nil {
		return err
	}
	dir := c.String(flagOut)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for i, a := range assets {
		name := filepath.Join(dir, fmt.Sprintf("%s%02d.%s", c.String(flagPrefix), i+1, format))
		if err := writeFile(name, a, write); err != nil {
			return errors.Wrapf(err, "writing %s", name)
		}
		log.Infof("%s: %s, %d points", name, a.Name, a.Len())
	}
	return nil
}

func writeFile(name string, a *cloud.Asset, write func(*cloud.Asset, io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(a, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
