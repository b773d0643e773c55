// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/GermanBionicSystems/krakenlcd/kraken"
	"github.com/GermanBionicSystems/krakenlcd/monitor"
	"github.com/GermanBionicSystems/krakenlcd/sensors"
)

// readingFlags select fixed readings instead of the live sensors.
type readingFlags struct {
	cpu, gpu int
}

func (f *readingFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.cpu, "cpu", 0, "show this CPU temperature instead of reading the sensor")
	cmd.Flags().IntVar(&f.gpu, "gpu", 0, "show this GPU temperature instead of reading the sensor")
}

// open returns the CPU and GPU sensors for cmd. release must be called once
// done.
func (f *readingFlags) open(a *app, cmd *cobra.Command) (cpu, gpu monitor.Sensor, release func(), err error) {
	release = func() {}
	if cmd.Flags().Changed("cpu") {
		cpu = fixedSensor(sensors.Degrees(f.cpu))
	} else {
		src, err := a.enumerator()
		if err != nil {
			return nil, nil, release, err
		}
		cpu = sensors.NewCPU(src)
	}
	if cmd.Flags().Changed("gpu") {
		gpu = fixedSensor(sensors.Degrees(f.gpu))
	} else {
		dev, err := a.openGPU()
		if err != nil {
			return nil, nil, release, err
		}
		gpu = dev
		release = func() { a.closeGPU(dev) }
	}
	return cpu, gpu, release, nil
}

func newRenderCmd(a *app) *cobra.Command {
	var flags readingFlags
	var out string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one frame to an image file",
		Long: `Render one frame to an image file without touching the LCD. Readings not
given with --cpu or --gpu are taken from the sensors. The format follows
the extension of --out: .png, .jpg or .jpeg.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := kraken.ImageFormatFromString(strings.TrimPrefix(filepath.Ext(out), "."))
			if err != nil {
				return err
			}
			cpu, gpu, release, err := flags.open(a, cmd)
			if err != nil {
				return err
			}
			defer release()
			d := &fileDisplay{fs: a.fs, path: out, format: format}
			if err := a.loop(cpu, gpu, d).Tick(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "krakenlcd.png", "output file")
	return cmd
}

// fileDisplay writes each frame to a file.
type fileDisplay struct {
	fs     afero.Fs
	path   string
	format kraken.ImageFormat
}

func (d *fileDisplay) Init(context.Context) error {
	return nil
}

func (d *fileDisplay) Publish(_ context.Context, img image.Image) error {
	var buf bytes.Buffer
	if err := kraken.Encode(&buf, img, d.format); err != nil {
		return err
	}
	return afero.WriteFile(d.fs, d.path, buf.Bytes(), 0o644)
}
