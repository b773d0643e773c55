// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GermanBionicSystems/krakenlcd/config"
	"github.com/GermanBionicSystems/krakenlcd/liquidctl"
	"github.com/GermanBionicSystems/krakenlcd/nvgpu"
)

// app holds what the commands share. The hardware facing fields are
// replaced in tests.
type app struct {
	fs     afero.Fs
	nvml   nvgpu.Library
	runner liquidctl.Runner // nil runs the configured binary

	configPath string
	debug      bool

	cfg config.Config
	log *zap.Logger
}

func newApp() *app {
	return &app{
		fs:   afero.NewOsFs(),
		nvml: nvgpu.NVML(),
		log:  zap.NewNop(),
	}
}

func newRootCmd(a *app, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "krakenlcd",
		Short: "Show CPU and GPU temperatures on an NZXT Kraken LCD",
		Long: `krakenlcd samples the CPU package and GPU core temperatures, renders
them side by side and uploads the image to the Kraken LCD with liquidctl,
every two seconds until interrupted.

Settings are read from a TOML file; every key is optional.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
		Args: cobra.NoArgs,
		RunE: a.runLoop,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath(), "configuration file")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "log at debug level with the development encoder")
	root.AddCommand(
		newRunCmd(a),
		newRenderCmd(a),
		newSensorsCmd(a),
		newPreviewCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.fs, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	log, err := newLogger(cfg.Log, a.debug)
	if err != nil {
		return err
	}
	a.log = log.With(zap.String("package", "main"))
	a.log.Debug("configuration loaded", zap.String("path", a.configPath))
	return nil
}
