// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GermanBionicSystems/krakenlcd/config"
	"github.com/GermanBionicSystems/krakenlcd/frame"
	"github.com/GermanBionicSystems/krakenlcd/kraken"
	"github.com/GermanBionicSystems/krakenlcd/liquidctl"
	"github.com/GermanBionicSystems/krakenlcd/monitor"
	"github.com/GermanBionicSystems/krakenlcd/nvgpu"
	"github.com/GermanBionicSystems/krakenlcd/sensors"
)

// enumerator returns the configured CPU sensor source.
func (a *app) enumerator() (sensors.Enumerator, error) {
	switch a.cfg.Sensors.Source {
	case config.SourceHwmon:
		return &sensors.Hwmon{Fs: a.fs, Root: a.cfg.Sensors.HwmonRoot}, nil
	case config.SourceGopsutil:
		return &sensors.Gopsutil{}, nil
	case config.SourceThermal:
		return &sensors.Thermal{}, nil
	}
	return nil, fmt.Errorf("unknown sensor source %q", a.cfg.Sensors.Source)
}

// openGPU opens the configured GPU. Failing to do so is fatal.
func (a *app) openGPU() (*nvgpu.Dev, error) {
	gpu, err := nvgpu.Open(a.nvml, a.cfg.Sensors.GPUIndex)
	if err != nil {
		return nil, err
	}
	a.log.Debug("gpu opened", zap.Stringer("gpu", gpu))
	return gpu, nil
}

func (a *app) closeGPU(gpu *nvgpu.Dev) {
	if err := gpu.Halt(); err != nil {
		a.log.Warn("nvml shutdown failed", zap.Error(err))
	}
}

// renderer falls back to the embedded Go fonts when the configured files
// cannot be loaded.
func (a *app) renderer() *frame.Renderer {
	fonts, err := frame.LoadFonts(a.fs, a.cfg.Fonts.Bold, a.cfg.Fonts.Regular)
	if err != nil {
		a.log.Warn("using embedded fonts", zap.Error(err))
		fonts = frame.GoFonts()
	}
	return frame.NewRenderer(fonts)
}

func (a *app) lcd() (*kraken.Dev, error) {
	format, err := a.cfg.ImageFormat()
	if err != nil {
		return nil, err
	}
	runner := a.runner
	if runner == nil {
		runner = &liquidctl.Exec{Path: a.cfg.Device.Liquidctl, Timeout: a.cfg.Device.Timeout.D()}
	}
	ctl := &liquidctl.Client{Runner: runner, Match: a.cfg.Device.Match}
	opts := kraken.DefaultOpts
	opts.ImagePath = a.cfg.Device.ImagePath
	opts.Format = format
	return kraken.New(ctl, a.fs, &opts, a.log), nil
}

func (a *app) loop(cpu, gpu monitor.Sensor, d monitor.Display) *monitor.Loop {
	return monitor.New(monitor.Config{
		CPU:           cpu,
		GPU:           gpu,
		Renderer:      a.renderer(),
		Display:       d,
		Interval:      a.cfg.Poll.Interval.D(),
		SensorTimeout: a.cfg.Sensors.Timeout.D(),
		Log:           a.log,
	})
}

// fixedSensor always returns the same reading.
type fixedSensor sensors.Reading

func (f fixedSensor) Read(context.Context) (sensors.Reading, error) {
	return sensors.Reading(f), nil
}
