// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package monitor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/GermanBionicSystems/krakenlcd/frame"
	"github.com/GermanBionicSystems/krakenlcd/sensors"
)

// Defaults for Config.
const (
	DefaultInterval      = 2 * time.Second
	DefaultSensorTimeout = 5 * time.Second
)

// Sensor returns one temperature.
type Sensor interface {
	Read(ctx context.Context) (sensors.Reading, error)
}

// Renderer turns two readings into a frame.
type Renderer interface {
	Render(cpu, gpu sensors.Reading) *frame.Frame
}

// Display receives frames.
type Display interface {
	Init(ctx context.Context) error
	Publish(ctx context.Context, img image.Image) error
}

// Config configures a Loop. CPU, GPU, Renderer and Display are required.
type Config struct {
	CPU      Sensor
	GPU      Sensor
	Renderer Renderer
	Display  Display

	// Clock paces the loop. Defaults to the wall clock.
	Clock clock.Clock
	// Interval is the pause between the end of a tick and the start of the
	// next one. Defaults to DefaultInterval.
	Interval time.Duration
	// SensorTimeout bounds each sensor read. Defaults to DefaultSensorTimeout.
	SensorTimeout time.Duration

	Log *zap.Logger
}

// State is the lifecycle stage of a Loop.
type State int32

const (
	Uninitialized State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Running:
		return "Running"
	case Stopped:
		return "Stopped"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// ErrStarted is returned by Run when the loop was already started.
var ErrStarted = errors.New("monitor: loop already started")

// Loop keeps a Display up to date. A Loop runs once.
type Loop struct {
	cfg   Config
	log   *zap.Logger
	state atomic.Int32
	ticks atomic.Uint64
}

// New returns a Loop in the Uninitialized state.
func New(cfg Config) *Loop {
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.SensorTimeout <= 0 {
		cfg.SensorTimeout = DefaultSensorTimeout
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	return &Loop{cfg: cfg, log: cfg.Log.With(zap.String("package", "monitor"))}
}

// State returns the current lifecycle stage.
func (l *Loop) State() State {
	return State(l.state.Load())
}

// Ticks returns the number of ticks started so far.
func (l *Loop) Ticks() uint64 {
	return l.ticks.Load()
}

// Run initializes the display then ticks every Interval until ctx is done.
//
// A failed display initialization is logged and ignored. A failed tick is
// logged and the loop carries on with the next one. Run returns nil once ctx
// is done.
func (l *Loop) Run(ctx context.Context) error {
	if !l.state.CompareAndSwap(int32(Uninitialized), int32(Running)) {
		return ErrStarted
	}
	defer l.state.Store(int32(Stopped))

	// In-flight work is never interrupted; only the wait between ticks is.
	work := context.WithoutCancel(ctx)
	if err := l.cfg.Display.Init(work); err != nil {
		l.log.Warn("display initialization failed", zap.Error(err))
	}
	l.log.Debug("running", zap.Duration("interval", l.cfg.Interval))
	for {
		if ctx.Err() != nil {
			return nil
		}
		if err := l.Tick(work); err != nil {
			l.log.Warn("tick failed", zap.Error(err))
		}
		t := l.cfg.Clock.Timer(l.cfg.Interval)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case <-t.C:
		}
	}
}

// Tick samples both sensors, renders a frame and publishes it.
//
// When a sensor fails the tick stops there: nothing is rendered or published.
// An Absent reading is not a failure.
func (l *Loop) Tick(ctx context.Context) error {
	l.ticks.Add(1)
	cpu, gpu, err := l.Sample(ctx)
	if err != nil {
		return err
	}
	img := l.cfg.Renderer.Render(cpu, gpu)
	if err := l.cfg.Display.Publish(ctx, img); err != nil {
		return fmt.Errorf("monitor: publish: %w", err)
	}
	l.log.Debug("tick", zap.Stringer("cpu", cpu), zap.Stringer("gpu", gpu))
	return nil
}

// Sample reads the CPU then the GPU temperature.
func (l *Loop) Sample(ctx context.Context) (cpu, gpu sensors.Reading, err error) {
	if cpu, err = l.read(ctx, l.cfg.CPU); err != nil {
		return sensors.Absent, sensors.Absent, fmt.Errorf("monitor: cpu: %w", err)
	}
	if gpu, err = l.read(ctx, l.cfg.GPU); err != nil {
		return sensors.Absent, sensors.Absent, fmt.Errorf("monitor: gpu: %w", err)
	}
	return cpu, gpu, nil
}

func (l *Loop) read(ctx context.Context, s Sensor) (sensors.Reading, error) {
	ctx, cancel := context.WithTimeout(ctx, l.cfg.SensorTimeout)
	defer cancel()
	return sensors.Bounded(ctx, func() (sensors.Reading, error) {
		return s.Read(ctx)
	})
}
