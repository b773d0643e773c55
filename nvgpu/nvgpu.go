// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package nvgpu

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GermanBionicSystems/krakenlcd/sensors"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
)

// ErrInit is wrapped by every error returned from Open.
var ErrInit = errors.New("nvgpu: initialization failed")

// Dev is one GPU whose temperature is read through NVML.
type Dev struct {
	lib   Library
	dev   Device
	index int
	name  string

	mu   sync.Mutex
	done chan struct{}
}

// Open initializes lib and resolves the GPU at index.
//
// The handle is resolved once; Dev never re-enumerates devices. On failure
// the library is shut down again and the error wraps ErrInit.
func Open(lib Library, index int) (*Dev, error) {
	if err := lib.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInit, err)
	}
	dev, err := lib.Device(index)
	if err != nil {
		_ = lib.Shutdown()
		return nil, fmt.Errorf("%w: device %d: %v", ErrInit, index, err)
	}
	name, err := dev.Name()
	if err != nil {
		name = "<unknown>"
	}
	return &Dev{lib: lib, dev: dev, index: index, name: name}, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("nvgpu%d: %s", d.index, d.name)
}

// Read returns the GPU core temperature in whole degrees.
//
// The reading is always present; a failed or timed out query is an error.
func (d *Dev) Read(ctx context.Context) (sensors.Reading, error) {
	t, err := sensors.Bounded(ctx, d.temperature)
	if err != nil {
		return sensors.Absent, err
	}
	return sensors.FromTemperature(t), nil
}

func (d *Dev) temperature() (physic.Temperature, error) {
	c, err := d.dev.Temperature()
	if err != nil {
		return 0, fmt.Errorf("nvgpu: read temperature: %w", err)
	}
	return physic.ZeroCelsius + physic.Temperature(c)*physic.Celsius, nil
}

// Sense implements physic.SenseEnv. Only Temperature is set.
func (d *Dev) Sense(e *physic.Env) error {
	t, err := d.temperature()
	if err != nil {
		return err
	}
	e.Temperature = t
	return nil
}

// SenseContinuous implements physic.SenseEnv. Call Halt to stop it.
func (d *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	if interval <= 0 {
		return nil, errors.New("nvgpu: invalid interval")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done != nil {
		return nil, errors.New("nvgpu: already sensing continuously")
	}
	done := make(chan struct{})
	ret := make(chan physic.Env)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		defer close(ret)
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				var e physic.Env
				if err := d.Sense(&e); err != nil {
					continue
				}
				select {
				case ret <- e:
				case <-done:
					return
				}
			}
		}
	}()
	d.done = done
	return ret, nil
}

// Precision implements physic.SenseEnv. NVML reports whole degrees.
func (d *Dev) Precision(e *physic.Env) {
	e.Temperature = physic.Celsius
	e.Pressure = 0
	e.Humidity = 0
}

// Halt implements conn.Resource.
//
// It stops a continuous sense and shuts NVML down. The Dev must not be used
// afterward.
func (d *Dev) Halt() error {
	d.mu.Lock()
	if d.done != nil {
		close(d.done)
		d.done = nil
	}
	d.mu.Unlock()
	return d.lib.Shutdown()
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
