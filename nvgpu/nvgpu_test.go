// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package nvgpu

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/GermanBionicSystems/krakenlcd/sensors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"
)

type fakeLibrary struct {
	initErr   error
	deviceErr error
	dev       *fakeDevice

	inits     int
	shutdowns int
	indexes   []int
}

func (l *fakeLibrary) Init() error {
	l.inits++
	return l.initErr
}

func (l *fakeLibrary) Shutdown() error {
	l.shutdowns++
	return nil
}

func (l *fakeLibrary) Device(index int) (Device, error) {
	l.indexes = append(l.indexes, index)
	if l.deviceErr != nil {
		return nil, l.deviceErr
	}
	return l.dev, nil
}

type fakeDevice struct {
	temp  atomic.Uint32
	err   error
	reads atomic.Int32
}

func (d *fakeDevice) Name() (string, error) {
	return "NVIDIA GeForce RTX 4080", nil
}

func (d *fakeDevice) Temperature() (uint32, error) {
	d.reads.Add(1)
	if d.err != nil {
		return 0, d.err
	}
	return d.temp.Load(), nil
}

func newFake(temp uint32) *fakeLibrary {
	dev := &fakeDevice{}
	dev.temp.Store(temp)
	return &fakeLibrary{dev: dev}
}

func TestOpen(t *testing.T) {
	lib := newFake(68)
	d, err := Open(lib, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, lib.inits)
	assert.Equal(t, []int{0}, lib.indexes)
	assert.Equal(t, "nvgpu0: NVIDIA GeForce RTX 4080", d.String())

	for i := 0; i < 3; i++ {
		r, err := d.Read(context.Background())
		require.NoError(t, err)
		assert.Equal(t, sensors.Degrees(68), r)
	}
	// The handle is resolved once.
	assert.Equal(t, []int{0}, lib.indexes)
	assert.Equal(t, 1, lib.inits)

	require.NoError(t, d.Halt())
	assert.Equal(t, 1, lib.shutdowns)
}

func TestOpen_initFailure(t *testing.T) {
	lib := newFake(0)
	lib.initErr = &Error{Code: 9, Msg: "Driver Not Loaded"}
	d, err := Open(lib, 0)
	assert.Nil(t, d)
	assert.ErrorIs(t, err, ErrInit)
	assert.Contains(t, err.Error(), "Driver Not Loaded")
	assert.Empty(t, lib.indexes)
}

func TestOpen_deviceFailure(t *testing.T) {
	lib := newFake(0)
	lib.deviceErr = &Error{Code: 2, Msg: "Invalid Argument"}
	d, err := Open(lib, 3)
	assert.Nil(t, d)
	assert.ErrorIs(t, err, ErrInit)
	assert.Equal(t, 1, lib.shutdowns)
}

func TestRead_failure(t *testing.T) {
	lib := newFake(0)
	lib.dev.err = errors.New("GPU is lost")
	d, err := Open(lib, 0)
	require.NoError(t, err)
	r, err := d.Read(context.Background())
	assert.Error(t, err)
	assert.False(t, r.Valid())
}

func TestSense(t *testing.T) {
	d, err := Open(newFake(41), 0)
	require.NoError(t, err)
	var e physic.Env
	require.NoError(t, d.Sense(&e))
	assert.Equal(t, physic.ZeroCelsius+41*physic.Celsius, e.Temperature)

	d.Precision(&e)
	assert.Equal(t, physic.Celsius, e.Temperature)
}

func TestSenseContinuous(t *testing.T) {
	lib := newFake(50)
	d, err := Open(lib, 0)
	require.NoError(t, err)

	_, err = d.SenseContinuous(0)
	assert.Error(t, err)

	ch, err := d.SenseContinuous(time.Millisecond)
	require.NoError(t, err)
	_, err = d.SenseContinuous(time.Millisecond)
	assert.Error(t, err, "second continuous sense must be rejected")

	select {
	case e := <-ch:
		assert.Equal(t, physic.ZeroCelsius+50*physic.Celsius, e.Temperature)
	case <-time.After(time.Second):
		t.Fatal("no reading")
	}

	require.NoError(t, d.Halt())
	for range ch {
	}
}
