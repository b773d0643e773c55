// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package nvgpu

import (
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// Library is the subset of NVML used by Dev.
type Library interface {
	Init() error
	Shutdown() error
	Device(index int) (Device, error)
}

// Device is the subset of an NVML device handle used by Dev.
type Device interface {
	Name() (string, error)
	// Temperature returns the GPU core temperature in whole degrees Celsius.
	Temperature() (uint32, error)
}

// Error is a non-success NVML return code.
type Error struct {
	Code int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("nvml: %s (%d)", e.Msg, e.Code)
}

// NVML returns the Library backed by the system NVML.
func NVML() Library {
	return nvmlLibrary{}
}

type nvmlLibrary struct{}

func (nvmlLibrary) Init() error {
	return check(nvml.Init())
}

func (nvmlLibrary) Shutdown() error {
	return check(nvml.Shutdown())
}

func (nvmlLibrary) Device(index int) (Device, error) {
	h, ret := nvml.DeviceGetHandleByIndex(index)
	if err := check(ret); err != nil {
		return nil, err
	}
	return nvmlDevice{h: h}, nil
}

type nvmlDevice struct {
	h nvml.Device
}

func (d nvmlDevice) Name() (string, error) {
	name, ret := d.h.GetName()
	return name, check(ret)
}

func (d nvmlDevice) Temperature() (uint32, error) {
	t, ret := d.h.GetTemperature(nvml.TEMPERATURE_GPU)
	return t, check(ret)
}

func check(ret nvml.Return) error {
	if ret == nvml.SUCCESS {
		return nil
	}
	return &Error{Code: int(ret), Msg: nvml.ErrorString(ret)}
}
