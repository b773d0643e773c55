// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sensors

import (
	"context"
	"fmt"
	"strings"
)

// CPUMarkers are the lower case label substrings that identify a CPU package
// temperature. "package" matches Intel coretemp "Package id 0" and "tctl"
// matches AMD k10temp.
var CPUMarkers = []string{"package", "tctl", "cpu"}

// CPU reads the CPU package temperature.
type CPU struct {
	src Enumerator
}

// NewCPU returns a CPU reader backed by src.
func NewCPU(src Enumerator) *CPU {
	return &CPU{src: src}
}

func (c *CPU) String() string {
	return fmt.Sprintf("cpu(%v)", c.src)
}

// Read returns the CPU package temperature, truncated to whole degrees.
//
// It returns Absent and no error when no exposed sensor looks like a CPU
// package. An error is returned only when enumeration itself failed or ctx
// ended first.
func (c *CPU) Read(ctx context.Context) (Reading, error) {
	chips, err := Bounded(ctx, func() ([]Chip, error) {
		return c.src.Enumerate(ctx)
	})
	if err != nil {
		return Absent, fmt.Errorf("sensors: enumerate: %w", err)
	}
	_, e, ok := SelectCPU(chips)
	if !ok {
		return Absent, nil
	}
	return FromTemperature(e.Current), nil
}

// SelectCPU returns the first entry, scanning chips then entries in order,
// whose label contains one of CPUMarkers regardless of case.
func SelectCPU(chips []Chip) (Chip, Entry, bool) {
	for _, chip := range chips {
		for _, e := range chip.Entries {
			if IsCPULabel(e.Label) {
				return chip, e, true
			}
		}
	}
	return Chip{}, Entry{}, false
}

// IsCPULabel reports whether label names a CPU package temperature.
func IsCPULabel(label string) bool {
	l := strings.ToLower(label)
	for _, m := range CPUMarkers {
		if strings.Contains(l, m) {
			return true
		}
	}
	return false
}
