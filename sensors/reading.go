// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sensors

import (
	"strconv"

	"periph.io/x/conn/v3/physic"
)

const (
	// DegreeSign is appended to every rendered reading.
	DegreeSign = "°"
	// Placeholder is the text of an Absent reading.
	Placeholder = "--" + DegreeSign
)

// Reading is a temperature in whole degrees Celsius that may be absent.
//
// The zero value is Absent.
type Reading struct {
	degrees int
	valid   bool
}

// Absent is the reading of a sensor that could not be found.
var Absent Reading

// Degrees returns a present reading of d degrees Celsius.
func Degrees(d int) Reading {
	return Reading{degrees: d, valid: true}
}

// FromTemperature truncates t toward zero to whole degrees Celsius.
func FromTemperature(t physic.Temperature) Reading {
	return Degrees(int((t - physic.ZeroCelsius) / physic.Celsius))
}

// Value returns the degrees and whether the reading is present.
func (r Reading) Value() (int, bool) {
	return r.degrees, r.valid
}

// Valid reports whether the reading is present.
func (r Reading) Valid() bool {
	return r.valid
}

// String returns "55°", or Placeholder when absent.
func (r Reading) String() string {
	if !r.valid {
		return Placeholder
	}
	return strconv.Itoa(r.degrees) + DegreeSign
}
