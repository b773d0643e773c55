// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package krakenlcd is a container for the packages that drive the LCD of an
// NZXT Kraken pump with live CPU and GPU temperatures.
//
// The packages are layered leaves first: sensors and nvgpu sample the
// temperatures, frame renders them, liquidctl and kraken deliver the frame to
// the device, and monitor runs the whole thing on a fixed cadence. The
// krakenlcd command in cmd/krakenlcd wires them together.
package krakenlcd
