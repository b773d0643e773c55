// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package nvgpu reads the core temperature of an NVIDIA GPU through NVML.
//
// The management library is initialized exactly once by Open and the device
// handle is resolved at a fixed index; a failure there is fatal for callers
// since no GPU reading can ever be produced. Halt shuts the library down.
//
// NVML is reached through the narrow Library and Device interfaces so the
// rest of the program can run against a fake. NVML() returns the real
// implementation backed by github.com/NVIDIA/go-nvml, which loads
// libnvidia-ml.so at runtime.
package nvgpu
