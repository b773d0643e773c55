// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package frame renders the 320x320 status image shown on the Kraken LCD.
//
// The layout is fixed: a white "NZXT" title at the top, the CPU temperature
// in blue on the left half and the GPU temperature in amber on the right
// half, each above its label. Rendering is a pure function of the two
// readings; fonts are loaded once up front.
package frame
