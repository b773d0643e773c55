// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package monitor runs the sample, render and publish loop that keeps the
// LCD up to date.
//
// Ticks are strictly sequential. A tick that has started always runs to
// completion; cancellation of the context passed to Run is observed between
// ticks and while waiting for the next one. Each blocking call inside a tick
// is bounded by its own timeout instead.
package monitor
