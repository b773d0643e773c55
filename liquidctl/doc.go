// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package liquidctl drives the liquidctl command line utility.
//
// Only the two commands needed to push an image to a Kraken LCD are
// supported: initializing every device and setting the LCD screen. Each
// invocation is bounded by a timeout and reports a Result rather than an
// error, since callers treat device commands as fire-and-forget.
//
// More details
//
// https://github.com/liquidctl/liquidctl
package liquidctl
