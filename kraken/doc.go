// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package kraken implements a display.Drawer for the 320x320 LCD of NZXT
// Kraken Z and Elite all-in-one coolers.
//
// The LCD is not addressed directly. Each frame is encoded to an image file
// and uploaded with liquidctl, first as a static image and, when the firmware
// rejects that, once more in gif mode.
//
// Datasheet
//
// None is published. The upload protocol is documented by liquidctl:
//
// https://github.com/liquidctl/liquidctl/blob/main/docs/kraken-x3-z3-guide.md
package kraken
