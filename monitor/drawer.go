// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package monitor

import (
	"context"
	"image"

	"periph.io/x/conn/v3/display"
)

// FromDrawer returns a Display that draws every frame over the whole of d.
// Init is a no-op.
func FromDrawer(d display.Drawer) Display {
	return drawerDisplay{d}
}

type drawerDisplay struct {
	d display.Drawer
}

func (drawerDisplay) Init(context.Context) error {
	return nil
}

func (dd drawerDisplay) Publish(_ context.Context, img image.Image) error {
	return dd.d.Draw(dd.d.Bounds(), img, img.Bounds().Min)
}
