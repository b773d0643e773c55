// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package termview implements a 2D display.Drawer that outputs a downscaled
// copy of the image to the terminal using ANSI 256 color codes.
//
// Useful to check the LCD layout on a machine without a Kraken attached.
package termview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
)

// Opts represents the options available for this display.
type Opts struct {
	// Width and Height of the emulated display in pixels.
	Width, Height int
	// Columns and Rows of terminal cells used to show it. A cell is about
	// twice as tall as it is wide, so the defaults keep the aspect ratio of a
	// square display.
	Columns, Rows int
	Palette       *ansi256.Palette

	_ struct{}
}

// DefaultOpts shows a 320x320 LCD in 64x32 cells.
var DefaultOpts = Opts{
	Width:   320,
	Height:  320,
	Columns: 64,
	Rows:    32,
}

// Dev is a display emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	cols    int
	rows    int
	palette ansi256.Palette

	buffer *image.RGBA
	buf    bytes.Buffer
	shown  bool
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	return NewWriter(colorable.NewColorableStdout(), opts)
}

// NewWriter returns a Dev that writes its output to w.
func NewWriter(w io.Writer, opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	cols, rows := opts.Columns, opts.Rows
	if cols <= 0 || cols > opts.Width {
		cols = opts.Width
	}
	if rows <= 0 || rows > opts.Height {
		rows = opts.Height
	}
	buffer := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(buffer, buffer.Bounds(), image.Black, image.Point{}, draw.Src)
	return &Dev{
		w:       w,
		cols:    cols,
		rows:    rows,
		palette: *p,
		buffer:  buffer,
	}
}

func (d *Dev) String() string {
	return fmt.Sprintf("TermView{%dx%d}", d.cols, d.rows)
}

// Halt implements conn.Resource.
//
// It resets the terminal colors.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m"))
	return err
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.buffer.Bounds()
}

// Draw implements display.Drawer.
//
// The whole display is printed again after each call. The previous output is
// overwritten in place.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Draw(d.buffer, r, src, sp, draw.Src)
	return d.refresh()
}

func (d *Dev) refresh() error {
	d.buf.Reset()
	if d.shown {
		fmt.Fprintf(&d.buf, "\033[%dA", d.rows)
	}
	b := d.buffer.Bounds()
	for row := 0; row < d.rows; row++ {
		y0 := b.Min.Y + row*b.Dy()/d.rows
		y1 := b.Min.Y + (row+1)*b.Dy()/d.rows
		_, _ = d.buf.WriteString("\r\033[0m")
		for col := 0; col < d.cols; col++ {
			x0 := b.Min.X + col*b.Dx()/d.cols
			x1 := b.Min.X + (col+1)*b.Dx()/d.cols
			_, _ = io.WriteString(&d.buf, d.palette.Block(d.average(image.Rect(x0, y0, x1, y1))))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	d.shown = true
	_, err := d.buf.WriteTo(d.w)
	return err
}

// average returns the mean color of the pixels in r.
func (d *Dev) average(r image.Rectangle) color.NRGBA {
	var sr, sg, sb, n uint32
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := d.buffer.RGBAAt(x, y)
			sr += uint32(c.R)
			sg += uint32(c.G)
			sb += uint32(c.B)
			n++
		}
	}
	if n == 0 {
		return color.NRGBA{A: 255}
	}
	return color.NRGBA{uint8(sr / n), uint8(sg / n), uint8(sb / n), 255}
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
