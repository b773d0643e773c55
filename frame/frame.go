// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package frame

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/GermanBionicSystems/krakenlcd/sensors"
)

// Size of the Kraken Z LCD.
const (
	Width  = 320
	Height = 320
)

// Colors of the layout.
var (
	Background = color.RGBA{0, 0, 0, 255}
	TitleColor = color.RGBA{255, 255, 255, 255}
	CPUColor   = color.RGBA{3, 169, 252, 255}
	GPUColor   = color.RGBA{252, 186, 3, 255}
)

// Title is drawn at the top of every frame.
const Title = "NZXT"

// Point sizes of the three faces.
const (
	titleSize = 32
	valueSize = 80
	labelSize = 28
)

// column is one half of the screen. Text origins are the top-left corner of
// the line, ascender included.
type column struct {
	label      string
	color      color.RGBA
	minX, maxX float64
	value      image.Point
	caption    image.Point
}

var (
	titleAt = image.Point{X: 120, Y: 20}
	columns = [2]column{
		{label: "CPU", color: CPUColor, minX: 0, maxX: 190, value: image.Point{X: 40, Y: 120}, caption: image.Point{X: 80, Y: 220}},
		{label: "GPU", color: GPUColor, minX: 190, maxX: Width, value: image.Point{X: 190, Y: 120}, caption: image.Point{X: 230, Y: 220}},
	}
)

// Frame is one rendered status image. It is never modified once returned by
// Render.
type Frame struct {
	rgba *image.RGBA
}

// ColorModel implements image.Image.
func (f *Frame) ColorModel() color.Model {
	return f.rgba.ColorModel()
}

// Bounds implements image.Image.
func (f *Frame) Bounds() image.Rectangle {
	return f.rgba.Bounds()
}

// At implements image.Image.
func (f *Frame) At(x, y int) color.Color {
	return f.rgba.At(x, y)
}

// RGBAAt returns the pixel at (x, y).
func (f *Frame) RGBAAt(x, y int) color.RGBA {
	return f.rgba.RGBAAt(x, y)
}

// Renderer draws frames. It is not safe for concurrent use; font faces keep
// a glyph cache.
type Renderer struct {
	title font.Face
	value font.Face
	label font.Face
}

// NewRenderer returns a Renderer using fonts. Pass GoFonts() when no font
// file is available.
func NewRenderer(fonts *Fonts) *Renderer {
	return &Renderer{
		title: truetype.NewFace(fonts.Bold, &truetype.Options{Size: titleSize}),
		value: truetype.NewFace(fonts.Bold, &truetype.Options{Size: valueSize}),
		label: truetype.NewFace(fonts.Regular, &truetype.Options{Size: labelSize}),
	}
}

// Render draws the CPU and GPU readings. An Absent reading is drawn as
// sensors.Placeholder.
//
// Each half of the screen is clipped to its own column so a wide value can
// never bleed into the other one.
func (r *Renderer) Render(cpu, gpu sensors.Reading) *Frame {
	dc := gg.NewContext(Width, Height)
	dc.SetColor(Background)
	dc.Clear()

	drawText(dc, r.title, Title, titleAt, TitleColor)
	for i, reading := range [2]sensors.Reading{cpu, gpu} {
		col := &columns[i]
		dc.DrawRectangle(col.minX, 0, col.maxX-col.minX, Height)
		dc.Clip()
		drawText(dc, r.value, reading.String(), col.value, col.color)
		drawText(dc, r.label, col.label, col.caption, col.color)
		dc.ResetClip()
	}
	return &Frame{rgba: dc.Image().(*image.RGBA)}
}

// drawText draws s with its top-left corner at p.
func drawText(dc *gg.Context, face font.Face, s string, p image.Point, c color.Color) {
	dc.SetFontFace(face)
	dc.SetColor(c)
	ascent := float64(face.Metrics().Ascent) / 64
	dc.DrawString(s, float64(p.X), float64(p.Y)+ascent)
}
