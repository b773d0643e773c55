// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package kraken

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"

	"github.com/GermanBionicSystems/krakenlcd/liquidctl"
)

// DefaultImagePath lives on tmpfs on most distributions.
const DefaultImagePath = "/tmp/nzxt_lcd.png"

// Opts defines the options for the device.
type Opts struct {
	// Width and Height of the LCD in pixels.
	Width, Height int
	// ImagePath is rewritten with every frame and passed to liquidctl.
	ImagePath string
	// Format of the file at ImagePath.
	Format ImageFormat
}

// DefaultOpts is the recommended default options for a Kraken Z LCD.
var DefaultOpts = Opts{
	Width:     320,
	Height:    320,
	ImagePath: DefaultImagePath,
	Format:    DefaultFormat,
}

// Dev is a handle to the LCD.
type Dev struct {
	ctl  *liquidctl.Client
	fs   afero.Fs
	opts Opts
	log  *zap.Logger

	mu     sync.Mutex
	buffer *image.RGBA
	enc    bytes.Buffer
}

// New returns a Dev that uploads through ctl and writes frames to fs.
//
// A nil log discards all output.
func New(ctl *liquidctl.Client, fs afero.Fs, opts *Opts, log *zap.Logger) *Dev {
	if log == nil {
		log = zap.NewNop()
	}
	buffer := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	// The alpha channel starts fully transparent; make it opaque black.
	draw.Draw(buffer, buffer.Bounds(), image.Black, image.Point{}, draw.Src)
	return &Dev{
		ctl:    ctl,
		fs:     fs,
		opts:   *opts,
		log:    log.With(zap.String("package", "kraken")),
		buffer: buffer,
	}
}

func (d *Dev) String() string {
	return fmt.Sprintf("Kraken{%s, %dx%d}", d.ctl, d.opts.Width, d.opts.Height)
}

// Init initializes the cooler.
//
// The LCD usually accepts images without it, so callers may log the error and
// carry on.
func (d *Dev) Init(ctx context.Context) error {
	res := d.ctl.Initialize(ctx)
	if !res.OK() {
		return res.Error()
	}
	d.log.Debug("initialized", zap.Strings("args", res.Args))
	return nil
}

// Publish writes img to the frame file and uploads it to the LCD.
//
// The static upload is tried first; if it does not succeed the same file is
// uploaded once in gif mode and the outcome of that attempt is ignored. The
// returned error only reports a failure to produce the frame file.
func (d *Dev) Publish(ctx context.Context, img image.Image) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.publishLocked(ctx, img)
}

func (d *Dev) publishLocked(ctx context.Context, img image.Image) error {
	if got, want := img.Bounds().Size(), d.buffer.Bounds().Size(); got != want {
		return fmt.Errorf("kraken: frame is %v, LCD is %v", got, want)
	}
	d.enc.Reset()
	if err := Encode(&d.enc, img, d.opts.Format); err != nil {
		return fmt.Errorf("kraken: encode frame: %w", err)
	}
	// WriteFile closes the file before liquidctl reads it.
	if err := afero.WriteFile(d.fs, d.opts.ImagePath, d.enc.Bytes(), 0o644); err != nil {
		return fmt.Errorf("kraken: write frame: %w", err)
	}

	res := d.ctl.SetScreen(ctx, liquidctl.Static, d.opts.ImagePath)
	if res.OK() {
		d.log.Debug("frame uploaded", zap.Stringer("mode", liquidctl.Static))
		return nil
	}
	d.log.Debug("static upload failed, retrying in gif mode", zap.Error(res.Error()))
	_ = d.ctl.SetScreen(ctx, liquidctl.GIF, d.opts.ImagePath)
	return nil
}

// Halt implements conn.Resource.
//
// The LCD keeps showing the last uploaded frame.
func (d *Dev) Halt() error {
	return nil
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
// The area is composed into the device buffer and the whole buffer is then
// published.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	draw.Draw(d.buffer, r, src, sp, draw.Src)
	return d.publishLocked(context.Background(), d.buffer)
}

var _ display.Drawer = &Dev{}
var _ conn.Resource = &Dev{}
