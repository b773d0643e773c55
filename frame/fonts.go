// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package frame

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"github.com/spf13/afero"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Font files installed by the DejaVu package on Arch Linux.
const (
	DefaultBoldPath    = "/usr/share/fonts/TTF/DejaVuSans-Bold.ttf"
	DefaultRegularPath = "/usr/share/fonts/TTF/DejaVuSans.ttf"
)

// Fonts holds the two font families the layout uses.
type Fonts struct {
	Bold    *truetype.Font
	Regular *truetype.Font
}

// LoadFonts parses the bold and regular TrueType files from fs.
func LoadFonts(fs afero.Fs, boldPath, regularPath string) (*Fonts, error) {
	bold, err := parseFile(fs, boldPath)
	if err != nil {
		return nil, err
	}
	regular, err := parseFile(fs, regularPath)
	if err != nil {
		return nil, err
	}
	return &Fonts{Bold: bold, Regular: regular}, nil
}

// GoFonts returns the Go Bold and Go Regular fonts embedded in the binary.
//
// They are the fallback when the configured font files are missing and keep
// rendering independent of the host.
func GoFonts() *Fonts {
	return &Fonts{Bold: mustParse(gobold.TTF), Regular: mustParse(goregular.TTF)}
}

func parseFile(fs afero.Fs, path string) (*truetype.Font, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("frame: load font: %w", err)
	}
	f, err := truetype.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("frame: parse font %s: %w", path, err)
	}
	return f, nil
}

func mustParse(ttf []byte) *truetype.Font {
	f, err := truetype.Parse(ttf)
	if err != nil {
		panic(err)
	}
	return f
}
