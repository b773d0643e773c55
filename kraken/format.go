// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package kraken

import (
	"fmt"
	"strings"
)

// ImageFormat is the encoding of the frame file handed to liquidctl.
type ImageFormat int

const (
	PNG ImageFormat = iota
	JPEG

	// DefaultFormat is the format used when not set explicitly in options.
	DefaultFormat = PNG
)

func (f ImageFormat) String() string {
	switch f {
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	default:
		return fmt.Sprint(int(f))
	}
}

// Ext returns the usual file extension, including the dot.
func (f ImageFormat) Ext() string {
	switch f {
	case PNG:
		return ".png"
	case JPEG:
		return ".jpg"
	}
	return ""
}

// ImageFormatFromString returns the ImageFormat value for the given format
// abbreviation. The comparison is case-insensitive.
func ImageFormatFromString(value string) (ImageFormat, error) {
	switch strings.ToLower(value) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	}
	return DefaultFormat, fmt.Errorf("kraken: unrecognized image format %q", value)
}
