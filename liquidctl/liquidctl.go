// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package liquidctl

import (
	"context"
	"fmt"
)

// DefaultMatch selects the Kraken among the devices liquidctl finds.
const DefaultMatch = "kraken"

// Mode is the LCD screen mode used to upload an image.
type Mode string

// Upload modes. Firmware that rejects static images still accepts a single
// frame gif upload of the same file.
const (
	Static Mode = "static"
	GIF    Mode = "gif"
)

func (m Mode) String() string {
	return string(m)
}

// Client issues Kraken commands through a Runner.
type Client struct {
	Runner Runner
	// Match is passed as --match to target a single device.
	Match string
}

// New returns a Client that executes the liquidctl binary.
func New(path, match string) *Client {
	return &Client{Runner: &Exec{Path: path}, Match: match}
}

func (c *Client) String() string {
	return fmt.Sprintf("liquidctl(%s)", c.Match)
}

// Initialize runs "initialize all".
func (c *Client) Initialize(ctx context.Context) *Result {
	return c.Runner.Run(ctx, "initialize", "all")
}

// SetScreen uploads the image at path to the LCD of the matched device.
func (c *Client) SetScreen(ctx context.Context, mode Mode, path string) *Result {
	return c.Runner.Run(ctx, "--match", c.Match, "set", "lcd", "screen", string(mode), path)
}
