// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// krakenlcd shows the CPU and GPU temperatures on the LCD of an NZXT Kraken
// all-in-one cooler.
//
// Without a subcommand it refreshes the LCD every two seconds until
// interrupted. See "krakenlcd help" for the other commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(newApp(), version).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "krakenlcd:", err)
		os.Exit(1)
	}
}
