// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"

	"github.com/GermanBionicSystems/krakenlcd/sensors"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Keep the LCD updated until interrupted (default)",
		Args:  cobra.NoArgs,
		RunE:  a.runLoop,
	}
}

func (a *app) runLoop(cmd *cobra.Command, args []string) error {
	src, err := a.enumerator()
	if err != nil {
		return err
	}
	lcd, err := a.lcd()
	if err != nil {
		return err
	}
	gpu, err := a.openGPU()
	if err != nil {
		return err
	}
	defer a.closeGPU(gpu)
	defer lcd.Halt()

	return a.loop(sensors.NewCPU(src), gpu, lcd).Run(cmd.Context())
}
