// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/GermanBionicSystems/krakenlcd/sensors"
)

func newSensorsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sensors",
		Short: "List temperature sensors and the ones krakenlcd would use",
		Long: `List every temperature sensor exposed by the configured source. The entry
marked with * is the one shown as the CPU temperature.`,
		Args: cobra.NoArgs,
		RunE: a.listSensors,
	}
}

func (a *app) listSensors(cmd *cobra.Command, args []string) error {
	src, err := a.enumerator()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Sensors.Timeout.D())
	defer cancel()
	chips, err := sensors.Bounded(ctx, func() ([]sensors.Chip, error) {
		return src.Enumerate(ctx)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	selChip, selEntry, found := sensors.SelectCPU(chips)
	marked := false

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tCHIP\tLABEL\tTEMP")
	for _, chip := range chips {
		for _, e := range chip.Entries {
			mark := ""
			if found && !marked && chip.Name == selChip.Name && e == selEntry {
				mark = "*"
				marked = true
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", mark, chip.Name, e.Label, sensors.FromTemperature(e.Current))
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if !found {
		fmt.Fprintf(out, "\nNo CPU package sensor found; the CPU shows %s.\n", sensors.Placeholder)
	}

	gpu, err := a.openGPU()
	if err != nil {
		fmt.Fprintf(out, "\nGPU: %v\n", err)
		return nil
	}
	defer a.closeGPU(gpu)
	r, err := gpu.Read(ctx)
	if err != nil {
		fmt.Fprintf(out, "\n%s: %v\n", gpu, err)
		return nil
	}
	fmt.Fprintf(out, "\n%s: %s\n", gpu, r)
	return nil
}
