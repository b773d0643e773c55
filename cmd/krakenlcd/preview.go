// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/GermanBionicSystems/krakenlcd/monitor"
	"github.com/GermanBionicSystems/krakenlcd/termview"
)

func newPreviewCmd(a *app) *cobra.Command {
	var flags readingFlags
	var watch bool
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Draw the frame in the terminal",
		Long: `Draw the frame in the terminal instead of on the LCD. With --watch the
preview is refreshed at the poll interval until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cpu, gpu, release, err := flags.open(a, cmd)
			if err != nil {
				return err
			}
			defer release()
			var view *termview.Dev
			if w := cmd.OutOrStdout(); w == os.Stdout {
				view = termview.New(&termview.DefaultOpts)
			} else {
				view = termview.NewWriter(w, &termview.DefaultOpts)
			}
			defer view.Halt()
			l := a.loop(cpu, gpu, monitor.FromDrawer(view))
			if watch {
				return l.Run(cmd.Context())
			}
			return l.Tick(cmd.Context())
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep refreshing until interrupted")
	return cmd
}
