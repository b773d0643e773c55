// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package liquidctl_test

import (
	"context"
	"log"

	"github.com/GermanBionicSystems/krakenlcd/liquidctl"
)

func Example() {
	c := liquidctl.New(liquidctl.DefaultPath, liquidctl.DefaultMatch)
	ctx := context.Background()
	if res := c.Initialize(ctx); !res.OK() {
		log.Printf("initialize: %v", res.Error())
	}
	if res := c.SetScreen(ctx, liquidctl.Static, "/tmp/nzxt_lcd.png"); !res.OK() {
		log.Fatal(res.Error())
	}
}
