// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sensors

import (
	"context"
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
	"periph.io/x/host/v3/sysfs"
)

// Zone is a single sysfs thermal sensor. *sysfs.ThermalSensor implements it.
type Zone interface {
	fmt.Stringer
	Type() string
	Sense(e *physic.Env) error
}

// Thermal enumerates the thermal zones and hwmon inputs discovered by the
// periph sysfs driver.
//
// Every zone becomes a chip named after its sysfs node with a single entry
// labelled with the zone type, e.g. "x86_pkg_temp" or "cpu-thermal".
type Thermal struct {
	// Zones defaults to the sensors registered by periph's host.Init().
	Zones func() ([]Zone, error)
}

func (t *Thermal) String() string {
	return "thermal"
}

// Enumerate implements Enumerator. Zones that fail to sense are skipped.
func (t *Thermal) Enumerate(ctx context.Context) ([]Chip, error) {
	zonesFn := t.Zones
	if zonesFn == nil {
		zonesFn = sysfsZones
	}
	zones, err := zonesFn()
	if err != nil {
		return nil, err
	}
	var chips []Chip
	for _, z := range zones {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var e physic.Env
		if err := z.Sense(&e); err != nil {
			continue
		}
		chips = append(chips, Chip{
			Name:    z.String(),
			Entries: []Entry{{Label: z.Type(), Current: e.Temperature}},
		})
	}
	return chips, nil
}

func sysfsZones() ([]Zone, error) {
	// Init is idempotent; the driver registry keeps its first result.
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("sensors: periph host init: %w", err)
	}
	if len(sysfs.ThermalSensors) == 0 {
		return nil, ErrNoSensors
	}
	zones := make([]Zone, 0, len(sysfs.ThermalSensors))
	for _, s := range sysfs.ThermalSensors {
		zones = append(zones, s)
	}
	return zones, nil
}

var _ Zone = &sysfs.ThermalSensor{}
var _ Enumerator = &Thermal{}
