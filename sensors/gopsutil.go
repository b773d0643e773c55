// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sensors

import (
	"context"
	"errors"
	"strings"

	"github.com/shirou/gopsutil/host"
	"periph.io/x/conn/v3/physic"
)

// Gopsutil enumerates sensors through gopsutil.
//
// gopsutil flattens every hwmon temp*_* file into a single key such as
// "coretemp_packageid0_input" or "coretemp_packageid0_crit", lower cased and
// stripped of spaces. Only the "_input" keys are current readings; the chip
// name is the text up to the first underscore and the label is the rest
// without the suffix, which is enough for the CPU markers to match. Without
// hwmon, gopsutil falls back to thermal zones keyed by the bare zone type,
// which is then both the chip name and the label.
type Gopsutil struct {
	// Stats defaults to host.SensorsTemperaturesWithContext.
	Stats func(ctx context.Context) ([]host.TemperatureStat, error)
}

func (g *Gopsutil) String() string {
	return "gopsutil"
}

// Enumerate implements Enumerator.
//
// gopsutil reports unreadable sensors as *host.Warnings alongside the ones it
// could read; those partial results are kept.
func (g *Gopsutil) Enumerate(ctx context.Context) ([]Chip, error) {
	stats := g.Stats
	if stats == nil {
		stats = host.SensorsTemperaturesWithContext
	}
	temps, err := stats(ctx)
	if err != nil {
		var warns *host.Warnings
		if !errors.As(err, &warns) {
			return nil, err
		}
	}

	zones := true
	for _, t := range temps {
		if strings.HasSuffix(t.SensorKey, inputSuffix) {
			zones = false
			break
		}
	}

	var chips []Chip
	index := map[string]int{}
	for _, t := range temps {
		name, label := t.SensorKey, t.SensorKey
		if !zones {
			var ok bool
			if name, label, ok = splitSensorKey(t.SensorKey); !ok {
				continue
			}
		}
		i, ok := index[name]
		if !ok {
			i = len(chips)
			index[name] = i
			chips = append(chips, Chip{Name: name})
		}
		chips[i].Entries = append(chips[i].Entries, Entry{
			Label:   label,
			Current: physic.ZeroCelsius + physic.Temperature(t.Temperature*float64(physic.Celsius)),
		})
	}
	return chips, nil
}

const inputSuffix = "_input"

// splitSensorKey splits a hwmon key into chip name and label. ok is false for
// limits and alarms such as "_crit", "_max" or "_critalarm".
func splitSensorKey(key string) (name, label string, ok bool) {
	if !strings.HasSuffix(key, inputSuffix) {
		return "", "", false
	}
	name, label, _ = strings.Cut(strings.TrimSuffix(key, inputSuffix), "_")
	return name, label, name != ""
}

var _ Enumerator = &Gopsutil{}
