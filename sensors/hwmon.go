// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sensors

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"periph.io/x/conn/v3/physic"
)

// DefaultHwmonRoot is where Linux exposes hwmon chips.
const DefaultHwmonRoot = "/sys/class/hwmon"

// Hwmon enumerates the hwmon sysfs tree.
//
// Each chip directory holds a "name" file and one tempN_input file per
// sensor in millidegrees Celsius, with an optional tempN_label next to it.
// Some distributions put the sensor files under an intermediate "device"
// directory; both layouts are supported.
//
// Chip directories and sensor files are visited in lexicographic order, so
// hwmon10 comes before hwmon2, and chips sharing a name are merged into one
// in the position of the first, the same way psutil reports them.
type Hwmon struct {
	Fs   afero.Fs
	Root string
}

// NewHwmon returns a Hwmon reading the real sysfs.
func NewHwmon() *Hwmon {
	return &Hwmon{Fs: afero.NewOsFs(), Root: DefaultHwmonRoot}
}

func (h *Hwmon) String() string {
	return "hwmon"
}

// Enumerate implements Enumerator.
//
// Entries whose input can't be read are skipped, the same way a sensor that
// went offline disappears from lm-sensors output.
func (h *Hwmon) Enumerate(ctx context.Context) ([]Chip, error) {
	root := h.Root
	if root == "" {
		root = DefaultHwmonRoot
	}
	infos, err := afero.ReadDir(h.Fs, root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSensors, err)
	}
	dirs := make([]string, 0, len(infos))
	for _, fi := range infos {
		dirs = append(dirs, fi.Name())
	}
	sort.Strings(dirs)

	var chips []Chip
	index := map[string]int{}
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		chip, ok := h.readChip(path.Join(root, dir))
		if !ok {
			continue
		}
		if i, ok := index[chip.Name]; ok {
			chips[i].Entries = append(chips[i].Entries, chip.Entries...)
			continue
		}
		index[chip.Name] = len(chips)
		chips = append(chips, chip)
	}
	return chips, nil
}

func (h *Hwmon) readChip(chipDir string) (Chip, bool) {
	dir := chipDir
	inputs, _ := afero.Glob(h.Fs, path.Join(dir, "temp*_input"))
	if len(inputs) == 0 {
		dir = path.Join(chipDir, "device")
		inputs, _ = afero.Glob(h.Fs, path.Join(dir, "temp*_input"))
		if len(inputs) == 0 {
			return Chip{}, false
		}
	}
	sort.Strings(inputs)

	chip := Chip{Name: path.Base(chipDir)}
	for _, d := range []string{chipDir, dir} {
		if name, err := h.readString(path.Join(d, "name")); err == nil && name != "" {
			chip.Name = name
			break
		}
	}
	for _, input := range inputs {
		raw, err := h.readString(input)
		if err != nil {
			continue
		}
		milli, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		prefix := strings.TrimSuffix(path.Base(input), "_input")
		label, err := h.readString(path.Join(dir, prefix+"_label"))
		if err != nil || label == "" {
			label = prefix
		}
		chip.Entries = append(chip.Entries, Entry{
			Label:   label,
			Current: physic.ZeroCelsius + physic.Temperature(milli)*physic.MilliCelsius,
		})
	}
	return chip, len(chip.Entries) != 0
}

func (h *Hwmon) readString(p string) (string, error) {
	b, err := afero.ReadFile(h.Fs, p)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
