// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sensors reads the CPU package temperature of the host.
//
// The host exposes its temperature sensors as a list of chips, each with an
// ordered list of labelled entries. An Enumerator produces that list from one
// of three sources:
//
//   - Hwmon reads /sys/class/hwmon directly (name, tempN_label, tempN_input);
//   - Gopsutil uses github.com/shirou/gopsutil;
//   - Thermal uses the periph sysfs thermal zone driver.
//
// CPU then picks the first entry whose label looks like a CPU package
// temperature ("Package id 0" on Intel, "Tctl" on AMD, anything containing
// "cpu"). When nothing matches the reading is Absent, which is not an error.
package sensors
