// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config loads the krakenlcd TOML configuration.
//
// Every key is optional. A missing file, or a missing key, keeps the default
// which reproduces the behavior of the fixed-constant monitor: poll every
// two seconds, hwmon sensors, GPU 0, liquidctl matching "kraken" and the
// frame written to /tmp/nzxt_lcd.png.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"go.uber.org/zap/zapcore"

	"github.com/GermanBionicSystems/krakenlcd/frame"
	"github.com/GermanBionicSystems/krakenlcd/kraken"
	"github.com/GermanBionicSystems/krakenlcd/liquidctl"
	"github.com/GermanBionicSystems/krakenlcd/monitor"
	"github.com/GermanBionicSystems/krakenlcd/sensors"
)

// Sensor sources.
const (
	SourceHwmon    = "hwmon"
	SourceGopsutil = "gopsutil"
	SourceThermal  = "thermal"
)

// Config holds all krakenlcd settings.
type Config struct {
	Poll    PollConfig    `toml:"poll"`
	Sensors SensorsConfig `toml:"sensors"`
	Device  DeviceConfig  `toml:"device"`
	Fonts   FontsConfig   `toml:"fonts"`
	Log     LogConfig     `toml:"log"`
}

// PollConfig paces the loop.
type PollConfig struct {
	Interval Duration `toml:"interval"`
}

// SensorsConfig selects where temperatures come from.
type SensorsConfig struct {
	Source    string   `toml:"source"`
	HwmonRoot string   `toml:"hwmon_root"`
	GPUIndex  int      `toml:"gpu_index"`
	Timeout   Duration `toml:"timeout"`
}

// DeviceConfig describes how frames reach the LCD.
type DeviceConfig struct {
	Match     string   `toml:"match"`
	Liquidctl string   `toml:"liquidctl"`
	ImagePath string   `toml:"image_path"`
	Format    string   `toml:"format"`
	Timeout   Duration `toml:"timeout"`
}

// FontsConfig points at the TrueType files.
type FontsConfig struct {
	Bold    string `toml:"bold"`
	Regular string `toml:"regular"`
}

// LogConfig configures zap.
type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Poll: PollConfig{
			Interval: Duration(monitor.DefaultInterval),
		},
		Sensors: SensorsConfig{
			Source:    SourceHwmon,
			HwmonRoot: sensors.DefaultHwmonRoot,
			GPUIndex:  0,
			Timeout:   Duration(monitor.DefaultSensorTimeout),
		},
		Device: DeviceConfig{
			Match:     liquidctl.DefaultMatch,
			Liquidctl: liquidctl.DefaultPath,
			ImagePath: kraken.DefaultImagePath,
			Format:    "png",
			Timeout:   Duration(liquidctl.DefaultTimeout),
		},
		Fonts: FontsConfig{
			Bold:    frame.DefaultBoldPath,
			Regular: frame.DefaultRegularPath,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/krakenlcd/config.toml, or the
// platform equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "krakenlcd", "config.toml")
}

// Load reads path from fsys on top of the defaults and validates the result.
//
// A missing file is not an error. Unknown keys are. When device.format is set
// without device.image_path, the default path takes the format's extension.
func Load(fsys afero.Fs, path string) (Config, error) {
	cfg := Default()
	b, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	md, err := toml.Decode(string(b), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return cfg, fmt.Errorf("config: %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if !md.IsDefined("device", "image_path") {
		if f, err := cfg.ImageFormat(); err == nil {
			p := cfg.Device.ImagePath
			cfg.Device.ImagePath = strings.TrimSuffix(p, filepath.Ext(p)) + f.Ext()
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Write encodes c as TOML.
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Poll.Interval <= 0 {
		return fmt.Errorf("poll.interval must be positive, got %s", c.Poll.Interval)
	}
	switch c.Sensors.Source {
	case SourceHwmon, SourceGopsutil, SourceThermal:
	default:
		return fmt.Errorf("sensors.source must be one of %s, %s or %s, got %q", SourceHwmon, SourceGopsutil, SourceThermal, c.Sensors.Source)
	}
	if c.Sensors.Source == SourceHwmon && c.Sensors.HwmonRoot == "" {
		return errors.New("sensors.hwmon_root is empty")
	}
	if c.Sensors.GPUIndex < 0 {
		return fmt.Errorf("sensors.gpu_index must not be negative, got %d", c.Sensors.GPUIndex)
	}
	if c.Sensors.Timeout <= 0 {
		return fmt.Errorf("sensors.timeout must be positive, got %s", c.Sensors.Timeout)
	}
	if c.Device.Match == "" {
		return errors.New("device.match is empty")
	}
	if c.Device.Liquidctl == "" {
		return errors.New("device.liquidctl is empty")
	}
	if c.Device.ImagePath == "" {
		return errors.New("device.image_path is empty")
	}
	f, err := c.ImageFormat()
	if err != nil {
		return fmt.Errorf("device.format: %w", err)
	}
	// An unknown extension is left alone; liquidctl sniffs the content.
	if ext := filepath.Ext(c.Device.ImagePath); ext != "" {
		if g, err := kraken.ImageFormatFromString(strings.TrimPrefix(ext, ".")); err == nil && g != f {
			return fmt.Errorf("device.image_path %q is a %s file name but device.format is %s", c.Device.ImagePath, g, f)
		}
	}
	if c.Device.Timeout <= 0 {
		return fmt.Errorf("device.timeout must be positive, got %s", c.Device.Timeout)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// ImageFormat returns the parsed device.format.
func (c *Config) ImageFormat() (kraken.ImageFormat, error) {
	return kraken.ImageFormatFromString(c.Device.Format)
}

// Duration is a time.Duration written as a string such as "2s" or "500ms".
type Duration time.Duration

// D returns d as a time.Duration.
func (d Duration) D() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}
