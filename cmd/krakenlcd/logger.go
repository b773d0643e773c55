// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/GermanBionicSystems/krakenlcd/config"
)

// debugEnv enables development logging at debug level when set to any value.
const debugEnv = "KRAKENLCD_DEBUG"

// newLogger builds the process logger. The development encoder with colored
// levels is used when debugging, JSON otherwise.
func newLogger(c config.LogConfig, debug bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if _, ok := os.LookupEnv(debugEnv); ok {
		debug = true
	}
	if debug {
		level = zapcore.DebugLevel
	}

	var zc zap.Config
	if debug || c.Development {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
