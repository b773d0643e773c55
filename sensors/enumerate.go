// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sensors

import (
	"context"
	"errors"

	"periph.io/x/conn/v3/physic"
)

// ErrNoSensors is returned by an Enumerator when the host exposes no sensor
// source at all, as opposed to exposing sensors that simply don't match.
var ErrNoSensors = errors.New("sensors: no sensor source available")

// Entry is one temperature exposed by a chip.
type Entry struct {
	Label   string
	Current physic.Temperature
}

// Chip is a sensor-reporting device and its entries, in the order the host
// exposes them.
type Chip struct {
	Name    string
	Entries []Entry
}

// Enumerator lists every temperature sensor currently exposed by the host.
//
// The returned chips are ordered; callers depend on the order to pick the
// first match.
type Enumerator interface {
	Enumerate(ctx context.Context) ([]Chip, error)
}

// EnumeratorFunc adapts a function to Enumerator.
type EnumeratorFunc func(ctx context.Context) ([]Chip, error)

// Enumerate implements Enumerator.
func (f EnumeratorFunc) Enumerate(ctx context.Context) ([]Chip, error) {
	return f(ctx)
}

// Bounded runs fn and returns its result, or returns ctx.Err() as soon as ctx
// is done.
//
// fn keeps running in the background when ctx ends first; its result is then
// dropped. This keeps a hung sysfs read or driver call from stalling the
// caller.
func Bounded[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn()
		ch <- result{v, err}
	}()
	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
