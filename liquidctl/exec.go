// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package liquidctl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// DefaultPath is looked up in $PATH.
const DefaultPath = "liquidctl"

// DefaultTimeout bounds a single invocation.
const DefaultTimeout = 10 * time.Second

// maxStderr is the number of trailing stderr bytes kept in a Result.
const maxStderr = 4096

// Result is the outcome of one invocation.
type Result struct {
	Args     []string
	ExitCode int
	Stderr   string
	// Err is set when the process could not be started, timed out or was
	// killed. It is nil for a clean non-zero exit.
	Err error
}

// OK reports whether the command ran to completion and exited with 0.
func (r *Result) OK() bool {
	return r.Err == nil && r.ExitCode == 0
}

// Error returns a description of the failure, or nil when OK.
func (r *Result) Error() error {
	if r.OK() {
		return nil
	}
	cmd := "liquidctl " + strings.Join(r.Args, " ")
	if r.Err != nil {
		return fmt.Errorf("liquidctl: %s: %w", cmd, r.Err)
	}
	if r.Stderr != "" {
		return fmt.Errorf("liquidctl: %s: exit status %d: %s", cmd, r.ExitCode, r.Stderr)
	}
	return fmt.Errorf("liquidctl: %s: exit status %d", cmd, r.ExitCode)
}

// Runner runs liquidctl with args.
type Runner interface {
	Run(ctx context.Context, args ...string) *Result
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, args ...string) *Result

// Run implements Runner.
func (f RunnerFunc) Run(ctx context.Context, args ...string) *Result {
	return f(ctx, args...)
}

// Exec runs the liquidctl binary as a subprocess.
type Exec struct {
	// Path of the binary. Defaults to DefaultPath.
	Path string
	// Timeout of each invocation. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// Run implements Runner.
//
// Stdout is discarded. The process is killed when ctx is done or Timeout
// expires, whichever comes first.
func (e *Exec) Run(ctx context.Context, args ...string) *Result {
	path := e.Path
	if path == "" {
		path = DefaultPath
	}
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res := &Result{Args: args}
	stderr := &tailBuffer{max: maxStderr}
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stderr = stderr
	// Children inheriting stderr must not hold Wait past the kill.
	cmd.WaitDelay = time.Second
	err := cmd.Run()
	res.Stderr = strings.TrimSpace(stderr.String())

	var exitErr *exec.ExitError
	switch {
	case ctx.Err() != nil:
		res.ExitCode = -1
		res.Err = ctx.Err()
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		if res.ExitCode < 0 {
			// Terminated by a signal.
			res.Err = err
		}
	case err != nil:
		res.ExitCode = -1
		res.Err = err
	}
	return res
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
	max int
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, err := b.buf.Write(p)
	if b.buf.Len() > b.max {
		data := b.buf.Bytes()
		tail := append([]byte(nil), data[len(data)-b.max:]...)
		b.buf.Reset()
		b.buf.Write(tail)
	}
	return n, err
}

func (b *tailBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

var _ Runner = &Exec{}
