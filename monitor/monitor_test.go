// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package monitor

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/draw"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GermanBionicSystems/krakenlcd/frame"
	"github.com/GermanBionicSystems/krakenlcd/kraken"
	"github.com/GermanBionicSystems/krakenlcd/liquidctl"
	"github.com/GermanBionicSystems/krakenlcd/sensors"
)

type sensorFunc func(ctx context.Context) (sensors.Reading, error)

func (f sensorFunc) Read(ctx context.Context) (sensors.Reading, error) {
	return f(ctx)
}

func fixed(r sensors.Reading) Sensor {
	return sensorFunc(func(context.Context) (sensors.Reading, error) { return r, nil })
}

// fakeDisplay records published frames and the clock time of each.
type fakeDisplay struct {
	now        func() time.Time
	initErr    error
	publishErr error

	mu     sync.Mutex
	inits  int
	frames []image.Image
	times  []time.Time
}

func (d *fakeDisplay) Init(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inits++
	return d.initErr
}

func (d *fakeDisplay) Publish(ctx context.Context, img image.Image) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frames = append(d.frames, img)
	if d.now != nil {
		d.times = append(d.times, d.now())
	}
	return d.publishErr
}

func (d *fakeDisplay) published() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.frames)
}

// countingRenderer wraps the real renderer.
type countingRenderer struct {
	r     *frame.Renderer
	calls int
}

func (c *countingRenderer) Render(cpu, gpu sensors.Reading) *frame.Frame {
	c.calls++
	return c.r.Render(cpu, gpu)
}

// recorder is a liquidctl runner answering with queued exit codes.
type recorder struct {
	mu    sync.Mutex
	codes []int
	calls [][]string
}

func (r *recorder) Run(ctx context.Context, args ...string) *liquidctl.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, args)
	res := &liquidctl.Result{Args: args}
	if len(r.codes) != 0 {
		res.ExitCode = r.codes[0]
		r.codes = r.codes[1:]
	}
	return res
}

func screenCalls(calls [][]string) []string {
	var modes []string
	for _, c := range calls {
		if len(c) == 7 && c[2] == "set" {
			modes = append(modes, c[5])
		}
	}
	return modes
}

// endToEnd wires the real renderer and LCD device to fake sensors and a fake
// liquidctl.
func endToEnd(cpu, gpu sensors.Reading, codes ...int) (*Loop, *recorder, afero.Fs) {
	fs := afero.NewMemMapFs()
	r := &recorder{codes: codes}
	dev := kraken.New(&liquidctl.Client{Runner: r, Match: liquidctl.DefaultMatch}, fs, &kraken.DefaultOpts, nil)
	l := New(Config{
		CPU:      fixed(cpu),
		GPU:      fixed(gpu),
		Renderer: frame.NewRenderer(frame.GoFonts()),
		Display:  dev,
	})
	return l, r, fs
}

func decodeFrame(t *testing.T, fs afero.Fs) image.Image {
	b, err := afero.ReadFile(fs, kraken.DefaultImagePath)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	return img
}

func assertSameImage(t *testing.T, want *frame.Frame, got image.Image) {
	require.Equal(t, want.Bounds(), got.Bounds())
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			wr, wg, wb, _ := want.At(x, y).RGBA()
			gr, gg, gb, _ := got.At(x, y).RGBA()
			if wr != gr || wg != gg || wb != gb {
				t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, got.At(x, y), want.At(x, y))
			}
		}
	}
}

func TestTick_endToEnd(t *testing.T) {
	l, r, fs := endToEnd(sensors.Degrees(55), sensors.Degrees(68))
	require.NoError(t, l.Tick(context.Background()))
	assert.Equal(t, []string{"static"}, screenCalls(r.calls))
	assert.Len(t, r.calls, 1)

	img := decodeFrame(t, fs)
	want := frame.NewRenderer(frame.GoFonts()).Render(sensors.Degrees(55), sensors.Degrees(68))
	assertSameImage(t, want, img)

	blue, amber := 0, 0
	for y := 120; y < 220; y++ {
		for x := 0; x < 190; x++ {
			if r, _, b, _ := img.At(x, y).RGBA(); b > r {
				blue++
			}
		}
		for x := 190; x < frame.Width; x++ {
			if r, _, b, _ := img.At(x, y).RGBA(); r > b {
				amber++
			}
		}
	}
	assert.NotZero(t, blue)
	assert.NotZero(t, amber)
}

func TestTick_absentCPU(t *testing.T) {
	l, r, fs := endToEnd(sensors.Absent, sensors.Degrees(40))
	require.NoError(t, l.Tick(context.Background()))
	assert.Equal(t, []string{"static"}, screenCalls(r.calls))

	want := frame.NewRenderer(frame.GoFonts()).Render(sensors.Absent, sensors.Degrees(40))
	assertSameImage(t, want, decodeFrame(t, fs))
}

func TestTick_fallback(t *testing.T) {
	l, r, _ := endToEnd(sensors.Degrees(55), sensors.Degrees(68), 1, 1)
	require.NoError(t, l.Tick(context.Background()), "the fallback result never escalates")
	assert.Equal(t, []string{"static", "gif"}, screenCalls(r.calls))
}

func TestRun_initializesOnce(t *testing.T) {
	l, r, _ := endToEnd(sensors.Degrees(55), sensors.Degrees(68))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	require.Eventually(t, func() bool {
		r.mu.Lock()
		defer r.mu.Unlock()
		return len(r.calls) >= 2
	}, 5*time.Second, time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	assert.Equal(t, []string{"initialize", "all"}, r.calls[0])
	for _, c := range r.calls[1:] {
		assert.NotEqual(t, "initialize", c[0])
	}
}

func TestTick_sensorFailureSkipsTick(t *testing.T) {
	boom := errors.New("hwmon: read failed")
	for _, tc := range []struct {
		name     string
		cpu, gpu Sensor
	}{
		{"cpu", sensorFunc(func(context.Context) (sensors.Reading, error) { return sensors.Absent, boom }), fixed(sensors.Degrees(40))},
		{"gpu", fixed(sensors.Degrees(55)), sensorFunc(func(context.Context) (sensors.Reading, error) { return sensors.Absent, boom })},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d := &fakeDisplay{}
			rend := &countingRenderer{r: frame.NewRenderer(frame.GoFonts())}
			l := New(Config{CPU: tc.cpu, GPU: tc.gpu, Renderer: rend, Display: d})
			err := l.Tick(context.Background())
			assert.ErrorIs(t, err, boom)
			assert.Contains(t, err.Error(), "monitor: "+tc.name)
			assert.Zero(t, rend.calls)
			assert.Zero(t, d.published())
		})
	}
}

func TestTick_sensorTimeout(t *testing.T) {
	hang := make(chan struct{})
	defer close(hang)
	d := &fakeDisplay{}
	l := New(Config{
		CPU: sensorFunc(func(context.Context) (sensors.Reading, error) {
			<-hang
			return sensors.Degrees(1), nil
		}),
		GPU:           fixed(sensors.Degrees(40)),
		Renderer:      frame.NewRenderer(frame.GoFonts()),
		Display:       d,
		SensorTimeout: 20 * time.Millisecond,
	})
	err := l.Tick(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, d.published())
}

func TestTick_publishError(t *testing.T) {
	d := &fakeDisplay{publishErr: errors.New("read-only file system")}
	l := New(Config{
		CPU:      fixed(sensors.Degrees(55)),
		GPU:      fixed(sensors.Degrees(68)),
		Renderer: frame.NewRenderer(frame.GoFonts()),
		Display:  d,
	})
	err := l.Tick(context.Background())
	assert.ErrorIs(t, err, d.publishErr)
	assert.Equal(t, 1, d.published())
}

// signalingClock reports every timer the loop waits on.
type signalingClock struct {
	*clock.Mock
	timers chan time.Duration
}

func (c *signalingClock) Timer(d time.Duration) *clock.Timer {
	t := c.Mock.Timer(d)
	c.timers <- d
	return t
}

func waitTimer(t *testing.T, c *signalingClock) time.Duration {
	select {
	case d := <-c.timers:
		return d
	case <-time.After(5 * time.Second):
		t.Fatal("loop is not waiting")
		return 0
	}
}

func TestRun_cadence(t *testing.T) {
	mock := clock.NewMock()
	clk := &signalingClock{Mock: mock, timers: make(chan time.Duration)}
	d := &fakeDisplay{now: mock.Now}
	l := New(Config{
		CPU:      fixed(sensors.Degrees(55)),
		GPU:      fixed(sensors.Degrees(68)),
		Renderer: frame.NewRenderer(frame.GoFonts()),
		Display:  d,
		Clock:    clk,
	})
	assert.Equal(t, Uninitialized, l.State())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	for i := 0; i < 3; i++ {
		assert.Equal(t, DefaultInterval, waitTimer(t, clk))
		assert.Equal(t, Running, l.State())
		mock.Add(DefaultInterval)
	}
	waitTimer(t, clk)
	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, Stopped, l.State())

	require.Len(t, d.times, 4)
	for i := 1; i < len(d.times); i++ {
		assert.Equal(t, DefaultInterval, d.times[i].Sub(d.times[i-1]))
	}
	assert.Equal(t, 1, d.inits)
	assert.Equal(t, uint64(4), l.Ticks())
}

func TestRun_continuesAfterFailures(t *testing.T) {
	mock := clock.NewMock()
	clk := &signalingClock{Mock: mock, timers: make(chan time.Duration)}
	calls := 0
	core, logs := observer.New(zap.WarnLevel)
	d := &fakeDisplay{initErr: errors.New("no device")}
	l := New(Config{
		CPU: sensorFunc(func(context.Context) (sensors.Reading, error) {
			calls++
			if calls == 1 {
				return sensors.Absent, errors.New("transient")
			}
			return sensors.Degrees(55), nil
		}),
		GPU:      fixed(sensors.Degrees(68)),
		Renderer: frame.NewRenderer(frame.GoFonts()),
		Display:  d,
		Clock:    clk,
		Log:      zap.New(core),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	waitTimer(t, clk)
	assert.Zero(t, d.published(), "first tick skipped")
	mock.Add(DefaultInterval)
	waitTimer(t, clk)
	cancel()
	require.NoError(t, <-done)

	assert.Equal(t, 1, d.published())
	assert.Equal(t, 1, logs.FilterMessage("display initialization failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("tick failed").Len())
}

func TestRun_cancelDoesNotInterruptTick(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	d := &fakeDisplay{}
	l := New(Config{
		CPU: sensorFunc(func(ctx context.Context) (sensors.Reading, error) {
			close(entered)
			<-release
			return sensors.Degrees(55), ctx.Err()
		}),
		GPU:      fixed(sensors.Degrees(68)),
		Renderer: frame.NewRenderer(frame.GoFonts()),
		Display:  d,
		Clock:    clock.NewMock(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	<-entered
	cancel()
	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, d.published(), "the tick in flight completed")
	assert.Equal(t, Stopped, l.State())
}

func TestRun_canceledBeforeStart(t *testing.T) {
	d := &fakeDisplay{}
	l := New(Config{
		CPU:      fixed(sensors.Degrees(55)),
		GPU:      fixed(sensors.Degrees(68)),
		Renderer: frame.NewRenderer(frame.GoFonts()),
		Display:  d,
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, l.Run(ctx))
	assert.Zero(t, d.published())
	assert.ErrorIs(t, l.Run(context.Background()), ErrStarted)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Uninitialized", Uninitialized.String())
	assert.Equal(t, "Running", Running.String())
	assert.Equal(t, "Stopped", Stopped.String())
	assert.Equal(t, "State(7)", State(7).String())
}

// memDrawer is a display.Drawer backed by an image.
type memDrawer struct {
	*image.RGBA
	draws int
}

func (m *memDrawer) String() string { return "mem" }
func (m *memDrawer) Halt() error    { return nil }
func (m *memDrawer) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	m.draws++
	draw.Draw(m.RGBA, r, src, sp, draw.Src)
	return nil
}

func TestFromDrawer(t *testing.T) {
	m := &memDrawer{RGBA: image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))}
	l := New(Config{
		CPU:      fixed(sensors.Degrees(55)),
		GPU:      fixed(sensors.Degrees(68)),
		Renderer: frame.NewRenderer(frame.GoFonts()),
		Display:  FromDrawer(m),
	})
	require.NoError(t, l.Tick(context.Background()))
	assert.Equal(t, 1, m.draws)
	assertSameImage(t, frame.NewRenderer(frame.GoFonts()).Render(sensors.Degrees(55), sensors.Degrees(68)), m.RGBA)
}
