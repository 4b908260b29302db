// Package app wires the HAL, the sensor service and the watchface together.
package app

import (
	"context"
	"fmt"
	"time"

	"compass/face"
	"compass/face/event"
	"compass/face/gfx"
	"compass/face/sensor"
	"compass/hal"
	"compass/internal/buildinfo"
)

// Config is the runtime configuration. Zero fields take defaults.
type Config struct {
	// A and B are the needle half-width and half-length in pixels.
	A, B int32

	Round    bool
	Clock24h bool
	Budget   time.Duration

	// FilterDeg suppresses heading changes smaller than this many degrees.
	FilterDeg int32
	// MinSpan is the field span each axis must cover before calibration
	// completes.
	MinSpan int32

	// Slots sizes the event queue.
	Slots int
}

func (c Config) withDefaults() Config {
	if c.A == 0 {
		c.A = 12
	}
	if c.B == 0 {
		c.B = 48
	}
	if c.Budget <= 0 {
		c.Budget = face.DefaultBudget
	}
	if c.FilterDeg < 0 {
		c.FilterDeg = 0
	}
	if c.MinSpan <= 0 {
		c.MinSpan = sensor.DefaultMinSpan
	}
	if c.Slots <= 0 {
		c.Slots = event.DefaultSlots
	}
	return c
}

// steerStep is how far one arrow key turns a steerable compass.
const steerStep = 5

// frameInterval paces Run on targets without an external frame driver.
const frameInterval = 40 * time.Millisecond

type system struct {
	h     hal.HAL
	log   hal.Logger
	q     *event.Queue
	face  *face.Face
	svc   *sensor.Service
	fb    hal.Framebuffer
	kbd   <-chan hal.KeyEvent
	steer hal.Steerable

	// done is closed when the sensor goroutine returns.
	done chan struct{}
}

// New starts the watchface on h and returns the per-frame step function.
// The sensor service runs on its own goroutine, driven by the HAL ticks,
// until ctx is done.
func New(ctx context.Context, h hal.HAL, cfg Config) func() error {
	s, err := newSystem(ctx, h, cfg)
	if err != nil {
		return func() error { return err }
	}
	return guard(h, s.step)
}

// Run starts the watchface and steps it forever (TinyGo entrypoint).
func Run(h hal.HAL, cfg Config) {
	step := New(context.Background(), h, cfg)
	for {
		if err := step(); err != nil {
			if l := h.Logger(); l != nil {
				l.WriteLineString(fmt.Sprintf("app: %v", err))
			}
			select {}
		}
		time.Sleep(frameInterval)
	}
}

func newSystem(ctx context.Context, h hal.HAL, cfg Config) (*system, error) {
	cfg = cfg.withDefaults()
	g, err := gfx.NewGeometry(cfg.A, cfg.B)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	disp := h.Display()
	if disp == nil || disp.Framebuffer() == nil {
		return nil, fmt.Errorf("app: display: %w", hal.ErrNotImplemented)
	}
	fb := disp.Framebuffer()

	s := &system{h: h, log: h.Logger(), fb: fb, done: make(chan struct{})}
	s.logf("compass %s", buildinfo.String())

	s.q = event.New(cfg.Slots)
	s.face = face.New(face.Config{Geometry: g, Clock24h: cfg.Clock24h, Budget: cfg.Budget},
		fb.Width(), fb.Height(), cfg.Round, s.log)
	s.face.Subscribe(s.q)

	compass := h.Compass()
	if st, ok := compass.(hal.Steerable); ok {
		s.steer = st
	}
	s.svc = sensor.New(compass, h.Battery(), s.q, s.log, sensor.Config{
		MinSpan:     cfg.MinSpan,
		FilterAngle: gfx.DegreesToAngle(cfg.FilterDeg),
	})

	if in := h.Input(); in != nil {
		if kbd := in.Keyboard(); kbd != nil {
			s.kbd = kbd.Events()
		}
	}

	var ticks <-chan uint64
	if ht := h.Time(); ht != nil {
		ticks = ht.Ticks()
	}
	if ticks == nil {
		close(s.done)
	} else {
		go func() {
			defer close(s.done)
			if err := s.svc.Run(ctx, ticks); err != nil && ctx.Err() == nil {
				s.logf("app: sensor: %v", err)
			}
		}()
	}

	if led := h.LED(); led != nil {
		led.High()
	}
	return s, nil
}

func (s *system) step() error {
	s.pollKeys()
	s.q.Dispatch(0)
	if _, err := s.face.Render(s.fb); err != nil {
		return err
	}
	return nil
}

func (s *system) pollKeys() {
	if s.kbd == nil {
		return
	}
	for {
		select {
		case ev := <-s.kbd:
			s.handleKey(ev)
		default:
			return
		}
	}
}

func (s *system) handleKey(ev hal.KeyEvent) {
	if !ev.Press {
		return
	}
	switch ev.Code {
	case hal.KeyLeft:
		if s.steer != nil {
			s.steer.Steer(-steerStep)
		}
	case hal.KeyRight:
		if s.steer != nil {
			s.steer.Steer(steerStep)
		}
	case hal.KeyEnter:
		s.svc.Recalibrate()
	default:
		if ev.Rune == 'c' || ev.Rune == 'C' {
			s.svc.Recalibrate()
		}
	}
}

func (s *system) logf(format string, args ...any) {
	if s.log == nil {
		return
	}
	s.log.WriteLineString(fmt.Sprintf(format, args...))
}
