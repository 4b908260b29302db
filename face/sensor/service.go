package sensor

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"compass/face/event"
	"compass/face/gfx"
	"compass/hal"
)

// Config sets the polling cadence in HAL ticks (milliseconds) and the
// calibration parameters. Zero fields take defaults.
type Config struct {
	CompassEvery uint64
	BatteryEvery uint64
	SecondEvery  uint64

	MinSpan     int32
	FilterAngle int32
}

func (c Config) withDefaults() Config {
	if c.CompassEvery == 0 {
		c.CompassEvery = 40
	}
	if c.BatteryEvery == 0 {
		c.BatteryEvery = 5000
	}
	if c.SecondEvery == 0 {
		c.SecondEvery = 1000
	}
	if c.MinSpan <= 0 {
		c.MinSpan = DefaultMinSpan
	}
	if c.FilterAngle < 0 {
		c.FilterAngle = 0
	}
	return c
}

// Service polls the compass and battery on the tick stream and posts heading,
// battery and second events. It runs on its own goroutine; only the queue is
// shared with the UI thread.
type Service struct {
	cfg     Config
	compass hal.Compass
	battery hal.Battery
	q       *event.Queue
	log     hal.Logger
	now     func() time.Time

	cal    *Calibrator
	filter Filter
	status gfx.Status

	charge    hal.ChargeState
	hasCharge bool

	started bool
	lastSeq uint64

	recal atomic.Bool
}

// New returns a service posting to q. compass or battery may be nil.
func New(compass hal.Compass, battery hal.Battery, q *event.Queue, log hal.Logger, cfg Config) *Service {
	return newWithClock(compass, battery, q, log, cfg, time.Now)
}

func newWithClock(compass hal.Compass, battery hal.Battery, q *event.Queue, log hal.Logger, cfg Config, now func() time.Time) *Service {
	cfg = cfg.withDefaults()
	if now == nil {
		now = time.Now
	}
	return &Service{
		cfg:     cfg,
		compass: compass,
		battery: battery,
		q:       q,
		log:     log,
		now:     now,
		cal:     NewCalibrator(cfg.MinSpan),
		filter:  NewFilter(cfg.FilterAngle),
		status:  gfx.StatusInvalid,
	}
}

// Recalibrate discards the hard-iron estimate. Safe to call from any
// goroutine; it takes effect on the next Step.
func (s *Service) Recalibrate() {
	s.recal.Store(true)
}

// Run steps the service for every tick until ctx is done or ticks closes.
func (s *Service) Run(ctx context.Context, ticks <-chan uint64) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case seq, ok := <-ticks:
			if !ok {
				return nil
			}
			s.Step(seq)
		}
	}
}

// Step handles tick seq. Every poll is due on the first call; afterwards a
// poll runs whenever seq crosses a multiple of its period, so dropped ticks
// do not stall it.
func (s *Service) Step(seq uint64) {
	if s.recal.Swap(false) {
		s.cal.Reset()
		s.filter.Reset()
		s.logf("sensor: recalibrating")
	}

	first := !s.started
	due := func(every uint64) bool {
		return first || seq/every != s.lastSeq/every
	}

	if due(s.cfg.CompassEvery) {
		s.pollCompass()
	}
	if due(s.cfg.BatteryEvery) {
		s.pollBattery()
	}
	if due(s.cfg.SecondEvery) {
		s.q.Post(event.Event{Kind: event.KindTick, Time: s.now()})
	}

	s.started = true
	s.lastSeq = seq
}

func (s *Service) pollCompass() {
	h := gfx.Heading{Status: gfx.StatusInvalid}
	if s.compass != nil {
		x, y, _, err := s.compass.ReadField()
		if err == nil {
			h = s.cal.Add(x, y)
		} else if s.status != gfx.StatusInvalid || !s.started {
			s.logf("sensor: compass: %v", err)
		}
	}

	if h.Status != s.status {
		s.logf("sensor: compass %s", h.Status)
		s.status = h.Status
	}
	// A heading the queue refused is offered again on the next poll.
	if s.filter.Pass(h) && s.q.Post(event.Event{Kind: event.KindHeading, Heading: h}) {
		s.filter.Commit(h)
	}
}

func (s *Service) pollBattery() {
	if s.battery == nil {
		return
	}
	st, err := s.battery.ChargeState()
	if err != nil {
		s.logf("sensor: battery: %v", err)
		return
	}
	if s.hasCharge && st == s.charge {
		return
	}
	s.charge = st
	s.hasCharge = true
	s.q.Post(event.Event{Kind: event.KindBattery, Charge: st})
}

func (s *Service) logf(format string, args ...any) {
	if s.log == nil {
		return
	}
	s.log.WriteLineString(fmt.Sprintf(format, args...))
}
