//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64

	// StepBudget is the number of app steps per tick.
	StepBudget int
}

// headlessStats summarises a headless run for the exit log line.
type headlessStats struct {
	ticks    uint64
	steps    uint64
	presents uint64
	total    time.Duration
	slowest  time.Duration
}

func (s *headlessStats) add(took time.Duration) {
	s.steps++
	s.total += took
	s.slowest = max(s.slowest, took)
}

func (s headlessStats) String() string {
	var avg time.Duration
	if s.steps > 0 {
		avg = s.total / time.Duration(s.steps)
	}
	return fmt.Sprintf("headless: %d ticks, %d frames presented, step avg %v max %v",
		s.ticks, s.presents, avg, s.slowest)
}

// RunHeadless runs the watchface without opening a window and logs a frame
// summary when it stops.
func RunHeadless(ctx context.Context, disp DisplayConfig, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.StepBudget <= 0 {
		cfg.StepBudget = 1
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := New(disp).(*hostHAL)
	step := newApp(h)

	var st headlessStats
	defer func() {
		st.presents = h.fb.presentCount()
		h.logger.WriteLineString(st.String())
	}()

	t := time.NewTicker(d)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.t.step(1)
			if step != nil {
				for i := 0; i < cfg.StepBudget; i++ {
					start := time.Now()
					err := step()
					st.add(time.Since(start))
					if err != nil {
						return err
					}
				}
			}
			st.ticks++
			if cfg.Ticks > 0 && st.ticks >= cfg.Ticks {
				return nil
			}
		}
	}
}
