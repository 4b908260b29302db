package hal

import (
	"math"
	"sync"
	"time"
)

const (
	// simCompassRate is how fast the simulated field turns, in degrees per
	// second.
	simCompassRate = 20

	// simBatteryStep is the time per percent of simulated charge.
	simBatteryStep = 2 * time.Second
)

// Simulated field strength and hard-iron offset, in raw sensor units.
const (
	simFieldRadius = 400
	simHardIronX   = 120
	simHardIronY   = -80
	simFieldZ      = -300
)

// simCompass produces a field vector turning at a constant rate around a
// hard-iron offset. Steer adds a manual offset on top.
type simCompass struct {
	mu    sync.Mutex
	now   func() time.Time
	t0    time.Time
	rate  float64
	steer int32
}

func newSimCompass(rateDegPerSec float64, now func() time.Time) *simCompass {
	if now == nil {
		now = time.Now
	}
	return &simCompass{now: now, t0: now(), rate: rateDegPerSec}
}

// fieldDegrees returns the current field direction in the sensor frame.
func (c *simCompass) fieldDegrees() float64 {
	elapsed := c.now().Sub(c.t0).Seconds()
	deg := math.Mod(elapsed*c.rate+float64(c.steer), 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func (c *simCompass) ReadField() (x, y, z int32, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rad := c.fieldDegrees() * math.Pi / 180
	x = simHardIronX + int32(math.Round(simFieldRadius*math.Cos(rad)))
	y = simHardIronY + int32(math.Round(simFieldRadius*math.Sin(rad)))
	return x, y, simFieldZ, nil
}

func (c *simCompass) Steer(deltaDeg int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.steer = (c.steer + deltaDeg) % 360
}

// simBattery drains from 100% to 5%, then charges back, one percent per
// step.
type simBattery struct {
	now  func() time.Time
	t0   time.Time
	step time.Duration
}

const (
	simBatteryFull  = 100
	simBatteryEmpty = 5
)

func newSimBattery(step time.Duration, now func() time.Time) *simBattery {
	if now == nil {
		now = time.Now
	}
	if step <= 0 {
		step = simBatteryStep
	}
	return &simBattery{now: now, t0: now(), step: step}
}

func (b *simBattery) ChargeState() (ChargeState, error) {
	span := simBatteryFull - simBatteryEmpty
	steps := int(b.now().Sub(b.t0) / b.step)
	phase := steps % (2 * span)
	if phase < span {
		return ChargeState{Percent: simBatteryFull - phase}, nil
	}
	return ChargeState{
		Percent:  simBatteryEmpty + phase - span,
		Charging: true,
		Plugged:  true,
	}, nil
}
