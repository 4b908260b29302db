// Package sensor turns raw magnetometer and battery readings into face
// events.
package sensor

import (
	"math"

	"compass/face/gfx"
)

// DefaultMinSpan is the field range, in raw sensor units, each horizontal
// axis must cover before the compass counts as calibrated.
const DefaultMinSpan = 300

// Calibrator tracks the hard-iron offset as the midpoint of the extreme
// field values seen on each horizontal axis.
type Calibrator struct {
	minSpan int32

	n                      int
	minX, maxX, minY, maxY int32
}

// NewCalibrator returns a calibrator that reports StatusCalibrated once both
// axes span at least minSpan.
func NewCalibrator(minSpan int32) *Calibrator {
	if minSpan <= 0 {
		minSpan = DefaultMinSpan
	}
	return &Calibrator{minSpan: minSpan}
}

// Reset forgets every sample.
func (c *Calibrator) Reset() {
	*c = Calibrator{minSpan: c.minSpan}
}

// Add records a field sample and returns the resulting heading.
func (c *Calibrator) Add(x, y int32) gfx.Heading {
	if c.n == 0 {
		c.minX, c.maxX, c.minY, c.maxY = x, x, y, y
	}
	c.n++
	c.minX = min(c.minX, x)
	c.maxX = max(c.maxX, x)
	c.minY = min(c.minY, y)
	c.maxY = max(c.maxY, y)

	cx, cy := c.Center()
	return gfx.Heading{Angle: NeedleAngle(x-cx, y-cy), Status: c.Status()}
}

// Center returns the current hard-iron estimate.
func (c *Calibrator) Center() (cx, cy int32) {
	return c.minX + (c.maxX-c.minX)/2, c.minY + (c.maxY-c.minY)/2
}

// Status reports calibration progress.
func (c *Calibrator) Status() gfx.Status {
	switch {
	case c.n == 0:
		return gfx.StatusInvalid
	case c.maxX-c.minX < c.minSpan || c.maxY-c.minY < c.minSpan:
		return gfx.StatusCalibrating
	default:
		return gfx.StatusCalibrated
	}
}

// NeedleAngle converts a hard-iron corrected field vector into the needle
// angle. The field direction is measured counter-clockwise in the sensor
// frame; the needle turns the opposite way to keep pointing north.
func NeedleAngle(dx, dy int32) int32 {
	if dx == 0 && dy == 0 {
		return 0
	}
	rad := math.Atan2(float64(dy), float64(dx))
	field := int32(math.Round(rad*float64(gfx.AngleMax)/(2*math.Pi))) & (gfx.AngleMax - 1)
	return (gfx.AngleMax - field) & (gfx.AngleMax - 1)
}
