package sensor

import (
	"testing"

	"compass/face/gfx"
)

func TestNeedleAngle(t *testing.T) {
	tests := []struct {
		dx, dy int32
		want   int32
	}{
		{100, 0, 0},
		{0, 100, 3 * gfx.AngleMax / 4},
		{-100, 0, gfx.AngleMax / 2},
		{0, -100, gfx.AngleMax / 4},
		{100, -100, gfx.AngleMax / 8},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := NeedleAngle(tt.dx, tt.dy); got != tt.want {
			t.Fatalf("NeedleAngle(%d, %d) = %#x, want %#x", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestCalibratorStatus(t *testing.T) {
	c := NewCalibrator(200)
	if got := c.Status(); got != gfx.StatusInvalid {
		t.Fatalf("Status() before samples = %v, want invalid", got)
	}

	h := c.Add(50, 50)
	if h.Status != gfx.StatusCalibrating {
		t.Fatalf("first sample status = %v, want calibrating", h.Status)
	}
	c.Add(300, 50)
	if got := c.Status(); got != gfx.StatusCalibrating {
		t.Fatalf("x span only status = %v, want calibrating", got)
	}
	h = c.Add(175, 260)
	if h.Status != gfx.StatusCalibrated {
		t.Fatalf("both spans status = %v, want calibrated", h.Status)
	}
	if cx, cy := c.Center(); cx != 175 || cy != 155 {
		t.Fatalf("Center() = %d, %d, want 175, 155", cx, cy)
	}

	c.Reset()
	if got := c.Status(); got != gfx.StatusInvalid {
		t.Fatalf("Status() after Reset = %v, want invalid", got)
	}
	if h := c.Add(0, 0); h.Status != gfx.StatusCalibrating {
		t.Fatalf("status after Reset and one sample = %v, want calibrating", h.Status)
	}
}

func TestCalibratorRemovesHardIron(t *testing.T) {
	const ox, oy, r = 500, -300, 400
	c := NewCalibrator(0)
	// A full turn of the field establishes the offset.
	for _, p := range [][2]int32{{ox + r, oy}, {ox, oy + r}, {ox - r, oy}, {ox, oy - r}} {
		c.Add(p[0], p[1])
	}
	if cx, cy := c.Center(); cx != ox || cy != oy {
		t.Fatalf("Center() = %d, %d, want %d, %d", cx, cy, ox, oy)
	}
	h := c.Add(ox, oy-r)
	if h.Status != gfx.StatusCalibrated || h.Angle != gfx.AngleMax/4 {
		t.Fatalf("heading = %+v, want calibrated at a quarter turn", h)
	}
}
