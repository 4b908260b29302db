package sensor

import (
	"testing"

	"compass/face/gfx"
)

// apply passes h through f the way the service does when the post succeeds.
func apply(f *Filter, h gfx.Heading) bool {
	if !f.Pass(h) {
		return false
	}
	f.Commit(h)
	return true
}

func TestFilterThreshold(t *testing.T) {
	f := NewFilter(DefaultFilterAngle)
	cal := gfx.StatusCalibrated

	steps := []struct {
		h    gfx.Heading
		want bool
	}{
		{gfx.Heading{Angle: 1000, Status: cal}, true},
		{gfx.Heading{Angle: 1100, Status: cal}, false},
		{gfx.Heading{Angle: 1000 + DefaultFilterAngle, Status: cal}, true},
		{gfx.Heading{Angle: 1000 + DefaultFilterAngle, Status: gfx.StatusCalibrating}, true},
		{gfx.Heading{Angle: 1000 + DefaultFilterAngle, Status: gfx.StatusCalibrating}, false},
	}
	for i, s := range steps {
		if got := apply(&f, s.h); got != s.want {
			t.Fatalf("step %d: apply(%+v) = %v, want %v", i, s.h, got, s.want)
		}
	}

	f.Reset()
	if !apply(&f, gfx.Heading{Angle: 1000 + DefaultFilterAngle, Status: gfx.StatusCalibrating}) {
		t.Fatalf("apply after Reset = false, want true")
	}
}

func TestFilterWrapsAround(t *testing.T) {
	f := NewFilter(100)
	apply(&f, gfx.Heading{Angle: gfx.AngleMax - 10, Status: gfx.StatusCalibrated})
	if apply(&f, gfx.Heading{Angle: 50, Status: gfx.StatusCalibrated}) {
		t.Fatalf("60 units across zero passed a 100 unit filter")
	}
	if !apply(&f, gfx.Heading{Angle: 200, Status: gfx.StatusCalibrated}) {
		t.Fatalf("210 units across zero was filtered")
	}
}

func TestFilterZeroDropsRepeats(t *testing.T) {
	f := NewFilter(0)
	h := gfx.Heading{Angle: 5, Status: gfx.StatusCalibrated}
	if !apply(&f, h) {
		t.Fatalf("first heading filtered")
	}
	for i := 0; i < 3; i++ {
		if apply(&f, h) {
			t.Fatalf("repeat #%d passed", i)
		}
	}
	h.Angle++
	if !apply(&f, h) {
		t.Fatalf("one unit change filtered with zero threshold")
	}
}

func TestFilterPassDoesNotCommit(t *testing.T) {
	f := NewFilter(DefaultFilterAngle)
	h := gfx.Heading{Angle: 100, Status: gfx.StatusCalibrating}
	for i := 0; i < 3; i++ {
		if !f.Pass(h) {
			t.Fatalf("Pass #%d = false before any Commit", i)
		}
	}
	f.Commit(h)
	if f.Pass(h) {
		t.Fatalf("Pass = true after Commit of the same heading")
	}
}

func TestAngleDistance(t *testing.T) {
	tests := []struct {
		a, b, want int32
	}{
		{0, 0, 0},
		{10, 0, 10},
		{0, 10, 10},
		{gfx.AngleMax - 1, 1, 2},
		{0, gfx.AngleMax / 2, gfx.AngleMax / 2},
		{100, 100 + gfx.AngleMax, 0},
	}
	for _, tt := range tests {
		if got := angleDistance(tt.a, tt.b); got != tt.want {
			t.Fatalf("angleDistance(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
