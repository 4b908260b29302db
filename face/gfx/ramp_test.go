package gfx

import (
	"errors"
	"testing"
)

var (
	c0 = RGB222(0, 3, 1)
	c1 = RGB222(0, 3, 0)
	c2 = RGB222(1, 3, 0)
	c3 = RGB222(2, 3, 0)
	c4 = RGB222(3, 3, 0)
	c5 = RGB222(3, 2, 0)
	c6 = RGB222(3, 1, 0)
	c7 = RGB222(3, 0, 0)
)

func chargeRamp(t *testing.T) Ramp {
	t.Helper()
	r, err := NewRamp(
		RampEntry{100, c0},
		RampEntry{90, c1},
		RampEntry{80, c2},
		RampEntry{70, c3},
		RampEntry{50, c4},
		RampEntry{30, c5},
		RampEntry{20, c6},
		RampEntry{0, c7},
		RampEntry{-1, White},
	)
	if err != nil {
		t.Fatalf("NewRamp: %v", err)
	}
	return r
}

func TestRampColorForBuckets(t *testing.T) {
	r := chargeRamp(t)
	tests := []struct {
		value int
		want  Color
	}{
		{150, c0},
		{101, c0},
		{100, c0},
		{99, c0},
		{91, c0},
		{90, c1},
		{89, c1},
		{85, c1},
		{81, c1},
		{80, c2},
		{79, c2},
		{51, c3},
		{50, c4},
		{21, c5},
		{20, c6},
		{19, c6},
		{1, c6},
		{0, c7},
		{-1, c7},
		{-100, c7},
	}
	for _, tt := range tests {
		if got := r.ColorFor(tt.value); got != tt.want {
			t.Fatalf("ColorFor(%d) = %#x, want %#x", tt.value, got, tt.want)
		}
	}
}

func TestRampSentinelBelowLowestBucket(t *testing.T) {
	r := MustRamp(
		RampEntry{60, c0},
		RampEntry{20, c6},
		RampEntry{-1, White},
	)
	tests := []struct {
		value int
		want  Color
	}{
		{21, c0},
		{20, c6},
		{19, White},
		{0, White},
		{-7, White},
	}
	for _, tt := range tests {
		if got := r.ColorFor(tt.value); got != tt.want {
			t.Fatalf("ColorFor(%d) = %#x, want %#x", tt.value, got, tt.want)
		}
	}
}

func TestNewRampRejectsMalformedTables(t *testing.T) {
	tests := []struct {
		name    string
		entries []RampEntry
	}{
		{"empty", nil},
		{"sentinel only", []RampEntry{{-1, White}}},
		{"not descending", []RampEntry{{50, c0}, {50, c1}, {-1, White}}},
		{"ascending", []RampEntry{{10, c0}, {50, c1}, {-1, White}}},
		{"no sentinel", []RampEntry{{50, c0}, {0, c1}}},
		{"negative bucket", []RampEntry{{50, c0}, {-1, c1}, {-2, White}}},
	}
	for _, tt := range tests {
		if _, err := NewRamp(tt.entries...); !errors.Is(err, ErrRamp) {
			t.Fatalf("%s: NewRamp err = %v, want ErrRamp", tt.name, err)
		}
	}
}

func TestZeroRampIsBlack(t *testing.T) {
	var r Ramp
	if got := r.ColorFor(50); got != Black {
		t.Fatalf("zero Ramp ColorFor = %#x, want black", got)
	}
}
