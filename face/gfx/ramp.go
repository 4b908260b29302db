package gfx

import (
	"errors"
	"fmt"
)

// ErrRamp reports a malformed colour ramp.
var ErrRamp = errors.New("gfx: invalid color ramp")

// RampEntry maps a threshold to a colour.
type RampEntry struct {
	Threshold int
	Color     Color
}

// Ramp is a colour table ordered by strictly descending threshold. The last
// entry is a sentinel below every valid (non-negative) input.
type Ramp struct {
	entries []RampEntry
}

// NewRamp validates entries and returns a ramp. At least one real entry and
// the sentinel are required.
func NewRamp(entries ...RampEntry) (Ramp, error) {
	if len(entries) < 2 {
		return Ramp{}, fmt.Errorf("%w: need a real entry and a sentinel, got %d entries", ErrRamp, len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Threshold >= entries[i-1].Threshold {
			return Ramp{}, fmt.Errorf("%w: threshold %d at %d does not descend from %d",
				ErrRamp, entries[i].Threshold, i, entries[i-1].Threshold)
		}
	}
	if s := entries[len(entries)-1].Threshold; s >= 0 {
		return Ramp{}, fmt.Errorf("%w: sentinel threshold %d must be negative", ErrRamp, s)
	}
	if low := entries[len(entries)-2].Threshold; low < 0 {
		return Ramp{}, fmt.Errorf("%w: lowest real threshold %d is negative", ErrRamp, low)
	}
	return Ramp{entries: append([]RampEntry(nil), entries...)}, nil
}

// MustRamp is NewRamp for package-level tables; it panics on error.
func MustRamp(entries ...RampEntry) Ramp {
	r, err := NewRamp(entries...)
	if err != nil {
		panic(err)
	}
	return r
}

// ColorFor returns the colour of the bucket value falls into. Negative values
// count as zero. A value selects the smallest threshold that is >= value,
// values above the top threshold take the top colour, and values below the
// lowest real threshold take the sentinel colour.
func (r Ramp) ColorFor(value int) Color {
	if len(r.entries) == 0 {
		return Black
	}
	if value < 0 {
		value = 0
	}
	buckets := r.entries[:len(r.entries)-1]
	if value < buckets[len(buckets)-1].Threshold {
		return r.entries[len(r.entries)-1].Color
	}
	c := buckets[0].Color
	for _, e := range buckets[1:] {
		if value > e.Threshold {
			break
		}
		c = e.Color
	}
	return c
}

// Len returns the number of entries including the sentinel.
func (r Ramp) Len() int { return len(r.entries) }
