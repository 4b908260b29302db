package sensor

import "compass/face/gfx"

// DefaultFilterAngle suppresses heading changes under one degree.
const DefaultFilterAngle = gfx.AngleMax / 360

// Filter drops headings that moved less than a threshold since the last one
// published. Status changes always pass; an identical heading never does.
type Filter struct {
	threshold int32
	last      gfx.Heading
	primed    bool
}

// NewFilter returns a filter with the given threshold angle. Zero or less
// passes every heading that differs from the last one.
func NewFilter(threshold int32) Filter {
	return Filter{threshold: threshold}
}

// Pass reports whether h should be published. It does not record h; call
// Commit once h has actually been delivered.
func (f *Filter) Pass(h gfx.Heading) bool {
	if !f.primed || h.Status != f.last.Status {
		return true
	}
	return angleDistance(h.Angle, f.last.Angle) >= max(f.threshold, 1)
}

// Commit records h as the last published heading.
func (f *Filter) Commit(h gfx.Heading) {
	f.last = h
	f.primed = true
}

// Reset makes the next heading pass.
func (f *Filter) Reset() {
	f.primed = false
}

// angleDistance is the shorter way round the circle between a and b.
func angleDistance(a, b int32) int32 {
	d := (a - b) & (gfx.AngleMax - 1)
	if d > gfx.AngleMax/2 {
		d = gfx.AngleMax - d
	}
	return d
}
