package gfx

import (
	"errors"
	"fmt"
	"image"
)

// ErrGeometry reports needle dimensions the rasterizer cannot handle.
var ErrGeometry = errors.New("gfx: invalid needle geometry")

// maxRadius keeps |rx| and |ry| (at most Radius*Scale*sqrt(2)) inside int32.
const maxRadius = 1 << 14

// Geometry describes the needle diamond: half-width A across the needle and
// half-length B along it. L and RL are derived by NewGeometry and must never be
// edited independently of A and B.
type Geometry struct {
	A, B int32

	// L is Scale*sqrt(A²+B²), the Q16 length that turns the diamond distance
	// into pixels. RL is Scale²/L.
	L  int64
	RL int32

	// Radius is the half-size of the square that contains the needle and its
	// two-pixel rim for every rotation.
	Radius int32
}

// NewGeometry derives L, RL and Radius from the half-width a and half-length b.
func NewGeometry(a, b int32) (Geometry, error) {
	if a <= 0 || b <= 0 {
		return Geometry{}, fmt.Errorf("%w: half-width %d and half-length %d must be positive", ErrGeometry, a, b)
	}
	if a >= maxRadius || b >= maxRadius {
		return Geometry{}, fmt.Errorf("%w: half-width %d or half-length %d exceeds %d", ErrGeometry, a, b, maxRadius-1)
	}
	d2 := int64(a)*int64(a) + int64(b)*int64(b)
	scale2 := int64(Scale) * int64(Scale)

	l := Isqrt(scale2 * d2)
	rl := (scale2 + l/2) / l

	m := int64(min(a, b))
	radius := ceilSqrt(d2) + (ceilSqrt(4*d2)+m-1)/m
	if radius >= maxRadius {
		return Geometry{}, fmt.Errorf("%w: bounding radius %d exceeds %d", ErrGeometry, radius, maxRadius-1)
	}

	g := Geometry{A: a, B: b, L: l, RL: int32(rl), Radius: int32(radius)}
	if err := g.check(); err != nil {
		return Geometry{}, err
	}
	return g, nil
}

// MustGeometry is NewGeometry for constant dimensions; it panics on error.
func MustGeometry(a, b int32) Geometry {
	g, err := NewGeometry(a, b)
	if err != nil {
		panic(err)
	}
	return g
}

// check verifies L*RL ≈ Scale² within the rounding of RL.
func (g Geometry) check() error {
	scale2 := int64(Scale) * int64(Scale)
	diff := g.L*int64(g.RL) - scale2
	if diff < 0 {
		diff = -diff
	}
	if diff > g.L/2 {
		return fmt.Errorf("%w: L=%d RL=%d drift %d from Scale²", ErrGeometry, g.L, g.RL, diff)
	}
	return nil
}

func (g Geometry) String() string {
	return fmt.Sprintf("A=%d B=%d L=%d RL=%d radius=%d", g.A, g.B, g.L, g.RL, g.Radius)
}

// Status is the compass calibration state.
type Status uint8

const (
	StatusInvalid Status = iota
	StatusCalibrating
	StatusCalibrated
)

func (s Status) String() string {
	switch s {
	case StatusInvalid:
		return "invalid"
	case StatusCalibrating:
		return "calibrating"
	case StatusCalibrated:
		return "calibrated"
	default:
		return "unknown"
	}
}

// Heading is one compass reading. Angle 0 points the front of the needle up.
type Heading struct {
	Angle  int32
	Status Status
}

// Invalidator is anything that can be scheduled for a repaint.
type Invalidator interface {
	MarkDirty()
}

// State is the caller-owned input to Needle.Draw.
type State struct {
	Heading Heading

	// Degrees is the last published heading in whole degrees, -1 before the
	// first frame.
	Degrees int16

	// Digits is invalidated whenever Degrees changes. It may be nil.
	Digits Invalidator
}

// Class is the region a pixel falls in.
type Class uint8

const (
	ClassOutside Class = iota
	ClassRim
	ClassRimFade
	ClassSeam
	ClassFront
	ClassBack
)

func (c Class) String() string {
	switch c {
	case ClassOutside:
		return "outside"
	case ClassRim:
		return "rim"
	case ClassRimFade:
		return "rim-fade"
	case ClassSeam:
		return "seam"
	case ClassFront:
		return "front"
	case ClassBack:
		return "back"
	default:
		return "unknown"
	}
}

// Sample is a pixel mapped into the needle's own frame.
type Sample struct {
	RX, RY int32

	// LD is the scaled L1 distance to the diamond edge: negative inside,
	// zero on the edge, positive outside.
	LD int64

	Class Class
}

// Locate maps the pixel offset (dx, dy) from the needle centre into the frame
// of a needle rotated by the angle whose sine and cosine are given. Offsets
// must lie within ±Radius.
func (g Geometry) Locate(sin, cos int32, dx, dy int32) Sample {
	rx := dx*cos + dy*sin
	ry := dy*cos - dx*sin
	ld := int64(abs32(rx))*int64(g.B) + int64(abs32(ry))*int64(g.A) - int64(g.A)*int64(g.B)*int64(Scale)
	return Sample{RX: rx, RY: ry, LD: ld, Class: g.classify(ld, ry)}
}

// seamUnit is one pixel in the rotated frame.
const seamUnit = Scale

func (g Geometry) classify(ld int64, ry int32) Class {
	switch {
	case ld > 2*g.L:
		return ClassOutside
	case ld >= g.L:
		return ClassRimFade
	case ld >= 0:
		return ClassRim
	case abs32(ry) < 2*seamUnit:
		return ClassSeam
	case ry < 0:
		return ClassFront
	default:
		return ClassBack
	}
}

// Needle is a two-tone diamond needle with a white rim.
type Needle struct {
	Geometry Geometry

	// North colours the front half, South the back half.
	North Color
	South Color
	Rim   Color
}

// NewNeedle returns the blue/orange needle used by the watchface.
func NewNeedle(g Geometry) *Needle {
	return &Needle{Geometry: g, North: BlueMoon, South: Orange, Rim: White}
}

// Shade returns the colour for a located pixel over background bg, and false
// when the pixel must be left alone.
func (n *Needle) Shade(s Sample, bg Color) (Color, bool) {
	g := &n.Geometry
	switch s.Class {
	case ClassOutside:
		return bg, false
	case ClassRim:
		return n.Rim, true
	case ClassRimFade:
		return Blend(RatioMul(int32(s.LD-g.L), g.RL), n.Rim, bg), true
	case ClassSeam:
		ary := abs32(s.RY)
		switch {
		case s.RY+seamUnit < 0:
			return Blend(ary-seamUnit, n.Rim, n.North), true
		case s.RY-seamUnit > 0:
			return Blend(ary-seamUnit, n.Rim, n.South), true
		}
		return n.Rim, true
	}

	c := n.North
	if s.Class == ClassBack {
		c = n.South
	}
	if s.LD+g.L > 0 {
		c = Blend(RatioMul(int32(g.L+s.LD), g.RL), c, n.Rim)
	}
	return c, true
}

// Draw rasterizes the needle for st.Heading around center. Pixels outside the
// needle and its rim keep their colour, and only the columns each row reports
// are touched. An invalid heading draws nothing.
//
// After drawing, the heading in whole degrees is compared with st.Degrees; on
// change it is stored and st.Digits is invalidated.
func (n *Needle) Draw(s Surface, center image.Point, st *State) {
	if st.Heading.Status == StatusInvalid {
		return
	}

	sin := Sin(st.Heading.Angle)
	cos := Cos(st.Heading.Angle)
	r := int(n.Geometry.Radius)

	for y := center.Y - r; y <= center.Y+r; y++ {
		row, ok := s.Row(y)
		if !ok {
			continue
		}
		x0 := max(row.MinX, center.X-r)
		x1 := min(row.MaxX, center.X+r)
		dy := int32(y - center.Y)
		for x := x0; x <= x1; x++ {
			smp := n.Geometry.Locate(sin, cos, int32(x-center.X), dy)
			if smp.Class == ClassOutside {
				continue
			}
			if c, ok := n.Shade(smp, Color(row.Pix[x])); ok {
				row.Pix[x] = byte(c)
			}
		}
	}

	if deg := AngleToDegrees(st.Heading.Angle); deg != st.Degrees {
		st.Degrees = deg
		if st.Digits != nil {
			st.Digits.MarkDirty()
		}
	}
}
