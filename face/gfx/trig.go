package gfx

import "math"

const (
	// AngleMax is one full turn. Angles wrap modulo AngleMax.
	AngleMax int32 = 0x10000

	quarterTurn = AngleMax / 4

	// The quarter-wave table has 1<<tableBits steps; the low angle bits
	// interpolate between neighbouring entries.
	tableBits  = 10
	tableSteps = 1 << tableBits
	fracBits   = 14 - tableBits
	fracMask   = 1<<fracBits - 1
)

// sinTable holds sin over [0, quarter turn] inclusive, in Q16.
var sinTable = buildSinTable()

// The table is computed once at startup; lookups never touch floats.
func buildSinTable() [tableSteps + 1]int32 {
	var t [tableSteps + 1]int32
	for i := range t {
		t[i] = int32(math.Round(math.Sin(float64(i)*math.Pi/(2*tableSteps)) * float64(Scale)))
	}
	return t
}

// quarterSin evaluates sin for w in [0, quarterTurn].
func quarterSin(w int32) int32 {
	idx := w >> fracBits
	frac := w & fracMask
	if idx >= tableSteps {
		return sinTable[tableSteps]
	}
	a := sinTable[idx]
	b := sinTable[idx+1]
	return a + ((b-a)*frac+(1<<(fracBits-1)))>>fracBits
}

// Sin returns the Q16 sine of angle, in [-Scale, Scale].
func Sin(angle int32) int32 {
	a := angle & (AngleMax - 1)
	w := a & (quarterTurn - 1)
	switch a / quarterTurn {
	case 0:
		return quarterSin(w)
	case 1:
		return quarterSin(quarterTurn - w)
	case 2:
		return -quarterSin(w)
	default:
		return -quarterSin(quarterTurn - w)
	}
}

// Cos returns the Q16 cosine of angle, in [-Scale, Scale].
func Cos(angle int32) int32 {
	return Sin(angle + quarterTurn)
}

// AngleToDegrees converts an angle to whole degrees, rounded to nearest and
// wrapped into [0, 360).
func AngleToDegrees(angle int32) int16 {
	a := int64(angle & (AngleMax - 1))
	deg := (a*360 + int64(AngleMax)/2) >> fixedShift
	return int16(deg % 360)
}

// DegreesToAngle converts whole degrees to an angle in [0, AngleMax).
func DegreesToAngle(deg int32) int32 {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return int32((int64(deg)*int64(AngleMax) + 180) / 360)
}
