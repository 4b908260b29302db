package gfx

const (
	fixedShift = 16

	// Scale is the Q16 representation of 1.0.
	Scale int32 = 1 << fixedShift

	fixedHalf = int64(1) << (fixedShift - 1)
)

// RatioMul multiplies two Q16 values and rounds the product half away from
// zero, so RatioMul(-a, b) == -RatioMul(a, b).
//
// Operands are usually ratios in [-Scale, Scale], but any pair whose product
// fits in 63 bits is exact to within one unit.
func RatioMul(a, b int32) int32 {
	p := int64(a) * int64(b)
	if p < 0 {
		return -int32((-p + fixedHalf) >> fixedShift)
	}
	return int32((p + fixedHalf) >> fixedShift)
}

// Isqrt returns floor(sqrt(n)) for n >= 0 and 0 otherwise.
func Isqrt(n int64) int64 {
	if n <= 0 {
		return 0
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}

// ceilSqrt returns the smallest r with r*r >= n.
func ceilSqrt(n int64) int64 {
	r := Isqrt(n)
	if r*r < n {
		r++
	}
	return r
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
