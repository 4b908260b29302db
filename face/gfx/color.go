package gfx

import "image/color"

// Color is a packed ARGB8 pixel: two bits each of alpha, red, green and blue,
// most significant first.
type Color uint8

const opaque Color = 0xC0

// RGB222 packs opaque 2-bit channels.
func RGB222(r, g, b uint8) Color {
	return opaque | Color(r&3)<<4 | Color(g&3)<<2 | Color(b&3)
}

// FromHex quantizes a 0xRRGGBB value to an opaque Color.
func FromHex(rgb uint32) Color {
	return RGB222(uint8(rgb>>22), uint8(rgb>>14), uint8(rgb>>6))
}

// FromRGBA quantizes an 8-bit colour, keeping its alpha.
func FromRGBA(c color.RGBA) Color {
	return Color(c.A>>6)<<6 | Color(c.R>>6)<<4 | Color(c.G>>6)<<2 | Color(c.B>>6)
}

// Channels returns the 2-bit red, green and blue levels.
func (c Color) Channels() (r, g, b uint8) {
	return uint8(c>>4) & 3, uint8(c>>2) & 3, uint8(c) & 3
}

// RGBA expands c to 8-bit channels.
func (c Color) RGBA() color.RGBA {
	r, g, b := c.Channels()
	return color.RGBA{R: r * 0x55, G: g * 0x55, B: b * 0x55, A: uint8(c>>6) * 0x55}
}

// Palette entries used by the watchface.
var (
	Black             = FromHex(0x000000)
	White             = FromHex(0xFFFFFF)
	DarkGray          = FromHex(0x555555)
	Red               = FromHex(0xFF0000)
	BlueMoon          = FromHex(0x0055FF)
	Orange            = FromHex(0xFF5500)
	Icterine          = FromHex(0xFFFF55)
	ChromeYellow      = FromHex(0xFFAA00)
	ArmyGreen         = FromHex(0x555500)
	MediumSpringGreen = FromHex(0x00FF55)
)

// Blend interpolates from c0 (alpha 0) to c1 (alpha Scale), channel by
// channel with rounding. Alpha outside [0, Scale] is clamped. The result is
// always opaque.
func Blend(alpha int32, c0, c1 Color) Color {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > Scale {
		alpha = Scale
	}
	a := uint32(alpha)
	beta := uint32(Scale) - a

	r0, g0, b0 := c0.Channels()
	r1, g1, b1 := c1.Channels()

	mix := func(ch0, ch1 uint8) Color {
		x := uint32(ch1)*a + uint32(ch0)*beta + uint32(fixedHalf)
		return Color(x>>fixedShift) & 3
	}
	return opaque | mix(r0, r1)<<4 | mix(g0, g1)<<2 | mix(b0, b1)
}
