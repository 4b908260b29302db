package hal

import "image/color"

// argb8ToRGB expands the colour channels of an aarrggbb pixel.
func argb8ToRGB(p uint8) (r, g, b uint8) {
	r = ((p >> 4) & 3) * 0x55
	g = ((p >> 2) & 3) * 0x55
	b = (p & 3) * 0x55
	return r, g, b
}

// argb8ToRGBA expands p to an opaque color.RGBA. Panels have no alpha, so
// the alpha bits are ignored.
func argb8ToRGBA(p uint8) color.RGBA {
	r, g, b := argb8ToRGB(p)
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// bezel is shown for pixels a round panel does not have.
var bezel = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF}

// expandRows converts an ARGB8 buffer into RGBA (4 bytes per pixel),
// painting columns outside each row's range with the bezel colour.
func expandRows(dst, src []byte, w, h, stride int, rowRange func(y int) (int, int, bool)) {
	for y := 0; y < h; y++ {
		minX, maxX, ok := rowRange(y)
		if !ok {
			minX, maxX = 0, -1
		}
		row := src[y*stride : y*stride+w]
		out := dst[y*w*4 : (y+1)*w*4]
		for x := 0; x < w; x++ {
			c := bezel
			if x >= minX && x <= maxX {
				c = argb8ToRGBA(row[x])
			}
			j := x * 4
			out[j+0] = c.R
			out[j+1] = c.G
			out[j+2] = c.B
			out[j+3] = c.A
		}
	}
}
