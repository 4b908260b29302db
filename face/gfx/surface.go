package gfx

// Row is one writable display row. Pix is indexed by absolute column; only
// columns MinX..MaxX (inclusive) are valid.
type Row struct {
	Pix  []byte
	MinX int
	MaxX int
}

// Surface hands out rows of a pixel buffer.
//
// Row reports ok=false for rows outside the buffer or rows with no visible
// pixels. A returned Row must satisfy 0 <= MinX <= MaxX < len(Pix).
type Surface interface {
	Size() (w, h int)
	Row(y int) (Row, bool)
}

// Bitmap is an in-memory Surface with optional per-row column spans.
type Bitmap struct {
	w, h  int
	pix   []byte
	spans [][2]int16
}

// NewBitmap returns a w×h bitmap with every column of every row valid.
func NewBitmap(w, h int) *Bitmap {
	b := &Bitmap{w: w, h: h, pix: make([]byte, w*h), spans: make([][2]int16, h)}
	for y := range b.spans {
		b.spans[y] = [2]int16{0, int16(w - 1)}
	}
	return b
}

// NewRoundBitmap returns a d×d bitmap whose rows are clipped to the inscribed
// circle, the way a round panel exposes its framebuffer.
func NewRoundBitmap(d int) *Bitmap {
	b := &Bitmap{w: d, h: d, pix: make([]byte, d*d), spans: make([][2]int16, d)}
	for y := range b.spans {
		minX, maxX, ok := CircleSpan(d, y)
		if !ok {
			b.spans[y] = [2]int16{0, -1}
			continue
		}
		b.spans[y] = [2]int16{int16(minX), int16(maxX)}
	}
	return b
}

// CircleSpan returns the columns of row y whose pixel centres lie inside the
// circle inscribed in a d×d square.
func CircleSpan(d, y int) (minX, maxX int, ok bool) {
	if d <= 0 || y < 0 || y >= d {
		return 0, 0, false
	}
	// Doubled coordinates keep pixel centres on integers.
	ty := int64(2*y + 1 - d)
	r2 := int64(d) * int64(d)
	if ty*ty > r2 {
		return 0, 0, false
	}
	hx := Isqrt(r2 - ty*ty)
	minX = int((int64(d) - 1 - hx + 1) / 2)
	maxX = int((int64(d) - 1 + hx) / 2)
	if minX > maxX {
		return 0, 0, false
	}
	return minX, maxX, true
}

func (b *Bitmap) Size() (w, h int) { return b.w, b.h }

func (b *Bitmap) Row(y int) (Row, bool) {
	if y < 0 || y >= b.h {
		return Row{}, false
	}
	s := b.spans[y]
	if s[1] < s[0] {
		return Row{}, false
	}
	return Row{Pix: b.pix[y*b.w : (y+1)*b.w], MinX: int(s[0]), MaxX: int(s[1])}, true
}

// Fill sets every visible pixel to c.
func (b *Bitmap) Fill(c Color) {
	for y := 0; y < b.h; y++ {
		row, ok := b.Row(y)
		if !ok {
			continue
		}
		for x := row.MinX; x <= row.MaxX; x++ {
			row.Pix[x] = byte(c)
		}
	}
}

// At returns the stored pixel, visible or not. Out-of-range reads return 0.
func (b *Bitmap) At(x, y int) Color {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return 0
	}
	return Color(b.pix[y*b.w+x])
}

// Set stores c at (x, y) when that pixel is visible.
func (b *Bitmap) Set(x, y int, c Color) {
	row, ok := b.Row(y)
	if !ok || x < row.MinX || x > row.MaxX {
		return
	}
	row.Pix[x] = byte(c)
}

// Pix exposes the backing store, row-major with stride equal to the width.
func (b *Bitmap) Pix() []byte { return b.pix }
