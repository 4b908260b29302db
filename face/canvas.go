package face

import (
	"image"
	"image/color"

	"compass/face/gfx"
	"compass/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Canvas draws into a gfx.Surface. It implements drivers.Displayer so tinyfont
// and tinydraw can render through it; every write is clipped to the row
// ranges the surface reports.
type Canvas struct {
	s gfx.Surface
}

var _ drivers.Displayer = (*Canvas)(nil)

func NewCanvas(s gfx.Surface) *Canvas {
	return &Canvas{s: s}
}

// Surface returns the underlying surface.
func (c *Canvas) Surface() gfx.Surface { return c.s }

func (c *Canvas) Size() (x, y int16) {
	w, h := c.s.Size()
	return int16(w), int16(h)
}

func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	c.Set(int(x), int(y), gfx.FromRGBA(col)|gfx.Black)
}

func (c *Canvas) Display() error { return nil }

// Set writes one pixel if it is visible.
func (c *Canvas) Set(x, y int, col gfx.Color) {
	row, ok := c.s.Row(y)
	if !ok || x < row.MinX || x > row.MaxX {
		return
	}
	row.Pix[x] = byte(col)
}

// Fill paints every visible pixel.
func (c *Canvas) Fill(col gfx.Color) {
	_, h := c.s.Size()
	for y := 0; y < h; y++ {
		row, ok := c.s.Row(y)
		if !ok {
			continue
		}
		for x := row.MinX; x <= row.MaxX; x++ {
			row.Pix[x] = byte(col)
		}
	}
}

// FillRect paints the visible part of r.
func (c *Canvas) FillRect(r image.Rectangle, col gfx.Color) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row, ok := c.s.Row(y)
		if !ok {
			continue
		}
		x0 := max(r.Min.X, row.MinX)
		x1 := min(r.Max.X-1, row.MaxX)
		for x := x0; x <= x1; x++ {
			row.Pix[x] = byte(col)
		}
	}
}

// Text draws s with its baseline at y, starting at x, and returns the pixel
// width of the line.
func (c *Canvas) Text(font tinyfont.Fonter, x, y int, s string, col gfx.Color) int {
	tinyfont.WriteLine(c, font, int16(x), int16(y), s, col.RGBA())
	_, w := tinyfont.LineWidth(font, s)
	return int(w)
}

// fbSurface exposes a hal.Framebuffer as a gfx.Surface. The caller holds the
// framebuffer capture while using it.
type fbSurface struct {
	fb hal.Framebuffer
}

func (s fbSurface) Size() (w, h int) { return s.fb.Width(), s.fb.Height() }

func (s fbSurface) Row(y int) (gfx.Row, bool) {
	minX, maxX, ok := s.fb.RowRange(y)
	if !ok {
		return gfx.Row{}, false
	}
	stride := s.fb.StrideBytes()
	buf := s.fb.Buffer()
	if (y+1)*stride > len(buf) || maxX >= stride {
		return gfx.Row{}, false
	}
	return gfx.Row{Pix: buf[y*stride : y*stride+stride], MinX: minX, MaxX: maxX}, true
}

// FramebufferSurface wraps fb for direct drawing. The caller captures fb for
// as long as the surface is in use.
func FramebufferSurface(fb hal.Framebuffer) gfx.Surface {
	return fbSurface{fb: fb}
}
