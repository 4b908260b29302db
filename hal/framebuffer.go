package hal

import (
	"sync"
	"sync/atomic"

	"compass/face/gfx"
)

// memFramebuffer is an ARGB8 framebuffer in RAM. Host builds present it
// through a window or terminal; the TinyGo build flushes it to the panel.
type memFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
	spans  [][2]int16

	// flush pushes the buffer to a panel. Nil on host builds, where the
	// window or terminal pulls snapshots instead.
	flush func(f *memFramebuffer) error

	presents atomic.Uint64
}

func newMemFramebuffer(cfg DisplayConfig) *memFramebuffer {
	width, height := cfg.Size()
	f := &memFramebuffer{
		width:  width,
		height: height,
		stride: width,
		buf:    make([]byte, width*height),
		spans:  make([][2]int16, height),
	}
	for y := range f.spans {
		f.spans[y] = [2]int16{0, int16(width - 1)}
		if !cfg.Round {
			continue
		}
		minX, maxX, ok := gfx.CircleSpan(width, y)
		if !ok {
			f.spans[y] = [2]int16{0, -1}
			continue
		}
		f.spans[y] = [2]int16{int16(minX), int16(maxX)}
	}
	return f
}

func (f *memFramebuffer) Width() int          { return f.width }
func (f *memFramebuffer) Height() int         { return f.height }
func (f *memFramebuffer) Format() PixelFormat { return PixelFormatARGB8 }
func (f *memFramebuffer) StrideBytes() int    { return f.stride }
func (f *memFramebuffer) Buffer() []byte      { return f.buf }
func (f *memFramebuffer) Capture()            { f.mu.Lock() }
func (f *memFramebuffer) Release()            { f.mu.Unlock() }

func (f *memFramebuffer) Present() error {
	f.presents.Add(1)
	if f.flush == nil {
		return nil
	}
	return f.flush(f)
}

// presentCount is the number of frames presented so far.
func (f *memFramebuffer) presentCount() uint64 { return f.presents.Load() }

func (f *memFramebuffer) RowRange(y int) (minX, maxX int, ok bool) {
	if y < 0 || y >= f.height {
		return 0, 0, false
	}
	s := f.spans[y]
	if s[1] < s[0] {
		return 0, 0, false
	}
	return int(s[0]), int(s[1]), true
}

// Clear fills every visible pixel with c. The caller holds the capture.
func (f *memFramebuffer) Clear(c uint8) {
	for y := 0; y < f.height; y++ {
		minX, maxX, ok := f.RowRange(y)
		if !ok {
			continue
		}
		row := f.buf[y*f.stride : y*f.stride+f.width]
		for x := minX; x <= maxX; x++ {
			row[x] = c
		}
	}
}

// snapshotRGBA copies the framebuffer into dst as RGBA under the lock.
func (f *memFramebuffer) snapshotRGBA(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	expandRows(dst, f.buf, f.width, f.height, f.stride, f.RowRange)
}
