package app

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"compass/face"
	"compass/face/gfx"
	"compass/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// ErrPanic is returned by the step function after a recovered panic.
var ErrPanic = errors.New("app: panic")

// guard wraps step so a panic is logged, painted on the display and turned
// into ErrPanic instead of taking the process down without a trace.
func guard(h hal.HAL, step func() error) func() error {
	failed := false
	return func() (err error) {
		if failed {
			return ErrPanic
		}
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			failed = true
			stack := debug.Stack()
			reportPanic(h, v, stack)
			err = fmt.Errorf("%w: %v", ErrPanic, v)
		}()
		return step()
	}
}

func reportPanic(h hal.HAL, v any, stack []byte) {
	if l := h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf("compass panic: %v", v))
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			l.WriteLineString(line)
		}
	}

	disp := h.Display()
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil || fb.Format() != hal.PixelFormatARGB8 {
		return
	}

	font := &proggy.TinySZ8pt7b
	const lineHeight = 10
	_, cw := tinyfont.LineWidth(font, "0")
	if cw == 0 {
		return
	}

	fb.Capture()
	c := face.NewCanvas(face.FramebufferSurface(fb))
	c.Fill(gfx.FromHex(0x0000AA))

	w, ht := fb.Width(), fb.Height()
	// Inset so the text stays inside a round panel.
	x0, y := w/8, ht/5
	cols := max((w-2*x0)/int(cw), 1)
	for _, line := range []string{"panic:", fmt.Sprint(v)} {
		for len(line) > 0 && y < ht-ht/5 {
			chunk, rest := takeRunes(line, cols)
			c.Text(font, x0, y, chunk, gfx.White)
			y += lineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	fb.Release()
	_ = fb.Present()
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
