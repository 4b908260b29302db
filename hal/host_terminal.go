//go:build !tinygo

package hal

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"
)

// TerminalConfig controls the terminal preview runner.
type TerminalConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
}

// RunTerminal runs the watchface inside the terminal, drawing two pixel rows
// per character cell with upper-half blocks. Escape or Ctrl-C quits.
func RunTerminal(ctx context.Context, disp DisplayConfig, newApp func(HAL) func() error, cfg TerminalConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 30
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid terminal hz: %d", cfg.Hz)
	}

	h := New(disp).(*hostHAL)

	// Log lines would tear the screen; hold them until it is gone.
	var held bytes.Buffer
	out := h.logger.setOutput(&held)
	defer func() {
		h.logger.setOutput(out)
		_, _ = out.Write(held.Bytes())
	}()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()

	step := newApp(h)
	tv := newTermView(h.fb)

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !forwardTermKey(h.kbd, ev) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-t.C:
			h.t.step(1)
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tv.draw(screen)
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

// forwardTermKey maps a terminal key to a KeyEvent. It returns false when the
// key asks to quit.
func forwardTermKey(kbd *hostKeyboard, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		kbd.emit(KeyEvent{Code: KeyLeft, Press: true})
	case tcell.KeyRight:
		kbd.emit(KeyEvent{Code: KeyRight, Press: true})
	case tcell.KeyUp:
		kbd.emit(KeyEvent{Code: KeyUp, Press: true})
	case tcell.KeyDown:
		kbd.emit(KeyEvent{Code: KeyDown, Press: true})
	case tcell.KeyEnter:
		kbd.emit(KeyEvent{Code: KeyEnter, Press: true})
	case tcell.KeyRune:
		kbd.emit(KeyEvent{Press: true, Rune: ev.Rune()})
	}
	return true
}

// termView scales framebuffer snapshots to the terminal cell grid.
type termView struct {
	fb  *memFramebuffer
	src *image.RGBA
	dst *image.RGBA
}

func newTermView(fb *memFramebuffer) *termView {
	return &termView{
		fb:  fb,
		src: image.NewRGBA(image.Rect(0, 0, fb.width, fb.height)),
	}
}

// fit returns the scaled image size for a cols x rows terminal, where each
// cell holds two pixels vertically.
func (v *termView) fit(cols, rows int) (w, h int) {
	fw, fh := v.fb.width, v.fb.height
	w, h = fw, fh
	if w > cols {
		w, h = cols, fh*cols/fw
	}
	if h > rows*2 {
		w, h = fw*rows*2/fh, rows*2
	}
	return w, h &^ 1
}

func (v *termView) draw(screen tcell.Screen) {
	cols, rows := screen.Size()
	w, h := v.fit(cols, rows)
	if w <= 0 || h <= 0 {
		return
	}

	v.fb.snapshotRGBA(v.src.Pix)
	if v.dst == nil || v.dst.Bounds().Dx() != w || v.dst.Bounds().Dy() != h {
		v.dst = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	if w == v.fb.width && h == v.fb.height {
		copy(v.dst.Pix, v.src.Pix)
	} else {
		xdraw.ApproxBiLinear.Scale(v.dst, v.dst.Bounds(), v.src, v.src.Bounds(), xdraw.Src, nil)
	}

	ox := (cols - w) / 2
	oy := (rows - h/2) / 2
	for cy := 0; cy < h/2; cy++ {
		for cx := 0; cx < w; cx++ {
			top := v.dst.RGBAAt(cx, 2*cy)
			bot := v.dst.RGBAAt(cx, 2*cy+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
			screen.SetContent(ox+cx, oy+cy, '▀', nil, style)
		}
	}
	screen.Show()
}
