//go:build !tinygo && cgo

package hal

import (
	"image"

	"compass/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const windowScale = 3

// RunWindow starts a desktop window that displays the framebuffer and forwards
// keyboard input. Arrow keys steer the simulated compass. It blocks until the
// window closes.
func RunWindow(disp DisplayConfig, newApp func(HAL) func() error) error {
	h := New(disp).(*hostHAL)
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("Compass (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*windowScale, h.fb.height*windowScale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h     *hostHAL
	img   *image.RGBA
	fbImg *ebiten.Image
	step  func() error
}

func (g *hostGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.pollKeys()
	g.h.t.step(1)
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

// pollKeys forwards arrow keys (with key repeat) and typed runes.
func (g *hostGame) pollKeys() {
	kbd := g.h.kbd
	repeat := func(key ebiten.Key) bool {
		d := inpututil.KeyPressDuration(key)
		return d == 1 || (d > 20 && d%4 == 0)
	}
	keys := []struct {
		key  ebiten.Key
		code KeyCode
	}{
		{ebiten.KeyArrowLeft, KeyLeft},
		{ebiten.KeyArrowRight, KeyRight},
		{ebiten.KeyArrowUp, KeyUp},
		{ebiten.KeyArrowDown, KeyDown},
		{ebiten.KeyEnter, KeyEnter},
	}
	for _, k := range keys {
		if repeat(k.key) {
			kbd.emit(KeyEvent{Code: k.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(k.key) {
			kbd.emit(KeyEvent{Code: k.code, Press: false})
		}
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		kbd.emit(KeyEvent{Press: true, Rune: r})
	}
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshotRGBA(g.img.Pix)
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
