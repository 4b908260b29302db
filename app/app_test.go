package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"compass/face"
	"compass/face/gfx"
	"compass/face/sensor"
	"compass/hal"
)

type lineLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *lineLog) WriteLineString(s string) {
	l.mu.Lock()
	l.lines = append(l.lines, s)
	l.mu.Unlock()
}

func (l *lineLog) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func (l *lineLog) contains(sub string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.lines {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

type fakeLED struct{ on bool }

func (l *fakeLED) High() { l.on = true }
func (l *fakeLED) Low()  { l.on = false }

type fakeFB struct {
	mu       sync.Mutex
	w, h     int
	pix      []byte
	presents int
}

func newFakeFB(w, h int) *fakeFB { return &fakeFB{w: w, h: h, pix: make([]byte, w*h)} }

func (f *fakeFB) Width() int              { return f.w }
func (f *fakeFB) Height() int             { return f.h }
func (f *fakeFB) Format() hal.PixelFormat { return hal.PixelFormatARGB8 }
func (f *fakeFB) StrideBytes() int        { return f.w }
func (f *fakeFB) Buffer() []byte          { return f.pix }

func (f *fakeFB) RowRange(y int) (int, int, bool) {
	return 0, f.w - 1, y >= 0 && y < f.h
}

func (f *fakeFB) Capture() { f.mu.Lock() }
func (f *fakeFB) Release() { f.mu.Unlock() }

func (f *fakeFB) Clear(c uint8) {
	for i := range f.pix {
		f.pix[i] = c
	}
}

func (f *fakeFB) Present() error {
	f.presents++
	return nil
}

func (f *fakeFB) at(x, y int) gfx.Color { return gfx.Color(f.pix[y*f.w+x]) }

type fakeCompass struct {
	x, y  int32
	steer []int32
}

func (c *fakeCompass) ReadField() (int32, int32, int32, error) { return c.x, c.y, 0, nil }
func (c *fakeCompass) Steer(d int32)                           { c.steer = append(c.steer, d) }

type fakeBattery struct{ st hal.ChargeState }

func (b *fakeBattery) ChargeState() (hal.ChargeState, error) { return b.st, nil }

type fakeKeyboard struct{ ch chan hal.KeyEvent }

func (k fakeKeyboard) Events() <-chan hal.KeyEvent { return k.ch }

type fakeTime struct{ ch chan uint64 }

func (t fakeTime) Ticks() <-chan uint64 { return t.ch }

type fakeHAL struct {
	ticks   chan uint64
	log     *lineLog
	led     *fakeLED
	fb      *fakeFB
	kbd     fakeKeyboard
	compass *fakeCompass
	battery *fakeBattery
}

func newFakeHAL() *fakeHAL {
	return &fakeHAL{
		log:     &lineLog{},
		led:     &fakeLED{},
		fb:      newFakeFB(144, 168),
		kbd:     fakeKeyboard{ch: make(chan hal.KeyEvent, 8)},
		compass: &fakeCompass{x: 100, y: 0},
		battery: &fakeBattery{st: hal.ChargeState{Percent: 70}},
	}
}

type fakeDisplay struct{ fb hal.Framebuffer }

func (d fakeDisplay) Framebuffer() hal.Framebuffer { return d.fb }

type fakeInput struct{ kbd hal.Keyboard }

func (in fakeInput) Keyboard() hal.Keyboard { return in.kbd }

func (h *fakeHAL) Logger() hal.Logger   { return h.log }
func (h *fakeHAL) LED() hal.LED         { return h.led }
func (h *fakeHAL) Display() hal.Display { return fakeDisplay{fb: h.fb} }
func (h *fakeHAL) Input() hal.Input     { return fakeInput{kbd: h.kbd} }
func (h *fakeHAL) Time() hal.Time {
	if h.ticks == nil {
		return nil
	}
	return fakeTime{ch: h.ticks}
}

func (h *fakeHAL) Compass() hal.Compass { return h.compass }
func (h *fakeHAL) Battery() hal.Battery { return h.battery }

func TestConfigDefaults(t *testing.T) {
	c := Config{FilterDeg: -4}.withDefaults()
	if c.A != 12 || c.B != 48 {
		t.Fatalf("geometry = %d/%d, want 12/48", c.A, c.B)
	}
	if c.Budget != face.DefaultBudget || c.MinSpan != sensor.DefaultMinSpan || c.FilterDeg != 0 || c.Slots <= 0 {
		t.Fatalf("withDefaults() = %+v", c)
	}
}

func TestNewRendersFirstFrame(t *testing.T) {
	h := newFakeHAL()
	step := New(context.Background(), h, Config{})
	if err := step(); err != nil {
		t.Fatalf("step() = %v", err)
	}
	if h.fb.presents != 1 {
		t.Fatalf("presents = %d, want 1", h.fb.presents)
	}
	if !h.led.on {
		t.Fatalf("backlight off after start")
	}
	if !h.log.contains("compass ") || !h.log.contains("A=12 B=48") {
		t.Fatalf("log = %q", h.log.lines)
	}
	if err := step(); err != nil || h.fb.presents != 1 {
		t.Fatalf("idle step: err=%v presents=%d, want nil and 1", err, h.fb.presents)
	}
}

func TestSensorEventsReachFace(t *testing.T) {
	h := newFakeHAL()
	s, err := newSystem(context.Background(), h, Config{})
	if err != nil {
		t.Fatalf("newSystem() = %v", err)
	}
	s.svc.Step(0)
	if err := s.step(); err != nil {
		t.Fatalf("step() = %v", err)
	}
	st := s.face.State()
	if st.Needle.Heading.Status != gfx.StatusCalibrating {
		t.Fatalf("status = %v, want calibrating", st.Needle.Heading.Status)
	}
	if st.Charge.Percent != 70 {
		t.Fatalf("charge = %d, want 70", st.Charge.Percent)
	}
}

func TestKeys(t *testing.T) {
	h := newFakeHAL()
	s, err := newSystem(context.Background(), h, Config{})
	if err != nil {
		t.Fatalf("newSystem() = %v", err)
	}
	h.kbd.ch <- hal.KeyEvent{Code: hal.KeyRight, Press: true}
	h.kbd.ch <- hal.KeyEvent{Code: hal.KeyLeft, Press: true}
	h.kbd.ch <- hal.KeyEvent{Code: hal.KeyLeft, Press: false}
	h.kbd.ch <- hal.KeyEvent{Rune: 'c', Press: true}
	if err := s.step(); err != nil {
		t.Fatalf("step() = %v", err)
	}
	if got := h.compass.steer; len(got) != 2 || got[0] != steerStep || got[1] != -steerStep {
		t.Fatalf("steer = %v, want [%d %d]", got, steerStep, -steerStep)
	}
	s.svc.Step(0)
	if !h.log.contains("sensor: recalibrating") {
		t.Fatalf("log = %q, want a recalibration", h.log.lines)
	}
}

func TestNewBadGeometry(t *testing.T) {
	h := newFakeHAL()
	step := New(context.Background(), h, Config{A: -1})
	if err := step(); !errors.Is(err, gfx.ErrGeometry) {
		t.Fatalf("step() = %v, want ErrGeometry", err)
	}
}

func TestGuardRecoversPanic(t *testing.T) {
	h := newFakeHAL()
	calls := 0
	step := guard(h, func() error {
		calls++
		panic("boom")
	})

	err := step()
	if !errors.Is(err, ErrPanic) || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("step() = %v, want ErrPanic with the value", err)
	}
	if !h.log.contains("compass panic: boom") {
		t.Fatalf("log = %q", h.log.lines)
	}
	if got, want := h.fb.at(0, 0), gfx.FromHex(0x0000AA); got != want {
		t.Fatalf("panic screen = %#x, want %#x", got, want)
	}
	if h.fb.presents != 1 {
		t.Fatalf("presents = %d, want 1", h.fb.presents)
	}
	if err := step(); !errors.Is(err, ErrPanic) || calls != 1 {
		t.Fatalf("second step() = %v after %d calls, want ErrPanic without calling again", err, calls)
	}
}

func TestTakeRunes(t *testing.T) {
	tests := []struct {
		s          string
		n          int
		head, rest string
	}{
		{"abc", 5, "abc", ""},
		{"abcdef", 4, "abcd", "ef"},
		{"héllo", 2, "hé", "llo"},
		{"", 3, "", ""},
		{"abc", 0, "", "abc"},
	}
	for _, tt := range tests {
		head, rest := takeRunes(tt.s, tt.n)
		if head != tt.head || rest != tt.rest {
			t.Fatalf("takeRunes(%q, %d) = %q, %q, want %q, %q", tt.s, tt.n, head, rest, tt.head, tt.rest)
		}
	}
}

func TestSensorGoroutineStopsWithContext(t *testing.T) {
	h := newFakeHAL()
	h.ticks = make(chan uint64)
	ctx, cancel := context.WithCancel(context.Background())
	s, err := newSystem(ctx, h, Config{})
	if err != nil {
		t.Fatalf("newSystem() = %v", err)
	}

	h.ticks <- 1
	select {
	case <-s.done:
		t.Fatalf("sensor goroutine returned before cancel")
	default:
	}

	cancel()
	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("sensor goroutine still running after cancel")
	}
	if h.log.contains("app: sensor") {
		t.Fatalf("log = %q, want no error for a cancelled run", h.log.lines)
	}
}
