// Package face is the compass watchface: a background rose, the clock, the
// heading readout with a calibration lamp, the needle and a charge bar.
package face

import (
	"fmt"
	"time"

	"compass/face/event"
	"compass/face/gfx"
	"compass/hal"

	"tinygo.org/x/tinydraw"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// DefaultBudget is the time the needle may take per frame on the watch.
const DefaultBudget = 20 * time.Millisecond

// Config selects the geometry and presentation of the face.
type Config struct {
	Geometry gfx.Geometry
	Clock24h bool

	// Budget is the needle draw time above which a frame is logged.
	Budget time.Duration
}

// State is what the layers draw from. It is owned by the UI thread.
type State struct {
	Needle gfx.State
	Charge hal.ChargeState
	Now    time.Time
	Second int
}

var chargeRamp = gfx.MustRamp(
	gfx.RampEntry{Threshold: 100, Color: gfx.FromHex(0x00FF55)},
	gfx.RampEntry{Threshold: 90, Color: gfx.FromHex(0x00FF00)},
	gfx.RampEntry{Threshold: 80, Color: gfx.FromHex(0x55FF00)},
	gfx.RampEntry{Threshold: 70, Color: gfx.FromHex(0xAAFF00)},
	gfx.RampEntry{Threshold: 50, Color: gfx.FromHex(0xFFFF00)},
	gfx.RampEntry{Threshold: 30, Color: gfx.FromHex(0xFFAA00)},
	gfx.RampEntry{Threshold: 20, Color: gfx.FromHex(0xFF5500)},
	gfx.RampEntry{Threshold: 0, Color: gfx.FromHex(0xFF0000)},
	gfx.RampEntry{Threshold: -1, Color: gfx.FromHex(0xFFFFFF)},
)

// ChargeColor returns the bar colour for a charge percentage.
func ChargeColor(percent int) gfx.Color {
	return chargeRamp.ColorFor(percent)
}

var font tinyfont.Fonter = &proggy.TinySZ8pt7b

// textBaseline is the baseline offset inside a 16 pixel text box.
const textBaseline = 12

// Face owns the window and the state it draws.
type Face struct {
	cfg    Config
	log    hal.Logger
	now    func() time.Time
	layout Layout

	needle *gfx.Needle
	st     State

	win    Window
	back   *Layer
	clock  *Layer
	digits *Layer
	arrow  *Layer
	charge *Layer

	overruns int
	lastTook time.Duration
}

// New builds a face for a w x h panel.
func New(cfg Config, w, h int, round bool, log hal.Logger) *Face {
	return newWithClock(cfg, w, h, round, log, time.Now)
}

func newWithClock(cfg Config, w, h int, round bool, log hal.Logger, now func() time.Time) *Face {
	if cfg.Geometry.Radius == 0 {
		cfg.Geometry = gfx.MustGeometry(12, 48)
	}
	if cfg.Budget <= 0 {
		cfg.Budget = DefaultBudget
	}
	f := &Face{
		cfg:    cfg,
		log:    log,
		now:    now,
		layout: LayoutFor(w, h, round),
		needle: gfx.NewNeedle(cfg.Geometry),
	}
	f.st.Needle.Degrees = -1
	f.st.Needle.Heading.Status = gfx.StatusInvalid
	f.st.Now = now()
	f.st.Second = f.st.Now.Second()

	f.back = f.win.Add("back", f.drawBack)
	f.clock = f.win.Add("time", f.drawTime)
	f.digits = f.win.Add("digits", f.drawDigits)
	f.arrow = f.win.Add("needle", f.drawNeedle)
	f.charge = f.win.Add("charge", f.drawCharge)
	f.st.Needle.Digits = f.digits

	f.logf("face: %dx%d round=%v needle %s", w, h, round, cfg.Geometry)
	return f
}

// Subscribe routes queue events to the face.
func (f *Face) Subscribe(q *event.Queue) {
	q.Subscribe(event.KindHeading, func(ev event.Event) { f.SetHeading(ev.Heading) })
	q.Subscribe(event.KindBattery, func(ev event.Event) { f.SetCharge(ev.Charge) })
	q.Subscribe(event.KindTick, func(ev event.Event) { f.Tick(ev.Time) })
}

// SetHeading stores a new heading and schedules the needle.
func (f *Face) SetHeading(h gfx.Heading) {
	if h.Status != f.st.Needle.Heading.Status {
		f.digits.MarkDirty()
	}
	f.st.Needle.Heading = h
	f.arrow.MarkDirty()
}

// SetCharge stores a battery reading and schedules the charge bar.
func (f *Face) SetCharge(c hal.ChargeState) {
	f.st.Charge = c
	f.charge.MarkDirty()
}

// Tick advances the clock; the digits layer blinks the calibration lamp.
func (f *Face) Tick(t time.Time) {
	if t.IsZero() {
		t = f.now()
	}
	if t.Minute() != f.st.Now.Minute() || t.Hour() != f.st.Now.Hour() {
		f.clock.MarkDirty()
	}
	f.st.Now = t
	f.st.Second = t.Second()
	f.digits.MarkDirty()
}

// State returns a copy of the drawing state.
func (f *Face) State() State { return f.st }

// Dirty reports whether the next Render will draw.
func (f *Face) Dirty() bool { return f.win.Dirty() }

// LastNeedleTime is how long the most recent needle pass took.
func (f *Face) LastNeedleTime() time.Duration { return f.lastTook }

// Render redraws the window into fb when anything is dirty, then presents it.
func (f *Face) Render(fb hal.Framebuffer) (bool, error) {
	if fb == nil || fb.Format() != hal.PixelFormatARGB8 {
		return false, fmt.Errorf("face: render: %w", hal.ErrNotImplemented)
	}
	if !f.win.Dirty() {
		return false, nil
	}
	f.draw(fb)
	if err := fb.Present(); err != nil {
		return true, fmt.Errorf("face: present: %w", err)
	}
	return true, nil
}

func (f *Face) draw(fb hal.Framebuffer) {
	fb.Capture()
	defer fb.Release()
	f.win.Render(NewCanvas(fbSurface{fb: fb}))
}

// RenderTo redraws into an in-memory surface.
func (f *Face) RenderTo(s gfx.Surface) bool {
	return f.win.Render(NewCanvas(s))
}

func (f *Face) drawBack(c *Canvas) {
	c.Fill(gfx.Black)
	ic := gfx.Icterine.RGBA()
	o := f.layout.Center
	for _, t := range f.layout.Rose {
		tinydraw.FilledTriangle(c,
			int16(o.X+t[0].X), int16(o.Y+t[0].Y),
			int16(o.X+t[1].X), int16(o.Y+t[1].Y),
			int16(o.X+t[2].X), int16(o.Y+t[2].Y),
			ic)
	}
}

func (f *Face) drawTime(c *Canvas) {
	layout := "03:04pm"
	if f.cfg.Clock24h {
		layout = "15:04"
	}
	at := f.layout.TimeAt
	c.Text(font, at.X, at.Y+textBaseline, f.st.Now.Format(layout), gfx.White)
}

// HeadText is the heading readout for the current state.
func (f *Face) HeadText() string {
	n := f.st.Needle
	if n.Heading.Status == gfx.StatusInvalid || n.Degrees < 0 {
		return " ----"
	}
	return fmt.Sprintf(" %03d", n.Degrees)
}

// StatusColor is the calibration lamp colour.
func (f *Face) StatusColor() gfx.Color {
	switch f.st.Needle.Heading.Status {
	case gfx.StatusInvalid:
		return gfx.Red
	case gfx.StatusCalibrating:
		if f.st.Second&1 != 0 {
			return gfx.ChromeYellow
		}
		return gfx.ArmyGreen
	case gfx.StatusCalibrated:
		return gfx.MediumSpringGreen
	}
	return gfx.DarkGray
}

func (f *Face) drawDigits(c *Canvas) {
	sc := f.layout.StatusCenter
	r := int16(f.layout.StatusRadius)
	tinydraw.FilledCircle(c, int16(sc.X), int16(sc.Y), r, f.StatusColor().RGBA())
	tinydraw.Circle(c, int16(sc.X), int16(sc.Y), r, gfx.White.RGBA())

	at := f.layout.HeadAt
	text := f.HeadText()
	w := c.Text(font, at.X, at.Y+textBaseline, text, gfx.White)
	if text != " ----" {
		// Degree sign.
		tinydraw.Circle(c, int16(at.X+w+3), int16(at.Y+4), 2, gfx.White.RGBA())
	}
}

func (f *Face) drawNeedle(c *Canvas) {
	start := f.now()
	f.needle.Draw(c.Surface(), f.layout.Center, &f.st.Needle)
	f.lastTook = f.now().Sub(start)
	if f.lastTook <= f.cfg.Budget {
		return
	}
	f.overruns++
	if f.overruns == 1 || f.overruns%100 == 0 {
		f.logf("face: needle took %v, budget %v (%d overruns)", f.lastTook, f.cfg.Budget, f.overruns)
	}
}

func (f *Face) drawCharge(c *Canvas) {
	c.FillRect(f.layout.ChargeBar(f.st.Charge.Percent), ChargeColor(f.st.Charge.Percent))
	fr := f.layout.ChargeFrame
	tinydraw.Rectangle(c, int16(fr.Min.X), int16(fr.Min.Y), int16(fr.Dx()), int16(fr.Dy()), gfx.White.RGBA())
}

func (f *Face) logf(format string, args ...any) {
	if f.log == nil {
		return
	}
	f.log.WriteLineString(fmt.Sprintf(format, args...))
}
