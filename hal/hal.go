package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction. On the watch it drives the
// display backlight.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatARGB8 is 8bpp: aarrggbb, two bits per channel.
	PixelFormatARGB8 PixelFormat = iota + 1
)

// Framebuffer is a pixel buffer plus a "present" hook.
//
// Round panels expose the same rectangular buffer but report narrower row
// ranges; pixels outside a row's range are never shown and must not be
// written.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte

	// RowRange returns the visible columns of row y, inclusive.
	RowRange(y int) (minX, maxX int, ok bool)

	// Capture locks the buffer for drawing; Release unlocks it. Readers
	// (window, terminal, panel flush) take the same lock.
	Capture()
	Release()

	Clear(c uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
}

// Time provides a base tick stream.
//
// Ticks are nominally one millisecond apart.
type Time interface {
	Ticks() <-chan uint64
}

// Compass reads the raw magnetic field in sensor units.
type Compass interface {
	ReadField() (x, y, z int32, err error)
}

// Steerable is implemented by simulated compasses that can be turned by hand.
type Steerable interface {
	Steer(deltaDeg int32)
}

// ChargeState is a battery reading.
type ChargeState struct {
	Percent  int
	Charging bool
	Plugged  bool
}

// Battery reports the charge state.
type Battery interface {
	ChargeState() (ChargeState, error)
}

// HAL provides the only contact point between the watchface and the outside
// world.
type HAL interface {
	Logger() Logger
	LED() LED
	Display() Display
	Input() Input
	Time() Time
	Compass() Compass
	Battery() Battery
}

// DisplayConfig selects the emulated panel.
type DisplayConfig struct {
	// Round selects the 180x180 round panel instead of the 144x168
	// rectangular one.
	Round bool
}

// Size returns the panel dimensions.
func (c DisplayConfig) Size() (w, h int) {
	if c.Round {
		return 180, 180
	}
	return 144, 168
}
