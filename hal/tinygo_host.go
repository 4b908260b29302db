//go:build tinygo && !baremetal

package hal

import (
	"fmt"
	"runtime"
	"time"
)

type tinyGoHostHAL struct {
	logger  *tinyGoHostLogger
	led     *tinyGoHostLED
	fb      *memFramebuffer
	kbd     *tinyGoHostKeyboard
	t       *tinyGoTime
	compass *simCompass
	battery *simBattery
}

// New returns a TinyGo-on-host HAL implementation with simulated sensors.
//
// This is used by `tinygo run` targets like linux/wasm where there is no MCU pin mapping.
func New(cfg DisplayConfig) HAL {
	l := &tinyGoHostLogger{}
	return &tinyGoHostHAL{
		logger:  l,
		led:     &tinyGoHostLED{logger: l},
		fb:      newMemFramebuffer(cfg),
		kbd:     newTinyGoHostKeyboard(),
		t:       newTinyGoTime(),
		compass: newSimCompass(simCompassRate, time.Now),
		battery: newSimBattery(simBatteryStep, time.Now),
	}
}

func (h *tinyGoHostHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHostHAL) LED() LED         { return h.led }
func (h *tinyGoHostHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHostHAL) Input() Input     { return tinyGoInput{kbd: h.kbd} }
func (h *tinyGoHostHAL) Time() Time       { return h.t }
func (h *tinyGoHostHAL) Compass() Compass { return h.compass }
func (h *tinyGoHostHAL) Battery() Battery { return h.battery }

type tinyGoHostLogger struct{}

func (l *tinyGoHostLogger) WriteLineString(s string) {
	println(s)
}

func (l *tinyGoHostLogger) WriteLineBytes(b []byte) {
	println(string(b))
}

type tinyGoHostLED struct {
	on     bool
	logger *tinyGoHostLogger
}

func (l *tinyGoHostLED) High() {
	l.on = true
	l.logger.WriteLineString(fmt.Sprintf("backlight: on (tinygo/%s)", runtime.GOOS))
}

func (l *tinyGoHostLED) Low() {
	l.on = false
	l.logger.WriteLineString(fmt.Sprintf("backlight: off (tinygo/%s)", runtime.GOOS))
}

type tinyGoHostKeyboard struct {
	ch chan KeyEvent
}

func newTinyGoHostKeyboard() *tinyGoHostKeyboard {
	return &tinyGoHostKeyboard{ch: make(chan KeyEvent)}
}

func (k *tinyGoHostKeyboard) Events() <-chan KeyEvent { return k.ch }
