//go:build tinygo && baremetal

package hal

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/gc9a01"
	"tinygo.org/x/drivers/lsm303agr"
)

// Panel and pin mapping for an RP2040 board with a 240x240 GC9A01 round
// panel and an external LSM303AGR on I2C1.
const (
	panelSize = 240

	// The 180x180 face is centred on the panel.
	panelOffset = (panelSize - 180) / 2
)

type tinyGoHAL struct {
	logger  *uartLogger
	led     *pinLED
	fb      *memFramebuffer
	kbd     Keyboard
	t       *tinyGoTime
	compass Compass
	battery Battery
}

// New returns the watch HAL. The display is always the round panel; cfg is
// accepted for parity with the host build.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New(cfg DisplayConfig) HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	machine.SPI1.Configure(machine.SPIConfig{
		SCK:       machine.GP10,
		SDO:       machine.GP11,
		Frequency: 40_000_000,
	})
	bl := machine.GP25
	panel := gc9a01.New(machine.SPI1, machine.GP12, machine.GP8, machine.GP9, bl)
	panel.Configure(gc9a01.Config{
		Orientation: gc9a01.HORIZONTAL,
		Width:       panelSize,
		Height:      panelSize,
	})
	panel.FillScreen(color.RGBA{A: 0xFF})

	fb := newMemFramebuffer(DisplayConfig{Round: true})
	fb.flush = newPanelFlush(&panel)

	machine.I2C1.Configure(machine.I2CConfig{
		SDA:       machine.GP6,
		SCL:       machine.GP7,
		Frequency: 400_000,
	})
	var compass Compass = nullCompass{}
	mag := lsm303agr.New(machine.I2C1)
	if err := mag.Configure(lsm303agr.Configuration{
		MagPowerMode:  lsm303agr.MAG_POWER_LOW,
		MagSystemMode: lsm303agr.MAG_SYSTEM_CONTINUOUS,
		MagDataRate:   lsm303agr.MAG_DATARATE_20HZ,
	}); err != nil {
		logger.WriteLineString("hal: lsm303agr: " + err.Error())
	} else {
		compass = magCompass{dev: mag}
	}

	return &tinyGoHAL{
		logger:  logger,
		led:     &pinLED{pin: bl},
		fb:      fb,
		kbd:     &stubKeyboard{},
		t:       newTinyGoTime(),
		compass: compass,
		battery: newADCBattery(machine.ADC{Pin: machine.GP29}),
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) LED() LED         { return h.led }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Input() Input     { return tinyGoInput{kbd: h.kbd} }
func (h *tinyGoHAL) Time() Time       { return h.t }
func (h *tinyGoHAL) Compass() Compass { return h.compass }
func (h *tinyGoHAL) Battery() Battery { return h.battery }

// newPanelFlush returns a flush that copies each visible row span to the
// panel.
func newPanelFlush(panel *gc9a01.Device) func(f *memFramebuffer) error {
	line := make([]color.RGBA, panelSize)
	return func(f *memFramebuffer) error {
		f.mu.Lock()
		defer f.mu.Unlock()

		for y := 0; y < f.height; y++ {
			minX, maxX, ok := f.RowRange(y)
			if !ok {
				continue
			}
			row := f.buf[y*f.stride:]
			n := maxX - minX + 1
			for i := 0; i < n; i++ {
				line[i] = argb8ToRGBA(row[minX+i])
			}
			err := panel.FillRectangleWithBuffer(
				int16(panelOffset+minX), int16(panelOffset+y), int16(n), 1, line[:n])
			if err != nil {
				return err
			}
		}
		return nil
	}
}

// magCompass adapts the LSM303AGR magnetometer.
type magCompass struct {
	dev *lsm303agr.Device
}

func (c magCompass) ReadField() (x, y, z int32, err error) {
	return c.dev.ReadMagneticField()
}

// adcBattery reads the battery through a 1:3 divider on an ADC pin.
type adcBattery struct {
	adc machine.ADC
}

func newADCBattery(adc machine.ADC) *adcBattery {
	machine.InitADC()
	adc.Configure(machine.ADCConfig{})
	return &adcBattery{adc: adc}
}

func (b *adcBattery) ChargeState() (ChargeState, error) {
	// 16-bit reading of a 3.3V reference, times three for the divider.
	mv := int(b.adc.Get()) * 3300 * 3 / 0xFFFF
	return chargeFromMillivolts(mv), nil
}
