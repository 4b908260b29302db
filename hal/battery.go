package hal

// chargeFromMillivolts maps a LiPo voltage to a percentage. Voltages above
// the USB threshold mean the charger is connected.
func chargeFromMillivolts(mv int) ChargeState {
	const (
		emptyMV = 3300
		fullMV  = 4150
		usbMV   = 4300
	)
	st := ChargeState{}
	if mv >= usbMV {
		st.Plugged = true
		st.Charging = true
	}
	switch {
	case mv <= emptyMV:
		st.Percent = 0
	case mv >= fullMV:
		st.Percent = 100
	default:
		st.Percent = (mv - emptyMV) * 100 / (fullMV - emptyMV)
	}
	return st
}

// nullCompass reports ErrNotImplemented; the face shows an invalid heading.
type nullCompass struct{}

func (nullCompass) ReadField() (x, y, z int32, err error) { return 0, 0, 0, ErrNotImplemented }
