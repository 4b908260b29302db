package face

import "image"

// Layout positions the face elements for one panel shape.
type Layout struct {
	Center image.Point

	// TimeAt and HeadAt are the top-left corners of the text boxes.
	TimeAt image.Point
	HeadAt image.Point

	StatusCenter image.Point
	StatusRadius int

	// ChargeFrame is outlined; the level bar starts at ChargeLevel and grows
	// ChargeUnit pixels per five percent.
	ChargeFrame image.Rectangle
	ChargeLevel image.Point
	ChargeUnit  int

	// Rose holds the four tick triangles around the dial, relative to Center.
	Rose [4][3]image.Point
}

var rose = [4][3]image.Point{
	{{-7, -67}, {0, -60}, {7, -67}},
	{{7, 67}, {0, 60}, {-7, 67}},
	{{-67, -7}, {-60, 0}, {-67, 7}},
	{{67, 7}, {60, 0}, {67, -7}},
}

// LayoutFor returns the layout of a w x h panel.
func LayoutFor(w, h int, round bool) Layout {
	c := image.Pt(w/2, h/2)
	l := Layout{Center: c, StatusRadius: 8, Rose: rose}
	if round {
		l.TimeAt = image.Pt(c.X-20, c.Y-88)
		l.HeadAt = image.Pt(c.X+8, c.Y-72)
		l.StatusCenter = image.Pt(c.X+48, c.Y+48)
		l.ChargeFrame = image.Rect(c.X-21, c.Y+74, c.X+21, c.Y+82)
		l.ChargeLevel = image.Pt(c.X-20, c.Y+75)
		l.ChargeUnit = 2
		return l
	}
	l.TimeAt = image.Pt(0, 0)
	l.HeadAt = image.Pt(80, 0)
	l.StatusCenter = image.Pt(134, 10)
	l.ChargeFrame = image.Rect(c.X-31, h-8, c.X+31, h)
	l.ChargeLevel = image.Pt(c.X-30, h-7)
	l.ChargeUnit = 3
	return l
}

// ChargeBar returns the level bar for percent.
func (l Layout) ChargeBar(percent int) image.Rectangle {
	percent = min(max(percent, 0), 100)
	w := percent / 5 * l.ChargeUnit
	return image.Rect(l.ChargeLevel.X, l.ChargeLevel.Y, l.ChargeLevel.X+w, l.ChargeLevel.Y+6)
}
