package face

import (
	"testing"

	"compass/face/gfx"
)

func TestWindowRenderOrderAndFlags(t *testing.T) {
	var w Window
	var order []string
	var top *Layer
	bottom := w.Add("bottom", func(*Canvas) { order = append(order, "bottom") })
	top = w.Add("top", func(*Canvas) { order = append(order, "top") })

	c := NewCanvas(gfx.NewBitmap(4, 4))
	if !w.Render(c) {
		t.Fatalf("Render() on new window = false, want true")
	}
	if len(order) != 2 || order[0] != "bottom" || order[1] != "top" {
		t.Fatalf("draw order = %v, want [bottom top]", order)
	}
	if w.Dirty() || w.Render(c) {
		t.Fatalf("window still dirty after Render")
	}

	order = nil
	top.MarkDirty()
	w.Render(c)
	if len(order) != 2 {
		t.Fatalf("marking one layer drew %v, want the whole stack", order)
	}
	if bottom.Name() != "bottom" {
		t.Fatalf("Name() = %q", bottom.Name())
	}
}

func TestWindowMarkDuringRender(t *testing.T) {
	var w Window
	var digits *Layer
	passes := 0
	digits = w.Add("digits", func(*Canvas) {})
	w.Add("needle", func(*Canvas) {
		passes++
		if passes == 1 {
			digits.MarkDirty()
		}
	})

	c := NewCanvas(gfx.NewBitmap(4, 4))
	w.Render(c)
	if !w.Dirty() {
		t.Fatalf("layer marked during the pass was lost")
	}
	w.Render(c)
	if w.Dirty() || passes != 2 {
		t.Fatalf("dirty=%v passes=%d after second Render, want false and 2", w.Dirty(), passes)
	}
}
