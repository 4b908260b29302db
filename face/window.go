package face

// Layer is one drawing pass of the window. It satisfies gfx.Invalidator.
type Layer struct {
	name  string
	draw  func(c *Canvas)
	dirty bool
}

// MarkDirty schedules the window for a redraw.
func (l *Layer) MarkDirty() { l.dirty = true }

// Name returns the layer name used in logs.
func (l *Layer) Name() string { return l.name }

// Window is a stack of layers sharing one framebuffer. Layers paint in place,
// so a dirty layer repaints the whole stack from the bottom.
type Window struct {
	layers []*Layer
}

// Add pushes a layer on top of the stack. New layers start dirty.
func (w *Window) Add(name string, draw func(c *Canvas)) *Layer {
	l := &Layer{name: name, draw: draw, dirty: true}
	w.layers = append(w.layers, l)
	return l
}

// Dirty reports whether any layer needs a repaint.
func (w *Window) Dirty() bool {
	for _, l := range w.layers {
		if l.dirty {
			return true
		}
	}
	return false
}

// Render repaints every layer when any is dirty and reports whether it drew.
// Flags are cleared first; a layer marked during the pass is drawn again on
// the next call.
func (w *Window) Render(c *Canvas) bool {
	if !w.Dirty() {
		return false
	}
	for _, l := range w.layers {
		l.dirty = false
	}
	for _, l := range w.layers {
		l.draw(c)
	}
	return true
}
