//go:build tinygo && baremetal

package hal

// stubKeyboard is used on boards without buttons wired to the face.
type stubKeyboard struct{}

func (k *stubKeyboard) Events() <-chan KeyEvent { return nil }
