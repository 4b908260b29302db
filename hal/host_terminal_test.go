//go:build !tinygo

package hal

import "testing"

func TestTermViewFit(t *testing.T) {
	tv := newTermView(newMemFramebuffer(DisplayConfig{Round: true}))
	tests := []struct {
		cols, rows int
		w, h       int
	}{
		{200, 100, 180, 180},
		{90, 100, 90, 90},
		{200, 45, 90, 90},
		{80, 24, 48, 48},
	}
	for _, tt := range tests {
		w, h := tv.fit(tt.cols, tt.rows)
		if w != tt.w || h != tt.h {
			t.Fatalf("fit(%d, %d) = %d, %d, want %d, %d", tt.cols, tt.rows, w, h, tt.w, tt.h)
		}
		if h > tt.rows*2 || w > tt.cols {
			t.Fatalf("fit(%d, %d) overflows", tt.cols, tt.rows)
		}
	}
}
