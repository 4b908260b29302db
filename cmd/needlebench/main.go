// Command needlebench renders a full needle rotation on an in-memory round
// panel and reports the derived geometry and per-frame draw times.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"time"

	"compass/face/gfx"
)

func main() {
	var (
		a     = flag.Int("a", 12, "Needle half-width in pixels.")
		b     = flag.Int("b", 48, "Needle half-length in pixels.")
		size  = flag.Int("size", 180, "Panel diameter in pixels.")
		steps = flag.Int("steps", 360, "Frames per rotation.")
		turns = flag.Int("turns", 1, "Rotations to render.")
	)
	flag.Parse()

	if *steps <= 0 || *turns <= 0 || *size <= 0 {
		fatalf("usage: needlebench [-a 12] [-b 48] [-size 180] [-steps 360] [-turns 1]")
	}
	g, err := gfx.NewGeometry(int32(*a), int32(*b))
	if err != nil {
		fatalf("geometry: %v", err)
	}
	if 2*int(g.Radius)+1 > *size {
		fatalf("needle box %d does not fit a %d pixel panel", 2*g.Radius+1, *size)
	}

	r := run(g, *size, *steps, *turns)
	fmt.Printf("geometry  %s\n", g)
	fmt.Printf("frames    %d\n", r.frames)
	fmt.Printf("draw      min %v  avg %v  max %v\n", r.min, r.avg(), r.max)
	fmt.Printf("pixels    %d per frame on average\n", r.touched/uint64(r.frames))
}

type result struct {
	frames   int
	total    time.Duration
	min, max time.Duration
	touched  uint64
}

func (r result) avg() time.Duration {
	if r.frames == 0 {
		return 0
	}
	return r.total / time.Duration(r.frames)
}

func run(g gfx.Geometry, size, steps, turns int) result {
	bm := gfx.NewRoundBitmap(size)
	n := gfx.NewNeedle(g)
	center := image.Pt(size/2, size/2)
	st := &gfx.State{Degrees: -1}

	var r result
	for turn := 0; turn < turns; turn++ {
		for i := 0; i < steps; i++ {
			bm.Fill(gfx.Black)
			st.Heading = gfx.Heading{
				Angle:  int32(int64(i) * int64(gfx.AngleMax) / int64(steps)),
				Status: gfx.StatusCalibrated,
			}
			start := time.Now()
			n.Draw(bm, center, st)
			took := time.Since(start)

			if r.frames == 0 || took < r.min {
				r.min = took
			}
			r.max = max(r.max, took)
			r.total += took
			r.frames++
			r.touched += countNot(bm, gfx.Black)
		}
	}
	return r
}

func countNot(bm *gfx.Bitmap, bg gfx.Color) uint64 {
	var n uint64
	for _, p := range bm.Pix() {
		if gfx.Color(p) != bg && p != 0 {
			n++
		}
	}
	return n
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
