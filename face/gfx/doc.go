// Package gfx is the integer-only drawing core of the watchface.
//
// Everything on the per-pixel path works in Q16 fixed point: angles span
// [0, AngleMax), sine and cosine come from a lookup table scaled by Scale, and
// colours are packed ARGB8 values with two bits per channel.
//
// The centrepiece is Needle, which rasterizes a rotating diamond with an
// anti-aliased rim and a soft seam between its front and back halves straight
// into a Surface. A Surface hands out one row at a time together with the
// columns that are valid on that row, so round panels with partial rows are
// drawn without ever touching memory outside the visible area.
//
// Rendering is synchronous and allocation free. Callers acquire the surface,
// call Draw, and release it; nothing is retained between frames except the
// degree cache the caller owns in State.
package gfx
