// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package field

// RGB is a linear, unbounded radiance or reflectance triple.
type RGB struct {
	R, G, B float32
}

// Common values.
var (
	Black = RGB{}
	White = RGB{1, 1, 1}
)

// Gray returns RGB{v, v, v}.
func Gray(v float32) RGB {
	return RGB{v, v, v}
}

// Add returns c + o.
func (c RGB) Add(o RGB) RGB {
	return RGB{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Sub returns c - o.
func (c RGB) Sub(o RGB) RGB {
	return RGB{c.R - o.R, c.G - o.G, c.B - o.B}
}

// Mul returns the component-wise product c * o.
func (c RGB) Mul(o RGB) RGB {
	return RGB{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Scale returns c * s.
func (c RGB) Scale(s float32) RGB {
	return RGB{c.R * s, c.G * s, c.B * s}
}

// Sum returns R + G + B.
func (c RGB) Sum() float32 {
	return c.R + c.G + c.B
}

// Lerp returns c + (o - c) * t. For t == 0 the result is exactly c, and for
// c == o it is exactly c for any t.
func (c RGB) Lerp(o RGB, t float32) RGB {
	return RGB{
		c.R + (o.R-c.R)*t,
		c.G + (o.G-c.G)*t,
		c.B + (o.B-c.B)*t,
	}
}

// IsZero reports whether all components are zero.
func (c RGB) IsZero() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// Mean accumulates an exact running mean of RGB values: averaging n copies
// of V yields exactly V, which a sum-then-divide would not guarantee.
type Mean struct {
	m RGB
	n int
}

// Add folds v into the mean.
func (a *Mean) Add(v RGB) {
	a.n++
	a.m = a.m.Lerp(v, 1/float32(a.n))
}

// Value returns the current mean, or Black if nothing was added.
func (a *Mean) Value() RGB {
	return a.m
}

// Count returns the number of values added.
func (a *Mean) Count() int {
	return a.n
}

// WeightedMean accumulates a running weighted mean. Equal inputs produce
// that exact input regardless of the weights.
type WeightedMean struct {
	m RGB
	w float32
}

// Add folds v with weight w into the mean. Non-positive weights are ignored.
func (a *WeightedMean) Add(v RGB, w float32) {
	if w <= 0 {
		return
	}
	a.w += w
	a.m = a.m.Lerp(v, w/a.w)
}

// Value returns the current weighted mean, or Black if nothing was added.
func (a *WeightedMean) Value() RGB {
	return a.m
}

// Weight returns the accumulated weight.
func (a *WeightedMean) Weight() float32 {
	return a.w
}
