// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package field

import (
	"fmt"
	"image"
)

// Texture is a dense 2D grid of RGB texels stored row-major, row 0 at the
// top. It is the CPU-side counterpart of an RGBA16Float GPU texture; alpha is
// implicit and always 1.
type Texture struct {
	Width  int
	Height int
	Pix    []RGB
}

// NewTexture allocates a black texture.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pix:    make([]RGB, width*height),
	}
}

// NewFilled allocates a texture filled with c.
func NewFilled(width, height int, c RGB) *Texture {
	t := NewTexture(width, height)
	t.Fill(c)
	return t
}

// Bounds returns the texture rectangle.
func (t *Texture) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.Width, t.Height)
}

// InBounds reports whether (x, y) addresses a texel.
func (t *Texture) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < t.Width && y < t.Height
}

// At returns the texel at (x, y). The coordinates must be in bounds.
func (t *Texture) At(x, y int) RGB {
	return t.Pix[y*t.Width+x]
}

// Lookup returns the texel at (x, y) and whether it exists.
func (t *Texture) Lookup(x, y int) (RGB, bool) {
	if !t.InBounds(x, y) {
		return Black, false
	}
	return t.Pix[y*t.Width+x], true
}

// Clamped returns the texel nearest to (x, y) inside the texture.
func (t *Texture) Clamped(x, y int) RGB {
	x = min(max(x, 0), t.Width-1)
	y = min(max(y, 0), t.Height-1)
	return t.Pix[y*t.Width+x]
}

// Set stores c at (x, y). Out-of-bounds writes are ignored.
func (t *Texture) Set(x, y int, c RGB) {
	if !t.InBounds(x, y) {
		return
	}
	t.Pix[y*t.Width+x] = c
}

// Fill sets every texel to c.
func (t *Texture) Fill(c RGB) {
	for i := range t.Pix {
		t.Pix[i] = c
	}
}

// FillRect sets every texel of r (clipped to the texture) to c.
func (t *Texture) FillRect(r image.Rectangle, c RGB) {
	r = r.Intersect(t.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := t.Pix[y*t.Width : (y+1)*t.Width]
		for x := r.Min.X; x < r.Max.X; x++ {
			row[x] = c
		}
	}
}

// Clone returns a deep copy.
func (t *Texture) Clone() *Texture {
	c := &Texture{Width: t.Width, Height: t.Height, Pix: make([]RGB, len(t.Pix))}
	copy(c.Pix, t.Pix)
	return c
}

// CopyFrom copies src into t. Both textures must have the same size.
func (t *Texture) CopyFrom(src *Texture) error {
	if src.Width != t.Width || src.Height != t.Height {
		return fmt.Errorf("%w: %dx%d into %dx%d", ErrSizeMismatch, src.Width, src.Height, t.Width, t.Height)
	}
	copy(t.Pix, src.Pix)
	return nil
}

// Resize reallocates t to the given size if it differs, clearing it.
// It reports whether the texture was reallocated.
func (t *Texture) Resize(width, height int) bool {
	if t.Width == width && t.Height == height {
		return false
	}
	t.Width, t.Height = width, height
	t.Pix = make([]RGB, width*height)
	return true
}
