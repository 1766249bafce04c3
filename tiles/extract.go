// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package tiles

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/rc2d/cascade"
	"github.com/gogpu/rc2d/field"
	"github.com/gogpu/rc2d/internal/rc"
)

// Padding is the number of tiles extracted beyond each viewport edge so
// that rays leaving the screen still find occluders and lights.
const Padding = 32

// ErrEmptyView is returned for a view or world without tiles.
var ErrEmptyView = errors.New("tiles: empty view")

// View is the visible tile rectangle around a camera.
type View struct {
	// CenterX and CenterY are the camera tile, y up.
	CenterX, CenterY int

	// Width and Height are the viewport size in tiles.
	Width, Height int
}

// Input is a frame's lighting input extracted from a World.
//
// Input pixel (x, y), with y down, holds world tile
// (Origin.X + x, -(Origin.Y + y)).
type Input struct {
	Scene  *field.Scene
	Params cascade.Params

	// Viewport is the visible rectangle in input pixels.
	Viewport image.Rectangle

	// Origin is the grid origin in y-down tile coordinates. The difference
	// of two consecutive origins is the bounce offset.
	Origin image.Point
}

// Extractor builds Inputs and reuses the scene textures between frames of
// the same size. The zero value is ready to use.
type Extractor struct {
	in Input
}

// Extract builds an Input for v. The returned Input is owned by the
// Extractor and overwritten by the next call.
//
// The input covers the view plus Padding tiles on each side, grown to the
// right and downward until both sides divide the coarsest probe spacing.
// Tiles below the world are Bedrock, tiles above it are air, and every
// non-solid tile of the top input row emits sunlight.
func (e *Extractor) Extract(w World, v View) (*Input, error) {
	if v.Width <= 0 || v.Height <= 0 || w.Width() <= 0 || w.Height() <= 0 {
		return nil, fmt.Errorf("%w: view %dx%d, world %dx%d", ErrEmptyView, v.Width, v.Height, w.Width(), w.Height())
	}

	halfW, halfH := v.Width/2, v.Height/2
	minTX := v.CenterX - halfW - Padding
	maxTY := v.CenterY + halfH + Padding
	width, height, count := InputSize(2*halfW+2*Padding+1, 2*halfH+2*Padding+1)

	p, err := cascade.New(width, height, count)
	if err != nil {
		return nil, err
	}

	in := &e.in
	if in.Scene == nil || in.Scene.Density.Width != width || in.Scene.Density.Height != height {
		in.Scene = field.NewScene(width, height)
	} else {
		in.Scene.Clear()
	}
	in.Params = p
	in.Viewport = image.Rect(Padding, Padding, Padding+v.Width, Padding+v.Height)
	in.Origin = image.Pt(minTX, -maxTY)

	s := in.Scene
	for y := range height {
		ty := maxTY - y
		for x := range width {
			t, ok := lookup(w, minTX+x, ty)
			if !ok {
				continue
			}
			if t.Solid {
				s.Density.Set(x, y, field.White)
			}
			if t.Emission != ([3]uint8{}) {
				s.Emissive.Set(x, y, unit8(t.Emission))
			}
			s.Albedo.Set(x, y, unit8(t.Albedo))
		}
	}

	for x := range width {
		if t, ok := lookup(w, minTX+x, maxTY); !ok || !t.Solid {
			s.Emissive.Set(x, 0, rc.SkyColor)
		}
	}
	return in, nil
}

// Extract is a convenience wrapper that allocates a new Extractor.
func Extract(w World, v View) (*Input, error) {
	var e Extractor
	return e.Extract(w, v)
}

// InputSize rounds a padded grid size up to a size the cascade hierarchy
// can address, returning the rounded size and its cascade count. Rounding
// can raise the count, which raises the spacing again, so the two are
// iterated to a fixed point.
func InputSize(width, height int) (w, h, count int) {
	count = cascade.ComputeCount(max(width, height))
	for {
		s := 1 << (count - 1)
		w, h = roundUp(width, s), roundUp(height, s)
		next := cascade.ComputeCount(max(w, h))
		if next == count {
			return w, h, count
		}
		count = next
	}
}

func roundUp(v, m int) int {
	return (v + m - 1) / m * m
}

// lookup resolves a tile coordinate: bedrock below the world, air above it
// and x wrapped around the world width.
func lookup(w World, x, y int) (Tile, bool) {
	if y < 0 {
		return Bedrock, true
	}
	if y >= w.Height() {
		return Tile{}, false
	}
	ww := w.Width()
	x %= ww
	if x < 0 {
		x += ww
	}
	return w.Tile(x, y)
}
