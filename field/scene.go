// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package field

import (
	"errors"
	"fmt"
	"image"
)

// SolidThreshold is the density above which a texel blocks rays.
const SolidThreshold = 0.5

// ErrSizeMismatch is returned when textures that must share a size do not.
var ErrSizeMismatch = errors.New("field: texture size mismatch")

// Scene holds the read-only input fields of one frame. All three textures
// have the input grid size.
type Scene struct {
	// Density is read from the red channel; texels above SolidThreshold are
	// solid.
	Density *Texture

	// Emissive is the emitted radiance, including non-solid glowing air.
	Emissive *Texture

	// Albedo is the reflectance used for bounce light at solid texels.
	Albedo *Texture
}

// NewScene allocates an empty (all air, unlit) scene.
func NewScene(width, height int) *Scene {
	return &Scene{
		Density:  NewTexture(width, height),
		Emissive: NewTexture(width, height),
		Albedo:   NewTexture(width, height),
	}
}

// Size returns the input grid size.
func (s *Scene) Size() (w, h int) {
	return s.Density.Width, s.Density.Height
}

// Validate checks that all fields exist and have the given size.
func (s *Scene) Validate(width, height int) error {
	if s == nil || s.Density == nil || s.Emissive == nil || s.Albedo == nil {
		return errors.New("field: scene is missing a texture")
	}
	for _, f := range []struct {
		name string
		t    *Texture
	}{{"density", s.Density}, {"emissive", s.Emissive}, {"albedo", s.Albedo}} {
		if f.t.Width != width || f.t.Height != height || len(f.t.Pix) != width*height {
			return fmt.Errorf("%w: %s is %dx%d, want %dx%d",
				ErrSizeMismatch, f.name, f.t.Width, f.t.Height, width, height)
		}
	}
	return nil
}

// Solid reports whether (x, y) is inside the grid and solid.
func (s *Scene) Solid(x, y int) bool {
	d, ok := s.Density.Lookup(x, y)
	return ok && d.R > SolidThreshold
}

// SetSolid marks (x, y) solid with the given albedo.
func (s *Scene) SetSolid(x, y int, albedo RGB) {
	s.Density.Set(x, y, White)
	s.Albedo.Set(x, y, albedo)
}

// FillSolid marks every texel of r solid with the given albedo.
func (s *Scene) FillSolid(r image.Rectangle, albedo RGB) {
	s.Density.FillRect(r, White)
	s.Albedo.FillRect(r, albedo)
}

// SetEmissive sets the emitted radiance at (x, y).
func (s *Scene) SetEmissive(x, y int, c RGB) {
	s.Emissive.Set(x, y, c)
}

// Clear resets the scene to empty air.
func (s *Scene) Clear() {
	s.Density.Fill(Black)
	s.Emissive.Fill(Black)
	s.Albedo.Fill(Black)
}
