// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rc

import (
	"fmt"

	"github.com/gogpu/rc2d/cascade"
	"github.com/gogpu/rc2d/field"
)

// Domain selects the address space of the finalized lightmap.
type Domain uint8

const (
	// DomainFullGrid writes one lightmap pixel per input pixel.
	DomainFullGrid Domain = iota

	// DomainViewport writes only the viewport rectangle; lightmap pixel
	// (x, y) holds input pixel (x+offsetX, y+offsetY).
	DomainViewport
)

// String returns the domain name.
func (d Domain) String() string {
	switch d {
	case DomainFullGrid:
		return "fullgrid"
	case DomainViewport:
		return "viewport"
	default:
		return fmt.Sprintf("Domain(%d)", uint8(d))
	}
}

// Inputs are the read-only inputs of one frame. They are shared by every
// pass of the frame and never modified by a pass.
type Inputs struct {
	Params   cascade.Params
	Uniforms cascade.Uniforms
	Scene    *field.Scene

	// History is the previous frame's lightmap, or nil on the first frame.
	// Its address space is Domain.
	History *field.Texture
	Domain  Domain
}

// LightmapSize returns the size of the lightmap written for d.
func LightmapSize(p cascade.Params, u cascade.Uniforms, d Domain) (w, h int) {
	if d == DomainViewport {
		return int(u.ViewportSize[0]), int(u.ViewportSize[1])
	}
	return p.Width, p.Height
}
