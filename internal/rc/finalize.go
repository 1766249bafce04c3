// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rc

import (
	"github.com/gogpu/rc2d/cascade"
	"github.com/gogpu/rc2d/field"
	"github.com/gogpu/rc2d/internal/filter"
	"github.com/gogpu/rc2d/internal/parallel"
)

// DefaultBrightness is the lightmap gain used when none is configured.
const DefaultBrightness = 1.0

// FinalizeConfig is the blur strategy of the finalize stage.
type FinalizeConfig struct {
	// Radius is the blur radius in probes. Zero disables the blur.
	Radius int

	// Weight is the 1D weight function; the 2D table is its outer product.
	Weight filter.Weight

	// Domain is the lightmap address space.
	Domain Domain

	// Brightness is the HDR gain applied to the output.
	Brightness float32
}

// Irradiance returns the mean of the stored directions of cascade-0 probe
// (x, y), read from the packed texture c0.
func Irradiance(p cascade.Params, c0 *field.Texture, x, y int) field.RGB {
	var m field.Mean
	for d := range p.NumDirections(0) {
		m.Add(probe(p, c0, 0, x, y, d))
	}
	return m.Value()
}

// Finalize reduces cascade 0 to the lightmap. It first averages every probe
// into irr (input sized), then blurs irr into lightmap with edge clamping.
//
// lightmap must have LightmapSize(in.Params, in.Uniforms, cfg.Domain).
func Finalize(pool *parallel.WorkerPool, in *Inputs, cfg FinalizeConfig, c0, irr, lightmap *field.Texture) {
	p := in.Params
	parallel.Dispatch(pool, p.Width, p.Height, func(x, y int) {
		irr.Pix[y*p.Width+x] = Irradiance(p, c0, x, y)
	})

	r := filter.EffectiveRadius(cfg.Weight, cfg.Radius)
	weights := filter.Weights2D(cfg.Weight, r)
	side := 2*r + 1

	var ox, oy int
	if cfg.Domain == DomainViewport {
		ox, oy = int(in.Uniforms.ViewportOffset[0]), int(in.Uniforms.ViewportOffset[1])
	}

	parallel.Dispatch(pool, lightmap.Width, lightmap.Height, func(x, y int) {
		px, py := x+ox, y+oy
		var m field.WeightedMean
		for j := -r; j <= r; j++ {
			for i := -r; i <= r; i++ {
				m.Add(irr.Clamped(px+i, py+j), weights[(j+r)*side+i+r])
			}
		}
		lightmap.Pix[y*lightmap.Width+x] = m.Value().Scale(cfg.Brightness)
	})
}
