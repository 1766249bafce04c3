// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rc

import (
	"context"
	"testing"

	"github.com/gogpu/rc2d/cascade"
	"github.com/gogpu/rc2d/field"
	"github.com/gogpu/rc2d/internal/filter"
	"github.com/gogpu/rc2d/internal/parallel"
)

func newInputs(t testing.TB, p cascade.Params, s *field.Scene) *Inputs {
	t.Helper()
	return &Inputs{
		Params: p,
		Uniforms: cascade.Uniforms{
			InputSize:     [2]uint32{uint32(p.Width), uint32(p.Height)},
			CascadeCount:  uint32(p.Count),
			ViewportSize:  [2]uint32{uint32(p.Width), uint32(p.Height)},
			BounceDamping: 0.4,
		},
		Scene: s,
	}
}

// render runs a full frame and returns the full-grid lightmap.
func render(t testing.TB, pool *parallel.WorkerPool, in *Inputs, cfg FinalizeConfig) *field.Texture {
	t.Helper()
	w, h := LightmapSize(in.Params, in.Uniforms, cfg.Domain)
	lm := field.NewTexture(w, h)
	if _, err := Run(context.Background(), pool, in, NewBuffers(in.Params), cfg, lm, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return lm
}

var binomial1 = FinalizeConfig{Radius: 1, Weight: filter.WeightBinomial, Brightness: 1}

func fillProbes(p cascade.Params, tex *field.Texture, n int, f func(x, y, d int) field.RGB) {
	for y := range p.ProbesH(n) {
		for x := range p.ProbesW(n) {
			for d := range p.NumDirections(n) {
				tx, ty := p.Texel(n, x, y, d)
				tex.Set(tx, ty, f(x, y, d))
			}
		}
	}
}
