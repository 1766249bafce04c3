// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rc

import (
	"testing"

	"github.com/gogpu/rc2d/cascade"
	"github.com/gogpu/rc2d/field"
)

func TestMerge_UniformParentIsExact(t *testing.T) {
	values := []field.RGB{
		{R: 0.1, G: 0.2, B: 0.3},
		{R: 1.0 / 3, G: 2.0 / 7, B: 5.0 / 11},
		{R: 123.456, G: 0.000123, B: 7},
	}
	for _, k := range []int{1, 2} {
		p := cascade.Params{Branching: 4, DirectionOffset: k, Count: 3, Width: 64, Height: 32}
		if err := p.Validate(); err != nil {
			t.Fatal(err)
		}
		w, h := p.MaxTextureSize()
		for _, v := range values {
			parent := field.NewFilled(w, h, v)
			for n := 0; n < p.Coarsest(); n++ {
				for y := range p.ProbesH(n) {
					for x := range p.ProbesW(n) {
						for d := range p.NumDirections(n) {
							if got := Merge(p, parent, n, x, y, d); got != v {
								t.Fatalf("K=%d n=%d probe (%d,%d) d=%d: merge = %v, want %v", k, n, x, y, d, got, v)
							}
						}
					}
				}
			}
		}
	}
}

func TestMerge_UsesDirectionGroup(t *testing.T) {
	p := cascade.Params{Branching: 4, DirectionOffset: 1, Count: 2, Width: 16, Height: 16}
	w, h := p.MaxTextureSize()
	parent := field.NewTexture(w, h)
	// Parent direction pd holds pd everywhere; child direction d averages
	// d*4 .. d*4+3, i.e. 4d + 1.5.
	fillProbes(p, parent, 1, func(_, _, d int) field.RGB { return field.Gray(float32(d)) })

	for d := range p.NumDirections(0) {
		got := Merge(p, parent, 0, 3, 5, d)
		if want := float32(4*d) + 1.5; got.R != want {
			t.Errorf("d=%d: merge = %v, want %v", d, got.R, want)
		}
	}
}

func TestBilinear_IntegerCoordinateIsExact(t *testing.T) {
	p := cascade.Params{Branching: 4, DirectionOffset: 1, Count: 2, Width: 32, Height: 16}
	w, h := p.MaxTextureSize()
	tex := field.NewTexture(w, h)
	fillProbes(p, tex, 1, func(x, y, d int) field.RGB {
		return field.RGB{R: float32(x)*0.37 + 0.011, G: float32(y) / 3, B: float32(d)*1.7 + float32(x*y)/7}
	})

	for y := range p.ProbesH(1) {
		for x := range p.ProbesW(1) {
			for d := range p.NumDirections(1) {
				want := probe(p, tex, 1, x, y, d)
				if got := Bilinear(p, tex, 1, d, float32(x), float32(y)); got != want {
					t.Fatalf("Bilinear at (%d, %d) d=%d = %v, want %v", x, y, d, got, want)
				}
			}
		}
	}
}

func TestBilinear_Weights(t *testing.T) {
	p := cascade.Params{Branching: 4, DirectionOffset: 1, Count: 2, Width: 16, Height: 16}
	w, h := p.MaxTextureSize()
	tex := field.NewTexture(w, h)
	// Value = probe x, so interpolation along x is linear and along y flat.
	fillProbes(p, tex, 1, func(x, _, _ int) field.RGB { return field.Gray(float32(x)) })

	tests := []struct {
		name   string
		fx, fy float32
		want   float32
	}{
		{"interior quarter", 2.25, 3.75, 2.25},
		{"interior three quarters", 4.75, 1.25, 4.75},
		// Left neighbour x=-1 is excluded: the right column takes full weight.
		{"left edge", -0.25, 2.25, 0},
		// Right neighbour x=8 is excluded.
		{"right edge", 7.25, 2.25, 7},
		{"corner", -0.25, -0.25, 0},
		{"bottom right corner", 7.75, 7.75, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bilinear(p, tex, 1, 0, tt.fx, tt.fy)
			if got.R != tt.want {
				t.Errorf("Bilinear(%v, %v) = %v, want %v", tt.fx, tt.fy, got.R, tt.want)
			}
		})
	}
}

func TestBilinear_EdgeExclusionRenormalizes(t *testing.T) {
	p := cascade.Params{Branching: 4, DirectionOffset: 1, Count: 2, Width: 16, Height: 16}
	w, h := p.MaxTextureSize()
	v := field.RGB{R: 0.3, G: 0.6, B: 0.9}
	tex := field.NewFilled(w, h, v)

	// Out-of-grid neighbours must not darken the edge.
	for _, c := range [][2]float32{{-0.25, -0.25}, {7.75, -0.25}, {-0.25, 7.75}, {7.75, 7.75}, {3.25, -0.25}} {
		if got := Bilinear(p, tex, 1, 2, c[0], c[1]); got != v {
			t.Errorf("Bilinear at %v = %v, want %v", c, got, v)
		}
	}
}
