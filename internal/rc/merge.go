// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rc

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/rc2d/cascade"
	"github.com/gogpu/rc2d/field"
)

// Merge returns the radiance of direction d of probe (x, y) in cascade n
// taken from cascade n+1, whose packed texture is parent.
//
// The probe center is mapped into the parent probe grid, each of the B parent
// directions d·B+g is sampled bilinearly there, and the samples are averaged.
func Merge(p cascade.Params, parent *field.Texture, n, x, y, d int) field.RGB {
	pn := n + 1
	cx, cy := p.ProbeCenter(n, x, y)
	ps := float32(p.Spacing(pn))
	fx := cx/ps - 0.5
	fy := cy/ps - 0.5

	b := p.GroupSize()
	var m field.Mean
	for g := range b {
		m.Add(Bilinear(p, parent, pn, d*b+g, fx, fy))
	}
	return m.Value()
}

// Bilinear samples direction d of cascade n at the fractional probe
// coordinate (fx, fy).
//
// Neighbour probes outside the probe grid are left out and the remaining
// weights renormalized. Interpolation is done as a+(b-a)·t per axis, so an
// integer coordinate returns the stored texel exactly and equal neighbours
// return their common value exactly.
func Bilinear(p cascade.Params, tex *field.Texture, n, d int, fx, fy float32) field.RGB {
	pw, ph := p.ProbesW(n), p.ProbesH(n)
	x0 := int(math32.Floor(fx))
	y0 := int(math32.Floor(fy))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	row := func(y int) (field.RGB, bool) {
		if y < 0 || y >= ph {
			return field.Black, false
		}
		in0 := x0 >= 0 && x0 < pw
		in1 := x0+1 >= 0 && x0+1 < pw
		switch {
		case in0 && in1:
			return probe(p, tex, n, x0, y, d).Lerp(probe(p, tex, n, x0+1, y, d), tx), true
		case in0:
			return probe(p, tex, n, x0, y, d), true
		case in1:
			return probe(p, tex, n, x0+1, y, d), true
		}
		return field.Black, false
	}

	top, okTop := row(y0)
	bottom, okBottom := row(y0 + 1)
	switch {
	case okTop && okBottom:
		return top.Lerp(bottom, ty)
	case okTop:
		return top
	case okBottom:
		return bottom
	}
	return field.Black
}

func probe(p cascade.Params, tex *field.Texture, n, x, y, d int) field.RGB {
	tx, ty := p.Texel(n, x, y, d)
	return tex.At(tx, ty)
}
