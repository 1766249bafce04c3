// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rc

import "github.com/gogpu/rc2d/field"

// Bounce returns the indirect light reflected by the solid texel (x, y):
// the previous lightmap at the reprojected position, times the texel's
// albedo, times the bounce damping.
//
// The reprojected position is (x, y) + BounceOffset, shifted by
// -ViewportOffset when the history is viewport sized. For such a history the
// caller adds the viewport movement since the history frame to BounceOffset.
// Positions outside the history, and frames without history, contribute
// zero.
func Bounce(in *Inputs, x, y int) field.RGB {
	u := in.Uniforms
	if in.History == nil || u.BounceDamping == 0 {
		return field.Black
	}

	hx := x + int(u.BounceOffset[0])
	hy := y + int(u.BounceOffset[1])
	if in.Domain == DomainViewport {
		hx -= int(u.ViewportOffset[0])
		hy -= int(u.ViewportOffset[1])
	}

	prev, ok := in.History.Lookup(hx, hy)
	if !ok {
		return field.Black
	}
	return prev.Mul(in.Scene.Albedo.At(x, y)).Scale(u.BounceDamping)
}
