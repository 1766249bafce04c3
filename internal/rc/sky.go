// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rc

import "github.com/gogpu/rc2d/field"

// SkyColor is the warm-white radiance of rays that escape through the top of
// the grid at the coarsest cascade.
var SkyColor = field.RGB{R: 1.0, G: 0.98, B: 0.90}

// GlowThreshold is the emissive channel sum above which a non-solid texel
// counts as glowing air and stops a ray.
const GlowThreshold = 0.01

// escape resolves a ray that left the grid at pixel row y.
// Only the coarsest cascade assigns sky radiance, and only upward; lower
// cascades receive it through merging.
func escape(coarsest bool, y int) (field.RGB, Outcome) {
	if coarsest && y < 0 {
		return SkyColor, OutcomeSky
	}
	return field.Black, OutcomeEscaped
}
