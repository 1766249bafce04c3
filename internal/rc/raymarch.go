// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rc

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/rc2d/field"
)

// Outcome is how a single ray resolved.
type Outcome uint8

const (
	// OutcomeUnresolved means the interval ended without a hit.
	OutcomeUnresolved Outcome = iota

	// OutcomeHit is a solid texel: emissive plus bounce light.
	OutcomeHit

	// OutcomeGlow is non-solid glowing air: emissive only.
	OutcomeGlow

	// OutcomeSky is an upward escape at the coarsest cascade.
	OutcomeSky

	// OutcomeEscaped is any other exit from the grid.
	OutcomeEscaped

	// NumOutcomes is the number of Outcome values.
	NumOutcomes
)

var outcomeNames = [NumOutcomes]string{"unresolved", "hit", "glow", "sky", "escaped"}

// String returns the outcome name.
func (o Outcome) String() string {
	if o < NumOutcomes {
		return outcomeNames[o]
	}
	return "invalid"
}

// Merges reports whether the ray takes its radiance from the coarser cascade.
func (o Outcome) Merges() bool {
	return o == OutcomeUnresolved || o == OutcomeEscaped
}

// Direction returns the unit direction of direction index d out of nd:
// θ = (d+0.5)/nd·2π, mapped to (cos θ, -sin θ) so that θ = π/2 points to
// the top row (y < 0).
func Direction(d, nd int) (dx, dy float32) {
	theta := (float32(d) + 0.5) / float32(nd) * 2 * math32.Pi
	sin, cos := math32.Sincos(theta)
	return cos, -sin
}

// TraceRay marches one ray of cascade n from (cx, cy) along (dx, dy) over the
// cascade's interval in unit steps.
func TraceRay(in *Inputs, n int, cx, cy, dx, dy float32) (field.RGB, Outcome) {
	p := in.Params
	s := in.Scene
	coarsest := n == p.Coarsest()
	end := float32(p.IntervalEnd(n))

	for t := float32(p.IntervalStart(n)); t < end; t++ {
		if n == 0 && t < 0.5 {
			continue
		}
		x := int(math32.Floor(cx + dx*t))
		y := int(math32.Floor(cy + dy*t))
		if !s.Density.InBounds(x, y) {
			return escape(coarsest, y)
		}

		i := y*p.Width + x
		if s.Density.Pix[i].R > field.SolidThreshold {
			return s.Emissive.Pix[i].Add(Bounce(in, x, y)), OutcomeHit
		}
		if e := s.Emissive.Pix[i]; e.Sum() > GlowThreshold {
			return e, OutcomeGlow
		}
	}
	return field.Black, OutcomeUnresolved
}
