// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rc2d

import (
	"image"
	"time"

	"github.com/gogpu/rc2d/internal/rc"
)

// Outcome is how a traced ray resolved.
type Outcome = rc.Outcome

// Ray outcomes.
const (
	OutcomeUnresolved = rc.OutcomeUnresolved
	OutcomeHit        = rc.OutcomeHit
	OutcomeGlow       = rc.OutcomeGlow
	OutcomeSky        = rc.OutcomeSky
	OutcomeEscaped    = rc.OutcomeEscaped
	NumOutcomes       = rc.NumOutcomes
)

// FrameStats describes one finished frame.
type FrameStats struct {
	// Frame counts finished frames, starting at 1.
	Frame   uint64
	Backend string

	// Passes is the number of passes run: every cascade plus finalize.
	Passes   int
	Duration time.Duration

	// BounceOffset is the reprojection applied to the bounce history.
	BounceOffset image.Point

	// Rays counts traced rays by Outcome. The GPU executor does not count
	// rays and leaves it zero.
	Rays [NumOutcomes]int64
}

// TotalRays returns the number of rays traced.
func (s FrameStats) TotalRays() int64 {
	var n int64
	for _, c := range s.Rays {
		n += c
	}
	return n
}
