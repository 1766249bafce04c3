// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cascade

import "errors"

// Configuration errors reported by Params.Validate. They are always wrapped
// with the offending values; match them with errors.Is.
var (
	// ErrBranching is returned for a branching factor below 2.
	ErrBranching = errors.New("cascade: invalid branching factor")

	// ErrDirectionOffset is returned for a negative direction exponent offset.
	ErrDirectionOffset = errors.New("cascade: invalid direction offset")

	// ErrCascadeCount is returned for a cascade count outside [1, MaxCascades]
	// or one whose direction count would overflow texture addressing.
	ErrCascadeCount = errors.New("cascade: invalid cascade count")

	// ErrInputSize is returned for an empty input grid.
	ErrInputSize = errors.New("cascade: invalid input size")

	// ErrDirectionsNotSquare is returned when a cascade's direction count is
	// not a perfect square and cannot be packed into a square texel block.
	ErrDirectionsNotSquare = errors.New("cascade: direction count is not a perfect square")

	// ErrGroupSize is returned when consecutive cascades do not differ by
	// exactly the branching factor in direction count.
	ErrGroupSize = errors.New("cascade: direction group size does not match branching factor")

	// ErrNotDivisible is returned when the input size is not a multiple of
	// the coarsest probe spacing.
	ErrNotDivisible = errors.New("cascade: input size not divisible by coarsest probe spacing")
)
