// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cascade

import (
	"fmt"
	"math"
)

const (
	// DefaultBranching is the branching factor B. With B=4 each cascade owns
	// four times as many directions and a four times longer interval.
	DefaultBranching = 4

	// DefaultDirectionOffset is the exponent offset K in B^(n+K).
	// K=1 gives 4 directions per cascade-0 probe (a 2x2 block); K=2 gives 16
	// and noticeably sharper point lights at 4x the cascade memory.
	DefaultDirectionOffset = 1

	// MaxCascades bounds the cascade count accepted by Validate.
	MaxCascades = 8
)

// Params describes the cascade hierarchy for one input grid.
//
// The zero value is not usable; build Params with New or fill every field and
// call Validate before handing it to a kernel or GPU pipeline. All derived
// quantities are pure functions of the fields.
type Params struct {
	// Branching is the factor B between consecutive cascades.
	Branching int

	// DirectionOffset is K in numDirections(n) = B^(n+K).
	DirectionOffset int

	// Count is the number of cascades.
	Count int

	// Width and Height are the input grid dimensions in pixels (tiles).
	Width  int
	Height int
}

// New returns validated Params using DefaultBranching and
// DefaultDirectionOffset. A zero count selects ComputeCount(max(width, height)).
func New(width, height, count int) (Params, error) {
	p := Params{
		Branching:       DefaultBranching,
		DirectionOffset: DefaultDirectionOffset,
		Count:           count,
		Width:           width,
		Height:          height,
	}
	if p.Count == 0 {
		p.Count = ComputeCount(max(width, height))
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Coarsest returns the index of the coarsest cascade.
func (p Params) Coarsest() int {
	return p.Count - 1
}

// NumDirections returns B^(n+K), the number of directions per probe.
func (p Params) NumDirections(n int) int {
	return ipow(p.Branching, n+p.DirectionOffset)
}

// Spacing returns 2^n, the probe spacing in input pixels.
func (p Params) Spacing(n int) int {
	return 1 << n
}

// IntervalStart returns the distance at which cascade n starts marching.
// Cascade 0 starts at 0; every other cascade starts where the previous one
// ended, so the intervals tile the ray without gaps or overlap.
func (p Params) IntervalStart(n int) int {
	if n <= 0 {
		return 0
	}
	return p.IntervalEnd(n - 1)
}

// IntervalEnd returns B^(n+1), the exclusive end of cascade n's interval.
func (p Params) IntervalEnd(n int) int {
	return ipow(p.Branching, n+1)
}

// DirsSide returns the side of the square direction block of one probe.
// The result is only meaningful for validated Params.
func (p Params) DirsSide(n int) int {
	return isqrt(p.NumDirections(n))
}

// GroupSize returns the number of parent directions merged into one child
// direction, numDirections(n+1)/numDirections(n).
func (p Params) GroupSize() int {
	return p.Branching
}

// Validate checks every addressing invariant of the hierarchy.
// A non-nil error is fatal: kernels assume all of these hold.
func (p Params) Validate() error {
	if p.Branching < 2 {
		return fmt.Errorf("%w: B=%d", ErrBranching, p.Branching)
	}
	if p.DirectionOffset < 0 {
		return fmt.Errorf("%w: K=%d", ErrDirectionOffset, p.DirectionOffset)
	}
	if p.Count < 1 || p.Count > MaxCascades {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrCascadeCount, p.Count, MaxCascades)
	}
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInputSize, p.Width, p.Height)
	}

	// B^(Count+K) must stay addressable in a uint32 texture coordinate space.
	if float64(p.Count+p.DirectionOffset)*math.Log2(float64(p.Branching)) > 30 {
		return fmt.Errorf("%w: B^(%d+%d) overflows", ErrCascadeCount, p.Count, p.DirectionOffset)
	}

	for n := 0; n < p.Count; n++ {
		nd := p.NumDirections(n)
		s := isqrt(nd)
		if s*s != nd {
			return fmt.Errorf("%w: cascade %d has %d directions", ErrDirectionsNotSquare, n, nd)
		}
		if n+1 < p.Count {
			if group := p.NumDirections(n+1) / nd; group != p.Branching || group*nd != p.NumDirections(n+1) {
				return fmt.Errorf("%w: cascade %d group %d, B=%d", ErrGroupSize, n, group, p.Branching)
			}
		}
	}

	coarse := p.Spacing(p.Coarsest())
	if p.Width%coarse != 0 || p.Height%coarse != 0 {
		return fmt.Errorf("%w: %dx%d by spacing %d", ErrNotDivisible, p.Width, p.Height, coarse)
	}
	return nil
}

// String implements fmt.Stringer.
func (p Params) String() string {
	return fmt.Sprintf("cascade.Params{B=%d K=%d N=%d %dx%d}",
		p.Branching, p.DirectionOffset, p.Count, p.Width, p.Height)
}

// ComputeCount returns how many cascades cover a grid whose larger side is
// maxDim: each cascade reaches four times further than the previous one,
// starting at 4, capped at MaxCascades.
func ComputeCount(maxDim int) int {
	count, size := 1, 4
	for size < maxDim && count < MaxCascades {
		size *= 4
		count++
	}
	return count
}

func ipow(base, exp int) int {
	r := 1
	for range exp {
		r *= base
	}
	return r
}

func isqrt(v int) int {
	if v <= 0 {
		return 0
	}
	r := int(math.Sqrt(float64(v)))
	for r*r > v {
		r--
	}
	for (r+1)*(r+1) <= v {
		r++
	}
	return r
}
