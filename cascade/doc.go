// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cascade defines the radiance cascade hierarchy: how many directions
// each cascade owns, how far apart its probes are, which slice of the ray it
// marches, and where each (probe, direction) pair lives in the packed cascade
// texture.
//
// # Parameters
//
// For a branching factor B and direction offset K, cascade n has
//
//	numDirections(n) = B^(n+K)
//	spacing(n)       = 2^n
//	interval(n)      = [B^n, B^(n+1))   (cascade 0 starts at 0)
//
// With the defaults (B=4, K=1) cascade 0 stores a 2x2 direction block per
// input pixel and every cascade's packed texture is 2W x 2H.
//
// # Packing
//
// Directions of a probe occupy a dirsSide x dirsSide block, filled row by row:
//
//	texel = (x*s + d%s, y*s + d/s),  s = sqrt(numDirections(n))
//
// # Validation
//
// Params.Validate rejects any configuration that would break these formulas:
// a non-square direction count, a group size different from B, or an input
// size that the coarsest probe spacing does not divide. Callers treat such
// errors as fatal and never start a frame.
package cascade
