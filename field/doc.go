// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package field provides the 2D RGB textures exchanged with the lighting
// pipeline: scene inputs (density, emissive, albedo), cascade radiance, and
// the finalized lightmap.
//
// Coordinates are in input pixels with (0, 0) at the top-left corner and y
// growing downward, so "up" is toward y < 0.
package field
