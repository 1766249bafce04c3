// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package tiles extracts radiance-cascade input fields from a tile world.
//
// An Extractor turns the tiles around a camera into a field.Scene sized for
// the cascade hierarchy: solid tiles become density, emitting tiles become
// emissive radiance, and the top row of open sky becomes a row of sun
// emitters. The Input also carries the grid origin that rc2d uses to
// reproject last frame's bounce light when the camera moves.
package tiles
