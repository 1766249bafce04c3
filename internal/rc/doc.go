// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package rc implements the radiance cascade passes on the CPU.
//
// The kernels mirror radiance_cascades.wgsl and rc_finalize.wgsl one to one:
// one work item per probe marches all of that probe's directions, writes
// them into the cascade's packed texture, and merges unresolved directions
// from the next coarser cascade. Math is done in float32 through math32 so
// results track the shader closely.
//
// Frame order is coarsest cascade first, down to cascade 0, then Finalize.
// Each call returns only after its whole index space is done.
package rc
