// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package parallel runs the CPU lighting passes.
//
// A pass is a 2D index space (probes of one cascade, or lightmap pixels)
// split into 8x8 execution groups, mirroring the compute shader workgroup
// size. Groups run on a work-stealing WorkerPool and Dispatch returns only
// after every group finished, which is the barrier between passes.
package parallel
