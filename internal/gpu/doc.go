// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu runs the radiance cascade passes as WGSL compute shaders.
//
// The pipeline is written against [gpucore.GPUAdapter] and never touches a
// concrete GPU API. Shaders are embedded, specialized for the hierarchy's
// branching factor and direction offset, and compiled to SPIR-V with
// gogpu/naga when the pipeline is built.
//
// # Frame
//
// One frame is a single submission:
//
//	upload scene (density R8, emissive RGBA16F, albedo RGBA8)
//	write per-cascade uniforms (one 256-byte slot each)
//	cascade N-1 ... cascade 0   (ping-pong between two textures)
//	finalize                    (irradiance + blur into a lightmap slot)
//	read back the lightmap slot
//
// Two lightmap slots alternate: the slot written this frame becomes the
// bounce history of the next one. Before the first frame both slots hold
// white and bounce damping is forced to zero.
//
// Texture uploads and readbacks use 256-byte aligned rows; half floats are
// converted with x448/float16.
package gpu
