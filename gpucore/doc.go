// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpucore provides the backend-agnostic GPU abstraction used by the
// rc2d lighting pipeline.
//
// This package defines the [GPUAdapter] interface. The cascade pipeline
// (internal/gpu) is written once against it, while thin adapters translate
// between [GPUAdapter] and a concrete API:
//
//	               +------------------+
//	               |   internal/gpu   |
//	               | (cascade passes) |
//	               +--------+---------+
//	                        |
//	               +--------v---------+
//	               |  gpucore adapter |
//	               +--------+---------+
//	                        |
//	               +--------v---------+
//	               |  backend/native  |
//	               |  (gogpu/wgpu HAL)|
//	               +------------------+
//
// # Resources
//
// GPU resources are managed via opaque IDs ([BufferID], [TextureID], etc.).
// Adapters track the mapping between IDs and backend objects.
//
// Texture uploads and readbacks go through [TextureCopy] layouts whose row
// pitch is a multiple of [CopyBytesPerRowAlignment] (256 bytes); see
// [CopyLayout].
//
// # CPU Fallback
//
// When no adapter is configured, or when [GPUAdapter.SupportsCompute]
// reports false, rc2d runs the same passes on the CPU.
package gpucore
