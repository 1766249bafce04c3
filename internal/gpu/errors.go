// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import "errors"

var (
	// ErrNoCompute is returned when the adapter cannot run compute shaders.
	ErrNoCompute = errors.New("gpu: adapter does not support compute")

	// ErrShaderCompile wraps WGSL compilation failures.
	ErrShaderCompile = errors.New("gpu: shader compilation failed")

	// ErrRadiusTooLarge is returned when the finalize blur radius exceeds
	// MaxBlurRadius.
	ErrRadiusTooLarge = errors.New("gpu: blur radius too large")

	// ErrTextureTooLarge is returned when a texture exceeds the adapter's
	// 2D size limit.
	ErrTextureTooLarge = errors.New("gpu: texture exceeds device limit")

	// ErrClosed is returned by a pipeline after Close.
	ErrClosed = errors.New("gpu: pipeline closed")

	// ErrReadback is returned when a readback has an unexpected size.
	ErrReadback = errors.New("gpu: readback size mismatch")
)
