// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import "errors"

// Package errors for the native backend.
var (
	// ErrNoGPU is returned when no GPU adapter is available.
	ErrNoGPU = errors.New("native: no GPU adapter available")

	// ErrNoHALDevice is returned when a device provider does not expose
	// HAL device and queue handles.
	ErrNoHALDevice = errors.New("native: provider has no HAL device")

	// ErrInvalidDescriptor is returned for malformed resource descriptors
	// and out-of-range copies.
	ErrInvalidDescriptor = errors.New("native: invalid descriptor")

	// ErrUnknownResource is returned when an ID does not name a live
	// resource.
	ErrUnknownResource = errors.New("native: unknown resource")
)
