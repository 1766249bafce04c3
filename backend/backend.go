// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"

	"github.com/gogpu/rc2d/gpucore"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Backend name constants.
const (
	// BackendNative is the name of the Pure Go GPU backend (gogpu/wgpu HAL).
	BackendNative = "native"
)

// Device is a GPU device usable by rc2d.WithGPU.
//
// Backends must be registered via Register() and are opened via
// Open() or OpenDefault().
type Device interface {
	gpucore.GPUAdapter

	// Name returns the adapter name (e.g., "NVIDIA GeForce RTX 4090").
	Name() string

	// Software reports whether the device emulates a GPU on the CPU.
	Software() bool

	// Close releases the device.
	// The device should not be used after Close is called.
	Close()
}
