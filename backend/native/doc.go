// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package native runs the rc2d GPU pipeline on gogpu/wgpu HAL devices.
//
// HALAdapter implements gpucore.GPUAdapter on a hal.Device and hal.Queue.
// It tracks the usage state of every texture and inserts the transitions
// a compute pass needs when the pass ends, so callers never issue
// barriers themselves.
//
// Device wraps a HALAdapter together with the device it was opened from.
// Importing this package registers the "native" backend:
//
//	import _ "github.com/gogpu/rc2d/backend/native"
//
// To share the device of a gogpu application use FromProvider.
package native
