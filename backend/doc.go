// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend is a registry of GPU devices for rc2d.
//
// Device implementations register themselves from init() and are opened by
// name at runtime. The Pure Go backend registers on import:
//
//	import _ "github.com/gogpu/rc2d/backend/native"
//
// # Device Selection
//
// Use OpenDefault() to open the best available device, or Open() to request
// a specific backend by name:
//
//	dev, err := backend.OpenDefault()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dev.Close()
//
//	lighting, err := rc2d.New(320, 180, rc2d.WithGPU(dev))
//
// # Available Backends
//
// - "native": gogpu/wgpu HAL (Vulkan), Pure Go
package backend
