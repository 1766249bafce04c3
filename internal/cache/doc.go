// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cache provides a small generic LRU cache.
//
// The GPU pipeline uses it to keep compiled SPIR-V per shader
// specialization, so resizing a Lighting or reopening a pipeline with the
// same hierarchy skips the WGSL compiler:
//
//	c := cache.New[shaderKey, []uint32](8)
//	code, err := c.GetOrCreate(key, func() ([]uint32, error) {
//		return compile(src)
//	})
//
// Entries live on an intrusive circular list ordered by recency; eviction
// drops the tail.
//
// Cache is safe for concurrent use.
package cache
