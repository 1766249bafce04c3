// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rc2d

import (
	"image"

	"github.com/gogpu/rc2d/cascade"
	"github.com/gogpu/rc2d/gpucore"
)

// DefaultBounceDamping is the fraction of last frame's light reflected by
// solid texels.
const DefaultBounceDamping = 0.4

// Option configures a Lighting during creation.
// Use functional options to customize Lighting behavior.
//
// Example:
//
//	// CPU executor with defaults
//	l, err := rc2d.New(320, 180)
//
//	// GPU executor with a wider blur
//	l, err := rc2d.New(320, 180,
//		rc2d.WithGPU(dev),
//		rc2d.WithFinalize(rc2d.Finalize{Radius: 2, Weight: rc2d.WeightGaussian}))
type Option func(*options)

// options holds optional configuration for Lighting creation.
type options struct {
	branching       int
	directionOffset int
	cascadeCount    int
	viewport        image.Rectangle
	finalize        Finalize
	brightness      float32
	bounceDamping   float32
	workers         int
	gpu             gpucore.GPUAdapter
}

// defaultOptions returns the default lighting options.
func defaultOptions() options {
	return options{
		branching:       cascade.DefaultBranching,
		directionOffset: cascade.DefaultDirectionOffset,
		cascadeCount:    0, // ComputeCount of the larger side
		finalize:        DefaultFinalize,
		brightness:      1,
		bounceDamping:   DefaultBounceDamping,
	}
}

// WithBranching sets the branching factor B between cascades. Both
// B^K and B^(K+1) must be perfect squares.
func WithBranching(b int) Option {
	return func(o *options) {
		o.branching = b
	}
}

// WithDirectionOffset sets K in numDirections(n) = B^(n+K). With B=4, K=2
// gives 16 directions per cascade-0 probe.
func WithDirectionOffset(k int) Option {
	return func(o *options) {
		o.directionOffset = k
	}
}

// WithCascadeCount fixes the number of cascades. Zero selects
// cascade.ComputeCount of the larger input side.
func WithCascadeCount(n int) Option {
	return func(o *options) {
		o.cascadeCount = n
	}
}

// WithViewport sets the visible rectangle inside the input grid. The
// zero rectangle, the default, is the whole grid. With DomainViewport the lightmap has the
// viewport's size.
func WithViewport(r image.Rectangle) Option {
	return func(o *options) {
		o.viewport = r
	}
}

// WithFinalize sets the blur strategy of the finalize stage.
func WithFinalize(f Finalize) Option {
	return func(o *options) {
		o.finalize = f
	}
}

// WithBrightness sets the HDR gain applied to the lightmap.
func WithBrightness(b float32) Option {
	return func(o *options) {
		o.brightness = b
	}
}

// WithBounceDamping sets the fraction of bounce light carried from one
// frame to the next, in [0, 1). Zero disables bounce light.
func WithBounceDamping(d float32) Option {
	return func(o *options) {
		o.bounceDamping = d
	}
}

// WithWorkers sets the CPU worker count. Zero or negative uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithGPU runs frames on the given adapter. If the pipeline cannot be
// created on it, or it reports itself as a software device, frames run on
// the CPU instead.
//
// The adapter is borrowed: Lighting.Close does not close it.
func WithGPU(a gpucore.GPUAdapter) Option {
	return func(o *options) {
		o.gpu = a
	}
}
