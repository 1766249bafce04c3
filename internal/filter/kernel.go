// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"fmt"
	"math"
	"strings"
	"sync"
)

// Weight selects the 1D weight function of a blur kernel.
type Weight uint8

const (
	// WeightNone disables blurring regardless of radius.
	WeightNone Weight = iota

	// WeightBox weights every tap equally.
	WeightBox

	// WeightBinomial uses binomial coefficients, a cheap Gaussian
	// approximation. Radius 1 gives the 1-2-1 / 3x3 weighted kernel.
	WeightBinomial

	// WeightGaussian samples a Gaussian with sigma = radius/2.
	WeightGaussian
)

// String returns the lower-case weight name.
func (w Weight) String() string {
	switch w {
	case WeightNone:
		return "none"
	case WeightBox:
		return "box"
	case WeightBinomial:
		return "binomial"
	case WeightGaussian:
		return "gaussian"
	default:
		return fmt.Sprintf("Weight(%d)", uint8(w))
	}
}

// ParseWeight parses a weight name as returned by Weight.String.
func ParseWeight(s string) (Weight, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return WeightNone, nil
	case "box":
		return WeightBox, nil
	case "binomial":
		return WeightBinomial, nil
	case "gaussian":
		return WeightGaussian, nil
	}
	return WeightNone, fmt.Errorf("filter: unknown weight %q", s)
}

// GaussianKernel generates a 1D Gaussian kernel of length 2*radius+1 with
// sigma = radius/2. The kernel is normalized so all values sum to 1.0.
//
// For radius <= 0, returns a single-element kernel [1.0] (identity).
func GaussianKernel(radius int) []float32 {
	if radius <= 0 {
		return []float32{1.0}
	}

	sigma := float64(radius) / 2
	twoSigmaSq := 2 * sigma * sigma
	size := radius*2 + 1
	raw := make([]float64, size)
	sum := float64(0)
	for i := range raw {
		x := float64(i - radius)
		raw[i] = math.Exp(-(x * x) / twoSigmaSq)
		sum += raw[i]
	}
	return normalize(raw, sum)
}

// BoxKernel generates a 1D box (uniform) kernel for the given radius.
// All values are equal: 1/(2*radius+1).
func BoxKernel(radius int) []float32 {
	if radius <= 0 {
		return []float32{1.0}
	}

	size := radius*2 + 1
	kernel := make([]float32, size)
	val := float32(1.0) / float32(size)
	for i := range kernel {
		kernel[i] = val
	}
	return kernel
}

// BinomialKernel generates the normalized row 2*radius of Pascal's triangle.
func BinomialKernel(radius int) []float32 {
	if radius <= 0 {
		return []float32{1.0}
	}

	size := radius*2 + 1
	raw := make([]float64, size)
	raw[0] = 1
	for i := 1; i < size; i++ {
		// C(n, i) = C(n, i-1) * (n-i+1) / i
		raw[i] = raw[i-1] * float64(size-i) / float64(i)
	}
	return normalize(raw, math.Exp2(float64(size-1)))
}

// Kernel returns the normalized 1D kernel for w. WeightNone and unknown
// weights return the identity kernel.
func Kernel(w Weight, radius int) []float32 {
	switch w {
	case WeightBox:
		return BoxKernel(radius)
	case WeightBinomial:
		return BinomialKernel(radius)
	case WeightGaussian:
		return GaussianKernel(radius)
	default:
		return []float32{1.0}
	}
}

// EffectiveRadius returns the radius actually covered by a kernel of weight w.
func EffectiveRadius(w Weight, radius int) int {
	if w == WeightNone || radius < 0 {
		return 0
	}
	return radius
}

// Outer returns the (2r+1)^2 row-major outer product k ⊗ k.
func Outer(k []float32) []float32 {
	n := len(k)
	out := make([]float32, n*n)
	for j, wy := range k {
		for i, wx := range k {
			out[j*n+i] = wy * wx
		}
	}
	return out
}

func normalize(raw []float64, sum float64) []float32 {
	k := make([]float32, len(raw))
	if sum <= 0 {
		return k
	}
	for i, v := range raw {
		k[i] = float32(v / sum)
	}
	return k
}

type kernelKey struct {
	w      Weight
	radius int
}

// kernelCache caches 2D weight tables; finalize requests the same table
// every frame.
type kernelCache struct {
	mu     sync.RWMutex
	cache  map[kernelKey][]float32
	maxLen int
}

var defaultKernelCache = newKernelCache(32)

func newKernelCache(maxLen int) *kernelCache {
	return &kernelCache{
		cache:  make(map[kernelKey][]float32),
		maxLen: maxLen,
	}
}

func (c *kernelCache) get(w Weight, radius int) []float32 {
	key := kernelKey{w, EffectiveRadius(w, radius)}

	c.mu.RLock()
	if table, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return table
	}
	c.mu.RUnlock()

	table := Outer(Kernel(key.w, key.radius))

	c.mu.Lock()
	if len(c.cache) >= c.maxLen {
		// Simple eviction: clear half the cache.
		count := 0
		for k := range c.cache {
			delete(c.cache, k)
			count++
			if count >= c.maxLen/2 {
				break
			}
		}
	}
	c.cache[key] = table
	c.mu.Unlock()

	return table
}

// Weights2D returns the cached (2r+1)^2 row-major weight table for w, where
// r = EffectiveRadius(w, radius). The returned slice is shared and must not
// be modified.
func Weights2D(w Weight, radius int) []float32 {
	return defaultKernelCache.get(w, radius)
}

// KernelCenter returns the center index of a kernel of the given size.
func KernelCenter(kernelSize int) int {
	return kernelSize / 2
}
