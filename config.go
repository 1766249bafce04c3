// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rc2d

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/rc2d/cascade"
	"github.com/gogpu/rc2d/internal/filter"
	"github.com/gogpu/rc2d/internal/rc"
)

// Weight is the 1D weight function of the finalize blur.
type Weight = filter.Weight

// Blur weights.
const (
	WeightNone     = filter.WeightNone
	WeightBox      = filter.WeightBox
	WeightBinomial = filter.WeightBinomial
	WeightGaussian = filter.WeightGaussian
)

// ParseWeight parses "none", "box", "binomial" or "gaussian".
func ParseWeight(s string) (Weight, error) {
	return filter.ParseWeight(s)
}

// Domain is the address space of the lightmap.
type Domain = rc.Domain

// Lightmap domains.
const (
	// DomainFullGrid writes one lightmap pixel per input pixel.
	DomainFullGrid = rc.DomainFullGrid

	// DomainViewport writes a viewport-sized lightmap.
	DomainViewport = rc.DomainViewport
)

// Finalize is the blur strategy of the finalize stage.
type Finalize struct {
	// Radius is the blur radius in probes. Zero disables the blur.
	Radius int
	Weight Weight
	Domain Domain
}

// DefaultFinalize is a 3x3 binomial blur over the full grid.
var DefaultFinalize = Finalize{Radius: 1, Weight: WeightBinomial, Domain: DomainFullGrid}

// Backend names reported in Config and FrameStats.
const (
	BackendCPU = "cpu"
	BackendGPU = "gpu"
)

// Config is the resolved configuration of a Lighting.
type Config struct {
	Params        cascade.Params
	Viewport      image.Rectangle
	Finalize      Finalize
	Brightness    float32
	BounceDamping float32
	Workers       int

	// Backend is BackendCPU or BackendGPU.
	Backend string
}

// LightmapSize returns the size of the lightmap for c.
func (c Config) LightmapSize() (w, h int) {
	if c.Finalize.Domain == DomainViewport {
		return c.Viewport.Dx(), c.Viewport.Dy()
	}
	return c.Params.Width, c.Params.Height
}

func (c Config) finalizeConfig() rc.FinalizeConfig {
	return rc.FinalizeConfig{
		Radius:     c.Finalize.Radius,
		Weight:     c.Finalize.Weight,
		Domain:     c.Finalize.Domain,
		Brightness: c.Brightness,
	}
}

// resolve validates o for a width x height grid.
func resolve(width, height int, o options) (Config, error) {
	p := cascade.Params{
		Branching:       o.branching,
		DirectionOffset: o.directionOffset,
		Count:           o.cascadeCount,
		Width:           width,
		Height:          height,
	}
	if p.Count == 0 {
		p.Count = cascade.ComputeCount(max(width, height))
	}
	if err := p.Validate(); err != nil {
		return Config{}, err
	}

	vp := o.viewport
	if vp == (image.Rectangle{}) {
		vp = image.Rect(0, 0, width, height)
	}
	if err := checkViewport(vp, width, height); err != nil {
		return Config{}, err
	}
	if o.finalize.Radius < 0 {
		return Config{}, fmt.Errorf("%w: %d", ErrBlurRadius, o.finalize.Radius)
	}
	b := float64(o.brightness)
	if b < 0 || math.IsNaN(b) || math.IsInf(b, 0) {
		return Config{}, fmt.Errorf("%w: %v", ErrBrightness, o.brightness)
	}
	if d := float64(o.bounceDamping); d < 0 || d >= 1 || math.IsNaN(d) {
		return Config{}, fmt.Errorf("%w: %v", ErrBounceDamping, o.bounceDamping)
	}

	return Config{
		Params:        p,
		Viewport:      vp,
		Finalize:      o.finalize,
		Brightness:    o.brightness,
		BounceDamping: o.bounceDamping,
		Workers:       o.workers,
		Backend:       BackendCPU,
	}, nil
}

func checkViewport(vp image.Rectangle, width, height int) error {
	if vp.Empty() || !vp.In(image.Rect(0, 0, width, height)) {
		return fmt.Errorf("%w: %v in %dx%d grid", ErrViewport, vp, width, height)
	}
	return nil
}
