// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/rc2d/cascade"
	"github.com/gogpu/rc2d/internal/filter"
	"github.com/gogpu/rc2d/internal/rc"
)

const (
	// finalizeUniformsSize is the byte size of FinalizeUniforms in
	// rc_finalize.wgsl.
	finalizeUniformsSize = 48

	// MaxBlurRadius is the largest blur radius the finalize shader's tap
	// table holds (2r+1 <= 16 taps).
	MaxBlurRadius = 7

	tapsSize = 16 * 4
)

// marshalFinalize encodes the finalize uniform block:
//
//	0  input_size      vec2<u32>
//	8  viewport_offset vec2<u32>
//	16 viewport_size   vec2<u32>
//	24 radius          u32
//	28 full_grid       u32
//	32 brightness      f32
//	36 _pad            12 bytes
func marshalFinalize(p cascade.Params, u cascade.Uniforms, cfg rc.FinalizeConfig) []byte {
	b := make([]byte, finalizeUniformsSize)
	le := binary.LittleEndian
	le.PutUint32(b[0:], uint32(p.Width))  //nolint:gosec // validated positive
	le.PutUint32(b[4:], uint32(p.Height)) //nolint:gosec // validated positive
	le.PutUint32(b[8:], u.ViewportOffset[0])
	le.PutUint32(b[12:], u.ViewportOffset[1])
	le.PutUint32(b[16:], u.ViewportSize[0])
	le.PutUint32(b[20:], u.ViewportSize[1])
	le.PutUint32(b[24:], uint32(filter.EffectiveRadius(cfg.Weight, cfg.Radius))) //nolint:gosec // <= MaxBlurRadius
	if cfg.Domain == rc.DomainFullGrid {
		le.PutUint32(b[28:], 1)
	}
	le.PutUint32(b[32:], math.Float32bits(cfg.Brightness))
	return b
}

// marshalTaps encodes the 1D kernel of cfg into the 16-float tap table.
func marshalTaps(cfg rc.FinalizeConfig) []byte {
	r := filter.EffectiveRadius(cfg.Weight, cfg.Radius)
	b := make([]byte, tapsSize)
	for i, w := range filter.Kernel(cfg.Weight, r) {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(w))
	}
	return b
}
