// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cascade

import (
	"encoding/binary"
	"math"
)

// UniformsSize is the byte size of the marshaled Uniforms block.
const UniformsSize = 64

// Uniforms is the per-dispatch parameter block of a cascade pass.
//
// It is passed by value to every pass; nothing reads it from shared state.
// Must match RcUniforms in radiance_cascades.wgsl.
type Uniforms struct {
	InputSize      [2]uint32
	CascadeIndex   uint32
	CascadeCount   uint32
	ViewportOffset [2]uint32
	ViewportSize   [2]uint32
	BounceDamping  float32
	GridOrigin     [2]int32
	BounceOffset   [2]int32
}

// ForCascade returns a copy of u addressed at cascade n.
func (u Uniforms) ForCascade(n int) Uniforms {
	u.CascadeIndex = uint32(n) //nolint:gosec // cascade index < MaxCascades
	return u
}

// Marshal encodes u in the std140-compatible layout expected by the shader:
//
//	0  input_size      vec2<u32>
//	8  cascade_index   u32
//	12 cascade_count   u32
//	16 viewport_offset vec2<u32>
//	24 viewport_size   vec2<u32>
//	32 bounce_damping  f32
//	36 _pad0           u32
//	40 grid_origin     vec2<i32>
//	48 bounce_offset   vec2<i32>
//	56 _pad1           vec2<u32>
func (u Uniforms) Marshal() []byte {
	b := make([]byte, UniformsSize)
	le := binary.LittleEndian
	le.PutUint32(b[0:], u.InputSize[0])
	le.PutUint32(b[4:], u.InputSize[1])
	le.PutUint32(b[8:], u.CascadeIndex)
	le.PutUint32(b[12:], u.CascadeCount)
	le.PutUint32(b[16:], u.ViewportOffset[0])
	le.PutUint32(b[20:], u.ViewportOffset[1])
	le.PutUint32(b[24:], u.ViewportSize[0])
	le.PutUint32(b[28:], u.ViewportSize[1])
	le.PutUint32(b[32:], math.Float32bits(u.BounceDamping))
	le.PutUint32(b[40:], uint32(u.GridOrigin[0]))   //nolint:gosec // two's complement bit pattern
	le.PutUint32(b[44:], uint32(u.GridOrigin[1]))   //nolint:gosec // two's complement bit pattern
	le.PutUint32(b[48:], uint32(u.BounceOffset[0])) //nolint:gosec // two's complement bit pattern
	le.PutUint32(b[52:], uint32(u.BounceOffset[1])) //nolint:gosec // two's complement bit pattern
	return b
}
