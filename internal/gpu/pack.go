// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"encoding/binary"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/x448/float16"

	"github.com/gogpu/rc2d/field"
	"github.com/gogpu/rc2d/gpucore"
)

// packDensity encodes the red channel as R8: 255 for solid texels, 0 for
// air. The shader's 0.5 threshold then reproduces field.SolidThreshold.
func packDensity(t *field.Texture, layout gpucore.TextureCopy) []byte {
	buf := make([]byte, layout.BytesPerRow*t.Height)
	for y := range t.Height {
		row := buf[y*layout.BytesPerRow:]
		for x := range t.Width {
			if t.Pix[y*t.Width+x].R > field.SolidThreshold {
				row[x] = 255
			}
		}
	}
	return buf
}

// packRGBA8 encodes t as RGBA8Unorm with alpha 255, clamping to [0, 1].
func packRGBA8(t *field.Texture, layout gpucore.TextureCopy) []byte {
	buf := make([]byte, layout.BytesPerRow*t.Height)
	for y := range t.Height {
		row := buf[y*layout.BytesPerRow:]
		for x := range t.Width {
			c := t.Pix[y*t.Width+x]
			o := x * 4
			row[o] = unorm8(c.R)
			row[o+1] = unorm8(c.G)
			row[o+2] = unorm8(c.B)
			row[o+3] = 255
		}
	}
	return buf
}

func unorm8(v float32) uint8 {
	return uint8(math32.Round(min(max(v, 0), 1) * 255))
}

// packRGBA16F encodes t as RGBA16Float with alpha 1.
func packRGBA16F(t *field.Texture, layout gpucore.TextureCopy) []byte {
	buf := make([]byte, layout.BytesPerRow*t.Height)
	one := float16.Fromfloat32(1).Bits()
	le := binary.LittleEndian
	for y := range t.Height {
		row := buf[y*layout.BytesPerRow:]
		for x := range t.Width {
			c := t.Pix[y*t.Width+x]
			o := x * 8
			le.PutUint16(row[o:], float16.Fromfloat32(c.R).Bits())
			le.PutUint16(row[o+2:], float16.Fromfloat32(c.G).Bits())
			le.PutUint16(row[o+4:], float16.Fromfloat32(c.B).Bits())
			le.PutUint16(row[o+6:], one)
		}
	}
	return buf
}

// filledRGBA16F returns an RGBA16Float upload of a texture filled with c.
func filledRGBA16F(c field.RGB, layout gpucore.TextureCopy) []byte {
	return packRGBA16F(field.NewFilled(layout.Width, layout.Height, c), layout)
}

// unpackRGBA16F decodes RGBA16Float rows into dst, dropping alpha.
func unpackRGBA16F(data []byte, layout gpucore.TextureCopy, dst *field.Texture) error {
	if dst.Width != layout.Width || dst.Height != layout.Height {
		return fmt.Errorf("%w: texture %dx%d, layout %dx%d",
			field.ErrSizeMismatch, dst.Width, dst.Height, layout.Width, layout.Height)
	}
	if need := layout.BytesPerRow * layout.Height; len(data) < need {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrReadback, len(data), need)
	}
	le := binary.LittleEndian
	for y := range layout.Height {
		row := data[y*layout.BytesPerRow:]
		for x := range layout.Width {
			o := x * 8
			dst.Pix[y*dst.Width+x] = field.RGB{
				R: float16.Frombits(le.Uint16(row[o:])).Float32(),
				G: float16.Frombits(le.Uint16(row[o+2:])).Float32(),
				B: float16.Frombits(le.Uint16(row[o+4:])).Float32(),
			}
		}
	}
	return nil
}
