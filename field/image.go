// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package field

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/lucasb-eyer/go-colorful"

	// Scene layers may be authored in any of these formats.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image converts t to an 8-bit sRGB image. Linear values are multiplied by
// exposure and clamped to [0, 1] before encoding.
func (t *Texture) Image(exposure float32) *image.RGBA {
	img := image.NewRGBA(t.Bounds())
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			img.SetRGBA(x, y, ToneMap(t.At(x, y), exposure))
		}
	}
	return img
}

// ToneMap converts a linear HDR value to an opaque 8-bit sRGB color.
func ToneMap(c RGB, exposure float32) color.RGBA {
	lin := colorful.LinearRgb(
		clamp01(float64(c.R*exposure)),
		clamp01(float64(c.G*exposure)),
		clamp01(float64(c.B*exposure)),
	)
	r, g, b := lin.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// SavePNG writes t tone mapped with the given exposure to a PNG file.
func (t *Texture) SavePNG(path string, exposure float32) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, t.Image(exposure))
}

// FromImage converts img into a texture. Channels are taken as stored and
// scaled to [0, 1]; no color space conversion is applied, so authored
// density masks keep their exact 0/1 values.
func FromImage(img image.Image) *Texture {
	b := img.Bounds()
	t := NewTexture(b.Dx(), b.Dy())
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			t.Pix[y*t.Width+x] = RGB{
				R: float32(r) / 0xffff,
				G: float32(g) / 0xffff,
				B: float32(bl) / 0xffff,
			}
		}
	}
	return t
}

// Decode reads a PNG, BMP, TIFF or WebP image into a texture.
func Decode(r io.Reader) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("field: decode: %w", err)
	}
	return FromImage(img), nil
}

// LoadFile decodes the image file at path into a texture.
func LoadFile(path string) (*Texture, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return Decode(f)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
