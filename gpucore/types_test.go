// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucore

import "testing"

func TestAlignBytesPerRow(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 0},
		{1, 256},
		{256, 256},
		{257, 512},
		{100 * 8, 1024},
	}
	for _, tt := range tests {
		if got := AlignBytesPerRow(tt.in); got != tt.want {
			t.Errorf("AlignBytesPerRow(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCopyLayout(t *testing.T) {
	tests := []struct {
		w, h int
		f    TextureFormat
		bpr  int
	}{
		{100, 10, TextureFormatR8Unorm, 256},
		{100, 10, TextureFormatRGBA8Unorm, 512},
		{100, 10, TextureFormatRGBA16Float, 1024},
		{64, 64, TextureFormatRGBA16Float, 512},
		{32, 1, TextureFormatRGBA32Float, 512},
	}
	for _, tt := range tests {
		got := CopyLayout(tt.w, tt.h, tt.f)
		if got.BytesPerRow != tt.bpr || got.Width != tt.w || got.Height != tt.h {
			t.Errorf("CopyLayout(%d, %d, %v) = %+v, want bytesPerRow %d", tt.w, tt.h, tt.f, got, tt.bpr)
		}
	}
}

func TestTextureFormat(t *testing.T) {
	for _, f := range []TextureFormat{TextureFormatR8Unorm, TextureFormatRGBA8Unorm, TextureFormatRGBA16Float, TextureFormatRGBA32Float} {
		if f.BytesPerPixel() == 0 || f.String() == "unknown" {
			t.Errorf("format %d is not described", f)
		}
	}
	if TextureFormat(99).BytesPerPixel() != 0 {
		t.Error("unknown format should have zero size")
	}
}
