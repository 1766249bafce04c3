// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rc

import (
	"testing"

	"github.com/gogpu/rc2d/field"
)

func bounceInputs(t *testing.T) *Inputs {
	t.Helper()
	p := mustParams(t, 16, 16, 2)
	s := field.NewScene(16, 16)
	s.FillSolid(s.Density.Bounds(), field.RGB{R: 0.5, G: 1, B: 0.25})
	in := newInputs(t, p, s)
	in.Uniforms.BounceDamping = 0.5

	hist := field.NewTexture(16, 16)
	for y := range 16 {
		for x := range 16 {
			hist.Set(x, y, field.Gray(float32(y*16+x)))
		}
	}
	in.History = hist
	return in
}

func TestBounce_NoHistory(t *testing.T) {
	in := bounceInputs(t)
	in.History = nil
	for y := range 16 {
		for x := range 16 {
			if got := Bounce(in, x, y); !got.IsZero() {
				t.Fatalf("Bounce(%d, %d) without history = %v", x, y, got)
			}
		}
	}
}

func TestBounce_Reprojection(t *testing.T) {
	in := bounceInputs(t)
	in.Uniforms.BounceOffset = [2]int32{3, -2}

	tests := []struct {
		x, y int
		want field.RGB
	}{
		// history(8, 3) = 56; * albedo * 0.5
		{5, 5, field.RGB{R: 56 * 0.5 * 0.5, G: 56 * 0.5, B: 56 * 0.25 * 0.5}},
		{0, 2, field.RGB{R: 3 * 0.25, G: 3 * 0.5, B: 3 * 0.125}},
		// Reprojected outside the history.
		{13, 5, field.Black},
		{5, 1, field.Black},
	}
	for _, tt := range tests {
		if got := Bounce(in, tt.x, tt.y); got != tt.want {
			t.Errorf("Bounce(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestBounce_ViewportHistory(t *testing.T) {
	in := bounceInputs(t)
	in.Domain = DomainViewport
	in.Uniforms.ViewportOffset = [2]uint32{4, 2}
	in.Uniforms.ViewportSize = [2]uint32{8, 8}
	in.Uniforms.BounceOffset = [2]int32{1, 1}
	in.History = field.NewTexture(8, 8)
	in.History.Set(2, 4, field.Gray(2))

	// (5, 5) + (1, 1) - (4, 2) = (2, 4)
	if got := Bounce(in, 5, 5); got != (field.RGB{R: 0.5, G: 1, B: 0.25}) {
		t.Errorf("Bounce(5, 5) = %v", got)
	}
	// (2, 0) + (1, 1) - (4, 2) is outside the viewport history.
	if got := Bounce(in, 2, 0); !got.IsZero() {
		t.Errorf("Bounce(2, 0) = %v, want black", got)
	}
}

func TestBounce_ZeroDamping(t *testing.T) {
	in := bounceInputs(t)
	in.Uniforms.BounceDamping = 0
	if got := Bounce(in, 5, 5); !got.IsZero() {
		t.Errorf("Bounce with zero damping = %v", got)
	}
}
