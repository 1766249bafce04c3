// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package field

import "testing"

func TestRGB_Arithmetic(t *testing.T) {
	a := RGB{1, 2, 3}
	b := RGB{0.5, 0.25, 2}

	if got := a.Add(b); got != (RGB{1.5, 2.25, 5}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != (RGB{0.5, 1.75, 1}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Mul(b); got != (RGB{0.5, 0.5, 6}) {
		t.Errorf("Mul = %v", got)
	}
	if got := a.Scale(2); got != (RGB{2, 4, 6}) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Sum(); got != 6 {
		t.Errorf("Sum = %v, want 6", got)
	}
	if !Black.IsZero() || White.IsZero() {
		t.Error("IsZero mismatch for Black/White")
	}
}

func TestRGB_LerpEndpoints(t *testing.T) {
	a := RGB{0.1, 0.2, 0.3}
	b := RGB{0.7, 0.9, 0.13}
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(t=0) = %v, want %v", got, a)
	}
	if got := a.Lerp(a, 0.37); got != a {
		t.Errorf("Lerp(a, a) = %v, want %v", got, a)
	}
}

func TestMean_UniformIsExact(t *testing.T) {
	for _, v := range []RGB{{0.1, 0.2, 0.3}, {1.0 / 3, 2.0 / 7, 5.0 / 11}, {123.456, 0.001, 7}} {
		for _, n := range []int{1, 3, 4, 7, 16, 64, 256} {
			var m Mean
			for range n {
				m.Add(v)
			}
			if got := m.Value(); got != v {
				t.Errorf("mean of %d x %v = %v", n, v, got)
			}
			if m.Count() != n {
				t.Errorf("Count() = %d, want %d", m.Count(), n)
			}
		}
	}
}

func TestMean_Average(t *testing.T) {
	var m Mean
	m.Add(RGB{1, 0, 0})
	m.Add(RGB{0, 1, 0})
	m.Add(RGB{0, 0, 1})
	m.Add(RGB{1, 1, 1})
	got := m.Value()
	want := RGB{0.5, 0.5, 0.5}
	if absf(got.R-want.R) > 1e-6 || absf(got.G-want.G) > 1e-6 || absf(got.B-want.B) > 1e-6 {
		t.Errorf("mean = %v, want %v", got, want)
	}
}

func TestWeightedMean_UniformIsExact(t *testing.T) {
	weights := []float32{1, 4, 6, 4, 1, 0.0625, 0.375, 0.1, 0}
	v := RGB{0.3, 1.0 / 3, 0.7}
	var m WeightedMean
	for _, w := range weights {
		m.Add(v, w)
	}
	if got := m.Value(); got != v {
		t.Errorf("weighted mean = %v, want %v", got, v)
	}
}

func TestWeightedMean_Weights(t *testing.T) {
	var m WeightedMean
	m.Add(RGB{1, 1, 1}, 3)
	m.Add(RGB{0, 0, 0}, 1)
	m.Add(RGB{5, 5, 5}, -1) // ignored
	if got := m.Value(); absf(got.R-0.75) > 1e-6 {
		t.Errorf("weighted mean = %v, want 0.75", got)
	}
	if m.Weight() != 4 {
		t.Errorf("Weight() = %v, want 4", m.Weight())
	}
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
