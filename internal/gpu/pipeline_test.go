// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gogpu/rc2d/cascade"
	"github.com/gogpu/rc2d/field"
	"github.com/gogpu/rc2d/gpucore"
	"github.com/gogpu/rc2d/internal/filter"
	"github.com/gogpu/rc2d/internal/rc"
)

var testFinalize = rc.FinalizeConfig{Radius: 1, Weight: filter.WeightBinomial, Brightness: 1}

func testConfig(t *testing.T, w, h, count int) Config {
	t.Helper()
	p, err := cascade.New(w, h, count)
	if err != nil {
		t.Fatalf("cascade.New: %v", err)
	}
	return Config{Params: p, Finalize: testFinalize, LightmapWidth: w, LightmapHeight: h}
}

func testUniforms(p cascade.Params) cascade.Uniforms {
	return cascade.Uniforms{
		InputSize:     [2]uint32{uint32(p.Width), uint32(p.Height)},
		CascadeCount:  uint32(p.Count),
		ViewportSize:  [2]uint32{uint32(p.Width), uint32(p.Height)},
		BounceDamping: 0.4,
	}
}

func newTestPipeline(t *testing.T, a *fakeAdapter, cfg Config) *Pipeline {
	t.Helper()
	stubCompiler(t)
	pl, err := NewPipeline(a, cfg)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	t.Cleanup(pl.Close)
	return pl
}

func runFrame(t *testing.T, pl *Pipeline) *field.Texture {
	t.Helper()
	cfg := pl.Config()
	out := field.NewTexture(cfg.LightmapWidth, cfg.LightmapHeight)
	scene := field.NewScene(cfg.Params.Width, cfg.Params.Height)
	if _, err := pl.Run(context.Background(), testUniforms(cfg.Params), scene, out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out
}

func TestPipeline_PassOrder(t *testing.T) {
	a := newFakeAdapter()
	pl := newTestPipeline(t, a, testConfig(t, 64, 64, 3))

	out := field.NewTexture(64, 64)
	passes, err := pl.Run(context.Background(), testUniforms(pl.Config().Params), field.NewScene(64, 64), out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if passes != 4 {
		t.Errorf("passes = %d, want 4", passes)
	}
	if a.submits != 1 {
		t.Errorf("submits = %d, want 1", a.submits)
	}

	want := []struct {
		label string
		gx    uint32
	}{
		{"rc_cascade_2", 2},
		{"rc_cascade_1", 4},
		{"rc_cascade_0", 8},
		{"rc_finalize", 8},
	}
	if len(a.passes) != len(want) {
		t.Fatalf("recorded %d passes, want %d", len(a.passes), len(want))
	}
	for i, w := range want {
		got := a.passes[i]
		if got.label != w.label {
			t.Errorf("pass %d = %q, want %q", i, got.label, w.label)
		}
		if got.groups != [3]uint32{w.gx, w.gx, 1} {
			t.Errorf("%s dispatch = %v, want %d x %d x 1", got.label, got.groups, w.gx, w.gx)
		}
		if !got.ended {
			t.Errorf("%s not ended", got.label)
		}
	}
	if !strings.Contains(a.pipelines[a.passes[3].pipeline], "finalize") {
		t.Errorf("finalize pass uses pipeline %q", a.pipelines[a.passes[3].pipeline])
	}
}

func TestPipeline_PingPong(t *testing.T) {
	a := newFakeAdapter()
	pl := newTestPipeline(t, a, testConfig(t, 64, 64, 4))
	runFrame(t, pl)

	for i, pass := range a.passes[:4] {
		n := 3 - i
		write, read := cascade.PingPong(n)
		if got := a.entry(t, pass.group, bindOutput).Texture; got != pl.cascades[write] {
			t.Errorf("cascade %d writes texture %d, want %d", n, got, pl.cascades[write])
		}
		if got := a.entry(t, pass.group, bindParent).Texture; got != pl.cascades[read] {
			t.Errorf("cascade %d reads texture %d, want %d", n, got, pl.cascades[read])
		}
		u := a.entry(t, pass.group, bindUniforms)
		if u.Offset != uint64(n)*256 || u.Size != cascade.UniformsSize {
			t.Errorf("cascade %d uniforms at %d+%d, want %d+%d", n, u.Offset, u.Size, n*256, cascade.UniformsSize)
		}
	}

	fin := a.passes[4].group
	if got := a.entry(t, fin, bindCascade0).Texture; got != pl.cascades[0] {
		t.Errorf("finalize reads texture %d, want cascade slot A %d", got, pl.cascades[0])
	}
}

func TestPipeline_UniformSlots(t *testing.T) {
	a := newFakeAdapter()
	pl := newTestPipeline(t, a, testConfig(t, 64, 64, 3))
	u := testUniforms(pl.Config().Params)

	check := func(frame int, damping float32) {
		t.Helper()
		block := a.buffers[pl.cascadeUniforms]
		for n := range 3 {
			want := u.ForCascade(n)
			want.BounceDamping = damping
			got := block[n*256 : n*256+cascade.UniformsSize]
			if !bytes.Equal(got, want.Marshal()) {
				t.Errorf("frame %d cascade %d uniforms = %x, want %x", frame, n, got, want.Marshal())
			}
		}
	}

	runFrame(t, pl)
	check(1, 0)
	runFrame(t, pl)
	check(2, 0.4)
}

func TestPipeline_HistorySwap(t *testing.T) {
	a := newFakeAdapter()
	pl := newTestPipeline(t, a, testConfig(t, 32, 32, 2))

	for frame := range 3 {
		before := len(a.passes)
		runFrame(t, pl)
		write := frame % 2
		fin := a.passes[len(a.passes)-1].group
		if got := a.entry(t, fin, bindLightmap).Texture; got != pl.lightmaps[write] {
			t.Errorf("frame %d writes lightmap %d, want %d", frame, got, pl.lightmaps[write])
		}
		c0 := a.passes[before].group
		if got := a.entry(t, c0, bindHistory).Texture; got != pl.lightmaps[1-write] {
			t.Errorf("frame %d reads history %d, want %d", frame, got, pl.lightmaps[1-write])
		}
	}
	if !pl.HasHistory() {
		t.Error("HasHistory = false after frames")
	}
}

func TestPipeline_Readback(t *testing.T) {
	a := newFakeAdapter()
	pl := newTestPipeline(t, a, testConfig(t, 32, 16, 2))
	want := field.RGB{R: 2, G: 0.5, B: 0.25}
	a.readback = &want

	out := runFrame(t, pl)
	for i, c := range out.Pix {
		if c != want {
			t.Fatalf("pixel %d = %v, want %v", i, c, want)
		}
	}
}

func TestPipeline_InitialLightmapsWhite(t *testing.T) {
	a := newFakeAdapter()
	pl := newTestPipeline(t, a, testConfig(t, 32, 32, 2))

	for slot, id := range pl.lightmaps {
		tex := a.textures[id]
		got := field.NewTexture(32, 32)
		if err := unpackRGBA16F(tex.data, tex.layout, got); err != nil {
			t.Fatalf("slot %d: %v", slot, err)
		}
		if got.At(0, 0) != field.White || got.At(31, 31) != field.White {
			t.Errorf("slot %d not cleared to white", slot)
		}
	}
}

func TestPipeline_SceneUpload(t *testing.T) {
	a := newFakeAdapter()
	pl := newTestPipeline(t, a, testConfig(t, 32, 32, 2))

	scene := field.NewScene(32, 32)
	scene.SetSolid(3, 2, field.RGB{R: 1, G: 0.5, B: 0})
	scene.SetEmissive(5, 1, field.RGB{R: 4, G: 2, B: 1})
	if _, err := pl.Run(context.Background(), testUniforms(pl.Config().Params), scene, field.NewTexture(32, 32)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	d := a.textures[pl.density]
	if d.layout.BytesPerRow != 256 || d.data[2*256+3] != 255 || d.data[2*256+4] != 0 {
		t.Errorf("density upload wrong: bytesPerRow %d", d.layout.BytesPerRow)
	}
	al := a.textures[pl.albedo]
	if got := al.data[2*256+3*4 : 2*256+3*4+4]; !bytes.Equal(got, []byte{255, 128, 0, 255}) {
		t.Errorf("albedo texel = %v", got)
	}
	em := a.textures[pl.emissive]
	got := field.NewTexture(32, 32)
	if err := unpackRGBA16F(em.data, em.layout, got); err != nil {
		t.Fatal(err)
	}
	if got.At(5, 1) != (field.RGB{R: 4, G: 2, B: 1}) {
		t.Errorf("emissive texel = %v", got.At(5, 1))
	}
}

func TestPipeline_FailedFrameKeepsState(t *testing.T) {
	a := newFakeAdapter()
	pl := newTestPipeline(t, a, testConfig(t, 32, 32, 2))
	a.failSubmit = errInjected

	out := field.NewFilled(32, 32, field.Gray(7))
	_, err := pl.Run(context.Background(), testUniforms(pl.Config().Params), field.NewScene(32, 32), out)
	if !errors.Is(err, errInjected) {
		t.Fatalf("Run error = %v, want injected", err)
	}
	if pl.HasHistory() {
		t.Error("failed frame produced history")
	}
	if out.At(0, 0) != field.Gray(7) {
		t.Error("failed frame modified output")
	}

	a.failSubmit = nil
	a.pending = 0
	runFrame(t, pl)
	fin := a.passes[len(a.passes)-1].group
	if got := a.entry(t, fin, bindLightmap).Texture; got != pl.lightmaps[0] {
		t.Errorf("retry writes lightmap %d, want slot 0 %d", got, pl.lightmaps[0])
	}
}

func TestPipeline_Cancelled(t *testing.T) {
	a := newFakeAdapter()
	pl := newTestPipeline(t, a, testConfig(t, 32, 32, 2))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pl.Run(ctx, testUniforms(pl.Config().Params), field.NewScene(32, 32), field.NewTexture(32, 32))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if len(a.passes) != 0 {
		t.Errorf("cancelled frame recorded %d passes", len(a.passes))
	}
}

func TestPipeline_SizeMismatch(t *testing.T) {
	a := newFakeAdapter()
	pl := newTestPipeline(t, a, testConfig(t, 32, 32, 2))
	u := testUniforms(pl.Config().Params)

	if _, err := pl.Run(context.Background(), u, field.NewScene(16, 32), field.NewTexture(32, 32)); !errors.Is(err, field.ErrSizeMismatch) {
		t.Errorf("scene mismatch error = %v", err)
	}
	if _, err := pl.Run(context.Background(), u, field.NewScene(32, 32), field.NewTexture(8, 8)); !errors.Is(err, field.ErrSizeMismatch) {
		t.Errorf("lightmap mismatch error = %v", err)
	}
}

func TestPipeline_ResetHistory(t *testing.T) {
	a := newFakeAdapter()
	pl := newTestPipeline(t, a, testConfig(t, 32, 32, 2))
	runFrame(t, pl)

	if err := pl.ResetHistory(); err != nil {
		t.Fatalf("ResetHistory: %v", err)
	}
	if pl.HasHistory() {
		t.Error("HasHistory = true after reset")
	}
	runFrame(t, pl)
	block := a.buffers[pl.cascadeUniforms]
	want := testUniforms(pl.Config().Params)
	want.BounceDamping = 0
	if !bytes.Equal(block[:cascade.UniformsSize], want.Marshal()) {
		t.Error("frame after reset did not force zero damping")
	}
}

func TestPipeline_CloseReleasesEverything(t *testing.T) {
	stubCompiler(t)
	a := newFakeAdapter()
	pl, err := NewPipeline(a, testConfig(t, 64, 32, 3))
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	if len(a.live) == 0 {
		t.Fatal("no resources created")
	}
	pl.Close()
	pl.Close()

	if len(a.live) != 0 {
		t.Errorf("%d resources leaked: %v", len(a.live), a.live)
	}
	if a.idles != 1 {
		t.Errorf("WaitIdle called %d times, want 1", a.idles)
	}
	if !pl.IsClosed() {
		t.Error("IsClosed = false")
	}
	if _, err := pl.Run(context.Background(), cascade.Uniforms{}, field.NewScene(64, 32), field.NewTexture(64, 32)); !errors.Is(err, ErrClosed) {
		t.Errorf("Run after Close = %v, want ErrClosed", err)
	}
	if err := pl.ResetHistory(); !errors.Is(err, ErrClosed) {
		t.Errorf("ResetHistory after Close = %v, want ErrClosed", err)
	}
}

func TestNewPipeline_Errors(t *testing.T) {
	stubCompiler(t)

	tests := []struct {
		name   string
		adjust func(*fakeAdapter, *Config)
		want   error
	}{
		{"no compute", func(a *fakeAdapter, _ *Config) { a.compute = false }, ErrNoCompute},
		{"radius", func(_ *fakeAdapter, c *Config) { c.Finalize.Radius = MaxBlurRadius + 1 }, ErrRadiusTooLarge},
		{"texture limit", func(a *fakeAdapter, _ *Config) { a.maxDim = 32 }, ErrTextureTooLarge},
		{"bad params", func(_ *fakeAdapter, c *Config) { c.Params.Count = 0 }, cascade.ErrCascadeCount},
		{"empty lightmap", func(_ *fakeAdapter, c *Config) { c.LightmapWidth = 0 }, cascade.ErrInputSize},
		{"texture failure", func(a *fakeAdapter, _ *Config) { a.failTextureAt = 4 }, errInjected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newFakeAdapter()
			cfg := testConfig(t, 64, 64, 3)
			tt.adjust(a, &cfg)
			pl, err := NewPipeline(a, cfg)
			if !errors.Is(err, tt.want) {
				t.Fatalf("NewPipeline error = %v, want %v", err, tt.want)
			}
			if pl != nil {
				t.Error("pipeline returned with error")
			}
			if len(a.live) != 0 {
				t.Errorf("%d resources leaked after failed setup", len(a.live))
			}
		})
	}
}

func TestNewPipeline_NoBlurIgnoresRadius(t *testing.T) {
	a := newFakeAdapter()
	cfg := testConfig(t, 32, 32, 2)
	cfg.Finalize = rc.FinalizeConfig{Radius: 50, Weight: filter.WeightNone, Brightness: 1}
	newTestPipeline(t, a, cfg)
}

func TestPipeline_ViewportDomain(t *testing.T) {
	var shaders []string
	orig := compile
	spirvCache.Clear()
	compile = func(src string) ([]uint32, error) {
		shaders = append(shaders, src)
		return []uint32{0x07230203}, nil
	}
	t.Cleanup(func() {
		compile = orig
		spirvCache.Clear()
	})

	a := newFakeAdapter()
	cfg := testConfig(t, 64, 64, 3)
	cfg.Finalize.Domain = rc.DomainViewport
	cfg.LightmapWidth, cfg.LightmapHeight = 24, 16
	pl, err := NewPipeline(a, cfg)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	defer pl.Close()

	if len(shaders) != 2 || !strings.Contains(shaders[0], "VIEWPORT_HISTORY: bool = true") {
		t.Error("cascade shader not specialized for viewport history")
	}

	u := testUniforms(cfg.Params)
	u.ViewportOffset = [2]uint32{8, 16}
	u.ViewportSize = [2]uint32{24, 16}
	out := field.NewTexture(24, 16)
	if _, err := pl.Run(context.Background(), u, field.NewScene(64, 64), out); err != nil {
		t.Fatalf("Run: %v", err)
	}

	last := a.passes[len(a.passes)-1]
	if last.groups != [3]uint32{3, 2, 1} {
		t.Errorf("finalize dispatch = %v, want [3 2 1]", last.groups)
	}
	fu := a.buffers[pl.finalizeUniforms]
	if !bytes.Equal(fu, marshalFinalize(cfg.Params, u, cfg.Finalize)) {
		t.Error("finalize uniforms not updated with viewport offset")
	}
	if tex := a.textures[pl.lightmaps[0]]; tex.width != 24 || tex.height != 16 {
		t.Errorf("lightmap texture %dx%d, want 24x16", tex.width, tex.height)
	}
}

func TestNewPipeline_ReusesCompiledShaders(t *testing.T) {
	calls := 0
	orig := compile
	spirvCache.Clear()
	compile = func(src string) ([]uint32, error) {
		calls++
		return []uint32{0x07230203, uint32(len(src))}, nil
	}
	t.Cleanup(func() {
		compile = orig
		spirvCache.Clear()
	})

	for _, size := range []int{32, 64, 32} {
		pl, err := NewPipeline(newFakeAdapter(), testConfig(t, size, size, 2))
		if err != nil {
			t.Fatalf("NewPipeline(%d): %v", size, err)
		}
		pl.Close()
	}
	if calls != 2 {
		t.Errorf("compiled %d shaders for one hierarchy, want 2", calls)
	}

	// Viewport history changes the cascade shader only.
	cfg := testConfig(t, 64, 64, 2)
	cfg.Finalize.Domain = rc.DomainViewport
	cfg.LightmapWidth, cfg.LightmapHeight = 24, 16
	pl, err := NewPipeline(newFakeAdapter(), cfg)
	if err != nil {
		t.Fatalf("NewPipeline(viewport): %v", err)
	}
	pl.Close()
	if calls != 3 {
		t.Errorf("compiled %d shaders after adding viewport history, want 3", calls)
	}
	if s := spirvCache.Stats(); s.Len != 3 {
		t.Errorf("cache holds %d specializations, want 3", s.Len)
	}
}

func TestPipeline_TextureUsage(t *testing.T) {
	a := newFakeAdapter()
	pl := newTestPipeline(t, a, testConfig(t, 32, 32, 2))

	tests := []struct {
		id     gpucore.TextureID
		format gpucore.TextureFormat
		usage  gpucore.TextureUsage
	}{
		{pl.density, gpucore.TextureFormatR8Unorm, gpucore.TextureUsageCopyDst},
		{pl.cascades[0], gpucore.TextureFormatRGBA16Float, gpucore.TextureUsageStorageBinding | gpucore.TextureUsageTextureBinding},
		{pl.lightmaps[1], gpucore.TextureFormatRGBA16Float, gpucore.TextureUsageCopySrc | gpucore.TextureUsageStorageBinding},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			tex := a.textures[tt.id]
			if tex.format != tt.format || tex.usage&tt.usage != tt.usage {
				t.Errorf("texture %d: format %v usage %b, want %v with %b", tt.id, tex.format, tex.usage, tt.format, tt.usage)
			}
		})
	}
}

func BenchmarkPipeline_Record(b *testing.B) {
	orig := compile
	spirvCache.Clear()
	compile = func(string) ([]uint32, error) { return []uint32{1}, nil }
	defer func() {
		compile = orig
		spirvCache.Clear()
	}()

	p, _ := cascade.New(256, 256, 0)
	pl, err := NewPipeline(newFakeAdapter(), Config{Params: p, Finalize: testFinalize, LightmapWidth: 256, LightmapHeight: 256})
	if err != nil {
		b.Fatal(err)
	}
	defer pl.Close()

	b.ReportAllocs()
	for b.Loop() {
		if _, err := pl.record(); err != nil {
			b.Fatal(err)
		}
	}
}
