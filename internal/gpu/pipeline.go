// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"context"
	"fmt"

	"github.com/gogpu/rc2d/cascade"
	"github.com/gogpu/rc2d/field"
	"github.com/gogpu/rc2d/gpucore"
	"github.com/gogpu/rc2d/internal/filter"
	"github.com/gogpu/rc2d/internal/rc"
)

// Config describes the resources of a Pipeline.
type Config struct {
	Params   cascade.Params
	Finalize rc.FinalizeConfig

	// LightmapWidth and LightmapHeight are the output size: the input grid
	// for rc.DomainFullGrid or the viewport for rc.DomainViewport.
	LightmapWidth  int
	LightmapHeight int
}

// Cascade bind group bindings, see radiance_cascades.wgsl.
const (
	bindUniforms uint32 = iota
	bindDensity
	bindEmissive
	bindAlbedo
	bindHistory
	bindParent
	bindOutput
)

// Finalize bind group bindings, see rc_finalize.wgsl.
const (
	bindFinalizeUniforms uint32 = iota
	bindCascade0
	bindTaps
	bindLightmap
)

const (
	passCascade = iota
	passFinalize
	numPasses
)

// Pipeline runs the cascade passes and the finalize pass on a GPUAdapter.
//
// All textures are allocated once: the scene inputs, two ping-pong cascade
// textures sized for the largest cascade, and two lightmap slots. Each frame
// writes one lightmap slot and reads the other as bounce history; the slots
// swap after a successful frame.
//
// A Pipeline is not safe for concurrent use.
type Pipeline struct {
	adapter gpucore.GPUAdapter
	cfg     Config

	shaders     [numPasses]gpucore.ShaderModuleID
	bindLayouts [numPasses]gpucore.BindGroupLayoutID
	pipeLayouts [numPasses]gpucore.PipelineLayoutID
	pipelines   [numPasses]gpucore.ComputePipelineID

	cascadeUniforms  gpucore.BufferID
	finalizeUniforms gpucore.BufferID
	taps             gpucore.BufferID

	density   gpucore.TextureID
	emissive  gpucore.TextureID
	albedo    gpucore.TextureID
	cascades  [2]gpucore.TextureID
	lightmaps [2]gpucore.TextureID

	// Indexed by the lightmap slot written this frame.
	cascadeGroups  [2][]gpucore.BindGroupID
	finalizeGroups [2]gpucore.BindGroupID

	release []func()

	slot       int
	hasHistory bool
	closed     bool
}

// NewPipeline compiles the shaders and allocates every GPU resource for cfg.
// On error, everything created so far is released.
func NewPipeline(adapter gpucore.GPUAdapter, cfg Config) (*Pipeline, error) {
	if !adapter.SupportsCompute() {
		return nil, ErrNoCompute
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	if r := filter.EffectiveRadius(cfg.Finalize.Weight, cfg.Finalize.Radius); r > MaxBlurRadius {
		return nil, fmt.Errorf("%w: %d > %d", ErrRadiusTooLarge, r, MaxBlurRadius)
	}
	if cfg.LightmapWidth <= 0 || cfg.LightmapHeight <= 0 {
		return nil, fmt.Errorf("%w: lightmap %dx%d", cascade.ErrInputSize, cfg.LightmapWidth, cfg.LightmapHeight)
	}

	p := cfg.Params
	cw, ch := p.MaxTextureSize()
	limit := int(adapter.MaxTextureDimension2D())
	if largest := max(cw, ch, p.Width, p.Height, cfg.LightmapWidth, cfg.LightmapHeight); largest > limit {
		return nil, fmt.Errorf("%w: %d > %d", ErrTextureTooLarge, largest, limit)
	}

	pl := &Pipeline{adapter: adapter, cfg: cfg}
	if err := pl.init(); err != nil {
		pl.Close()
		return nil, err
	}

	slogger().Info("gpu: cascade pipeline ready",
		"params", p.String(),
		"cascadeTexture", fmt.Sprintf("%dx%d", cw, ch),
		"lightmap", fmt.Sprintf("%dx%d", cfg.LightmapWidth, cfg.LightmapHeight))
	return pl, nil
}

func (pl *Pipeline) init() error {
	if err := pl.createPipelines(); err != nil {
		return err
	}
	if err := pl.createResources(); err != nil {
		return err
	}
	if err := pl.clearLightmaps(); err != nil {
		return err
	}
	return pl.createBindGroups()
}

func (pl *Pipeline) createPipelines() error {
	a := pl.adapter
	p := pl.cfg.Params
	viewportHistory := pl.cfg.Finalize.Domain == rc.DomainViewport

	sources := [numPasses]string{
		passCascade:  CascadeShader(p, viewportHistory),
		passFinalize: FinalizeShader(p),
	}
	labels := [numPasses]string{
		passCascade:  "rc_cascade",
		passFinalize: "rc_finalize",
	}
	keys := [numPasses]shaderKey{
		passCascade:  newShaderKey(labels[passCascade], p, viewportHistory),
		passFinalize: newShaderKey(labels[passFinalize], p, false),
	}
	entries := [numPasses][]gpucore.BindGroupLayoutEntry{
		passCascade: {
			{Binding: bindUniforms, Type: gpucore.BindingTypeUniformBuffer, MinBindingSize: cascade.UniformsSize},
			{Binding: bindDensity, Type: gpucore.BindingTypeSampledTexture},
			{Binding: bindEmissive, Type: gpucore.BindingTypeSampledTexture},
			{Binding: bindAlbedo, Type: gpucore.BindingTypeSampledTexture},
			{Binding: bindHistory, Type: gpucore.BindingTypeSampledTexture},
			{Binding: bindParent, Type: gpucore.BindingTypeSampledTexture},
			{Binding: bindOutput, Type: gpucore.BindingTypeStorageTexture, Format: gpucore.TextureFormatRGBA16Float},
		},
		passFinalize: {
			{Binding: bindFinalizeUniforms, Type: gpucore.BindingTypeUniformBuffer, MinBindingSize: finalizeUniformsSize},
			{Binding: bindCascade0, Type: gpucore.BindingTypeSampledTexture},
			{Binding: bindTaps, Type: gpucore.BindingTypeUniformBuffer, MinBindingSize: tapsSize},
			{Binding: bindLightmap, Type: gpucore.BindingTypeStorageTexture, Format: gpucore.TextureFormatRGBA16Float},
		},
	}

	for i := range numPasses {
		spirv, err := compileCached(keys[i], sources[i])
		if err != nil {
			return fmt.Errorf("%s: %w", labels[i], err)
		}
		mod, err := a.CreateShaderModule(spirv, labels[i])
		if err != nil {
			return fmt.Errorf("create %s shader module: %w", labels[i], err)
		}
		pl.shaders[i] = mod
		pl.onClose(func() { a.DestroyShaderModule(mod) })

		bgl, err := a.CreateBindGroupLayout(&gpucore.BindGroupLayoutDesc{Label: labels[i] + "_bind_layout", Entries: entries[i]})
		if err != nil {
			return fmt.Errorf("create %s bind group layout: %w", labels[i], err)
		}
		pl.bindLayouts[i] = bgl
		pl.onClose(func() { a.DestroyBindGroupLayout(bgl) })

		layout, err := a.CreatePipelineLayout([]gpucore.BindGroupLayoutID{bgl})
		if err != nil {
			return fmt.Errorf("create %s pipeline layout: %w", labels[i], err)
		}
		pl.pipeLayouts[i] = layout
		pl.onClose(func() { a.DestroyPipelineLayout(layout) })

		pipe, err := a.CreateComputePipeline(&gpucore.ComputePipelineDesc{
			Label:        labels[i] + "_pipeline",
			Layout:       layout,
			ShaderModule: mod,
			EntryPoint:   ShaderEntryPoint,
		})
		if err != nil {
			return fmt.Errorf("create %s compute pipeline: %w", labels[i], err)
		}
		pl.pipelines[i] = pipe
		pl.onClose(func() { a.DestroyComputePipeline(pipe) })
	}
	return nil
}

func (pl *Pipeline) createResources() error {
	a := pl.adapter
	p := pl.cfg.Params
	var err error

	buffer := func(size int) (gpucore.BufferID, error) {
		id, err := a.CreateBuffer(size, gpucore.BufferUsageUniform|gpucore.BufferUsageCopyDst)
		if err != nil {
			return gpucore.InvalidID, fmt.Errorf("create uniform buffer: %w", err)
		}
		pl.onClose(func() { a.DestroyBuffer(id) })
		return id, nil
	}
	texture := func(w, h int, f gpucore.TextureFormat, usage gpucore.TextureUsage) (gpucore.TextureID, error) {
		id, err := a.CreateTexture(w, h, f, usage)
		if err != nil {
			return gpucore.InvalidID, fmt.Errorf("create %dx%d %v texture: %w", w, h, f, err)
		}
		pl.onClose(func() { a.DestroyTexture(id) })
		return id, nil
	}

	// One 256-byte aligned slot per cascade: every pass is recorded before
	// the single submit, so uniforms cannot be rewritten between passes.
	if pl.cascadeUniforms, err = buffer(p.Count * gpucore.UniformOffsetAlignment); err != nil {
		return err
	}
	if pl.finalizeUniforms, err = buffer(finalizeUniformsSize); err != nil {
		return err
	}
	if pl.taps, err = buffer(tapsSize); err != nil {
		return err
	}
	if err := a.WriteBuffer(pl.taps, 0, marshalTaps(pl.cfg.Finalize)); err != nil {
		return fmt.Errorf("write blur taps: %w", err)
	}

	input := gpucore.TextureUsageTextureBinding | gpucore.TextureUsageCopyDst
	if pl.density, err = texture(p.Width, p.Height, gpucore.TextureFormatR8Unorm, input); err != nil {
		return err
	}
	if pl.emissive, err = texture(p.Width, p.Height, gpucore.TextureFormatRGBA16Float, input); err != nil {
		return err
	}
	if pl.albedo, err = texture(p.Width, p.Height, gpucore.TextureFormatRGBA8Unorm, input); err != nil {
		return err
	}

	cw, ch := p.MaxTextureSize()
	for i := range pl.cascades {
		pl.cascades[i], err = texture(cw, ch, gpucore.TextureFormatRGBA16Float,
			gpucore.TextureUsageStorageBinding|gpucore.TextureUsageTextureBinding)
		if err != nil {
			return err
		}
	}
	for i := range pl.lightmaps {
		pl.lightmaps[i], err = texture(pl.cfg.LightmapWidth, pl.cfg.LightmapHeight, gpucore.TextureFormatRGBA16Float,
			gpucore.TextureUsageStorageBinding|gpucore.TextureUsageTextureBinding|
				gpucore.TextureUsageCopySrc|gpucore.TextureUsageCopyDst)
		if err != nil {
			return err
		}
	}
	return nil
}

// clearLightmaps fills both lightmap slots with white so a consumer that
// samples before the first frame sees an unlit-but-visible scene.
func (pl *Pipeline) clearLightmaps() error {
	layout := pl.lightmapLayout()
	white := filledRGBA16F(field.White, layout)
	for _, id := range pl.lightmaps {
		if err := pl.adapter.WriteTexture(id, white, layout); err != nil {
			return fmt.Errorf("clear lightmap: %w", err)
		}
	}
	return nil
}

func (pl *Pipeline) createBindGroups() error {
	a := pl.adapter
	p := pl.cfg.Params

	for slot := range pl.lightmaps {
		history := pl.lightmaps[1-slot]
		pl.cascadeGroups[slot] = make([]gpucore.BindGroupID, p.Count)
		for n := range p.Count {
			write, read := cascade.PingPong(n)
			group, err := a.CreateBindGroup(pl.bindLayouts[passCascade], []gpucore.BindGroupEntry{
				{Binding: bindUniforms, Buffer: pl.cascadeUniforms, Offset: uniformOffset(n), Size: cascade.UniformsSize},
				{Binding: bindDensity, Texture: pl.density},
				{Binding: bindEmissive, Texture: pl.emissive},
				{Binding: bindAlbedo, Texture: pl.albedo},
				{Binding: bindHistory, Texture: history},
				{Binding: bindParent, Texture: pl.cascades[read]},
				{Binding: bindOutput, Texture: pl.cascades[write]},
			})
			if err != nil {
				return fmt.Errorf("create cascade %d bind group: %w", n, err)
			}
			pl.cascadeGroups[slot][n] = group
			pl.onClose(func() { a.DestroyBindGroup(group) })
		}

		group, err := a.CreateBindGroup(pl.bindLayouts[passFinalize], []gpucore.BindGroupEntry{
			{Binding: bindFinalizeUniforms, Buffer: pl.finalizeUniforms, Size: finalizeUniformsSize},
			{Binding: bindCascade0, Texture: pl.cascades[0]},
			{Binding: bindTaps, Buffer: pl.taps, Size: tapsSize},
			{Binding: bindLightmap, Texture: pl.lightmaps[slot]},
		})
		if err != nil {
			return fmt.Errorf("create finalize bind group: %w", err)
		}
		pl.finalizeGroups[slot] = group
		pl.onClose(func() { a.DestroyBindGroup(group) })
	}
	return nil
}

func uniformOffset(n int) uint64 {
	return uint64(n) * gpucore.UniformOffsetAlignment //nolint:gosec // n < MaxCascades
}

func (pl *Pipeline) onClose(f func()) {
	pl.release = append(pl.release, f)
}

func (pl *Pipeline) lightmapLayout() gpucore.TextureCopy {
	return gpucore.CopyLayout(pl.cfg.LightmapWidth, pl.cfg.LightmapHeight, gpucore.TextureFormatRGBA16Float)
}

// Config returns the configuration the pipeline was built with.
func (pl *Pipeline) Config() Config {
	return pl.cfg
}

// HasHistory reports whether the next frame will read a previous lightmap.
func (pl *Pipeline) HasHistory() bool {
	return pl.hasHistory
}

// Run executes one frame: it uploads the scene, records cascade passes from
// the coarsest down to 0 followed by the finalize pass, submits them, and
// reads the lightmap back into out. It returns the number of passes run.
//
// The frame is one submission. ctx is checked before recording and again
// before the result is committed; a cancelled or failed frame leaves the
// lightmap slots and history as they were.
func (pl *Pipeline) Run(ctx context.Context, u cascade.Uniforms, scene *field.Scene, out *field.Texture) (int, error) {
	if pl.closed {
		return 0, ErrClosed
	}
	p := pl.cfg.Params
	if err := scene.Validate(p.Width, p.Height); err != nil {
		return 0, err
	}
	if out.Width != pl.cfg.LightmapWidth || out.Height != pl.cfg.LightmapHeight {
		return 0, fmt.Errorf("%w: lightmap %dx%d, want %dx%d", field.ErrSizeMismatch,
			out.Width, out.Height, pl.cfg.LightmapWidth, pl.cfg.LightmapHeight)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if err := pl.upload(u, scene); err != nil {
		return 0, err
	}

	passes, err := pl.record()
	if err != nil {
		return 0, err
	}
	if err := pl.adapter.Submit(); err != nil {
		return 0, fmt.Errorf("submit: %w", err)
	}

	layout := pl.lightmapLayout()
	data, err := pl.adapter.ReadTexture(pl.lightmaps[pl.slot], layout)
	if err != nil {
		return 0, fmt.Errorf("read lightmap: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := unpackRGBA16F(data, layout, out); err != nil {
		return 0, err
	}

	pl.slot = 1 - pl.slot
	pl.hasHistory = true
	return passes, nil
}

func (pl *Pipeline) upload(u cascade.Uniforms, scene *field.Scene) error {
	a := pl.adapter
	p := pl.cfg.Params

	if !pl.hasHistory {
		u.BounceDamping = 0
	}
	block := make([]byte, p.Count*gpucore.UniformOffsetAlignment)
	for n := range p.Count {
		copy(block[uniformOffset(n):], u.ForCascade(n).Marshal())
	}
	if err := a.WriteBuffer(pl.cascadeUniforms, 0, block); err != nil {
		return fmt.Errorf("write cascade uniforms: %w", err)
	}
	if err := a.WriteBuffer(pl.finalizeUniforms, 0, marshalFinalize(p, u, pl.cfg.Finalize)); err != nil {
		return fmt.Errorf("write finalize uniforms: %w", err)
	}

	uploads := []struct {
		id     gpucore.TextureID
		format gpucore.TextureFormat
		pack   func(*field.Texture, gpucore.TextureCopy) []byte
		src    *field.Texture
	}{
		{pl.density, gpucore.TextureFormatR8Unorm, packDensity, scene.Density},
		{pl.emissive, gpucore.TextureFormatRGBA16Float, packRGBA16F, scene.Emissive},
		{pl.albedo, gpucore.TextureFormatRGBA8Unorm, packRGBA8, scene.Albedo},
	}
	for _, up := range uploads {
		layout := gpucore.CopyLayout(p.Width, p.Height, up.format)
		if err := a.WriteTexture(up.id, up.pack(up.src, layout), layout); err != nil {
			return fmt.Errorf("upload %v scene texture: %w", up.format, err)
		}
	}
	return nil
}

// record encodes the cascade passes, coarsest first, then finalize.
func (pl *Pipeline) record() (int, error) {
	p := pl.cfg.Params
	passes := 0

	for n := p.Coarsest(); n >= 0; n-- {
		gx, gy := cascade.Workgroups(p.ProbesW(n), p.ProbesH(n))
		if err := pl.dispatch(fmt.Sprintf("rc_cascade_%d", n), passCascade, pl.cascadeGroups[pl.slot][n], gx, gy); err != nil {
			return passes, err
		}
		passes++
	}

	gx, gy := cascade.Workgroups(pl.cfg.LightmapWidth, pl.cfg.LightmapHeight)
	if err := pl.dispatch("rc_finalize", passFinalize, pl.finalizeGroups[pl.slot], gx, gy); err != nil {
		return passes, err
	}
	return passes + 1, nil
}

func (pl *Pipeline) dispatch(label string, pass int, group gpucore.BindGroupID, gx, gy int) error {
	enc, err := pl.adapter.BeginComputePass(label)
	if err != nil {
		return fmt.Errorf("begin %s: %w", label, err)
	}
	enc.SetPipeline(pl.pipelines[pass])
	enc.SetBindGroup(0, group)
	enc.Dispatch(uint32(gx), uint32(gy), 1) //nolint:gosec // workgroup counts are small and positive
	enc.End()
	return nil
}

// ResetHistory discards the bounce history and refills both lightmap slots
// with white. The next frame runs with zero bounce damping.
func (pl *Pipeline) ResetHistory() error {
	if pl.closed {
		return ErrClosed
	}
	pl.hasHistory = false
	return pl.clearLightmaps()
}

// Close waits for the device to go idle and releases every resource in
// reverse creation order. Close is idempotent.
func (pl *Pipeline) Close() {
	if pl.closed {
		return
	}
	pl.closed = true
	if err := pl.adapter.WaitIdle(); err != nil {
		slogger().Warn("gpu: wait idle before release", "err", err)
	}
	for i := len(pl.release) - 1; i >= 0; i-- {
		pl.release[i]()
	}
	pl.release = nil
}

// IsClosed reports whether Close has been called.
func (pl *Pipeline) IsClosed() bool {
	return pl.closed
}
