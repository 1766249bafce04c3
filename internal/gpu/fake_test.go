// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gogpu/rc2d/field"
	"github.com/gogpu/rc2d/gpucore"
)

var errInjected = errors.New("injected failure")

type fakeTexture struct {
	width, height int
	format        gpucore.TextureFormat
	usage         gpucore.TextureUsage
	data          []byte
	layout        gpucore.TextureCopy
}

type fakePass struct {
	label    string
	pipeline gpucore.ComputePipelineID
	group    gpucore.BindGroupID
	groups   [3]uint32
	ended    bool
}

// fakeAdapter is a recording gpucore.GPUAdapter. Buffers and textures keep
// their written bytes so tests can inspect uploads.
type fakeAdapter struct {
	nextID  uint64
	compute bool
	maxDim  uint32

	live       map[uint64]string
	buffers    map[gpucore.BufferID][]byte
	textures   map[gpucore.TextureID]*fakeTexture
	bindGroups map[gpucore.BindGroupID][]gpucore.BindGroupEntry
	pipelines  map[gpucore.ComputePipelineID]string

	passes  []*fakePass
	pending int
	submits int
	idles   int

	// readback, when set, is returned by ReadTexture instead of the
	// texture's stored bytes.
	readback *field.RGB

	failSubmit    error
	failTextureAt int
	texturesMade  int
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{
		compute:    true,
		maxDim:     8192,
		live:       make(map[uint64]string),
		buffers:    make(map[gpucore.BufferID][]byte),
		textures:   make(map[gpucore.TextureID]*fakeTexture),
		bindGroups: make(map[gpucore.BindGroupID][]gpucore.BindGroupEntry),
		pipelines:  make(map[gpucore.ComputePipelineID]string),
	}
}

func (f *fakeAdapter) newID(kind string) uint64 {
	f.nextID++
	f.live[f.nextID] = kind
	return f.nextID
}

func (f *fakeAdapter) free(id uint64, kind string) {
	if f.live[id] != kind {
		panic(fmt.Sprintf("destroy of unknown %s %d", kind, id))
	}
	delete(f.live, id)
}

func (f *fakeAdapter) SupportsCompute() bool         { return f.compute }
func (f *fakeAdapter) MaxTextureDimension2D() uint32 { return f.maxDim }

func (f *fakeAdapter) CreateShaderModule(spirv []uint32, _ string) (gpucore.ShaderModuleID, error) {
	if len(spirv) == 0 {
		return gpucore.InvalidID, errors.New("empty SPIR-V")
	}
	return gpucore.ShaderModuleID(f.newID("shader")), nil
}

func (f *fakeAdapter) DestroyShaderModule(id gpucore.ShaderModuleID) { f.free(uint64(id), "shader") }

func (f *fakeAdapter) CreateBuffer(size int, _ gpucore.BufferUsage) (gpucore.BufferID, error) {
	id := gpucore.BufferID(f.newID("buffer"))
	f.buffers[id] = make([]byte, size)
	return id, nil
}

func (f *fakeAdapter) DestroyBuffer(id gpucore.BufferID) {
	f.free(uint64(id), "buffer")
	delete(f.buffers, id)
}

func (f *fakeAdapter) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) error {
	buf, ok := f.buffers[id]
	if !ok || int(offset)+len(data) > len(buf) {
		return fmt.Errorf("write out of range of buffer %d", id)
	}
	copy(buf[offset:], data)
	return nil
}

func (f *fakeAdapter) CreateTexture(w, h int, format gpucore.TextureFormat, usage gpucore.TextureUsage) (gpucore.TextureID, error) {
	f.texturesMade++
	if f.failTextureAt > 0 && f.texturesMade == f.failTextureAt {
		return gpucore.InvalidID, errInjected
	}
	id := gpucore.TextureID(f.newID("texture"))
	f.textures[id] = &fakeTexture{width: w, height: h, format: format, usage: usage}
	return id, nil
}

func (f *fakeAdapter) DestroyTexture(id gpucore.TextureID) {
	f.free(uint64(id), "texture")
	delete(f.textures, id)
}

func (f *fakeAdapter) WriteTexture(id gpucore.TextureID, data []byte, layout gpucore.TextureCopy) error {
	tex, ok := f.textures[id]
	if !ok {
		return fmt.Errorf("texture %d not found", id)
	}
	if layout.BytesPerRow%gpucore.CopyBytesPerRowAlignment != 0 {
		return fmt.Errorf("unaligned row pitch %d", layout.BytesPerRow)
	}
	if layout.Width > tex.width || layout.Height > tex.height {
		return fmt.Errorf("copy %dx%d exceeds texture %dx%d", layout.Width, layout.Height, tex.width, tex.height)
	}
	tex.data = append([]byte(nil), data...)
	tex.layout = layout
	return nil
}

func (f *fakeAdapter) ReadTexture(id gpucore.TextureID, layout gpucore.TextureCopy) ([]byte, error) {
	tex, ok := f.textures[id]
	if !ok {
		return nil, fmt.Errorf("texture %d not found", id)
	}
	if f.readback != nil {
		return filledRGBA16F(*f.readback, layout), nil
	}
	return append([]byte(nil), tex.data...), nil
}

func (f *fakeAdapter) CreateBindGroupLayout(*gpucore.BindGroupLayoutDesc) (gpucore.BindGroupLayoutID, error) {
	return gpucore.BindGroupLayoutID(f.newID("bind group layout")), nil
}

func (f *fakeAdapter) DestroyBindGroupLayout(id gpucore.BindGroupLayoutID) {
	f.free(uint64(id), "bind group layout")
}

func (f *fakeAdapter) CreatePipelineLayout([]gpucore.BindGroupLayoutID) (gpucore.PipelineLayoutID, error) {
	return gpucore.PipelineLayoutID(f.newID("pipeline layout")), nil
}

func (f *fakeAdapter) DestroyPipelineLayout(id gpucore.PipelineLayoutID) {
	f.free(uint64(id), "pipeline layout")
}

func (f *fakeAdapter) CreateComputePipeline(desc *gpucore.ComputePipelineDesc) (gpucore.ComputePipelineID, error) {
	id := gpucore.ComputePipelineID(f.newID("pipeline"))
	f.pipelines[id] = desc.Label
	return id, nil
}

func (f *fakeAdapter) DestroyComputePipeline(id gpucore.ComputePipelineID) {
	f.free(uint64(id), "pipeline")
	delete(f.pipelines, id)
}

func (f *fakeAdapter) CreateBindGroup(_ gpucore.BindGroupLayoutID, entries []gpucore.BindGroupEntry) (gpucore.BindGroupID, error) {
	id := gpucore.BindGroupID(f.newID("bind group"))
	f.bindGroups[id] = append([]gpucore.BindGroupEntry(nil), entries...)
	return id, nil
}

func (f *fakeAdapter) DestroyBindGroup(id gpucore.BindGroupID) {
	f.free(uint64(id), "bind group")
	delete(f.bindGroups, id)
}

func (f *fakeAdapter) BeginComputePass(label string) (gpucore.ComputePassEncoder, error) {
	p := &fakePass{label: label}
	f.passes = append(f.passes, p)
	f.pending++
	return &fakePassEncoder{pass: p}, nil
}

func (f *fakeAdapter) Submit() error {
	if f.failSubmit != nil {
		return f.failSubmit
	}
	for _, p := range f.passes[len(f.passes)-f.pending:] {
		if !p.ended {
			return fmt.Errorf("pass %s not ended", p.label)
		}
	}
	f.pending = 0
	f.submits++
	return nil
}

func (f *fakeAdapter) WaitIdle() error {
	f.idles++
	return nil
}

// entry returns the binding of a recorded bind group.
func (f *fakeAdapter) entry(t *testing.T, group gpucore.BindGroupID, binding uint32) gpucore.BindGroupEntry {
	t.Helper()
	for _, e := range f.bindGroups[group] {
		if e.Binding == binding {
			return e
		}
	}
	t.Fatalf("bind group %d has no binding %d", group, binding)
	return gpucore.BindGroupEntry{}
}

type fakePassEncoder struct {
	pass *fakePass
}

func (e *fakePassEncoder) SetPipeline(p gpucore.ComputePipelineID) { e.pass.pipeline = p }

func (e *fakePassEncoder) SetBindGroup(index uint32, g gpucore.BindGroupID) {
	if index == 0 {
		e.pass.group = g
	}
}

func (e *fakePassEncoder) Dispatch(x, y, z uint32) { e.pass.groups = [3]uint32{x, y, z} }
func (e *fakePassEncoder) End()                    { e.pass.ended = true }

var _ gpucore.GPUAdapter = (*fakeAdapter)(nil)

// stubCompiler replaces the naga compile step for orchestration tests.
func stubCompiler(t *testing.T) {
	t.Helper()
	orig := compile
	spirvCache.Clear()
	compile = func(src string) ([]uint32, error) {
		if src == "" {
			return nil, ErrShaderCompile
		}
		return []uint32{0x07230203, uint32(len(src))}, nil
	}
	t.Cleanup(func() {
		compile = orig
		spirvCache.Clear()
	})
}
