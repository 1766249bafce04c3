// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rc2d/gpucore"
)

// HALAdapter implements gpucore.GPUAdapter using gogpu/wgpu/hal directly.
// It provides a bridge between the gpucore abstraction and the HAL layer.
//
// Compute passes are recorded lazily: commands are buffered until End, when
// the adapter knows every texture the pass touches and can insert the
// usage transitions that precede it.
//
// Thread Safety: HALAdapter is safe for concurrent use from multiple goroutines.
// All resource operations are protected by a mutex.
type HALAdapter struct {
	mu     sync.Mutex
	device hal.Device
	queue  hal.Queue
	limits gputypes.Limits

	// ID generation
	nextID atomic.Uint64

	// Resource tracking maps gpucore IDs to hal resources
	buffers          map[gpucore.BufferID]*halBuffer
	textures         map[gpucore.TextureID]*halTexture
	shaderModules    map[gpucore.ShaderModuleID]hal.ShaderModule
	computePipelines map[gpucore.ComputePipelineID]hal.ComputePipeline
	bindGroupLayouts map[gpucore.BindGroupLayoutID]*halBindGroupLayout
	pipelineLayouts  map[gpucore.PipelineLayoutID]hal.PipelineLayout
	bindGroups       map[gpucore.BindGroupID]*halBindGroup

	// Command encoder for the current submission, nil when idle.
	encoder hal.CommandEncoder

	// Submitted command buffers not yet known to be complete.
	inFlight []hal.CommandBuffer
}

type halBuffer struct {
	buffer hal.Buffer
	size   uint64
}

type halTexture struct {
	texture hal.Texture
	view    hal.TextureView
	width   int
	height  int
	format  gpucore.TextureFormat

	// state is the usage the texture was last transitioned to.
	state gputypes.TextureUsage
}

type halBindGroupLayout struct {
	layout  hal.BindGroupLayout
	entries []gpucore.BindGroupLayoutEntry
}

type textureAccess struct {
	texture *halTexture
	usage   gputypes.TextureUsage
}

type halBindGroup struct {
	group  hal.BindGroup
	access []textureAccess
}

// NewHALAdapter creates a new HALAdapter wrapping the given device and queue.
// If limits is nil, default limits are used.
func NewHALAdapter(device hal.Device, queue hal.Queue, limits *gputypes.Limits) *HALAdapter {
	lim := gputypes.DefaultLimits()
	if limits != nil {
		lim = *limits
	}

	adapter := &HALAdapter{
		device:           device,
		queue:            queue,
		limits:           lim,
		buffers:          make(map[gpucore.BufferID]*halBuffer),
		textures:         make(map[gpucore.TextureID]*halTexture),
		shaderModules:    make(map[gpucore.ShaderModuleID]hal.ShaderModule),
		computePipelines: make(map[gpucore.ComputePipelineID]hal.ComputePipeline),
		bindGroupLayouts: make(map[gpucore.BindGroupLayoutID]*halBindGroupLayout),
		pipelineLayouts:  make(map[gpucore.PipelineLayoutID]hal.PipelineLayout),
		bindGroups:       make(map[gpucore.BindGroupID]*halBindGroup),
	}

	// Start ID generation at 1 (0 is invalid)
	adapter.nextID.Store(1)

	return adapter
}

// newID generates a unique resource ID.
func (a *HALAdapter) newID() uint64 {
	return a.nextID.Add(1) - 1
}

// === Capabilities ===

// SupportsCompute returns whether compute shaders are supported.
func (a *HALAdapter) SupportsCompute() bool {
	return a.limits.MaxComputeWorkgroupSizeX >= 8 && a.limits.MaxComputeWorkgroupSizeY >= 8
}

// MaxTextureDimension2D returns the largest supported texture side.
func (a *HALAdapter) MaxTextureDimension2D() uint32 {
	return a.limits.MaxTextureDimension2D
}

// === Shader Compilation ===

// CreateShaderModule creates a shader module from SPIR-V bytecode.
func (a *HALAdapter) CreateShaderModule(spirv []uint32, label string) (gpucore.ShaderModuleID, error) {
	if len(spirv) == 0 {
		return gpucore.InvalidID, fmt.Errorf("%w: empty SPIR-V bytecode", ErrInvalidDescriptor)
	}

	module, err := a.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("failed to create shader module: %w", err)
	}

	id := gpucore.ShaderModuleID(a.newID())

	a.mu.Lock()
	a.shaderModules[id] = module
	a.mu.Unlock()

	return id, nil
}

// DestroyShaderModule releases a shader module.
func (a *HALAdapter) DestroyShaderModule(id gpucore.ShaderModuleID) {
	a.mu.Lock()
	module, ok := a.shaderModules[id]
	delete(a.shaderModules, id)
	a.mu.Unlock()

	if ok {
		a.device.DestroyShaderModule(module)
	}
}

// === Buffer Management ===

// CreateBuffer creates a GPU buffer.
func (a *HALAdapter) CreateBuffer(size int, usage gpucore.BufferUsage) (gpucore.BufferID, error) {
	if size <= 0 {
		return gpucore.InvalidID, fmt.Errorf("%w: buffer size %d", ErrInvalidDescriptor, size)
	}

	buffer, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Size:  uint64(size),
		Usage: convertBufferUsage(usage),
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("failed to create buffer: %w", err)
	}

	id := gpucore.BufferID(a.newID())

	a.mu.Lock()
	a.buffers[id] = &halBuffer{buffer: buffer, size: uint64(size)}
	a.mu.Unlock()

	return id, nil
}

// DestroyBuffer releases a GPU buffer.
func (a *HALAdapter) DestroyBuffer(id gpucore.BufferID) {
	a.mu.Lock()
	b, ok := a.buffers[id]
	delete(a.buffers, id)
	a.mu.Unlock()

	if ok {
		a.device.DestroyBuffer(b.buffer)
	}
}

// WriteBuffer writes data to a buffer through the queue.
func (a *HALAdapter) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) error {
	a.mu.Lock()
	b, ok := a.buffers[id]
	a.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: buffer %d", ErrUnknownResource, id)
	}
	if offset+uint64(len(data)) > b.size {
		return fmt.Errorf("%w: write of %d bytes at %d into %d-byte buffer",
			ErrInvalidDescriptor, len(data), offset, b.size)
	}
	if len(data) == 0 {
		return nil
	}
	return a.queue.WriteBuffer(b.buffer, offset, data)
}

// === Texture Management ===

// CreateTexture creates a 2D texture and its default view.
func (a *HALAdapter) CreateTexture(width, height int, format gpucore.TextureFormat, usage gpucore.TextureUsage) (gpucore.TextureID, error) {
	if width <= 0 || height <= 0 {
		return gpucore.InvalidID, fmt.Errorf("%w: texture %dx%d", ErrInvalidDescriptor, width, height)
	}
	halFormat, err := convertTextureFormat(format)
	if err != nil {
		return gpucore.InvalidID, err
	}

	texture, err := a.device.CreateTexture(&hal.TextureDescriptor{
		Label: format.String(),
		Size: hal.Extent3D{
			Width:              uint32(width),  //nolint:gosec // checked positive
			Height:             uint32(height), //nolint:gosec // checked positive
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        halFormat,
		Usage:         convertTextureUsage(usage),
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("failed to create texture: %w", err)
	}

	view, err := a.device.CreateTextureView(texture, &hal.TextureViewDescriptor{
		Format:        halFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		a.device.DestroyTexture(texture)
		return gpucore.InvalidID, fmt.Errorf("failed to create texture view: %w", err)
	}

	id := gpucore.TextureID(a.newID())

	a.mu.Lock()
	a.textures[id] = &halTexture{texture: texture, view: view, width: width, height: height, format: format}
	a.mu.Unlock()

	return id, nil
}

// DestroyTexture releases a GPU texture and its view.
func (a *HALAdapter) DestroyTexture(id gpucore.TextureID) {
	a.mu.Lock()
	t, ok := a.textures[id]
	delete(a.textures, id)
	a.mu.Unlock()

	if ok {
		a.device.DestroyTextureView(t.view)
		a.device.DestroyTexture(t.texture)
	}
}

// WriteTexture uploads layout.Width x layout.Height texels.
func (a *HALAdapter) WriteTexture(id gpucore.TextureID, data []byte, layout gpucore.TextureCopy) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	t, err := a.copyTarget(id, layout)
	if err != nil {
		return err
	}
	if len(data) < layout.BytesPerRow*layout.Height {
		return fmt.Errorf("%w: %d bytes for %d rows of %d", ErrInvalidDescriptor, len(data), layout.Height, layout.BytesPerRow)
	}

	err = a.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: t.texture, Aspect: gputypes.TextureAspectAll},
		data,
		&hal.ImageDataLayout{
			BytesPerRow:  uint32(layout.BytesPerRow), //nolint:gosec // bounded by texture size
			RowsPerImage: uint32(layout.Height),      //nolint:gosec // bounded by texture size
		},
		&hal.Extent3D{Width: uint32(layout.Width), Height: uint32(layout.Height), DepthOrArrayLayers: 1}, //nolint:gosec // bounded by texture size
	)
	if err != nil {
		return fmt.Errorf("write texture: %w", err)
	}

	// Queue uploads leave the texture ready for sampling.
	t.state = gputypes.TextureUsageTextureBinding
	return nil
}

// ReadTexture submits pending work, copies the texture into a staging
// buffer and waits for the device before mapping it.
func (a *HALAdapter) ReadTexture(id gpucore.TextureID, layout gpucore.TextureCopy) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	t, err := a.copyTarget(id, layout)
	if err != nil {
		return nil, err
	}
	if err := a.submitLocked(); err != nil {
		return nil, err
	}

	size := uint64(layout.BytesPerRow) * uint64(layout.Height) //nolint:gosec // positive
	staging, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "rc2d_readback",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer a.device.DestroyBuffer(staging)

	encoder, err := a.beginEncoder("rc2d_readback")
	if err != nil {
		return nil, err
	}
	a.transitionLocked(encoder, []textureAccess{{texture: t, usage: gputypes.TextureUsageCopySrc}})
	encoder.CopyTextureToBuffer(t.texture, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{
			BytesPerRow:  uint32(layout.BytesPerRow), //nolint:gosec // bounded by texture size
			RowsPerImage: uint32(layout.Height),      //nolint:gosec // bounded by texture size
		},
		TextureBase: hal.ImageCopyTexture{Texture: t.texture, Aspect: gputypes.TextureAspectAll},
		Size:        hal.Extent3D{Width: uint32(layout.Width), Height: uint32(layout.Height), DepthOrArrayLayers: 1}, //nolint:gosec // bounded by texture size
	}})
	cmd, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end readback encoding: %w", err)
	}
	if _, err := a.queue.Submit([]hal.CommandBuffer{cmd}); err != nil {
		a.device.FreeCommandBuffer(cmd)
		return nil, fmt.Errorf("submit readback: %w", err)
	}
	a.inFlight = append(a.inFlight, cmd)
	if err := a.waitIdleLocked(); err != nil {
		return nil, err
	}

	mapping, err := a.device.MapBuffer(staging, 0, size)
	if err != nil {
		return nil, fmt.Errorf("map staging buffer: %w", err)
	}
	out := make([]byte, size)
	copy(out, unsafe.Slice((*byte)(mapping.Ptr), size))
	if err := a.device.UnmapBuffer(staging); err != nil {
		slogger().Warn("native: unmap staging buffer", "err", err)
	}
	return out, nil
}

// copyTarget validates a copy layout against texture id. Must be called
// with mu held.
func (a *HALAdapter) copyTarget(id gpucore.TextureID, layout gpucore.TextureCopy) (*halTexture, error) {
	t, ok := a.textures[id]
	if !ok {
		return nil, fmt.Errorf("%w: texture %d", ErrUnknownResource, id)
	}
	switch {
	case layout.Width <= 0 || layout.Height <= 0 || layout.Width > t.width || layout.Height > t.height:
		return nil, fmt.Errorf("%w: copy %dx%d of %dx%d texture",
			ErrInvalidDescriptor, layout.Width, layout.Height, t.width, t.height)
	case layout.BytesPerRow%gpucore.CopyBytesPerRowAlignment != 0 ||
		layout.BytesPerRow < layout.Width*t.format.BytesPerPixel():
		return nil, fmt.Errorf("%w: bytes per row %d", ErrInvalidDescriptor, layout.BytesPerRow)
	}
	return t, nil
}

// === Pipeline Management ===

// CreateBindGroupLayout creates a bind group layout.
func (a *HALAdapter) CreateBindGroupLayout(desc *gpucore.BindGroupLayoutDesc) (gpucore.BindGroupLayoutID, error) {
	if desc == nil {
		return gpucore.InvalidID, fmt.Errorf("%w: nil bind group layout descriptor", ErrInvalidDescriptor)
	}

	halEntries := make([]gputypes.BindGroupLayoutEntry, len(desc.Entries))
	for i, entry := range desc.Entries {
		e, err := convertBindGroupLayoutEntry(entry)
		if err != nil {
			return gpucore.InvalidID, err
		}
		halEntries[i] = e
	}

	layout, err := a.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   desc.Label,
		Entries: halEntries,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("failed to create bind group layout: %w", err)
	}

	id := gpucore.BindGroupLayoutID(a.newID())

	a.mu.Lock()
	a.bindGroupLayouts[id] = &halBindGroupLayout{
		layout:  layout,
		entries: append([]gpucore.BindGroupLayoutEntry(nil), desc.Entries...),
	}
	a.mu.Unlock()

	return id, nil
}

// DestroyBindGroupLayout releases a bind group layout.
func (a *HALAdapter) DestroyBindGroupLayout(id gpucore.BindGroupLayoutID) {
	a.mu.Lock()
	l, ok := a.bindGroupLayouts[id]
	delete(a.bindGroupLayouts, id)
	a.mu.Unlock()

	if ok {
		a.device.DestroyBindGroupLayout(l.layout)
	}
}

// CreatePipelineLayout creates a pipeline layout.
func (a *HALAdapter) CreatePipelineLayout(layouts []gpucore.BindGroupLayoutID) (gpucore.PipelineLayoutID, error) {
	a.mu.Lock()
	halLayouts := make([]hal.BindGroupLayout, len(layouts))
	for i, id := range layouts {
		l, ok := a.bindGroupLayouts[id]
		if !ok {
			a.mu.Unlock()
			return gpucore.InvalidID, fmt.Errorf("%w: bind group layout %d", ErrUnknownResource, id)
		}
		halLayouts[i] = l.layout
	}
	a.mu.Unlock()

	pipelineLayout, err := a.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		BindGroupLayouts: halLayouts,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("failed to create pipeline layout: %w", err)
	}

	id := gpucore.PipelineLayoutID(a.newID())

	a.mu.Lock()
	a.pipelineLayouts[id] = pipelineLayout
	a.mu.Unlock()

	return id, nil
}

// DestroyPipelineLayout releases a pipeline layout.
func (a *HALAdapter) DestroyPipelineLayout(id gpucore.PipelineLayoutID) {
	a.mu.Lock()
	layout, ok := a.pipelineLayouts[id]
	delete(a.pipelineLayouts, id)
	a.mu.Unlock()

	if ok {
		a.device.DestroyPipelineLayout(layout)
	}
}

// CreateComputePipeline creates a compute pipeline.
func (a *HALAdapter) CreateComputePipeline(desc *gpucore.ComputePipelineDesc) (gpucore.ComputePipelineID, error) {
	if desc == nil {
		return gpucore.InvalidID, fmt.Errorf("%w: nil compute pipeline descriptor", ErrInvalidDescriptor)
	}

	a.mu.Lock()
	pipelineLayout, layoutOK := a.pipelineLayouts[desc.Layout]
	shaderModule, moduleOK := a.shaderModules[desc.ShaderModule]
	a.mu.Unlock()

	if !layoutOK {
		return gpucore.InvalidID, fmt.Errorf("%w: pipeline layout %d", ErrUnknownResource, desc.Layout)
	}
	if !moduleOK {
		return gpucore.InvalidID, fmt.Errorf("%w: shader module %d", ErrUnknownResource, desc.ShaderModule)
	}

	pipeline, err := a.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  desc.Label,
		Layout: pipelineLayout,
		Compute: hal.ComputeState{
			Module:     shaderModule,
			EntryPoint: desc.EntryPoint,
		},
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("failed to create compute pipeline: %w", err)
	}

	id := gpucore.ComputePipelineID(a.newID())

	a.mu.Lock()
	a.computePipelines[id] = pipeline
	a.mu.Unlock()

	return id, nil
}

// DestroyComputePipeline releases a compute pipeline.
func (a *HALAdapter) DestroyComputePipeline(id gpucore.ComputePipelineID) {
	a.mu.Lock()
	pipeline, ok := a.computePipelines[id]
	delete(a.computePipelines, id)
	a.mu.Unlock()

	if ok {
		a.device.DestroyComputePipeline(pipeline)
	}
}

// CreateBindGroup creates a bind group. Texture entries record the usage
// their layout binding implies so passes can transition them.
func (a *HALAdapter) CreateBindGroup(layout gpucore.BindGroupLayoutID, entries []gpucore.BindGroupEntry) (gpucore.BindGroupID, error) {
	a.mu.Lock()
	l, ok := a.bindGroupLayouts[layout]
	if !ok {
		a.mu.Unlock()
		return gpucore.InvalidID, fmt.Errorf("%w: bind group layout %d", ErrUnknownResource, layout)
	}

	halEntries := make([]gputypes.BindGroupEntry, len(entries))
	var access []textureAccess
	for i, entry := range entries {
		e, acc, err := a.convertBindGroupEntry(l, entry)
		if err != nil {
			a.mu.Unlock()
			return gpucore.InvalidID, fmt.Errorf("bind group entry %d: %w", entry.Binding, err)
		}
		halEntries[i] = e
		if acc.texture != nil {
			access = append(access, acc)
		}
	}
	a.mu.Unlock()

	group, err := a.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Layout:  l.layout,
		Entries: halEntries,
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("failed to create bind group: %w", err)
	}

	id := gpucore.BindGroupID(a.newID())

	a.mu.Lock()
	a.bindGroups[id] = &halBindGroup{group: group, access: access}
	a.mu.Unlock()

	return id, nil
}

// DestroyBindGroup releases a bind group.
func (a *HALAdapter) DestroyBindGroup(id gpucore.BindGroupID) {
	a.mu.Lock()
	g, ok := a.bindGroups[id]
	delete(a.bindGroups, id)
	a.mu.Unlock()

	if ok {
		a.device.DestroyBindGroup(g.group)
	}
}

// === Command Recording and Execution ===

// BeginComputePass begins a compute pass in the current command encoder,
// creating one if needed.
func (a *HALAdapter) BeginComputePass(label string) (gpucore.ComputePassEncoder, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.encoder == nil {
		encoder, err := a.beginEncoder("rc2d_frame")
		if err != nil {
			return nil, err
		}
		a.encoder = encoder
	}
	return &halComputePassEncoder{adapter: a, label: label}, nil
}

// Submit submits recorded passes to the GPU.
func (a *HALAdapter) Submit() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.submitLocked()
}

func (a *HALAdapter) submitLocked() error {
	if a.encoder == nil {
		return nil
	}
	encoder := a.encoder
	a.encoder = nil

	cmd, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	if _, err := a.queue.Submit([]hal.CommandBuffer{cmd}); err != nil {
		a.device.FreeCommandBuffer(cmd)
		return fmt.Errorf("submit: %w", err)
	}
	a.inFlight = append(a.inFlight, cmd)
	return nil
}

// WaitIdle submits pending work and waits for all GPU operations to
// complete.
func (a *HALAdapter) WaitIdle() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.submitLocked(); err != nil {
		return err
	}
	return a.waitIdleLocked()
}

func (a *HALAdapter) waitIdleLocked() error {
	if err := a.device.WaitIdle(); err != nil {
		return fmt.Errorf("wait idle: %w", err)
	}
	for _, cmd := range a.inFlight {
		a.device.FreeCommandBuffer(cmd)
	}
	a.inFlight = a.inFlight[:0]
	return nil
}

func (a *HALAdapter) beginEncoder(label string) (hal.CommandEncoder, error) {
	encoder, err := a.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}
	return encoder, nil
}

// transitionLocked records the barriers that bring every accessed texture
// into its required usage. Must be called with mu held.
func (a *HALAdapter) transitionLocked(encoder hal.CommandEncoder, access []textureAccess) {
	var barriers []hal.TextureBarrier
	for _, acc := range access {
		t := acc.texture
		if t.state == acc.usage {
			continue
		}
		barriers = append(barriers, hal.TextureBarrier{
			Texture: t.texture,
			Range:   hal.TextureRange{Aspect: gputypes.TextureAspectAll},
			Usage: hal.TextureUsageTransition{
				OldUsage: t.state,
				NewUsage: acc.usage,
			},
		})
		t.state = acc.usage
	}
	if len(barriers) > 0 {
		encoder.TransitionTextures(barriers)
	}
}

// === Compute Pass Encoder ===

type passCommand struct {
	pipeline hal.ComputePipeline
	index    uint32
	group    *halBindGroup
	dispatch [3]uint32
}

// halComputePassEncoder implements gpucore.ComputePassEncoder. Commands are
// buffered and replayed into a HAL pass on End.
type halComputePassEncoder struct {
	adapter  *HALAdapter
	label    string
	commands []passCommand
	ended    bool
}

// SetPipeline sets the active compute pipeline.
func (e *halComputePassEncoder) SetPipeline(pipeline gpucore.ComputePipelineID) {
	e.adapter.mu.Lock()
	p, ok := e.adapter.computePipelines[pipeline]
	e.adapter.mu.Unlock()

	if ok {
		e.commands = append(e.commands, passCommand{pipeline: p})
	}
}

// SetBindGroup sets a bind group at the specified index.
func (e *halComputePassEncoder) SetBindGroup(index uint32, group gpucore.BindGroupID) {
	e.adapter.mu.Lock()
	g, ok := e.adapter.bindGroups[group]
	e.adapter.mu.Unlock()

	if ok {
		e.commands = append(e.commands, passCommand{index: index, group: g})
	}
}

// Dispatch dispatches compute workgroups.
func (e *halComputePassEncoder) Dispatch(x, y, z uint32) {
	e.commands = append(e.commands, passCommand{dispatch: [3]uint32{x, y, z}})
}

// End transitions the pass's textures and replays its commands.
func (e *halComputePassEncoder) End() {
	if e.ended {
		return
	}
	e.ended = true

	a := e.adapter
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.encoder == nil {
		slogger().Warn("native: compute pass ended without an open encoder", "pass", e.label)
		return
	}

	var access []textureAccess
	for _, c := range e.commands {
		if c.group != nil {
			access = append(access, c.group.access...)
		}
	}
	a.transitionLocked(a.encoder, access)

	pass := a.encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: e.label})
	for _, c := range e.commands {
		switch {
		case c.pipeline != nil:
			pass.SetPipeline(c.pipeline)
		case c.group != nil:
			pass.SetBindGroup(c.index, c.group.group, nil)
		default:
			pass.Dispatch(c.dispatch[0], c.dispatch[1], c.dispatch[2])
		}
	}
	pass.End()
}

var _ gpucore.GPUAdapter = (*HALAdapter)(nil)
