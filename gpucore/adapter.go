// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucore

// GPUAdapter abstracts over GPU backend implementations.
//
// The lighting pipeline is written once against this interface; thin
// adapters translate to a concrete API (see backend/native for gogpu/wgpu
// HAL). Implementations must be safe for use from one goroutine at a time;
// the caller serializes frames.
//
// Resource lifecycle:
//   - Resources are created via Create* methods
//   - Resources must be explicitly destroyed via Destroy* methods
//   - IDs become invalid after destruction and must not be reused
type GPUAdapter interface {
	// === Capabilities ===

	// SupportsCompute returns whether compute shaders are supported.
	// If false, lighting runs on the CPU executor.
	SupportsCompute() bool

	// MaxTextureDimension2D returns the largest supported texture side.
	MaxTextureDimension2D() uint32

	// === Shader Compilation ===

	// CreateShaderModule creates a shader module from SPIR-V bytecode.
	// The SPIR-V is compiled by naga before being passed here.
	CreateShaderModule(spirv []uint32, label string) (ShaderModuleID, error)

	// DestroyShaderModule releases a shader module.
	DestroyShaderModule(id ShaderModuleID)

	// === Buffer Management ===

	// CreateBuffer creates a GPU buffer of size bytes.
	CreateBuffer(size int, usage BufferUsage) (BufferID, error)

	// DestroyBuffer releases a GPU buffer.
	DestroyBuffer(id BufferID)

	// WriteBuffer writes data to a buffer at offset. The write is ordered
	// before any work submitted afterwards.
	WriteBuffer(id BufferID, offset uint64, data []byte) error

	// === Texture Management ===

	// CreateTexture creates a 2D texture.
	CreateTexture(width, height int, format TextureFormat, usage TextureUsage) (TextureID, error)

	// DestroyTexture releases a GPU texture.
	DestroyTexture(id TextureID)

	// WriteTexture uploads data laid out as described by layout into the
	// top-left corner of the texture.
	WriteTexture(id TextureID, data []byte, layout TextureCopy) error

	// ReadTexture copies the top-left region described by layout back to
	// the CPU. This waits for all submitted work.
	ReadTexture(id TextureID, layout TextureCopy) ([]byte, error)

	// === Pipeline Management ===

	// CreateBindGroupLayout creates a bind group layout.
	CreateBindGroupLayout(desc *BindGroupLayoutDesc) (BindGroupLayoutID, error)

	// DestroyBindGroupLayout releases a bind group layout.
	DestroyBindGroupLayout(id BindGroupLayoutID)

	// CreatePipelineLayout creates a pipeline layout from bind group layouts.
	CreatePipelineLayout(layouts []BindGroupLayoutID) (PipelineLayoutID, error)

	// DestroyPipelineLayout releases a pipeline layout.
	DestroyPipelineLayout(id PipelineLayoutID)

	// CreateComputePipeline creates a compute pipeline.
	CreateComputePipeline(desc *ComputePipelineDesc) (ComputePipelineID, error)

	// DestroyComputePipeline releases a compute pipeline.
	DestroyComputePipeline(id ComputePipelineID)

	// CreateBindGroup binds resources to a bind group layout.
	CreateBindGroup(layout BindGroupLayoutID, entries []BindGroupEntry) (BindGroupID, error)

	// DestroyBindGroup releases a bind group.
	DestroyBindGroup(id BindGroupID)

	// === Command Recording and Execution ===

	// BeginComputePass begins a compute pass in the current command
	// encoder. Passes recorded before Submit execute in order, and each
	// pass observes the writes of every earlier pass.
	BeginComputePass(label string) (ComputePassEncoder, error)

	// Submit submits all recorded passes to the GPU.
	Submit() error

	// WaitIdle waits for all GPU operations to complete.
	WaitIdle() error
}

// ComputePassEncoder records compute commands.
//
// Usage:
//  1. Obtain encoder from GPUAdapter.BeginComputePass()
//  2. Set pipeline and bind groups
//  3. Dispatch compute workgroups
//  4. Call End() to finish recording
//  5. Call GPUAdapter.Submit() to execute
//
// The encoder is single-use and cannot be reused after End().
type ComputePassEncoder interface {
	// SetPipeline sets the active compute pipeline.
	SetPipeline(pipeline ComputePipelineID)

	// SetBindGroup sets a bind group at the specified index.
	SetBindGroup(index uint32, group BindGroupID)

	// Dispatch dispatches compute workgroups.
	Dispatch(x, y, z uint32)

	// End finishes the compute pass.
	End()
}

// AlignBytesPerRow rounds a tightly packed row size up to
// CopyBytesPerRowAlignment.
func AlignBytesPerRow(unpadded int) int {
	const a = CopyBytesPerRowAlignment
	return (unpadded + a - 1) / a * a
}

// CopyLayout returns the aligned copy layout of a width x height texture in
// format f.
func CopyLayout(width, height int, f TextureFormat) TextureCopy {
	return TextureCopy{
		Width:       width,
		Height:      height,
		BytesPerRow: AlignBytesPerRow(width * f.BytesPerPixel()),
	}
}
