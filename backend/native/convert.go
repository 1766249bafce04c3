// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rc2d/gpucore"
)

func convertBufferUsage(u gpucore.BufferUsage) gputypes.BufferUsage {
	var out gputypes.BufferUsage
	if u&gpucore.BufferUsageMapRead != 0 {
		out |= gputypes.BufferUsageMapRead
	}
	if u&gpucore.BufferUsageCopySrc != 0 {
		out |= gputypes.BufferUsageCopySrc
	}
	if u&gpucore.BufferUsageCopyDst != 0 {
		out |= gputypes.BufferUsageCopyDst
	}
	if u&gpucore.BufferUsageUniform != 0 {
		out |= gputypes.BufferUsageUniform
	}
	if u&gpucore.BufferUsageStorage != 0 {
		out |= gputypes.BufferUsageStorage
	}
	return out
}

func convertTextureUsage(u gpucore.TextureUsage) gputypes.TextureUsage {
	var out gputypes.TextureUsage
	if u&gpucore.TextureUsageCopySrc != 0 {
		out |= gputypes.TextureUsageCopySrc
	}
	if u&gpucore.TextureUsageCopyDst != 0 {
		out |= gputypes.TextureUsageCopyDst
	}
	if u&gpucore.TextureUsageTextureBinding != 0 {
		out |= gputypes.TextureUsageTextureBinding
	}
	if u&gpucore.TextureUsageStorageBinding != 0 {
		out |= gputypes.TextureUsageStorageBinding
	}
	return out
}

func convertTextureFormat(f gpucore.TextureFormat) (gputypes.TextureFormat, error) {
	switch f {
	case gpucore.TextureFormatR8Unorm:
		return gputypes.TextureFormatR8Unorm, nil
	case gpucore.TextureFormatRGBA8Unorm:
		return gputypes.TextureFormatRGBA8Unorm, nil
	case gpucore.TextureFormatRGBA16Float:
		return gputypes.TextureFormatRGBA16Float, nil
	case gpucore.TextureFormatRGBA32Float:
		return gputypes.TextureFormatRGBA32Float, nil
	default:
		return gputypes.TextureFormatUndefined, fmt.Errorf("%w: texture format %d", ErrInvalidDescriptor, f)
	}
}

func convertBindGroupLayoutEntry(e gpucore.BindGroupLayoutEntry) (gputypes.BindGroupLayoutEntry, error) {
	out := gputypes.BindGroupLayoutEntry{
		Binding:    e.Binding,
		Visibility: gputypes.ShaderStageCompute,
	}
	switch e.Type {
	case gpucore.BindingTypeUniformBuffer:
		out.Buffer = &gputypes.BufferBindingLayout{
			Type:           gputypes.BufferBindingTypeUniform,
			MinBindingSize: e.MinBindingSize,
		}
	case gpucore.BindingTypeReadOnlyStorageBuffer:
		out.Buffer = &gputypes.BufferBindingLayout{
			Type:           gputypes.BufferBindingTypeReadOnlyStorage,
			MinBindingSize: e.MinBindingSize,
		}
	case gpucore.BindingTypeSampledTexture:
		out.Texture = &gputypes.TextureBindingLayout{
			SampleType:    gputypes.TextureSampleTypeUnfilterableFloat,
			ViewDimension: gputypes.TextureViewDimension2D,
		}
	case gpucore.BindingTypeStorageTexture:
		format, err := convertTextureFormat(e.Format)
		if err != nil {
			return out, err
		}
		out.StorageTexture = &gputypes.StorageTextureBindingLayout{
			Access:        gputypes.StorageTextureAccessWriteOnly,
			Format:        format,
			ViewDimension: gputypes.TextureViewDimension2D,
		}
	default:
		return out, fmt.Errorf("%w: binding %d has type %d", ErrInvalidDescriptor, e.Binding, e.Type)
	}
	return out, nil
}

// textureUsageFor returns the usage a texture bound with binding type t must
// be in while a pass runs.
func textureUsageFor(t gpucore.BindingType) gputypes.TextureUsage {
	if t == gpucore.BindingTypeStorageTexture {
		return gputypes.TextureUsageStorageBinding
	}
	return gputypes.TextureUsageTextureBinding
}

// convertBindGroupEntry resolves entry against layout l. Must be called with
// mu held.
func (a *HALAdapter) convertBindGroupEntry(l *halBindGroupLayout, entry gpucore.BindGroupEntry) (gputypes.BindGroupEntry, textureAccess, error) {
	var le *gpucore.BindGroupLayoutEntry
	for i := range l.entries {
		if l.entries[i].Binding == entry.Binding {
			le = &l.entries[i]
			break
		}
	}
	if le == nil {
		return gputypes.BindGroupEntry{}, textureAccess{}, fmt.Errorf("%w: binding not in layout", ErrInvalidDescriptor)
	}

	switch le.Type {
	case gpucore.BindingTypeSampledTexture, gpucore.BindingTypeStorageTexture:
		t, ok := a.textures[entry.Texture]
		if !ok {
			return gputypes.BindGroupEntry{}, textureAccess{}, fmt.Errorf("%w: texture %d", ErrUnknownResource, entry.Texture)
		}
		out := gputypes.BindGroupEntry{
			Binding:  entry.Binding,
			Resource: gputypes.TextureViewBinding{TextureView: t.view.NativeHandle()},
		}
		return out, textureAccess{texture: t, usage: textureUsageFor(le.Type)}, nil
	default:
		b, ok := a.buffers[entry.Buffer]
		if !ok {
			return gputypes.BindGroupEntry{}, textureAccess{}, fmt.Errorf("%w: buffer %d", ErrUnknownResource, entry.Buffer)
		}
		size := entry.Size
		if size == 0 {
			size = b.size - entry.Offset
		}
		return gputypes.BindGroupEntry{
			Binding: entry.Binding,
			Resource: gputypes.BufferBinding{
				Buffer: b.buffer.NativeHandle(),
				Offset: entry.Offset,
				Size:   size,
			},
		}, textureAccess{}, nil
	}
}
