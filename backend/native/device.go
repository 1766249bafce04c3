// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Vulkan HAL backend (registered via init).
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// Device is a GPU device exposed as a gpucore.GPUAdapter.
//
// A Device either owns its HAL device (Open, OpenBackend) or borrows one
// from a host application (FromProvider). Close releases only what the
// Device owns.
type Device struct {
	*HALAdapter

	name     string
	software bool

	closeOnce sync.Once
	instance  hal.Instance
	device    hal.Device
}

// Open opens a standalone device on the Vulkan backend, preferring discrete
// and integrated GPUs over other adapters.
func Open() (*Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("%w: vulkan backend not available", ErrNoGPU)
	}
	return OpenBackend(backend)
}

// OpenBackend opens a standalone device on backend.
func OpenBackend(backend hal.Backend) (*Device, error) {
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoGPU
	}

	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}

	limits := gputypes.DefaultLimits()
	openDev, err := selected.Adapter.Open(gputypes.Features(0), limits)
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}

	d := &Device{
		HALAdapter: NewHALAdapter(openDev.Device, openDev.Queue, &limits),
		name:       selected.Info.Name,
		software:   selected.Info.DeviceType == gputypes.DeviceTypeCPU,
		instance:   instance,
		device:     openDev.Device,
	}
	slogger().Info("native: device opened", "adapter", d.name, "type", selected.Info.DeviceType)
	return d, nil
}

// FromProvider wraps the device of a host application. The provider must
// also implement HalDevice() any and HalQueue() any returning hal.Device
// and hal.Queue.
func FromProvider(provider gpucontext.DeviceProvider) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("%w: provider does not expose HAL types", ErrNoHALDevice)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: provider HalDevice is not hal.Device", ErrNoHALDevice)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: provider HalQueue is not hal.Queue", ErrNoHALDevice)
	}

	info := provider.AdapterInfo()
	return &Device{
		HALAdapter: NewHALAdapter(device, queue, nil),
		name:       info.Name,
		software:   info.Type == gpucontext.AdapterTypeSoftware,
	}, nil
}

// Name returns the adapter name.
func (d *Device) Name() string { return d.name }

// Software reports whether the adapter emulates the GPU on the CPU. Such
// adapters run the cascade shaders slower than the CPU executor.
func (d *Device) Software() bool { return d.software }

// Close waits for outstanding work and releases the device if it was opened
// by this package. It is safe to call Close more than once.
func (d *Device) Close() {
	d.closeOnce.Do(func() {
		if err := d.WaitIdle(); err != nil {
			slogger().Warn("native: wait idle on close", "err", err)
		}
		if d.device != nil {
			d.device.Destroy()
		}
		if d.instance != nil {
			d.instance.Destroy()
		}
	})
}
