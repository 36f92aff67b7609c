// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/rendergraph"
	"github.com/gogpu/wgpu/hal"
)

// halProvider is implemented by host device providers that expose the HAL
// objects behind their gpucontext handles.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// NewFromProvider creates a Device from a host application's device
// provider. The provider must expose HAL types via HalDevice and HalQueue.
func NewFromProvider(provider any) (*Device, error) {
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALProvider)
	}
	return NewDevice(device, queue)
}

// SurfaceSpec returns the specification of a surface image of the given
// size, for wrapping swapchain views before importing them. A provider
// without a surface reports BGRA8Unorm.
func SurfaceSpec(provider gpucontext.DeviceProvider, width, height uint32) rendergraph.TextureSpec {
	format := gputypes.TextureFormatBGRA8Unorm
	if provider != nil {
		if f := provider.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
			format = f
		}
	}
	return rendergraph.TextureSpec{
		Format:      format,
		Width:       width,
		Height:      height,
		SampleCount: 1,
		Usage:       gputypes.TextureUsageRenderAttachment,
	}
}
