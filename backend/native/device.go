// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"
	"time"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/wgpu/hal"
)

// Device implements rendergraph.RenderDevice over a hal.Device.
//
// WebGPU-style HAL devices have no render pass or framebuffer objects, so
// both are CPU-side records here. They are turned into a
// hal.RenderPassDescriptor when a pass begins.
type Device struct {
	device hal.Device
	queue  hal.Queue

	// submitTimeout overrides the SubmitFrame wait when positive.
	submitTimeout time.Duration
}

// NewDevice wraps a HAL device and queue. The queue may be nil when frames
// are only encoded and submitted by the caller.
func NewDevice(device hal.Device, queue hal.Queue) (*Device, error) {
	if device == nil {
		return nil, ErrNilHALDevice
	}
	return &Device{device: device, queue: queue}, nil
}

// HALDevice returns the wrapped HAL device.
func (d *Device) HALDevice() hal.Device { return d.device }

// HALQueue returns the wrapped HAL queue.
func (d *Device) HALQueue() hal.Queue { return d.queue }

// CreateTexture allocates an owned texture.
func (d *Device) CreateTexture(label string, spec rendergraph.TextureSpec) (rendergraph.Texture, error) {
	t := &Texture{device: d.device, label: label}
	if err := t.allocate(spec); err != nil {
		return nil, err
	}
	return t, nil
}

// CreateRenderPass records the compiled description.
func (d *Device) CreateRenderPass(label string, desc *rendergraph.RenderPassDescription) (rendergraph.RenderPass, error) {
	if desc == nil {
		return nil, fmt.Errorf("native: render pass %q: nil description", label)
	}
	cp := *desc
	cp.Attachments = append([]rendergraph.AttachmentDescription(nil), desc.Attachments...)
	cp.Subpass.Color = append([]int(nil), desc.Subpass.Color...)
	cp.Subpass.Resolve = append([]int(nil), desc.Subpass.Resolve...)
	return &RenderPass{device: d, label: label, desc: cp}, nil
}

// CreateFramebuffer binds textures created by this package to rp.
func (d *Device) CreateFramebuffer(rp rendergraph.RenderPass, attachments []rendergraph.Texture, width, height uint32) (rendergraph.Framebuffer, error) {
	pass, ok := rp.(*RenderPass)
	if !ok || pass.device != d {
		return nil, ErrForeignObject
	}
	if pass.destroyed {
		return nil, fmt.Errorf("native: framebuffer for %q: render pass destroyed", pass.label)
	}
	if len(attachments) != len(pass.desc.Attachments) {
		return nil, fmt.Errorf("native: framebuffer for %q: %d attachments, render pass has %d",
			pass.label, len(attachments), len(pass.desc.Attachments))
	}
	views := make([]*Texture, len(attachments))
	for i, a := range attachments {
		t, ok := a.(*Texture)
		if !ok {
			return nil, fmt.Errorf("native: framebuffer for %q: attachment %d: %w", pass.label, i, ErrForeignObject)
		}
		views[i] = t
	}
	return &Framebuffer{pass: pass, attachments: views, width: width, height: height}, nil
}

// RenderPass is a compiled render pass description.
type RenderPass struct {
	device    *Device
	label     string
	desc      rendergraph.RenderPassDescription
	destroyed bool
}

// Label returns the debug label.
func (p *RenderPass) Label() string { return p.label }

// Description returns the description the pass was created from.
func (p *RenderPass) Description() rendergraph.RenderPassDescription { return p.desc }

// Destroy marks the pass destroyed.
func (p *RenderPass) Destroy() { p.destroyed = true }

// Framebuffer binds attachment textures to a render pass.
type Framebuffer struct {
	pass          *RenderPass
	attachments   []*Texture
	width, height uint32
	destroyed     bool
}

// Size returns the framebuffer size.
func (f *Framebuffer) Size() (width, height uint32) { return f.width, f.height }

// Attachments returns the bound textures in render pass attachment order.
func (f *Framebuffer) Attachments() []*Texture { return f.attachments }

// Destroy marks the framebuffer destroyed.
func (f *Framebuffer) Destroy() { f.destroyed = true }

var (
	_ rendergraph.RenderDevice = (*Device)(nil)
	_ rendergraph.RenderPass   = (*RenderPass)(nil)
	_ rendergraph.Framebuffer  = (*Framebuffer)(nil)
)
