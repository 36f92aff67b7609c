// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"errors"
	"fmt"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/wgpu/hal"
)

// CommandBuffer implements rendergraph.CommandBuffer over a
// hal.CommandEncoder that is already encoding.
//
// The rendergraph.CommandBuffer methods cannot return errors, so the first
// failure is kept and reported by Err.
type CommandBuffer struct {
	encoder hal.CommandEncoder
	pass    hal.RenderPassEncoder
	current *Framebuffer
	passes  int
	err     error
}

// NewCommandBuffer wraps an encoder on which BeginEncoding was called.
func NewCommandBuffer(encoder hal.CommandEncoder) (*CommandBuffer, error) {
	if encoder == nil {
		return nil, ErrNilEncoder
	}
	return &CommandBuffer{encoder: encoder}, nil
}

// Encoder returns the wrapped HAL encoder.
func (c *CommandBuffer) Encoder() hal.CommandEncoder { return c.encoder }

// Err returns the first error recorded by the command buffer.
func (c *CommandBuffer) Err() error { return c.err }

// Passes returns the number of render passes begun.
func (c *CommandBuffer) Passes() int { return c.passes }

// PassEncoder returns the HAL render pass encoder of the open pass, or nil.
// Pass Execute callbacks use it to record draws.
func (c *CommandBuffer) PassEncoder() hal.RenderPassEncoder { return c.pass }

// PassEncoder returns the HAL render pass encoder behind cmd when cmd is a
// native command buffer.
func PassEncoder(cmd rendergraph.CommandBuffer) (hal.RenderPassEncoder, bool) {
	c, ok := cmd.(*CommandBuffer)
	if !ok || c.pass == nil {
		return nil, false
	}
	return c.pass, true
}

// BeginRenderPass begins rp on fb.
func (c *CommandBuffer) BeginRenderPass(rp rendergraph.RenderPass, fb rendergraph.Framebuffer, area rendergraph.Rect, clear []rendergraph.ClearValue) {
	if c.pass != nil {
		c.fail(ErrPassOpen)
		return
	}
	pass, ok := rp.(*RenderPass)
	if !ok {
		c.fail(fmt.Errorf("begin render pass: %w", ErrForeignObject))
		return
	}
	f, ok := fb.(*Framebuffer)
	if !ok || f.pass != pass {
		c.fail(fmt.Errorf("begin render pass %q: %w", pass.label, ErrForeignObject))
		return
	}
	desc, err := renderPassDescriptor(pass, f, clear)
	if err != nil {
		c.fail(err)
		return
	}
	c.pass = c.encoder.BeginRenderPass(desc)
	c.current = f
	c.passes++
	rendergraph.Logger().Debug("native: begin render pass",
		"pass", pass.label, "width", area.Width, "height", area.Height)
}

// SetViewport sets the viewport of the open pass.
func (c *CommandBuffer) SetViewport(vp rendergraph.Viewport) {
	if c.pass == nil {
		c.fail(ErrNoPass)
		return
	}
	c.pass.SetViewport(vp.X, vp.Y, vp.Width, vp.Height, vp.MinDepth, vp.MaxDepth)
}

// EndRenderPass ends the open pass.
func (c *CommandBuffer) EndRenderPass() {
	if c.pass == nil {
		c.fail(ErrNoPass)
		return
	}
	c.pass.End()
	c.pass = nil
	c.current = nil
}

func (c *CommandBuffer) fail(err error) {
	if c.err == nil {
		c.err = err
	}
	rendergraph.Logger().Warn("native: command buffer error", "error", err)
}

// renderPassDescriptor builds the HAL descriptor of one pass. Resolve
// attachment i resolves color attachment i.
func renderPassDescriptor(pass *RenderPass, fb *Framebuffer, clear []rendergraph.ClearValue) (*hal.RenderPassDescriptor, error) {
	sub := pass.desc.Subpass
	desc := &hal.RenderPassDescriptor{
		Label:            pass.label,
		ColorAttachments: make([]hal.RenderPassColorAttachment, 0, len(sub.Color)),
	}
	view := func(i int) (hal.TextureView, error) {
		t := fb.attachments[i]
		if t.destroyed || t.view == nil {
			return nil, fmt.Errorf("native: render pass %q attachment %d (%s): %w",
				pass.label, i, t.label, ErrTextureDestroyed)
		}
		return t.view, nil
	}
	clearAt := func(i int) rendergraph.ClearValue {
		if i < len(clear) {
			return clear[i]
		}
		return rendergraph.ClearValue{}
	}

	for n, idx := range sub.Color {
		v, err := view(idx)
		if err != nil {
			return nil, err
		}
		a := pass.desc.Attachments[idx]
		ca := hal.RenderPassColorAttachment{
			View:       v,
			LoadOp:     a.LoadOp,
			StoreOp:    a.StoreOp,
			ClearValue: clearAt(idx).Color,
		}
		if n < len(sub.Resolve) {
			rv, err := view(sub.Resolve[n])
			if err != nil {
				return nil, err
			}
			ca.ResolveTarget = rv
		}
		desc.ColorAttachments = append(desc.ColorAttachments, ca)
	}

	if sub.DepthStencil >= 0 {
		v, err := view(sub.DepthStencil)
		if err != nil {
			return nil, err
		}
		a := pass.desc.Attachments[sub.DepthStencil]
		cv := clearAt(sub.DepthStencil)
		ds := &hal.RenderPassDepthStencilAttachment{View: v}
		// Load and store ops are only valid on aspects the format has.
		if a.Format.HasDepth() {
			ds.DepthLoadOp = a.LoadOp
			ds.DepthStoreOp = a.StoreOp
			ds.DepthClearValue = cv.Depth
		}
		if a.Format.HasStencil() {
			ds.StencilLoadOp = a.LoadOp
			ds.StencilStoreOp = a.StoreOp
			ds.StencilClearValue = cv.Stencil
		}
		desc.DepthStencilAttachment = ds
	}
	return desc, nil
}

// Frame encodes one execution of a graph into a HAL command buffer.
//
// The returned command buffer is not submitted. Callers submit it on their
// queue, or use Device.SubmitFrame.
func (d *Device) Frame(g *rendergraph.Graph, label string) (hal.CommandBuffer, error) {
	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}
	cmd, err := NewCommandBuffer(encoder)
	if err != nil {
		return nil, err
	}
	execErr := g.Execute(cmd)
	if cmd.pass != nil {
		cmd.EndRenderPass()
	}
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, errors.Join(execErr, fmt.Errorf("end encoding: %w", err))
	}
	if err := errors.Join(execErr, cmd.Err()); err != nil {
		d.device.FreeCommandBuffer(cmdBuf)
		return nil, err
	}
	return cmdBuf, nil
}
