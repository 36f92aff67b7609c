// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rendergraph"
	"github.com/gogpu/wgpu/hal"
)

// Texture is a rendergraph.Texture backed by a hal.Texture and its default
// view.
//
// Recreate replaces the HAL objects while the Texture value keeps its
// identity, so framebuffers resolve views through the Texture at
// render pass begin instead of caching them.
//
// Lifecycle:
//  1. Created by Device.CreateTexture (owned) or WrapView (external)
//  2. Recreated in place by the render graph when its specification changes
//  3. Destroy releases owned HAL objects; external textures are left alone
type Texture struct {
	device hal.Device
	label  string
	spec   rendergraph.TextureSpec

	halTexture hal.Texture
	view       hal.TextureView

	external  bool
	destroyed bool
}

// WrapView wraps a view owned by the host application, such as the current
// swapchain image, as an importable texture.
func WrapView(label string, view hal.TextureView, spec rendergraph.TextureSpec) *Texture {
	return &Texture{label: label, spec: spec, view: view, external: true}
}

// Label returns the debug label.
func (t *Texture) Label() string { return t.label }

// Spec returns the current specification.
func (t *Texture) Spec() rendergraph.TextureSpec { return t.spec }

// View returns the HAL view used for attachment and sampling.
func (t *Texture) View() hal.TextureView { return t.view }

// Raw returns the HAL texture, or nil for external textures.
func (t *Texture) Raw() hal.Texture { return t.halTexture }

// IsExternal reports whether the texture is owned by the host application.
func (t *Texture) IsExternal() bool { return t.external }

// IsDestroyed reports whether Destroy was called.
func (t *Texture) IsDestroyed() bool { return t.destroyed }

// Recreate reallocates the HAL texture and view for spec.
func (t *Texture) Recreate(spec rendergraph.TextureSpec) error {
	if t.external {
		return ErrExternalTexture
	}
	if t.destroyed {
		return ErrTextureDestroyed
	}
	t.release()
	if err := t.allocate(spec); err != nil {
		return err
	}
	rendergraph.Logger().Debug("native: recreated texture", "texture", t.label, "spec", spec.String())
	return nil
}

// Destroy releases the texture and its view.
//
// This method is idempotent - calling it multiple times is safe.
func (t *Texture) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	if !t.external {
		t.release()
	}
}

// allocate creates the HAL texture and its default view.
func (t *Texture) allocate(spec rendergraph.TextureSpec) error {
	usage := spec.Usage
	if usage == 0 {
		usage = gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding
	}
	sampleCount := spec.SampleCount
	if sampleCount == 0 {
		sampleCount = 1
	}
	halTex, err := t.device.CreateTexture(&hal.TextureDescriptor{
		Label:         t.label,
		Size:          hal.Extent3D{Width: spec.Width, Height: spec.Height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   sampleCount,
		Dimension:     gputypes.TextureDimension2D,
		Format:        spec.Format,
		Usage:         usage,
	})
	if err != nil {
		return fmt.Errorf("create texture %q: %w", t.label, err)
	}
	view, err := t.device.CreateTextureView(halTex, &hal.TextureViewDescriptor{
		Label: t.label + "_view",
	})
	if err != nil {
		t.device.DestroyTexture(halTex)
		return fmt.Errorf("create texture view %q: %w", t.label, err)
	}
	t.halTexture = halTex
	t.view = view
	t.spec = spec
	return nil
}

// release destroys the owned HAL view and texture.
func (t *Texture) release() {
	if t.view != nil {
		t.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.halTexture != nil {
		t.device.DestroyTexture(t.halTexture)
		t.halTexture = nil
	}
}

var _ rendergraph.Texture = (*Texture)(nil)
