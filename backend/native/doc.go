// Package native implements the render graph device interfaces over the
// gogpu/wgpu HAL.
//
// Textures are hal.Texture objects with a default view. Render passes and
// framebuffers are CPU-side records: when the graph begins a pass, the
// CommandBuffer turns them into a hal.RenderPassDescriptor on the wrapped
// hal.CommandEncoder, pairing resolve attachment i with color attachment i.
//
// Host applications create a Device from their HAL device and queue, or
// from a gpucontext device provider:
//
//	dev, err := native.NewFromProvider(provider)
//	g := rendergraph.New(dev)
//	swap := native.WrapView("swapchain", view, native.SurfaceSpec(provider, w, h))
//	back := g.ImportTexture("backbuffer", swap, rendergraph.LayoutPresent)
//
// Importing this package registers the "hal-noop" backend.
package native
