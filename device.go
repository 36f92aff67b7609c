package rendergraph

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// RenderDevice creates the device objects the compiler needs.
//
// The graph RECEIVES a device from the host application; it never creates
// or submits work on its own. Implementations live in the backend packages
// (backend/native for gogpu/wgpu, backend/headless for tests and tooling).
type RenderDevice interface {
	// CreateTexture allocates a new texture matching spec.
	// The label is a debug name derived from the texture entry.
	CreateTexture(label string, spec TextureSpec) (Texture, error)

	// CreateRenderPass creates a render pass object from desc.
	CreateRenderPass(label string, desc *RenderPassDescription) (RenderPass, error)

	// CreateFramebuffer binds attachments, in render pass attachment order,
	// into a framebuffer of the given size.
	CreateFramebuffer(rp RenderPass, attachments []Texture, width, height uint32) (Framebuffer, error)
}

// Texture is a GPU texture owned either by the graph (transient) or by the
// host application (imported).
type Texture interface {
	// Spec returns the current specification of the texture.
	Spec() TextureSpec

	// Recreate reallocates the texture in place to match spec.
	// The Texture value keeps its identity.
	Recreate(spec TextureSpec) error

	// Destroy releases the GPU resources of the texture.
	Destroy()
}

// RenderPass is an opaque compiled render pass handle.
type RenderPass interface {
	Destroy()
}

// Framebuffer is an opaque compiled framebuffer handle.
type Framebuffer interface {
	Destroy()
}

// CommandBuffer records commands into an already-open command buffer.
// The graph never submits or waits on the GPU.
type CommandBuffer interface {
	// BeginRenderPass begins rp on fb. Clear values are given in
	// attachment order.
	BeginRenderPass(rp RenderPass, fb Framebuffer, area Rect, clear []ClearValue)

	// SetViewport sets the single viewport of the current pass.
	SetViewport(vp Viewport)

	// EndRenderPass ends the current render pass.
	EndRenderPass()
}

// TextureSpec is a fully resolved texture specification.
type TextureSpec struct {
	Format      gputypes.TextureFormat
	Width       uint32
	Height      uint32
	SampleCount uint32

	// Usage is derived by the compiler for transient textures and is
	// ignored when comparing specifications.
	Usage gputypes.TextureUsage
}

// Extent returns the spec size as a gputypes.Extent3D.
func (s TextureSpec) Extent() gputypes.Extent3D {
	return gputypes.Extent3D{Width: s.Width, Height: s.Height, DepthOrArrayLayers: 1}
}

// normalized returns s with a zero sample count read as one.
func (s TextureSpec) normalized() TextureSpec {
	if s.SampleCount == 0 {
		s.SampleCount = 1
	}
	return s
}

// sameShape reports whether s and o describe the same allocation.
func (s TextureSpec) sameShape(o TextureSpec) bool {
	return s.Format == o.Format && s.Width == o.Width &&
		s.Height == o.Height && s.SampleCount == o.SampleCount
}

// String returns a compact description used in logs and DOT labels.
func (s TextureSpec) String() string {
	return fmt.Sprintf("%dx%d %s x%d", s.Width, s.Height, FormatName(s.Format), s.SampleCount)
}

// FormatName returns a short lowercase name for the formats the graph
// knows about, and a numeric fallback for everything else.
func FormatName(f gputypes.TextureFormat) string {
	switch f {
	case gputypes.TextureFormatUndefined:
		return "undefined"
	case gputypes.TextureFormatRGBA8Unorm:
		return "rgba8unorm"
	case gputypes.TextureFormatBGRA8Unorm:
		return "bgra8unorm"
	case gputypes.TextureFormatR8Unorm:
		return "r8unorm"
	case gputypes.TextureFormatDepth24PlusStencil8:
		return "depth24plus-stencil8"
	default:
		return fmt.Sprintf("format(%d)", f)
	}
}

// Layout is the type of an image layout.
type Layout int

// Image layouts.
const (
	LayoutUndefined Layout = iota
	LayoutGeneral
	LayoutColorAttachment
	LayoutDepthStencilAttachment
	LayoutDepthStencilReadOnly
	LayoutShaderReadOnly
	LayoutTransferSrc
	LayoutTransferDst
	LayoutPresent
)

// String returns the string representation of the layout.
func (l Layout) String() string {
	switch l {
	case LayoutUndefined:
		return "Undefined"
	case LayoutGeneral:
		return "General"
	case LayoutColorAttachment:
		return "ColorAttachment"
	case LayoutDepthStencilAttachment:
		return "DepthStencilAttachment"
	case LayoutDepthStencilReadOnly:
		return "DepthStencilReadOnly"
	case LayoutShaderReadOnly:
		return "ShaderReadOnly"
	case LayoutTransferSrc:
		return "TransferSrc"
	case LayoutTransferDst:
		return "TransferDst"
	case LayoutPresent:
		return "Present"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// AttachmentType is the role of an attachment in a subpass.
type AttachmentType int

// Attachment types.
const (
	AttachmentColor AttachmentType = iota
	AttachmentDepthStencil
	AttachmentResolve
)

// String returns the string representation of the attachment type.
func (t AttachmentType) String() string {
	switch t {
	case AttachmentColor:
		return "color"
	case AttachmentDepthStencil:
		return "depth-stencil"
	case AttachmentResolve:
		return "resolve"
	default:
		return fmt.Sprintf("AttachmentType(%d)", int(t))
	}
}

// layout returns the layout an attachment of this type is used in.
func (t AttachmentType) layout() Layout {
	if t == AttachmentDepthStencil {
		return LayoutDepthStencilAttachment
	}
	return LayoutColorAttachment
}

// ClearValue defines clear values for color or depth/stencil aspects of an
// attachment.
type ClearValue struct {
	Color   gputypes.Color
	Depth   float32
	Stencil uint32
}

// ClearColor returns a color clear value.
func ClearColor(c gputypes.Color) ClearValue {
	return ClearValue{Color: c}
}

// ClearDepthStencil returns a depth/stencil clear value.
func ClearDepthStencil(depth float32, stencil uint32) ClearValue {
	return ClearValue{Depth: depth, Stencil: stencil}
}

// AttachmentDescription describes one attachment of a render pass.
type AttachmentDescription struct {
	Type          AttachmentType
	Format        gputypes.TextureFormat
	SampleCount   uint32
	LoadOp        gputypes.LoadOp
	StoreOp       gputypes.StoreOp
	InitialLayout Layout
	FinalLayout   Layout
}

// Subpass lists indices into the render pass attachment list.
// DepthStencil is -1 when the subpass has no depth/stencil attachment.
type Subpass struct {
	DepthStencil int
	Color        []int
	Resolve      []int
}

// RenderPassDescription is the compiled description of a render pass with
// a single subpass. Attachments are ordered depth/stencil first, then
// color, then resolve.
type RenderPassDescription struct {
	Attachments []AttachmentDescription
	Subpass     Subpass
}

// Rect is an integer rectangle in framebuffer space.
type Rect struct {
	X, Y          int32
	Width, Height uint32
}

// Viewport defines the bounds of a viewport.
type Viewport struct {
	X, Y, Width, Height, MinDepth, MaxDepth float32
}
