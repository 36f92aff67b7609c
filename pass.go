package rendergraph

import "github.com/gogpu/gputypes"

// PassID identifies a pass by its declaration index.
type PassID int

// Pass is the capability a rendering feature implements to take part in
// the graph.
type Pass interface {
	// Name returns the debug name of the pass.
	Name() string

	// Setup declares the textures the pass reads and writes.
	// It is called exactly once, from Graph.AddPass.
	Setup(b *Builder, bb *Blackboard, id PassID)

	// Execute records the draw commands of the pass. It is called once
	// per frame between the begin and end of the pass's render pass.
	Execute(cmd CommandBuffer, bb *Blackboard, id PassID, rp RenderPass)
}

// FuncPass adapts a pair of functions to the Pass interface.
// Either function may be nil.
type FuncPass struct {
	PassName    string
	SetupFunc   func(b *Builder, bb *Blackboard, id PassID)
	ExecuteFunc func(cmd CommandBuffer, bb *Blackboard, id PassID, rp RenderPass)
}

// Name returns the pass name.
func (p *FuncPass) Name() string { return p.PassName }

// Setup calls SetupFunc.
func (p *FuncPass) Setup(b *Builder, bb *Blackboard, id PassID) {
	if p.SetupFunc != nil {
		p.SetupFunc(b, bb, id)
	}
}

// Execute calls ExecuteFunc.
func (p *FuncPass) Execute(cmd CommandBuffer, bb *Blackboard, id PassID, rp RenderPass) {
	if p.ExecuteFunc != nil {
		p.ExecuteFunc(cmd, bb, id, rp)
	}
}

var _ Pass = (*FuncPass)(nil)

// AttachmentUsage records one attachment of a pass: the version it reads
// and the version it produces.
type AttachmentUsage struct {
	In      TextureVersionID
	Out     TextureVersionID
	LoadOp  gputypes.LoadOp
	StoreOp gputypes.StoreOp
	Clear   ClearValue
}

// BuiltPass holds the device objects compiled for a pass.
type BuiltPass struct {
	RenderPass  RenderPass
	Description RenderPassDescription
	Framebuffer Framebuffer
	Width       uint32
	Height      uint32

	// Attachments and ClearValues are in render pass attachment order.
	Attachments []Texture
	ClearValues []ClearValue
}

// passNode is the declaration of one pass.
type passNode struct {
	name         string
	pass         Pass
	depthStencil *AttachmentUsage
	colors       []AttachmentUsage
	resolves     []AttachmentUsage
	sampled      []TextureVersionID
	subgraph     int
	built        BuiltPass
}

// usages returns the attachment usages in render pass attachment order.
func (n *passNode) usages() []AttachmentUsage {
	out := make([]AttachmentUsage, 0, len(n.colors)+len(n.resolves)+1)
	if n.depthStencil != nil {
		out = append(out, *n.depthStencil)
	}
	out = append(out, n.colors...)
	return append(out, n.resolves...)
}

// sizeSource returns the usage whose texture sizes the pass: the first
// color attachment, else the depth/stencil attachment.
func (n *passNode) sizeSource() AttachmentUsage {
	if len(n.colors) > 0 {
		return n.colors[0]
	}
	if n.depthStencil != nil {
		return *n.depthStencil
	}
	contractf("pass %q declares neither a color nor a depth/stencil attachment", n.name)
	return AttachmentUsage{}
}

// uses returns the layout pass n requires for version id, if it uses it.
func (n *passNode) uses(id TextureVersionID) (Layout, bool) {
	if n.depthStencil != nil && n.depthStencil.In == id {
		return LayoutDepthStencilAttachment, true
	}
	for _, u := range n.colors {
		if u.In == id {
			return LayoutColorAttachment, true
		}
	}
	for _, u := range n.resolves {
		if u.In == id {
			return LayoutColorAttachment, true
		}
	}
	for _, s := range n.sampled {
		if s == id {
			return LayoutShaderReadOnly, true
		}
	}
	return LayoutUndefined, false
}
