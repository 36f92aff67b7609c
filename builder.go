package rendergraph

import "github.com/gogpu/gputypes"

// Builder declares the textures a pass reads and writes.
//
// A Builder is handed to Pass.Setup and is valid only for the duration of
// that call. Every write method returns the new version of the texture; the
// pass typically records it on the Blackboard for use during Execute and for
// later passes to consume.
type Builder struct {
	g    *Graph
	pass PassID
	done bool
}

// PassID returns the id of the pass being declared.
func (b *Builder) PassID() PassID {
	return b.pass
}

// node returns the pass node being declared.
func (b *Builder) node() *passNode {
	if b.done {
		contractf("builder of pass %d used after Setup returned", int(b.pass))
	}
	return &b.g.passes[b.pass]
}

// CreateTexture declares a transient texture owned by the graph and returns
// its version 0. The texture is allocated by the compiler.
func (b *Builder) CreateTexture(name string, spec DynamicTextureSpec, finalLayout Layout) TextureVersionID {
	b.node()
	id := b.g.reg.newEntry(name, nil, spec, false, finalLayout)
	b.g.reg.entryOf(id).resolved.Usage = gputypes.TextureUsageRenderAttachment
	b.g.texturesDirty = true
	return id
}

// SetDepthStencil declares the depth/stencil attachment of the pass.
// A pass has at most one depth/stencil attachment; a second call panics.
func (b *Builder) SetDepthStencil(in TextureVersionID, load gputypes.LoadOp, store gputypes.StoreOp, clear ClearValue) TextureVersionID {
	n := b.node()
	if n.depthStencil != nil {
		contractf("pass %q already has a depth/stencil attachment (%v)", n.name, n.depthStencil.In)
	}
	u := b.write(in, load, store, clear)
	n.depthStencil = &u
	return u.Out
}

// AddColorAttachment appends a color attachment. The call order defines the
// fragment output index.
func (b *Builder) AddColorAttachment(in TextureVersionID, load gputypes.LoadOp, store gputypes.StoreOp, clear ClearValue) TextureVersionID {
	n := b.node()
	u := b.write(in, load, store, clear)
	n.colors = append(n.colors, u)
	return u.Out
}

// AddResolveAttachment appends a multisample resolve target. Resolve
// attachments must be declared in the same order as the color attachments
// they resolve.
func (b *Builder) AddResolveAttachment(in TextureVersionID, load gputypes.LoadOp, store gputypes.StoreOp, clear ClearValue) TextureVersionID {
	n := b.node()
	u := b.write(in, load, store, clear)
	n.resolves = append(n.resolves, u)
	return u.Out
}

// AddSampledTexture declares a shader read of in. No new version is
// produced.
func (b *Builder) AddSampledTexture(in TextureVersionID) {
	n := b.node()
	e := b.g.reg.entryOf(in)
	e.sampled = true
	if !e.imported && e.resolved.Usage&gputypes.TextureUsageTextureBinding == 0 {
		e.resolved.Usage |= gputypes.TextureUsageTextureBinding
		// An allocated texture must be recreated with the new usage.
		if e.texture != nil {
			e.dirty = true
			b.g.texturesDirty = true
		}
	}
	n.sampled = append(n.sampled, in)
}

// write produces the next version of in as an attachment usage.
func (b *Builder) write(in TextureVersionID, load gputypes.LoadOp, store gputypes.StoreOp, clear ClearValue) AttachmentUsage {
	out := b.g.reg.write(in)
	return AttachmentUsage{
		In:      in,
		Out:     out,
		LoadOp:  load,
		StoreOp: store,
		Clear:   clear,
	}
}
