package rendergraph

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// largeGraphPasses is the pass count above which the forward usage scan
// (quadratic in the number of passes) is reported.
const largeGraphPasses = 100

// Compile resolves dependent texture values, (re)allocates transient
// textures and (re)builds the render passes and framebuffers affected by
// any change. Compiling a graph with no pending change is a no-op.
//
// Device errors are returned wrapped and leave the graph dirty. Malformed
// declarations (a pass without color or depth/stencil attachments, resolve
// attachments not matching the color attachments) panic.
func (g *Graph) Compile() error {
	if g.destroyed {
		return ErrDestroyed
	}
	if g.device == nil {
		return ErrDeviceRequired
	}
	if err := g.compile(); err != nil {
		// Rebuild everything on the next attempt.
		g.compiled = false
		g.texturesDirty = true
		return err
	}
	return nil
}

// compile runs the compile steps in order.
func (g *Graph) compile() error {
	log := Logger()
	if len(g.passes) > largeGraphPasses {
		log.Warn("rendergraph: large graph, layout lookahead is quadratic", "passes", len(g.passes))
	}

	// 1. Resolve dependent values.
	if n := g.reg.updateDependentValues(); n > 0 {
		log.Debug("rendergraph: dependent textures changed", "count", n)
	}

	// 2. Recreate transient textures.
	reshaped, rebound, err := g.recreateTextures()
	if err != nil {
		return err
	}

	// Passes whose attachments changed shape need a new render pass and
	// framebuffer; passes whose attachments were only swapped need a new
	// framebuffer.
	rebuildPass := make([]bool, len(g.passes))
	rebuildFB := make([]bool, len(g.passes))
	for i := range g.passes {
		p := &g.passes[i]
		g.validatePass(p)
		rebuildPass[i] = !g.compiled || p.built.RenderPass == nil || g.touches(p, reshaped)
		rebuildFB[i] = rebuildPass[i] || p.built.Framebuffer == nil || g.touches(p, rebound)
	}

	// 3. Recreate render passes.
	passes := 0
	for i := range g.passes {
		if !rebuildPass[i] {
			continue
		}
		if err := g.buildRenderPass(i); err != nil {
			return err
		}
		passes++
	}

	// 4. Recreate framebuffers.
	framebuffers := 0
	for i := range g.passes {
		if !rebuildFB[i] {
			continue
		}
		if err := g.buildFramebuffer(i); err != nil {
			return err
		}
		framebuffers++
	}

	for i := range g.reg.entries {
		g.reg.entries[i].rebind = false
	}
	g.texturesDirty = false
	g.compiled = true
	if passes > 0 || framebuffers > 0 {
		log.Info("rendergraph: compiled",
			"passes", len(g.passes),
			"renderPassesRebuilt", passes,
			"framebuffersRebuilt", framebuffers)
	}
	return nil
}

// pending reports whether Execute must compile before running passes.
func (g *Graph) pending() bool {
	if g.texturesDirty || !g.compiled || g.reg.anyDirty() {
		return true
	}
	for i := range g.reg.entries {
		if g.reg.entries[i].rebind {
			return true
		}
	}
	return false
}

// recreateTextures allocates or resizes every dirty transient texture and
// clears the dirty flags. It returns, per entry, whether the entry changed
// shape and whether it was only rebound to another texture.
func (g *Graph) recreateTextures() (reshaped, rebound []bool, err error) {
	log := Logger()
	reshaped = make([]bool, len(g.reg.entries))
	rebound = make([]bool, len(g.reg.entries))
	for i := range g.reg.entries {
		e := &g.reg.entries[i]
		rebound[i] = e.rebind
		if !e.dirty {
			continue
		}
		reshaped[i] = true
		if e.imported {
			e.dirty = false
			continue
		}
		if e.texture == nil {
			tex, err := g.device.CreateTexture(g.label("texture", e.name), e.resolved)
			if err != nil {
				return nil, nil, fmt.Errorf("rendergraph: create texture %q: %w", e.name, err)
			}
			e.texture = tex
			log.Debug("rendergraph: created texture", "texture", e.name, "spec", e.resolved.String())
		} else {
			if err := e.texture.Recreate(e.resolved); err != nil {
				return nil, nil, fmt.Errorf("rendergraph: recreate texture %q: %w", e.name, err)
			}
			log.Debug("rendergraph: recreated texture", "texture", e.name, "spec", e.resolved.String())
		}
		e.dirty = false
	}
	return reshaped, rebound, nil
}

// validatePass panics if p cannot be compiled.
func (g *Graph) validatePass(p *passNode) {
	p.sizeSource()
	if len(p.resolves) > 0 && len(p.resolves) != len(p.colors) {
		contractf("pass %q has %d resolve attachments for %d color attachments",
			p.name, len(p.resolves), len(p.colors))
	}
}

// touches reports whether any attachment of p belongs to a flagged entry.
func (g *Graph) touches(p *passNode, flagged []bool) bool {
	for _, u := range p.usages() {
		if flagged[g.reg.node(u.In).entry] {
			return true
		}
	}
	return false
}

// buildRenderPass derives the description of pass i and replaces its
// render pass object.
func (g *Graph) buildRenderPass(i int) error {
	p := &g.passes[i]
	desc := RenderPassDescription{Subpass: Subpass{DepthStencil: -1}}
	var clears []ClearValue
	add := func(u AttachmentUsage, t AttachmentType) int {
		e := g.reg.entryOf(u.In)
		initial := LayoutUndefined
		if u.LoadOp == gputypes.LoadOpLoad {
			initial = t.layout()
		}
		desc.Attachments = append(desc.Attachments, AttachmentDescription{
			Type:          t,
			Format:        e.resolved.Format,
			SampleCount:   e.resolved.SampleCount,
			LoadOp:        u.LoadOp,
			StoreOp:       u.StoreOp,
			InitialLayout: initial,
			FinalLayout:   g.finalLayout(i, u.Out),
		})
		clears = append(clears, u.Clear)
		return len(desc.Attachments) - 1
	}
	if p.depthStencil != nil {
		desc.Subpass.DepthStencil = add(*p.depthStencil, AttachmentDepthStencil)
	}
	for _, u := range p.colors {
		desc.Subpass.Color = append(desc.Subpass.Color, add(u, AttachmentColor))
	}
	for _, u := range p.resolves {
		desc.Subpass.Resolve = append(desc.Subpass.Resolve, add(u, AttachmentResolve))
	}

	// Framebuffers must be released before the render pass they were
	// created from.
	g.releasePass(p)
	rp, err := g.device.CreateRenderPass(g.label("pass", p.name), &desc)
	if err != nil {
		return fmt.Errorf("rendergraph: create render pass %q: %w", p.name, err)
	}
	p.built.RenderPass = rp
	p.built.Description = desc
	p.built.ClearValues = clears
	return nil
}

// finalLayout returns the layout the attachment producing out must be left
// in by pass i: the layout required by the next pass using out, else the
// texture's declared final layout, else the generic layout.
func (g *Graph) finalLayout(i int, out TextureVersionID) Layout {
	for j := i + 1; j < len(g.passes); j++ {
		if l, ok := g.passes[j].uses(out); ok {
			return l
		}
	}
	if l := g.reg.entryOf(out).finalLayout; l != LayoutUndefined {
		return l
	}
	return g.opts.genericLayout
}

// buildFramebuffer binds the attachment textures of pass i into a new
// framebuffer, replacing the previous one.
func (g *Graph) buildFramebuffer(i int) error {
	p := &g.passes[i]
	usages := p.usages()
	textures := make([]Texture, len(usages))
	for k, u := range usages {
		e := g.reg.entryOf(u.In)
		if e.texture == nil {
			contractf("pass %q attachment %q has no texture", p.name, e.name)
		}
		textures[k] = e.texture
	}
	size := g.reg.entryOf(p.sizeSource().In).resolved

	if p.built.Framebuffer != nil {
		p.built.Framebuffer.Destroy()
		p.built.Framebuffer = nil
	}
	fb, err := g.device.CreateFramebuffer(p.built.RenderPass, textures, size.Width, size.Height)
	if err != nil {
		return fmt.Errorf("rendergraph: create framebuffer %q: %w", p.name, err)
	}
	p.built.Framebuffer = fb
	p.built.Attachments = textures
	p.built.Width = size.Width
	p.built.Height = size.Height
	return nil
}

// releasePass destroys the framebuffer and render pass of p.
func (g *Graph) releasePass(p *passNode) {
	if p.built.Framebuffer != nil {
		p.built.Framebuffer.Destroy()
		p.built.Framebuffer = nil
	}
	if p.built.RenderPass != nil {
		p.built.RenderPass.Destroy()
		p.built.RenderPass = nil
	}
}
