package rendergraph

// Execute records every pass into cmd, in declaration order, compiling
// first if anything changed since the last compile.
//
// For each pass Execute begins its render pass over the full framebuffer
// with the declared clear values, sets one viewport, calls Pass.Execute and
// ends the render pass. The viewport is vertically flipped
// (Y = height, Height = -height) unless disabled with WithViewportFlip.
//
// Execute never reorders passes and cannot be interrupted once it starts
// recording.
func (g *Graph) Execute(cmd CommandBuffer) error {
	if cmd == nil {
		return ErrNilCommandBuffer
	}
	if g.destroyed {
		return ErrDestroyed
	}
	if g.pending() {
		if err := g.Compile(); err != nil {
			return err
		}
	}
	for i := range g.passes {
		p := &g.passes[i]
		built := &p.built
		area := Rect{Width: built.Width, Height: built.Height}
		cmd.BeginRenderPass(built.RenderPass, built.Framebuffer, area, built.ClearValues)
		cmd.SetViewport(g.viewport(built.Width, built.Height))
		p.pass.Execute(cmd, g.blackboard, PassID(i), built.RenderPass)
		cmd.EndRenderPass()
	}
	return nil
}

// viewport returns the viewport covering a width x height framebuffer.
func (g *Graph) viewport(width, height uint32) Viewport {
	w, h := float32(width), float32(height)
	if !g.opts.flipViewport {
		return Viewport{Width: w, Height: h, MaxDepth: 1}
	}
	return Viewport{Y: h, Width: w, Height: -h, MaxDepth: 1}
}
