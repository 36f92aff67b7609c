package rendergraph

import "fmt"

// Graph is a render graph: a list of passes, the versioned textures they
// read and write, and the device objects compiled from them.
//
// Usage follows three phases, all on the render thread:
//
//	g := rendergraph.New(device)
//	backbuffer := g.ImportTexture("backbuffer", swapchainTex, rendergraph.LayoutPresent)
//	g.AddPass(&rendergraph.FuncPass{...}) // Setup, once per pass
//	if err := g.Compile(); err != nil { ... } // optional, Execute compiles lazily
//	for each frame {
//	    if err := g.Execute(cmd); err != nil { ... }
//	}
//
// Graph is NOT safe for concurrent use.
type Graph struct {
	device RenderDevice
	opts   options

	reg        textureRegistry
	passes     []passNode
	subgraphs  []string // index 0 is the unnamed root
	blackboard *Blackboard

	// texturesDirty forces a full recompile before the next Execute.
	texturesDirty bool
	compiled      bool
	inSetup       bool
	destroyed     bool
}

// New creates an empty graph compiling against device.
func New(device RenderDevice, opts ...Option) *Graph {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	bb := o.blackboard
	if bb == nil {
		bb = NewBlackboard()
	}
	return &Graph{
		device:        device,
		opts:          o,
		subgraphs:     []string{""},
		blackboard:    bb,
		texturesDirty: true,
	}
}

// Blackboard returns the blackboard shared by the passes of g.
func (g *Graph) Blackboard() *Blackboard {
	return g.blackboard
}

// ImportTexture registers an externally owned texture, such as a swapchain
// image or a shadow map shared with another graph, and returns its version 0.
// The graph never allocates or destroys imported textures.
func (g *Graph) ImportTexture(name string, tex Texture, finalLayout Layout) TextureVersionID {
	if tex == nil {
		contractf("import of texture %q with a nil texture", name)
	}
	spec := tex.Spec().normalized()
	id := g.reg.newEntry(name, tex, SpecOf(spec), true, finalLayout)
	g.reg.entryOf(id).resolved.Usage = spec.Usage
	g.texturesDirty = true
	return id
}

// ReimportTexture replaces the texture behind an imported entry, typically
// after a window resize. If the new texture's specification differs from
// the previous one, the graph becomes dirty and the next Execute recompiles.
// A different texture of identical specification only rebinds framebuffers.
func (g *Graph) ReimportTexture(id TextureVersionID, tex Texture) {
	if g.reg.reimport(id, tex) {
		g.texturesDirty = true
		Logger().Debug("rendergraph: reimported texture changed",
			"texture", g.reg.entryOf(id).name, "spec", tex.Spec().String())
	}
}

// AddPass declares a pass and calls its Setup method. Passes execute in the
// order they are added; producers must be added before their consumers.
func (g *Graph) AddPass(p Pass) PassID {
	if p == nil {
		contractf("AddPass with a nil pass")
	}
	if g.inSetup {
		contractf("AddPass(%q) called from within another pass's Setup", p.Name())
	}
	id := PassID(len(g.passes))
	g.passes = append(g.passes, passNode{
		name:     p.Name(),
		pass:     p,
		subgraph: g.reg.subgraph,
	})
	b := &Builder{g: g, pass: id}
	g.inSetup = true
	p.Setup(b, g.blackboard, id)
	g.inSetup = false
	b.done = true
	// Layout lookahead of earlier passes may now see a new consumer.
	g.compiled = false
	g.texturesDirty = true
	return id
}

// BeginSubgraph opens a named group. Passes and texture versions created
// until EndSubgraph are tagged with it; the Graphviz export draws each
// group as a cluster. Subgraphs do not nest.
func (g *Graph) BeginSubgraph(name string) {
	if g.reg.subgraph != 0 {
		contractf("BeginSubgraph(%q) while subgraph %q is open", name, g.subgraphs[g.reg.subgraph])
	}
	g.subgraphs = append(g.subgraphs, name)
	g.reg.subgraph = len(g.subgraphs) - 1
}

// EndSubgraph closes the open subgraph.
func (g *Graph) EndSubgraph() {
	if g.reg.subgraph == 0 {
		contractf("EndSubgraph without BeginSubgraph")
	}
	g.reg.subgraph = 0
}

// Dirty reports whether the next Execute performs a full recompile.
func (g *Graph) Dirty() bool {
	return g.texturesDirty
}

// PassCount returns the number of declared passes.
func (g *Graph) PassCount() int {
	return len(g.passes)
}

// PassName returns the name of pass id.
func (g *Graph) PassName(id PassID) string {
	return g.passNode(id).name
}

// BuiltPass returns the compiled objects of pass id. The result is the zero
// BuiltPass before the first compile.
func (g *Graph) BuiltPass(id PassID) BuiltPass {
	return g.passNode(id).built
}

// Texture returns the texture behind version id. It is nil for transient
// textures until the graph is compiled.
func (g *Graph) Texture(id TextureVersionID) Texture {
	return g.reg.entryOf(id).texture
}

// Spec returns the resolved specification of the texture behind id.
func (g *Graph) Spec(id TextureVersionID) TextureSpec {
	return g.reg.entryOf(id).resolved
}

// TextureName returns the name of the texture behind id.
func (g *Graph) TextureName(id TextureVersionID) string {
	return g.reg.entryOf(id).name
}

// Version returns the version number of id within its texture.
func (g *Graph) Version(id TextureVersionID) int {
	return g.reg.node(id).version
}

// RefCount returns the number of versions of the texture behind id.
func (g *Graph) RefCount(id TextureVersionID) int {
	return g.reg.entryOf(id).refCount
}

// SameTexture reports whether a and b are versions of the same texture.
func (g *Graph) SameTexture(a, b TextureVersionID) bool {
	return g.reg.node(a).entry == g.reg.node(b).entry
}

// Destroy releases every device object owned by the graph: framebuffers,
// render passes and transient textures. Imported textures are left alone.
func (g *Graph) Destroy() {
	if g.destroyed {
		return
	}
	for i := range g.passes {
		g.releasePass(&g.passes[i])
	}
	for i := range g.reg.entries {
		e := &g.reg.entries[i]
		if !e.imported && e.texture != nil {
			e.texture.Destroy()
			e.texture = nil
		}
	}
	g.destroyed = true
}

// passNode returns the node of pass id.
func (g *Graph) passNode(id PassID) *passNode {
	if id < 0 || int(id) >= len(g.passes) {
		contractf("invalid pass id %d (graph has %d passes)", int(id), len(g.passes))
	}
	return &g.passes[id]
}

// label builds the debug label of a device object.
func (g *Graph) label(kind, name string) string {
	return fmt.Sprintf("%s/%s/%s", g.opts.labelPrefix, kind, name)
}
