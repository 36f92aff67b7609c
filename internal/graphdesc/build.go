package graphdesc

import (
	"fmt"

	"github.com/gogpu/rendergraph"
)

// ImportFunc provides the texture behind an imported declaration.
type ImportFunc func(name string, spec rendergraph.TextureSpec) (rendergraph.Texture, error)

// Built maps the names of a description to what Build created.
type Built struct {
	// Textures holds the latest version of every named texture.
	Textures map[string]rendergraph.TextureVersionID
	// Imported holds the textures returned by the ImportFunc.
	Imported map[string]rendergraph.Texture
	Passes   []rendergraph.PassID
}

// Build adds the imports and passes of d to g. The described passes record
// no commands of their own.
func Build(g *rendergraph.Graph, d *Description, importTexture ImportFunc) (*Built, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	out := &Built{
		Textures: make(map[string]rendergraph.TextureVersionID),
		Imported: make(map[string]rendergraph.Texture),
	}

	for _, imp := range d.Imports {
		spec, err := imp.fixedSpec()
		if err != nil {
			return nil, err
		}
		tex, err := importTexture(imp.Name, spec)
		if err != nil {
			return nil, fmt.Errorf("graphdesc: import %q: %w", imp.Name, err)
		}
		layout, _ := ParseLayout(imp.FinalLayout)
		out.Imported[imp.Name] = tex
		out.Textures[imp.Name] = g.ImportTexture(imp.Name, tex, layout)
	}

	open := ""
	for _, p := range d.Passes {
		if p.Subgraph != open {
			if open != "" {
				g.EndSubgraph()
			}
			if p.Subgraph != "" {
				g.BeginSubgraph(p.Subgraph)
			}
			open = p.Subgraph
		}
		out.Passes = append(out.Passes, g.AddPass(out.pass(p)))
	}
	if open != "" {
		g.EndSubgraph()
	}
	return out, nil
}

// pass returns the rendergraph pass declaring p. The description was
// validated, so parse errors cannot occur here.
func (b *Built) pass(p Pass) *rendergraph.FuncPass {
	return &rendergraph.FuncPass{
		PassName: p.Name,
		SetupFunc: func(bld *rendergraph.Builder, _ *rendergraph.Blackboard, _ rendergraph.PassID) {
			for _, t := range p.Create {
				layout, _ := ParseLayout(t.FinalLayout)
				b.Textures[t.Name] = bld.CreateTexture(t.Name, b.dynamicSpec(t), layout)
			}
			for _, s := range p.Sampled {
				bld.AddSampledTexture(b.Textures[s])
			}
			if ds := p.DepthStencil; ds != nil {
				load, _ := parseLoad(ds.Load)
				store, _ := parseStore(ds.Store)
				b.Textures[ds.Texture] = bld.SetDepthStencil(b.Textures[ds.Texture], load, store,
					rendergraph.ClearDepthStencil(ds.Depth, ds.Stencil))
			}
			for _, c := range p.Colors {
				load, _ := parseLoad(c.Load)
				store, _ := parseStore(c.Store)
				b.Textures[c.Texture] = bld.AddColorAttachment(b.Textures[c.Texture], load, store,
					rendergraph.ClearColor(c.Clear))
			}
			for _, r := range p.Resolves {
				load, _ := parseLoad(r.Load)
				store, _ := parseStore(r.Store)
				b.Textures[r.Texture] = bld.AddResolveAttachment(b.Textures[r.Texture], load, store,
					rendergraph.ClearColor(r.Clear))
			}
		},
	}
}

// dynamicSpec converts a validated declaration.
func (b *Built) dynamicSpec(t Texture) rendergraph.DynamicTextureSpec {
	switch {
	case t.Match != "":
		return rendergraph.MatchSpec(b.Textures[t.Match])
	case t.MatchSize != "":
		f, _ := ParseFormat(t.Format)
		spec := rendergraph.MatchSize(b.Textures[t.MatchSize], f)
		if t.Samples > 0 {
			spec.SampleCount = rendergraph.Fixed(t.Samples)
		}
		return spec
	default:
		spec, _ := t.fixedSpec()
		return rendergraph.SpecOf(spec)
	}
}

// fixedSpec returns the specification of a fixed-size declaration.
func (t Texture) fixedSpec() (rendergraph.TextureSpec, error) {
	f, err := ParseFormat(t.Format)
	if err != nil {
		return rendergraph.TextureSpec{}, fmt.Errorf("graphdesc: texture %q: %w", t.Name, err)
	}
	samples := t.Samples
	if samples == 0 {
		samples = 1
	}
	return rendergraph.TextureSpec{Format: f, Width: t.Width, Height: t.Height, SampleCount: samples}, nil
}
