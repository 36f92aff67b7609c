package rendergraph

import "fmt"

// TextureVersionID identifies one version of one logical texture.
//
// Version ids are append-only: once assigned, the (texture, version) pair an
// id refers to never changes for the lifetime of the graph. Writing to a
// texture never mutates a version; it produces a new id.
type TextureVersionID int

// InvalidTextureVersion is the zero-information version id.
const InvalidTextureVersion TextureVersionID = -1

// Valid reports whether id may refer to a texture version.
// It does not check that the id belongs to a particular graph.
func (id TextureVersionID) Valid() bool {
	return id >= 0
}

// String returns the string representation of the version id.
func (id TextureVersionID) String() string {
	if !id.Valid() {
		return "v(invalid)"
	}
	return fmt.Sprintf("v(%d)", int(id))
}

// textureNode is one version of a texture entry.
type textureNode struct {
	id       TextureVersionID
	entry    int
	version  int
	subgraph int
}

// textureEntry is one logical texture, shared by all of its versions.
type textureEntry struct {
	name        string
	texture     Texture // nil until compiled for transient textures
	spec        DynamicTextureSpec
	resolved    TextureSpec
	imported    bool
	finalLayout Layout
	refCount    int

	// dirty is set when resolved changed since the last compile.
	dirty bool

	// rebind is set when an imported texture object was swapped for another
	// one of identical shape; only framebuffers need to be rebuilt.
	rebind bool

	// sampled is set when any version is read by a shader.
	sampled bool
}

// textureRegistry is an arena of texture entries and their versions.
// Nodes and entries refer to each other by index only.
type textureRegistry struct {
	nodes    []textureNode
	entries  []textureEntry
	subgraph int
}

// newEntry appends an entry and its version-0 node.
func (r *textureRegistry) newEntry(name string, tex Texture, spec DynamicTextureSpec, imported bool, finalLayout Layout) TextureVersionID {
	r.checkDependencies(name, spec)
	r.entries = append(r.entries, textureEntry{
		name:        name,
		texture:     tex,
		spec:        spec,
		imported:    imported,
		finalLayout: finalLayout,
		dirty:       !imported,
	})
	idx := len(r.entries) - 1
	r.resolveEntry(idx)
	return r.addTextureNode(idx, 0)
}

// addTextureNode appends a version of entry tagged with the open subgraph.
func (r *textureRegistry) addTextureNode(entry, version int) TextureVersionID {
	id := TextureVersionID(len(r.nodes))
	r.nodes = append(r.nodes, textureNode{
		id:       id,
		entry:    entry,
		version:  version,
		subgraph: r.subgraph,
	})
	r.entries[entry].refCount++
	return id
}

// write produces the version following in.
func (r *textureRegistry) write(in TextureVersionID) TextureVersionID {
	n := r.node(in)
	return r.addTextureNode(n.entry, n.version+1)
}

// node returns the node of id.
func (r *textureRegistry) node(id TextureVersionID) textureNode {
	if id < 0 || int(id) >= len(r.nodes) {
		contractf("invalid texture version id %d (graph has %d versions)", int(id), len(r.nodes))
	}
	return r.nodes[id]
}

// entryOf returns the entry owning id.
func (r *textureRegistry) entryOf(id TextureVersionID) *textureEntry {
	return &r.entries[r.node(id).entry]
}

// checkDependencies validates every dependency of spec.
func (r *textureRegistry) checkDependencies(name string, spec DynamicTextureSpec) {
	for _, dep := range spec.dependencies() {
		if dep < 0 || int(dep) >= len(r.nodes) {
			contractf("texture %q depends on unknown version id %d", name, int(dep))
		}
	}
}

// resolveEntry re-reads every dependency of entry idx and reports whether
// its resolved specification changed.
func (r *textureRegistry) resolveEntry(idx int) bool {
	e := &r.entries[idx]
	s := &e.spec
	if dep, ok := s.Format.Dependency(); ok {
		s.Format.mirror(r.entryOf(dep).resolved.Format)
	}
	if dep, ok := s.Width.Dependency(); ok {
		s.Width.mirror(r.entryOf(dep).resolved.Width)
	}
	if dep, ok := s.Height.Dependency(); ok {
		s.Height.mirror(r.entryOf(dep).resolved.Height)
	}
	if dep, ok := s.SampleCount.Dependency(); ok {
		s.SampleCount.mirror(r.entryOf(dep).resolved.SampleCount)
	}
	next := s.Resolved()
	next.Usage = e.resolved.Usage
	if next.sameShape(e.resolved) {
		return false
	}
	e.resolved = next
	return true
}

// updateDependentValues resolves dependent fields in a single pass over the
// entries in creation order, marking changed entries dirty. A dependency
// always refers to an earlier entry, so creation order is a topological
// order and chains settle within one pass. It returns the number of entries
// that changed.
func (r *textureRegistry) updateDependentValues() int {
	changed := 0
	for i := range r.entries {
		if !r.entries[i].spec.dependent() {
			continue
		}
		if r.resolveEntry(i) {
			r.entries[i].dirty = true
			changed++
		}
	}
	return changed
}

// reimport swaps the texture of an imported entry. It reports whether the
// specification changed.
func (r *textureRegistry) reimport(id TextureVersionID, tex Texture) bool {
	e := r.entryOf(id)
	if !e.imported {
		contractf("texture %q is transient and cannot be reimported", e.name)
	}
	if tex == nil {
		contractf("reimport of texture %q with a nil texture", e.name)
	}
	swapped := e.texture != tex
	e.texture = tex
	spec := tex.Spec().normalized()
	e.spec = SpecOf(spec)
	if spec.sameShape(e.resolved) {
		if swapped {
			e.rebind = true
		}
		return false
	}
	e.resolved = spec
	e.dirty = true
	return true
}

// anyDirty reports whether any entry is dirty.
func (r *textureRegistry) anyDirty() bool {
	for i := range r.entries {
		if r.entries[i].dirty {
			return true
		}
	}
	return false
}
