package rendergraph

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestTextureVersionIDString(t *testing.T) {
	tests := []struct {
		id   TextureVersionID
		want string
	}{
		{0, "v(0)"},
		{42, "v(42)"},
		{InvalidTextureVersion, "v(invalid)"},
	}
	for _, tt := range tests {
		if got := tt.id.String(); got != tt.want {
			t.Errorf("TextureVersionID(%d).String() = %q, want %q", int(tt.id), got, tt.want)
		}
	}
}

func TestRegistryVersions(t *testing.T) {
	var r textureRegistry
	a := r.newEntry("a", nil, SpecOf(rgba(8, 8)), false, LayoutUndefined)
	b := r.newEntry("b", nil, SpecOf(rgba(8, 8)), false, LayoutUndefined)
	a1 := r.write(a)
	a2 := r.write(a1)
	b1 := r.write(b)

	ids := []TextureVersionID{a, b, a1, a2, b1}
	for i, id := range ids {
		if int(id) != i {
			t.Errorf("id #%d = %d, want %d (ids are dense and append-only)", i, id, i)
		}
	}
	if got := r.node(a2).version; got != 2 {
		t.Errorf("version of a2 = %d, want 2", got)
	}
	if got := r.entryOf(a2).refCount; got != 3 {
		t.Errorf("refCount(a) = %d, want 3", got)
	}
	if got := r.entryOf(b1).refCount; got != 2 {
		t.Errorf("refCount(b) = %d, want 2", got)
	}
	if r.entryOf(a) != r.entryOf(a2) {
		t.Error("a and a2 resolve to different entries")
	}
}

func TestRegistryInvalidID(t *testing.T) {
	var r textureRegistry
	r.newEntry("a", nil, SpecOf(rgba(8, 8)), false, LayoutUndefined)
	for _, id := range []TextureVersionID{InvalidTextureVersion, 1, 100} {
		expectPanic(t, "node("+id.String()+")", func() { r.node(id) })
	}
	expectPanic(t, "newEntry with unknown dependency", func() {
		r.newEntry("b", nil, MatchSpec(7), false, LayoutUndefined)
	})
}

func TestRegistryDependencyChain(t *testing.T) {
	var r textureRegistry
	back := r.newEntry("backbuffer", &fakeTexture{spec: rgba(256, 256)}, SpecOf(rgba(256, 256)), true, LayoutPresent)
	half := r.newEntry("hdr", nil, MatchSize(back, gputypes.TextureFormatRGBA8Unorm), false, LayoutUndefined)
	chain := r.newEntry("bloom", nil, MatchSpec(half), false, LayoutUndefined)

	if got := r.entryOf(chain).resolved; got.Width != 256 || got.Height != 256 {
		t.Fatalf("initial bloom spec = %v, want 256x256", got)
	}

	for i := range r.entries {
		r.entries[i].dirty = false
	}
	if !r.reimport(back, &fakeTexture{spec: rgba(512, 384)}) {
		t.Fatal("reimport() with new size = false, want true")
	}
	if n := r.updateDependentValues(); n != 2 {
		t.Errorf("updateDependentValues() = %d, want 2", n)
	}
	for _, id := range []TextureVersionID{half, chain} {
		e := r.entryOf(id)
		if e.resolved.Width != 512 || e.resolved.Height != 384 {
			t.Errorf("%s resolved = %v, want 512x384", e.name, e.resolved)
		}
		if !e.dirty {
			t.Errorf("%s not dirty after dependency changed", e.name)
		}
	}

	if n := r.updateDependentValues(); n != 0 {
		t.Errorf("second updateDependentValues() = %d, want 0", n)
	}
}

func TestRegistryReimport(t *testing.T) {
	var r textureRegistry
	orig := &fakeTexture{spec: rgba(64, 64)}
	id := r.newEntry("swap", orig, SpecOf(orig.spec), true, LayoutPresent)
	r.entryOf(id).resolved = orig.spec

	tests := []struct {
		name       string
		tex        *fakeTexture
		wantDirty  bool
		wantRebind bool
	}{
		{"same texture", orig, false, false},
		{"same shape", &fakeTexture{spec: rgba(64, 64)}, false, true},
		{"new size", &fakeTexture{spec: rgba(128, 64)}, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := r.entryOf(id)
			e.dirty, e.rebind = false, false
			if got := r.reimport(id, tt.tex); got != tt.wantDirty {
				t.Errorf("reimport() = %v, want %v", got, tt.wantDirty)
			}
			if e.rebind != tt.wantRebind {
				t.Errorf("rebind = %v, want %v", e.rebind, tt.wantRebind)
			}
			if e.texture != Texture(tt.tex) {
				t.Error("texture not replaced")
			}
		})
	}

	transient := r.newEntry("t", nil, SpecOf(rgba(8, 8)), false, LayoutUndefined)
	expectPanic(t, "reimport of transient", func() { r.reimport(transient, orig) })
	expectPanic(t, "reimport with nil", func() { r.reimport(id, nil) })
}
