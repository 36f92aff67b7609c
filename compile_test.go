package rendergraph

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/gputypes"
)

// deferredGraph builds the classic geometry, lighting and tonemap chain
// over an imported backbuffer.
func deferredGraph(d *recordingDevice, size TextureSpec) (*Graph, TextureVersionID) {
	g := New(d)
	back := g.ImportTexture("backbuffer", d.texture(size), LayoutPresent)

	var albedo, depth, hdr TextureVersionID
	g.AddPass(&FuncPass{
		PassName: "geometry",
		SetupFunc: func(b *Builder, _ *Blackboard, _ PassID) {
			a := b.CreateTexture("albedo", MatchSize(back, gputypes.TextureFormatRGBA8Unorm), LayoutUndefined)
			z := b.CreateTexture("depth", MatchSize(back, gputypes.TextureFormatDepth24PlusStencil8), LayoutUndefined)
			albedo = b.AddColorAttachment(a, gputypes.LoadOpClear, gputypes.StoreOpStore, ClearValue{})
			depth = b.SetDepthStencil(z, gputypes.LoadOpClear, gputypes.StoreOpStore, ClearDepthStencil(1, 0))
		},
	})
	g.AddPass(&FuncPass{
		PassName: "lighting",
		SetupFunc: func(b *Builder, _ *Blackboard, _ PassID) {
			b.AddSampledTexture(albedo)
			h := b.CreateTexture("hdr", MatchSpec(albedo), LayoutUndefined)
			hdr = b.AddColorAttachment(h, gputypes.LoadOpClear, gputypes.StoreOpStore, ClearValue{})
			b.SetDepthStencil(depth, gputypes.LoadOpLoad, gputypes.StoreOpDiscard, ClearValue{})
		},
	})
	g.AddPass(&FuncPass{
		PassName: "tonemap",
		SetupFunc: func(b *Builder, _ *Blackboard, _ PassID) {
			b.AddSampledTexture(hdr)
			b.AddColorAttachment(back, gputypes.LoadOpClear, gputypes.StoreOpStore, ClearValue{})
		},
	})
	return g, back
}

func TestCompileLayouts(t *testing.T) {
	d := newRecordingDevice()
	g, _ := deferredGraph(d, rgba(256, 256))
	if err := g.Compile(); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	type layouts struct{ initial, final Layout }
	tests := []struct {
		pass PassID
		want []layouts // render pass attachment order
	}{
		// depth first, then albedo: depth is loaded by lighting, albedo sampled.
		{0, []layouts{
			{LayoutUndefined, LayoutDepthStencilAttachment},
			{LayoutUndefined, LayoutShaderReadOnly},
		}},
		// loaded depth, hdr sampled by tonemap.
		{1, []layouts{
			{LayoutDepthStencilAttachment, LayoutGeneral},
			{LayoutUndefined, LayoutShaderReadOnly},
		}},
		// backbuffer falls back to its declared final layout.
		{2, []layouts{
			{LayoutUndefined, LayoutPresent},
		}},
	}
	for _, tt := range tests {
		desc := g.BuiltPass(tt.pass).Description
		if len(desc.Attachments) != len(tt.want) {
			t.Fatalf("pass %d: %d attachments, want %d", tt.pass, len(desc.Attachments), len(tt.want))
		}
		for i, w := range tt.want {
			a := desc.Attachments[i]
			if a.InitialLayout != w.initial || a.FinalLayout != w.final {
				t.Errorf("pass %d attachment %d: layouts = %v -> %v, want %v -> %v",
					tt.pass, i, a.InitialLayout, a.FinalLayout, w.initial, w.final)
			}
		}
	}

	geo := g.BuiltPass(0).Description.Subpass
	if geo.DepthStencil != 0 || !slices.Equal(geo.Color, []int{1}) || len(geo.Resolve) != 0 {
		t.Errorf("geometry subpass = %+v, want depth 0, color [1]", geo)
	}
}

func TestCompileGenericLayoutOption(t *testing.T) {
	d := newRecordingDevice()
	g := New(d, WithGenericLayout(LayoutTransferSrc))
	g.AddPass(&FuncPass{
		PassName: "offscreen",
		SetupFunc: func(b *Builder, _ *Blackboard, _ PassID) {
			tex := b.CreateTexture("capture", SpecOf(rgba(16, 16)), LayoutUndefined)
			b.AddColorAttachment(tex, gputypes.LoadOpClear, gputypes.StoreOpStore, ClearValue{})
		},
	})
	if err := g.Compile(); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if got := g.BuiltPass(0).Description.Attachments[0].FinalLayout; got != LayoutTransferSrc {
		t.Errorf("FinalLayout = %v, want %v", got, LayoutTransferSrc)
	}
}

func TestCompileIdempotent(t *testing.T) {
	d := newRecordingDevice()
	g, _ := deferredGraph(d, rgba(256, 256))
	if err := g.Compile(); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if d.texturesCreated != 3 || d.passesCreated != 3 || d.fbsCreated != 3 {
		t.Errorf("first compile created %d/%d/%d, want 3/3/3", d.texturesCreated, d.passesCreated, d.fbsCreated)
	}
	if g.Dirty() {
		t.Error("Dirty() = true after Compile")
	}

	d.resetCounts()
	for range 3 {
		if err := g.Compile(); err != nil {
			t.Fatalf("Compile() error = %v", err)
		}
	}
	if d.texturesCreated+d.texturesRecreated+d.passesCreated+d.fbsCreated != 0 {
		t.Errorf("no-op compile created objects: %+v", *d)
	}
}

func TestCompileResizePropagates(t *testing.T) {
	d := newRecordingDevice()
	g, back := deferredGraph(d, rgba(256, 256))
	if err := g.Compile(); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	d.resetCounts()
	g.ReimportTexture(back, d.texture(rgba(512, 512)))
	if !g.Dirty() {
		t.Fatal("Dirty() = false after resizing the backbuffer")
	}
	if err := g.Compile(); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if d.texturesRecreated != 3 {
		t.Errorf("texturesRecreated = %d, want 3", d.texturesRecreated)
	}
	if d.passesCreated != 3 || d.fbsCreated != 3 {
		t.Errorf("rebuilt %d passes and %d framebuffers, want 3 and 3", d.passesCreated, d.fbsCreated)
	}
	for i := range g.PassCount() {
		bp := g.BuiltPass(PassID(i))
		if bp.Width != 512 || bp.Height != 512 {
			t.Errorf("pass %d size = %dx%d, want 512x512", i, bp.Width, bp.Height)
		}
	}
}

func TestCompileRebindOnly(t *testing.T) {
	d := newRecordingDevice()
	g, back := deferredGraph(d, rgba(256, 256))
	if err := g.Compile(); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	d.resetCounts()
	next := d.texture(rgba(256, 256))
	g.ReimportTexture(back, next)
	if g.Dirty() {
		t.Error("Dirty() = true after a same-shape reimport")
	}
	if err := g.Execute(&nopCommandBuffer{}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if d.passesCreated != 0 || d.fbsCreated != 1 || d.texturesRecreated != 0 {
		t.Errorf("rebind rebuilt %d passes, %d framebuffers, %d textures; want 0, 1, 0",
			d.passesCreated, d.fbsCreated, d.texturesRecreated)
	}
	if got := g.BuiltPass(2).Attachments[0]; got != Texture(next) {
		t.Error("tonemap framebuffer not rebound to the new backbuffer")
	}
}

func TestCompileReleaseOrder(t *testing.T) {
	d := newRecordingDevice()
	g, back := deferredGraph(d, rgba(64, 64))
	if err := g.Compile(); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	d.resetCounts()
	g.ReimportTexture(back, d.texture(rgba(32, 32)))
	if err := g.Compile(); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	want := []string{"destroy-fb", "destroy-pass", "create-pass"}
	if len(d.order) < 3 || !slices.Equal(d.order[:3], want) {
		t.Errorf("order = %v, want prefix %v", d.order, want)
	}

	g.Destroy()
	g.Destroy()
	if d.passesDestroyed != 6 || d.fbsDestroyed != 6 {
		t.Errorf("destroyed %d passes and %d framebuffers, want 6 and 6", d.passesDestroyed, d.fbsDestroyed)
	}
	if err := g.Compile(); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Compile() after Destroy error = %v, want %v", err, ErrDestroyed)
	}
}

func TestCompileDeviceFailure(t *testing.T) {
	d := newRecordingDevice()
	g, _ := deferredGraph(d, rgba(64, 64))
	oom := errors.New("out of memory")
	d.failTextures = oom

	err := g.Compile()
	if !errors.Is(err, oom) {
		t.Fatalf("Compile() error = %v, want %v", err, oom)
	}
	if !g.Dirty() {
		t.Error("Dirty() = false after a failed compile")
	}

	d.failTextures = nil
	if err := g.Compile(); err != nil {
		t.Fatalf("Compile() after recovery error = %v", err)
	}
	if g.Texture(g.passes[0].colors[0].In) == nil {
		t.Error("albedo not allocated after recovery")
	}
}

func TestCompileRequiresDevice(t *testing.T) {
	g := New(nil)
	if err := g.Compile(); !errors.Is(err, ErrDeviceRequired) {
		t.Errorf("Compile() error = %v, want %v", err, ErrDeviceRequired)
	}
}

func TestCompileContract(t *testing.T) {
	d := newRecordingDevice()

	t.Run("no attachments", func(t *testing.T) {
		g := New(d)
		g.AddPass(&FuncPass{PassName: "empty"})
		expectPanic(t, "Compile() of a pass without attachments", func() { _ = g.Compile() })
	})

	t.Run("resolve mismatch", func(t *testing.T) {
		g := New(d)
		back := g.ImportTexture("backbuffer", d.texture(rgba(8, 8)), LayoutPresent)
		g.AddPass(&FuncPass{
			PassName: "msaa",
			SetupFunc: func(b *Builder, _ *Blackboard, _ PassID) {
				ms := rgba(8, 8)
				ms.SampleCount = 4
				c0 := b.CreateTexture("c0", SpecOf(ms), LayoutUndefined)
				c1 := b.CreateTexture("c1", SpecOf(ms), LayoutUndefined)
				b.AddColorAttachment(c0, gputypes.LoadOpClear, gputypes.StoreOpDiscard, ClearValue{})
				b.AddColorAttachment(c1, gputypes.LoadOpClear, gputypes.StoreOpDiscard, ClearValue{})
				b.AddResolveAttachment(back, gputypes.LoadOpClear, gputypes.StoreOpStore, ClearValue{})
			},
		})
		expectPanic(t, "Compile() with 1 resolve for 2 colors", func() { _ = g.Compile() })
	})
}

func TestFramebufferSizeFromDepth(t *testing.T) {
	d := newRecordingDevice()
	g := New(d)
	g.AddPass(&FuncPass{
		PassName: "shadow",
		SetupFunc: func(b *Builder, _ *Blackboard, _ PassID) {
			spec := TextureSpec{Format: gputypes.TextureFormatDepth24PlusStencil8, Width: 1024, Height: 512, SampleCount: 1}
			z := b.CreateTexture("shadow", SpecOf(spec), LayoutShaderReadOnly)
			b.SetDepthStencil(z, gputypes.LoadOpClear, gputypes.StoreOpStore, ClearDepthStencil(1, 0))
		},
	})
	if err := g.Compile(); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	bp := g.BuiltPass(0)
	if bp.Width != 1024 || bp.Height != 512 {
		t.Errorf("framebuffer size = %dx%d, want 1024x512", bp.Width, bp.Height)
	}
	if got := bp.Description.Attachments[0].FinalLayout; got != LayoutShaderReadOnly {
		t.Errorf("FinalLayout = %v, want %v", got, LayoutShaderReadOnly)
	}
}
