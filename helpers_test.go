package rendergraph

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// recordingDevice is an in-package RenderDevice that counts device object
// creation and destruction.
type recordingDevice struct {
	texturesCreated   int
	texturesRecreated int
	passesCreated     int
	fbsCreated        int
	passesDestroyed   int
	fbsDestroyed      int

	failTextures error
	lastPass     *RenderPassDescription
	order        []string
}

func newRecordingDevice() *recordingDevice {
	return &recordingDevice{}
}

type fakeTexture struct {
	d         *recordingDevice
	spec      TextureSpec
	destroyed bool
}

func (t *fakeTexture) Spec() TextureSpec { return t.spec }

func (t *fakeTexture) Recreate(spec TextureSpec) error {
	if t.d != nil {
		if t.d.failTextures != nil {
			return t.d.failTextures
		}
		t.d.texturesRecreated++
	}
	t.spec = spec
	return nil
}

func (t *fakeTexture) Destroy() { t.destroyed = true }

type fakePass struct {
	d    *recordingDevice
	desc RenderPassDescription
}

func (p *fakePass) Destroy() {
	p.d.passesDestroyed++
	p.d.order = append(p.d.order, "destroy-pass")
}

type fakeFramebuffer struct {
	d             *recordingDevice
	width, height uint32
}

func (f *fakeFramebuffer) Destroy() {
	f.d.fbsDestroyed++
	f.d.order = append(f.d.order, "destroy-fb")
}

// texture returns an external texture for import.
func (d *recordingDevice) texture(spec TextureSpec) *fakeTexture {
	return &fakeTexture{spec: spec}
}

func (d *recordingDevice) CreateTexture(_ string, spec TextureSpec) (Texture, error) {
	if d.failTextures != nil {
		return nil, d.failTextures
	}
	d.texturesCreated++
	return &fakeTexture{d: d, spec: spec}, nil
}

func (d *recordingDevice) CreateRenderPass(_ string, desc *RenderPassDescription) (RenderPass, error) {
	d.passesCreated++
	d.lastPass = desc
	d.order = append(d.order, "create-pass")
	return &fakePass{d: d, desc: *desc}, nil
}

func (d *recordingDevice) CreateFramebuffer(rp RenderPass, attachments []Texture, width, height uint32) (Framebuffer, error) {
	p := rp.(*fakePass)
	if len(attachments) != len(p.desc.Attachments) {
		return nil, fmt.Errorf("%d attachments for %d", len(attachments), len(p.desc.Attachments))
	}
	d.fbsCreated++
	d.order = append(d.order, "create-fb")
	return &fakeFramebuffer{d: d, width: width, height: height}, nil
}

// resetCounts zeroes the counters.
func (d *recordingDevice) resetCounts() {
	fail := d.failTextures
	*d = recordingDevice{failTextures: fail}
}

func rgba(w, h uint32) TextureSpec {
	return TextureSpec{Format: gputypes.TextureFormatRGBA8Unorm, Width: w, Height: h, SampleCount: 1}
}

// colorPass clears target as its only color attachment.
func colorPass(name string, target TextureVersionID) *FuncPass {
	return &FuncPass{
		PassName: name,
		SetupFunc: func(b *Builder, _ *Blackboard, _ PassID) {
			b.AddColorAttachment(target, gputypes.LoadOpClear, gputypes.StoreOpStore, ClearColor(gputypes.Color{A: 1}))
		},
	}
}

// expectPanic fails t unless fn panics.
func expectPanic(t interface{ Errorf(string, ...any) }, name string, fn func()) {
	defer func() {
		if recover() == nil {
			t.Errorf("%s did not panic", name)
		}
	}()
	fn()
}

// nopCommandBuffer discards commands.
type nopCommandBuffer struct{ passes int }

func (c *nopCommandBuffer) BeginRenderPass(RenderPass, Framebuffer, Rect, []ClearValue) { c.passes++ }
func (c *nopCommandBuffer) SetViewport(Viewport)                                        {}
func (c *nopCommandBuffer) EndRenderPass()                                              {}
