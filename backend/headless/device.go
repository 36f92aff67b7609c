package headless

import (
	"fmt"

	"github.com/gogpu/rendergraph"
)

// Op is the kind of a journal event.
type Op int

// Journal operations.
const (
	OpCreateTexture Op = iota
	OpRecreateTexture
	OpDestroyTexture
	OpCreateRenderPass
	OpDestroyRenderPass
	OpCreateFramebuffer
	OpDestroyFramebuffer
	OpBeginRenderPass
	OpSetViewport
	OpEndRenderPass
	OpDraw
)

// String returns the string representation of the operation.
func (op Op) String() string {
	switch op {
	case OpCreateTexture:
		return "CreateTexture"
	case OpRecreateTexture:
		return "RecreateTexture"
	case OpDestroyTexture:
		return "DestroyTexture"
	case OpCreateRenderPass:
		return "CreateRenderPass"
	case OpDestroyRenderPass:
		return "DestroyRenderPass"
	case OpCreateFramebuffer:
		return "CreateFramebuffer"
	case OpDestroyFramebuffer:
		return "DestroyFramebuffer"
	case OpBeginRenderPass:
		return "BeginRenderPass"
	case OpSetViewport:
		return "SetViewport"
	case OpEndRenderPass:
		return "EndRenderPass"
	case OpDraw:
		return "Draw"
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

// Event is one journal entry.
type Event struct {
	Op    Op
	Label string
}

// Device is an in-memory render device.
type Device struct {
	events []Event
	fail   map[Op]error

	liveTextures     int
	liveRenderPasses int
	liveFramebuffers int
}

// NewDevice creates an empty device.
func NewDevice() *Device {
	return &Device{fail: make(map[Op]error)}
}

// FailOn makes every subsequent op of the given kind fail with err.
// Pass a nil error to clear the failure.
func (d *Device) FailOn(op Op, err error) {
	if err == nil {
		delete(d.fail, op)
		return
	}
	d.fail[op] = err
}

// Events returns a copy of the journal.
func (d *Device) Events() []Event {
	return append([]Event(nil), d.events...)
}

// Count returns the number of journal events of kind op.
func (d *Device) Count(op Op) int {
	n := 0
	for _, e := range d.events {
		if e.Op == op {
			n++
		}
	}
	return n
}

// ResetJournal clears the journal. Live object counts are kept.
func (d *Device) ResetJournal() {
	d.events = d.events[:0]
}

// LiveTextures returns the number of textures created and not destroyed.
func (d *Device) LiveTextures() int { return d.liveTextures }

// LiveRenderPasses returns the number of render passes created and not destroyed.
func (d *Device) LiveRenderPasses() int { return d.liveRenderPasses }

// LiveFramebuffers returns the number of framebuffers created and not destroyed.
func (d *Device) LiveFramebuffers() int { return d.liveFramebuffers }

func (d *Device) record(op Op, label string) error {
	if err := d.fail[op]; err != nil {
		return err
	}
	d.events = append(d.events, Event{Op: op, Label: label})
	return nil
}

// CreateTexture creates an in-memory texture.
func (d *Device) CreateTexture(label string, spec rendergraph.TextureSpec) (rendergraph.Texture, error) {
	if err := d.record(OpCreateTexture, label); err != nil {
		return nil, err
	}
	d.liveTextures++
	return &Texture{device: d, label: label, spec: spec}, nil
}

// NewTexture creates a texture that is not owned by any graph, as a host
// application would for a swapchain image. It is not journaled.
func (d *Device) NewTexture(label string, spec rendergraph.TextureSpec) *Texture {
	return &Texture{device: d, label: label, spec: spec, external: true}
}

// CreateRenderPass records desc as a render pass.
func (d *Device) CreateRenderPass(label string, desc *rendergraph.RenderPassDescription) (rendergraph.RenderPass, error) {
	if err := d.record(OpCreateRenderPass, label); err != nil {
		return nil, err
	}
	d.liveRenderPasses++
	return &RenderPass{device: d, Label: label, Description: *desc}, nil
}

// CreateFramebuffer records a framebuffer of rp.
func (d *Device) CreateFramebuffer(rp rendergraph.RenderPass, attachments []rendergraph.Texture, width, height uint32) (rendergraph.Framebuffer, error) {
	pass, ok := rp.(*RenderPass)
	if !ok || pass.destroyed {
		return nil, fmt.Errorf("headless: framebuffer for invalid render pass %T", rp)
	}
	if len(attachments) != len(pass.Description.Attachments) {
		return nil, fmt.Errorf("headless: %d attachments for render pass %q with %d",
			len(attachments), pass.Label, len(pass.Description.Attachments))
	}
	if err := d.record(OpCreateFramebuffer, pass.Label); err != nil {
		return nil, err
	}
	d.liveFramebuffers++
	return &Framebuffer{
		device:      d,
		RenderPass:  pass,
		Attachments: append([]rendergraph.Texture(nil), attachments...),
		Width:       width,
		Height:      height,
	}, nil
}

// NewCommandBuffer creates a command buffer journaling into d.
func (d *Device) NewCommandBuffer() *CommandBuffer {
	return &CommandBuffer{device: d}
}

var _ rendergraph.RenderDevice = (*Device)(nil)

// Texture is an in-memory texture.
type Texture struct {
	device     *Device
	label      string
	spec       rendergraph.TextureSpec
	generation int
	external   bool
	destroyed  bool
}

// Label returns the debug label.
func (t *Texture) Label() string { return t.label }

// Spec returns the current specification.
func (t *Texture) Spec() rendergraph.TextureSpec { return t.spec }

// Generation returns how many times the texture was recreated.
func (t *Texture) Generation() int { return t.generation }

// Destroyed reports whether Destroy was called.
func (t *Texture) Destroyed() bool { return t.destroyed }

// Recreate reallocates the texture with spec.
func (t *Texture) Recreate(spec rendergraph.TextureSpec) error {
	if !t.external {
		if err := t.device.record(OpRecreateTexture, t.label); err != nil {
			return err
		}
	}
	t.spec = spec
	t.generation++
	return nil
}

// Destroy releases the texture.
func (t *Texture) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	if !t.external {
		_ = t.device.record(OpDestroyTexture, t.label)
		t.device.liveTextures--
	}
}

// RenderPass is a recorded render pass.
type RenderPass struct {
	device      *Device
	Label       string
	Description rendergraph.RenderPassDescription
	destroyed   bool
}

// Destroyed reports whether Destroy was called.
func (p *RenderPass) Destroyed() bool { return p.destroyed }

// Destroy releases the render pass.
func (p *RenderPass) Destroy() {
	if p.destroyed {
		return
	}
	p.destroyed = true
	_ = p.device.record(OpDestroyRenderPass, p.Label)
	p.device.liveRenderPasses--
}

// Framebuffer is a recorded framebuffer.
type Framebuffer struct {
	device      *Device
	RenderPass  *RenderPass
	Attachments []rendergraph.Texture
	Width       uint32
	Height      uint32
	destroyed   bool
}

// Destroyed reports whether Destroy was called.
func (f *Framebuffer) Destroyed() bool { return f.destroyed }

// Destroy releases the framebuffer.
func (f *Framebuffer) Destroy() {
	if f.destroyed {
		return
	}
	f.destroyed = true
	_ = f.device.record(OpDestroyFramebuffer, f.RenderPass.Label)
	f.device.liveFramebuffers--
}
