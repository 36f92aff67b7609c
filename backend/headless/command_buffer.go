package headless

import (
	"errors"

	"github.com/gogpu/rendergraph"
)

// ErrPassOpen is reported by Validate when a render pass was begun and not
// ended, or begun while another pass was open.
var ErrPassOpen = errors.New("headless: render pass not ended")

// ErrNoPass is reported by Validate when a command needing a render pass was
// recorded outside of one.
var ErrNoPass = errors.New("headless: command outside of a render pass")

// Command is one recorded command.
type Command struct {
	Op          Op
	RenderPass  *RenderPass
	Framebuffer *Framebuffer
	Area        rendergraph.Rect
	ClearValues []rendergraph.ClearValue
	Viewport    rendergraph.Viewport
	Label       string
}

// CommandBuffer records commands in memory.
type CommandBuffer struct {
	device   *Device
	commands []Command
	open     bool
	invalid  error
}

// Commands returns the recorded commands.
func (c *CommandBuffer) Commands() []Command {
	return c.commands
}

// Count returns the number of recorded commands of kind op.
func (c *CommandBuffer) Count(op Op) int {
	n := 0
	for _, cmd := range c.commands {
		if cmd.Op == op {
			n++
		}
	}
	return n
}

// Reset discards the recorded commands.
func (c *CommandBuffer) Reset() {
	c.commands = c.commands[:0]
	c.open = false
	c.invalid = nil
}

// Validate reports the first nesting error in the recording.
func (c *CommandBuffer) Validate() error {
	if c.invalid != nil {
		return c.invalid
	}
	if c.open {
		return ErrPassOpen
	}
	return nil
}

func (c *CommandBuffer) add(cmd Command) {
	c.commands = append(c.commands, cmd)
	if c.device != nil {
		_ = c.device.record(cmd.Op, cmd.Label)
	}
}

// BeginRenderPass records the beginning of a render pass.
func (c *CommandBuffer) BeginRenderPass(rp rendergraph.RenderPass, fb rendergraph.Framebuffer, area rendergraph.Rect, clear []rendergraph.ClearValue) {
	if c.open && c.invalid == nil {
		c.invalid = ErrPassOpen
	}
	c.open = true
	cmd := Command{
		Op:          OpBeginRenderPass,
		Area:        area,
		ClearValues: append([]rendergraph.ClearValue(nil), clear...),
	}
	if p, ok := rp.(*RenderPass); ok {
		cmd.RenderPass = p
		cmd.Label = p.Label
	}
	if f, ok := fb.(*Framebuffer); ok {
		cmd.Framebuffer = f
	}
	c.add(cmd)
}

// SetViewport records a viewport.
func (c *CommandBuffer) SetViewport(vp rendergraph.Viewport) {
	c.requirePass()
	c.add(Command{Op: OpSetViewport, Viewport: vp})
}

// Draw records a labelled draw. Pass implementations call it from Execute.
func (c *CommandBuffer) Draw(label string) {
	c.requirePass()
	c.add(Command{Op: OpDraw, Label: label})
}

// EndRenderPass records the end of the current render pass.
func (c *CommandBuffer) EndRenderPass() {
	c.requirePass()
	c.open = false
	c.add(Command{Op: OpEndRenderPass})
}

func (c *CommandBuffer) requirePass() {
	if !c.open && c.invalid == nil {
		c.invalid = ErrNoPass
	}
}

var _ rendergraph.CommandBuffer = (*CommandBuffer)(nil)
