package headless

import (
	"fmt"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/backend"
)

// init registers the headless backend on package import.
func init() {
	backend.Register(backend.BackendHeadless, func() backend.RenderBackend {
		return &Backend{}
	})
}

// Backend is the headless backend.RenderBackend. Each RunFrame records
// into a fresh CommandBuffer which is kept until the next frame.
type Backend struct {
	device *Device
	last   *CommandBuffer
}

// Name returns the backend identifier.
func (b *Backend) Name() string { return backend.BackendHeadless }

// Init creates the device.
func (b *Backend) Init() error {
	b.device = NewDevice()
	return nil
}

// Close drops the device.
func (b *Backend) Close() {
	b.device = nil
	b.last = nil
}

// Device returns the headless device, or nil before Init.
func (b *Backend) Device() rendergraph.RenderDevice {
	if b.device == nil {
		return nil
	}
	return b.device
}

// HeadlessDevice returns the concrete device for inspection.
func (b *Backend) HeadlessDevice() *Device { return b.device }

// LastFrame returns the command buffer of the last RunFrame.
func (b *Backend) LastFrame() *CommandBuffer { return b.last }

// RunFrame records one frame of g and validates the recording.
func (b *Backend) RunFrame(g *rendergraph.Graph) error {
	if b.device == nil {
		return backend.ErrNotInitialized
	}
	cb := b.device.NewCommandBuffer()
	if err := g.Execute(cb); err != nil {
		return err
	}
	b.last = cb
	if err := cb.Validate(); err != nil {
		return fmt.Errorf("headless: frame: %w", err)
	}
	return nil
}

var _ backend.RenderBackend = (*Backend)(nil)
