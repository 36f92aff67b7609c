package backend

import (
	"errors"

	"github.com/gogpu/rendergraph"
)

// Backend name constants.
const (
	// BackendHeadless is the name of the in-memory backend.
	BackendHeadless = "headless"
	// BackendHALNoop is the name of the gogpu/wgpu HAL backend on the noop API.
	BackendHALNoop = "hal-noop"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// RenderBackend is the interface for render device backends.
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type RenderBackend interface {
	// Name returns the backend identifier (e.g., "headless").
	Name() string

	// Init initializes the backend.
	// This should be called before Device or RunFrame.
	Init() error

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()

	// Device returns the render device graphs compile against.
	// It returns nil before Init.
	Device() rendergraph.RenderDevice

	// RunFrame records one frame of g into a new command buffer.
	// The graph is compiled first if needed.
	RunFrame(g *rendergraph.Graph) error
}
