package rendergraph

import (
	"errors"
	"fmt"
)

// Graph errors.
var (
	// ErrDeviceRequired is returned when a graph is compiled without a device.
	ErrDeviceRequired = errors.New("rendergraph: render device is nil")

	// ErrNilCommandBuffer is returned when Execute is called with a nil command buffer.
	ErrNilCommandBuffer = errors.New("rendergraph: command buffer is nil")

	// ErrDestroyed is returned when a destroyed graph is compiled or executed.
	ErrDestroyed = errors.New("rendergraph: graph has been destroyed")
)

// contractf panics with a contract violation. Contract violations describe
// a malformed static graph and have no recovery path.
func contractf(format string, args ...any) {
	panic(fmt.Sprintf("rendergraph: "+format, args...))
}
