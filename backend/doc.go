// Package backend provides a registry of render devices for rendergraph.
//
// Backends are registered via init() functions and selected at runtime by
// name. A backend bundles a rendergraph.RenderDevice with the ability to
// record one frame of a graph into a command buffer of its own, which is
// what tools such as rgviz need to exercise a graph end to end.
//
// # Backend Registration
//
// Import the backend packages to register them:
//
//	import (
//		_ "github.com/gogpu/rendergraph/backend/headless"
//		_ "github.com/gogpu/rendergraph/backend/native"
//	)
//
// # Backend Selection
//
//	// Get the default (best available) backend
//	b := backend.Default()
//
//	// Or request a specific backend
//	b := backend.Get(backend.BackendHeadless)
//
//	if err := b.Init(); err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	g := rendergraph.New(b.Device())
//
// # Available Backends
//
// - "headless": in-memory device and recording command buffer (always available)
// - "hal-noop": gogpu/wgpu HAL adapter running on the noop HAL API
package backend
