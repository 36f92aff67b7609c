// Package rendergraph provides a declarative render graph (frame graph) for
// GPU rendering.
//
// # Overview
//
// Rendering features describe GPU passes and the versioned textures those
// passes read and write. The graph compiles these declarations into device
// objects (render passes, framebuffers) and executes the passes every frame
// in a fixed order. The graphics API itself is an injected collaborator: the
// graph RECEIVES a RenderDevice from the host application, it never creates
// one.
//
// # Quick Start
//
//	g := rendergraph.New(device)
//	backbuffer := g.ImportTexture("backbuffer", swapchain, rendergraph.LayoutPresent)
//
//	g.AddPass(&rendergraph.FuncPass{
//	    PassName: "clear",
//	    SetupFunc: func(b *rendergraph.Builder, bb *rendergraph.Blackboard, _ rendergraph.PassID) {
//	        b.AddColorAttachment(backbuffer, gputypes.LoadOpClear, gputypes.StoreOpStore,
//	            rendergraph.ClearColor(gputypes.Color{A: 1}))
//	    },
//	})
//
//	// Every frame:
//	if err := g.Execute(cmd); err != nil {
//	    return err
//	}
//
// # Texture Versions
//
// Every write to a texture (adding it as a color, depth/stencil or resolve
// attachment) returns a new TextureVersionID. A version is never mutated:
// the compiler uses the chain of versions to find, for each attachment, the
// next pass that consumes what it produces and bakes the layout that pass
// needs into the render pass's final layout. This replaces explicit
// barriers between passes of the graph.
//
// # Phases
//
//   - Setup: AddPass calls Pass.Setup with a Builder, once per pass.
//   - Compile: Compile (or the first Execute) resolves dependent texture
//     sizes and formats, allocates transient textures and builds render
//     passes and framebuffers. Later compiles rebuild only what changed.
//   - Execute: once per frame, passes run strictly in declaration order.
//
// Resizing is driven by ReimportTexture: a changed specification marks the
// graph dirty, dependent textures follow on the next compile, and the
// affected render passes and framebuffers are rebuilt before any pass runs.
//
// # Errors
//
// Malformed declarations (invalid version ids, passes without attachments,
// mismatched resolve attachments, a second depth/stencil attachment) are
// programmer errors and panic. Device failures are returned as errors.
//
// # Thread Safety
//
// A Graph is NOT thread-safe. Setup, Compile and Execute must all be called
// from the render thread.
package rendergraph
