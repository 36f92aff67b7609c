// Package headless provides an in-memory rendergraph.RenderDevice and a
// recording rendergraph.CommandBuffer.
//
// No GPU is involved: textures, render passes and framebuffers are plain Go
// values, and every device call and recorded command is appended to a
// journal shared by the device and the command buffers it creates. The
// journal makes the order of compilation and execution observable, which
// is what tests and the rgviz tool need.
//
// Failures can be injected per operation with Device.FailOn to exercise the
// error paths of the compiler.
package headless
