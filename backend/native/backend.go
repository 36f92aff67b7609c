// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/backend"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// submitTimeout bounds the wait for a submitted frame.
const submitTimeout = 5 * time.Second

// pollInterval is the sleep between completion polls.
const pollInterval = 100 * time.Microsecond

// init registers the HAL backend on the noop API.
func init() {
	backend.Register(backend.BackendHALNoop, func() backend.RenderBackend {
		return &Backend{}
	})
}

// SubmitFrame encodes one execution of g, submits it and waits until the
// queue reports the submission complete.
func (d *Device) SubmitFrame(g *rendergraph.Graph, label string) error {
	if d.queue == nil {
		return errors.New("native: submit frame: queue is nil")
	}
	cmdBuf, err := d.Frame(g, label)
	if err != nil {
		return err
	}
	idx, err := d.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		d.device.FreeCommandBuffer(cmdBuf)
		return fmt.Errorf("native: submit %q: %w", label, err)
	}
	// A command buffer still in flight must not be freed.
	if err := d.waitSubmission(idx); err != nil {
		return fmt.Errorf("wait for frame %q: %w", label, err)
	}
	d.device.FreeCommandBuffer(cmdBuf)
	return nil
}

// waitSubmission polls the queue until submission idx has completed.
func (d *Device) waitSubmission(idx uint64) error {
	timeout := d.submitTimeout
	if timeout <= 0 {
		timeout = submitTimeout
	}
	deadline := time.Now().Add(timeout)
	for d.queue.PollCompleted() < idx {
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: submission %d after %v", ErrSubmitTimeout, idx, timeout)
		}
		time.Sleep(pollInterval)
	}
	return nil
}

// Backend is the backend.RenderBackend over the gogpu/wgpu noop HAL.
// It exercises the HAL code path without a GPU.
type Backend struct {
	instance hal.Instance
	halDev   hal.Device
	device   *Device
	frames   int
}

// Name returns the backend identifier.
func (b *Backend) Name() string { return backend.BackendHALNoop }

// Init opens the first noop adapter.
func (b *Backend) Init() error {
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		return fmt.Errorf("native: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return fmt.Errorf("native: %w: no adapters", backend.ErrBackendNotAvailable)
	}
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return fmt.Errorf("native: open adapter: %w", err)
	}
	dev, err := NewDevice(openDev.Device, openDev.Queue)
	if err != nil {
		openDev.Device.Destroy()
		instance.Destroy()
		return err
	}
	b.instance = instance
	b.halDev = openDev.Device
	b.device = dev
	rendergraph.Logger().Info("native: backend initialized", "backend", backend.BackendHALNoop)
	return nil
}

// Close destroys the device and instance.
func (b *Backend) Close() {
	if b.halDev != nil {
		b.halDev.Destroy()
		b.halDev = nil
	}
	if b.instance != nil {
		b.instance.Destroy()
		b.instance = nil
	}
	b.device = nil
}

// Device returns the HAL render device, or nil before Init.
func (b *Backend) Device() rendergraph.RenderDevice {
	if b.device == nil {
		return nil
	}
	return b.device
}

// NativeDevice returns the concrete device.
func (b *Backend) NativeDevice() *Device { return b.device }

// Frames returns the number of frames submitted.
func (b *Backend) Frames() int { return b.frames }

// RunFrame encodes and submits one frame of g.
func (b *Backend) RunFrame(g *rendergraph.Graph) error {
	if b.device == nil {
		return backend.ErrNotInitialized
	}
	b.frames++
	return b.device.SubmitFrame(g, fmt.Sprintf("frame_%d", b.frames))
}

var _ backend.RenderBackend = (*Backend)(nil)
