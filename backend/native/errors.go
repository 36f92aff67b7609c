// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import "errors"

// Package errors for the HAL backend.
var (
	// ErrNilHALDevice is returned when a device is created without a HAL device.
	ErrNilHALDevice = errors.New("native: HAL device is nil")

	// ErrNilEncoder is returned when a command buffer has no HAL encoder.
	ErrNilEncoder = errors.New("native: command encoder is nil")

	// ErrNoHALProvider is returned when a device provider does not expose
	// HAL types.
	ErrNoHALProvider = errors.New("native: provider does not expose HAL device")

	// ErrExternalTexture is returned when recreating a texture the backend
	// does not own.
	ErrExternalTexture = errors.New("native: texture is externally owned")

	// ErrTextureDestroyed is returned when operating on a destroyed texture.
	ErrTextureDestroyed = errors.New("native: texture has been destroyed")

	// ErrForeignObject is recorded when a command references a render pass,
	// framebuffer or texture created by another backend.
	ErrForeignObject = errors.New("native: object was not created by this backend")

	// ErrPassOpen is recorded when a render pass begins while another is open.
	ErrPassOpen = errors.New("native: render pass already open")

	// ErrSubmitTimeout is returned when a submitted frame does not complete
	// within the wait timeout.
	ErrSubmitTimeout = errors.New("native: submitted frame did not complete in time")

	// ErrNoPass is recorded when a pass command is issued outside a render pass.
	ErrNoPass = errors.New("native: no render pass open")
)
