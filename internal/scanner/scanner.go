// Package scanner abstracts the external scanning subsystem. The Driver
// interface keeps the HTTP layer independent of how captures are produced;
// the SANE implementation shells out to scanimage.
package scanner

import (
	"context"
	"errors"
	"image"
)

// ErrDeviceUnavailable wraps any driver failure opening, configuring, or
// capturing from a device. The underlying cause is preserved.
var ErrDeviceUnavailable = errors.New("scan device unavailable")

// Device identifies an attached scanner. The Name doubles as the handle for
// opening a capture; the remaining fields are display metadata.
type Device struct {
	Name   string
	Vendor string
	Model  string
	Type   string
}

// CaptureOptions are applied to the device before a capture. Legal values
// are defined by the backend; no validation happens here.
type CaptureOptions struct {
	Mode       string
	Resolution int
}

// Driver is the contract with the scanning subsystem.
type Driver interface {
	// Devices queries attached scanners. No devices is an empty slice,
	// not an error.
	Devices(ctx context.Context) ([]Device, error)

	// Capture performs one synchronous capture from the named device,
	// producing one raster page. It blocks for the duration of the scan.
	Capture(ctx context.Context, deviceName string, opts CaptureOptions) (image.Image, error)
}
