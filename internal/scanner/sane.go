package scanner

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os/exec"
	"strings"

	"golang.org/x/image/tiff"
)

// deviceListFormat makes scanimage emit one pipe-separated device per line.
const deviceListFormat = "%d|%v|%m|%t\n"

// SaneDriver talks to the SANE subsystem through the scanimage binary.
// Each call runs a fresh subprocess, so the device handle is released on
// every exit path, success or failure.
type SaneDriver struct {
	// Binary is the scanimage executable. Defaults to "scanimage".
	Binary string
}

// NewSaneDriver returns a driver using the scanimage binary from PATH.
func NewSaneDriver() *SaneDriver {
	return &SaneDriver{Binary: "scanimage"}
}

// Probe reports whether the scanimage binary is reachable and returns its
// version string.
func (d *SaneDriver) Probe(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, d.Binary, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("scanimage not available: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Devices queries attached scanners once per call. SANE probing is slow;
// callers decide whether to cache, this driver never does.
func (d *SaneDriver) Devices(ctx context.Context) ([]Device, error) {
	cmd := exec.CommandContext(ctx, d.Binary, "-f", deviceListFormat)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to list scan devices: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return parseDeviceList(string(out)), nil
}

// Capture runs one blocking scanimage invocation and decodes the resulting
// TIFF frame. Mode and resolution pass through to the backend unvalidated.
func (d *SaneDriver) Capture(ctx context.Context, deviceName string, opts CaptureOptions) (image.Image, error) {
	args := []string{"-d", deviceName, "--format=tiff"}
	if opts.Mode != "" {
		args = append(args, "--mode", saneMode(opts.Mode))
	}
	if opts.Resolution > 0 {
		args = append(args, "--resolution", fmt.Sprint(opts.Resolution))
	}

	cmd := exec.CommandContext(ctx, d.Binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v: %s", ErrDeviceUnavailable, deviceName, err, strings.TrimSpace(stderr.String()))
	}

	img, err := tiff.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: decode capture: %v", ErrDeviceUnavailable, deviceName, err)
	}
	return img, nil
}

// saneMode maps the wire-level mode names onto the capitalized option
// values most SANE backends expect. Unknown values pass through untouched
// and are rejected by the backend.
func saneMode(mode string) string {
	switch strings.ToLower(mode) {
	case "color", "colour":
		return "Color"
	case "gray", "grey", "grayscale":
		return "Gray"
	case "lineart":
		return "Lineart"
	default:
		return mode
	}
}

func parseDeviceList(out string) []Device {
	devices := []Device{}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 4)
		if len(parts) != 4 || parts[0] == "" {
			continue
		}
		devices = append(devices, Device{
			Name:   parts[0],
			Vendor: parts[1],
			Model:  parts[2],
			Type:   parts[3],
		})
	}
	return devices
}
