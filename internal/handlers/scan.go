package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/scandock/scanless/internal/export"
	"github.com/scandock/scanless/internal/models"
	"github.com/scandock/scanless/internal/scanner"
	"github.com/scandock/scanless/internal/storage"
)

const (
	defaultMode       = "color"
	defaultResolution = 300
)

// HandleScanners lists attached devices. No devices is an empty JSON array,
// HTTP 200; only a failing driver query is an error.
func (h *Handler) HandleScanners(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	devices, err := h.driver.Devices(r.Context())
	if err != nil {
		h.writeError(w, "Failed to query scan devices: "+err.Error(), http.StatusInternalServerError)
		return
	}

	scanners := make([]models.Scanner, 0, len(devices))
	for _, device := range devices {
		scanners = append(scanners, models.Scanner{
			Name:    device.Name,
			Vendor:  device.Vendor,
			Model:   device.Model,
			DevType: device.Type,
		})
	}
	h.writeJSON(w, scanners)
}

// HandleScan performs one blocking capture and appends the page to the
// session, creating it when scan_id is omitted.
func (h *Handler) HandleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request models.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if request.DeviceName == "" {
		h.writeError(w, "device_name is required", http.StatusBadRequest)
		return
	}

	scanID := request.ScanID
	if scanID == "" {
		scanID = uuid.NewString()
	}
	mode := request.Mode
	if mode == "" {
		mode = defaultMode
	}
	resolution := request.Resolution
	if resolution == 0 {
		resolution = defaultResolution
	}

	img, err := h.driver.Capture(r.Context(), request.DeviceName, scanner.CaptureOptions{
		Mode:       mode,
		Resolution: resolution,
	})
	if err != nil {
		h.writeError(w, "Scan failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	count := h.store.Append(scanID, img)
	slog.Info("Captured page", "scan_id", scanID, "device", request.DeviceName, "page_count", count)

	h.writeJSON(w, models.ScanStatus{ScanID: scanID, PageCount: count})
}

// HandleScanDetail routes /scan/{id}/info and /scan/{id}/image/{index}.
// Lookups are strict everywhere: unknown session identifiers are 404 on the
// info endpoint too.
func (h *Handler) HandleScanDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/scan/"), "/")
	switch {
	case len(parts) == 2 && parts[1] == "info":
		h.scanInfo(w, parts[0])
	case len(parts) == 3 && parts[1] == "image":
		h.scanImage(w, parts[0], parts[2])
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) scanInfo(w http.ResponseWriter, scanID string) {
	count, err := h.store.PageCount(scanID)
	if err != nil {
		h.writeError(w, "Scan ID not found", http.StatusNotFound)
		return
	}
	h.writeJSON(w, models.ScanStatus{ScanID: scanID, PageCount: count})
}

func (h *Handler) scanImage(w http.ResponseWriter, scanID, indexStr string) {
	index, err := strconv.Atoi(indexStr)
	if err != nil {
		h.writeError(w, "Image index out of range", http.StatusNotFound)
		return
	}

	data, err := h.store.EncodePage(scanID, index)
	switch {
	case errors.Is(err, storage.ErrSessionNotFound):
		h.writeError(w, "Scan ID not found", http.StatusNotFound)
		return
	case errors.Is(err, storage.ErrPageOutOfRange):
		h.writeError(w, "Image index out of range", http.StatusNotFound)
		return
	case err != nil:
		h.writeError(w, "Failed to encode image: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	if _, err := w.Write(data); err != nil {
		slog.Error("Unable to write image response", "err", err)
	}
}

// HandleFinishScan exports the session as one searchable PDF, persists it,
// and streams it back as an attachment.
func (h *Handler) HandleFinishScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	scanID := strings.TrimPrefix(r.URL.Path, "/finish_scan/")
	if scanID == "" || strings.Contains(scanID, "/") {
		http.NotFound(w, r)
		return
	}

	artifact, err := h.exporter.ExportSession(r.Context(), scanID)
	switch {
	case errors.Is(err, storage.ErrSessionNotFound):
		h.writeError(w, "Scan ID not found", http.StatusNotFound)
		return
	case err != nil:
		h.writeError(w, "Failed to create searchable PDF: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(scanID)+`"`)
	if _, err := w.Write(artifact.Data); err != nil {
		slog.Error("Unable to write PDF response", "err", err)
	}
}
