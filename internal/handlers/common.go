package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/scandock/scanless/internal/config"
	"github.com/scandock/scanless/internal/export"
	"github.com/scandock/scanless/internal/ocr"
	"github.com/scandock/scanless/internal/scanner"
	"github.com/scandock/scanless/internal/storage"
)

type Handler struct {
	driver   scanner.Driver
	store    *storage.SessionStore
	exporter *export.Exporter
}

func New(cfg *config.Config, driver scanner.Driver, engine ocr.Engine) *Handler {
	store := storage.New()
	return &Handler{
		driver:   driver,
		store:    store,
		exporter: export.New(store, engine, cfg.OutputDir, cfg.Languages, cfg.Resolution),
	}
}

// Routes wires every endpoint onto a fresh mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/scanners", h.HandleScanners)
	mux.HandleFunc("/scan", h.HandleScan)
	mux.HandleFunc("/scan/", h.HandleScanDetail)
	mux.HandleFunc("/finish_scan/", h.HandleFinishScan)
	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})
	mux.HandleFunc("/", h.HandleStatic)
	return mux
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}
