package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/scandock/scanless/internal/config"
	"github.com/scandock/scanless/internal/handlers"
	"github.com/scandock/scanless/internal/ocr"
	"github.com/scandock/scanless/internal/scanner"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the scan server",
		Long: `Starts the scanless HTTP API on the configured port.

The server enumerates SANE devices, triggers captures, accumulates scanned
pages per session, and exports sessions as searchable PDFs. Captures and
exports are synchronous; each request blocks until the device or the OCR
engine finishes.`,
		Example: `  # Start server on the default port 7500
  scanless serve

  # Start server on a custom port
  scanless serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}

			engine, err := ocr.New(cfg.OCREngine)
			if err != nil {
				return err
			}

			driver := scanner.NewSaneDriver()
			if version, err := driver.Probe(cmd.Context()); err != nil {
				slog.Warn("Scanner subsystem not reachable, captures will fail", "err", err)
			} else {
				slog.Info("Scanner subsystem ready", "version", version)
			}

			handler := handlers.New(cfg, driver, engine)

			addr := ":" + cfg.Port
			server := &http.Server{
				Addr:    addr,
				Handler: handler.Routes(),
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Scanless API available", "addr", addr, "engine", engine.Name(), "output_dir", cfg.OutputDir)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default SCANLESS_PORT or 7500)")

	return cmd
}
