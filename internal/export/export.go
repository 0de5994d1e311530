// Package export turns a scan session's pages into one searchable PDF:
// OCR per page, one single-page PDF fragment per page, a structural merge
// in capture order, and a copy persisted to the output directory.
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/scandock/scanless/internal/ocr"
	"github.com/scandock/scanless/internal/storage"
)

// ExportError wraps any failure in the OCR, fragment, merge, or persist
// steps. The whole export aborts on the first failure; a partially written
// file on disk is not cleaned up.
type ExportError struct {
	ScanID string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export of scan %s failed: %v", e.ScanID, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// Artifact is one exported searchable PDF.
type Artifact struct {
	Filename string
	Path     string
	Data     []byte
	Pages    int
}

// Exporter assembles searchable PDFs from stored sessions.
type Exporter struct {
	store     *storage.SessionStore
	engine    ocr.Engine
	outputDir string
	languages []string
	dpi       int
}

// New constructs an exporter writing into outputDir. dpi sets the
// coordinate scale used for page geometry; zero means 300.
func New(store *storage.SessionStore, engine ocr.Engine, outputDir string, languages []string, dpi int) *Exporter {
	if dpi <= 0 {
		dpi = defaultFragDPI
	}
	return &Exporter{
		store:     store,
		engine:    engine,
		outputDir: outputDir,
		languages: languages,
		dpi:       dpi,
	}
}

// Filename returns the deterministic artifact name for a scan id.
func Filename(scanID string) string {
	return fmt.Sprintf("scan_%s_ocr.pdf", scanID)
}

// ExportSession runs OCR over every page of the session in capture order,
// merges the per-page fragments into one document, persists it under the
// output directory, and returns the same bytes. An unknown session fails
// with storage.ErrSessionNotFound before anything touches the filesystem.
// Session pages are not cleared; repeat exports reprocess from scratch.
func (e *Exporter) ExportSession(ctx context.Context, scanID string) (Artifact, error) {
	pages, err := e.store.Pages(scanID)
	if err != nil {
		return Artifact{}, err
	}

	fragments := make([]io.ReadSeeker, 0, len(pages))
	for i, img := range pages {
		encoded, err := encodeJPEG(img)
		if err != nil {
			return Artifact{}, &ExportError{ScanID: scanID, Err: fmt.Errorf("page %d: %w", i, err)}
		}

		result, err := e.engine.Recognize(ctx, ocr.Input{
			Image:     encoded,
			Format:    "image/jpeg",
			DPI:       e.dpi,
			Languages: e.languages,
		})
		if err != nil {
			return Artifact{}, &ExportError{ScanID: scanID, Err: fmt.Errorf("ocr page %d: %w", i, err)}
		}

		fragment, err := buildFragment(encoded, img.Bounds(), result, e.dpi)
		if err != nil {
			return Artifact{}, &ExportError{ScanID: scanID, Err: fmt.Errorf("fragment page %d: %w", i, err)}
		}
		fragments = append(fragments, bytes.NewReader(fragment))
	}

	var merged bytes.Buffer
	if err := api.MergeRaw(fragments, &merged, false, nil); err != nil {
		return Artifact{}, &ExportError{ScanID: scanID, Err: fmt.Errorf("merge fragments: %w", err)}
	}

	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		return Artifact{}, &ExportError{ScanID: scanID, Err: fmt.Errorf("create output dir: %w", err)}
	}

	name := Filename(scanID)
	path := filepath.Join(e.outputDir, name)
	if err := os.WriteFile(path, merged.Bytes(), 0644); err != nil {
		return Artifact{}, &ExportError{ScanID: scanID, Err: fmt.Errorf("write %s: %w", path, err)}
	}

	slog.Info("Exported searchable PDF", "scan_id", scanID, "pages", len(pages), "engine", e.engine.Name(), "path", path)

	// The written buffer doubles as the response payload; re-reading the
	// file would only repeat the same bytes.
	return Artifact{
		Filename: name,
		Path:     path,
		Data:     merged.Bytes(),
		Pages:    len(pages),
	}, nil
}
