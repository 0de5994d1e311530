//go:build !ocr

package ocr

import (
	"context"
	"errors"
)

// ErrNotEnabled is returned when Tesseract recognition is requested but OCR
// support was not compiled in. Rebuild with -tags ocr to enable it; that
// requires the Tesseract native library (libtesseract-dev on Debian/Ubuntu,
// brew install tesseract on macOS).
var ErrNotEnabled = errors.New("tesseract support not enabled; rebuild with -tags ocr")

// Tesseract is the stub used without the "ocr" build tag. All recognitions
// fail with ErrNotEnabled.
type Tesseract struct{}

// NewTesseract returns the stub engine.
func NewTesseract() *Tesseract { return &Tesseract{} }

func (t *Tesseract) Name() string { return "tesseract" }

func (t *Tesseract) Recognize(ctx context.Context, in Input) (Result, error) {
	return Result{}, ErrNotEnabled
}
