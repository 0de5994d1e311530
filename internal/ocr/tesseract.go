//go:build ocr

package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract runs recognition through the gosseract binding. It needs the
// Tesseract native library at build time, so it compiles only behind the
// "ocr" build tag:
//
//	go build -tags ocr
//
// Without the tag the stub implementation is used instead.
type Tesseract struct {
	newClient func() *gosseract.Client
}

// NewTesseract constructs a Tesseract-backed engine.
func NewTesseract() *Tesseract {
	return &Tesseract{newClient: gosseract.NewClient}
}

func (t *Tesseract) Name() string { return "tesseract" }

// Recognize performs OCR on a single page image. A fresh client is used per
// call; captures are seconds-long anyway, so client reuse buys nothing.
func (t *Tesseract) Recognize(ctx context.Context, in Input) (Result, error) {
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	default:
	}

	c := t.newClient()
	defer c.Close()

	if err := c.SetImageFromBytes(in.Image); err != nil {
		return Result{}, fmt.Errorf("set image: %w", err)
	}
	if len(in.Languages) > 0 {
		if err := c.SetLanguage(in.Languages...); err != nil {
			return Result{}, fmt.Errorf("set languages: %w", err)
		}
	}
	if in.DPI > 0 {
		if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(in.DPI)); err != nil {
			return Result{}, fmt.Errorf("set dpi: %w", err)
		}
	}
	for k, v := range in.Metadata {
		if err := c.SetVariable(gosseract.SettableVariable(k), v); err != nil {
			return Result{}, fmt.Errorf("set variable %s: %w", k, err)
		}
	}

	text, err := c.Text()
	if err != nil {
		return Result{}, fmt.Errorf("recognize text: %w", err)
	}

	return Result{
		PlainText: strings.TrimSpace(text),
		Words:     extractWords(c),
	}, nil
}

// extractWords pulls word-level bounding boxes. A box failure degrades to a
// text-only result rather than failing the page.
func extractWords(c *gosseract.Client) []Word {
	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return nil
	}
	words := make([]Word, 0, len(boxes))
	for _, b := range boxes {
		word := strings.TrimSpace(b.Word)
		if word == "" {
			continue
		}
		words = append(words, Word{
			Text: word,
			Bounds: Box{
				X: float64(b.Box.Min.X),
				Y: float64(b.Box.Min.Y),
				W: float64(b.Box.Dx()),
				H: float64(b.Box.Dy()),
			},
			Confidence: b.Confidence / 100.0,
		})
	}
	return words
}
