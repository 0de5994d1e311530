// Package ocr defines the recognition contract for turning scanned page
// images into text, plus the engines that implement it. Engines can be
// backed by native libraries (Tesseract) or remote vision APIs (Gemini,
// Ollama) without leaking provider concerns into callers.
package ocr

import (
	"context"
	"fmt"
)

// Box is a bounding box in image pixel coordinates, origin top-left.
type Box struct {
	X float64
	Y float64
	W float64
	H float64
}

// Word is one recognized token with its position on the page image.
type Word struct {
	Text       string
	Bounds     Box
	Confidence float64
}

// Input is one encoded page image submitted for recognition.
type Input struct {
	// Image is the encoded payload in the format declared by Format.
	Image []byte
	// Format is the image media type, e.g. "image/jpeg".
	Format string
	// DPI is the effective dots-per-inch; zero means unknown.
	DPI int
	// Languages are trained-data hints (e.g. "eng", "deu").
	Languages []string
	// Metadata passes engine-specific knobs through without hard-coding
	// them into the API surface.
	Metadata map[string]string
}

// Result captures recognition output for one input image. Words carry
// positional geometry when the engine provides it; remote vision engines
// return plain text only.
type Result struct {
	PlainText string
	Words     []Word
}

// Engine is the recognition contract: one page image in, one result out.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, in Input) (Result, error)
}

// New selects an engine by configured name.
func New(name string) (Engine, error) {
	switch name {
	case "", "tesseract":
		return NewTesseract(), nil
	case "gemini":
		return NewGemini(), nil
	case "ollama":
		return NewOllama(), nil
	default:
		return nil, fmt.Errorf("unknown ocr engine: %s", name)
	}
}

// transcriptionPrompt instructs vision models to behave like an OCR pass:
// transcribe exactly, preserve layout, add nothing.
const transcriptionPrompt = `You are performing OCR (Optical Character Recognition) on a scanned document page image.

Your task is to extract ALL visible text from the image exactly as it appears, preserving:
- Line breaks and formatting
- Capitalization
- Punctuation
- Order of text elements

INSTRUCTIONS:
1. Read the image carefully from top to bottom
2. Transcribe every piece of visible text
3. Preserve the original line breaks
4. Do not add any interpretation, commentary, or explanations
5. If text is partially obscured or unclear, transcribe what you can see and use [?] for illegible portions

OUTPUT FORMAT:
Provide ONLY the extracted text. Do not include phrases like "Here is the text:" or "The image contains:".
Start immediately with the transcribed text from the page.`
