package ocr

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini performs recognition with Google's vision models. It returns plain
// text only; the API exposes no word geometry, so exported pages built from
// it carry the text as a single invisible block.
type Gemini struct {
	Model string
}

// NewGemini returns a Gemini engine using GEMINI_MODEL or a flash default.
func NewGemini() *Gemini {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &Gemini{Model: model}
}

func (g *Gemini) Name() string { return "gemini" }

// Recognize transcribes the page image with a zero-temperature vision call.
func (g *Gemini) Recognize(ctx context.Context, in Input) (Result, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return Result{}, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return Result{}, fmt.Errorf("failed to create new gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.Model)
	model.SetTemperature(0)

	format := strings.TrimPrefix(in.Format, "image/")
	if format == "" {
		format = "jpeg"
	}

	resp, err := model.GenerateContent(ctx,
		genai.ImageData(format, in.Image),
		genai.Text(transcriptionPrompt),
	)
	if err != nil {
		return Result{}, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return Result{}, fmt.Errorf("no candidates returned from Gemini")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return Result{}, fmt.Errorf("empty content returned from Gemini")
	}

	txt, ok := candidate.Content.Parts[0].(genai.Text)
	if !ok {
		return Result{}, fmt.Errorf("unexpected response format from Gemini")
	}

	return Result{PlainText: strings.TrimSpace(string(txt))}, nil
}
