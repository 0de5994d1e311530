package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Ollama performs recognition against a local Ollama instance running a
// vision-capable model. Like Gemini, it returns plain text only.
type Ollama struct {
	Host       string
	Model      string
	HTTPClient *http.Client
}

// NewOllama returns an Ollama engine. Host comes from OLLAMA_URL or
// OLLAMA_HOST, model from OLLAMA_MODEL.
func NewOllama() *Ollama {
	host := os.Getenv("OLLAMA_URL")
	if host == "" {
		host = os.Getenv("OLLAMA_HOST")
	}
	if host == "" {
		host = "http://localhost:11434"
	}
	model := os.Getenv("OLLAMA_MODEL")
	if model == "" {
		model = "llama3.2-vision"
	}
	return &Ollama{Host: host, Model: model, HTTPClient: &http.Client{}}
}

func (o *Ollama) Name() string { return "ollama" }

// Recognize posts the page image to /api/generate with a zero temperature
// so the transcription is as literal as the model allows.
func (o *Ollama) Recognize(ctx context.Context, in Input) (Result, error) {
	requestBody, err := json.Marshal(map[string]interface{}{
		"model":  o.Model,
		"prompt": transcriptionPrompt,
		"images": []string{base64.StdEncoding.EncodeToString(in.Image)},
		"stream": false,
		"options": map[string]interface{}{
			"temperature": 0.0,
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.Host+"/api/generate", bytes.NewBuffer(requestBody))
	if err != nil {
		return Result{}, fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.HTTPClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("failed to call Ollama API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Result{}, fmt.Errorf("ollama API returned status %d: %s", resp.StatusCode, string(body))
	}

	var ollamaResp struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return Result{}, fmt.Errorf("failed to decode Ollama response: %w", err)
	}

	return Result{PlainText: strings.TrimSpace(ollamaResp.Response)}, nil
}
