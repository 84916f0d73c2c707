// Package ai sends the rendered board to a remote critique service. Two
// providers are supported, mirroring the conventional environment setup:
// Google Gemini (preferred when a key is present) and the Hugging Face
// inference API. Provider failures surface as errors for the UI layer;
// they never touch the drawing history.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"SketchBoard/internal/config"
)

// ErrNotConfigured is returned when neither provider has credentials.
var ErrNotConfigured = errors.New("ai: not configured; set GEMINI_API_KEY or HF_API_TOKEN")

// ErrModelLoading is returned while the remote model is still warming up.
var ErrModelLoading = errors.New("ai: model is loading, try again in a few seconds")

// Analysis is the critique of one drawing. Confidence is 0-100; Critique
// may be empty for pure classifiers.
type Analysis struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Critique   string  `json:"critique"`
}

// String formats the analysis for the result dialog.
func (a *Analysis) String() string {
	msg := fmt.Sprintf("Label: %s\nConfidence: %.1f", a.Label, a.Confidence)
	if a.Critique != "" {
		msg += "\n\n" + a.Critique
	}
	return msg
}

// Analyzer judges a rendered drawing.
type Analyzer interface {
	Name() string
	Analyze(ctx context.Context, pngData []byte) (*Analysis, error)
}

const defaultTimeout = 60 * time.Second

// critiquePrompt asks the generative provider for a machine-readable
// verdict.
const critiquePrompt = "You are a drawing judge. Look at the sketch and provide: " +
	"1) a short label for what it depicts, 2) a confidence 0-100, " +
	"3) a one-sentence critique or suggestion. Respond in JSON with keys: " +
	"label, confidence, critique."

// FromConfig picks the provider for the given credentials, preferring
// Gemini. It returns ErrNotConfigured when neither is set up.
func FromConfig(cfg config.Config, logger *slog.Logger) (Analyzer, error) {
	if cfg.Gemini.APIKey != "" {
		return NewGemini(cfg.Gemini.APIKey, cfg.Gemini.Model, logger), nil
	}
	if cfg.HuggingFace.Token != "" {
		return NewHuggingFace(cfg.HuggingFace.Token, cfg.HuggingFace.Model, logger), nil
	}
	return nil, ErrNotConfigured
}

var embeddedJSON = regexp.MustCompile(`\{[\s\S]*\}`)

// parseAnalysis extracts an Analysis from free-form model output. The
// provider usually answers with plain JSON but sometimes wraps it in prose
// or a code fence; as a last resort the whole reply becomes the critique.
func parseAnalysis(text string) *Analysis {
	type loose struct {
		Label      string `json:"label"`
		Confidence any    `json:"confidence"`
		Critique   string `json:"critique"`
	}
	try := func(raw string) (*Analysis, bool) {
		var l loose
		if err := json.Unmarshal([]byte(raw), &l); err != nil {
			return nil, false
		}
		return &Analysis{
			Label:      l.Label,
			Confidence: coerceConfidence(l.Confidence),
			Critique:   l.Critique,
		}, true
	}

	if a, ok := try(text); ok {
		return a
	}
	if m := embeddedJSON.FindString(text); m != "" {
		if a, ok := try(m); ok {
			return a
		}
	}
	return &Analysis{Critique: text}
}

func coerceConfidence(v any) float64 {
	switch c := v.(type) {
	case float64:
		return c
	case string:
		if f, err := strconv.ParseFloat(c, 64); err == nil {
			return f
		}
	}
	return 0
}
