package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
)

const huggingFaceBaseURL = "https://api-inference.huggingface.co"

// HuggingFace classifies drawings through the hosted inference API. The
// image bytes are posted as-is and the top-scored label wins.
type HuggingFace struct {
	token   string
	model   string
	baseURL string
	client  *http.Client
	log     *slog.Logger
}

func NewHuggingFace(token, model string, logger *slog.Logger) *HuggingFace {
	return &HuggingFace{
		token:   token,
		model:   model,
		baseURL: huggingFaceBaseURL,
		client:  &http.Client{Timeout: defaultTimeout},
		log:     logger,
	}
}

func (h *HuggingFace) Name() string { return "huggingface/" + h.model }

func (h *HuggingFace) Analyze(ctx context.Context, pngData []byte) (*Analysis, error) {
	url := fmt.Sprintf("%s/models/%s", h.baseURL, h.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(pngData))
	if err != nil {
		return nil, fmt.Errorf("huggingface: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+h.token)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("huggingface: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		return nil, ErrModelLoading
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("huggingface: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("huggingface: API error %d: %s", resp.StatusCode, body)
	}

	var labels []struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	if err := json.Unmarshal(body, &labels); err != nil {
		return nil, fmt.Errorf("huggingface: decode response: %w", err)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("huggingface: empty response")
	}

	top := labels[0]
	for _, l := range labels[1:] {
		if l.Score > top.Score {
			top = l
		}
	}
	h.log.Debug("huggingface reply", "model", h.model, "labels", len(labels), "top", top.Label)

	return &Analysis{
		Label:      top.Label,
		Confidence: math.Round(top.Score*1000) / 10,
	}, nil
}
