// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mmartin-sub/bookspine/internal/httputil"
	"github.com/mmartin-sub/bookspine/pkg/types"
)

// STAPI calls a sentence-transformers API server, which speaks the
// OpenAI embeddings payload: {"input": [...], "model": "..."} in,
// {"data": [{"embedding": [...], "index": n}]} out.
type STAPI struct {
	client     *http.Client
	apiURL     string
	model      string
	apiKey     string
	userAgent  string
	maxRetries int
}

type stapiRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model"`
}

type openAIStyleResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewSTAPI builds the stapi engine. The API URL is required: there is no
// well-known default host for a self-hosted server.
func NewSTAPI(cfg types.EngineConfig) (*STAPI, error) {
	if cfg.APIURL == "" {
		return nil, &types.ConfigurationError{Msg: "stapi engine requires api_url"}
	}
	model := cfg.Model
	if model == "" {
		model = "default"
	}
	return &STAPI{
		client:     newHTTPClient(cfg),
		apiURL:     cfg.APIURL,
		model:      model,
		apiKey:     cfg.AuthToken,
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
	}, nil
}

// Name returns the engine identifier.
func (s *STAPI) Name() string { return "stapi" }

// Embed posts the batch and reorders vectors by the response index.
func (s *STAPI) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	jsonBody, err := json.Marshal(stapiRequest{Input: texts, Model: s.model})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, s.client, req, s.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var decoded openAIStyleResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if decoded.Error != nil {
		return nil, fmt.Errorf("stapi error: %s", decoded.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stapi error (status %d): %s", resp.StatusCode, string(body))
	}

	return orderByIndex(decoded, len(texts))
}

// orderByIndex places vectors at their response index so results line up
// with the input order even when the server reorders them.
func orderByIndex(resp openAIStyleResponse, n int) ([][]float64, error) {
	vectors := make([][]float64, n)
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= n {
			return nil, fmt.Errorf("embedding index %d out of range for %d texts", d.Index, n)
		}
		vectors[d.Index] = d.Embedding
	}
	for i, v := range vectors {
		if v == nil {
			return nil, fmt.Errorf("no embedding returned for text %d", i)
		}
	}
	return vectors, nil
}
