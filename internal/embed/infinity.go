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

// Infinity calls an Infinity embedding server. The request is a plain
// {"input": [...]} object; the response nests vectors under data.
type Infinity struct {
	client     *http.Client
	apiURL     string
	userAgent  string
	maxRetries int
}

type infinityRequest struct {
	Input []string `json:"input"`
}

// NewInfinity builds the infinity engine. The API URL is required.
func NewInfinity(cfg types.EngineConfig) (*Infinity, error) {
	if cfg.APIURL == "" {
		return nil, &types.ConfigurationError{Msg: "infinity engine requires api_url"}
	}
	return &Infinity{
		client:     newHTTPClient(cfg),
		apiURL:     cfg.APIURL,
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
	}, nil
}

// Name returns the engine identifier.
func (f *Infinity) Name() string { return "infinity" }

// Embed posts the batch and reorders vectors by the response index.
func (f *Infinity) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	jsonBody, err := json.Marshal(infinityRequest{Input: texts})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.apiURL, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, f.client, req, f.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("infinity error (status %d): %s", resp.StatusCode, string(body))
	}

	var decoded openAIStyleResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return orderByIndex(decoded, len(texts))
}
