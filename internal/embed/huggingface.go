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

// defaultHuggingFaceURL targets the feature-extraction pipeline of the
// default sentence-transformers model. Declared as a var so tests can
// substitute an httptest server.
var defaultHuggingFaceURL = "https://api-inference.huggingface.co/pipeline/feature-extraction/sentence-transformers/all-MiniLM-L6-v2"

// HuggingFace calls the Hugging Face inference API with bearer-token
// auth. The response is a bare array of vectors.
type HuggingFace struct {
	client     *http.Client
	apiURL     string
	authToken  string
	userAgent  string
	maxRetries int
}

type huggingFaceRequest struct {
	Inputs  []string `json:"inputs"`
	Options struct {
		WaitForModel bool `json:"wait_for_model"`
	} `json:"options"`
}

// NewHuggingFace builds the Hugging Face engine. A missing auth token is
// a configuration error: the inference API rejects anonymous
// feature-extraction calls.
func NewHuggingFace(cfg types.EngineConfig) (*HuggingFace, error) {
	if cfg.AuthToken == "" {
		return nil, &types.ConfigurationError{Msg: "huggingface engine requires an auth token"}
	}
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = defaultHuggingFaceURL
	}
	return &HuggingFace{
		client:     newHTTPClient(cfg),
		apiURL:     apiURL,
		authToken:  cfg.AuthToken,
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
	}, nil
}

// Name returns the engine identifier.
func (h *HuggingFace) Name() string { return "huggingface" }

// Embed posts the batch and decodes the bare vector array.
func (h *HuggingFace) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var reqBody huggingFaceRequest
	reqBody.Inputs = texts
	reqBody.Options.WaitForModel = true

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.apiURL, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.authToken)
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, h.client, req, h.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("huggingface error (status %d): %s", resp.StatusCode, string(body))
	}

	var vectors [][]float64
	if err := json.NewDecoder(resp.Body).Decode(&vectors); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("huggingface returned %d vectors for %d texts", len(vectors), len(texts))
	}
	return vectors, nil
}
