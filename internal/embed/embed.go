// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package embed provides text-embedding clients for the keyword
// extractor. One implementation exists per engine: a local Ollama
// server, the Hugging Face inference API, a sentence-transformers API
// server (stapi), and an Infinity server. The engine is selected once,
// at construction, so no call site branches on engine names.
package embed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmartin-sub/bookspine/pkg/types"
)

// Embedder turns a batch of texts into embedding vectors. It is the
// only contract the keyword extractor depends on.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float64, error)

	// Name identifies the engine for result metadata.
	Name() string
}

// defaultTimeout applies when the configuration does not set one.
const defaultTimeout = 30 * time.Second

// New constructs the Embedder selected by cfg.Engine, wrapped in an
// in-process vector cache unless caching is disabled. An unknown engine
// name fails with a ConfigurationError.
func New(cfg types.EngineConfig) (Embedder, error) {
	var (
		inner Embedder
		err   error
	)

	switch cfg.Engine {
	case types.EngineOllama, "":
		inner = NewOllama(cfg)
	case types.EngineHuggingFace:
		inner, err = NewHuggingFace(cfg)
	case types.EngineSTAPI:
		inner, err = NewSTAPI(cfg)
	case types.EngineInfinity:
		inner, err = NewInfinity(cfg)
	default:
		return nil, &types.ConfigurationError{Msg: fmt.Sprintf("unknown embedding engine %q", cfg.Engine)}
	}
	if err != nil {
		return nil, err
	}

	if cfg.CacheSize < 0 {
		return inner, nil
	}
	return NewCached(inner, cfg.Model, cfg.CacheSize)
}

// newHTTPClient builds the shared client for the engine adapters.
func newHTTPClient(cfg types.EngineConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
