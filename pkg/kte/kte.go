// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package kte is the keyword-extraction facade: one call takes an input
// source through preprocessing, embedding-backed extraction, header
// weighting, and ranking, and optionally persists the result.
package kte

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/mmartin-sub/bookspine/internal/embed"
	"github.com/mmartin-sub/bookspine/internal/format"
	"github.com/mmartin-sub/bookspine/internal/input"
	"github.com/mmartin-sub/bookspine/internal/keywords"
	"github.com/mmartin-sub/bookspine/internal/output"
	"github.com/mmartin-sub/bookspine/internal/weighting"
	"github.com/mmartin-sub/bookspine/pkg/types"
)

// Extractor runs the extraction pipeline. The embedding engine is
// constructed lazily on the first call and reused afterwards, so
// construct one Extractor per process lifetime and share it. Concurrent
// calls are as safe as the configured engine; the initialization itself
// is guarded.
type Extractor struct {
	// Config selects and configures the embedding engine.
	Config types.EngineConfig

	// Engine, when set, is used directly instead of constructing one
	// from Config. Tests inject fakes here.
	Engine embed.Embedder

	once    sync.Once
	kw      *keywords.Extractor
	initErr error
}

// NewExtractor builds an Extractor for the given engine configuration.
func NewExtractor(cfg types.EngineConfig) *Extractor {
	return &Extractor{Config: cfg}
}

func (e *Extractor) extractor() (*keywords.Extractor, error) {
	e.once.Do(func() {
		engine := e.Engine
		if engine == nil {
			var err error
			engine, err = embed.New(e.Config)
			if err != nil {
				e.initErr = err
				return
			}
		}
		e.kw = keywords.New(engine)
	})
	return e.kw, e.initErr
}

// Extract runs the full pipeline over source: a file path string, a raw
// text string, a types.FileInput (an explicit path, no heuristic), or a
// types.DictInput. overrides adjusts any subset of
// the extraction options; unknown keys fail. When outputPath is
// non-empty the result is also written there as JSON, failing if the
// file already exists.
//
// Input problems surface as ValidationError or os.ErrNotExist
// unchanged; engine failures come back wrapped in an ExtractionError
// carrying the elapsed time.
func (e *Extractor) Extract(ctx context.Context, source any, overrides map[string]any, outputPath string) (*types.ExtractionResult, error) {
	opts, err := types.NewExtractionOptions(overrides)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	processed, err := input.Process(source)
	if err != nil {
		return nil, err
	}

	kw, err := e.extractor()
	if err != nil {
		return nil, err
	}

	raw, err := kw.Extract(ctx, processed.Text, opts)
	if err != nil {
		return nil, wrapExtraction(start, err)
	}

	weighted := weighting.Apply(raw, processed.Headers, opts.HeaderWeightFactor)
	final := format.Rank(weighted, opts)

	metadata := make(map[string]any, len(processed.Metadata)+2)
	for k, v := range processed.Metadata {
		metadata[k] = v
	}
	metadata["processing_time"] = time.Since(start).Seconds()
	metadata["engine"] = kw.EngineName()

	result := types.NewExtractionResult(final, keywords.Method, metadata, opts)

	if outputPath != "" {
		if err := output.WriteJSON(outputPath, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Extract runs the pipeline with the default engine configuration (a
// local Ollama server). Each call constructs a fresh engine; callers
// making repeated extractions should hold an Extractor instead.
func Extract(ctx context.Context, source any, overrides map[string]any, outputPath string) (*types.ExtractionResult, error) {
	return NewExtractor(types.EngineConfig{}).Extract(ctx, source, overrides, outputPath)
}

// wrapExtraction wraps backend failures with elapsed-time context while
// letting caller-input errors pass through unchanged.
func wrapExtraction(start time.Time, err error) error {
	if types.IsValidation(err) || errors.Is(err, os.ErrNotExist) {
		return err
	}
	return &types.ExtractionError{Elapsed: time.Since(start), Err: err}
}
