// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package embed

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mmartin-sub/bookspine/pkg/types"
)

// --- factory ---

func TestNewSelectsEngine(t *testing.T) {
	tests := []struct {
		name     string
		cfg      types.EngineConfig
		wantName string
		wantErr  bool
	}{
		{"default is ollama", types.EngineConfig{}, "ollama", false},
		{"explicit ollama", types.EngineConfig{Engine: types.EngineOllama}, "ollama", false},
		{"huggingface", types.EngineConfig{Engine: types.EngineHuggingFace, AuthToken: "tok"}, "huggingface", false},
		{"huggingface without token", types.EngineConfig{Engine: types.EngineHuggingFace}, "", true},
		{"stapi", types.EngineConfig{Engine: types.EngineSTAPI, APIURL: "http://localhost:8000"}, "stapi", false},
		{"infinity", types.EngineConfig{Engine: types.EngineInfinity, APIURL: "http://localhost:7997"}, "infinity", false},
		{"unknown engine", types.EngineConfig{Engine: "openai"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				var cfgErr *types.ConfigurationError
				if !errors.As(err, &cfgErr) {
					t.Errorf("error type = %T, want *types.ConfigurationError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if e.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", e.Name(), tt.wantName)
			}
		})
	}
}

func TestNewCachingDisabled(t *testing.T) {
	e, err := New(types.EngineConfig{Engine: types.EngineOllama, CacheSize: -1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := e.(*Cached); ok {
		t.Error("negative cache size should disable the cache wrapper")
	}
}

func TestNewCachingEnabledByDefault(t *testing.T) {
	e, err := New(types.EngineConfig{Engine: types.EngineOllama})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := e.(*Cached); !ok {
		t.Errorf("engine type = %T, want *Cached wrapper", e)
	}
}

// --- cache ---

// countingEmbedder records every batch it is asked to embed and returns
// a deterministic vector per text.
type countingEmbedder struct {
	batches [][]string
	fail    error
}

func (c *countingEmbedder) Name() string { return "counting" }

func (c *countingEmbedder) Embed(_ context.Context, texts []string) ([][]float64, error) {
	if c.fail != nil {
		return nil, c.fail
	}
	c.batches = append(c.batches, append([]string(nil), texts...))
	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vectors[i] = []float64{float64(len(text))}
	}
	return vectors, nil
}

func TestCachedEmbedsMissesOnly(t *testing.T) {
	inner := &countingEmbedder{}
	c, err := NewCached(inner, "m", 16)
	if err != nil {
		t.Fatalf("NewCached: %v", err)
	}

	ctx := context.Background()
	first, err := c.Embed(ctx, []string{"aa", "bbb"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(inner.batches) != 1 {
		t.Fatalf("inner batches = %d, want 1", len(inner.batches))
	}

	// Second call mixes cached texts with a new one; only the new one
	// reaches the engine.
	second, err := c.Embed(ctx, []string{"bbb", "cccc", "aa"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(inner.batches) != 2 {
		t.Fatalf("inner batches = %d, want 2", len(inner.batches))
	}
	if len(inner.batches[1]) != 1 || inner.batches[1][0] != "cccc" {
		t.Errorf("second batch = %v, want [cccc]", inner.batches[1])
	}

	// Vectors keep input order regardless of cache hits.
	if second[0][0] != first[1][0] {
		t.Errorf("cached vector for bbb = %v, want %v", second[0], first[1])
	}
	if second[1][0] != 4 {
		t.Errorf("vector for cccc = %v, want [4]", second[1])
	}
	if second[2][0] != first[0][0] {
		t.Errorf("cached vector for aa = %v, want %v", second[2], first[0])
	}
}

func TestCachedFullHitSkipsEngine(t *testing.T) {
	inner := &countingEmbedder{}
	c, err := NewCached(inner, "m", 16)
	if err != nil {
		t.Fatalf("NewCached: %v", err)
	}

	ctx := context.Background()
	if _, err := c.Embed(ctx, []string{"x", "y"}); err != nil {
		t.Fatalf("Embed: %v", err)
	}

	// Make the engine fail; a full cache hit must not touch it.
	inner.fail = fmt.Errorf("engine down")
	vectors, err := c.Embed(ctx, []string{"y", "x"})
	if err != nil {
		t.Fatalf("Embed on full hit: %v", err)
	}
	if len(vectors) != 2 {
		t.Fatalf("len(vectors) = %d, want 2", len(vectors))
	}
}

func TestCachedPropagatesEngineError(t *testing.T) {
	inner := &countingEmbedder{fail: fmt.Errorf("boom")}
	c, err := NewCached(inner, "m", 16)
	if err != nil {
		t.Fatalf("NewCached: %v", err)
	}
	_, err = c.Embed(context.Background(), []string{"new"})
	if err == nil {
		t.Fatal("expected engine error to propagate")
	}
}

func TestCachedName(t *testing.T) {
	c, err := NewCached(&countingEmbedder{}, "m", 0)
	if err != nil {
		t.Fatalf("NewCached: %v", err)
	}
	if c.Name() != "counting" {
		t.Errorf("Name() = %q, want counting", c.Name())
	}
}
