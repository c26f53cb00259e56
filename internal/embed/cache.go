// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package embed

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultCacheSize bounds the vector cache when the configuration does
// not set a capacity.
const defaultCacheSize = 1024

// Cached wraps an Embedder with an in-process LRU of vectors keyed by
// engine, model, and text. Candidate phrases repeat heavily across runs
// over the same document, so the cache saves most remote calls after the
// first extraction. Cached is safe for concurrent use if the wrapped
// Embedder is.
type Cached struct {
	inner Embedder
	model string
	lru   *lru.Cache[string, []float64]
}

// NewCached wraps inner with a vector cache of the given capacity
// (defaulted when size is 0).
func NewCached(inner Embedder, model string, size int) (*Cached, error) {
	if size == 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, []float64](size)
	if err != nil {
		return nil, fmt.Errorf("creating embedding cache: %w", err)
	}
	return &Cached{inner: inner, model: model, lru: cache}, nil
}

// Name reports the wrapped engine's identifier.
func (c *Cached) Name() string { return c.inner.Name() }

// Embed serves what it can from the cache and embeds the misses in a
// single batch through the wrapped engine.
func (c *Cached) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, len(texts))

	var missTexts []string
	var missIdx []int
	for i, text := range texts {
		if vec, ok := c.lru.Get(c.key(text)); ok {
			vectors[i] = vec
			continue
		}
		missTexts = append(missTexts, text)
		missIdx = append(missIdx, i)
	}

	if len(missTexts) == 0 {
		slog.Debug("embedding cache hit for full batch", "engine", c.inner.Name(), "texts", len(texts))
		return vectors, nil
	}

	fresh, err := c.inner.Embed(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(missTexts) {
		return nil, fmt.Errorf("engine returned %d vectors for %d texts", len(fresh), len(missTexts))
	}

	for j, vec := range fresh {
		vectors[missIdx[j]] = vec
		c.lru.Add(c.key(missTexts[j]), vec)
	}
	return vectors, nil
}

// key hashes the text so long documents do not blow up cache memory.
func (c *Cached) key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%s|%s|%x", c.inner.Name(), c.model, sum[:16])
}
