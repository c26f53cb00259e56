// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package keywords extracts ranked keyword candidates from normalized
// text. The procedure is the KeyBERT one: candidate n-grams scored by
// embedding cosine similarity to the whole document, diversified with
// maximal marginal relevance.
package keywords

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmartin-sub/bookspine/internal/embed"
	"github.com/mmartin-sub/bookspine/pkg/types"
)

// Extraction tuning shared with the options layer.
const (
	// diversity is the MMR trade-off between document relevance and
	// candidate novelty.
	diversity = 0.7
	// candidateCap bounds the over-fetch regardless of max_keywords.
	candidateCap = 50
	// minTextChars is the minimum trimmed length Extract accepts.
	minTextChars = 10
)

// Method names the extraction backend in result metadata.
const Method = "KeyBERT"

// Extractor scores candidate phrases with an embedding engine.
type Extractor struct {
	engine embed.Embedder
}

// New builds an Extractor on top of the given engine.
func New(engine embed.Embedder) *Extractor {
	return &Extractor{engine: engine}
}

// EngineName reports the underlying engine identifier.
func (e *Extractor) EngineName() string { return e.engine.Name() }

// Extract returns raw keyword candidates for the text, scored in [0,1]
// and ordered by MMR selection. The candidate count is
// min(2×opts.MaxKeywords, 50) so that downstream filtering has
// headroom. FromHeader is always false here; only the weighting stage
// sets it.
func (e *Extractor) Extract(ctx context.Context, text string, opts types.ExtractionOptions) ([]types.Keyword, error) {
	if len(strings.TrimSpace(text)) < minTextChars {
		return nil, types.Validationf("text too short for extraction: need at least %d characters", minTextChars)
	}

	tokens := tokenize(text)
	cands := candidates(tokens)
	if len(cands) == 0 {
		return nil, nil
	}

	// One batch: document first, candidates after.
	batch := make([]string, 0, len(cands)+1)
	batch = append(batch, text)
	batch = append(batch, cands...)

	vectors, err := e.engine.Embed(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("embedding %d candidates with %s: %w", len(cands), e.engine.Name(), err)
	}
	if len(vectors) != len(batch) {
		return nil, fmt.Errorf("engine %s returned %d vectors for %d texts", e.engine.Name(), len(vectors), len(batch))
	}

	docVec := vectors[0]
	candVecs := vectors[1:]
	docSims := make([]float64, len(cands))
	for i, vec := range candVecs {
		docSims[i] = clampScore(cosine(vec, docVec))
	}

	topN := 2 * opts.MaxKeywords
	if topN > candidateCap {
		topN = candidateCap
	}

	var out []types.Keyword
	for _, idx := range mmr(docSims, candVecs, topN, diversity) {
		phrase := phraseCleanup(cands[idx])
		if phrase == "" {
			continue
		}
		out = append(out, types.Keyword{
			Phrase:         phrase,
			RelevanceScore: docSims[idx],
			IsPhrase:       len(strings.Fields(phrase)) > 1,
		})
	}
	return out, nil
}
