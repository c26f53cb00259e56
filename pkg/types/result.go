// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"sort"
	"time"
)

// ExtractionResult is the final output aggregate of one extraction run.
// It owns its keyword list and the options snapshot; mutating the
// caller's options after the call does not affect a completed result.
type ExtractionResult struct {
	// Keywords in ranking order; the sequence order is the rank.
	// An empty list means "no keywords found", not an error.
	Keywords []Keyword `json:"keywords" yaml:"keywords"`

	// ExtractionMethod identifies the keyword-extraction backend.
	ExtractionMethod string `json:"extraction_method" yaml:"extraction_method"`

	// Timestamp is the ISO-8601 generation time.
	Timestamp string `json:"timestamp" yaml:"timestamp"`

	// Metadata carries free-form run information: processing_time,
	// header_count, input_type and source-specific fields.
	Metadata map[string]any `json:"metadata" yaml:"metadata"`

	// OptionsUsed is a snapshot of the options the run was configured with.
	OptionsUsed ExtractionOptions `json:"options_used" yaml:"options_used"`
}

// NewExtractionResult assembles a result, stamping the timestamp and
// copying the keyword list and metadata so the caller cannot alias them.
func NewExtractionResult(keywords []Keyword, method string, metadata map[string]any, opts ExtractionOptions) *ExtractionResult {
	kws := make([]Keyword, len(keywords))
	copy(kws, keywords)

	md := make(map[string]any, len(metadata))
	for k, v := range metadata {
		md[k] = v
	}

	return &ExtractionResult{
		Keywords:         kws,
		ExtractionMethod: method,
		Timestamp:        time.Now().Format(time.RFC3339),
		Metadata:         md,
		OptionsUsed:      opts,
	}
}

// TopKeywords returns the n highest-scoring keywords. A non-positive n
// returns all keywords. The receiver's ordering is not modified.
func (r *ExtractionResult) TopKeywords(n int) []Keyword {
	sorted := make([]Keyword, len(r.Keywords))
	copy(sorted, r.Keywords)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RelevanceScore > sorted[j].RelevanceScore
	})
	if n <= 0 || n > len(sorted) {
		return sorted
	}
	return sorted[:n]
}

// PhrasesOnly returns the multi-word keywords.
func (r *ExtractionResult) PhrasesOnly() []Keyword {
	var out []Keyword
	for _, k := range r.Keywords {
		if k.IsPhrase {
			out = append(out, k)
		}
	}
	return out
}

// HeaderKeywords returns the keywords boosted by header weighting.
func (r *ExtractionResult) HeaderKeywords() []Keyword {
	var out []Keyword
	for _, k := range r.Keywords {
		if k.FromHeader {
			out = append(out, k)
		}
	}
	return out
}

// AverageRelevance returns the mean relevance score, or 0.0 when the
// keyword list is empty.
func (r *ExtractionResult) AverageRelevance() float64 {
	if len(r.Keywords) == 0 {
		return 0.0
	}
	total := 0.0
	for _, k := range r.Keywords {
		total += k.RelevanceScore
	}
	return total / float64(len(r.Keywords))
}

// String summarizes the result for logs.
func (r *ExtractionResult) String() string {
	return fmt.Sprintf("ExtractionResult(keywords=%d, phrases=%d, header_keywords=%d, avg_score=%.3f, method=%q)",
		len(r.Keywords), len(r.PhrasesOnly()), len(r.HeaderKeywords()), r.AverageRelevance(), r.ExtractionMethod)
}
