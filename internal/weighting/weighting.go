// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package weighting boosts the relevance of keywords that echo a
// detected document header. It runs exactly once per extraction;
// rerunning it over already-weighted records compounds the boost, so no
// re-entry point is exposed beyond Apply.
package weighting

import (
	"strings"

	"github.com/mmartin-sub/bookspine/internal/textproc"
	"github.com/mmartin-sub/bookspine/pkg/types"
)

// overlapThreshold is the fraction of a multi-word keyword's words that
// must appear in a header for a non-substring match.
const overlapThreshold = 0.7

// Apply returns a new keyword slice where every record matching a
// header carries a boosted score. Matching strength is the maximum over
// matching headers of header_weight(level) × factor, floored at 1.0 so
// a match never lowers a score; the result score is clamped at 1.0.
// Non-matching records pass through unchanged. The input slice is never
// mutated.
func Apply(keywords []types.Keyword, headers []types.Header, factor float64) []types.Keyword {
	if len(keywords) == 0 {
		return nil
	}
	out := make([]types.Keyword, len(keywords))
	if len(headers) == 0 {
		copy(out, keywords)
		return out
	}

	for i, kw := range keywords {
		weight := matchWeight(kw, headers, factor)
		if weight <= 0 {
			out[i] = kw
			continue
		}
		out[i] = kw.WithScore(kw.RelevanceScore*weight, true)
	}
	return out
}

// matchWeight returns the strongest applicable weight for the keyword,
// or 0 when no header matches.
func matchWeight(kw types.Keyword, headers []types.Header, factor float64) float64 {
	phrase := strings.ToLower(kw.Phrase)
	phraseWords := strings.Fields(phrase)

	best := 0.0
	for _, h := range headers {
		content := strings.ToLower(h.Content)
		if !matches(phrase, phraseWords, content) {
			continue
		}
		// A small factor must not turn a match into a penalty.
		w := textproc.HeaderWeight(h.Level) * factor
		if w < 1.0 {
			w = 1.0
		}
		if w > best {
			best = w
		}
	}
	return best
}

// matches reports header membership: a literal substring hit, or for
// multi-word keywords a word-set overlap of at least 70% of the
// keyword's words.
func matches(phrase string, phraseWords []string, headerContent string) bool {
	if strings.Contains(headerContent, phrase) {
		return true
	}
	if len(phraseWords) < 2 {
		return false
	}
	headerWords := make(map[string]bool)
	for _, w := range strings.Fields(headerContent) {
		headerWords[w] = true
	}
	hits := 0
	for _, w := range phraseWords {
		if headerWords[w] {
			hits++
		}
	}
	return float64(hits) >= overlapThreshold*float64(len(phraseWords))
}
