// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format ranks, filters, and caps the weighted keyword pool
// into the final output sequence.
package format

import (
	"sort"

	"github.com/mmartin-sub/bookspine/pkg/types"
)

// Rank orders keywords for output. With prefer_phrases set, phrases
// form a hard partition ahead of single words; each partition is sorted
// by score internally and the partitions never interleave, regardless
// of relative scores. Records below min_relevance are dropped and the
// result is capped at max_keywords.
func Rank(keywords []types.Keyword, opts types.ExtractionOptions) []types.Keyword {
	ranked := order(keywords, opts.PreferPhrases)

	out := make([]types.Keyword, 0, len(ranked))
	for _, kw := range ranked {
		if kw.RelevanceScore < opts.MinRelevance {
			continue
		}
		out = append(out, kw)
		if len(out) == opts.MaxKeywords {
			break
		}
	}
	return out
}

func order(keywords []types.Keyword, preferPhrases bool) []types.Keyword {
	if !preferPhrases {
		return sortByScore(keywords)
	}

	var phrases, singles []types.Keyword
	for _, kw := range keywords {
		if kw.IsPhrase {
			phrases = append(phrases, kw)
		} else {
			singles = append(singles, kw)
		}
	}
	out := sortByScore(phrases)
	return append(out, sortByScore(singles)...)
}

// sortByScore returns a descending-by-score copy, stable so equal
// scores keep their incoming order.
func sortByScore(keywords []types.Keyword) []types.Keyword {
	out := make([]types.Keyword, len(keywords))
	copy(out, keywords)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RelevanceScore > out[j].RelevanceScore
	})
	return out
}
