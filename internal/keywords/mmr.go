// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keywords

import "math"

// cosine computes cosine similarity between two vectors, 0 for a zero
// vector or mismatched lengths.
func cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// clampScore confines a similarity to the valid relevance range.
func clampScore(s float64) float64 {
	return math.Min(1.0, math.Max(0.0, s))
}

// mmr selects up to topN candidate indices by maximal marginal
// relevance: relevance to the document traded against similarity to
// already-selected candidates, weighted by diversity. docSims holds
// each candidate's similarity to the document; candVecs the candidate
// embeddings.
func mmr(docSims []float64, candVecs [][]float64, topN int, diversity float64) []int {
	n := len(docSims)
	if n == 0 || topN <= 0 {
		return nil
	}
	if topN > n {
		topN = n
	}

	// Seed with the candidate closest to the document.
	best := 0
	for i := 1; i < n; i++ {
		if docSims[i] > docSims[best] {
			best = i
		}
	}

	selected := []int{best}
	remaining := make(map[int]bool, n-1)
	for i := 0; i < n; i++ {
		if i != best {
			remaining[i] = true
		}
	}

	// maxSimToSelected tracks, per remaining candidate, the highest
	// similarity to any selected candidate so far.
	maxSimToSelected := make([]float64, n)
	for i := range maxSimToSelected {
		maxSimToSelected[i] = math.Inf(-1)
	}
	updateFrom := func(idx int) {
		for i := 0; i < n; i++ {
			if !remaining[i] {
				continue
			}
			if sim := cosine(candVecs[i], candVecs[idx]); sim > maxSimToSelected[i] {
				maxSimToSelected[i] = sim
			}
		}
	}
	updateFrom(best)

	for len(selected) < topN {
		pick := -1
		pickScore := math.Inf(-1)
		// Scan in index order so ties resolve deterministically.
		for i := 0; i < n; i++ {
			if !remaining[i] {
				continue
			}
			score := (1-diversity)*docSims[i] - diversity*maxSimToSelected[i]
			if score > pickScore {
				pickScore = score
				pick = i
			}
		}
		if pick < 0 {
			break
		}
		selected = append(selected, pick)
		delete(remaining, pick)
		updateFrom(pick)
	}
	return selected
}
