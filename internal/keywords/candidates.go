// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keywords

import (
	"regexp"
	"strings"
)

// Candidate n-gram bounds: single words up to three-word phrases.
const (
	minNgram = 1
	maxNgram = 3
)

// wordPattern matches tokens of at least two word characters, hyphens
// allowed inside.
var wordPattern = regexp.MustCompile(`\w[\w-]+`)

// tokenize lower-cases the text and splits it into word tokens.
func tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// candidates generates the deduplicated candidate phrases: word n-grams
// of length 1 to 3 over the token stream, skipping any n-gram that
// starts or ends with a stop word. Order follows first appearance in
// the text.
func candidates(tokens []string) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range tokens {
		for n := minNgram; n <= maxNgram && i+n <= len(tokens); n++ {
			gram := tokens[i : i+n]
			if englishStopWords[gram[0]] || englishStopWords[gram[n-1]] {
				continue
			}
			phrase := strings.Join(gram, " ")
			if seen[phrase] {
				continue
			}
			seen[phrase] = true
			out = append(out, phrase)
		}
	}
	return out
}

// phraseCleanup strips characters outside word characters, whitespace,
// and hyphens, then collapses whitespace runs. Returns "" when nothing
// survives.
var disallowedPhraseChars = regexp.MustCompile(`[^\w\s\-]`)
var whitespaceRuns = regexp.MustCompile(`\s+`)

func phraseCleanup(phrase string) string {
	cleaned := disallowedPhraseChars.ReplaceAllString(phrase, "")
	cleaned = whitespaceRuns.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}
