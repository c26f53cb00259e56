// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textproc normalizes raw text and detects structural headers:
// markdown headings, single-line HTML headings, and heuristically
// recognized ALL-CAPS or Title-Case lines.
package textproc

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mmartin-sub/bookspine/pkg/types"
)

var (
	disallowedChars  = regexp.MustCompile(`[^\w\s\-.,!?;:()]`)
	horizontalSpaces = regexp.MustCompile(`[ \t]+`)
	spacedLineBreaks = regexp.MustCompile(`[ \t]*\n[ \t]*`)
	lineBreakRuns    = regexp.MustCompile(`\n{2,}`)

	markdownHeader = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	htmlHeader     = regexp.MustCompile(`^<h([1-6])[^>]*>(.+?)</h([1-6])>`)

	wordPattern = regexp.MustCompile(`\w+`)
)

// titleCaseStopWords is the closed set of words allowed lowercase inside
// a Title-Case header line.
var titleCaseStopWords = map[string]bool{
	"a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true,
	"of": true, "with": true, "by": true,
}

// headerTermStopWords is the fixed English stop-word list applied when
// collecting weighting terms from header content.
var headerTermStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true, "is": true,
	"are": true, "was": true, "were": true, "be": true, "been": true,
	"being": true, "have": true, "has": true, "had": true, "do": true,
	"does": true, "did": true, "will": true, "would": true,
	"could": true, "should": true, "may": true, "might": true,
	"can": true, "this": true, "that": true, "these": true, "those": true,
}

// Normalize collapses horizontal whitespace runs to single spaces, strips
// characters outside word characters, whitespace and basic punctuation,
// reduces blank-line runs to one blank line, and trims the ends. It is
// idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", types.Validationf("text cannot be empty")
	}

	text = disallowedChars.ReplaceAllString(text, "")
	text = horizontalSpaces.ReplaceAllString(text, " ")
	text = spacedLineBreaks.ReplaceAllString(text, "\n")
	text = lineBreakRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text), nil
}

// DetectHeaders scans text line by line and returns the headers in line
// order. Headers are never multi-line; for each non-blank line the
// detectors apply in precedence order (markdown, HTML, ALL-CAPS,
// Title-Case) and the first match wins.
func DetectHeaders(text string) []types.Header {
	var headers []types.Header
	for lineNum, line := range strings.Split(text, "\n") {
		if h, ok := checkHeaderLine(line, lineNum); ok {
			headers = append(headers, h)
		}
	}
	return headers
}

func checkHeaderLine(line string, lineNum int) (types.Header, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return types.Header{}, false
	}

	if m := markdownHeader.FindStringSubmatch(line); m != nil {
		return types.Header{
			Content:    strings.TrimSpace(m[2]),
			Level:      len(m[1]),
			Type:       types.HeaderMarkdown,
			SourceLine: lineNum,
		}, true
	}

	if m := htmlHeader.FindStringSubmatch(line); m != nil && m[1] == m[3] {
		return types.Header{
			Content:    strings.TrimSpace(m[2]),
			Level:      int(m[1][0] - '0'),
			Type:       types.HeaderHTML,
			SourceLine: lineNum,
		}, true
	}

	words := strings.Fields(line)

	if isAllCaps(line) && len(words) <= 5 {
		return types.Header{
			Content:    line,
			Level:      1,
			Type:       types.HeaderPlain,
			SourceLine: lineNum,
		}, true
	}

	if isTitleCase(words) && len(words) <= 8 {
		return types.Header{
			Content:    line,
			Level:      2,
			Type:       types.HeaderPlain,
			SourceLine: lineNum,
		}, true
	}

	return types.Header{}, false
}

// isAllCaps reports whether the line contains at least one letter and no
// lowercase letters.
func isAllCaps(line string) bool {
	hasLetter := false
	for _, r := range line {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// isTitleCase reports whether every content word is capitalized, allowing
// the closed stop-word set to stay lowercase.
func isTitleCase(words []string) bool {
	if len(words) == 0 {
		return false
	}
	if !startsUpper(words[0]) {
		return false
	}
	for _, word := range words[1:] {
		if titleCaseStopWords[strings.ToLower(word)] {
			// Articles and prepositions must stay lowercase.
			if startsUpper(word) {
				return false
			}
			continue
		}
		if !startsUpper(word) {
			return false
		}
	}
	return true
}

func startsUpper(word string) bool {
	for _, r := range word {
		return unicode.IsUpper(r)
	}
	return false
}

// ExtractHeaderTerms lower-cases header content, tokenizes on word
// boundaries, removes stop words, keeps tokens longer than two
// characters, and deduplicates.
func ExtractHeaderTerms(headers []types.Header) map[string]bool {
	terms := make(map[string]bool)
	for _, h := range headers {
		for _, word := range wordPattern.FindAllString(strings.ToLower(h.Content), -1) {
			if headerTermStopWords[word] || len(word) <= 2 {
				continue
			}
			terms[word] = true
		}
	}
	return terms
}

// HeaderWeight returns the base boost for a header level, before the
// caller's configured weight factor is applied. More prominent headers
// (lower levels) weigh more.
func HeaderWeight(level int) float64 {
	switch level {
	case 1:
		return 2.0
	case 2:
		return 1.5
	case 3:
		return 1.3
	case 4:
		return 1.2
	case 5:
		return 1.1
	default:
		return 1.0
	}
}
