// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// HeaderType identifies how a header line was recognized.
type HeaderType string

const (
	HeaderMarkdown HeaderType = "markdown"
	HeaderHTML     HeaderType = "html"
	HeaderPlain    HeaderType = "plain"
)

// Header is a structurally marked line detected during preprocessing.
// Headers are produced once per input and immutable thereafter.
type Header struct {
	// Content is the trimmed header text.
	Content string `json:"content" yaml:"content"`

	// Level is the prominence, 1 (most prominent) through 6.
	Level int `json:"level" yaml:"level"`

	// Type records which detector matched the line.
	Type HeaderType `json:"type" yaml:"type"`

	// SourceLine is the zero-based line number in the normalized text.
	SourceLine int `json:"source_line" yaml:"source_line"`
}

// Keyword is one candidate or final keyword with its relevance score.
// Score adjustments derive a new Keyword via WithScore rather than
// mutating in place, preserving the original record as an audit trail.
type Keyword struct {
	// Phrase is the extracted keyword text, never empty.
	Phrase string `json:"phrase" yaml:"phrase"`

	// RelevanceScore is the estimated importance in [0,1].
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`

	// IsPhrase is true when Phrase contains two or more words.
	IsPhrase bool `json:"is_phrase" yaml:"is_phrase"`

	// FromHeader is set by the header weighting stage, never by extraction.
	FromHeader bool `json:"from_header" yaml:"from_header"`
}

// Validate checks the record invariants.
func (k Keyword) Validate() error {
	if strings.TrimSpace(k.Phrase) == "" {
		return Validationf("keyword phrase cannot be empty")
	}
	if k.RelevanceScore < 0.0 || k.RelevanceScore > 1.0 {
		return Validationf("relevance score must be between 0.0 and 1.0, got %g", k.RelevanceScore)
	}
	return nil
}

// WithScore returns a copy of the keyword with the score replaced and
// clamped to [0,1], and fromHeader recorded.
func (k Keyword) WithScore(score float64, fromHeader bool) Keyword {
	if score > 1.0 {
		score = 1.0
	}
	if score < 0.0 {
		score = 0.0
	}
	return Keyword{
		Phrase:         k.Phrase,
		RelevanceScore: score,
		IsPhrase:       k.IsPhrase,
		FromHeader:     fromHeader,
	}
}

// String renders a keyword the way console output lists them.
func (k Keyword) String() string {
	kind := "keyword"
	if k.IsPhrase {
		kind = "phrase"
	}
	header := ""
	if k.FromHeader {
		header = " (from header)"
	}
	return fmt.Sprintf("%s (%.3f) - %s%s", k.Phrase, k.RelevanceScore, kind, header)
}
