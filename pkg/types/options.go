// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"sort"
	"strings"
)

// ExtractionOptions configures a keyword extraction run. Construct through
// DefaultExtractionOptions or NewExtractionOptions so the bounds below are
// enforced; an ExtractionOptions that fails Validate never reaches the
// pipeline.
type ExtractionOptions struct {
	// MaxKeywords caps the final result length (1-100).
	MaxKeywords int `json:"max_keywords" yaml:"max_keywords"`

	// MinRelevance drops keywords scoring below this threshold (0.0-1.0).
	MinRelevance float64 `json:"min_relevance" yaml:"min_relevance"`

	// HeaderWeightFactor scales the per-level header boost (>0.0, <=5.0).
	HeaderWeightFactor float64 `json:"header_weight_factor" yaml:"header_weight_factor"`

	// PreferPhrases ranks multi-word phrases ahead of single words.
	PreferPhrases bool `json:"prefer_phrases" yaml:"prefer_phrases"`

	// Language of the input text, lowercased on validation.
	Language string `json:"language" yaml:"language"`
}

// DefaultExtractionOptions returns the documented defaults.
func DefaultExtractionOptions() ExtractionOptions {
	return ExtractionOptions{
		MaxKeywords:        20,
		MinRelevance:       0.1,
		HeaderWeightFactor: 1.5,
		PreferPhrases:      true,
		Language:           "english",
	}
}

// NewExtractionOptions applies overrides on top of the defaults. Unknown
// keys and out-of-range values fail with a ValidationError, so an invalid
// options object never exists.
func NewExtractionOptions(overrides map[string]any) (ExtractionOptions, error) {
	opts := DefaultExtractionOptions()

	var unknown []string
	for key, val := range overrides {
		switch key {
		case "max_keywords":
			n, ok := toInt(val)
			if !ok {
				return ExtractionOptions{}, Validationf("max_keywords must be an integer, got %T", val)
			}
			opts.MaxKeywords = n
		case "min_relevance":
			f, ok := toFloat(val)
			if !ok {
				return ExtractionOptions{}, Validationf("min_relevance must be a number, got %T", val)
			}
			opts.MinRelevance = f
		case "header_weight_factor":
			f, ok := toFloat(val)
			if !ok {
				return ExtractionOptions{}, Validationf("header_weight_factor must be a number, got %T", val)
			}
			opts.HeaderWeightFactor = f
		case "prefer_phrases":
			b, ok := val.(bool)
			if !ok {
				return ExtractionOptions{}, Validationf("prefer_phrases must be a boolean, got %T", val)
			}
			opts.PreferPhrases = b
		case "language":
			s, ok := val.(string)
			if !ok {
				return ExtractionOptions{}, Validationf("language must be a string, got %T", val)
			}
			opts.Language = s
		default:
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return ExtractionOptions{}, Validationf("unknown option keys: %s", strings.Join(unknown, ", "))
	}

	if err := opts.Validate(); err != nil {
		return ExtractionOptions{}, err
	}
	return opts, nil
}

// Validate checks all field bounds and normalizes Language to lowercase.
func (o *ExtractionOptions) Validate() error {
	if o.MaxKeywords <= 0 {
		return Validationf("max_keywords must be positive, got %d", o.MaxKeywords)
	}
	if o.MaxKeywords > 100 {
		return Validationf("max_keywords cannot exceed 100, got %d", o.MaxKeywords)
	}
	if o.MinRelevance < 0.0 || o.MinRelevance > 1.0 {
		return Validationf("min_relevance must be between 0.0 and 1.0, got %g", o.MinRelevance)
	}
	if o.HeaderWeightFactor <= 0.0 {
		return Validationf("header_weight_factor must be positive, got %g", o.HeaderWeightFactor)
	}
	if o.HeaderWeightFactor > 5.0 {
		return Validationf("header_weight_factor cannot exceed 5.0, got %g", o.HeaderWeightFactor)
	}
	if strings.TrimSpace(o.Language) == "" {
		return Validationf("language cannot be empty")
	}
	o.Language = strings.ToLower(o.Language)
	return nil
}

// String renders the options the way run logs report them.
func (o ExtractionOptions) String() string {
	return fmt.Sprintf("ExtractionOptions(max_keywords=%d, min_relevance=%g, header_weight_factor=%g, prefer_phrases=%t, language=%q)",
		o.MaxKeywords, o.MinRelevance, o.HeaderWeightFactor, o.PreferPhrases, o.Language)
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		// JSON decoding yields float64 for all numbers; accept only
		// integral values here.
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
