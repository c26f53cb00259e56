// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package input turns an arbitrary extraction source into normalized
// text plus metadata. A source is a file path, a raw text string, or a
// DictInput; plain strings are classified by a path heuristic so that
// ordinary text never triggers a filesystem probe.
package input

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mmartin-sub/bookspine/internal/textproc"
	"github.com/mmartin-sub/bookspine/pkg/types"
)

// minContentChars is the minimum number of non-whitespace characters a
// source must yield after extraction.
const minContentChars = 10

// maxPathLen bounds the file-path heuristic: anything longer is raw
// text no matter how it ends.
const maxPathLen = 200

// Processed is the handler's output bundle: normalized text, the
// headers detected in the raw source, and free-form metadata describing
// the source.
type Processed struct {
	Text     string
	Headers  []types.Header
	Metadata map[string]any
}

// Process classifies source and routes it to the matching handler.
// Strings are either file paths (per LooksLikeFilePath) or raw text;
// FileInput is always a file path; DictInput carries explicit text plus
// caller metadata. Any other type fails with a ValidationError.
func Process(source any) (*Processed, error) {
	switch s := source.(type) {
	case string:
		if LooksLikeFilePath(s) {
			return processFile(s)
		}
		return processText(s, "text", nil)
	case types.FileInput:
		return processFile(string(s))
	case types.DictInput:
		if s.Text == "" {
			return nil, types.Validationf("dict input is missing the text key")
		}
		return processText(s.Text, "dict", s.Metadata)
	case *types.DictInput:
		if s == nil || s.Text == "" {
			return nil, types.Validationf("dict input is missing the text key")
		}
		return processText(s.Text, "dict", s.Metadata)
	default:
		return nil, types.Validationf("unsupported input type %T", source)
	}
}

// LooksLikeFilePath reports whether a plain string should be treated as
// a file path: a supported extension, no newline, and at most 200
// characters. The heuristic can misclassify short raw text ending in a
// supported extension; callers needing certainty use DictInput.
func LooksLikeFilePath(s string) bool {
	if len(s) > maxPathLen || strings.ContainsRune(s, '\n') {
		return false
	}
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(s)))
	switch ext {
	case ".txt", ".md", ".markdown", ".pdf":
		return true
	}
	return false
}

// processFile extracts text from the file and processes it like raw
// text, with the extraction metadata merged in.
func processFile(path string) (*Processed, error) {
	extracted, err := ExtractFile(path)
	if err != nil {
		return nil, err
	}
	p, err := processText(extracted.Text, "file", extracted.Metadata)
	if err != nil {
		return nil, err
	}
	// Markdown keeps its heading markers only in the raw source; the
	// converted text has them stripped, so detect on the source.
	if extracted.HeaderSource != extracted.Text {
		p.Headers = textproc.DetectHeaders(extracted.HeaderSource)
		p.Metadata["header_count"] = len(p.Headers)
	}
	return p, nil
}

// processText normalizes text, detects headers on the raw form, and
// assembles the metadata map. extra entries are merged first so the
// handler's own fields win on collision.
func processText(text, inputType string, extra map[string]any) (*Processed, error) {
	headers := textproc.DetectHeaders(text)

	normalized, err := textproc.Normalize(text)
	if err != nil {
		return nil, err
	}
	if countNonWhitespace(normalized) < minContentChars {
		return nil, types.Validationf("input text too short: need at least %d non-whitespace characters", minContentChars)
	}

	metadata := make(map[string]any, len(extra)+4)
	for k, v := range extra {
		metadata[k] = v
	}
	metadata["input_type"] = inputType
	metadata["original_length"] = utf8.RuneCountInString(text)
	metadata["normalized_length"] = utf8.RuneCountInString(normalized)
	metadata["header_count"] = len(headers)

	return &Processed{Text: normalized, Headers: headers, Metadata: metadata}, nil
}

func countNonWhitespace(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// Extracted is the output of file-text extraction. HeaderSource is the
// text header detection should scan; it differs from Text only for
// markdown, where conversion strips the heading markers.
type Extracted struct {
	Text         string
	HeaderSource string
	Metadata     map[string]any
}

// ExtractFile reads the file at path and extracts plain text according
// to its extension. Markdown is converted and tag-stripped, plain text
// is read as-is, PDFs are extracted page by page. A missing file
// surfaces as os.ErrNotExist; an unsupported extension is a
// ValidationError.
func ExtractFile(path string) (*Extracted, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt":
		return extractPlainText(path)
	case ".md", ".markdown":
		return extractMarkdown(path)
	case ".pdf":
		return extractPDF(path)
	default:
		return nil, types.Validationf("unsupported file extension %q", ext)
	}
}

func fileMetadata(path string) map[string]any {
	return map[string]any{
		"file_path":      path,
		"file_extension": strings.ToLower(filepath.Ext(path)),
		"file_name":      filepath.Base(path),
	}
}

func wrapReadError(path string, err error) error {
	return fmt.Errorf("reading %s: %w", path, err)
}
