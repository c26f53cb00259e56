// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output persists and renders extraction results. File output
// never overwrites: an existing destination is a distinct error so
// callers can tell "don't clobber" from "no permission".
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/mmartin-sub/bookspine/pkg/types"
)

// WriteJSON writes the result as indented JSON to path, creating
// intermediate directories as needed. An existing file fails with
// ErrOutputExists and leaves the file untouched.
func WriteJSON(path string, result *types.ExtractionResult) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s: %w", path, types.ErrOutputExists)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat output %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing output %s: %w", path, err)
	}
	return nil
}

// RenderJSON writes the result as indented JSON to w.
func RenderJSON(w io.Writer, result *types.ExtractionResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// RenderYAML writes the result as YAML to w.
func RenderYAML(w io.Writer, result *types.ExtractionResult) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// RenderText writes a human-readable listing: rank, score, phrase, and
// markers for phrases and header-boosted records.
func RenderText(w io.Writer, result *types.ExtractionResult) error {
	if _, err := fmt.Fprintf(w, "Extracted %d keywords (%s)\n", len(result.Keywords), result.ExtractionMethod); err != nil {
		return err
	}
	for i, kw := range result.Keywords {
		marker := ""
		if kw.IsPhrase {
			marker += " [phrase]"
		}
		if kw.FromHeader {
			marker += " [header]"
		}
		if _, err := fmt.Fprintf(w, "%3d. %.4f  %s%s\n", i+1, kw.RelevanceScore, kw.Phrase, marker); err != nil {
			return err
		}
	}
	return nil
}
