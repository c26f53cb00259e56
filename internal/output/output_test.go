// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmartin-sub/bookspine/pkg/types"
)

func sampleResult() *types.ExtractionResult {
	return types.NewExtractionResult(
		[]types.Keyword{
			{Phrase: "machine learning", RelevanceScore: 0.91, IsPhrase: true, FromHeader: true},
			{Phrase: "data", RelevanceScore: 0.55},
		},
		"KeyBERT",
		map[string]any{"input_type": "text", "header_count": 1},
		types.DefaultExtractionOptions(),
	)
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "result.json")
	if err := WriteJSON(path, sampleResult()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, key := range []string{"keywords", "extraction_method", "timestamp", "metadata", "options_used"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("output missing top-level key %q", key)
		}
	}
	kws, ok := decoded["keywords"].([]any)
	if !ok || len(kws) != 2 {
		t.Fatalf("keywords = %v, want array of 2", decoded["keywords"])
	}
	first, _ := kws[0].(map[string]any)
	for _, key := range []string{"phrase", "relevance_score", "is_phrase", "from_header"} {
		if _, ok := first[key]; !ok {
			t.Errorf("keyword record missing %q", key)
		}
	}
}

func TestWriteJSONRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	original := []byte("untouched")
	if err := os.WriteFile(path, original, 0o644); err != nil {
		t.Fatal(err)
	}

	err := WriteJSON(path, sampleResult())
	if !errors.Is(err, types.ErrOutputExists) {
		t.Fatalf("error = %v, want ErrOutputExists", err)
	}

	// Existing content must be unchanged.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, original) {
		t.Errorf("file content changed: %q", data)
	}
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderText(&buf, sampleResult()); err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "machine learning") {
		t.Errorf("output missing keyword: %q", out)
	}
	if !strings.Contains(out, "[phrase]") || !strings.Contains(out, "[header]") {
		t.Errorf("output missing markers: %q", out)
	}
	if !strings.Contains(out, "KeyBERT") {
		t.Errorf("output missing method: %q", out)
	}
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderYAML(&buf, sampleResult()); err != nil {
		t.Fatalf("RenderYAML: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "machine learning") || !strings.Contains(out, "keywords:") {
		t.Errorf("unexpected yaml: %q", out)
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderJSON(&buf, sampleResult()); err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
}
