// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DictInput is the structured input form: explicit text plus optional
// caller metadata. Callers use it to bypass the file-path heuristic
// applied to plain strings.
type DictInput struct {
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// FileInput marks a string as an explicit file path. It skips the
// path heuristic entirely, so an unsupported extension or a missing
// file reports as exactly that instead of being read as raw text.
type FileInput string
