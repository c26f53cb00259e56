// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API tokens from a directory of plain-text files.
// Each regular file is one secret: the filename is the key and the
// trimmed contents are the value.
//
// Supported key files: huggingface-api-token, stapi-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmartin-sub/bookspine/pkg/types"
)

// Load reads all regular files in dir and returns a map of filename to
// trimmed contents. A missing directory is not an error; Load returns
// an empty map so runs without credentials proceed (the engines that
// need a token fail at construction instead). An unreadable directory
// is a ConfigurationError. Unreadable or empty files produce a warning
// on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, &types.ConfigurationError{
			Msg: fmt.Sprintf("reading secrets directory %s", dir),
			Err: err,
		}
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value == "" {
			fmt.Fprintf(os.Stderr, "warning: secret %s is empty, skipping\n", name)
			continue
		}
		secrets[name] = value
	}

	return secrets, nil
}
