// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by the remote embedding engines.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "bookspine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// EngineName selects the embedding backend.
type EngineName string

const (
	// EngineOllama is the local engine: a model served by a localhost
	// Ollama instance.
	EngineOllama EngineName = "ollama"

	// EngineHuggingFace is the Hugging Face inference API (bearer-token auth).
	EngineHuggingFace EngineName = "huggingface"

	// EngineSTAPI is a sentence-transformers API server (OpenAI-style payload).
	EngineSTAPI EngineName = "stapi"

	// EngineInfinity is an Infinity embedding server (plain {input} payload).
	EngineInfinity EngineName = "infinity"
)

// EngineConfig holds settings for the embedding engine behind the
// keyword extractor. The engine is selected once, at construction.
type EngineConfig struct {
	HTTPConfig `yaml:",inline"`

	// Engine selects the backend variant.
	Engine EngineName `json:"engine" yaml:"engine"`

	// APIURL is the endpoint for remote engines. Ignored by ollama when
	// empty (the default localhost URL applies).
	APIURL string `json:"api_url,omitempty" yaml:"api_url,omitempty"`

	// Model is the embedding model identifier.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`

	// AuthToken authenticates against engines that require it
	// (huggingface). Loaded from secrets when not set explicitly.
	AuthToken string `json:"auth_token,omitempty" yaml:"auth_token,omitempty"`

	// MaxRetries is the number of retry attempts on rate-limited calls
	// (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// CacheSize is the capacity of the in-process embedding cache
	// (default 1024 entries; 0 uses the default, negative disables).
	CacheSize int `json:"cache_size" yaml:"cache_size"`
}

// SpineConfig holds settings for the spine-width calculator.
type SpineConfig struct {
	// ConfigDir overrides the embedded printer-service configurations
	// with JSON files from a directory.
	ConfigDir string `json:"config_dir,omitempty" yaml:"config_dir,omitempty"`

	// DefaultService is the printer service used when none is named.
	DefaultService string `json:"default_service" yaml:"default_service"`

	// DPI is the dots-per-inch used for pixel conversion (default 300).
	DPI int `json:"dpi" yaml:"dpi"`
}

// PipelineConfig groups all tool configurations.
type PipelineConfig struct {
	Engine EngineConfig `json:"engine" yaml:"engine"`
	Spine  SpineConfig  `json:"spine" yaml:"spine"`
}
