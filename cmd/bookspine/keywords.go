package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmartin-sub/bookspine/internal/output"
	"github.com/mmartin-sub/bookspine/pkg/kte"
	"github.com/mmartin-sub/bookspine/pkg/types"
)

const defaultUserAgent = "bookspine/0.1"

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Extract thematic keywords from book text",
	Long: `Keywords runs the extraction pipeline: text normalization, header
detection, embedding-backed candidate scoring, header weighting, and
ranking. Input comes from a file (--file), raw text (--text), or a JSON
object with a "text" key (--dict).`,
	RunE: runKeywords,
}

func init() {
	keywordsCmd.Flags().String("file", "", "input file (.txt, .md, .markdown, .pdf)")
	keywordsCmd.Flags().String("text", "", "raw input text")
	keywordsCmd.Flags().String("dict", "", `JSON object input: {"text": "...", "metadata": {...}}`)
	keywordsCmd.Flags().Int("max-keywords", 0, "maximum keywords to return (default 20)")
	keywordsCmd.Flags().Float64("min-relevance", -1, "minimum relevance score (default 0.1)")
	keywordsCmd.Flags().Float64("header-weight-factor", 0, "multiplier applied to header weights (default 1.5)")
	keywordsCmd.Flags().Bool("no-prefer-phrases", false, "rank purely by score instead of phrases-first")
	keywordsCmd.Flags().String("language", "", "stop-word language (default english)")
	keywordsCmd.Flags().String("format", "text", "output format: text, json, or yaml")
	keywordsCmd.Flags().String("output", "", "also write the result as JSON to this path (fails if it exists)")
	keywordsCmd.Flags().String("engine", "", "embedding engine: ollama, huggingface, stapi, or infinity")
	keywordsCmd.Flags().String("api-url", "", "embedding API endpoint")
	keywordsCmd.Flags().String("model", "", "embedding model identifier")
	keywordsCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")

	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(cmd *cobra.Command, args []string) error {
	source, err := keywordsSource(cmd)
	if err != nil {
		return err
	}

	overrides := map[string]any{}
	if cmd.Flags().Changed("max-keywords") {
		overrides["max_keywords"], _ = cmd.Flags().GetInt("max-keywords")
	}
	if cmd.Flags().Changed("min-relevance") {
		overrides["min_relevance"], _ = cmd.Flags().GetFloat64("min-relevance")
	}
	if cmd.Flags().Changed("header-weight-factor") {
		overrides["header_weight_factor"], _ = cmd.Flags().GetFloat64("header-weight-factor")
	}
	if noPhrases, _ := cmd.Flags().GetBool("no-prefer-phrases"); noPhrases {
		overrides["prefer_phrases"] = false
	}
	if cmd.Flags().Changed("language") {
		overrides["language"], _ = cmd.Flags().GetString("language")
	}

	extractor := kte.NewExtractor(engineConfig(cmd))

	outputPath, _ := cmd.Flags().GetString("output")
	result, err := extractor.Extract(cmd.Context(), source, overrides, outputPath)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "text":
		return output.RenderText(os.Stdout, result)
	case "json":
		return output.RenderJSON(os.Stdout, result)
	case "yaml":
		return output.RenderYAML(os.Stdout, result)
	default:
		return fmt.Errorf("unknown format %q (want text, json, or yaml)", format)
	}
}

// keywordsSource resolves the mutually exclusive input flags into the
// pipeline's source value.
func keywordsSource(cmd *cobra.Command) (any, error) {
	file, _ := cmd.Flags().GetString("file")
	text, _ := cmd.Flags().GetString("text")
	dict, _ := cmd.Flags().GetString("dict")

	set := 0
	for _, v := range []string{file, text, dict} {
		if v != "" {
			set++
		}
	}
	if set == 0 {
		return nil, fmt.Errorf("provide one of --file, --text, or --dict")
	}
	if set > 1 {
		return nil, fmt.Errorf("--file, --text, and --dict are mutually exclusive")
	}

	switch {
	case file != "":
		// Explicit flag: skip the path heuristic so a bad extension or
		// missing file reports as a file problem, not as raw text.
		return types.FileInput(file), nil
	case dict != "":
		var d types.DictInput
		if err := json.Unmarshal([]byte(dict), &d); err != nil {
			return nil, fmt.Errorf("parsing --dict: %w", err)
		}
		return d, nil
	default:
		return text, nil
	}
}

// engineConfig resolves engine settings: flag first, then config file,
// then loaded secrets for the auth token.
func engineConfig(cmd *cobra.Command) types.EngineConfig {
	engine, _ := cmd.Flags().GetString("engine")
	if engine == "" {
		engine = viper.GetString("engine.name")
	}
	apiURL, _ := cmd.Flags().GetString("api-url")
	if apiURL == "" {
		apiURL = viper.GetString("engine.api_url")
	}
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("engine.model")
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("engine.timeout")
	}

	var secretKey string
	switch types.EngineName(engine) {
	case types.EngineHuggingFace:
		secretKey = "huggingface-api-token"
	case types.EngineSTAPI:
		secretKey = "stapi-api-key"
	}
	token := viper.GetString("engine.auth_token")
	if secretKey != "" {
		token = secretDefault(secretKey, token)
	}

	return types.EngineConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		Engine:     types.EngineName(engine),
		APIURL:     apiURL,
		Model:      model,
		AuthToken:  token,
		MaxRetries: viper.GetInt("engine.max_retries"),
		CacheSize:  viper.GetInt("engine.cache_size"),
	}
}
