package resolver

import (
	"errors"
	"fmt"
	"strings"

	"apismith/internal/apiconfig"
	"apismith/internal/util/jsonutil"
)

var (
	ErrNoJSON = errors.New("resolver: no JSON object in response")
	ErrSchema = errors.New("resolver: response lacks provider, base_url or endpoints")
)

// stripFences removes Markdown code fence markers anywhere in the text.
// Models add them despite instructions not to.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// extractConfig digs the JSON object out of raw model output: fences are
// stripped, then everything outside the first "{" and the last "}" is
// discarded before parsing. The result must carry a non-empty provider,
// a non-empty base_url and an array-valued endpoints field.
func extractConfig(raw string) (apiconfig.Config, error) {
	txt := stripFences(raw)
	start := strings.Index(txt, "{")
	end := strings.LastIndex(txt, "}")
	if start < 0 || end <= start {
		return apiconfig.Config{}, ErrNoJSON
	}
	var cfg apiconfig.Config
	if err := jsonutil.UnmarshalFlex([]byte(txt[start:end+1]), &cfg); err != nil {
		return apiconfig.Config{}, fmt.Errorf("resolver: parse response: %w", err)
	}
	if strings.TrimSpace(cfg.Provider) == "" || strings.TrimSpace(cfg.BaseURL) == "" || cfg.Endpoints == nil {
		return apiconfig.Config{}, ErrSchema
	}
	return cfg, nil
}
