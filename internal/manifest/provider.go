package manifest

import (
	"strings"

	"github.com/goccy/go-yaml"

	"apismith/internal/apiconfig"
)

// ProviderManifest is the nango-provider.yaml document, keyed by the
// provider slug.
type ProviderManifest map[string]ProviderSpec

// ProviderSpec carries the auth endpoints the orchestrator needs. The
// authorization and token URLs are synthesized from the base URL; they
// are placeholders to review, not verified OAuth endpoints.
type ProviderSpec struct {
	DisplayName      string   `yaml:"display_name"`
	Categories       []string `yaml:"categories"`
	AuthMode         string   `yaml:"auth_mode"`
	AuthorizationURL string   `yaml:"authorization_url"`
	TokenURL         string   `yaml:"token_url"`
	Docs             string   `yaml:"docs"`
	DefaultScopes    []string `yaml:"default_scopes"`
}

// DeriveProvider builds the single fixed-shape provider record for name.
func DeriveProvider(name string, cfg apiconfig.Config) ProviderManifest {
	display := strings.TrimSpace(cfg.Provider)
	if display == "" {
		display = name
	}
	base := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	slug := apiconfig.Slug(name)
	return ProviderManifest{
		slug: {
			DisplayName:      display,
			Categories:       []string{"productivity"},
			AuthMode:         "OAUTH2",
			AuthorizationURL: base + "/oauth/authorize",
			TokenURL:         base + "/oauth/token",
			Docs:             "https://docs." + slug + ".com",
			DefaultScopes:    []string{"read", "write"},
		},
	}
}

// EncodeYAML renders the nango-provider.yaml payload.
func (m ProviderManifest) EncodeYAML() ([]byte, error) {
	return yaml.Marshal(m)
}
