// Package manifest derives the OAuth-orchestrator documents from a
// descriptor set: the integration manifest (sync/action classification)
// and the provider manifest (auth endpoints). Both derivers are pure.
package manifest

import (
	"github.com/goccy/go-yaml"

	"apismith/internal/apiconfig"
)

// IntegrationManifest is the nango-integration.yaml document: all syncs
// and actions for one integration id.
type IntegrationManifest struct {
	Integrations map[string]IntegrationEntry `yaml:"integrations"`
}

type IntegrationEntry struct {
	Syncs   map[string]SyncSpec   `yaml:"syncs,omitempty"`
	Actions map[string]ActionSpec `yaml:"actions,omitempty"`
}

// SyncSpec describes a recurring incremental poll of one read endpoint.
type SyncSpec struct {
	Runs        string `yaml:"runs"`
	SyncType    string `yaml:"sync_type"`
	Endpoint    string `yaml:"endpoint"`
	Output      string `yaml:"output"`
	Description string `yaml:"description,omitempty"`
}

// ActionSpec describes a one-shot invocation of one endpoint.
type ActionSpec struct {
	Endpoint    string `yaml:"endpoint"`
	Description string `yaml:"description,omitempty"`
}

const (
	syncCadence = "every 30 minutes"
	syncType    = "incremental"
)

// DeriveIntegration classifies every non-sentinel endpoint: GET without
// path parameters becomes a sync, everything else an action. When the
// set has endpoints but classification produced nothing (all filtered),
// one action is synthesized so the manifest is never empty for a
// non-empty set.
func DeriveIntegration(name string, cfg apiconfig.Config) IntegrationManifest {
	provider := cfg.Provider
	if provider == "" {
		provider = name
	}

	var entry IntegrationEntry
	for _, e := range cfg.Endpoints {
		if e.IsSentinel() {
			continue
		}
		if e.IsGet() && !apiconfig.ParsePath(e.Path).HasParams() {
			if entry.Syncs == nil {
				entry.Syncs = map[string]SyncSpec{}
			}
			entry.Syncs[apiconfig.Slug(e.Name)+"-sync"] = SyncSpec{
				Runs:        syncCadence,
				SyncType:    syncType,
				Endpoint:    e.Method + " " + e.Path,
				Output:      apiconfig.TypeName(provider) + apiconfig.TypeName(e.Name),
				Description: e.Description,
			}
			continue
		}
		if entry.Actions == nil {
			entry.Actions = map[string]ActionSpec{}
		}
		entry.Actions[apiconfig.Slug(e.Name)+"-action"] = ActionSpec{
			Endpoint:    e.Method + " " + e.Path,
			Description: e.Description,
		}
	}

	if len(entry.Syncs) == 0 && len(entry.Actions) == 0 && len(cfg.Endpoints) > 0 {
		e := firstSurviving(cfg.Endpoints)
		entry.Actions = map[string]ActionSpec{
			apiconfig.Slug(e.Name) + "-action": {
				Endpoint:    e.Method + " " + e.Path,
				Description: e.Description,
			},
		}
	}

	return IntegrationManifest{
		Integrations: map[string]IntegrationEntry{
			apiconfig.Slug(name): entry,
		},
	}
}

// firstSurviving prefers the first non-sentinel endpoint and falls back
// to the first raw one when everything was filtered.
func firstSurviving(endpoints []apiconfig.Endpoint) apiconfig.Endpoint {
	for _, e := range endpoints {
		if !e.IsSentinel() {
			return e
		}
	}
	return endpoints[0]
}

// EncodeYAML renders the nango-integration.yaml payload.
func (m IntegrationManifest) EncodeYAML() ([]byte, error) {
	return yaml.Marshal(m)
}
