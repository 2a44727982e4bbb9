package manifest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"apismith/internal/apiconfig"
)

func sampleConfig() apiconfig.Config {
	return apiconfig.Config{
		Provider: "Slack",
		BaseURL:  "https://slack.com/api",
		Endpoints: []apiconfig.Endpoint{
			{Name: "conversations.list", Method: "GET", Path: "/conversations.list", Description: "List channels"},
			{Name: "users.info", Method: "GET", Path: "/users/{user_id}", Description: "Get a user"},
			{Name: "chat.postMessage", Method: "POST", Path: "/chat.postMessage", Description: "Send a message"},
			{Name: "error", Method: "GET", Path: "/error", Description: "sentinel"},
		},
	}
}

func TestDeriveIntegration_Classification(t *testing.T) {
	m := DeriveIntegration("slack", sampleConfig())

	entry, ok := m.Integrations["slack"]
	require.True(t, ok, "integration id must be the app slug")

	require.Len(t, entry.Syncs, 1)
	sync, ok := entry.Syncs["conversations-list-sync"]
	require.True(t, ok, "paramless GET becomes a sync keyed by slug")
	require.Equal(t, "incremental", sync.SyncType)
	require.Equal(t, "every 30 minutes", sync.Runs)
	require.Equal(t, "GET /conversations.list", sync.Endpoint)
	require.Equal(t, "SlackConversationsList", sync.Output)

	require.Len(t, entry.Actions, 2)
	require.Contains(t, entry.Actions, "users-info-action", "GET with path params is an action")
	require.Contains(t, entry.Actions, "chat-postmessage-action", "non-GET is an action")

	for key := range entry.Syncs {
		require.NotContains(t, key, "error")
	}
	for key := range entry.Actions {
		require.NotContains(t, key, "error")
	}
}

func TestDeriveIntegration_ClassificationIsShapeOnly(t *testing.T) {
	cfg := apiconfig.Config{
		Provider: "X",
		BaseURL:  "https://api.x.com",
		Endpoints: []apiconfig.Endpoint{
			{Name: "a", Method: "GET", Path: "/plain"},
			{Name: "b", Method: "GET", Path: "/with/{param}"},
			{Name: "c", Method: "DELETE", Path: "/plain"},
			{Name: "d", Method: "PUT", Path: "/with/{param}"},
		},
	}
	m := DeriveIntegration("x", cfg)
	entry := m.Integrations["x"]

	require.Len(t, entry.Syncs, 1)
	require.Contains(t, entry.Syncs, "a-sync")
	require.Len(t, entry.Actions, 3)
}

func TestDeriveIntegration_SentinelOnlySet(t *testing.T) {
	cfg := apiconfig.Config{
		Provider: "Broken",
		BaseURL:  "https://api.broken.com",
		Endpoints: []apiconfig.Endpoint{
			{Name: "error", Method: "GET", Path: "/error", Description: "resolution failed"},
		},
	}
	m := DeriveIntegration("broken", cfg)
	entry := m.Integrations["broken"]

	require.Empty(t, entry.Syncs)
	require.Len(t, entry.Actions, 1, "a non-empty set must never yield an empty manifest")
	require.Contains(t, entry.Actions, "error-action")
}

func TestDeriveIntegration_EmptySet(t *testing.T) {
	m := DeriveIntegration("empty", apiconfig.Config{Provider: "Empty", BaseURL: "https://api.empty.com"})
	entry := m.Integrations["empty"]
	require.Empty(t, entry.Syncs)
	require.Empty(t, entry.Actions)
}

func TestDeriveIntegration_NonEmptyGuarantee(t *testing.T) {
	cfg := sampleConfig()
	m := DeriveIntegration("slack", cfg)
	entry := m.Integrations["slack"]
	require.True(t, len(entry.Syncs) > 0 || len(entry.Actions) > 0)
}

func TestIntegrationManifest_EncodeYAML(t *testing.T) {
	cfg := apiconfig.Config{
		Provider: "Slack",
		BaseURL:  "https://slack.com/api",
		Endpoints: []apiconfig.Endpoint{
			{Name: "users.list", Method: "GET", Path: "/users.list", Description: "List users"},
		},
	}
	out, err := DeriveIntegration("slack", cfg).EncodeYAML()
	require.NoError(t, err)

	text := string(out)
	require.Contains(t, text, "integrations:")
	require.Contains(t, text, "slack:")
	require.Contains(t, text, "users-list-sync:")
	require.Contains(t, text, "sync_type: incremental")
	require.Contains(t, text, "runs: every 30 minutes")
	require.Contains(t, text, "output: SlackUsersList")
}
