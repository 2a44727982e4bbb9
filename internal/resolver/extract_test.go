package resolver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractConfig_PlainJSON(t *testing.T) {
	raw := `{"provider":"Linear","base_url":"https://api.linear.app","endpoints":[{"name":"list_issues","method":"GET","path":"/issues","description":"List issues"}]}`
	cfg, err := extractConfig(raw)
	require.NoError(t, err)
	require.Equal(t, "Linear", cfg.Provider)
	require.Len(t, cfg.Endpoints, 1)
}

func TestExtractConfig_FencedJSON(t *testing.T) {
	raw := "```json\n{\"provider\":\"X\",\"base_url\":\"https://api.x.com\",\"endpoints\":[]}\n```"
	cfg, err := extractConfig(raw)
	require.NoError(t, err)
	require.Equal(t, "X", cfg.Provider)
	require.NotNil(t, cfg.Endpoints)
	require.Empty(t, cfg.Endpoints)
}

func TestExtractConfig_ProseAroundJSON(t *testing.T) {
	raw := "Sure! Here is the configuration you asked for:\n\n" +
		`{"provider":"X","base_url":"https://api.x.com","endpoints":[{"name":"a","method":"GET","path":"/a","description":""}]}` +
		"\n\nLet me know if you need anything else."
	cfg, err := extractConfig(raw)
	require.NoError(t, err)
	require.Equal(t, "https://api.x.com", cfg.BaseURL)
}

func TestExtractConfig_NoObject(t *testing.T) {
	_, err := extractConfig("I could not find any API documentation, sorry.")
	require.ErrorIs(t, err, ErrNoJSON)
}

func TestExtractConfig_MalformedJSON(t *testing.T) {
	_, err := extractConfig(`{"provider": "X", "base_url": }`)
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrNoJSON))
}

func TestExtractConfig_SchemaViolations(t *testing.T) {
	for _, raw := range []string{
		`{"base_url":"https://api.x.com","endpoints":[]}`,
		`{"provider":"X","endpoints":[]}`,
		`{"provider":"X","base_url":"https://api.x.com"}`,
		`{"provider":"  ","base_url":"https://api.x.com","endpoints":[]}`,
	} {
		_, err := extractConfig(raw)
		require.ErrorIs(t, err, ErrSchema, "raw: %s", raw)
	}
}
