package catalog

import (
	"testing"

	"apismith/internal/apiconfig"
	"apismith/internal/tester"
)

func TestLookup_CaseInsensitive(t *testing.T) {
	for _, name := range []string{"slack", "Slack", "SLACK", "  slack  "} {
		cfg, ok := Lookup(name)
		tester.True(t, ok, name)
		tester.Eq(t, cfg.Provider, "Slack", name)
		tester.Eq(t, cfg.BaseURL, "https://slack.com/api", name)
		tester.True(t, len(cfg.Endpoints) > 0, "curated entry has no endpoints")
	}
}

func TestLookup_UnknownName(t *testing.T) {
	_, ok := Lookup("definitely-not-curated")
	tester.False(t, ok, "unknown name must miss")
	_, ok = Lookup("")
	tester.False(t, ok, "empty name must miss")
}

func TestLookup_CopyIsIsolated(t *testing.T) {
	a, _ := Lookup("github")
	a.Endpoints[0] = apiconfig.Endpoint{Name: "mutated"}
	b, _ := Lookup("github")
	tester.True(t, b.Endpoints[0].Name != "mutated", "lookup must not expose the curated table to mutation")
}

func TestNames(t *testing.T) {
	names := Names()
	tester.True(t, len(names) >= 3, "expected at least three curated providers")
	for i := 1; i < len(names); i++ {
		tester.True(t, names[i-1] < names[i], "names not sorted")
	}
}
