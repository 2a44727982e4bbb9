package apiconfig

import "testing"

func TestLooksReal_FlagsGenericPaths(t *testing.T) {
	for _, path := range []string{"/items", "/item/{id}", "/generic", "/api/v1/resource", "/v2/items"} {
		cfg := Config{
			Provider: "X",
			BaseURL:  "https://api.x.com",
			Endpoints: []Endpoint{
				{Name: "real_one", Method: "GET", Path: "/real"},
				{Name: "suspect", Method: "GET", Path: path},
			},
		}
		if LooksReal(cfg) {
			t.Fatalf("path %q should trip the check", path)
		}
	}
}

func TestLooksReal_EmptySet(t *testing.T) {
	if LooksReal(Config{Provider: "X", BaseURL: "https://api.x.com"}) {
		t.Fatal("empty endpoint list should not look real")
	}
}

func TestLooksReal_DocumentedEndpoints(t *testing.T) {
	cfg := Config{
		Provider: "Slack",
		BaseURL:  "https://slack.com/api",
		Endpoints: []Endpoint{
			{Name: "chat.postMessage", Method: "POST", Path: "/chat.postMessage"},
			{Name: "conversations.list", Method: "GET", Path: "/conversations.list"},
		},
	}
	if !LooksReal(cfg) {
		t.Fatal("documented endpoints should pass")
	}
}
