package jsgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apismith/internal/apiconfig"
)

func TestEmitClientModuleClassAndConstructor(t *testing.T) {
	cfg := apiconfig.Config{
		Provider: "Mystery App",
		BaseURL:  "https://api.mystery-app.com",
	}
	js := EmitClientModule("mystery-app", cfg)

	assert.Contains(t, js, "class MysteryAppAPI {")
	assert.Contains(t, js, `constructor(apiKey, baseUrl = "https://api.mystery-app.com")`)
	assert.Contains(t, js, "module.exports = MysteryAppAPI;")
	assert.Contains(t, js, "async request(method, path, body = null, query = null)")
}

func TestEmitClientModuleWriteEndpoint(t *testing.T) {
	cfg := apiconfig.Config{
		Provider: "Slack",
		BaseURL:  "https://slack.com/api",
		Endpoints: []apiconfig.Endpoint{
			{Name: "auth.test", Method: "POST", Path: "/auth.test", Description: "Check auth"},
		},
	}
	js := EmitClientModule("slack", cfg)

	assert.Contains(t, js, "async authtest(data = {}) {")
	assert.Contains(t, js, `return this.request("POST", "/auth.test", data);`)
	assert.Contains(t, js, "// Check auth")
	assert.NotContains(t, js, "params = null, data")
}

func TestEmitClientModulePathParams(t *testing.T) {
	cfg := apiconfig.Config{
		Provider: "GitHub",
		BaseURL:  "https://api.github.com",
		Endpoints: []apiconfig.Endpoint{
			{Name: "get.issue", Method: "GET", Path: "/repos/{owner}/{repo}/issues/{issue_number}"},
			{Name: "update.issue", Method: "PATCH", Path: "/repos/{owner}/{repo}/issues/{issue_number}"},
			{Name: "delete.comment", Method: "DELETE", Path: "/comments/{comment_id}"},
		},
	}
	js := EmitClientModule("github", cfg)

	assert.Contains(t, js, "async getissue(owner, repo, issue_number, params = null) {")
	assert.Contains(t, js, "return this.request(\"GET\", `/repos/${owner}/${repo}/issues/${issue_number}`, null, params);")

	assert.Contains(t, js, "async updateissue(owner, repo, issue_number, data = {}) {")
	assert.Contains(t, js, "return this.request(\"PATCH\", `/repos/${owner}/${repo}/issues/${issue_number}`, data);")

	// DELETE carries neither a body nor query params.
	assert.Contains(t, js, "async deletecomment(comment_id) {")
	assert.Contains(t, js, "return this.request(\"DELETE\", `/comments/${comment_id}`);")
}

func TestEmitClientModuleGetWithoutParams(t *testing.T) {
	cfg := apiconfig.Config{
		Provider: "Slack",
		BaseURL:  "https://slack.com/api",
		Endpoints: []apiconfig.Endpoint{
			{Name: "users.list", Method: "GET", Path: "/users.list"},
		},
	}
	js := EmitClientModule("slack", cfg)

	assert.Contains(t, js, "async userslist(params = null) {")
	assert.Contains(t, js, `return this.request("GET", "/users.list", null, params);`)
}

func TestEmitClientModuleShadowsDuplicateNames(t *testing.T) {
	cfg := apiconfig.Config{
		Provider: "Acme",
		BaseURL:  "https://api.acme.com",
		Endpoints: []apiconfig.Endpoint{
			{Name: "list.items", Method: "GET", Path: "/items"},
			{Name: "list-items", Method: "GET", Path: "/v2/items"},
		},
	}
	js := EmitClientModule("acme", cfg)

	// Both are emitted; in JS the later definition wins at runtime.
	require.Equal(t, 2, strings.Count(js, "async listitems("))
	assert.Equal(t, []string{"listitems"}, Collisions(cfg))
}

func TestCollisionsEmptyWhenNamesDistinct(t *testing.T) {
	cfg := apiconfig.Config{
		Endpoints: []apiconfig.Endpoint{
			{Name: "users.list", Method: "GET", Path: "/users.list"},
			{Name: "users.info", Method: "GET", Path: "/users.info"},
		},
	}
	assert.Empty(t, Collisions(cfg))
}

func TestJSIdentSanitizesParams(t *testing.T) {
	cases := map[string]string{
		"user_id":    "user_id",
		"channel-id": "channel_id",
		"2fa":        "_2fa",
		"":           "_",
	}
	for in, want := range cases {
		assert.Equal(t, want, jsIdent(in), "jsIdent(%q)", in)
	}
}
