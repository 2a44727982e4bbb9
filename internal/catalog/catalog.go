// Package catalog holds the curated descriptor sets for providers whose
// APIs are known well enough to skip generation entirely. Entries are
// hand-maintained from the providers' official documentation; resolution
// consults this table before anything else.
package catalog

import (
	"sort"
	"strings"

	"apismith/internal/apiconfig"
)

var curated = map[string]apiconfig.Config{
	"slack": {
		Provider: "Slack",
		BaseURL:  "https://slack.com/api",
		Endpoints: []apiconfig.Endpoint{
			{Name: "auth.test", Method: "POST", Path: "/auth.test", Description: "Check authentication and identity"},
			{Name: "chat.postMessage", Method: "POST", Path: "/chat.postMessage", Description: "Send a message to a channel"},
			{Name: "chat.update", Method: "POST", Path: "/chat.update", Description: "Update an existing message"},
			{Name: "conversations.list", Method: "GET", Path: "/conversations.list", Description: "List channels in the workspace"},
			{Name: "conversations.history", Method: "GET", Path: "/conversations.history", Description: "Fetch a conversation's message history"},
			{Name: "conversations.members", Method: "GET", Path: "/conversations.members", Description: "List members of a conversation"},
			{Name: "users.list", Method: "GET", Path: "/users.list", Description: "List users in the workspace"},
			{Name: "users.info", Method: "GET", Path: "/users.info", Description: "Get information about a user"},
			{Name: "reactions.add", Method: "POST", Path: "/reactions.add", Description: "Add a reaction to a message"},
			{Name: "search.messages", Method: "GET", Path: "/search.messages", Description: "Search messages in the workspace"},
		},
	},
	"github": {
		Provider: "GitHub",
		BaseURL:  "https://api.github.com",
		Endpoints: []apiconfig.Endpoint{
			{Name: "get_authenticated_user", Method: "GET", Path: "/user", Description: "Get the authenticated user"},
			{Name: "list_repos", Method: "GET", Path: "/user/repos", Description: "List repositories of the authenticated user"},
			{Name: "get_repo", Method: "GET", Path: "/repos/{owner}/{repo}", Description: "Get a repository"},
			{Name: "list_issues", Method: "GET", Path: "/repos/{owner}/{repo}/issues", Description: "List issues for a repository"},
			{Name: "create_issue", Method: "POST", Path: "/repos/{owner}/{repo}/issues", Description: "Create an issue"},
			{Name: "get_issue", Method: "GET", Path: "/repos/{owner}/{repo}/issues/{issue_number}", Description: "Get a single issue"},
			{Name: "create_issue_comment", Method: "POST", Path: "/repos/{owner}/{repo}/issues/{issue_number}/comments", Description: "Comment on an issue"},
			{Name: "list_pulls", Method: "GET", Path: "/repos/{owner}/{repo}/pulls", Description: "List pull requests"},
			{Name: "create_pull", Method: "POST", Path: "/repos/{owner}/{repo}/pulls", Description: "Open a pull request"},
			{Name: "list_notifications", Method: "GET", Path: "/notifications", Description: "List notifications for the authenticated user"},
		},
	},
	"discord": {
		Provider: "Discord",
		BaseURL:  "https://discord.com/api/v10",
		Endpoints: []apiconfig.Endpoint{
			{Name: "get_current_user", Method: "GET", Path: "/users/@me", Description: "Get the current user"},
			{Name: "get_user", Method: "GET", Path: "/users/{user_id}", Description: "Get a user by id"},
			{Name: "list_my_guilds", Method: "GET", Path: "/users/@me/guilds", Description: "List guilds the current user is in"},
			{Name: "get_guild", Method: "GET", Path: "/guilds/{guild_id}", Description: "Get a guild"},
			{Name: "list_guild_channels", Method: "GET", Path: "/guilds/{guild_id}/channels", Description: "List channels in a guild"},
			{Name: "get_channel", Method: "GET", Path: "/channels/{channel_id}", Description: "Get a channel"},
			{Name: "list_messages", Method: "GET", Path: "/channels/{channel_id}/messages", Description: "List messages in a channel"},
			{Name: "create_message", Method: "POST", Path: "/channels/{channel_id}/messages", Description: "Post a message to a channel"},
			{Name: "create_dm", Method: "POST", Path: "/users/@me/channels", Description: "Open a DM channel with a user"},
		},
	},
}

// Lookup returns the curated config for name, matching case-insensitively.
// The endpoint slice is copied so the table stays immutable.
func Lookup(name string) (apiconfig.Config, bool) {
	cfg, ok := curated[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return apiconfig.Config{}, false
	}
	out := cfg
	out.Endpoints = append([]apiconfig.Endpoint(nil), cfg.Endpoints...)
	return out, true
}

// Names lists the curated provider keys in sorted order.
func Names() []string {
	out := make([]string, 0, len(curated))
	for k := range curated {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
