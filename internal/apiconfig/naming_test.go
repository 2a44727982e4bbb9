package apiconfig

import "testing"

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"slack":              "slack",
		"Google Drive":       "google-drive",
		"chat.postMessage":   "chat-postmessage",
		"users_list":         "users-list",
		"  spaced  ":         "spaced",
		"already-a-slug":     "already-a-slug",
		"UPPER":              "upper",
		"weird!!chars##":     "weird--chars--",
		"conversations.list": "conversations-list",
		"":                   "",
	}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Fatalf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIdent(t *testing.T) {
	cases := map[string]string{
		"auth.test":        "authtest",
		"chat.postMessage": "chatpostmessage",
		"get_user":         "getuser",
		"list-items":       "listitems",
		"Search":           "search",
		"":                 "",
	}
	for in, want := range cases {
		if got := Ident(in); got != want {
			t.Fatalf("Ident(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTitle(t *testing.T) {
	cases := map[string]string{
		"slack":        "Slack",
		"google drive": "Google Drive",
		"my-app":       "My-App",
		"a.b":          "A.B",
		"":             "",
	}
	for in, want := range cases {
		if got := Title(in); got != want {
			t.Fatalf("Title(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTypeName(t *testing.T) {
	cases := map[string]string{
		"slack":        "Slack",
		"users.list":   "UsersList",
		"google drive": "GoogleDrive",
		"get_user":     "GetUser",
	}
	for in, want := range cases {
		if got := TypeName(in); got != want {
			t.Fatalf("TypeName(%q) = %q, want %q", in, got, want)
		}
	}
}
