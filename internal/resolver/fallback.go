package resolver

import (
	"strings"

	"apismith/internal/apiconfig"
)

// Fallback synthesizes the generic descriptor set used when neither the
// catalog nor the collaborator produced one. It is the availability
// floor: deterministic, no external dependency, always succeeds. Its
// paths land on the fabrication check's generic fragments, so every
// fallback resolution carries the warning.
func Fallback(name string) apiconfig.Config {
	title := apiconfig.Title(name)
	return apiconfig.Config{
		Provider: title,
		BaseURL:  "https://api." + strings.ToLower(strings.TrimSpace(name)) + ".com",
		Endpoints: []apiconfig.Endpoint{
			{Name: "get_user", Method: "GET", Path: "/user", Description: "Get the current " + title + " user"},
			{Name: "list_items", Method: "GET", Path: "/items", Description: "List " + title + " items"},
			{Name: "get_item", Method: "GET", Path: "/items/{id}", Description: "Get a single " + title + " item"},
			{Name: "create_item", Method: "POST", Path: "/items", Description: "Create a " + title + " item"},
			{Name: "update_item", Method: "PUT", Path: "/items/{id}", Description: "Update a " + title + " item"},
			{Name: "delete_item", Method: "DELETE", Path: "/items/{id}", Description: "Delete a " + title + " item"},
			{Name: "search", Method: "GET", Path: "/search", Description: "Search " + title},
			{Name: "get_profile", Method: "GET", Path: "/profile", Description: "Get the " + title + " profile"},
		},
	}
}
