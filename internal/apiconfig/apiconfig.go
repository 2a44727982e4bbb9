// Package apiconfig defines the resolved API description for one
// application: a provider label, a base URL and the endpoint descriptors
// the provider exposes. Everything downstream (manifests, generated
// clients) is a pure function of a Config.
package apiconfig

import "strings"

// Endpoint describes one callable operation of a provider's REST API.
// Path may contain "{param}" segments.
type Endpoint struct {
	Name        string `json:"name"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// Config is the descriptor set for one application. Consumers only read
// it; the resolver is the sole producer.
type Config struct {
	Provider  string     `json:"provider"`
	BaseURL   string     `json:"base_url"`
	Endpoints []Endpoint `json:"endpoints"`
}

// Sentinel endpoint recorded when a resolution failed outright. It is
// written to the artifact so the failure is visible, but it must never
// become a manifest entry.
const (
	SentinelName = "error"
	SentinelPath = "/error"
)

// IsSentinel reports whether the endpoint marks a failed resolution.
func (e Endpoint) IsSentinel() bool {
	return e.Name == SentinelName || e.Path == SentinelPath
}

// IsWrite reports whether the method carries a request body.
func (e Endpoint) IsWrite() bool {
	switch strings.ToUpper(e.Method) {
	case "POST", "PUT", "PATCH":
		return true
	}
	return false
}

// IsGet matches case-insensitively; generated descriptors are not always
// consistent about method casing.
func (e Endpoint) IsGet() bool {
	return strings.EqualFold(e.Method, "GET")
}
