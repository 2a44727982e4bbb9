package batch

import (
	"bytes"
	"fmt"
	"strings"

	"apismith/internal/apiconfig"
	"apismith/internal/resolver"
)

// EmitReadme renders the per-application README.md describing the
// generated artifact tree.
func EmitReadme(app string, res resolver.Resolution) string {
	cfg := res.Config
	provider := strings.TrimSpace(cfg.Provider)
	if provider == "" {
		provider = apiconfig.Title(app)
	}
	className := apiconfig.TypeName(app) + "API"

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s API Client\n\n", provider)
	fmt.Fprintf(&buf, "JavaScript client and Nango manifests for the %s API.\n\n", provider)
	fmt.Fprintf(&buf, "- Base URL: `%s`\n", cfg.BaseURL)
	fmt.Fprintf(&buf, "- Source: %s\n", res.Source)
	if res.Suspect {
		buf.WriteString("\n> **Note**: these endpoints could not be verified against official\n")
		buf.WriteString("> documentation and may be placeholders. Review before use.\n")
	}

	buf.WriteString("\n## Usage\n\n```js\n")
	fmt.Fprintf(&buf, "const %s = require(\"./endpoints.js\");\n\n", className)
	fmt.Fprintf(&buf, "const client = new %s(\"your_api_key_here\");\n", className)
	fmt.Fprintf(&buf, "const response = await client.%s();\n", exampleMethod(cfg))
	buf.WriteString("console.log(response);\n```\n")

	buf.WriteString("\n## Available Endpoints\n\n")
	buf.WriteString("| Endpoint | Method | Path | Description |\n")
	buf.WriteString("|----------|--------|------|-------------|\n")
	for _, e := range cfg.Endpoints {
		fmt.Fprintf(&buf, "| %s | %s | `%s` | %s |\n",
			tableCell(e.Name), strings.ToUpper(e.Method), e.Path, tableCell(e.Description))
	}

	buf.WriteString("\n## Files\n\n")
	buf.WriteString("- `api-config.json`: the endpoint descriptor set\n")
	buf.WriteString("- `nango-integration.yaml`: sync and action manifest\n")
	buf.WriteString("- `nango-provider.yaml`: provider manifest\n")
	buf.WriteString("- `endpoints.js`: the API client\n")

	buf.WriteString("\n## Authentication\n\n")
	buf.WriteString("Most endpoints require an API key. Pass it when constructing the client.\n")
	return buf.String()
}

func exampleMethod(cfg apiconfig.Config) string {
	for _, e := range cfg.Endpoints {
		if e.IsSentinel() {
			continue
		}
		return apiconfig.Ident(e.Name)
	}
	if len(cfg.Endpoints) > 0 {
		return apiconfig.Ident(cfg.Endpoints[0].Name)
	}
	return "exampleendpoint"
}

// tableCell keeps one endpoint per table row.
func tableCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", "\\|")
}
