// Package jsgen emits the JavaScript client module for a descriptor
// set: one class with a shared request primitive and one convenience
// method per endpoint. Emission is plain buffer writes; the output is
// source text, never evaluated here.
package jsgen

import (
	"bytes"
	"fmt"
	"strings"

	"apismith/internal/apiconfig"
)

// EmitClientModule renders the endpoints.js artifact. Endpoints whose
// sanitized names collide are all emitted; in JavaScript the later class
// method silently shadows the earlier one, which mirrors how callers
// experience the collision.
func EmitClientModule(name string, cfg apiconfig.Config) string {
	className := apiconfig.TypeName(name) + "API"

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Generated API client for %s.\n", displayName(name, cfg))
	fmt.Fprintf(&buf, "// Base URL: %s\n\n", cfg.BaseURL)

	fmt.Fprintf(&buf, "class %s {\n", className)
	fmt.Fprintf(&buf, "  constructor(apiKey, baseUrl = %s) {\n", jsString(cfg.BaseURL))
	buf.WriteString("    this.apiKey = apiKey;\n")
	buf.WriteString("    this.baseUrl = baseUrl;\n")
	buf.WriteString("  }\n\n")

	emitRequestPrimitive(&buf)

	for _, e := range cfg.Endpoints {
		emitEndpointMethod(&buf, e)
	}

	buf.WriteString("}\n\n")
	fmt.Fprintf(&buf, "module.exports = %s;\n", className)
	return buf.String()
}

// emitRequestPrimitive writes the shared low-level request method: URL
// join, query assembly, bearer auth, JSON body for write verbs, status
// check and content-type aware decoding.
func emitRequestPrimitive(buf *bytes.Buffer) {
	buf.WriteString(`  async request(method, path, body = null, query = null) {
    let url = this.baseUrl + path;
    if (query) {
      const qs = new URLSearchParams();
      for (const [key, value] of Object.entries(query)) {
        if (value !== null && value !== undefined) {
          qs.append(key, value);
        }
      }
      const encoded = qs.toString();
      if (encoded) {
        url += (url.includes("?") ? "&" : "?") + encoded;
      }
    }
    const options = {
      method,
      headers: {
        "Authorization": ` + "`Bearer ${this.apiKey}`" + `,
        "Content-Type": "application/json",
        "Accept": "application/json",
      },
    };
    if (body !== null && ["POST", "PUT", "PATCH"].includes(method)) {
      options.body = JSON.stringify(body);
    }
    const response = await fetch(url, options);
    if (!response.ok) {
      const error = new Error(` + "`${method} ${path} failed with status ${response.status}`" + `);
      error.status = response.status;
      throw error;
    }
    const contentType = response.headers.get("content-type") || "";
    if (contentType.includes("application/json")) {
      return response.json();
    }
    return response.text();
  }
`)
}

// emitEndpointMethod writes one convenience method. Path parameters
// become leading positional parameters in declared order; writes take a
// trailing data object and GETs a trailing query params object.
func emitEndpointMethod(buf *bytes.Buffer, e apiconfig.Endpoint) {
	method := strings.ToUpper(e.Method)
	tpl := apiconfig.ParsePath(e.Path)

	params := make([]string, 0, len(tpl.Params)+1)
	for _, p := range tpl.Params {
		params = append(params, jsIdent(p))
	}
	switch {
	case e.IsWrite():
		params = append(params, "data = {}")
	case e.IsGet():
		params = append(params, "params = null")
	}

	buf.WriteString("\n")
	if desc := strings.TrimSpace(e.Description); desc != "" {
		fmt.Fprintf(buf, "  // %s\n", strings.ReplaceAll(desc, "\n", " "))
	}
	fmt.Fprintf(buf, "  async %s(%s) {\n", apiconfig.Ident(e.Name), strings.Join(params, ", "))

	path := pathExpr(tpl)
	switch {
	case e.IsWrite():
		fmt.Fprintf(buf, "    return this.request(%q, %s, data);\n", method, path)
	case e.IsGet():
		fmt.Fprintf(buf, "    return this.request(%q, %s, null, params);\n", method, path)
	default:
		fmt.Fprintf(buf, "    return this.request(%q, %s);\n", method, path)
	}
	buf.WriteString("  }\n")
}

// pathExpr renders the path as a JS expression: a plain string literal
// when there are no parameters, a template literal interpolating them
// otherwise.
func pathExpr(tpl apiconfig.PathTemplate) string {
	if !tpl.HasParams() {
		return jsString(tpl.Segments[0])
	}
	var b strings.Builder
	b.WriteByte('`')
	for i, seg := range tpl.Segments {
		b.WriteString(jsTemplateSegment(seg))
		if i < len(tpl.Params) {
			b.WriteString("${")
			b.WriteString(jsIdent(tpl.Params[i]))
			b.WriteString("}")
		}
	}
	b.WriteByte('`')
	return b.String()
}

// Collisions lists sanitized method names shared by more than one
// endpoint, in first-seen order. The emitter does not correct them; this
// exists so callers can warn.
func Collisions(cfg apiconfig.Config) []string {
	seen := map[string]int{}
	var order []string
	for _, e := range cfg.Endpoints {
		id := apiconfig.Ident(e.Name)
		if seen[id] == 1 {
			order = append(order, id)
		}
		seen[id]++
	}
	return order
}

func displayName(name string, cfg apiconfig.Config) string {
	if strings.TrimSpace(cfg.Provider) != "" {
		return cfg.Provider
	}
	return name
}

// jsString quotes s as a double-quoted JS string literal.
func jsString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// jsTemplateSegment escapes literal text inside a template literal.
func jsTemplateSegment(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "`", "\\`")
	s = strings.ReplaceAll(s, "${", "\\${")
	return s
}

// jsIdent makes a path parameter safe to use as a JS identifier.
func jsIdent(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == '$':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}
