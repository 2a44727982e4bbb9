package apiconfig

import "strings"

// PathTemplate is the parsed form of an endpoint path: the "{param}"
// names in declared order plus the segments between them. Rendering a
// template interleaves segments and parameter values:
//
//	/repos/{owner}/{repo} -> Segments ["/repos/", "/", ""], Params ["owner", "repo"]
type PathTemplate struct {
	Params   []string
	Segments []string
}

// ParsePath scans path for "{param}" placeholders left to right. A "{"
// with no matching "}" is treated as literal text. len(Segments) is
// always len(Params)+1.
func ParsePath(path string) PathTemplate {
	var t PathTemplate
	rest := path
	for {
		open := strings.Index(rest, "{")
		if open < 0 {
			break
		}
		end := strings.Index(rest[open:], "}")
		if end < 0 {
			break
		}
		end += open
		t.Segments = append(t.Segments, rest[:open])
		t.Params = append(t.Params, rest[open+1:end])
		rest = rest[end+1:]
	}
	t.Segments = append(t.Segments, rest)
	return t
}

// HasParams reports whether the path declares at least one placeholder.
func (t PathTemplate) HasParams() bool { return len(t.Params) > 0 }

// Render substitutes values for the parameters in declared order. Extra
// values are ignored; missing values leave the remaining segments joined
// as-is.
func (t PathTemplate) Render(values ...string) string {
	var b strings.Builder
	for i, seg := range t.Segments {
		b.WriteString(seg)
		if i < len(t.Params) && i < len(values) {
			b.WriteString(values[i])
		}
	}
	return b.String()
}
