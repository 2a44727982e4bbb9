// Package jsonutil rounds off encoding/json for LLM-facing payloads:
// marshaling without HTML escaping, and unmarshaling that tolerates
// string-wrapped or double-escaped responses.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// MarshalNoEscape encodes v without turning <, > and & into \u003c
// escapes, so emitted artifacts read the way the model wrote them.
func MarshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalNoEscapeIndent is MarshalNoEscape with indentation.
func MarshalNoEscapeIndent(v any, prefix, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(prefix, indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalFlex unmarshals raw into v, and when that fails retries
// after unwrapping string-quoted payloads and unescaping doubled
// unicode sequences. Models occasionally return both.
func UnmarshalFlex(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err == nil {
		return nil
	}
	norm, err := normalize(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(norm, v)
}

// normalize parses raw into a generic value, unwrapping up to two
// levels of string quoting, then re-encodes it with every string value
// unescaped.
func normalize(raw []byte) ([]byte, error) {
	for i := 0; i < 3; i++ {
		var val any
		if err := json.Unmarshal(raw, &val); err != nil {
			return nil, errors.New("jsonutil: payload is not JSON")
		}
		s, ok := val.(string)
		if !ok {
			return MarshalNoEscape(deepUnescape(val))
		}
		// The whole payload arrived as one quoted string; unwrap it.
		raw = []byte(s)
	}
	return nil, errors.New("jsonutil: payload nested too deep")
}

// unescapeString converts leftover sequences like \u003e into their
// characters by decoding the value as a JSON string one more time.
// Strings without \u sequences pass through untouched, and anything
// that fails to decode is kept as is.
func unescapeString(s string) (string, error) {
	if !strings.Contains(s, `\u`) {
		return s, nil
	}
	esc := strings.ReplaceAll(s, `"`, `\"`)
	var out string
	if err := json.Unmarshal([]byte(`"`+esc+`"`), &out); err != nil {
		return "", err
	}
	return out, nil
}

func deepUnescape(v any) any {
	switch x := v.(type) {
	case string:
		if s, err := unescapeString(x); err == nil {
			return s
		}
		return x
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = deepUnescape(x[i])
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, vv := range x {
			out[k] = deepUnescape(vv)
		}
		return out
	default:
		return v
	}
}
