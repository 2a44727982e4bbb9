package jsonutil

import (
	"strings"
	"testing"
)

func TestMarshalNoEscapeKeepsHTMLChars(t *testing.T) {
	out, err := MarshalNoEscape(map[string]string{"desc": "users & <groups>"})
	if err != nil {
		t.Fatalf("MarshalNoEscape: %v", err)
	}
	if got := string(out); got != `{"desc":"users & <groups>"}` {
		t.Fatalf("MarshalNoEscape = %s", got)
	}
}

func TestMarshalNoEscapeIndent(t *testing.T) {
	out, err := MarshalNoEscapeIndent(map[string]string{"a": "<b>"}, "", "  ")
	if err != nil {
		t.Fatalf("MarshalNoEscapeIndent: %v", err)
	}
	got := string(out)
	if !strings.Contains(got, "\n  \"a\": \"<b>\"") {
		t.Fatalf("MarshalNoEscapeIndent = %s", got)
	}
	if strings.Contains(got, `\u003c`) {
		t.Fatalf("output still escaped: %s", got)
	}
}

func TestUnmarshalFlexDirect(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	if err := UnmarshalFlex([]byte(`{"name": "plain"}`), &v); err != nil {
		t.Fatalf("UnmarshalFlex: %v", err)
	}
	if v.Name != "plain" {
		t.Fatalf("Name = %q", v.Name)
	}
}

func TestUnmarshalFlexStringWrapped(t *testing.T) {
	// The whole object arrives as one JSON string.
	raw := []byte(`"{\"name\": \"wrapped\"}"`)
	var v struct {
		Name string `json:"name"`
	}
	if err := UnmarshalFlex(raw, &v); err != nil {
		t.Fatalf("UnmarshalFlex: %v", err)
	}
	if v.Name != "wrapped" {
		t.Fatalf("Name = %q", v.Name)
	}
}

func TestUnmarshalFlexRejectsGarbage(t *testing.T) {
	var v any
	if err := UnmarshalFlex([]byte("not json at all"), &v); err == nil {
		t.Fatal("UnmarshalFlex accepted garbage")
	}
}

func TestUnescapeStringDoubleEscaped(t *testing.T) {
	got, err := unescapeString(`a \u003e b`)
	if err != nil {
		t.Fatalf("unescapeString: %v", err)
	}
	if got != "a > b" {
		t.Fatalf("unescapeString = %q", got)
	}

	plain, err := unescapeString("no escapes here")
	if err != nil || plain != "no escapes here" {
		t.Fatalf("unescapeString plain = %q, %v", plain, err)
	}
}
