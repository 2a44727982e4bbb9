package llm

import (
	"context"
	"sync"
)

// FakeClient returns a canned response for offline runs and tests. The
// zero value answers every call with a small generic config; Response
// and Err override that per instance.
type FakeClient struct {
	Response string
	Err      error

	mu    sync.Mutex
	calls []string
}

// Shaped like the model's lazy generic output, so dry runs hit the
// fabrication warning path.
const fakeGenericConfig = `{
  "provider": "Example",
  "base_url": "https://api.example.com",
  "endpoints": [
    {"name": "list_items", "method": "GET", "path": "/items", "description": "List items"},
    {"name": "get_item", "method": "GET", "path": "/item/{id}", "description": "Get one item"},
    {"name": "create_item", "method": "POST", "path": "/items", "description": "Create an item"}
  ]
}`

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) Generate(ctx context.Context, system, user string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, user)
	f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	if f.Response != "" {
		return f.Response, nil
	}
	return fakeGenericConfig, nil
}

// Calls returns the user messages seen so far.
func (f *FakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}
