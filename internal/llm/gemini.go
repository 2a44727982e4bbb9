package llm

import (
	"context"
	"fmt"
	"os"

	genai "google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiClient is a thin wrapper around the official genai client.
type GeminiClient struct {
	cli   *genai.Client
	model string
}

// NewGeminiClient requires GEMINI_API_KEY in the environment (the genai
// SDK reads it itself; we only verify it is present up front).
func NewGeminiClient(ctx context.Context, model string) (*GeminiClient, error) {
	if os.Getenv("GEMINI_API_KEY") == "" {
		return nil, fmt.Errorf("%w: set GEMINI_API_KEY", ErrNoCredential)
	}
	if model == "" {
		model = defaultGeminiModel
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, err
	}
	return &GeminiClient{cli: cli, model: model}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }
func (g *GeminiClient) Close() error { return nil }

// Generate concatenates the system and user messages into one text part
// and requests application/json output. Retries belong to the caller's
// middleware chain, not here.
func (g *GeminiClient) Generate(ctx context.Context, system, user string) (string, error) {
	full := system + "\n\n" + user
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: full}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("llm: empty response from %s", g.model)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
