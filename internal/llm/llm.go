// Package llm wraps the text-generation collaborators behind one narrow
// interface so resolution code never sees a concrete backend. Cross
// cutting behavior (retries, rate limiting, logging) is layered on with
// middlewares rather than baked into the clients.
package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client is the seam between resolution and a text-generation backend.
// Generate sends one system and one user message and returns the first
// choice's content as opaque text; callers own all parsing.
type Client interface {
	Name() string
	Generate(ctx context.Context, system, user string) (string, error)
	Close() error
}

// ErrNoCredential is returned by constructors when no API key is
// available. It is the one failure this package surfaces synchronously.
var ErrNoCredential = errors.New("llm: api key is required")

// PermanentError marks an error that will not resolve with retries.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err carries a PermanentError anywhere in
// its chain.
func IsPermanent(err error) bool {
	var p *PermanentError
	return errors.As(err, &p)
}

// FromEnv constructs the configured backend and wraps it with the
// standard middleware chain. Selection: LLM_PROVIDER when set, else
// openai when OPENAI_API_KEY is present, else gemini when GEMINI_API_KEY
// is present.
func FromEnv(ctx context.Context, logger *zap.Logger) (Client, error) {
	provider := strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER")))
	if provider == "" {
		switch {
		case os.Getenv("OPENAI_API_KEY") != "":
			provider = "openai"
		case os.Getenv("GEMINI_API_KEY") != "":
			provider = "gemini"
		default:
			return nil, fmt.Errorf("%w: set OPENAI_API_KEY or GEMINI_API_KEY", ErrNoCredential)
		}
	}

	var (
		inner Client
		err   error
	)
	switch provider {
	case "openai":
		inner, err = NewOpenAIClient(OpenAIConfig{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			Model:   os.Getenv("OPENAI_MODEL"),
			BaseURL: os.Getenv("OPENAI_BASE_URL"),
		})
	case "gemini":
		inner, err = NewGeminiClient(ctx, os.Getenv("GEMINI_MODEL"))
	case "fake":
		inner = &FakeClient{}
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", provider)
	}
	if err != nil {
		return nil, err
	}

	attempts := envInt("LLM_MAX_ATTEMPTS", 3)
	return Wrap(inner,
		WithLogging(logger),
		Retry(attempts, 300*time.Millisecond),
		RateLimitFromEnv("LLM", strings.ToUpper(provider)),
	), nil
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
