package services

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

var (
	// ErrEmptyReply means the provider answered 2xx but the first
	// candidate carried no text.
	ErrEmptyReply = errors.New("upstream response has no reply text")

	// ErrMissingAPIKey is returned on every call when no credential was configured.
	ErrMissingAPIKey = errors.New("gemini api key is not configured")

	ErrUpstreamStatus = errors.New("upstream returned non-success status")
)

// Completer turns a fixed system instruction and one user message into one
// reply. Implementations make exactly one upstream call per Complete.
type Completer interface {
	Complete(ctx context.Context, systemInstruction, userText string) (string, error)
}

// UpstreamStatusError carries a non-2xx provider answer. Body is for server
// logs only.
type UpstreamStatusError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("gemini returned status %d", e.StatusCode)
}

func (e *UpstreamStatusError) Unwrap() error { return ErrUpstreamStatus }

// unavailableCompleter stands in for a provider that could not be built, so
// the server still starts and each call fails through the normal error path.
type unavailableCompleter struct {
	err error
}

func (u unavailableCompleter) Complete(context.Context, string, string) (string, error) {
	return "", u.err
}

type CompleterOptions struct {
	Backend string // "rest", "genai" or "generativeai"
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
}

// NewCompleter builds the configured provider. SDK backends that cannot be
// built without a key degrade to a Completer that fails every call; the
// returned error is for a startup warning only.
func NewCompleter(ctx context.Context, opts CompleterOptions) (Completer, func(), error) {
	noop := func() {}

	switch opts.Backend {
	case "", "rest":
		return NewGeminiRESTProvider(opts.BaseURL, opts.Model, opts.APIKey, opts.Timeout), noop, nil
	case "genai":
		// Only a non-default base URL is passed through to the SDK.
		baseURL := opts.BaseURL
		if baseURL == defaultGeminiBaseURL {
			baseURL = ""
		}
		p, err := NewGenAIProvider(ctx, baseURL, opts.Model, opts.APIKey, opts.Timeout)
		if err != nil {
			return unavailableCompleter{err: err}, noop, err
		}
		return p, noop, nil
	case "generativeai":
		s, err := NewGeminiService(ctx, opts.APIKey, opts.Model, opts.Timeout)
		if err != nil {
			return unavailableCompleter{err: err}, noop, err
		}
		return s, s.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown gemini backend %q", opts.Backend)
	}
}
