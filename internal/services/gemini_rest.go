package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	replyPath        = "candidates.0.content.parts.0.text"
	maxUpstreamBody  = 1 << 20
	defaultRESTModel = "gemini-2.5-flash-preview-09-2025"
)

type restPart struct {
	Text string `json:"text"`
}

type restContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []restPart `json:"parts"`
}

type generateContentRequest struct {
	Contents          []restContent `json:"contents"`
	SystemInstruction restContent   `json:"systemInstruction"`
}

// GeminiRESTProvider calls the generateContent endpoint directly over HTTPS.
type GeminiRESTProvider struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
}

func NewGeminiRESTProvider(baseURL, model, apiKey string, timeout time.Duration) *GeminiRESTProvider {
	if model == "" {
		model = defaultRESTModel
	}
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	return &GeminiRESTProvider{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		apiKey:     apiKey,
	}
}

func (p *GeminiRESTProvider) endpoint() string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent", p.baseURL, url.PathEscape(p.model))
}

func (p *GeminiRESTProvider) Complete(ctx context.Context, systemInstruction, userText string) (string, error) {
	payload := generateContentRequest{
		Contents: []restContent{{Parts: []restPart{{Text: userText}}}},
		SystemInstruction: restContent{
			Parts: []restPart{{Text: systemInstruction}},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode gemini payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// Header rather than ?key= so the credential never shows up in url.Error text.
	req.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return "", fmt.Errorf("failed to read gemini response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &UpstreamStatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return extractReply(respBody)
}

// extractReply pulls the first candidate's first text part out of a
// generateContent response body.
func extractReply(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("invalid gemini response JSON: %w", ErrEmptyReply)
	}
	text := gjson.GetBytes(body, replyPath)
	if text.Type != gjson.String || strings.TrimSpace(text.Str) == "" {
		return "", ErrEmptyReply
	}
	return text.Str, nil
}
