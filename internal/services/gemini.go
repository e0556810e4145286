package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type generativeModel interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiService answers through the generative-ai-go client.
type GeminiService struct {
	client   *genai.Client
	newModel func(systemInstruction string) generativeModel
	timeout  time.Duration
}

func NewGeminiService(ctx context.Context, apiKey, modelName string, timeout time.Duration) (*GeminiService, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiService{
		client: client,
		// GenerativeModel is mutable, so each call gets its own.
		newModel: func(systemInstruction string) generativeModel {
			return withSystemInstruction(client.GenerativeModel(modelName), systemInstruction)
		},
		timeout: timeout,
	}, nil
}

// withSystemInstruction sets only the persona. Sampling stays at the API
// defaults, as on the other backends.
func withSystemInstruction(model *genai.GenerativeModel, systemInstruction string) *genai.GenerativeModel {
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}
	return model
}

func (s *GeminiService) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

func (s *GeminiService) Complete(ctx context.Context, systemInstruction, userText string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.newModel(systemInstruction).GenerateContent(callCtx, genai.Text(userText))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	for i, cand := range candidates(resp) {
		if cand.FinishReason != genai.FinishReasonStop {
			slog.Warn("gemini_candidate_not_stopped", "index", i, "finish_reason", cand.FinishReason.String())
		}
	}

	return extractText(resp)
}

// extractText returns the first candidate's first text part.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyReply
	}
	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", ErrEmptyReply
	}
	t, ok := cand.Content.Parts[0].(genai.Text)
	if !ok || strings.TrimSpace(string(t)) == "" {
		return "", ErrEmptyReply
	}
	return string(t), nil
}

func candidates(resp *genai.GenerateContentResponse) []*genai.Candidate {
	if resp == nil {
		return nil
	}
	return resp.Candidates
}
