package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"pioneering-site/internal/middleware"
	"pioneering-site/internal/models"
	"pioneering-site/internal/services"
)

const maxChatBodyBytes = 64 << 10

type chatCompleter interface {
	Complete(ctx context.Context, systemInstruction, userText string) (string, error)
}

// ChatHandler relays one visitor message to the LLM provider per request.
type ChatHandler struct {
	completer         chatCompleter
	systemInstruction string
}

func NewChatHandler(completer chatCompleter, systemInstruction string) *ChatHandler {
	return &ChatHandler{
		completer:         completer,
		systemInstruction: systemInstruction,
	}
}

func (h *ChatHandler) Relay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		slog.Warn("chat_relay_rejected", "kind", "method_not_allowed", "method", r.Method,
			"request_id", r.Header.Get(middleware.RequestIDHeader))
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.ChatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBodyBytes)).Decode(&req); err != nil {
		h.fail(w, r, "malformed_request", err)
		return
	}

	query := strings.TrimSpace(req.UserQuery)
	if query == "" {
		h.fail(w, r, "malformed_request", errors.New("userQuery is missing or blank"))
		return
	}

	reply, err := h.completer.Complete(r.Context(), h.systemInstruction, query)
	if err != nil {
		h.fail(w, r, classifyUpstreamError(err), err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatReply{Reply: reply})
}

// fail logs the specific cause and answers with the one generic error body.
func (h *ChatHandler) fail(w http.ResponseWriter, r *http.Request, kind string, err error) {
	attrs := []any{
		"kind", kind,
		"request_id", r.Header.Get(middleware.RequestIDHeader),
		"error", err.Error(),
	}
	var statusErr *services.UpstreamStatusError
	if errors.As(err, &statusErr) {
		attrs = append(attrs, "upstream_status", statusErr.StatusCode, "upstream_body", statusErr.Body)
	}
	slog.Error("chat_relay_failed", attrs...)

	writeJSON(w, http.StatusInternalServerError, models.ChatReply{Error: models.GenericChatError})
}

func classifyUpstreamError(err error) string {
	switch {
	case errors.Is(err, services.ErrUpstreamStatus):
		return "upstream_status"
	case errors.Is(err, services.ErrEmptyReply):
		return "upstream_empty_reply"
	case errors.Is(err, services.ErrMissingAPIKey):
		return "missing_credential"
	default:
		return "upstream_transport"
	}
}
