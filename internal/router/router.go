package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"pioneering-site/internal/handlers"
	"pioneering-site/internal/middleware"
)

// Path the existing site front-end posts chat messages to.
const legacyChatPath = "/.netlify/functions/chat"

func New(
	chatHandler *handlers.ChatHandler,
	leadHandler *handlers.LeadHandler,
	allowedOrigin string,
	staticDir string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog(slog.Default()))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(allowedOrigin))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// The relay enforces POST itself so every other method gets its
	// plain-text 405.
	r.HandleFunc("/api/chat", chatHandler.Relay)
	r.HandleFunc(legacyChatPath, chatHandler.Relay)

	r.Post("/api/leads", leadHandler.Submit)

	if staticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(staticDir)))
	}

	return r
}
