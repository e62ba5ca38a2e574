package server

import (
	"net/http"

	"contextify/internal/gateway/handler"
	"contextify/internal/gateway/middleware"
)

func NewMux(
	chatHandler *handler.ChatHandler,
	transcriptHandler *handler.TranscriptHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Chat Handlers
	mux.HandleFunc("/v1/chat/ws", chatHandler.HandleWS)

	// Transcript Handlers
	mux.HandleFunc("GET /v1/transcripts/{session}/{seq}", transcriptHandler.HandleGet)

	// Middleware
	return middleware.CORS(mux)
}
