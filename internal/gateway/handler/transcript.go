package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	transcriptrepo "contextify/internal/gateway/repository/transcript"
)

// TranscriptHandler serves archived turn markdown over plain HTTP.
type TranscriptHandler struct {
	store transcriptrepo.Store
}

// NewTranscriptHandler accepts a nil store; the handler then reports
// every transcript as missing.
func NewTranscriptHandler(store transcriptrepo.Store) *TranscriptHandler {
	return &TranscriptHandler{store: store}
}

func (h *TranscriptHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, "transcript archive is not enabled", http.StatusNotFound)
		return
	}
	session := strings.TrimSpace(r.PathValue("session"))
	seq, err := strconv.Atoi(strings.TrimSpace(r.PathValue("seq")))
	if session == "" || err != nil || seq < 1 {
		http.Error(w, "invalid transcript reference", http.StatusBadRequest)
		return
	}
	data, err := h.store.Get(r.Context(), session, seq)
	if err != nil {
		if errors.Is(err, transcriptrepo.ErrNotFound) {
			http.Error(w, "transcript not found", http.StatusNotFound)
			return
		}
		http.Error(w, "transcript fetch failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write(data)
}
