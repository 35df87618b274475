package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"splashbot/server/domain"

	"github.com/google/uuid"
)

// DecideHandler は POST / で ArenaUpdate を受け取り、行動を1文字で返します。
type DecideHandler struct {
	decider domain.Decider
}

func NewDecideHandler(decider domain.Decider) *DecideHandler {
	return &DecideHandler{decider: decider}
}

func (h *DecideHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	ctx := domain.WithRequestID(r.Context(), requestID)

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxFrameBytes))
	if err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}
	update, err := domain.ParseArenaUpdate(data)
	if err != nil {
		slog.WarnContext(ctx, "malformed arena update", "requestID", requestID, "err", err)
		httpError(w, http.StatusBadRequest, err)
		return
	}
	snapshot, err := update.ToSnapshot()
	if err != nil {
		slog.WarnContext(ctx, "rejected arena update", "requestID", requestID, "err", err)
		httpError(w, http.StatusBadRequest, err)
		return
	}

	action, err := h.decider.Decide(ctx, snapshot)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidSnapshot) {
			status = http.StatusBadRequest
		}
		slog.WarnContext(ctx, "decision failed", "requestID", requestID, "status", status, "err", err)
		httpError(w, status, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Request-Id", requestID)
	_, _ = io.WriteString(w, action.String())
}

func httpError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
