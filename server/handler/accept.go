package handler

import (
	"log/slog"
	"net/http"
	"time"

	adapterwebsocket "splashbot/server/adapter/websocket"
	"splashbot/server/domain"

	"github.com/coder/websocket"
)

const maxFrameBytes = 1 << 20

// AcceptHandler は /ws への接続を SessionEndpoint に引き渡します。
type AcceptHandler struct {
	decider     domain.Decider
	idleTimeout time.Duration
}

func NewAcceptHandler(decider domain.Decider, idleTimeout time.Duration) *AcceptHandler {
	return &AcceptHandler{decider: decider, idleTimeout: idleTimeout}
}

func (h *AcceptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // アリーナ側の Origin は不定
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to accept", "err", err)
		return
	}

	session := domain.NewSession()
	transport := adapterwebsocket.NewTransportFrom(conn, maxFrameBytes)
	connection := domain.NewConnection(session.ID(), transport)
	endpoint, err := domain.NewSessionEndpoint(ctx, session, connection, h.decider, h.idleTimeout)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create session endpoint", "err", err)
		_ = conn.Close(websocket.StatusInternalError, "")
		return
	}
	slog.DebugContext(ctx, "accepted new connection", "sessionID", session.ID())
	if err := endpoint.Run(); err != nil {
		slog.ErrorContext(ctx, "failed to run session endpoint", "err", err)
		return
	}
	slog.DebugContext(ctx, "session finished", "sessionID", session.ID(), "decisions", session.Decisions())
}
