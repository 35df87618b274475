package domain

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrBackpressure は書き込みチャネルが満杯の場合に返されるエラーです。
	ErrBackpressure = errors.New("write channel is full, apply backpressure")
	// ErrInitializationFailed はセッションエンドポイントの初期化に失敗した場合に返されるエラーです。
	ErrInitializationFailed = errors.New("failed to initialize session endpoint")
)

const (
	closeNormal     int32 = 1000
	closeGoingAway  int32 = 1001
	ownerTickPeriod       = time.Second
)

// SessionEndpoint は1本の接続上でスナップショットを受け取り、行動を返し続けます。
type SessionEndpoint struct {
	ctx    context.Context
	cancel context.CancelFunc

	session     *Session
	connection  *Connection
	decider     Decider
	idleTimeout time.Duration

	ctrlCh  chan endpointEvent // 制御用チャネル
	writeCh chan []byte        // 書き込み用チャネル

	// lifecycle
	closed atomic.Bool
}

func NewSessionEndpoint(ctx context.Context, session *Session, connection *Connection, decider Decider, idleTimeout time.Duration) (*SessionEndpoint, error) {
	if session == nil || connection == nil || decider == nil {
		return nil, ErrInitializationFailed
	}
	ctx, cancel := context.WithCancel(ctx)
	return &SessionEndpoint{
		ctx:         ctx,
		cancel:      cancel,
		session:     session,
		connection:  connection,
		decider:     decider,
		idleTimeout: idleTimeout,
		ctrlCh:      make(chan endpointEvent, 16),
		writeCh:     make(chan []byte, 64),
	}, nil
}

// Run はセッションが閉じられるまでブロックします。
func (se *SessionEndpoint) Run() error {
	defer se.close(closeNormal, "")

	eg, ctx := errgroup.WithContext(se.ctx)
	eg.Go(func() error {
		se.ownerLoop(ctx)
		return nil
	})
	eg.Go(func() error {
		se.readLoop(ctx)
		return nil
	})
	eg.Go(func() error {
		se.writeLoop(ctx)
		return nil
	})
	return eg.Wait()
}

func (se *SessionEndpoint) Send(data []byte) error {
	select {
	case se.writeCh <- data:
		return nil
	default:
		return ErrBackpressure
	}
}

func (se *SessionEndpoint) Close(ctx context.Context) {
	se.sendCtrlEvent(ctx, endpointEvent{kind: evClose})
}

// ownerLoop は論理セッションの状態を監視し、必要に応じて接続の管理を行います。
func (se *SessionEndpoint) ownerLoop(ctx context.Context) {
	ticker := time.NewTicker(ownerTickPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-se.ctrlCh:
			se.handleControlEvent(ctx, ev)
		case <-ticker.C:
			if idle, reason := se.session.IsIdle(se.idleTimeout); idle {
				slog.InfoContext(ctx, "session idle, closing", "sessionID", se.session.ID(), "reason", reason)
				se.handleControlEvent(ctx, endpointEvent{kind: evClose, err: errors.New(reason.String())})
			}
		}
	}
}

func (se *SessionEndpoint) readLoop(ctx context.Context) {
	for {
		data, err := se.connection.Read(ctx)
		if err != nil {
			if ctx.Err() == nil {
				se.sendCtrlEvent(ctx, endpointEvent{kind: evReadError, err: err})
			}
			return
		}
		se.session.TouchRead()
		se.handleData(ctx, data)
	}
}

func (se *SessionEndpoint) writeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case data := <-se.writeCh:
			if err := se.connection.Write(ctx, data); err != nil {
				se.sendCtrlEvent(ctx, endpointEvent{kind: evWriteError, err: err})
				return
			}
			se.session.TouchWrite()
		}
	}
}

func (se *SessionEndpoint) handleData(ctx context.Context, data []byte) {
	update, err := ParseArenaUpdate(data)
	if err != nil {
		se.sendError(ctx, err)
		return
	}
	snapshot, err := update.ToSnapshot()
	if err != nil {
		se.sendError(ctx, err)
		return
	}
	action, err := se.decider.Decide(ctx, snapshot)
	if err != nil {
		se.sendError(ctx, err)
		return
	}
	n := se.session.CountDecision()
	slog.DebugContext(ctx, "session decision", "sessionID", se.session.ID(), "seq", n, "action", action)
	if err := se.Send([]byte(action.String())); err != nil {
		slog.WarnContext(ctx, "action dropped", "sessionID", se.session.ID(), "err", err)
	}
}

func (se *SessionEndpoint) sendError(ctx context.Context, err error) {
	slog.WarnContext(ctx, "rejected snapshot", "sessionID", se.session.ID(), "err", err)
	frame, _ := json.Marshal(map[string]string{"error": err.Error()})
	if err := se.Send(frame); err != nil {
		slog.WarnContext(ctx, "error frame dropped", "sessionID", se.session.ID(), "err", err)
	}
}

func (se *SessionEndpoint) close(code int32, reason string) {
	if !se.closed.CompareAndSwap(false, true) {
		return
	}
	se.cancel()
	se.session.Close()
	se.connection.Close(code, reason)
}

// handleControlEvent は制御チャネルからのイベントを処理し論理セッションの状態を更新する唯一の関数です。
func (se *SessionEndpoint) handleControlEvent(ctx context.Context, ev endpointEvent) {
	switch ev.kind {
	case evClose:
		reason := ""
		if ev.err != nil {
			reason = ev.err.Error()
		}
		se.close(closeNormal, reason)
	case evReadError, evWriteError:
		slog.DebugContext(ctx, "connection error, closing", "sessionID", se.session.ID(), "err", ev.err)
		se.close(closeGoingAway, "")
	default:
		slog.WarnContext(ctx, "unknown endpoint event kind", "kind", ev.kind)
	}
}

func (se *SessionEndpoint) sendCtrlEvent(ctx context.Context, ev endpointEvent) {
	select {
	case se.ctrlCh <- ev:
	case <-ctx.Done():
	}
}
