package domain

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type SessionID string

func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

func (id SessionID) String() string { return string(id) }

// Session は1本の websocket 接続の論理的な状態を表す構造体です。
type Session struct {
	id SessionID

	// activity
	lastRead  atomic.Int64
	lastWrite atomic.Int64

	// decisions はこのセッションで返した行動の数です。
	decisions atomic.Uint64

	// lifecycle
	closed atomic.Bool
}

func NewSession() *Session {
	s := &Session{
		id: NewSessionID(),
	}
	now := time.Now().UnixNano()
	s.lastRead.Store(now)
	s.lastWrite.Store(now)
	return s
}

func (s *Session) ID() SessionID { return s.id }

func (s *Session) TouchRead() {
	s.lastRead.Store(time.Now().UnixNano())
}

func (s *Session) TouchWrite() {
	s.lastWrite.Store(time.Now().UnixNano())
}

// CountDecision は返した行動数を1つ増やし、増加後の値を返します。
func (s *Session) CountDecision() uint64 {
	return s.decisions.Add(1)
}

func (s *Session) Decisions() uint64 {
	return s.decisions.Load()
}

// Close はセッションを閉じます。初回のみ true を返します。
func (s *Session) Close() bool {
	return s.closed.CompareAndSwap(false, true)
}

func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// IsIdle は読み込みと書き込みの双方が timeout 以上途絶えているかを返します。
// 受信のみで応答を返していない状態は idle とはみなしません。
func (s *Session) IsIdle(timeout time.Duration) (bool, IdleReason) {
	if timeout <= 0 {
		return false, IdleDisabled
	}
	var reason IdleReason
	if isIdleSince(unixNanoToTime(s.lastRead.Load()), timeout) {
		reason |= IdleRead
	}
	if isIdleSince(unixNanoToTime(s.lastWrite.Load()), timeout) {
		reason |= IdleWrite
	}
	return reason == IdleRead|IdleWrite, reason
}

func isIdleSince(last time.Time, timeout time.Duration) bool {
	return time.Since(last) > timeout
}

func unixNanoToTime(nano int64) time.Time {
	return time.Unix(0, nano)
}
