package domain

import (
	"context"
	"errors"
)

// ErrInvalidSnapshot は Decider に渡されたスナップショットが契約を満たさない場合に返されるエラーです。
var ErrInvalidSnapshot = errors.New("invalid snapshot")

//go:generate go tool mockgen -destination=./mocks/decider_mock.go -package=mocks . Decider,Transport

// Decider はアリーナのスナップショットから1ターン分の行動を決定します。
type Decider interface {
	Decide(ctx context.Context, snapshot Snapshot) (Action, error)
}

// Transport は Connection（物理接続）が依存するI/O境界です。
type Transport interface {
	Read(ctx context.Context) (data []byte, err error)
	Write(ctx context.Context, data []byte) error
	Close(code int32, reason string) error
}
