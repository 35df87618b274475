package application

import (
	"fmt"

	"splashbot/server/domain"
)

// Engine はスナップショットから1ターン分の Decision を計算します。
// 状態を持たないので、複数のゴルーチンから同時に呼び出せます。
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Plan は被弾していれば Evade、そうでなければ Pursue を呼び出します。
// 一歩先の走査は前方に1マス以上空きがある場合だけ行います。
func (e *Engine) Plan(snapshot domain.Snapshot) (Decision, error) {
	own, ok := snapshot.Own()
	if !ok {
		return Decision{}, fmt.Errorf("%w: %q", domain.ErrOwnAgentMissing, snapshot.Self)
	}
	arena, err := NewArena(snapshot.Dims, snapshot.Players)
	if err != nil {
		return Decision{}, err
	}

	now := Scan(arena, own)
	var ahead *Surroundings
	if now[domain.Front].Open() {
		next := Scan(arena, own.Forward())
		ahead = &next
	}

	if own.WasHit {
		return Evade(now, ahead), nil
	}

	var target *TargetLocator
	if t, ok := LocateTarget(own, snapshot.Enemies()); ok {
		target = &t
	}
	return Pursue(now, ahead, target), nil
}
