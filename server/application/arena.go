package application

import (
	"errors"
	"fmt"

	"splashbot/server/domain"
)

var ErrOutOfBounds = errors.New("agent outside arena")

// Arena は1ターン分の占有表です。ターンごとに作り直し、使い終わったら捨てます。
// 参加者のいるセルだけを持つので、大きさはアリーナの面積ではなく参加者数に比例します。
// セルはアクターの状態を参照するだけで所有しません。
type Arena struct {
	dims  domain.Dims
	cells map[coord]*domain.AgentState
}

type coord struct{ x, y int }

// NewArena は参加者を (x, y) に配置した占有表を作成します。
// 同じセルに2体いる場合は後から置いた方で上書きします (検証は SnapshotValidator の責務)。
func NewArena(dims domain.Dims, players map[string]domain.AgentState) (*Arena, error) {
	states := make([]domain.AgentState, 0, len(players))
	for _, p := range players {
		if !dims.Contains(p.X, p.Y) {
			return nil, fmt.Errorf("%w: %q at (%d, %d) in %dx%d", ErrOutOfBounds, p.ID, p.X, p.Y, dims.Width, dims.Height)
		}
		states = append(states, p)
	}

	cells := make(map[coord]*domain.AgentState, len(states))
	for i := range states {
		cells[coord{states[i].X, states[i].Y}] = &states[i]
	}

	return &Arena{dims: dims, cells: cells}, nil
}

func (a *Arena) Dims() domain.Dims { return a.dims }

// Occupant は (x, y) にいる参加者を返します。範囲外の場合 inBounds は false です。
func (a *Arena) Occupant(x, y int) (occupant *domain.AgentState, inBounds bool) {
	if !a.dims.Contains(x, y) {
		return nil, false
	}
	return a.cells[coord{x, y}], true
}
