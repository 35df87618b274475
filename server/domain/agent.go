package domain

import "fmt"

// Action はボットが1ターンに返す行動です。
type Action uint8

const (
	ActionForward Action = iota
	ActionTurnLeft
	ActionTurnRight
	ActionThrow
)

// String は境界で返す1文字表現 (F, L, R, T) です。
func (a Action) String() string {
	switch a {
	case ActionForward:
		return "F"
	case ActionTurnLeft:
		return "L"
	case ActionTurnRight:
		return "R"
	case ActionThrow:
		return "T"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

// Dims はアリーナの幅と高さです。
type Dims struct {
	Width, Height int
}

// Contains は (x, y) がアリーナ内であれば true を返します。
func (d Dims) Contains(x, y int) bool {
	return x >= 0 && x < d.Width && y >= 0 && y < d.Height
}

// AgentState は1ターン分の参加者の状態です。値として扱い、変更は常に新しい値を返します。
type AgentState struct {
	ID        string
	X, Y      int
	Direction Direction
	WasHit    bool
	Score     int
}

// Turn は相対方向 r に向き直した状態を返します。Front はそのまま、Back は反転です。
func (a AgentState) Turn(r Relative) AgentState {
	a.Direction = r.Absolute(a.Direction)
	return a
}

// Step は相対方向 r に distance マス進んだ位置の状態を返します。向きは変わりません。
func (a AgentState) Step(r Relative, distance int) AgentState {
	axis, sign := AxisAndSign(a.Direction, r)
	if axis == AxisX {
		a.X += sign * distance
	} else {
		a.Y += sign * distance
	}
	return a
}

// Forward は1マス前進した状態を返します。
func (a AgentState) Forward() AgentState {
	return a.Step(Front, 1)
}

// Snapshot は1回の判断に必要なアリーナ全体の状態です。
type Snapshot struct {
	Self    string
	Dims    Dims
	Players map[string]AgentState
}

// Own は自機の状態を返します。
func (s Snapshot) Own() (AgentState, bool) {
	a, ok := s.Players[s.Self]
	return a, ok
}

// Enemies は自機以外の参加者を返します。順序は不定です。
func (s Snapshot) Enemies() []AgentState {
	enemies := make([]AgentState, 0, len(s.Players))
	for id, a := range s.Players {
		if id == s.Self {
			continue
		}
		enemies = append(enemies, a)
	}
	return enemies
}
