package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ArenaUpdate はゲームサーバーから毎ターン届くアリーナ状態 (JSON) です。
//
//	{"_links":{"self":{"href":"..."}},
//	 "arena":{"dims":[w,h],"state":{"<id>":{"x":0,"y":0,"direction":"N","wasHit":false,"score":0}}}}
type ArenaUpdate struct {
	Links struct {
		Self struct {
			Href string `json:"href"`
		} `json:"self"`
	} `json:"_links"`
	Arena struct {
		Dimensions []int                  `json:"dims"`
		State      map[string]PlayerState `json:"state"`
	} `json:"arena"`
}

// PlayerState は1参加者分のワイヤ表現です。
type PlayerState struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Direction string `json:"direction"`
	WasHit    bool   `json:"wasHit"`
	Score     int    `json:"score"`
}

var (
	ErrOwnAgentMissing = errors.New("own agent missing from arena state")
	ErrInvalidDims     = errors.New("invalid arena dims")
)

// ParseArenaUpdate はバイト列から ArenaUpdate をデコードします。
func ParseArenaUpdate(data []byte) (*ArenaUpdate, error) {
	var update ArenaUpdate
	if err := json.Unmarshal(data, &update); err != nil {
		return nil, fmt.Errorf("decode arena update: %w", err)
	}
	return &update, nil
}

// ToSnapshot は ArenaUpdate をドメインの Snapshot に変換します。
// 座標範囲や重なりの検証は行いません (service.SnapshotValidator の責務)。
func (u *ArenaUpdate) ToSnapshot() (Snapshot, error) {
	dims := u.Arena.Dimensions
	if len(dims) != 2 || dims[0] <= 0 || dims[1] <= 0 {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidDims, dims)
	}

	self := u.Links.Self.Href
	if _, ok := u.Arena.State[self]; !ok {
		return Snapshot{}, fmt.Errorf("%w: %q", ErrOwnAgentMissing, self)
	}

	players := make(map[string]AgentState, len(u.Arena.State))
	for id, ps := range u.Arena.State {
		dir, err := ParseDirection(ps.Direction)
		if err != nil {
			return Snapshot{}, fmt.Errorf("player %q: %w", id, err)
		}
		players[id] = AgentState{
			ID:        id,
			X:         ps.X,
			Y:         ps.Y,
			Direction: dir,
			WasHit:    ps.WasHit,
			Score:     ps.Score,
		}
	}

	return Snapshot{
		Self:    self,
		Dims:    Dims{Width: dims[0], Height: dims[1]},
		Players: players,
	}, nil
}

// NewArenaUpdate は Snapshot をワイヤ表現に戻します。リプレイ入力の生成に使います。
func NewArenaUpdate(s Snapshot) *ArenaUpdate {
	u := &ArenaUpdate{}
	u.Links.Self.Href = s.Self
	u.Arena.Dimensions = []int{s.Dims.Width, s.Dims.Height}
	u.Arena.State = make(map[string]PlayerState, len(s.Players))
	for id, a := range s.Players {
		u.Arena.State[id] = PlayerState{
			X:         a.X,
			Y:         a.Y,
			Direction: a.Direction.String(),
			WasHit:    a.WasHit,
			Score:     a.Score,
		}
	}
	return u
}
