package service

import (
	"errors"
	"fmt"

	"splashbot/server/application"
	"splashbot/server/domain"
)

var ErrCellCollision = errors.New("two agents share a cell")

// SnapshotValidator はエンジンに渡す前にスナップショットの契約を検証するデフォルト実装です。
type SnapshotValidator struct{}

func (SnapshotValidator) Snapshot(snapshot domain.Snapshot) error {
	dims := snapshot.Dims
	if dims.Width <= 0 || dims.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", domain.ErrInvalidDims, dims.Width, dims.Height)
	}
	if _, ok := snapshot.Own(); !ok {
		return fmt.Errorf("%w: %q", domain.ErrOwnAgentMissing, snapshot.Self)
	}

	occupied := make(map[[2]int]string, len(snapshot.Players))
	for id, p := range snapshot.Players {
		if p.ID != id {
			return fmt.Errorf("player key %q holds state for %q", id, p.ID)
		}
		if p.Direction > domain.West {
			return fmt.Errorf("player %q: %w: %v", id, domain.ErrInvalidDirection, p.Direction)
		}
		if !dims.Contains(p.X, p.Y) {
			return fmt.Errorf("%w: %q at (%d, %d) in %dx%d", application.ErrOutOfBounds, id, p.X, p.Y, dims.Width, dims.Height)
		}
		cell := [2]int{p.X, p.Y}
		if other, ok := occupied[cell]; ok {
			return fmt.Errorf("%w: %q and %q at (%d, %d)", ErrCellCollision, other, id, p.X, p.Y)
		}
		occupied[cell] = id
	}
	return nil
}
