package application

import (
	"fmt"

	"splashbot/server/domain"

	"pgregory.net/rapid"
)

func wall(distance int) Sighting {
	return Sighting{Obstacle: Obstacle{Kind: ObstacleWall}, Distance: distance}
}

func empty() Sighting {
	return Sighting{Obstacle: Obstacle{Kind: ObstacleNone}, Distance: OutOfSight}
}

func enemy(distance, score int, threat ThreatLevel) Sighting {
	return Sighting{
		Obstacle: Obstacle{
			Kind:   ObstacleEnemy,
			Enemy:  &domain.AgentState{ID: fmt.Sprintf("e%d-%d", distance, score), Score: score},
			Threat: threat,
		},
		Distance: distance,
	}
}

func around(front, back, left, right Sighting) Surroundings {
	var s Surroundings
	s[domain.Front] = front
	s[domain.Back] = back
	s[domain.Left] = left
	s[domain.Right] = right
	return s
}

func snapshot(dims domain.Dims, self string, players ...domain.AgentState) domain.Snapshot {
	m := make(map[string]domain.AgentState, len(players))
	for _, p := range players {
		m[p.ID] = p
	}
	return domain.Snapshot{Self: self, Dims: dims, Players: m}
}

var directions = []domain.Direction{domain.North, domain.East, domain.South, domain.West}

func sightingGen() *rapid.Generator[Sighting] {
	return rapid.Custom(func(t *rapid.T) Sighting {
		switch rapid.SampledFrom([]ObstacleKind{ObstacleNone, ObstacleWall, ObstacleEnemy}).Draw(t, "kind") {
		case ObstacleNone:
			return empty()
		case ObstacleWall:
			return wall(rapid.IntRange(1, OutOfSight).Draw(t, "wallDistance"))
		default:
			return enemy(
				rapid.IntRange(1, OutOfSight).Draw(t, "enemyDistance"),
				rapid.IntRange(0, 10).Draw(t, "score"),
				rapid.SampledFrom([]ThreatLevel{ThreatAway, ThreatNeutral, ThreatToward}).Draw(t, "threat"),
			)
		}
	})
}

func surroundingsGen() *rapid.Generator[Surroundings] {
	return rapid.Custom(func(t *rapid.T) Surroundings {
		var s Surroundings
		for i := range s {
			s[i] = sightingGen().Draw(t, "sighting")
		}
		return s
	})
}

// snapshotGen は重なりの無いスナップショットを生成します。自機は常に "p0" です。
func snapshotGen() *rapid.Generator[domain.Snapshot] {
	return rapid.Custom(func(t *rapid.T) domain.Snapshot {
		w := rapid.IntRange(1, 7).Draw(t, "width")
		h := rapid.IntRange(1, 7).Draw(t, "height")
		n := rapid.IntRange(1, 6).Draw(t, "players")

		used := make(map[[2]int]bool)
		players := make(map[string]domain.AgentState)
		for i := 0; i < n; i++ {
			x := rapid.IntRange(0, w-1).Draw(t, "x")
			y := rapid.IntRange(0, h-1).Draw(t, "y")
			if used[[2]int{x, y}] {
				continue
			}
			used[[2]int{x, y}] = true
			id := fmt.Sprintf("p%d", i)
			players[id] = domain.AgentState{
				ID:        id,
				X:         x,
				Y:         y,
				Direction: rapid.SampledFrom(directions).Draw(t, "direction"),
				WasHit:    rapid.Bool().Draw(t, "wasHit"),
				Score:     rapid.IntRange(0, 20).Draw(t, "score"),
			}
		}
		return domain.Snapshot{Self: "p0", Dims: domain.Dims{Width: w, Height: h}, Players: players}
	})
}
