package application

import (
	"fmt"

	"splashbot/server/domain"
)

const (
	// ScanHorizon は投擲で届く最大距離です。
	ScanHorizon = 3
	// OutOfSight は走査範囲内に何も無いことを表す距離の番兵値です。
	OutOfSight = ScanHorizon + 1
)

// ObstacleKind は Obstacle の種別です。
type ObstacleKind uint8

const (
	ObstacleNone ObstacleKind = iota
	ObstacleWall
	ObstacleEnemy
)

func (k ObstacleKind) String() string {
	switch k {
	case ObstacleNone:
		return "none"
	case ObstacleWall:
		return "wall"
	case ObstacleEnemy:
		return "enemy"
	default:
		return fmt.Sprintf("ObstacleKind(%d)", uint8(k))
	}
}

// Obstacle は走査線上で最初に見つかったものです。
// Enemy と Threat は Kind == ObstacleEnemy のときだけ意味を持ちます。
type Obstacle struct {
	Kind   ObstacleKind
	Enemy  *domain.AgentState
	Threat ThreatLevel
}

// Sighting は1方向分の走査結果です。Distance は 1..OutOfSight です。
type Sighting struct {
	Obstacle Obstacle
	Distance int
}

func (s Sighting) IsWall() bool  { return s.Obstacle.Kind == ObstacleWall }
func (s Sighting) IsEnemy() bool { return s.Obstacle.Kind == ObstacleEnemy }

// IsThreat は自機の方を向いている敵であれば true を返します。
func (s Sighting) IsThreat() bool {
	return s.IsEnemy() && s.Obstacle.Threat == ThreatToward
}

// Open はその方向へ少なくとも1マス動けるかを返します。
func (s Sighting) Open() bool { return s.Distance > 1 }

// Score は敵のスコアを返します。敵でなければ 0 です。
func (s Sighting) Score() int {
	if !s.IsEnemy() {
		return 0
	}
	return s.Obstacle.Enemy.Score
}

func (s Sighting) String() string {
	if s.IsEnemy() {
		return fmt.Sprintf("enemy(%s,threat=%d)@%d", s.Obstacle.Enemy.ID, s.Obstacle.Threat, s.Distance)
	}
	return fmt.Sprintf("%s@%d", s.Obstacle.Kind, s.Distance)
}

// Surroundings は domain.Relative をインデックスとする4方向の走査結果です。
type Surroundings [4]Sighting

// Scan は own の位置から前後左右へ走査します。
// 各方向で最初に見つかった壁または敵を距離付きで記録し、
// OutOfSight マス先まで何も無ければ ObstacleNone を OutOfSight で返します。
// own 自身のセルは空として扱います (一歩先読み用に own を動かしても自分を敵と誤認しない)。
func Scan(arena *Arena, own domain.AgentState) Surroundings {
	var s Surroundings
	for _, r := range domain.Relatives {
		s[r] = scanLine(arena, own, r)
	}
	return s
}

func scanLine(arena *Arena, own domain.AgentState, r domain.Relative) Sighting {
	for distance := 1; distance <= OutOfSight; distance++ {
		cell := own.Step(r, distance)
		occupant, inBounds := arena.Occupant(cell.X, cell.Y)
		if !inBounds {
			return Sighting{Obstacle: Obstacle{Kind: ObstacleWall}, Distance: distance}
		}
		if occupant != nil && occupant.ID != own.ID {
			return Sighting{
				Obstacle: Obstacle{
					Kind:   ObstacleEnemy,
					Enemy:  occupant,
					Threat: ComputeThreatLevel(own.Direction, occupant.Direction, r),
				},
				Distance: distance,
			}
		}
	}
	return Sighting{Obstacle: Obstacle{Kind: ObstacleNone}, Distance: OutOfSight}
}
