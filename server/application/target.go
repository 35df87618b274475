package application

import "splashbot/server/domain"

// TargetLocator は自機の向きを基準にした目標までのオフセットです。
// Longitudinal は前方が正、Transverse は右が正です。
type TargetLocator struct {
	Longitudinal int
	Transverse   int
}

// LocateTarget は最も近い敵 (マンハッタン距離) へのオフセットを返します。
// 同距離ならスコアの高い敵、さらに同じなら ID の小さい敵を選びます。敵がいなければ ok は false です。
func LocateTarget(own domain.AgentState, enemies []domain.AgentState) (target TargetLocator, ok bool) {
	var best *domain.AgentState
	bestDist := 0
	for i := range enemies {
		e := &enemies[i]
		if e.ID == own.ID {
			continue
		}
		dist := abs(e.X-own.X) + abs(e.Y-own.Y)
		if best == nil || closer(e, dist, best, bestDist) {
			best, bestDist = e, dist
		}
	}
	if best == nil {
		return TargetLocator{}, false
	}
	return offsetOf(own, *best), true
}

func closer(e *domain.AgentState, dist int, best *domain.AgentState, bestDist int) bool {
	if dist != bestDist {
		return dist < bestDist
	}
	if e.Score != best.Score {
		return e.Score > best.Score
	}
	return e.ID < best.ID
}

// offsetOf は own から見た other の位置を (前方, 右方) の成分に分解します。
func offsetOf(own, other domain.AgentState) TargetLocator {
	dx, dy := other.X-own.X, other.Y-own.Y
	return TargetLocator{
		Longitudinal: project(own.Direction, domain.Front, dx, dy),
		Transverse:   project(own.Direction, domain.Right, dx, dy),
	}
}

func project(d domain.Direction, r domain.Relative, dx, dy int) int {
	axis, sign := domain.AxisAndSign(d, r)
	if axis == domain.AxisX {
		return sign * dx
	}
	return sign * dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
