package application

import "splashbot/server/domain"

// ThreatLevel は敵の向きと自機との位置関係です。
type ThreatLevel int8

const (
	ThreatAway    ThreatLevel = -1 // 自機から遠ざかる向き
	ThreatNeutral ThreatLevel = 0  // 走査線に対して垂直
	ThreatToward  ThreatLevel = 1  // 自機の方を向いている (撃たれる/撃てる)
)

// ComputeThreatLevel は own の相対方向 r にいる敵の脅威度を返します。
func ComputeThreatLevel(own, enemy domain.Direction, r domain.Relative) ThreatLevel {
	line := r.Absolute(own)
	switch enemy {
	case line.Opposite():
		return ThreatToward
	case line:
		return ThreatAway
	default:
		return ThreatNeutral
	}
}

// ThreatAnalysis は自機を向いている敵の数を軸ごとに数えたものです。
type ThreatAnalysis struct {
	Longitudinal int // front / back
	Transverse   int // left / right
	Overall      int
}

// AnalyzeThreats は走査結果から ThreatToward の敵を数えます。壁や空きは数えません。
func AnalyzeThreats(s Surroundings) ThreatAnalysis {
	var a ThreatAnalysis
	for _, r := range domain.Relatives {
		if !s[r].IsThreat() {
			continue
		}
		if r.Longitudinal() {
			a.Longitudinal++
		} else {
			a.Transverse++
		}
	}
	a.Overall = a.Longitudinal + a.Transverse
	return a
}

// CheckEnemyInRange は敵が (Distance + offset) < OutOfSight の範囲にいるかを返します。
// 一歩前進した後の前方を評価するときは offset = -1 を渡します。
func CheckEnemyInRange(s Sighting, offset int) bool {
	return s.IsEnemy() && s.Distance+offset < OutOfSight
}
