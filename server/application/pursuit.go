package application

import "splashbot/server/domain"

func pursuit(action domain.Action, reason string) Decision {
	return Decision{Action: action, Planner: PlannerPursuit, Reason: reason}
}

// Pursue は被弾していないときの行動を決めます。
//
//  1. 前方に隣接する敵がいれば投擲
//  2. 前方が壁なら敵のいる側 (スコアの高い側) を向く
//  3. 前方に射程外の敵がいれば、前進しても機会が減らない限り前進
//  4. 左右の射程内に敵がいれば、最も有望な側を向く
//  5. 一歩先で射程に入る敵がいれば前進
//  6. いずれでもなければ TargetLocator の方位に従う
//
// ahead は前方が1マス以上空いている場合の一歩先の走査結果、target は敵がいない場合 nil です。
func Pursue(now Surroundings, ahead *Surroundings, target *TargetLocator) Decision {
	front := now[domain.Front]

	if front.IsEnemy() && front.Distance == 1 {
		return pursuit(domain.ActionThrow, "enemy adjacent ahead")
	}

	if front.IsWall() && front.Distance == 1 {
		if side, ok := enemySide(now); ok {
			return pursuit(turnToward(side), "wall ahead, turning to enemy")
		}
		return pursuit(turnToward(bearingSide(now, target)), "wall ahead")
	}

	if front.IsEnemy() {
		if ahead == nil || AnalyzeThreats(*ahead).Overall >= AnalyzeThreats(now).Overall {
			return pursuit(domain.ActionForward, "closing on enemy ahead")
		}
		if side, ok := bestSideTarget(now); ok {
			return pursuit(turnToward(side), "better opportunity on side")
		}
		return pursuit(domain.ActionForward, "closing on enemy ahead")
	}

	if side, ok := bestSideTarget(now); ok {
		return pursuit(turnToward(side), "enemy in range on side")
	}

	if ahead != nil && engageableAfterStep(*ahead) {
		return pursuit(domain.ActionForward, "enemy in range after one step")
	}

	return followBearing(now, target)
}

// bestSideTarget は左右の射程内の敵を順位付けし、最も有望な側を返します。
// 順位: こちらを向いている敵 → スコアの高い敵 → 近い敵 → 右。
func bestSideTarget(s Surroundings) (side domain.Relative, ok bool) {
	left, right := s[domain.Left], s[domain.Right]
	leftIn, rightIn := CheckEnemyInRange(left, 0), CheckEnemyInRange(right, 0)
	switch {
	case leftIn && rightIn:
		if outranks(left, right) {
			return domain.Left, true
		}
		return domain.Right, true
	case leftIn:
		return domain.Left, true
	case rightIn:
		return domain.Right, true
	default:
		return 0, false
	}
}

// outranks は a が b より優先される標的であれば true を返します。同順位なら false です。
func outranks(a, b Sighting) bool {
	if a.IsThreat() != b.IsThreat() {
		return a.IsThreat()
	}
	if a.Score() != b.Score() {
		return a.Score() > b.Score()
	}
	return a.Distance < b.Distance
}

// engageableAfterStep は一歩先の前・左・右に射程内の敵がいるかを返します。
func engageableAfterStep(ahead Surroundings) bool {
	for _, r := range []domain.Relative{domain.Front, domain.Left, domain.Right} {
		if CheckEnemyInRange(ahead[r], 0) {
			return true
		}
	}
	return false
}

// followBearing は視界に標的がいないときに TargetLocator の方位へ向かいます。
// ここに来る時点で前方は2マス以上空いています。
func followBearing(now Surroundings, target *TargetLocator) Decision {
	if target == nil {
		return pursuit(domain.ActionForward, "no enemies, roaming")
	}
	long, trans := target.Longitudinal, target.Transverse
	switch {
	case trans == 0 && long >= 0:
		return pursuit(domain.ActionForward, "target straight ahead")
	case long > 0 && abs(long) > abs(trans):
		return pursuit(domain.ActionForward, "target mostly ahead")
	default:
		return pursuit(turnToward(bearingSide(now, target)), "turning to target bearing")
	}
}

// bearingSide は TargetLocator の横方向の符号に合わせた側を返します。
// 横方向が 0 か標的がいなければ widerSide に従います。
func bearingSide(now Surroundings, target *TargetLocator) domain.Relative {
	if target != nil {
		switch {
		case target.Transverse > 0:
			return domain.Right
		case target.Transverse < 0:
			return domain.Left
		}
	}
	return widerSide(now)
}
