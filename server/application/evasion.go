package application

import "splashbot/server/domain"

func evasion(action domain.Action, reason string) Decision {
	return Decision{Action: action, Planner: PlannerEvasion, Reason: reason}
}

// Evade は被弾直後の行動を決めます。攻撃者との距離を取ることを優先します。
//
//  1. 前方が空いていて危険でなければ前進
//  2. 左右の片方だけ空いていればそちらを向く
//  3. 左右とも空いていれば敵のいない側、両方に敵がいればスコアの高い敵の側
//  4. 前・左・右が塞がれていれば、前方の敵に投擲するか敵のいる側を向く
//
// ahead は一歩前進した後の走査結果で、前方が塞がれている場合は nil です。
func Evade(now Surroundings, ahead *Surroundings) Decision {
	front, left, right := now[domain.Front], now[domain.Left], now[domain.Right]

	if front.Open() && !front.IsThreat() && !pointBlankAhead(ahead) {
		return evasion(domain.ActionForward, "front open")
	}

	switch {
	case left.Open() && !right.Open():
		return evasion(domain.ActionTurnLeft, "only left open")
	case right.Open() && !left.Open():
		return evasion(domain.ActionTurnRight, "only right open")
	case left.Open() && right.Open():
		return evasion(turnToward(escapeSide(now)), "both sides open")
	}

	if front.Open() {
		// 左右が塞がれているので、危険でも動ける方向は前だけ
		return evasion(domain.ActionForward, "sides blocked")
	}
	if front.IsEnemy() {
		return evasion(domain.ActionThrow, "boxed in, enemy adjacent ahead")
	}
	if side, ok := enemySide(now); ok {
		return evasion(turnToward(side), "boxed in, facing enemy")
	}
	return evasion(turnToward(widerSide(now)), "boxed in")
}

// escapeSide は左右とも空いているときの向きを選びます。
func escapeSide(s Surroundings) domain.Relative {
	left, right := s[domain.Left].IsEnemy(), s[domain.Right].IsEnemy()
	switch {
	case left && !right:
		return domain.Right
	case right && !left:
		return domain.Left
	case left && right:
		if side, ok := higherScoreSide(s); ok {
			return side
		}
	}
	return widerSide(s)
}

// pointBlankAhead は一歩前進すると、こちらを向いた敵と隣接するかを返します。
func pointBlankAhead(ahead *Surroundings) bool {
	if ahead == nil {
		return false
	}
	for _, r := range []domain.Relative{domain.Front, domain.Left, domain.Right} {
		if s := ahead[r]; s.IsThreat() && s.Distance == 1 {
			return true
		}
	}
	return false
}
