package application

import "splashbot/server/domain"

// Planner はどちらの戦術で行動を選んだかを表します。
type Planner string

const (
	PlannerEvasion Planner = "evasion"
	PlannerPursuit Planner = "pursuit"
)

// Decision は選ばれた行動と、それを選んだ規則です。境界には Action だけを返します。
type Decision struct {
	Action  domain.Action
	Planner Planner
	Reason  string
}

func turnToward(r domain.Relative) domain.Action {
	switch r {
	case domain.Left:
		return domain.ActionTurnLeft
	case domain.Right:
		return domain.ActionTurnRight
	default:
		panic("application: can only turn toward left or right, got " + r.String())
	}
}

// widerSide は左右の同点を崩します。より遠くまで空いている側、同じなら右です。
func widerSide(s Surroundings) domain.Relative {
	if s[domain.Left].Distance > s[domain.Right].Distance {
		return domain.Left
	}
	return domain.Right
}

// higherScoreSide は左右の敵のうちスコアが高い側を返します。同点なら ok は false です。
func higherScoreSide(s Surroundings) (side domain.Relative, ok bool) {
	left, right := s[domain.Left].Score(), s[domain.Right].Score()
	switch {
	case left > right:
		return domain.Left, true
	case right > left:
		return domain.Right, true
	default:
		return 0, false
	}
}

// enemySide は敵のいる側を返します。両側にいればスコアの高い側です。
// 片側にも敵がいないか両側が同点なら ok は false です。
func enemySide(s Surroundings) (side domain.Relative, ok bool) {
	left, right := s[domain.Left].IsEnemy(), s[domain.Right].IsEnemy()
	switch {
	case left && right:
		return higherScoreSide(s)
	case left:
		return domain.Left, true
	case right:
		return domain.Right, true
	default:
		return 0, false
	}
}
