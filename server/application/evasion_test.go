package application

import (
	"testing"

	"splashbot/server/domain"

	"pgregory.net/rapid"
)

func TestEvade(t *testing.T) {
	tests := []struct {
		name  string
		now   Surroundings
		ahead *Surroundings
		want  domain.Action
	}{
		{
			name: "front open and safe",
			now:  around(wall(3), wall(1), wall(1), wall(1)),
			want: domain.ActionForward,
		},
		{
			name: "front threatened, only left open",
			now:  around(enemy(3, 0, ThreatToward), wall(1), wall(2), wall(1)),
			want: domain.ActionTurnLeft,
		},
		{
			name: "front blocked, only right open",
			now:  around(wall(1), empty(), wall(1), empty()),
			want: domain.ActionTurnRight,
		},
		{
			name: "both open, enemy on left",
			now:  around(wall(1), wall(1), enemy(2, 0, ThreatNeutral), wall(3)),
			want: domain.ActionTurnRight,
		},
		{
			name: "both open, enemy on right",
			now:  around(wall(1), wall(1), wall(2), enemy(3, 0, ThreatAway)),
			want: domain.ActionTurnLeft,
		},
		{
			name: "both open, enemies on both sides",
			now:  around(wall(1), wall(1), enemy(2, 5, ThreatNeutral), enemy(2, 2, ThreatNeutral)),
			want: domain.ActionTurnLeft,
		},
		{
			name: "both open, nothing around, left wider",
			now:  around(wall(1), wall(1), empty(), wall(2)),
			want: domain.ActionTurnLeft,
		},
		{
			name: "both open, equally wide",
			now:  around(wall(1), wall(1), wall(3), wall(3)),
			want: domain.ActionTurnRight,
		},
		{
			name: "sides blocked, threatened front still open",
			now:  around(enemy(2, 0, ThreatToward), wall(1), wall(1), enemy(1, 0, ThreatNeutral)),
			want: domain.ActionForward,
		},
		{
			name: "boxed in with enemy adjacent ahead",
			now:  around(enemy(1, 0, ThreatAway), empty(), wall(1), wall(1)),
			want: domain.ActionThrow,
		},
		{
			name: "boxed in by wall, enemy on left",
			now:  around(wall(1), empty(), enemy(1, 0, ThreatToward), wall(1)),
			want: domain.ActionTurnLeft,
		},
		{
			name: "boxed in by walls",
			now:  around(wall(1), wall(1), wall(1), wall(1)),
			want: domain.ActionTurnRight,
		},
		{
			name:  "stepping forward lands next to a threat",
			now:   around(empty(), wall(1), wall(1), wall(2)),
			ahead: &Surroundings{wall(3), wall(2), enemy(1, 0, ThreatToward), wall(1)},
			want:  domain.ActionTurnRight,
		},
		{
			name:  "threat ahead after step is not adjacent",
			now:   around(empty(), wall(1), wall(1), wall(2)),
			ahead: &Surroundings{wall(3), wall(2), enemy(2, 0, ThreatToward), wall(1)},
			want:  domain.ActionForward,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evade(tt.now, tt.ahead)
			if got.Action != tt.want {
				t.Errorf("Evade action = %v (%s), want %v", got.Action, got.Reason, tt.want)
			}
			if got.Planner != PlannerEvasion {
				t.Errorf("Planner = %q, want %q", got.Planner, PlannerEvasion)
			}
		})
	}
}

func TestEvade_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		now := surroundingsGen().Draw(t, "now")
		var ahead *Surroundings
		if rapid.Bool().Draw(t, "hasAhead") {
			a := surroundingsGen().Draw(t, "ahead")
			ahead = &a
		}

		got := Evade(now, ahead)
		if got.Action > domain.ActionThrow {
			t.Fatalf("unknown action %v", got.Action)
		}
		if got.Reason == "" {
			t.Fatal("empty reason")
		}
		front := now[domain.Front]
		if got.Action == domain.ActionThrow && !(front.IsEnemy() && front.Distance == 1) {
			t.Fatalf("throw without adjacent enemy ahead: %v", front)
		}
		if ahead == nil && front.Open() && !front.IsThreat() && got.Action != domain.ActionForward {
			t.Fatalf("safe open front but chose %v", got.Action)
		}
		if got.Action == domain.ActionForward && !front.Open() {
			t.Fatalf("moved forward into %v", front)
		}
	})
}
