package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"splashbot/server/application"
	"splashbot/server/domain"
)

func TestNewDecisionService_RequiresDependencies(t *testing.T) {
	_, err := NewDecisionService(nil, nil, nil, nil)
	if err == nil {
		t.Fatalf("expected error when dependencies are nil")
	}
}

func TestDecisionService_DecideSuccess(t *testing.T) {
	planner := &fakePlanner{decision: application.Decision{
		Action:  domain.ActionThrow,
		Planner: application.PlannerPursuit,
		Reason:  "enemy adjacent ahead",
	}}
	metrics := &recordingMetrics{}
	clock := &fakeClock{since: 3 * time.Millisecond}
	validator := &fakeValidator{}

	svc, err := NewDecisionService(planner, metrics, clock, validator)
	if err != nil {
		t.Fatalf("unexpected error creating service: %v", err)
	}

	snap := validSnapshot()
	action, err := svc.Decide(context.Background(), snap)
	if err != nil {
		t.Fatalf("decide returned error: %v", err)
	}
	if action != domain.ActionThrow {
		t.Fatalf("action = %v, want %v", action, domain.ActionThrow)
	}
	if !validator.called {
		t.Fatalf("expected validator to be called")
	}
	if planner.got.Self != snap.Self {
		t.Fatalf("planner received %+v", planner.got)
	}
	metrics.assertLatency(t, "pursuit", 3*time.Millisecond)
	metrics.assertCounter(t, "requests", 1)
	metrics.assertCounter(t, "action.T", 1)
}

func TestDecisionService_DecideValidationError(t *testing.T) {
	planner := &fakePlanner{}
	metrics := &recordingMetrics{}
	clock := &fakeClock{since: time.Millisecond}
	validator := &fakeValidator{err: ErrCellCollision}

	svc, err := NewDecisionService(planner, metrics, clock, validator)
	if err != nil {
		t.Fatalf("unexpected error creating service: %v", err)
	}

	_, err = svc.Decide(context.Background(), validSnapshot())
	if !errors.Is(err, domain.ErrInvalidSnapshot) {
		t.Fatalf("expected ErrInvalidSnapshot, got %v", err)
	}
	if !errors.Is(err, ErrCellCollision) {
		t.Fatalf("expected cause to be kept, got %v", err)
	}
	if planner.called {
		t.Fatalf("planner should not be called on validation error")
	}
	metrics.assertLatency(t, "rejected", time.Millisecond)
	metrics.assertCounter(t, "requests", 1)
}

func TestDecisionService_DecidePlannerError(t *testing.T) {
	planErr := errors.New("plan failure")
	planner := &fakePlanner{err: planErr}
	metrics := &recordingMetrics{}

	svc, err := NewDecisionService(planner, metrics, &fakeClock{}, &fakeValidator{})
	if err != nil {
		t.Fatalf("unexpected error creating service: %v", err)
	}

	_, err = svc.Decide(context.Background(), validSnapshot())
	if !errors.Is(err, planErr) {
		t.Fatalf("expected planner error, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidSnapshot) {
		t.Fatalf("planner failure must not be reported as invalid snapshot")
	}
	metrics.assertLatency(t, "failed", 0)
}

func TestDecisionService_WithEngine(t *testing.T) {
	svc, err := NewDecisionService(application.NewEngine(), NoopMetrics{}, RealClock{}, SnapshotValidator{})
	if err != nil {
		t.Fatalf("unexpected error creating service: %v", err)
	}
	action, err := svc.Decide(context.Background(), validSnapshot())
	if err != nil {
		t.Fatalf("decide returned error: %v", err)
	}
	if action != domain.ActionThrow {
		t.Fatalf("action = %v, want %v", action, domain.ActionThrow)
	}
}

func TestDecisionService_HugeArena(t *testing.T) {
	svc, err := NewDecisionService(application.NewEngine(), NoopMetrics{}, RealClock{}, SnapshotValidator{})
	if err != nil {
		t.Fatalf("unexpected error creating service: %v", err)
	}
	snap := validSnapshot()
	snap.Dims = domain.Dims{Width: 1 << 62, Height: 1}

	action, err := svc.Decide(context.Background(), snap)
	if err != nil {
		t.Fatalf("decide returned error: %v", err)
	}
	if action != domain.ActionThrow {
		t.Fatalf("action = %v, want %v", action, domain.ActionThrow)
	}
}

func TestSnapshotValidator(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Snapshot)
		wantErr error
	}{
		{"valid", func(*domain.Snapshot) {}, nil},
		{"zero width", func(s *domain.Snapshot) { s.Dims.Width = 0 }, domain.ErrInvalidDims},
		{"own missing", func(s *domain.Snapshot) { s.Self = "ghost" }, domain.ErrOwnAgentMissing},
		{"out of bounds", func(s *domain.Snapshot) {
			p := s.Players["op"]
			p.X = 4
			s.Players["op"] = p
		}, application.ErrOutOfBounds},
		{"collision", func(s *domain.Snapshot) {
			p := s.Players["op"]
			p.X, p.Y = 0, 0
			s.Players["op"] = p
		}, ErrCellCollision},
		{"unknown direction", func(s *domain.Snapshot) {
			p := s.Players["op"]
			p.Direction = domain.Direction(7)
			s.Players["op"] = p
		}, domain.ErrInvalidDirection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := validSnapshot()
			tt.mutate(&snap)
			err := SnapshotValidator{}.Snapshot(snap)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSnapshotValidator_KeyMismatch(t *testing.T) {
	snap := validSnapshot()
	p := snap.Players["op"]
	p.ID = "other"
	snap.Players["op"] = p
	if err := (SnapshotValidator{}).Snapshot(snap); err == nil {
		t.Fatalf("expected error for mismatched player key")
	}
}

// validSnapshot は自機の正面に敵が隣接する 4x4 のスナップショットです。
func validSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Self: "me",
		Dims: domain.Dims{Width: 4, Height: 4},
		Players: map[string]domain.AgentState{
			"me": {ID: "me", X: 0, Y: 0, Direction: domain.East},
			"op": {ID: "op", X: 1, Y: 0, Direction: domain.South, Score: 2},
		},
	}
}

// --- test doubles ---

type fakeClock struct {
	now   time.Time
	since time.Duration
}

func (f *fakeClock) Now() time.Time {
	if f.now.IsZero() {
		return time.Unix(0, 0)
	}
	return f.now
}

func (f *fakeClock) Since(time.Time) time.Duration {
	return f.since
}

type fakeValidator struct {
	called bool
	err    error
}

func (v *fakeValidator) Snapshot(domain.Snapshot) error {
	v.called = true
	return v.err
}

type fakePlanner struct {
	called   bool
	got      domain.Snapshot
	decision application.Decision
	err      error
}

func (p *fakePlanner) Plan(snapshot domain.Snapshot) (application.Decision, error) {
	p.called = true
	p.got = snapshot
	return p.decision, p.err
}

type recordingMetrics struct {
	latencyCalls []latencyCall
	counters     map[string]int
}

type latencyCall struct {
	planner  string
	duration time.Duration
}

func (m *recordingMetrics) RecordLatency(ctx context.Context, planner string, duration time.Duration) {
	m.latencyCalls = append(m.latencyCalls, latencyCall{planner: planner, duration: duration})
}

func (m *recordingMetrics) IncrementCounter(ctx context.Context, name string, delta int) {
	if m.counters == nil {
		m.counters = make(map[string]int)
	}
	m.counters[name] += delta
}

func (m *recordingMetrics) assertLatency(t *testing.T, planner string, duration time.Duration) {
	t.Helper()
	if len(m.latencyCalls) == 0 {
		t.Fatalf("expected latency to be recorded")
	}
	last := m.latencyCalls[len(m.latencyCalls)-1]
	if last.planner != planner || last.duration != duration {
		t.Fatalf("latency = %+v, want planner=%s duration=%v", last, planner, duration)
	}
}

func (m *recordingMetrics) assertCounter(t *testing.T, name string, want int) {
	t.Helper()
	if got := m.counters[name]; got != want {
		t.Fatalf("counter %s = %d, want %d", name, got, want)
	}
}
