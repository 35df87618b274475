package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"splashbot/server/application"
	"splashbot/server/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "splashbot/server/service"

type Planner interface {
	Plan(snapshot domain.Snapshot) (application.Decision, error)
}

type Clock interface {
	Now() time.Time
	Since(time.Time) time.Duration
}

type Validator interface {
	Snapshot(domain.Snapshot) error
}

// DecisionService は domain.Decider の実装です。
// スナップショットを検証してから Planner に渡し、所要時間と結果を記録します。
type DecisionService struct {
	planner  Planner
	metrics  MetricsRecorder
	clock    Clock
	validate Validator
	tracer   trace.Tracer
}

var _ domain.Decider = (*DecisionService)(nil)

func NewDecisionService(p Planner, m MetricsRecorder, clock Clock, validator Validator) (*DecisionService, error) {
	if p == nil || m == nil || clock == nil || validator == nil {
		return nil, fmt.Errorf("service: missing dependencies: planner=%v metrics=%v clock=%v validator=%v", p, m, clock, validator)
	}
	return &DecisionService{
		planner:  p,
		metrics:  m,
		clock:    clock,
		validate: validator,
		tracer:   otel.Tracer(tracerName),
	}, nil
}

func (s *DecisionService) Decide(ctx context.Context, snapshot domain.Snapshot) (domain.Action, error) {
	start := s.clock.Now()
	ctx, span := s.tracer.Start(ctx, "DecisionService.Decide",
		trace.WithAttributes(attribute.Int("arena.players", len(snapshot.Players))))
	defer span.End()

	if err := s.validate.Snapshot(snapshot); err != nil {
		s.record(ctx, "rejected", start)
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid snapshot")
		return 0, fmt.Errorf("%w: %w", domain.ErrInvalidSnapshot, err)
	}

	decision, err := s.planner.Plan(snapshot)
	if err != nil {
		s.record(ctx, "failed", start)
		span.RecordError(err)
		span.SetStatus(codes.Error, "plan failed")
		return 0, err
	}

	latency := s.record(ctx, string(decision.Planner), start)
	s.metrics.IncrementCounter(ctx, "action."+decision.Action.String(), 1)
	span.SetAttributes(
		attribute.String("decision.action", decision.Action.String()),
		attribute.String("decision.planner", string(decision.Planner)),
	)
	slog.InfoContext(ctx, "decided",
		"requestID", domain.RequestIDFrom(ctx),
		"self", snapshot.Self,
		"action", decision.Action,
		"planner", decision.Planner,
		"reason", decision.Reason,
		"latency", latency,
	)
	return decision.Action, nil
}

func (s *DecisionService) record(ctx context.Context, planner string, started time.Time) time.Duration {
	duration := s.clock.Since(started)
	s.metrics.RecordLatency(ctx, planner, duration)
	s.metrics.IncrementCounter(ctx, "requests", 1)
	return duration
}

// RealClock は time パッケージに委譲する Clock です。
type RealClock struct{}

func (RealClock) Now() time.Time                  { return time.Now() }
func (RealClock) Since(t time.Time) time.Duration { return time.Since(t) }
