package authz

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/horao-cloud/horao/internal/auth"
	"github.com/horao-cloud/horao/internal/observability"
	"github.com/horao-cloud/horao/internal/rbac"
)

// Operation is a guardable operation: any function taking a context and one
// argument value and returning one result and an error.
type Operation[A, R any] func(ctx context.Context, arg A) (R, error)

// Gate holds the requirement a guarded operation enforces. One gate guards
// one operation; multiple requirements compose by nesting Wrap calls, each
// gate enforcing and denying independently.
type Gate struct {
	namespace rbac.Namespace
	level     rbac.Level
	operation string
	logger    observability.Logger
	metrics   *Metrics
}

// GateOption is a functional option for the gate.
type GateOption func(*Gate)

// WithGateLogger sets the logger.
func WithGateLogger(logger observability.Logger) GateOption {
	return func(g *Gate) {
		g.logger = logger
	}
}

// WithGateMetrics sets the metrics.
func WithGateMetrics(metrics *Metrics) GateOption {
	return func(g *Gate) {
		g.metrics = metrics
	}
}

// NewGate creates a gate requiring the given namespace and level. The
// operation name appears in denial records and audit logs.
func NewGate(namespace rbac.Namespace, level rbac.Level, operation string, opts ...GateOption) *Gate {
	g := &Gate{
		namespace: namespace,
		level:     level,
		operation: operation,
		logger:    observability.NopLogger(),
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.metrics == nil {
		g.metrics = NewMetrics("horao")
	}

	return g
}

// Check evaluates the gate's requirement against the session in the context.
// It returns nil when the operation may proceed and a *DeniedError carrying
// the failure record otherwise. args is snapshotted into the record.
func (g *Gate) Check(ctx context.Context, args any) error {
	session, err := auth.SessionFromContextOrError(ctx)
	if err == nil && session.Check(g.namespace, g.level) {
		g.metrics.RecordDecision("allowed", g.namespace.String(), g.level.String())
		return nil
	}

	failure := Failure{
		ID:        uuid.NewString(),
		Namespace: g.namespace,
		Level:     g.level,
		Operation: g.operation,
		Args:      args,
		Time:      time.Now(),
	}
	if session != nil {
		failure.Actor = session.Actor()
	}

	g.metrics.RecordDecision("denied", g.namespace.String(), g.level.String())
	g.logger.WithContext(ctx).Warn("operation blocked",
		observability.String("denial_id", failure.ID),
		observability.String("operation", g.operation),
		observability.String("actor", failure.ActorName()),
		observability.String("namespace", g.namespace.String()),
		observability.String("level", g.level.String()),
		observability.Any("args", args),
	)

	return &DeniedError{Failure: failure}
}

// Wrap guards an operation with a gate. The returned operation evaluates the
// gate strictly before invoking op: on permit it is a transparent
// pass-through, on denial op is never invoked and the zero result is
// returned with a *DeniedError.
func Wrap[A, R any](g *Gate, op Operation[A, R]) Operation[A, R] {
	return func(ctx context.Context, arg A) (R, error) {
		if err := g.Check(ctx, arg); err != nil {
			var zero R
			return zero, err
		}
		return op(ctx, arg)
	}
}
