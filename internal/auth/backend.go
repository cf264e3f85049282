package auth

import (
	"context"
	"errors"
	"time"

	"github.com/horao-cloud/horao/internal/observability"
	"github.com/horao-cloud/horao/internal/rbac"
)

// Request carries the two inputs a backend may consult: the Authorization
// header value and the transport-observed client origin. The origin comes
// from the connection, never from anything the remote party supplied.
type Request struct {
	// Authorization is the raw Authorization header value, possibly empty.
	Authorization string

	// Origin is the observed network origin of the caller.
	Origin string
}

// Backend authenticates a request. It returns a populated session on
// success, ErrNoCredentials to decline (pass-through to the next backend),
// or a terminal *AuthError.
type Backend interface {
	// Name identifies the backend in logs and metrics.
	Name() string

	// Authenticate authenticates the request.
	Authenticate(ctx context.Context, req *Request) (*rbac.Session, error)
}

// Chain tries each backend in order. The first backend that returns either a
// session or a terminal error decides the request; backends that decline are
// skipped. A chain where every backend declines yields ErrNoCredentials.
type Chain struct {
	backends []Backend
	logger   observability.Logger
	metrics  *Metrics
}

// ChainOption is a functional option for the chain.
type ChainOption func(*Chain)

// WithChainLogger sets the logger.
func WithChainLogger(logger observability.Logger) ChainOption {
	return func(c *Chain) {
		c.logger = logger
	}
}

// WithChainMetrics sets the metrics.
func WithChainMetrics(metrics *Metrics) ChainOption {
	return func(c *Chain) {
		c.metrics = metrics
	}
}

// NewChain creates a backend chain.
func NewChain(backends []Backend, opts ...ChainOption) *Chain {
	c := &Chain{
		backends: backends,
		logger:   observability.NopLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.metrics == nil {
		c.metrics = NewMetrics("horao")
	}

	return c
}

// Name identifies the chain in logs and metrics.
func (c *Chain) Name() string {
	return "chain"
}

// Authenticate runs the chain.
func (c *Chain) Authenticate(ctx context.Context, req *Request) (*rbac.Session, error) {
	start := time.Now()

	for _, backend := range c.backends {
		session, err := backend.Authenticate(ctx, req)
		if err == nil {
			c.metrics.RecordAttempt(backend.Name(), "success", time.Since(start))
			return session, nil
		}
		if errors.Is(err, ErrNoCredentials) {
			continue
		}

		c.metrics.RecordAttempt(backend.Name(), "failure", time.Since(start))

		var authErr *AuthError
		if errors.As(err, &authErr) {
			c.metrics.RecordFailure(backend.Name(), failureReason(authErr.Cause))
			c.logger.WithContext(ctx).Warn("authentication rejected",
				observability.String("backend", authErr.Backend),
				observability.String("origin", authErr.Origin),
				observability.String("reason", authErr.Reason),
			)
		}
		return nil, err
	}

	c.metrics.RecordAttempt("none", "no_credentials", time.Since(start))
	return nil, ErrNoCredentials
}

// failureReason maps a sentinel cause to a metrics label.
func failureReason(cause error) string {
	switch {
	case errors.Is(cause, ErrCredentialMalformed):
		return "malformed"
	case errors.Is(cause, ErrOriginRejected):
		return "origin_rejected"
	case errors.Is(cause, ErrTokenInvalid):
		return "token_invalid"
	case errors.Is(cause, ErrInvalidCredentials):
		return "invalid_credentials"
	default:
		return "other"
	}
}

// Ensure Chain implements Backend.
var _ Backend = (*Chain)(nil)
