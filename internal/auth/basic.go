package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/horao-cloud/horao/internal/observability"
	"github.com/horao-cloud/horao/internal/rbac"
)

// ErrBasicAuthInProduction is returned when the basic backend is constructed
// in a production environment.
var ErrBasicAuthInProduction = errors.New("basic auth must not be used in production")

// BasicBackend authenticates the Basic scheme against a local credential
// store. It exists for development and testing only and refuses to be
// constructed in production mode.
type BasicBackend struct {
	store    *CredentialStore
	resolver GroupResolver
	logger   observability.Logger
}

// BasicOption is a functional option for the basic backend.
type BasicOption func(*BasicBackend)

// WithBasicLogger sets the logger.
func WithBasicLogger(logger observability.Logger) BasicOption {
	return func(b *BasicBackend) {
		b.logger = logger
	}
}

// NewBasicBackend creates a basic-credential backend. production must report
// the deployment environment; passing true is a construction error.
func NewBasicBackend(store *CredentialStore, resolver GroupResolver, production bool, opts ...BasicOption) (*BasicBackend, error) {
	if production {
		return nil, ErrBasicAuthInProduction
	}
	if store == nil {
		return nil, errors.New("credential store is required")
	}
	if resolver == nil {
		resolver = DefaultResolver()
	}

	b := &BasicBackend{
		store:    store,
		resolver: resolver,
		logger:   observability.NopLogger(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

// Name identifies the backend in logs and metrics.
func (b *BasicBackend) Name() string {
	return "basic"
}

// Authenticate decodes a Basic credential and verifies it against the store.
// Credentials of any other scheme are declined, not rejected.
func (b *BasicBackend) Authenticate(ctx context.Context, req *Request) (*rbac.Session, error) {
	scheme, encoded, err := ParseAuthorization(req.Authorization)
	if err != nil {
		if errors.Is(err, ErrNoCredentials) {
			return nil, ErrNoCredentials
		}
		return nil, NewAuthError(b.Name(), req.Origin, "malformed authorization header", ErrCredentialMalformed)
	}
	if scheme != SchemeBasic {
		return nil, ErrNoCredentials
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, NewAuthError(b.Name(), req.Origin, "invalid base64 in basic credentials", ErrCredentialMalformed)
	}

	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return nil, NewAuthError(b.Name(), req.Origin, "basic credentials missing separator", ErrCredentialMalformed)
	}

	groups, err := b.store.Verify(username, password)
	if err != nil {
		return nil, NewAuthError(b.Name(), req.Origin, "credential verification failed for "+username, err)
	}

	user := &LocalUser{Name: username, Groups: groups}
	bundles := b.resolver.Resolve(groups)

	b.logger.WithContext(ctx).Debug("local user authenticated",
		observability.String("user", username),
		observability.Strings("groups", groups),
		observability.Int("bundles", len(bundles)),
	)

	return rbac.NewSession(user, bundles...), nil
}

// Ensure BasicBackend implements Backend.
var _ Backend = (*BasicBackend)(nil)
