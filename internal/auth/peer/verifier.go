package peer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/horao-cloud/horao/internal/auth"
	"github.com/horao-cloud/horao/internal/observability"
	"github.com/horao-cloud/horao/internal/rbac"
)

// IdentityClaim is the token claim carrying the peer identifier.
const IdentityClaim = "peer"

// Verifier verifies inbound peer credentials. It is stateless; every request
// is verified independently against the injected configuration.
type Verifier struct {
	config  *Config
	logger  observability.Logger
	metrics *Metrics
}

// VerifierOption is a functional option for the verifier.
type VerifierOption func(*Verifier)

// WithVerifierLogger sets the logger.
func WithVerifierLogger(logger observability.Logger) VerifierOption {
	return func(v *Verifier) {
		v.logger = logger
	}
}

// WithVerifierMetrics sets the metrics.
func WithVerifierMetrics(metrics *Metrics) VerifierOption {
	return func(v *Verifier) {
		v.metrics = metrics
	}
}

// NewVerifier creates a peer trust verifier.
func NewVerifier(config *Config, opts ...VerifierOption) *Verifier {
	v := &Verifier{
		config: config,
		logger: observability.NopLogger(),
	}

	for _, opt := range opts {
		opt(v)
	}

	if v.metrics == nil {
		v.metrics = NewMetrics("horao")
	}

	return v
}

// Name identifies the backend in logs and metrics.
func (v *Verifier) Name() string {
	return "peer"
}

// Authenticate implements auth.Backend. On success the session carries a
// verified Peer identity with the peer role bundle.
func (v *Verifier) Authenticate(ctx context.Context, req *auth.Request) (*rbac.Session, error) {
	identity, err := v.Verify(ctx, req.Authorization, req.Origin)
	if err != nil {
		return nil, err
	}
	return rbac.NewSession(identity, rbac.PeerBundle()), nil
}

// Verify validates a peer credential and produces the verified identity.
// The observed origin is checked before the token is; under strict mode an
// origin mismatch rejects the request without touching the token.
func (v *Verifier) Verify(ctx context.Context, authorization, origin string) (*auth.Peer, error) {
	start := time.Now()
	log := v.logger.WithContext(ctx)

	if !v.config.Enabled() {
		return nil, auth.ErrNoCredentials
	}

	scheme, token, err := auth.ParseAuthorization(authorization)
	if err != nil {
		if errors.Is(err, auth.ErrNoCredentials) {
			return nil, auth.ErrNoCredentials
		}
		v.metrics.RecordVerification("rejected", "malformed_header", time.Since(start))
		return nil, auth.NewAuthError(v.Name(), origin, "malformed authorization header", auth.ErrCredentialMalformed)
	}
	if scheme != auth.SchemeBearer {
		return nil, auth.ErrNoCredentials
	}

	matched := v.originAllowed(origin)
	if !matched {
		if v.config.Strict {
			v.metrics.RecordVerification("rejected", "origin", time.Since(start))
			return nil, auth.NewAuthError(v.Name(), origin, "origin matched no allow-list entry", auth.ErrOriginRejected)
		}
		log.Warn("peer origin matched no allow-list entry, continuing in lenient mode",
			observability.String("origin", origin),
		)
	}

	parsed, err := jwt.Parse([]byte(token),
		jwt.WithKey(jwa.HS256, []byte(v.config.Secret)),
		jwt.WithValidate(true),
	)
	if err != nil {
		// The reason stays in the log; the caller-visible error never
		// distinguishes signature, expiry, or structure failures.
		log.Debug("peer token verification failed",
			observability.String("origin", origin),
			observability.Error(err),
		)
		v.metrics.RecordVerification("rejected", "token", time.Since(start))
		return nil, auth.NewAuthError(v.Name(), origin, "token verification failed", auth.ErrTokenInvalid)
	}

	claimed, ok := parsed.Get(IdentityClaim)
	claimedID, isString := "", false
	if ok {
		claimedID, isString = claimed.(string)
	}
	if !ok || !isString || claimedID == "" {
		v.metrics.RecordVerification("rejected", "missing_claim", time.Since(start))
		return nil, auth.NewAuthError(v.Name(), origin, "token carries no peer identifier claim", auth.ErrTokenInvalid)
	}

	identity := &auth.Peer{
		ClaimedID:      claimedID,
		VerifiedOrigin: origin,
		TokenClaims:    parsed.PrivateClaims(),
	}

	log.Info("peer authenticated",
		observability.String("peer", claimedID),
		observability.String("origin", origin),
		observability.Bool("clean_origin", identity.CleanOrigin()),
	)
	v.metrics.RecordVerification("verified", "", time.Since(start))

	return identity, nil
}

// originAllowed reports whether any configured entry is a substring of the
// observed origin. Substring containment permits CIDR-prefix or hostname
// fragment matching without full CIDR parsing.
func (v *Verifier) originAllowed(origin string) bool {
	for _, allowed := range v.config.AllowedOrigins {
		if strings.Contains(origin, allowed) {
			return true
		}
	}
	return false
}

// Ensure Verifier implements auth.Backend.
var _ auth.Backend = (*Verifier)(nil)
