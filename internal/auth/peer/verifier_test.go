package peer

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horao-cloud/horao/internal/auth"
	"github.com/horao-cloud/horao/internal/observability"
	"github.com/horao-cloud/horao/internal/rbac"
)

const testSecret = "shared-test-secret"

// peerToken builds a signed bearer header for the given peer identifier.
func peerToken(t *testing.T, secret, peerID string, expiresIn time.Duration) string {
	t.Helper()

	builder := jwt.NewBuilder().
		IssuedAt(time.Now()).
		Expiration(time.Now().Add(expiresIn))
	if peerID != "" {
		builder = builder.Claim(IdentityClaim, peerID)
	}

	tok, err := builder.Build()
	require.NoError(t, err)

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, []byte(secret)))
	require.NoError(t, err)

	return "Bearer " + string(signed)
}

func testConfig() *Config {
	return &Config{
		Secret:         testSecret,
		AllowedOrigins: []string{"10.0.0"},
		Strict:         true,
	}
}

func newTestVerifier(cfg *Config) *Verifier {
	return NewVerifier(cfg, WithVerifierLogger(observability.NopLogger()))
}

func TestVerifier_Verified(t *testing.T) {
	t.Parallel()

	v := newTestVerifier(testConfig())

	identity, err := v.Verify(context.Background(), peerToken(t, testSecret, "node-a", time.Hour), "10.0.0.5")
	require.NoError(t, err)

	assert.Equal(t, "node-a", identity.ClaimedID)
	assert.Equal(t, "10.0.0.5", identity.VerifiedOrigin)
	assert.False(t, identity.CleanOrigin())
	assert.Contains(t, identity.TokenClaims, IdentityClaim)
}

func TestVerifier_StrictOriginMismatchNeverReachesToken(t *testing.T) {
	t.Parallel()

	v := newTestVerifier(testConfig())

	// A token that would fail verification: if origin rejection happened
	// after token checks, the error would be ErrTokenInvalid instead.
	_, err := v.Verify(context.Background(), peerToken(t, "wrong-secret", "node-a", time.Hour), "192.168.1.5")
	assert.ErrorIs(t, err, auth.ErrOriginRejected)
	assert.NotErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestVerifier_LenientOriginMismatchStillVerifies(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Strict = false
	v := newTestVerifier(cfg)

	identity, err := v.Verify(context.Background(), peerToken(t, testSecret, "node-a", time.Hour), "192.168.1.5")
	require.NoError(t, err)
	assert.Equal(t, "node-a", identity.ClaimedID)
	assert.Equal(t, "192.168.1.5", identity.VerifiedOrigin)
}

func TestVerifier_LenientModeStillRejectsBadTokens(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Strict = false
	v := newTestVerifier(cfg)

	_, err := v.Verify(context.Background(), peerToken(t, "wrong-secret", "node-a", time.Hour), "192.168.1.5")
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestVerifier_TokenRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
	}{
		{"wrong secret", ""},
		{"expired", ""},
		{"missing peer claim", ""},
		{"not a jwt", "Bearer not.a.token"},
		{"garbage", "Bearer zzzz"},
	}
	tests[0].header = peerToken(t, "wrong-secret", "node-a", time.Hour)
	tests[1].header = peerToken(t, testSecret, "node-a", -time.Hour)
	tests[2].header = peerToken(t, testSecret, "", time.Hour)

	v := newTestVerifier(testConfig())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := v.Verify(context.Background(), tt.header, "10.0.0.5")
			assert.ErrorIs(t, err, auth.ErrTokenInvalid)
			assert.True(t, auth.IsAuthError(err))

			// The client-visible message stays generic.
			assert.Equal(t, "access not allowed for 10.0.0.5", err.Error())
		})
	}
}

func TestVerifier_UnsignedTokenRejected(t *testing.T) {
	t.Parallel()

	// Classic alg=none downgrade: well-formed, carries the claim, has no
	// signature. Verification must fail, not fall through.
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	claims := base64.RawURLEncoding.EncodeToString([]byte(`{"peer":"node-a","exp":4102444800}`))

	v := newTestVerifier(testConfig())
	_, err := v.Verify(context.Background(), "Bearer "+header+"."+claims+".", "10.0.0.5")
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestVerifier_Declines(t *testing.T) {
	t.Parallel()

	v := newTestVerifier(testConfig())

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"other scheme", "Basic dXNlcjpwYXNz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := v.Verify(context.Background(), tt.header, "10.0.0.5")
			assert.ErrorIs(t, err, auth.ErrNoCredentials)
		})
	}
}

func TestVerifier_MalformedHeaderRejected(t *testing.T) {
	t.Parallel()

	v := newTestVerifier(testConfig())

	_, err := v.Verify(context.Background(), "Bearer too many parts", "10.0.0.5")
	assert.ErrorIs(t, err, auth.ErrCredentialMalformed)
}

func TestVerifier_IncompleteConfigDisables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  *Config
	}{
		{"no secret", &Config{AllowedOrigins: []string{"10.0.0"}, Strict: true}},
		{"no allow-list", &Config{Secret: testSecret, Strict: true}},
		{"nil config", nil},
	}

	header := peerToken(t, testSecret, "node-a", time.Hour)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v := newTestVerifier(tt.cfg)

			// Disabled is "no opinion", not deny-all: even a valid
			// credential passes through to the next mechanism.
			_, err := v.Verify(context.Background(), header, "10.0.0.5")
			assert.ErrorIs(t, err, auth.ErrNoCredentials)
		})
	}
}

func TestVerifier_Idempotent(t *testing.T) {
	t.Parallel()

	v := newTestVerifier(testConfig())
	header := peerToken(t, testSecret, "node-a", time.Hour)

	for i := 0; i < 3; i++ {
		identity, err := v.Verify(context.Background(), header, "10.0.0.5")
		require.NoError(t, err)
		assert.Equal(t, "node-a", identity.ClaimedID)
	}
}

func TestVerifier_Authenticate(t *testing.T) {
	t.Parallel()

	v := newTestVerifier(testConfig())

	session, err := v.Authenticate(context.Background(), &auth.Request{
		Authorization: peerToken(t, testSecret, "node-a", time.Hour),
		Origin:        "10.0.0.5",
	})
	require.NoError(t, err)

	identity, ok := session.Actor().(*auth.Peer)
	require.True(t, ok)
	assert.Equal(t, "node-a", identity.ClaimedID)

	// A peer session holds exactly the peer role bundle.
	assert.True(t, session.Check(rbac.NamespacePeer, rbac.LevelWrite))
	assert.False(t, session.Check(rbac.NamespaceSystem, rbac.LevelRead))
}
