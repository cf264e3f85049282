package peer

import (
	"os"
	"strings"
)

// Environment variables the verifier configuration is loaded from.
const (
	// EnvSecret holds the shared secret used to verify token signatures.
	EnvSecret = "HORAO_PEER_SECRET"

	// EnvPeers holds the comma-separated allow-list of origin substrings.
	EnvPeers = "HORAO_PEERS"

	// EnvStrict toggles strict origin matching; any value other than
	// "false" keeps the strict default.
	EnvStrict = "HORAO_PEER_STRICT"
)

// Config is the verifier configuration, constructed once at startup and
// passed by reference. It is read-only after construction.
type Config struct {
	// Secret is the shared secret that token signatures are verified with.
	Secret string

	// AllowedOrigins are substrings an observed origin must contain one of.
	AllowedOrigins []string

	// Strict makes an origin mismatch fatal. Lenient mode is an explicit
	// opt-in for constrained deployments; the mismatch is still logged.
	Strict bool
}

// ConfigFromEnv loads the verifier configuration from the environment.
func ConfigFromEnv() *Config {
	cfg := &Config{
		Secret: os.Getenv(EnvSecret),
		Strict: os.Getenv(EnvStrict) != "false",
	}

	if peers := os.Getenv(EnvPeers); peers != "" {
		for _, origin := range strings.Split(peers, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	return cfg
}

// Enabled reports whether the configuration is complete enough to verify
// peers. An incomplete configuration disables the verifier entirely.
func (c *Config) Enabled() bool {
	return c != nil && c.Secret != "" && len(c.AllowedOrigins) > 0
}
