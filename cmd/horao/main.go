// Package main is the entry point for the horao gateway.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/horao-cloud/horao/internal/auth"
	"github.com/horao-cloud/horao/internal/auth/peer"
	"github.com/horao-cloud/horao/internal/gateway"
	"github.com/horao-cloud/horao/internal/observability"
)

// Version information (set at build time).
var (
	version   = "dev"
	gitCommit = "unknown"
)

// cliFlags holds command line flags.
type cliFlags struct {
	address         string
	logLevel        string
	logFormat       string
	credentialsPath string
	production      bool
	showVersion     bool
}

func main() {
	flags := parseFlags()

	if flags.showVersion {
		fmt.Printf("horao version %s (%s)\n", version, gitCommit)
		return
	}

	logger := initLogger(flags)
	defer func() { _ = logger.Sync() }()

	backend := buildAuthChain(flags, logger)

	cfg := gateway.DefaultServerConfig()
	cfg.Address = flags.address
	server := gateway.NewServer(cfg, backend, logger)

	runServer(server, logger)
}

// parseFlags parses command line flags, with environment defaults.
func parseFlags() cliFlags {
	address := flag.String("address", getEnvOrDefault("HORAO_LISTEN_ADDRESS", ":8080"),
		"Listen address")
	logLevel := flag.String("log-level", getEnvOrDefault("HORAO_LOG_LEVEL", "info"),
		"Log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", getEnvOrDefault("HORAO_LOG_FORMAT", "json"),
		"Log format (json, console)")
	credentialsPath := flag.String("credentials", os.Getenv("HORAO_CREDENTIALS"),
		"Path to the development credential store (YAML); empty disables basic auth")
	production := flag.Bool("production", os.Getenv("HORAO_ENVIRONMENT") == "production",
		"Run in production mode (disables basic auth)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	return cliFlags{
		address:         *address,
		logLevel:        *logLevel,
		logFormat:       *logFormat,
		credentialsPath: *credentialsPath,
		production:      *production,
		showVersion:     *showVersion,
	}
}

// initLogger initializes the logger.
func initLogger(flags cliFlags) observability.Logger {
	logger, err := observability.NewLogger(observability.LogConfig{
		Level:  flags.logLevel,
		Format: flags.logFormat,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

// buildAuthChain wires the authentication backends. The peer verifier is
// always present and disables itself when its configuration is incomplete;
// the basic backend only runs outside production with a credential store.
func buildAuthChain(flags cliFlags, logger observability.Logger) auth.Backend {
	peerCfg := peer.ConfigFromEnv()
	if !peerCfg.Enabled() {
		logger.Warn("peer authentication disabled: shared secret or allow-list not configured")
	}

	backends := []auth.Backend{
		peer.NewVerifier(peerCfg, peer.WithVerifierLogger(logger)),
	}

	if flags.credentialsPath != "" {
		store, err := auth.LoadCredentialStore(flags.credentialsPath)
		if err != nil {
			logger.Error("failed to load credential store", observability.Error(err))
			os.Exit(1)
		}

		basic, err := auth.NewBasicBackend(store, auth.DefaultResolver(), flags.production,
			auth.WithBasicLogger(logger))
		if err != nil {
			logger.Error("failed to initialize basic auth", observability.Error(err))
			os.Exit(1)
		}

		logger.Warn("basic auth enabled; development use only",
			observability.Int("users", store.Len()),
		)
		backends = append(backends, basic)
	}

	return auth.NewChain(backends, auth.WithChainLogger(logger))
}

// runServer starts the server and blocks until a shutdown signal arrives.
func runServer(server *gateway.Server, logger observability.Logger) {
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", observability.Error(err))
			os.Exit(1)
		}
	case sig := <-sigCh:
		logger.Info("shutting down", observability.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown failed", observability.Error(err))
			os.Exit(1)
		}
	}
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
