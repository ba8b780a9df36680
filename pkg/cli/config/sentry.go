package config

import (
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Sentry holds CLI flags for error reporting
type Sentry struct {
	dsn         string
	environment string
}

// Flags returns CLI flags for Sentry configuration
func (s *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for error reporting (disabled when empty)",
			Category:    "Sentry",
			Sources:     cli.EnvVars("ASCLEPIUS_SENTRY_DSN"),
			Destination: &s.dsn,
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment name",
			Value:       "development",
			Category:    "Sentry",
			Sources:     cli.EnvVars("ASCLEPIUS_SENTRY_ENV"),
			Destination: &s.environment,
		},
	}
}

// LogAttrs returns log attributes for the Sentry configuration
func (s *Sentry) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Bool("enabled", s.dsn != ""),
		slog.String("environment", s.environment),
	}
}

// Configure initializes the Sentry client. Returns a flush function; it is a no-op
// when no DSN is configured.
func (s *Sentry) Configure(release string) (func(), error) {
	if s.dsn == "" {
		return func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         s.dsn,
		Environment: s.environment,
		Release:     release,
	}); err != nil {
		return func() {}, goerr.Wrap(err, "failed to initialize sentry", goerr.V("environment", s.environment))
	}

	return func() {
		sentry.Flush(2 * time.Second)
	}, nil
}
