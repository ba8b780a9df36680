package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/asclepius/pkg/domain/interfaces"
	"github.com/secmon-lab/asclepius/pkg/service/openrouter"
	"github.com/urfave/cli/v3"
)

// Upstream holds CLI flags for the chat completion service
type Upstream struct {
	baseURL string
	model   string
	referer string
	title   string
	timeout time.Duration
}

// Flags returns CLI flags for upstream configuration
func (u *Upstream) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "upstream-base-url",
			Usage:       "Base URL of the OpenAI compatible chat completion API",
			Value:       openrouter.DefaultBaseURL,
			Category:    "Upstream",
			Sources:     cli.EnvVars("ASCLEPIUS_UPSTREAM_BASE_URL"),
			Destination: &u.baseURL,
		},
		&cli.StringFlag{
			Name:        "upstream-model",
			Usage:       "Model identifier sent with every chat request",
			Value:       openrouter.DefaultModel,
			Category:    "Upstream",
			Sources:     cli.EnvVars("ASCLEPIUS_UPSTREAM_MODEL"),
			Destination: &u.model,
		},
		&cli.StringFlag{
			Name:        "upstream-referer",
			Usage:       "HTTP-Referer attribution header",
			Value:       openrouter.DefaultReferer,
			Category:    "Upstream",
			Sources:     cli.EnvVars("ASCLEPIUS_UPSTREAM_REFERER"),
			Destination: &u.referer,
		},
		&cli.StringFlag{
			Name:        "upstream-title",
			Usage:       "X-Title attribution header",
			Value:       openrouter.DefaultTitle,
			Category:    "Upstream",
			Sources:     cli.EnvVars("ASCLEPIUS_UPSTREAM_TITLE"),
			Destination: &u.title,
		},
		&cli.DurationFlag{
			Name:        "upstream-timeout",
			Usage:       "Client timeout for one upstream call (0 means bounded by the request only)",
			Category:    "Upstream",
			Sources:     cli.EnvVars("ASCLEPIUS_UPSTREAM_TIMEOUT"),
			Destination: &u.timeout,
		},
	}
}

// LogAttrs returns log attributes for the upstream configuration
func (u *Upstream) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("base_url", u.baseURL),
		slog.String("model", u.model),
		slog.Duration("timeout", u.timeout),
	}
}

// Configure creates the chat completion client
func (u *Upstream) Configure() (interfaces.ChatCompleter, error) {
	if u.timeout < 0 {
		return nil, goerr.Wrap(ErrInvalidConfig, "upstream timeout must not be negative", goerr.V("timeout", u.timeout))
	}

	client, err := openrouter.New(
		openrouter.WithBaseURL(u.baseURL),
		openrouter.WithModel(u.model),
		openrouter.WithAttribution(u.referer, u.title),
		openrouter.WithTimeout(u.timeout),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure upstream client")
	}
	return client, nil
}
