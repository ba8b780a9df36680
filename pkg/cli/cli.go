package cli

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/asclepius/pkg/cli/config"
	"github.com/secmon-lab/asclepius/pkg/utils/errutil"
	"github.com/secmon-lab/asclepius/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, args []string, version string) error {
	return run(ctx, args, version, os.Stdin, os.Stdout)
}

func run(ctx context.Context, args []string, version string, stdin io.Reader, stdout io.Writer) error {
	// .env must be applied before flags read their env sources
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return goerr.Wrap(err, "failed to load .env")
	}

	var loggerCfg config.Logger
	var sentryCfg config.Sentry
	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	var flags []cli.Flag
	flags = append(flags, loggerCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	app := &cli.Command{
		Name:      "asclepius",
		Usage:     "Symptom matcher and chat relay for an AI doctor assistant",
		Version:   version,
		Flags:     flags,
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: os.Stderr,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closers = append(closers, f)

			flush, err := sentryCfg.Configure(version)
			if err != nil {
				return ctx, err
			}
			closers = append(closers, flush)

			logging.Default().Debug("Starting asclepius", "logger", loggerCfg, slog.GroupAttrs("sentry", sentryCfg.LogAttrs()...))
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdDiagnose(),
			cmdChat(),
			cmdValidate(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		return errutil.Handle(ctx, err, "failed to run app")
	}

	return nil
}
