package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/asclepius/pkg/cli/config"
	httpctrl "github.com/secmon-lab/asclepius/pkg/controller/http"
	"github.com/secmon-lab/asclepius/pkg/usecase"
	"github.com/secmon-lab/asclepius/pkg/utils/logging"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func cmdServe() *cli.Command {
	var addr string
	var medicalDisclaimer bool
	var casesCfg config.Cases
	var upstreamCfg config.Upstream

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":5000",
			Sources:     cli.EnvVars("ASCLEPIUS_ADDR"),
			Destination: &addr,
		},
		&cli.BoolFlag{
			Name:        "medical-disclaimer",
			Usage:       "Prepend the medical-safety system prompt to every chat",
			Sources:     cli.EnvVars("ASCLEPIUS_MEDICAL_DISCLAIMER"),
			Destination: &medicalDisclaimer,
		},
	}
	flags = append(flags, casesCfg.Flags()...)
	flags = append(flags, upstreamCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			uc, err := buildUseCases(&casesCfg, &upstreamCfg, medicalDisclaimer)
			if err != nil {
				return err
			}

			httpHandler, err := httpctrl.New(
				httpctrl.WithChat(uc.Chat),
				httpctrl.WithDiagnosis(uc.Diagnosis),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			eg, ctx := errgroup.WithContext(ctx)
			eg.Go(func() error {
				logger.Info("Starting HTTP server",
					"addr", addr,
					"case_count", uc.Diagnosis.CaseCount(),
					"medical_disclaimer", medicalDisclaimer,
				)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "failed to start server", goerr.V("addr", addr))
				}
				return nil
			})
			eg.Go(func() error {
				<-ctx.Done()
				logger.Info("Shutting down HTTP server")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				logger.Info("Server shutdown completed")
				return nil
			})

			return eg.Wait()
		},
	}
}

// buildUseCases loads the case set, fits the matcher and configures the chat relay
func buildUseCases(casesCfg *config.Cases, upstreamCfg *config.Upstream, medicalDisclaimer bool) (*usecase.UseCases, error) {
	diagnosisUC, err := newDiagnosisUseCase(casesCfg)
	if err != nil {
		return nil, err
	}

	completer, err := upstreamCfg.Configure()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure upstream")
	}
	logging.Default().Info("Upstream configured", slog.GroupAttrs("upstream", upstreamCfg.LogAttrs()...))

	var chatOpts []usecase.ChatOption
	if medicalDisclaimer {
		chatOpts = append(chatOpts, usecase.WithMedicalDisclaimer())
	}

	return usecase.New(
		usecase.WithDiagnosis(diagnosisUC),
		usecase.WithChat(usecase.NewChatUseCase(completer, chatOpts...)),
	), nil
}

func newDiagnosisUseCase(casesCfg *config.Cases) (*usecase.DiagnosisUseCase, error) {
	cases, err := casesCfg.Configure()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load cases")
	}

	uc, err := usecase.NewDiagnosisUseCase(cases)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build matcher")
	}
	return uc, nil
}
