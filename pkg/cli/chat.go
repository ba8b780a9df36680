package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/asclepius/pkg/cli/config"
	"github.com/secmon-lab/asclepius/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdChat() *cli.Command {
	var apiKey string
	var medicalDisclaimer bool
	var upstreamCfg config.Upstream

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "api-key",
			Usage:       "API key for the upstream chat service",
			Sources:     cli.EnvVars("ASCLEPIUS_API_KEY"),
			Destination: &apiKey,
		},
		&cli.BoolFlag{
			Name:        "medical-disclaimer",
			Usage:       "Prepend the medical-safety system prompt",
			Sources:     cli.EnvVars("ASCLEPIUS_MEDICAL_DISCLAIMER"),
			Destination: &medicalDisclaimer,
		},
	}
	flags = append(flags, upstreamCfg.Flags()...)

	return &cli.Command{
		Name:      "chat",
		Usage:     "Send one message to the chat relay and print the reply",
		ArgsUsage: "<message>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			completer, err := upstreamCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure upstream")
			}

			var opts []usecase.ChatOption
			if medicalDisclaimer {
				opts = append(opts, usecase.WithMedicalDisclaimer())
			}
			uc := usecase.NewChatUseCase(completer, opts...)

			out, err := uc.Chat(ctx, usecase.ChatInput{
				APIKey:  apiKey,
				Message: strings.TrimSpace(strings.Join(c.Args().Slice(), " ")),
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(c.Root().Writer, out.Response)
			return nil
		},
	}
}
