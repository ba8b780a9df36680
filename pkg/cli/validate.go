package cli

import (
	"context"
	"log/slog"

	"github.com/secmon-lab/asclepius/pkg/cli/config"
	"github.com/secmon-lab/asclepius/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var casesCfg config.Cases

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the case set and fit the matcher",
		Flags:   casesCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := newDiagnosisUseCase(&casesCfg)
			if err != nil {
				return err
			}

			logging.Default().Info("Case set validation passed",
				slog.GroupAttrs("cases", casesCfg.LogAttrs()...),
				"case_count", uc.CaseCount(),
				"vocabulary_size", uc.VocabularySize(),
			)
			return nil
		},
	}
}
