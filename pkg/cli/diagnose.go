package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/asclepius/pkg/cli/config"
	"github.com/secmon-lab/asclepius/pkg/domain/model"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

type diagnoseResult struct {
	Input      string  `json:"input"`
	Result     string  `json:"result"`
	Matched    bool    `json:"matched"`
	Diagnosis  string  `json:"diagnosis,omitempty"`
	Confidence float64 `json:"confidence"`
}

func cmdDiagnose() *cli.Command {
	var noColor bool
	var jsonOutput bool
	var casesCfg config.Cases

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "no-color",
			Usage:       "Disable colored output",
			Sources:     cli.EnvVars("ASCLEPIUS_NO_COLOR"),
			Destination: &noColor,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print one JSON object per input",
			Destination: &jsonOutput,
		},
	}
	flags = append(flags, casesCfg.Flags()...)

	return &cli.Command{
		Name:      "diagnose",
		Aliases:   []string{"d"},
		Usage:     "Match symptom descriptions against the case set",
		ArgsUsage: "[symptoms...]  (one description per non-empty argument, or per stdin line when omitted)",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := newDiagnosisUseCase(&casesCfg)
			if err != nil {
				return err
			}

			inputs := c.Args().Slice()
			if len(inputs) == 0 {
				inputs, err = readLines(c)
				if err != nil {
					return err
				}
			}

			results := make([]*model.Diagnosis, len(inputs))
			var eg errgroup.Group
			eg.SetLimit(runtime.NumCPU())
			for i, input := range inputs {
				eg.Go(func() error {
					results[i] = uc.Match(input)
					return nil
				})
			}
			if err := eg.Wait(); err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(c, inputs, results)
			}
			printText(c, results, noColor)
			return nil
		},
	}
}

func readLines(c *cli.Command) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(c.Root().Reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to read symptoms from stdin")
	}
	return lines, nil
}

func printJSON(c *cli.Command, inputs []string, results []*model.Diagnosis) error {
	enc := json.NewEncoder(c.Root().Writer)
	for i, d := range results {
		out := diagnoseResult{
			Input:      inputs[i],
			Result:     d.Message(),
			Matched:    d.Matched,
			Confidence: d.Confidence,
		}
		if d.Matched && d.Case != nil {
			out.Diagnosis = d.Case.Diagnosis
		}
		if err := enc.Encode(out); err != nil {
			return goerr.Wrap(err, "failed to write result", goerr.V("input", inputs[i]))
		}
	}
	return nil
}

func printText(c *cli.Command, results []*model.Diagnosis, noColor bool) {
	matched := color.New(color.FgGreen, color.Bold)
	declined := color.New(color.FgYellow)
	if noColor {
		matched.DisableColor()
		declined.DisableColor()
	}

	w := c.Root().Writer
	for _, d := range results {
		if d.Matched {
			fmt.Fprintln(w, matched.Sprint(d.Message()))
		} else {
			fmt.Fprintln(w, declined.Sprint(d.Message()))
		}
	}
}
