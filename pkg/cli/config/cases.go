package config

import (
	_ "embed"
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/asclepius/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

//go:embed cases.toml
var defaultCases []byte

// caseFile is the on-disk shape of a case set
type caseFile struct {
	Cases []model.Case `toml:"case"`
}

// Cases holds CLI flags for the reference case set
type Cases struct {
	path string
}

// Flags returns CLI flags for case set configuration
func (c *Cases) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "cases",
			Usage:       "Path to a TOML case set (embedded default set when empty)",
			Category:    "Matcher",
			Sources:     cli.EnvVars("ASCLEPIUS_CASES"),
			Destination: &c.path,
		},
	}
}

// LogAttrs returns log attributes for the case set configuration
func (c *Cases) LogAttrs() []slog.Attr {
	source := c.path
	if source == "" {
		source = "embedded"
	}
	return []slog.Attr{
		slog.String("source", source),
	}
}

// Configure loads and validates the case set
func (c *Cases) Configure() (model.CaseSet, error) {
	data := defaultCases
	if c.path != "" {
		// #nosec G304 - path is expected to be provided by CLI argument
		raw, err := os.ReadFile(c.path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, goerr.Wrap(ErrConfigNotFound, "case file not found", goerr.V(ConfigPathKey, c.path))
			}
			return nil, goerr.Wrap(err, "failed to read case file", goerr.V(ConfigPathKey, c.path))
		}
		data = raw
	}

	cases, err := ParseCases(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load case set", goerr.V(ConfigPathKey, c.path))
	}
	return cases, nil
}

// ParseCases decodes a TOML case set of [[case]] tables and validates it
func ParseCases(data []byte) (model.CaseSet, error) {
	var f caseFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, goerr.Wrap(ErrInvalidCases, "failed to parse TOML", goerr.V("cause", err.Error()))
	}

	cases := model.CaseSet(f.Cases)
	if len(cases) == 0 {
		return nil, goerr.Wrap(ErrInvalidCases, "no cases defined")
	}
	for i := range cases {
		if err := cases[i].Validate(); err != nil {
			return nil, goerr.Wrap(ErrInvalidCases, err.Error(), goerr.V(CaseIndexKey, i))
		}
	}

	return cases, nil
}
