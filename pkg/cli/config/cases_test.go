package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/asclepius/pkg/cli/config"
	"github.com/secmon-lab/asclepius/pkg/usecase"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestCasesConfigure(t *testing.T) {
	t.Run("embedded default set", func(t *testing.T) {
		cases, err := config.NewCasesForTest("").Configure()
		gt.NoError(t, err).Required()
		gt.Number(t, len(cases)).Greater(10)
		gt.Value(t, cases[0].Diagnosis).Equal("Flu")
	})

	t.Run("file replaces default set", func(t *testing.T) {
		path := writeFile(t, "cases.toml", `
[[case]]
symptoms = "fever and cough"
diagnosis = "flu"
`)
		cases, err := config.NewCasesForTest(path).Configure()
		gt.NoError(t, err).Required()
		gt.Array(t, cases).Length(1)
		gt.Value(t, cases[0].Symptoms).Equal("fever and cough")
		gt.Value(t, cases[0].Diagnosis).Equal("flu")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.NewCasesForTest(filepath.Join(t.TempDir(), "none.toml")).Configure()
		gt.Error(t, err).Is(config.ErrConfigNotFound)
	})

	t.Run("duplicate symptoms are accepted", func(t *testing.T) {
		path := writeFile(t, "dup.toml", `
[[case]]
symptoms = "itchy skin"
diagnosis = "first"

[[case]]
symptoms = "itchy skin"
diagnosis = "second"
`)
		cases, err := config.NewCasesForTest(path).Configure()
		gt.NoError(t, err).Required()
		gt.Array(t, cases).Length(2)
	})
}

func TestParseCases(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{name: "broken TOML", data: "[[case]\nsymptoms = "},
		{name: "no cases", data: "# empty\n"},
		{name: "missing symptoms", data: "[[case]]\ndiagnosis = \"flu\"\n"},
		{name: "missing diagnosis", data: "[[case]]\nsymptoms = \"fever\"\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.ParseCases([]byte(tc.data))
			gt.Error(t, err).Is(config.ErrInvalidCases)
		})
	}
}

func TestDefaultCasesMatchThemselves(t *testing.T) {
	cases, err := config.ParseCases(config.DefaultCasesForTest())
	gt.NoError(t, err).Required()

	uc, err := usecase.NewDiagnosisUseCase(cases)
	gt.NoError(t, err).Required()

	for _, c := range cases {
		t.Run(c.Diagnosis, func(t *testing.T) {
			result := uc.Diagnose(c.Symptoms)
			gt.Bool(t, strings.HasPrefix(result, "Possible diagnosis: "+c.Diagnosis+" ")).True()
		})
	}
}
