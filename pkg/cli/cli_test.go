package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/asclepius/pkg/cli"
	"github.com/secmon-lab/asclepius/pkg/domain/model"
)

const testCases = `
[[case]]
symptoms = "fever and cough"
diagnosis = "flu"

[[case]]
symptoms = "itchy red rash"
diagnosis = "eczema"
`

func writeCases(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cases.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout bytes.Buffer
	err := cli.RunWithIO(context.Background(), append([]string{"asclepius"}, args...), "test", strings.NewReader(stdin), &stdout)
	return stdout.String(), err
}

func TestRun_ValidateCommand(t *testing.T) {
	t.Run("embedded cases", func(t *testing.T) {
		_, err := runApp(t, "", "validate")
		gt.NoError(t, err)
	})

	t.Run("valid file", func(t *testing.T) {
		_, err := runApp(t, "", "validate", "--cases", writeCases(t, testCases))
		gt.NoError(t, err)
	})

	t.Run("case without diagnosis", func(t *testing.T) {
		_, err := runApp(t, "", "validate", "--cases", writeCases(t, "[[case]]\nsymptoms = \"fever\"\n"))
		gt.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := runApp(t, "", "validate", "--cases", filepath.Join(t.TempDir(), "none.toml"))
		gt.Error(t, err)
	})
}

func TestRun_DiagnoseCommand(t *testing.T) {
	casesPath := writeCases(t, testCases)

	t.Run("arguments in order", func(t *testing.T) {
		out, err := runApp(t, "", "diagnose", "--no-color", "--cases", casesPath,
			"I have a fever and cough", "☃☃☃", "itchy red rash")
		gt.NoError(t, err).Required()

		lines := strings.Split(strings.TrimSpace(out), "\n")
		gt.Array(t, lines).Length(3).Required()
		gt.Value(t, lines[0]).Equal("Possible diagnosis: flu (Confidence: 100.0%)")
		gt.Value(t, lines[1]).Equal(model.DeclineMessage)
		gt.Value(t, lines[2]).Equal("Possible diagnosis: eczema (Confidence: 100.0%)")
	})

	t.Run("stdin lines", func(t *testing.T) {
		out, err := runApp(t, "itchy red rash\n\nfever\n", "diagnose", "--no-color", "--cases", casesPath)
		gt.NoError(t, err).Required()

		lines := strings.Split(strings.TrimSpace(out), "\n")
		gt.Array(t, lines).Length(2).Required()
		gt.String(t, lines[0]).Contains("eczema")
		gt.String(t, lines[1]).Contains("flu")
	})

	t.Run("json output", func(t *testing.T) {
		out, err := runApp(t, "", "diagnose", "--json", "--cases", casesPath, "fever and cough", "ʘ‿ʘ ☃")
		gt.NoError(t, err).Required()

		dec := json.NewDecoder(strings.NewReader(out))
		var first, second map[string]any
		gt.NoError(t, dec.Decode(&first)).Required()
		gt.NoError(t, dec.Decode(&second)).Required()

		gt.Value(t, first["input"]).Equal("fever and cough")
		gt.Value(t, first["matched"]).Equal(true)
		gt.Value(t, first["diagnosis"]).Equal("flu")
		gt.Value(t, first["confidence"]).Equal(100.0)

		gt.Value(t, second["input"]).Equal("ʘ‿ʘ ☃")
		gt.Value(t, second["matched"]).Equal(false)
		gt.Value(t, second["result"]).Equal(model.DeclineMessage)

		err = dec.Decode(&map[string]any{})
		gt.Error(t, err)
	})

	t.Run("blank stdin lines are skipped", func(t *testing.T) {
		out, err := runApp(t, "\n  \n", "diagnose", "--json", "--cases", casesPath)
		gt.NoError(t, err).Required()
		gt.Value(t, out).Equal("")
	})
}

func TestRun_ChatCommand(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.Header.Get("Authorization")).Equal("Bearer sk-cli")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Drink water."},"finish_reason":"stop"}]}`))
	}))
	defer upstream.Close()

	t.Run("prints reply", func(t *testing.T) {
		out, err := runApp(t, "", "chat", "--api-key", "sk-cli", "--upstream-base-url", upstream.URL, "I", "feel", "dizzy")
		gt.NoError(t, err).Required()
		gt.Value(t, strings.TrimSpace(out)).Equal("Drink water.")
	})

	t.Run("api key required", func(t *testing.T) {
		t.Setenv("ASCLEPIUS_API_KEY", "")
		_, err := runApp(t, "", "chat", "--upstream-base-url", upstream.URL, "hello")
		gt.Error(t, err)
	})
}

func TestRun_InvalidLogLevel(t *testing.T) {
	_, err := runApp(t, "", "--log-level", "loud", "validate")
	gt.Error(t, err)
}
