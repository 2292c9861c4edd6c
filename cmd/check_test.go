package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appi/internal/formatting"
)

const checkGraph = `
components:
  - name: env
    type: env
  - name: logger
    type: logger
    deps: [env]
  - name: http
    type: http
    deps: [env, logger]
`

func writeGraphFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "appi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func executeCheck(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newCheckCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SilenceErrors = true
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheck_Table(t *testing.T) {
	out, err := executeCheck(t, "--config", writeGraphFile(t, checkGraph))
	require.NoError(t, err)

	assert.Contains(t, out, "DEPENDS ON")
	assert.Contains(t, out, "env, logger")
	assert.Contains(t, out, "Total: 3 components")
}

func TestCheck_JSON(t *testing.T) {
	out, err := executeCheck(t, "--config", writeGraphFile(t, checkGraph), "-o", "json")
	require.NoError(t, err)

	var plan formatting.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	require.Len(t, plan.Components, 3)
	assert.Equal(t, "env", plan.Components[0].Name)
	assert.Equal(t, "http", plan.Components[2].Type)
	assert.Equal(t, []string{"env", "logger"}, plan.Components[2].Deps)
}

func TestCheck_YAML(t *testing.T) {
	out, err := executeCheck(t, "--config", writeGraphFile(t, checkGraph), "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "name: logger")
}

func TestCheck_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		args     []string
		wantCode int
	}{
		{
			name:     "unknown output format",
			content:  checkGraph,
			args:     []string{"-o", "xml"},
			wantCode: ExitCodeError,
		},
		{
			name:     "unknown type",
			content:  "components:\n  - name: db\n    type: database\n",
			wantCode: ExitCodeInvalidGraph,
		},
		{
			name:     "cycle",
			content:  "components:\n  - name: first\n    type: env\n    deps: [second]\n  - name: second\n    type: env\n    deps: [first]\n",
			wantCode: ExitCodeInvalidGraph,
		},
		{
			name:     "malformed",
			content:  "components: [\n",
			wantCode: ExitCodeError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--config", writeGraphFile(t, tt.content)}, tt.args...)
			_, err := executeCheck(t, args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, getExitCode(err))
		})
	}
}
