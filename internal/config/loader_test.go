package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeGraphFile writes content to a graph file in a temporary directory.
func writeGraphFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "appi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const carGraph = `
settings:
  shutdownTimeout: 3s
components:
  - name: env
    type: env
    options:
      APP_HOST: '{{ env "APPI_TEST_HOST" | default "0.0.0.0" }}'
      APP_PORT: '{{ .Env.APPI_TEST_PORT }}'
      SELF: '{{ .Name }}/{{ .Type }}'
  - name: logger
    type: logger
    deps: [env]
  - name: http
    type: http
    deps: [env, logger]
`

func TestLoadGraph(t *testing.T) {
	t.Setenv("APPI_TEST_PORT", "9000")
	path := writeGraphFile(t, carGraph)

	cfg, err := LoadGraph(path, []string{"env", "logger", "http"})
	require.NoError(t, err)

	assert.Equal(t, []string{"env", "logger", "http"}, cfg.Names())
	assert.Equal(t, 3*time.Second, cfg.Settings.ShutdownTimeout)
	assert.Equal(t, DefaultLogLevel, cfg.Settings.LogLevel)

	env := cfg.Components[0]
	assert.Equal(t, "0.0.0.0", env.Options["APP_HOST"])
	assert.Equal(t, "9000", env.Options["APP_PORT"])
	assert.Equal(t, "env/env", env.Options["SELF"])

	assert.Equal(t, []string{"env", "logger"}, cfg.Components[2].Deps)
}

func TestLoadGraph_Defaults(t *testing.T) {
	path := writeGraphFile(t, `
components:
  - name: clock
    type: clock
`)

	cfg, err := LoadGraph(path, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultShutdownTimeout, cfg.Settings.ShutdownTimeout)
	assert.Equal(t, DefaultLogLevel, cfg.Settings.LogLevel)
}

func TestLoadGraph_MissingFile(t *testing.T) {
	_, err := LoadGraph(filepath.Join(t.TempDir(), "missing.yaml"), nil)

	var ce *ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ErrorTypeIO, ce.ErrorType)
	assert.Equal(t, "graph file not found", ce.Message)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, ce.DetailedError(), "Suggestions:")
}

func TestLoadGraph_ParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed yaml", content: "components: [\n"},
		{name: "unknown field", content: "components:\n  - name: env\n    type: env\n    depends: [x]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadGraph(writeGraphFile(t, tt.content), nil)

			var ce *ConfigurationError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, ErrorTypeParse, ce.ErrorType)
			assert.Equal(t, "appi.yaml", ce.FileName)
		})
	}
}

func TestLoadGraph_TemplateError(t *testing.T) {
	path := writeGraphFile(t, `
components:
  - name: env
    type: env
    options:
      PORT: '{{ .Missing }}'
`)

	_, err := LoadGraph(path, nil)

	var ce *ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ErrorTypeTemplate, ce.ErrorType)
	assert.Contains(t, err.Error(), `component "env"`)
}

func TestLoadGraph_ValidationErrors(t *testing.T) {
	path := writeGraphFile(t, `
components:
  - name: env
    type: env
  - name: env
    type: database
    deps: [cache]
`)

	_, err := LoadGraph(path, []string{"env", "http"})

	var ce *ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ErrorTypeValidation, ce.ErrorType)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 3)
	assert.Equal(t, "components[1].name", verrs[0].Field)
	assert.Equal(t, "components[1].type", verrs[1].Field)
	assert.Equal(t, "components[1].deps[0]", verrs[2].Field)
}

func TestParseGraph_Empty(t *testing.T) {
	_, err := ParseGraph("empty.yaml", nil, nil)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "field 'components': must have at least one item for graph", verrs.Error())
}

func TestResolvePath(t *testing.T) {
	t.Setenv(ConfigEnvVar, "")
	assert.Equal(t, DefaultConfigFile, ResolvePath(""))
	assert.Equal(t, "explicit.yaml", ResolvePath("explicit.yaml"))

	t.Setenv(ConfigEnvVar, "/etc/appi/graph.yaml")
	assert.Equal(t, "/etc/appi/graph.yaml", ResolvePath(""))
	assert.Equal(t, "explicit.yaml", ResolvePath("explicit.yaml"))
}
