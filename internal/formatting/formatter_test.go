package formatting

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appi/internal/compositor"
)

func samplePlan() Plan {
	return NewPlan("appi.yaml", []compositor.PlanEntry{
		{Name: "env", Kind: compositor.KindPlain, Type: "env.Env", Deps: nil},
		{Name: "logger", Kind: compositor.KindClass, Type: "*logger.Logger", Deps: []string{"env"}},
		{Name: "http", Kind: compositor.KindClass, Type: "*httpserver.Server", Deps: []string{"env", "logger"}},
	}, func(name string) string {
		if name == "env" {
			return "env"
		}
		return ""
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{input: "table", want: FormatTable},
		{input: "YAML", want: FormatYAML},
		{input: "json", want: FormatJSON},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.EqualError(t, err, `unsupported output format "xml" (use table, yaml or json)`)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewPlan(t *testing.T) {
	plan := samplePlan()

	require.Len(t, plan.Components, 3)
	assert.Equal(t, Component{Position: 1, Name: "env", Type: "env", Kind: "plain", Deps: []string{}, RequiredBy: []string{"logger", "http"}}, plan.Components[0])
	assert.Equal(t, []string{}, plan.Components[2].RequiredBy)
	assert.Equal(t, "*logger.Logger", plan.Components[1].Type)
	assert.Equal(t, 3, plan.Components[2].Position)
}

func TestNewEvents(t *testing.T) {
	events := NewEvents([]compositor.Event{
		{Component: "env", Kind: compositor.KindPlain, Phase: compositor.PhaseMake, Duration: 1500 * time.Nanosecond},
		{Component: "http", Kind: compositor.KindClass, Phase: compositor.PhaseStart, Err: errors.New("port in use")},
	})

	require.Len(t, events, 2)
	assert.Equal(t, Event{Component: "env", Phase: "make", Kind: "plain", Duration: "2µs"}, events[0])
	assert.Equal(t, "port in use", events[1].Error)
}

func TestFactory(t *testing.T) {
	f := NewFactory()

	assert.IsType(t, &TableFormatter{}, f.CreateFormatter(Options{Format: FormatTable}))
	assert.IsType(t, &YAMLFormatter{}, f.CreateFormatter(Options{Format: FormatYAML}))
	assert.IsType(t, &JSONFormatter{}, f.CreateFormatter(Options{Format: FormatJSON}))
	assert.IsType(t, &TableFormatter{}, f.CreateFormatter(Options{}))

	formatter := f.CreateFormatter(Options{Format: FormatJSON})
	formatter.SetOptions(Options{Format: FormatJSON, Quiet: true})
	assert.True(t, formatter.GetOptions().Quiet)
}

func TestTableFormatter_FormatPlan(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(Options{Format: FormatTable}).FormatPlan(&buf, samplePlan()))

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "DEPENDS ON")
	assert.Contains(t, out, "REQUIRED BY")
	assert.Contains(t, out, "env, logger")
	assert.Contains(t, out, "logger, http")
	assert.Contains(t, out, "*httpserver.Server")
	assert.Contains(t, out, "Total: 3 components in appi.yaml")
	assert.NotContains(t, out, "\x1b[")
}

func TestTableFormatter_Quiet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(Options{Quiet: true}).FormatPlan(&buf, samplePlan()))
	assert.NotContains(t, buf.String(), "Total:")
}

func TestTableFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(Options{})

	require.NoError(t, f.FormatPlan(&buf, Plan{File: "appi.yaml"}))
	require.NoError(t, f.FormatEvents(&buf, nil))
	assert.Equal(t, "No components declared\nNo lifecycle events\n", buf.String())
}

func TestTableFormatter_FormatEvents(t *testing.T) {
	var buf bytes.Buffer
	events := []Event{
		{Component: "env", Phase: "make", Kind: "plain", Duration: "1µs"},
		{Component: "http", Phase: "start", Kind: "class", Duration: "2ms", Error: "port in use"},
	}
	require.NoError(t, NewTableFormatter(Options{}).FormatEvents(&buf, events))

	out := buf.String()
	assert.Contains(t, out, "RESULT")
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "port in use")
}

func TestTableFormatter_TruncatesLongErrors(t *testing.T) {
	var buf bytes.Buffer
	long := strings.Repeat("x", 200)
	require.NoError(t, NewTableFormatter(Options{}).FormatEvents(&buf, []Event{{Component: "http", Phase: "start", Error: long}}))

	assert.NotContains(t, buf.String(), long)
	assert.Contains(t, buf.String(), "...")
}

func TestYAMLFormatter_FormatPlan(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter(Options{}).FormatPlan(&buf, samplePlan()))

	out := buf.String()
	assert.Contains(t, out, "file: appi.yaml\n")
	assert.Contains(t, out, "- deps: []\n")
	assert.Contains(t, out, "name: logger\n")
	assert.Contains(t, out, "  - env\n")
}

func TestJSONFormatter_FormatPlan(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(Options{}).FormatPlan(&buf, samplePlan()))

	var decoded Plan
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, samplePlan(), decoded)
}

func TestJSONFormatter_FormatEvents(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(Options{}).FormatEvents(&buf, []Event{{Component: "env", Phase: "make", Kind: "plain", Duration: "1µs"}}))

	assert.Contains(t, buf.String(), `"component": "env"`)
	assert.NotContains(t, buf.String(), `"error"`)
}
