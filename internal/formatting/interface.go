// Package formatting renders resolved graphs and lifecycle events for the
// appi CLI, as tables for people or as YAML and JSON for tools.
package formatting

import (
	"fmt"
	"io"
	"strings"
	"time"

	"appi/internal/compositor"
	"appi/internal/dependency"
)

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatTable OutputFormat = "table" // Rich table output
	FormatYAML  OutputFormat = "yaml"  // YAML output
	FormatJSON  OutputFormat = "json"  // JSON output
)

// Formats lists the supported output formats.
var Formats = []OutputFormat{FormatTable, FormatYAML, FormatJSON}

// ParseFormat converts a --output flag value into an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported output format %q (use table, yaml or json)", s)
}

// Options configures the formatter behavior
type Options struct {
	Format OutputFormat
	Quiet  bool // Suppress decorative elements
	Color  bool // Enable colored output
}

// Component is one row of a resolved graph.
type Component struct {
	Position int      `json:"position"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Kind     string   `json:"kind"`
	Deps     []string `json:"deps"`

	// RequiredBy lists the components depending directly on this one.
	RequiredBy []string `json:"requiredBy"`
}

// Plan is the resolved graph of a graph file, in construction order.
type Plan struct {
	File       string      `json:"file"`
	Components []Component `json:"components"`
}

// NewPlan converts a compositor plan into its printable form. typeOf maps a
// component name to the type it was declared with; when nil, the Go type of
// the component is shown.
func NewPlan(file string, entries []compositor.PlanEntry, typeOf func(name string) string) Plan {
	graph := dependency.New()
	for _, e := range entries {
		graph.AddNode(dependency.Node{Name: e.Name, DependsOn: e.Deps})
	}

	p := Plan{File: file, Components: make([]Component, len(entries))}
	for i, e := range entries {
		typ := e.Type
		if typeOf != nil {
			if t := typeOf(e.Name); t != "" {
				typ = t
			}
		}
		deps := e.Deps
		if deps == nil {
			deps = []string{}
		}
		requiredBy := graph.Dependents(e.Name)
		if requiredBy == nil {
			requiredBy = []string{}
		}
		p.Components[i] = Component{
			Position:   i + 1,
			Name:       e.Name,
			Type:       typ,
			Kind:       e.Kind.String(),
			Deps:       deps,
			RequiredBy: requiredBy,
		}
	}
	return p
}

// Event is the printable form of a compositor.Event.
type Event struct {
	Component string `json:"component"`
	Phase     string `json:"phase"`
	Kind      string `json:"kind"`
	Duration  string `json:"duration"`
	Error     string `json:"error,omitempty"`
}

// NewEvents converts lifecycle events into their printable form.
func NewEvents(events []compositor.Event) []Event {
	out := make([]Event, len(events))
	for i, e := range events {
		out[i] = Event{
			Component: e.Component,
			Phase:     string(e.Phase),
			Kind:      e.Kind.String(),
			Duration:  e.Duration.Round(time.Microsecond).String(),
		}
		if e.Err != nil {
			out[i].Error = e.Err.Error()
		}
	}
	return out
}

// Formatter writes plans and event logs in one output format.
type Formatter interface {
	FormatPlan(w io.Writer, plan Plan) error
	FormatEvents(w io.Writer, events []Event) error

	// Configuration
	SetOptions(options Options)
	GetOptions() Options
}

// Factory creates formatters for different output formats
type Factory interface {
	CreateFormatter(options Options) Formatter
}

// NewFactory creates a new formatter factory
func NewFactory() Factory {
	return &factory{}
}

// factory implements the Factory interface
type factory struct{}

// CreateFormatter creates the appropriate formatter based on options
func (f *factory) CreateFormatter(options Options) Formatter {
	switch options.Format {
	case FormatJSON:
		return NewJSONFormatter(options)
	case FormatYAML:
		return NewYAMLFormatter(options)
	case FormatTable:
		fallthrough
	default:
		return NewTableFormatter(options)
	}
}
