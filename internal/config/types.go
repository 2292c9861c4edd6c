package config

import "time"

// GraphConfig is the top-level structure of a graph file.
type GraphConfig struct {
	Settings   Settings          `yaml:"settings,omitempty" json:"settings,omitempty"`
	Components []ComponentConfig `yaml:"components" json:"components"`
}

// Settings tune how a composed application is run.
type Settings struct {
	// ShutdownTimeout bounds how long stopping the application may take.
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout,omitempty" json:"shutdownTimeout,omitempty"`
	// LogLevel is used unless overridden on the command line.
	LogLevel string `yaml:"logLevel,omitempty" json:"logLevel,omitempty"`
}

// ComponentConfig declares one component of the graph.
type ComponentConfig struct {
	Name    string                 `yaml:"name" json:"name"`
	Type    string                 `yaml:"type" json:"type"`
	Deps    []string               `yaml:"deps,omitempty" json:"deps,omitempty"`
	Options map[string]interface{} `yaml:"options,omitempty" json:"options,omitempty"`
}

// Names returns the component names in declaration order.
func (c GraphConfig) Names() []string {
	names := make([]string, len(c.Components))
	for i, comp := range c.Components {
		names[i] = comp.Name
	}
	return names
}
