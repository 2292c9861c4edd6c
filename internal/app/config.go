package app

import (
	"time"

	"appi/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Debug settings
	Debug bool

	// Quiet suppresses log output
	Quiet bool

	// Watch recomposes the application when the graph file changes
	Watch bool

	// Path of the graph file. When empty, config.ResolvePath decides.
	ConfigPath string

	// Graph is the loaded graph file, set by NewApplication
	Graph *config.GraphConfig
}

// NewConfig creates a new application configuration
func NewConfig(debug, quiet, watch bool, configPath string) *Config {
	return &Config{
		Debug:      debug,
		Quiet:      quiet,
		Watch:      watch,
		ConfigPath: configPath,
	}
}

// ShutdownTimeout returns how long stopping the application may take.
func (c *Config) ShutdownTimeout() time.Duration {
	if c.Graph == nil || c.Graph.Settings.ShutdownTimeout <= 0 {
		return config.DefaultShutdownTimeout
	}
	return c.Graph.Settings.ShutdownTimeout
}
