package config

import "time"

const (
	// DefaultConfigFile is looked up in the working directory when no graph
	// file is given.
	DefaultConfigFile = "appi.yaml"

	// ConfigEnvVar names the environment variable that can point to the
	// graph file.
	ConfigEnvVar = "APPI_CONFIG"

	// DefaultShutdownTimeout bounds the stop phase when the graph file does
	// not set one.
	DefaultShutdownTimeout = 10 * time.Second

	// DefaultLogLevel is used when neither the graph file nor the command line
	// set a level.
	DefaultLogLevel = "info"
)

// applyDefaults fills unset settings.
func applyDefaults(cfg *GraphConfig) {
	if cfg.Settings.ShutdownTimeout <= 0 {
		cfg.Settings.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Settings.LogLevel == "" {
		cfg.Settings.LogLevel = DefaultLogLevel
	}
}
