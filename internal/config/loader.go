package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"appi/internal/template"
	"appi/pkg/logging"
)

// ResolvePath picks the graph file to load: the explicit path if given, then
// the APPI_CONFIG environment variable, then DefaultConfigFile.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if fromEnv := os.Getenv(ConfigEnvVar); fromEnv != "" {
		return fromEnv
	}
	return DefaultConfigFile
}

// LoadGraph reads, renders and validates the graph file at path.
//
// Args:
//   - path: location of the YAML graph file
//   - knownTypes: component types accepted in the file, nil to accept any
//
// Returns:
//   - GraphConfig: the loaded graph with defaults applied and option
//     templates rendered
//   - error: a *ConfigurationError; for validation failures it wraps
//     ValidationErrors
func LoadGraph(path string, knownTypes []string) (GraphConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		message := "could not read graph file"
		if errors.Is(err, os.ErrNotExist) {
			message = "graph file not found"
		}
		return GraphConfig{}, newConfigurationError(path, ErrorTypeIO, message, err)
	}

	cfg, err := ParseGraph(path, data, knownTypes)
	if err != nil {
		return GraphConfig{}, err
	}
	logging.Info("Config", "Loaded graph with %d components from %s", len(cfg.Components), path)
	return cfg, nil
}

// ParseGraph decodes a graph file already read into data. path is only used
// in error reports.
func ParseGraph(path string, data []byte, knownTypes []string) (GraphConfig, error) {
	var cfg GraphConfig

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return GraphConfig{}, newConfigurationError(path, ErrorTypeParse, "malformed graph file", err)
	}

	applyDefaults(&cfg)

	if err := renderOptions(&cfg); err != nil {
		return GraphConfig{}, newConfigurationError(path, ErrorTypeTemplate, "could not render options", err)
	}

	if errs := Validate(cfg, knownTypes); errs.HasErrors() {
		logging.Debug("Config", "Graph file %s has %d validation errors", path, len(errs))
		return GraphConfig{}, newConfigurationError(path, ErrorTypeValidation, "invalid graph", errs)
	}

	return cfg, nil
}

// renderOptions renders templated option values in place. Templates see the
// environment as .Env and the component's own name and type as .Name and
// .Type.
func renderOptions(cfg *GraphConfig) error {
	engine := template.New()
	env := template.EnvContext()

	for i := range cfg.Components {
		comp := &cfg.Components[i]
		if len(comp.Options) == 0 {
			continue
		}
		ctx := template.MergeContexts(env, map[string]interface{}{
			"Name": comp.Name,
			"Type": comp.Type,
		})
		rendered, err := engine.Replace(comp.Options, ctx)
		if err != nil {
			return fmt.Errorf("component %q: %w", comp.Name, err)
		}
		comp.Options = rendered.(map[string]interface{})
	}
	return nil
}
