package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	"appi/internal/components"
	"appi/internal/compositor"
	"appi/internal/config"
	"appi/internal/formatting"
	"appi/internal/registry"
	"appi/pkg/logging"
)

// Application represents the main application structure that bootstraps and
// runs a composed graph. It holds the loaded graph file, the registry its
// component types are resolved against and the lifecycle events of the
// current run.
//
// The Application follows a two-phase initialization pattern:
//  1. Bootstrap phase: initialize logging, load and validate the graph file
//  2. Execution phase: compose, start and supervise the components
//
// Example usage:
//
//	cfg := app.NewConfig(false, false, false, "appi.yaml")
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return fmt.Errorf("failed to create application: %w", err)
//	}
//	return application.Run(ctx)
type Application struct {
	config   *Config
	path     string
	registry *registry.Registry
	notify   Notifier
	output   io.Writer

	mu     sync.Mutex
	events []compositor.Event
}

// Option customizes an Application.
type Option func(*Application)

// WithRegistry replaces the built-in component registry.
func WithRegistry(r *registry.Registry) Option {
	return func(a *Application) {
		a.registry = r
	}
}

// WithNotifier replaces the systemd notifier.
func WithNotifier(n Notifier) Option {
	return func(a *Application) {
		a.notify = n
	}
}

// WithLogOutput sends log output to w instead of stderr.
func WithLogOutput(w io.Writer) Option {
	return func(a *Application) {
		a.output = w
	}
}

// NewApplication creates and initializes a new application instance with the
// provided configuration. This function performs the bootstrap sequence:
//
//  1. Configures logging based on debug and quiet settings
//  2. Loads and validates the graph file against the registered types
//  3. Applies the log level of the graph file unless debug is set
//
// The returned error wraps config errors unchanged, so callers can tell an
// invalid graph file from other failures with IsInvalidGraph.
func NewApplication(cfg *Config, opts ...Option) (*Application, error) {
	a := &Application{
		config:   cfg,
		registry: components.NewRegistry(),
		notify:   SystemdNotifier,
		output:   os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}
	if cfg.Quiet {
		a.output = io.Discard
	}

	a.initLogging(logging.LevelInfo)

	a.path = config.ResolvePath(cfg.ConfigPath)
	graph, err := config.LoadGraph(a.path, a.registry.Types())
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load graph file %s", a.path)
		return nil, fmt.Errorf("failed to load graph file %s: %w", a.path, err)
	}
	cfg.Graph = &graph

	if level, err := logging.ParseLevel(graph.Settings.LogLevel); err == nil && level != logging.LevelInfo {
		a.initLogging(level)
	}

	return a, nil
}

func (a *Application) initLogging(level logging.LogLevel) {
	if a.config.Debug {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, a.output)
}

// Path returns the graph file the application was loaded from.
func (a *Application) Path() string {
	return a.path
}

// Plan resolves the loaded graph without building any component.
func (a *Application) Plan() (formatting.Plan, error) {
	graph, err := a.registry.Build(*a.config.Graph)
	if err != nil {
		return formatting.Plan{}, err
	}
	entries, err := compositor.Plan(graph)
	if err != nil {
		return formatting.Plan{}, err
	}

	types := make(map[string]string, len(a.config.Graph.Components))
	for _, c := range a.config.Graph.Components {
		types[c.Name] = c.Type
	}
	return formatting.NewPlan(a.path, entries, func(name string) string {
		return types[name]
	}), nil
}

// Compose builds every component of the loaded graph. When a component fails
// to build, the ones built before it are torn down before returning.
func (a *Application) Compose(ctx context.Context) (*compositor.App, error) {
	graph, err := a.registry.Build(*a.config.Graph)
	if err != nil {
		return nil, err
	}

	composed, err := compositor.Compose(ctx, graph, compositor.WithObserver(a.record))
	if err != nil {
		if composed != nil {
			err = errors.Join(err, a.teardown(composed))
		}
		return nil, err
	}
	return composed, nil
}

// Events returns the lifecycle events recorded so far.
func (a *Application) Events() []compositor.Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.events)
}

func (a *Application) record(e compositor.Event) {
	a.mu.Lock()
	a.events = append(a.events, e)
	a.mu.Unlock()
}

// reload loads the graph file again. The running configuration is only
// replaced when the new file is valid.
func (a *Application) reload() error {
	graph, err := config.LoadGraph(a.path, a.registry.Types())
	if err != nil {
		return err
	}
	a.config.Graph = &graph
	return nil
}
