// Package logger provides the logger component: a class-kind component whose
// service is a *slog.Logger bound to a subsystem.
package logger

import (
	"context"
	"fmt"
	"log/slog"

	"appi/internal/components/env"
	"appi/internal/compositor"
	"appi/internal/config"
	"appi/pkg/logging"
)

// TypeName is the component type the logger is registered under.
const TypeName = "logger"

// LevelKey is the env key the log level is read from when the component
// declares no level option.
const LevelKey = "LOG_LEVEL"

// Logger is the logger component.
type Logger struct {
	subsystem string
	level     string
	log       *slog.Logger
}

// New builds a Logger from a graph file declaration.
//
// Options:
//   - subsystem: value of the subsystem attribute, defaults to the component
//     name
//   - level: minimum level of records passed on, defaults to LOG_LEVEL of an
//     env dependency and then to the process-wide level
func New(cfg config.ComponentConfig) (any, error) {
	l := &Logger{subsystem: cfg.Name}
	if v, ok := cfg.Options["subsystem"].(string); ok && v != "" {
		l.subsystem = v
	}
	if v, ok := cfg.Options["level"].(string); ok {
		if _, err := logging.ParseLevel(v); err != nil {
			return nil, err
		}
		l.level = v
	}
	return l, nil
}

// Make implements compositor.Maker.
func (l *Logger) Make(ctx context.Context, deps compositor.Deps) error {
	level := l.level
	if level == "" {
		e, ok, err := env.Find(deps)
		if err != nil {
			return err
		}
		if ok {
			level = e.Get(LevelKey, "")
		}
	}

	log := logging.For(l.subsystem)
	if level != "" {
		parsed, err := logging.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", LevelKey, err)
		}
		log = slog.New(&levelHandler{Handler: log.Handler(), min: parsed.SlogLevel()})
	}

	l.log = log
	return nil
}

// Service implements compositor.Maker.
func (l *Logger) Service() any {
	return l.log
}

// levelHandler drops records below min before they reach the wrapped
// handler.
type levelHandler struct {
	slog.Handler
	min slog.Level
}

func (h *levelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.min && h.Handler.Enabled(ctx, level)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelHandler{Handler: h.Handler.WithAttrs(attrs), min: h.min}
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return &levelHandler{Handler: h.Handler.WithGroup(name), min: h.min}
}
