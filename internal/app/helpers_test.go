package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"appi/internal/components"
	"appi/internal/compositor"
	"appi/internal/config"
	"appi/internal/registry"
)

const baseGraph = `
settings:
  shutdownTimeout: 2s
components:
  - name: env
    type: env
    options:
      APP_HOST: 127.0.0.1
      APP_PORT: 0
  - name: logger
    type: logger
    deps: [env]
  - name: http
    type: http
    deps: [env, logger]
`

// writeGraph writes content to a graph file in a temporary directory.
func writeGraph(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "appi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// brokenPart fails in the phase named by its failAt option.
type brokenPart struct {
	failAt  string
	stopped *stopLog
	name    string
}

type stopLog struct {
	mu    sync.Mutex
	names []string
}

func (l *stopLog) add(name string) {
	l.mu.Lock()
	l.names = append(l.names, name)
	l.mu.Unlock()
}

func (l *stopLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.names...)
}

func (b *brokenPart) Make(ctx context.Context, deps compositor.Deps) error {
	if b.failAt == "make" {
		return errors.New("can not be made")
	}
	return nil
}

func (b *brokenPart) Service() any { return b.name }

func (b *brokenPart) Start(ctx context.Context) error {
	if b.failAt == "start" {
		return errors.New("can not be started")
	}
	return nil
}

func (b *brokenPart) Stop(ctx context.Context) error {
	b.stopped.add(b.name)
	return nil
}

// testRegistry returns the built-in registry plus a "part" type whose
// components record their stop calls in stopped.
func testRegistry(stopped *stopLog) *registry.Registry {
	r := components.NewRegistry()
	r.MustRegister("part", func(cfg config.ComponentConfig) (any, error) {
		failAt, _ := cfg.Options["failAt"].(string)
		return &brokenPart{failAt: failAt, stopped: stopped, name: cfg.Name}, nil
	})
	return r
}

// notifications records the states sent to the service manager.
type notifications struct {
	ch chan string
}

func newNotifications() *notifications {
	return &notifications{ch: make(chan string, 32)}
}

func (n *notifications) notify(state string) (bool, error) {
	n.ch <- state
	return true, nil
}

func (n *notifications) next(t *testing.T) string {
	t.Helper()
	select {
	case s := <-n.ch:
		return s
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for a notification")
		return ""
	}
}

func newTestApplication(t *testing.T, cfg *Config, opts ...Option) *Application {
	t.Helper()
	opts = append([]Option{WithLogOutput(io.Discard), WithNotifier(nil)}, opts...)
	a, err := NewApplication(cfg, opts...)
	require.NoError(t, err)
	return a
}
