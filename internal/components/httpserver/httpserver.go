// Package httpserver provides the http component: a class-kind status server
// that listens while the application runs.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"appi/internal/components/env"
	"appi/internal/compositor"
	"appi/internal/config"
	"appi/pkg/logging"
)

// TypeName is the component type the server is registered under.
const TypeName = "http"

// loggerDep is the dependency name preferred when several loggers are passed.
const loggerDep = "logger"

const (
	HostKey = "APP_HOST"
	PortKey = "APP_PORT"

	DefaultHost = "0.0.0.0"
	DefaultPort = 8000
)

// Status is the body served on /status.
type Status struct {
	Component string    `json:"component"`
	Status    string    `json:"status"`
	StartedAt time.Time `json:"startedAt"`
	Uptime    string    `json:"uptime"`
}

// Server is the http component.
//
// The listen address comes from the addr option, or from APP_HOST and
// APP_PORT of an env dependency. A *slog.Logger dependency, if any, is used
// for request logs.
type Server struct {
	name string
	addr string

	log    *slog.Logger
	server *http.Server

	mu        sync.RWMutex
	listener  net.Listener
	startedAt time.Time
	errCh     chan error
}

// New builds a Server from a graph file declaration.
func New(cfg config.ComponentConfig) (any, error) {
	s := &Server{name: cfg.Name}
	if v, ok := cfg.Options["addr"]; ok {
		addr, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("option addr must be a string, got %T", v)
		}
		s.addr = addr
	}
	return s, nil
}

// Make implements compositor.Maker.
func (s *Server) Make(ctx context.Context, deps compositor.Deps) error {
	log, ok, err := compositor.Lookup[*slog.Logger](deps, loggerDep)
	if err != nil {
		return err
	}
	if !ok {
		log = logging.For("HTTP").With(slog.String("component", s.name))
	}
	s.log = log

	if s.addr == "" {
		host, port := DefaultHost, DefaultPort
		e, ok, err := env.Find(deps)
		if err != nil {
			return err
		}
		if ok {
			host = e.Get(HostKey, DefaultHost)
			p, err := e.Int(PortKey, DefaultPort)
			if err != nil {
				return err
			}
			port = p
		}
		s.addr = net.JoinHostPort(host, fmt.Sprint(port))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return nil
}

// Service implements compositor.Maker.
func (s *Server) Service() any {
	return s
}

// Start implements compositor.Starter. It returns once the listener is
// bound; requests are served in the background until Stop.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	s.mu.Lock()
	s.listener = listener
	s.startedAt = time.Now()
	s.errCh = make(chan error, 1)
	errCh := s.errCh
	s.mu.Unlock()

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("status server failed", slog.String("error", err.Error()))
			errCh <- err
		}
		close(errCh)
	}()

	s.log.Info("status server listening", slog.String("addr", listener.Addr().String()))
	return nil
}

// Stop implements compositor.Stopper. It waits for in-flight requests until
// ctx is done.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.RLock()
	listener := s.listener
	errCh := s.errCh
	s.mu.RUnlock()

	if listener == nil {
		return nil
	}
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down status server: %w", err)
	}

	s.mu.Lock()
	s.listener = nil
	s.mu.Unlock()

	s.log.Info("status server stopped")
	return <-errCh
}

// Addr returns the address the server listens on, or the configured address
// before Start.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	startedAt := s.startedAt
	s.mu.RUnlock()

	status := Status{
		Component: s.name,
		Status:    "ok",
		StartedAt: startedAt,
		Uptime:    time.Since(startedAt).Round(time.Second).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		s.log.Error("failed to write status", slog.String("error", err.Error()))
	}
}
