// Package components registers the component types that ship with appi.
package components

import (
	"appi/internal/components/clock"
	"appi/internal/components/env"
	"appi/internal/components/httpserver"
	"appi/internal/components/logger"
	"appi/internal/registry"
)

// NewRegistry returns a registry holding every built-in component type.
func NewRegistry() *registry.Registry {
	r := registry.New()
	Register(r)
	return r
}

// Register adds the built-in component types to r.
func Register(r *registry.Registry) {
	r.MustRegister(env.TypeName, env.New)
	r.MustRegister(logger.TypeName, logger.New)
	r.MustRegister(httpserver.TypeName, httpserver.New)
	r.MustRegister(clock.TypeName, clock.New)
}
