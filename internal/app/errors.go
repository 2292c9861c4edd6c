package app

import (
	"errors"

	"appi/internal/compositor"
	"appi/internal/config"
	"appi/internal/resolver"
)

// IsInvalidGraph reports whether err was caused by the graph itself rather
// than by a component: a graph file that fails validation, a dependency
// cycle, or a graph the compositor rejects before building anything.
func IsInvalidGraph(err error) bool {
	if err == nil {
		return false
	}

	var verrs config.ValidationErrors
	if errors.As(err, &verrs) {
		return true
	}

	var graphErr *resolver.GraphError
	if errors.As(err, &graphErr) {
		return true
	}

	var appErr *compositor.AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == compositor.KindValidation
	}
	return false
}
