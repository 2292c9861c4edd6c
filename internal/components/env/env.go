// Package env provides the env component: a plain-kind set of configuration
// values other components read their settings from.
package env

import (
	"fmt"
	"strconv"

	"appi/internal/compositor"
	"appi/internal/config"
)

// TypeName is the component type env is registered under.
const TypeName = "env"

// Env holds configuration values by key. It is used as a plain component, so
// the map itself is the service value dependents receive.
type Env map[string]string

// New builds an Env from the options of a graph file declaration. Option
// values that are not strings are formatted with fmt.
func New(cfg config.ComponentConfig) (any, error) {
	e := make(Env, len(cfg.Options))
	for key, value := range cfg.Options {
		switch v := value.(type) {
		case nil:
			e[key] = ""
		case string:
			e[key] = v
		case map[string]interface{}, []interface{}:
			return nil, fmt.Errorf("option %s must be a scalar, got %T", key, value)
		default:
			e[key] = fmt.Sprint(v)
		}
	}
	return e, nil
}

// Get returns the value of key, or fallback when it is unset or empty.
func (e Env) Get(key, fallback string) string {
	if v, ok := e[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Int returns the value of key as an int, or fallback when it is unset.
func (e Env) Int(key string, fallback int) (int, error) {
	v, ok := e[key]
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s is not a number: %q", key, v)
	}
	return n, nil
}

// Find returns the Env among deps, if any. Components use it to accept
// their configuration from an env dependency regardless of its name. With
// more than one Env dependency the one named "env" is used, and without it
// Find fails.
func Find(deps compositor.Deps) (Env, bool, error) {
	return compositor.Lookup[Env](deps, TypeName)
}
