// Package clock provides the clock component, a function-kind component
// whose service tells the time in a configured location.
package clock

import (
	"context"
	"fmt"
	"time"

	"appi/internal/components/env"
	"appi/internal/compositor"
	"appi/internal/config"
)

// TypeName is the component type the clock is registered under.
const TypeName = "clock"

// TimezoneKey is the env key the location is read from when no timezone
// option is declared.
const TimezoneKey = "TZ"

// Clock tells the time.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type clock struct {
	loc *time.Location
	now func() time.Time
}

func (c *clock) Now() time.Time {
	return c.now().In(c.loc)
}

func (c *clock) Location() *time.Location {
	return c.loc
}

// New builds the clock component from a graph file declaration. The
// timezone option names an IANA location; without it the TZ value of an env
// dependency is used, and then UTC.
func New(cfg config.ComponentConfig) (any, error) {
	var timezone string
	if v, ok := cfg.Options["timezone"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("option timezone must be a string, got %T", v)
		}
		timezone = s
	}

	return &compositor.FuncComponent{
		Name: cfg.Name,
		Fn:   Func(timezone, time.Now),
	}, nil
}

// Func returns the function that makes a Clock reading the time from now.
func Func(timezone string, now func() time.Time) compositor.Func {
	return func(ctx context.Context, deps compositor.Deps) (any, error) {
		name := timezone
		if name == "" {
			e, ok, err := env.Find(deps)
			if err != nil {
				return nil, err
			}
			if ok {
				name = e.Get(TimezoneKey, "")
			}
		}
		if name == "" {
			name = "UTC"
		}

		loc, err := time.LoadLocation(name)
		if err != nil {
			return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
		}
		return Clock(&clock{loc: loc, now: now}), nil
	}
}
