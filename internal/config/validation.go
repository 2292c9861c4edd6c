package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// ValidateRequired checks if a required string field is not empty
func ValidateRequired(field, value, entityType string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf("is required for %s", entityType),
		}
	}
	return nil
}

// ValidateOneOf checks if a value is in a list of allowed values
func ValidateOneOf(field, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}

var logLevels = []string{"debug", "info", "warn", "warning", "error"}

var componentNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]+$`)

// ValidateComponentName checks that name can be used as a component name: a
// letter followed by at least one letter or digit.
func ValidateComponentName(field, name string) error {
	if err := ValidateRequired(field, name, "component"); err != nil {
		return err
	}
	if !componentNamePattern.MatchString(name) {
		return ValidationError{
			Field:   field,
			Value:   name,
			Message: "must start with a letter and contain only letters and digits, at least 2 characters",
		}
	}
	return nil
}

// Validate checks the structure of a graph file. When knownTypes is not
// empty every component type must be one of them.
//
// Cycles are not detected here; they are reported when the graph is ordered.
func Validate(cfg GraphConfig, knownTypes []string) ValidationErrors {
	var errs ValidationErrors

	if len(cfg.Components) == 0 {
		errs.Add("components", "must have at least one item for graph")
		return errs
	}

	declared := make(map[string]int, len(cfg.Components))
	for i, comp := range cfg.Components {
		prefix := fmt.Sprintf("components[%d]", i)

		if err := ValidateComponentName(prefix+".name", comp.Name); err != nil {
			errs = append(errs, err.(ValidationError))
		} else if first, exists := declared[comp.Name]; exists {
			errs.Add(prefix+".name", fmt.Sprintf("is not unique, already declared by components[%d]", first), comp.Name)
		} else {
			declared[comp.Name] = i
		}

		if err := ValidateRequired(prefix+".type", comp.Type, "component"); err != nil {
			errs = append(errs, err.(ValidationError))
		} else if len(knownTypes) > 0 {
			if err := ValidateOneOf(prefix+".type", comp.Type, knownTypes); err != nil {
				errs = append(errs, err.(ValidationError))
			}
		}
	}

	for i, comp := range cfg.Components {
		seen := make(map[string]bool, len(comp.Deps))
		for j, dep := range comp.Deps {
			field := fmt.Sprintf("components[%d].deps[%d]", i, j)
			if _, ok := declared[dep]; !ok {
				errs.Add(field, "refers to a component that is not declared", dep)
				continue
			}
			if seen[dep] {
				errs.Add(field, "is listed more than once", dep)
			}
			seen[dep] = true
		}
	}

	if level := cfg.Settings.LogLevel; level != "" {
		if err := ValidateOneOf("settings.logLevel", strings.ToLower(level), logLevels); err != nil {
			errs = append(errs, err.(ValidationError))
		}
	}

	return errs
}
