package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Error types reported in ConfigurationError.ErrorType.
const (
	ErrorTypeIO         = "io"
	ErrorTypeParse      = "parse"
	ErrorTypeTemplate   = "template"
	ErrorTypeValidation = "validation"
)

// ConfigurationError represents a structured error that occurs while loading
// a graph file
type ConfigurationError struct {
	FilePath    string   `json:"filePath"`    // Full path to the file that caused the error
	FileName    string   `json:"fileName"`    // Base name of the file
	ErrorType   string   `json:"errorType"`   // Type of error (io, parse, template, validation)
	Message     string   `json:"message"`     // Human-readable error message
	Details     string   `json:"details"`     // Additional details about the error
	Suggestions []string `json:"suggestions"` // Actionable suggestions to fix the error

	cause error
}

func newConfigurationError(filePath, errorType, message string, cause error) *ConfigurationError {
	ce := &ConfigurationError{
		FilePath:  filePath,
		FileName:  filepath.Base(filePath),
		ErrorType: errorType,
		Message:   message,
		cause:     cause,
	}
	if cause != nil {
		ce.Details = cause.Error()
	}
	switch errorType {
	case ErrorTypeIO:
		ce.Suggestions = []string{
			"check that the file exists and is readable",
			fmt.Sprintf("pass the path with --config or set %s", ConfigEnvVar),
		}
	case ErrorTypeParse:
		ce.Suggestions = []string{"check the YAML syntax and field names near the reported line"}
	case ErrorTypeTemplate:
		ce.Suggestions = []string{"check the template syntax of the option values", "make sure referenced variables are set"}
	}
	return ce
}

// Error implements the error interface
func (ce *ConfigurationError) Error() string {
	if ce.Details == "" {
		return fmt.Sprintf("%s: %s", ce.FileName, ce.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ce.FileName, ce.Message, ce.Details)
}

// Unwrap returns the underlying error.
func (ce *ConfigurationError) Unwrap() error {
	return ce.cause
}

// DetailedError returns a detailed error message with all context
func (ce *ConfigurationError) DetailedError() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("Configuration Error in %s", ce.FileName))
	parts = append(parts, fmt.Sprintf("  File: %s", ce.FilePath))
	parts = append(parts, fmt.Sprintf("  Type: %s", ce.ErrorType))
	parts = append(parts, fmt.Sprintf("  Error: %s", ce.Message))

	if ce.Details != "" {
		parts = append(parts, fmt.Sprintf("  Details: %s", ce.Details))
	}

	if len(ce.Suggestions) > 0 {
		parts = append(parts, "  Suggestions:")
		for _, suggestion := range ce.Suggestions {
			parts = append(parts, fmt.Sprintf("    - %s", suggestion))
		}
	}

	return strings.Join(parts, "\n")
}
