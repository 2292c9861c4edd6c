package formatting

import (
	"fmt"
	"io"
)

// JSONFormatter provides JSON output formatting
type JSONFormatter struct {
	options Options
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(options Options) Formatter {
	return &JSONFormatter{
		options: options,
	}
}

// FormatPlan writes plan as an indented JSON object.
func (f *JSONFormatter) FormatPlan(w io.Writer, plan Plan) error {
	_, err := fmt.Fprintln(w, PrettyJSON(plan))
	return err
}

// FormatEvents writes events as an indented JSON array.
func (f *JSONFormatter) FormatEvents(w io.Writer, events []Event) error {
	_, err := fmt.Fprintln(w, PrettyJSON(events))
	return err
}

// SetOptions updates the formatter options
func (f *JSONFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *JSONFormatter) GetOptions() Options {
	return f.options
}
