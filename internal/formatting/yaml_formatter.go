package formatting

import (
	"fmt"
	"io"

	"sigs.k8s.io/yaml"
)

// YAMLFormatter provides YAML output formatting. Field names follow the json
// tags of the printed types.
type YAMLFormatter struct {
	options Options
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(options Options) Formatter {
	return &YAMLFormatter{
		options: options,
	}
}

// FormatPlan writes plan as a YAML document.
func (f *YAMLFormatter) FormatPlan(w io.Writer, plan Plan) error {
	return f.write(w, plan)
}

// FormatEvents writes events as a YAML list.
func (f *YAMLFormatter) FormatEvents(w io.Writer, events []Event) error {
	return f.write(w, events)
}

// SetOptions updates the formatter options
func (f *YAMLFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *YAMLFormatter) GetOptions() Options {
	return f.options
}

func (f *YAMLFormatter) write(w io.Writer, data interface{}) error {
	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to format YAML: %w", err)
	}
	_, err = w.Write(out)
	return err
}
