package formatting

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	strutil "appi/pkg/strings"
)

// TableFormatter provides rich table output formatting
type TableFormatter struct {
	options Options
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(options Options) Formatter {
	return &TableFormatter{
		options: options,
	}
}

// FormatPlan renders the construction order as a table, followed by a short
// summary unless Quiet is set.
func (f *TableFormatter) FormatPlan(w io.Writer, plan Plan) error {
	if len(plan.Components) == 0 {
		return f.writeEmptyMessage(w, "No components declared")
	}

	t := f.createTable(w)
	t.AppendHeader(f.header("#", "NAME", "TYPE", "KIND", "DEPENDS ON", "REQUIRED BY"))
	for _, c := range plan.Components {
		t.AppendRow(table.Row{c.Position, f.paint(text.FgHiCyan, c.Name), c.Type, c.Kind, joinNames(c.Deps), joinNames(c.RequiredBy)})
	}
	t.Render()

	if !f.options.Quiet {
		_, err := fmt.Fprintf(w, "\n%s %s %s\n",
			f.paint(text.FgHiBlue, "Total:"),
			f.paint(text.FgHiWhite, fmt.Sprint(len(plan.Components))),
			f.paint(text.FgHiBlue, "components in "+plan.File))
		return err
	}
	return nil
}

// FormatEvents renders lifecycle events in the order they happened.
func (f *TableFormatter) FormatEvents(w io.Writer, events []Event) error {
	if len(events) == 0 {
		return f.writeEmptyMessage(w, "No lifecycle events")
	}

	t := f.createTable(w)
	t.AppendHeader(f.header("COMPONENT", "PHASE", "KIND", "DURATION", "RESULT"))
	for _, e := range events {
		result := f.paint(text.FgGreen, "ok")
		if e.Error != "" {
			result = f.paint(text.FgRed, strutil.Truncate(e.Error, strutil.DefaultMaxLen))
		}
		t.AppendRow(table.Row{e.Component, e.Phase, e.Kind, e.Duration, result})
	}
	t.Render()
	return nil
}

// SetOptions updates the formatter options
func (f *TableFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *TableFormatter) GetOptions() Options {
	return f.options
}

// Helper methods

// createTable creates a new table with standard styling
func (f *TableFormatter) createTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

func (f *TableFormatter) header(names ...string) table.Row {
	row := make(table.Row, len(names))
	for i, name := range names {
		row[i] = f.paint(text.FgHiCyan, name)
	}
	return row
}

// paint colors s when colored output is enabled.
func (f *TableFormatter) paint(color text.Color, s string) string {
	if !f.options.Color {
		return s
	}
	return color.Sprint(s)
}

// writeEmptyMessage formats empty result messages
func (f *TableFormatter) writeEmptyMessage(w io.Writer, message string) error {
	_, err := fmt.Fprintf(w, "%s\n", f.paint(text.FgYellow, message))
	return err
}

// joinNames lists names for a table cell, "-" when there are none.
func joinNames(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strutil.Truncate(strings.Join(names, ", "), strutil.DefaultMaxLen)
}
