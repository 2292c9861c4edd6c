package template

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Engine renders the templated option values of a graph file. Templates use
// Go text/template syntax with the sprig function library, so a value can
// read the environment and fall back to a default:
//
//	APP_PORT: '{{ env "APP_PORT" | default "8000" }}'
type Engine struct {
	funcs template.FuncMap
}

// New creates a new template engine
func New() *Engine {
	return &Engine{
		funcs: sprig.TxtFuncMap(),
	}
}

// Render executes a single template string against context. Strings without
// template actions are returned unchanged.
func (e *Engine) Render(text string, context map[string]interface{}) (string, error) {
	if !strings.Contains(text, "{{") {
		return text, nil
	}
	tmpl, err := template.New("value").Funcs(e.funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing template %q: %w", text, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, context); err != nil {
		return "", fmt.Errorf("rendering template %q: %w", text, err)
	}
	return buf.String(), nil
}

// Replace renders every string found in value, descending into maps and
// slices. Other values are returned as-is.
func (e *Engine) Replace(value interface{}, context map[string]interface{}) (interface{}, error) {
	switch v := value.(type) {
	case string:
		return e.Render(v, context)
	case map[string]interface{}:
		return e.replaceMapTemplates(v, context)
	case []interface{}:
		return e.replaceSliceTemplates(v, context)
	default:
		return value, nil
	}
}

func (e *Engine) replaceMapTemplates(m map[string]interface{}, context map[string]interface{}) (map[string]interface{}, error) {
	result := make(map[string]interface{}, len(m))

	for key, value := range m {
		replacedValue, err := e.Replace(value, context)
		if err != nil {
			return nil, fmt.Errorf("error in key '%s': %w", key, err)
		}
		result[key] = replacedValue
	}

	return result, nil
}

func (e *Engine) replaceSliceTemplates(s []interface{}, context map[string]interface{}) ([]interface{}, error) {
	result := make([]interface{}, len(s))

	for i, value := range s {
		replacedValue, err := e.Replace(value, context)
		if err != nil {
			return nil, fmt.Errorf("error at index %d: %w", i, err)
		}
		result[i] = replacedValue
	}

	return result, nil
}
