package template

import (
	"os"
	"strings"
)

// MergeContexts merges multiple contexts into a single context
// Later contexts override values from earlier contexts
func MergeContexts(contexts ...map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{})

	for _, ctx := range contexts {
		for key, value := range ctx {
			result[key] = value
		}
	}

	return result
}

// EnvContext exposes the process environment as {"Env": map[string]string},
// so templates can use {{ .Env.HOME }} next to sprig's env function.
func EnvContext() map[string]interface{} {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return map[string]interface{}{"Env": env}
}
