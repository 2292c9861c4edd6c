// Package config loads the graph files appi composes applications from.
//
// A graph file is YAML. It lists components by registered type, gives each a
// name and names its dependencies:
//
//	settings:
//	  shutdownTimeout: 15s
//	  logLevel: info
//	components:
//	  - name: env
//	    type: env
//	    options:
//	      APP_HOST: '{{ env "APP_HOST" | default "0.0.0.0" }}'
//	      APP_PORT: '{{ env "APP_PORT" | default "8000" }}'
//	  - name: logger
//	    type: logger
//	    deps: [env]
//	  - name: http
//	    type: http
//	    deps: [env, logger]
//
// Option values are Go templates rendered with the sprig function library
// once the file is decoded. Besides sprig's env function, templates can read
// the environment as .Env and the component's own .Name and .Type.
//
// # Loading
//
// LoadGraph reads, decodes, renders and validates a file in one go. Unknown
// fields are rejected. All problems found by validation are reported
// together as ValidationErrors, wrapped in a *ConfigurationError that also
// records the file and the kind of failure:
//
//	cfg, err := config.LoadGraph(path, registry.Types())
//	var verrs config.ValidationErrors
//	if errors.As(err, &verrs) {
//	    for _, v := range verrs {
//	        fmt.Println(v.Field, v.Message)
//	    }
//	}
//
// The file location defaults to appi.yaml in the working directory and can
// be overridden with APPI_CONFIG or the --config flag.
package config
