// Package app provides application bootstrap and lifecycle management for
// appi.
//
// # Architecture Overview
//
// The app package connects the graph file front end to the compositor:
//
//  1. **Bootstrap (`bootstrap.go`)**: logging setup, graph file loading and
//     validation against the component registry, composition
//  2. **Configuration (`config.go`)**: runtime settings from the command line
//  3. **Modes (`modes.go`)**: the supervised run loop and signal handling
//  4. **Watch (`watch.go`)**: debounced change detection for the graph file
//  5. **Notify (`notify.go`)**: readiness reporting to systemd
//
// # Bootstrap
//
// NewApplication initializes logging, resolves the graph file location
// (flag, then APPI_CONFIG, then appi.yaml) and loads it. Component types are
// checked against the registry, the built-in one unless WithRegistry says
// otherwise. Once loaded, the log level of the graph file applies unless
// debug logging was requested.
//
// Plan resolves the graph without building anything; the check command
// prints it. Compose builds every component and, when one fails, stops the
// ones already built before returning the error.
//
// # Running
//
// Run composes and starts the application and supervises it until the
// context is cancelled or SIGINT or SIGTERM arrives. The signal wait and the
// supervisor share an errgroup, so whichever ends first ends the run:
//
//	application, err := app.NewApplication(app.NewConfig(false, false, true, "appi.yaml"))
//	if err != nil {
//	    return err
//	}
//	return application.Run(ctx)
//
// Stopping is bounded by the shutdownTimeout of the graph file. When a stop
// hook fails, the remaining components are torn down and all errors are
// returned together.
//
// With Watch set, a change of the graph file is loaded first; if it is
// valid, the running application is stopped and a new one is composed from
// it. Invalid changes are logged and ignored.
//
// # Service Manager Integration
//
// Under systemd (Type=notify) the service manager is told READY=1 once the
// application runs, RELOADING=1 before it is recomposed and STOPPING=1 when
// it shuts down. Outside systemd notifications are no-ops.
//
// # Errors
//
// IsInvalidGraph tells graph problems (validation failures, cycles,
// undeclared dependencies) apart from component failures; the CLI maps the
// former to exit code 2.
package app
