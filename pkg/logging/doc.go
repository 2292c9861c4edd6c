// Package logging provides structured, subsystem-tagged logging for appi on
// top of the standard slog package.
//
// # Log Levels
//   - **Debug**: Detailed information for debugging and development
//   - **Info**: General informational messages about application operation
//   - **Warn**: Warning messages that indicate potential issues
//   - **Error**: Error messages for failures and exceptional conditions
//
// Every entry carries a "subsystem" attribute. The package level helpers take
// the subsystem as their first argument:
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Bootstrap", "Loading graph from %s", path)
//	logging.Error("Compositor", err, "Component %s failed", name)
//
// Components that want a plain *slog.Logger use For, which binds the
// subsystem once:
//
//	log := logging.For("http")
//	log.Info("listening", "addr", addr)
//
// # Subsystems
//
//   - **Bootstrap**: Application initialization and startup
//   - **Config**: Graph file loading and validation
//   - **Compositor**: Composition runs and lifecycle phases
//   - **Watch**: Graph file change detection
//
// All functions are safe for concurrent use.
package logging
