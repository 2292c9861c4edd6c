package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"appi/internal/app"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeInvalidGraph indicates the graph file is invalid: it failed
	// validation or its dependencies form a cycle.
	ExitCodeInvalidGraph = 2
)

// rootCmd represents the base command for the appi application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "appi",
	Short: "Compose and run applications from a component graph",
	Long: `appi builds an application from a graph of components declared in a
YAML file. Components are made in dependency order, started in that order
and stopped in reverse when the application shuts down.

Use 'appi check' to validate a graph file and see the resolved order, and
'appi run' to run it.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It executes the root command and exits with a code describing the failure.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "appi version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}
	if app.IsInvalidGraph(err) {
		return ExitCodeInvalidGraph
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return ExitCodeError
}

// exitError carries an explicit exit code for failures detected by the
// commands themselves.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func usageError(format string, args ...interface{}) error {
	return &exitError{code: ExitCodeError, err: fmt.Errorf(format, args...)}
}

// init is a special Go function that is executed when the package is initialized.
// It is used here to add subcommands to the root command.
func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newCheckCmd())
}
