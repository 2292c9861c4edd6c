package cmd

import (
	"github.com/spf13/cobra"

	"appi/internal/app"
	"appi/internal/formatting"
)

// checkOptions holds the flags of the check command.
type checkOptions struct {
	configPath   string
	outputFormat string
	quiet        bool
	debug        bool
}

// newCheckCmd creates the command that validates a graph file and prints the
// order its components would be made in.
func newCheckCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a graph file and print the resolved order",
		Long: `Validates a graph file and prints the order its components would be made
in, with their types and dependencies. Nothing is built or started.

The command exits with code 2 when the graph file is invalid: it fails
validation, names an unknown component type or contains a dependency cycle.

Examples:
  appi check --config appi.yaml
  appi check --config appi.yaml -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Graph file to check (defaults to $APPI_CONFIG or ./appi.yaml)")
	cmd.Flags().StringVarP(&opts.outputFormat, "output", "o", "table", "Output format (table, json, yaml)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *checkOptions) error {
	format, err := formatting.ParseFormat(opts.outputFormat)
	if err != nil {
		return usageError("%v", err)
	}

	// logs would mix with the printed plan unless debugging
	cfg := app.NewConfig(opts.debug, !opts.debug, false, opts.configPath)
	application, err := app.NewApplication(cfg, app.WithLogOutput(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}

	plan, err := application.Plan()
	if err != nil {
		return err
	}

	formatter := formatting.NewFactory().CreateFormatter(formatting.Options{
		Format: format,
		Quiet:  opts.quiet,
	})
	return formatter.FormatPlan(cmd.OutOrStdout(), plan)
}
