package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"appi/internal/app"
	"appi/internal/formatting"
)

// runOptions holds the flags of the run command.
type runOptions struct {
	configPath string
	debug      bool
	quiet      bool
	watch      bool
}

// newRunCmd creates the command that composes and runs a graph file.
func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compose and run the application described by a graph file",
		Long: `Composes the application described by a graph file and runs it until
interrupted.

Components are made in dependency order and started in that order. On
SIGINT or SIGTERM they are stopped in reverse order, bounded by the
shutdownTimeout of the graph file.

Under systemd (Type=notify) readiness is reported once every component has
started.

With --watch, a change of the graph file stops the application and starts a
new one from the changed file. Changes that do not load are reported and
ignored.

Examples:
  appi run --config appi.yaml
  appi run --config appi.yaml --watch --debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Graph file to run (defaults to $APPI_CONFIG or ./appi.yaml)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging and print lifecycle events on exit")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress log output and progress indicators")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Recompose the application when the graph file changes")

	return cmd
}

func runRun(cmd *cobra.Command, opts *runOptions) error {
	cfg := app.NewConfig(opts.debug, opts.quiet, opts.watch, opts.configPath)

	progress := newProgress(opts.quiet)
	application, err := app.NewApplication(cfg, app.WithNotifier(progress.notifier(app.SystemdNotifier)))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	progress.start(fmt.Sprintf(" Composing %d components...", len(cfg.Graph.Components)))
	err = application.Run(ctx)
	progress.stop()

	if opts.debug {
		formatter := formatting.NewFactory().CreateFormatter(formatting.Options{Format: formatting.FormatTable})
		if ferr := formatter.FormatEvents(cmd.ErrOrStderr(), formatting.NewEvents(application.Events())); ferr != nil {
			return ferr
		}
	}
	return err
}

// progress shows a spinner until the application reports ready.
type progress struct {
	mu      sync.Mutex
	spinner *spinner.Spinner
}

func newProgress(quiet bool) *progress {
	p := &progress{}
	if !quiet {
		p.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	}
	return p
}

func (p *progress) start(suffix string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.spinner == nil {
		return
	}
	p.spinner.Suffix = suffix
	p.spinner.Start()
}

func (p *progress) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.spinner != nil {
		p.spinner.Stop()
	}
}

// notifier wraps next so that the spinner stops once the application is
// ready, before the state is passed on.
func (p *progress) notifier(next app.Notifier) app.Notifier {
	return func(state string) (bool, error) {
		if state == app.SdNotifyReady {
			p.stop()
		}
		return next(state)
	}
}
