package app

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"appi/internal/compositor"
	"appi/pkg/logging"
)

// Run composes and starts the application, then blocks until the context is
// cancelled or the process receives SIGINT or SIGTERM, and stops it.
//
// Behavior:
//   - Components are made and started in resolved order
//   - systemd is notified once the application is ready and when it stops
//   - Stopping runs in reverse order, bounded by the shutdown timeout
//   - With Watch set, a change of the graph file stops the application and
//     starts a fresh one from the new file; an invalid new file is logged
//     and the running application is kept
//
// Returns an error if composing, starting or stopping fails. In watch mode
// only the first composition is fatal.
func (a *Application) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var reload <-chan struct{}
	if a.config.Watch {
		changes := make(chan struct{}, 1)
		reload = changes
		watcher := NewWatcher(a.path, 0)
		if err := watcher.Start(ctx, changes); err != nil {
			return err
		}
		defer watcher.Stop()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		waitForSignal(gctx, cancel)
		return nil
	})

	g.Go(func() error {
		defer cancel()
		return a.supervise(gctx, reload)
	})

	return g.Wait()
}

// waitForSignal cancels the run on SIGINT or SIGTERM.
func waitForSignal(ctx context.Context, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		logging.Info("CLI", "Received %s, shutting down", sig)
		cancel()
	case <-ctx.Done():
	}
}

func (a *Application) supervise(ctx context.Context, reload <-chan struct{}) error {
	running, err := a.start(ctx)
	if err != nil {
		return err
	}

	for {
		a.notifyState(SdNotifyReady)
		logging.Info("CLI", "Application running with %d components. Press Ctrl+C to stop.", len(running.Order()))

		select {
		case <-ctx.Done():
			a.notifyState(SdNotifyStopping)
			logging.Info("CLI", "--- Stopping application ---")
			return a.shutdown(running)

		case <-reload:
			if err := a.reload(); err != nil {
				logging.Error("CLI", err, "Graph file changed but can not be loaded, keeping the running application")
				continue
			}
			a.notifyState(SdNotifyReloading)
			logging.Info("CLI", "--- Graph file changed, recomposing ---")
			if err := a.shutdown(running); err != nil {
				logging.Error("CLI", err, "Failed to stop the previous application")
			}

			next, ok := a.restart(ctx, reload)
			if !ok {
				return nil
			}
			running = next
		}
	}
}

// restart starts the loaded graph, and after each failure waits for the next
// valid change of the graph file to try again. It gives up when ctx is done.
func (a *Application) restart(ctx context.Context, reload <-chan struct{}) (*compositor.App, bool) {
	for {
		next, err := a.start(ctx)
		if err == nil {
			return next, true
		}
		logging.Error("CLI", err, "Failed to start the changed graph, waiting for the next change")

		for {
			select {
			case <-ctx.Done():
				return nil, false
			case <-reload:
			}
			if err := a.reload(); err != nil {
				logging.Error("CLI", err, "Graph file changed but can not be loaded")
				continue
			}
			break
		}
	}
}

// start composes and starts the loaded graph. A failed start is torn down.
func (a *Application) start(ctx context.Context) (*compositor.App, error) {
	composed, err := a.Compose(ctx)
	if err != nil {
		return nil, err
	}
	logging.Info("CLI", "Composed %v", composed.Order())

	if err := composed.Start(ctx); err != nil {
		return nil, errors.Join(err, a.teardown(composed))
	}
	return composed, nil
}

// shutdown stops a running application within the shutdown timeout. When
// Stop fails part way, the remaining components are torn down.
func (a *Application) shutdown(running *compositor.App) error {
	ctx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout())
	defer cancel()

	err := running.Stop(ctx)
	if err == nil {
		return nil
	}
	logging.Error("CLI", err, "Failed to stop application cleanly, tearing down")
	return errors.Join(err, running.Teardown(ctx))
}

// teardown stops whatever a failed run left behind.
func (a *Application) teardown(partial *compositor.App) error {
	ctx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout())
	defer cancel()

	if err := partial.Teardown(ctx); err != nil {
		logging.For("CLI").Error("teardown incomplete", slog.String("run", partial.ID()), slog.String("error", err.Error()))
		return err
	}
	return nil
}
