package compositor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"appi/internal/resolver"
	"appi/pkg/apperror"
	"appi/pkg/logging"
)

// State describes where an App is in its lifecycle. It is informational:
// Start and Stop only require the app to be composed.
type State string

const (
	StateComposing State = "Composing"
	StateComposed  State = "Composed"
	StateStarting  State = "Starting"
	StateRunning   State = "Running"
	StateStopping  State = "Stopping"
	StateStopped   State = "Stopped"
	StateFailed    State = "Failed"
)

// Phase names the lifecycle operation an Event reports on.
type Phase string

const (
	PhaseMake  Phase = "make"
	PhaseStart Phase = "start"
	PhaseStop  Phase = "stop"
)

// Event is emitted once per make, start or stop call on a component.
type Event struct {
	Component string
	Kind      Kind
	Phase     Phase
	Err       error
	Duration  time.Duration
}

// Option configures Compose.
type Option func(*App)

// WithObserver registers fn to receive an Event after every lifecycle call.
// Observers run synchronously on the goroutine driving the phase.
func WithObserver(fn func(Event)) Option {
	return func(a *App) {
		if fn != nil {
			a.observers = append(a.observers, fn)
		}
	}
}

// WithLogger sets the logger of the composition run. By default the
// "Compositor" subsystem logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.log = logger
		}
	}
}

// App is a composed application: the components of a graph, built in
// dependency order, with their service values available by name.
type App struct {
	id        string
	log       *slog.Logger
	observers []func(Event)

	// run serializes composition and lifecycle phases.
	run sync.Mutex

	mu        sync.RWMutex
	nodes     []node
	order     []int
	instances []any
	services  []any
	built     []bool
	numBuilt  int
	// buildOrder lists the indices of built nodes in construction order.
	buildOrder []int
	byName     map[string]int
	state      State
}

// Compose validates graph, orders it and builds every component in that
// order.
//
// Validation and ordering failures are returned before any component is
// touched, with a nil App. When a component fails to build, Compose returns
// the partially built App together with the error: it is not composed, so
// Start and Stop refuse to run, but Teardown can stop what was built.
func Compose(ctx context.Context, graph Graph, opts ...Option) (*App, error) {
	id := uuid.NewString()
	a := &App{
		id:    id,
		log:   logging.For("Compositor"),
		state: StateComposing,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.With(slog.String("run", id))

	a.run.Lock()
	defer a.run.Unlock()

	nodes, err := buildNodes(graph)
	if err != nil {
		return nil, err
	}
	order, err := resolveOrder(nodes)
	if err != nil {
		return nil, err
	}

	a.nodes = nodes
	a.order = order
	a.instances = make([]any, len(nodes))
	a.services = make([]any, len(nodes))
	a.built = make([]bool, len(nodes))
	a.byName = make(map[string]int, len(nodes))
	for i, n := range nodes {
		a.byName[n.name] = i
	}

	a.log.Debug("composing", slog.Int("components", len(nodes)))

	for _, idx := range order {
		if err := a.make(ctx, idx); err != nil {
			a.setState(StateFailed)
			a.log.Error("composition failed", slog.String("component", a.nodes[idx].name), slog.String("error", err.Error()))
			return a, err
		}
	}

	a.setState(StateComposed)
	a.log.Info("composed", slog.Any("order", a.Order()))
	return a, nil
}

func resolveOrder(nodes []node) ([]int, error) {
	items := make([]resolver.Item[int], len(nodes))
	for i, n := range nodes {
		items[i] = resolver.Item[int]{Node: i, Deps: n.deps}
	}
	return resolver.Resolve(items, resolver.WithDisplay(func(i int) string {
		return nodes[i].name
	}))
}

func (a *App) make(ctx context.Context, idx int) error {
	n := a.nodes[idx]

	deps := make(Deps, len(n.deps))
	a.mu.RLock()
	for _, d := range n.deps {
		deps[a.nodes[d].name] = a.services[d]
	}
	a.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return lifecycleError(KindInitialization, n.name, err)
	}

	started := time.Now()
	instance, service, err := materialize(ctx, n, deps)
	a.observe(Event{Component: n.name, Kind: n.kind, Phase: PhaseMake, Err: err, Duration: time.Since(started)})
	if err != nil {
		return lifecycleError(KindInitialization, n.name, err)
	}

	a.mu.Lock()
	a.instances[idx] = instance
	a.services[idx] = service
	a.built[idx] = true
	a.numBuilt++
	a.buildOrder = append(a.buildOrder, idx)
	a.mu.Unlock()

	a.log.Debug("component made", slog.String("component", n.name), slog.String("kind", n.kind.String()))
	return nil
}

// materialize builds one component according to its kind and returns the
// instance kept for lifecycle hooks (nil unless class-kind) and the service
// value.
func materialize(ctx context.Context, n node, deps Deps) (any, any, error) {
	switch n.kind {
	case KindClass:
		m := n.component.(Maker)
		if err := m.Make(ctx, deps); err != nil {
			return nil, nil, err
		}
		return m, m.Service(), nil
	case KindFunction:
		var fn Func
		switch c := n.component.(type) {
		case Func:
			fn = c
		case *FuncComponent:
			fn = c.Fn
		}
		service, err := fn(ctx, deps)
		if err != nil {
			return nil, nil, err
		}
		return nil, service, nil
	case KindPlain:
		return nil, n.component, nil
	default:
		return nil, nil, fmt.Errorf("unsupported component type %T", n.component)
	}
}

// Start runs the start hooks of all components in resolved order. Components
// without a start hook are skipped. The first failure stops the sequence;
// components started before it stay started.
func (a *App) Start(ctx context.Context) error {
	a.run.Lock()
	defer a.run.Unlock()

	if !a.IsComposed() {
		return newAppError(KindPrecondition, apperror.CodeNone, "Can not start an app that was not composed")
	}

	a.setState(StateStarting)
	for _, idx := range a.order {
		if err := a.hook(ctx, idx, PhaseStart); err != nil {
			a.setState(StateFailed)
			return err
		}
	}
	a.setState(StateRunning)
	a.log.Info("started")
	return nil
}

// Stop runs the stop hooks of all components in reverse resolved order.
// Components without a stop hook are skipped. The first failure stops the
// sequence.
func (a *App) Stop(ctx context.Context) error {
	a.run.Lock()
	defer a.run.Unlock()

	if !a.IsComposed() {
		return newAppError(KindPrecondition, CodeStopFailed, "Can not stop an app that was not composed")
	}

	a.setState(StateStopping)
	for _, idx := range resolver.Reverse(a.order) {
		if err := a.hook(ctx, idx, PhaseStop); err != nil {
			a.setState(StateFailed)
			return err
		}
	}
	a.setState(StateStopped)
	a.log.Info("stopped")
	return nil
}

// Teardown stops every component that was built, in reverse construction
// order, whether or not the app is composed. Unlike Stop it does not give up
// on the first failure: all stop hooks are attempted and their errors are
// joined.
//
// It is meant for cleaning up after a failed Compose, and for shutting down
// when a Stop failed half way. Stop hooks reached through Teardown may run on
// components that were never started.
func (a *App) Teardown(ctx context.Context) error {
	a.run.Lock()
	defer a.run.Unlock()

	a.mu.RLock()
	built := resolver.Reverse(a.buildOrder)
	a.mu.RUnlock()

	a.setState(StateStopping)
	var errs []error
	for _, idx := range built {
		if err := a.hook(ctx, idx, PhaseStop); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		a.setState(StateFailed)
		return err
	}
	a.setState(StateStopped)
	return nil
}

func (a *App) hook(ctx context.Context, idx int, phase Phase) error {
	n := a.nodes[idx]

	a.mu.RLock()
	instance := a.instances[idx]
	a.mu.RUnlock()

	var call func(context.Context) error
	kind := KindStart
	switch phase {
	case PhaseStart:
		if s, ok := instance.(Starter); ok {
			call = s.Start
		}
	case PhaseStop:
		kind = KindStop
		if s, ok := instance.(Stopper); ok {
			call = s.Stop
		}
	}
	if call == nil {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return lifecycleError(kind, n.name, err)
	}

	started := time.Now()
	err := call(ctx)
	a.observe(Event{Component: n.name, Kind: n.kind, Phase: phase, Err: err, Duration: time.Since(started)})
	if err != nil {
		a.log.Error("hook failed", slog.String("component", n.name), slog.String("phase", string(phase)), slog.String("error", err.Error()))
		return lifecycleError(kind, n.name, err)
	}
	a.log.Debug("hook done", slog.String("component", n.name), slog.String("phase", string(phase)))
	return nil
}

func (a *App) observe(e Event) {
	for _, fn := range a.observers {
		fn(e)
	}
}

func (a *App) setState(s State) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}

// ID returns the unique ID of this composition run.
func (a *App) ID() string {
	return a.id
}

// State returns the current lifecycle state.
func (a *App) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// IsComposed reports whether every declared component has been built.
func (a *App) IsComposed() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.nodes) == a.numBuilt && a.byName != nil
}

// Service returns the service value of the component declared as name.
func (a *App) Service(name string) (any, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	idx, ok := a.byName[name]
	if !ok || !a.built[idx] {
		return nil, false
	}
	return a.services[idx], true
}

// ServiceAs returns the service value of the component declared as name if
// it is a T.
func ServiceAs[T any](a *App, name string) (T, bool) {
	var zero T
	v, ok := a.Service(name)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Order returns the component names in resolved order.
func (a *App) Order() []string {
	names := make([]string, len(a.order))
	for i, idx := range a.order {
		names[i] = a.nodes[idx].name
	}
	return names
}
