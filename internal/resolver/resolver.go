package resolver

import (
	"fmt"
	"slices"
)

// Item declares one node of a dependency graph together with the nodes it
// depends on.
type Item[N comparable] struct {
	Node N
	Deps []N
}

// Option customises Resolve.
type Option[N comparable] func(*options[N])

type options[N comparable] struct {
	display func(N) string
}

// WithDisplay sets the function used to render nodes in error messages.
// The default is fmt.Sprint.
func WithDisplay[N comparable](fn func(N) string) Option[N] {
	return func(o *options[N]) {
		if fn != nil {
			o.display = fn
		}
	}
}

// Resolve returns the nodes of graph ordered so that every node comes after
// all of its dependencies.
//
// The graph is validated first: a node declared twice or a dependency that is
// never declared as a node is reported as a *GraphError. If the graph has a
// cycle the returned *GraphError carries the exact cycle path.
//
// The order is deterministic for a given graph: the walk starts from the last
// declared node and explores dependencies in declaration order.
func Resolve[N comparable](graph []Item[N], opts ...Option[N]) ([]N, error) {
	o := options[N]{display: func(n N) string { return fmt.Sprint(n) }}
	for _, opt := range opts {
		opt(&o)
	}

	index := make(map[N]int, len(graph))
	for i, item := range graph {
		if _, exists := index[item.Node]; exists {
			return nil, newGraphError(KindDuplicateNode, CodeDuplicateNode, o.display(item.Node),
				"graph node %s defined more than once", o.display(item.Node))
		}
		index[item.Node] = i
	}

	deps := make([][]int, len(graph))
	for i, item := range graph {
		deps[i] = make([]int, 0, len(item.Deps))
		for _, dep := range item.Deps {
			j, ok := index[dep]
			if !ok {
				return nil, newGraphError(KindUndeclaredDependency, CodeUndeclaredDependency, o.display(dep),
					"graph node %s depends on undeclared node %s", o.display(item.Node), o.display(dep))
			}
			deps[i] = append(deps[i], j)
		}
	}

	w := newWalker(deps)
	if err := w.run(); err != nil {
		cycle := make([]string, len(err.path))
		for i, n := range err.path {
			cycle[i] = o.display(graph[n].Node)
		}
		return nil, newCycleError(cycle)
	}

	order := make([]N, len(w.order))
	for i, n := range w.order {
		order[i] = graph[n].Node
	}
	return order, nil
}

// Reverse returns a reversed copy of order.
func Reverse[N any](order []N) []N {
	reversed := slices.Clone(order)
	slices.Reverse(reversed)
	return reversed
}

// walker is the iterative depth-first topological sort over node indices.
type walker struct {
	deps [][]int

	stack    []int
	resolved []bool
	order    []int

	visiting []bool
	// path records nodes in the order they were marked visiting. Entries
	// whose visiting flag was cleared are stale and skipped.
	path []int
}

type cycleFound struct {
	path []int
}

func newWalker(deps [][]int) *walker {
	w := &walker{
		deps:     deps,
		stack:    make([]int, 0, len(deps)),
		resolved: make([]bool, len(deps)),
		order:    make([]int, 0, len(deps)),
		visiting: make([]bool, len(deps)),
	}
	for i := range deps {
		w.stack = append(w.stack, i)
	}
	return w
}

func (w *walker) run() *cycleFound {
	for len(w.stack) > 0 {
		top := w.stack[len(w.stack)-1]

		switch {
		case w.resolved[top]:
			w.pop()
		case w.resolvable(top):
			w.pop()
			w.resolved[top] = true
			w.order = append(w.order, top)
			w.visiting[top] = false
		case w.visiting[top]:
			return &cycleFound{path: w.cycleFrom(top)}
		default:
			w.visiting[top] = true
			w.path = append(w.path, top)
			// pushed in reverse so the first declared dependency is on top
			for i := len(w.deps[top]) - 1; i >= 0; i-- {
				if dep := w.deps[top][i]; !w.resolved[dep] {
					w.stack = append(w.stack, dep)
				}
			}
		}
	}
	return nil
}

func (w *walker) pop() {
	w.stack = w.stack[:len(w.stack)-1]
}

func (w *walker) resolvable(n int) bool {
	for _, dep := range w.deps[n] {
		if !w.resolved[dep] {
			return false
		}
	}
	return true
}

func (w *walker) cycleFrom(n int) []int {
	var cycle []int
	found := false
	for _, p := range w.path {
		if !w.visiting[p] {
			continue
		}
		if p == n {
			found = true
		}
		if found {
			cycle = append(cycle, p)
		}
	}
	return append(cycle, n)
}
