// Package resolver orders the nodes of a dependency graph.
//
// Resolve takes a list of items, each naming a node and the nodes it depends
// on, and returns a linear order in which every node follows its
// dependencies. The walk is an iterative depth-first search over an explicit
// stack, so deep graphs never grow the goroutine stack.
//
// All failures are reported as *GraphError, which unwraps to an
// *apperror.Error:
//
//	order, err := resolver.Resolve([]resolver.Item[string]{
//	    {Node: "car", Deps: []string{"engine", "wheels"}},
//	    {Node: "engine", Deps: []string{"wheels"}},
//	    {Node: "wheels", Deps: []string{}},
//	})
//	// order == [wheels engine car]
//
// A cycle yields a message of the form
//
//	dependency cycle detected: (e) -> (b) -> (c) -> (a) -> (e)
package resolver
