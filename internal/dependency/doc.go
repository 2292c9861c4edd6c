// Package dependency answers "who needs whom" questions about a component
// graph: the direct dependencies of a component, the components depending
// on it, and everything affected when it fails.
//
// Ordering and cycle detection live in the resolver package; this package
// only indexes edges. The check command uses it to show, for every component,
// which others require it.
//
//	g := dependency.New()
//	g.AddNode(dependency.Node{Name: "env"})
//	g.AddNode(dependency.Node{Name: "logger", DependsOn: []string{"env"}})
//	g.AddNode(dependency.Node{Name: "http", DependsOn: []string{"env", "logger"}})
//
//	g.Dependents("env")    // [logger http]
//	g.AllDependents("env") // [logger http]
package dependency
