package dependency

// Node is a named component together with the names of the components it
// depends on directly.
type Node struct {
	Name      string
	DependsOn []string
}

// Graph answers dependency queries over a set of named components. It does
// not order or validate anything; that is the resolver's job. It is *not*
// thread-safe by itself; callers must synchronise if they write concurrently.
type Graph struct {
	nodes map[string]*Node
	// names keeps insertion order so query results are stable
	names []string
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// AddNode adds (or replaces) a node in the graph.
func (g *Graph) AddNode(n Node) {
	if g.nodes == nil {
		g.nodes = make(map[string]*Node)
	}
	if _, exists := g.nodes[n.Name]; !exists {
		g.names = append(g.names, n.Name)
	}
	// Copy to avoid external mutations
	copied := Node{Name: n.Name, DependsOn: append([]string(nil), n.DependsOn...)}
	g.nodes[n.Name] = &copied
}

// Get returns a pointer to the stored node or nil if it does not exist.
func (g *Graph) Get(name string) *Node {
	return g.nodes[name]
}

// Dependencies returns the direct dependencies of the named node.
func (g *Graph) Dependencies(name string) []string {
	if n, ok := g.nodes[name]; ok {
		depsCopy := make([]string, len(n.DependsOn))
		copy(depsCopy, n.DependsOn)
		return depsCopy
	}
	return nil
}

// Dependents returns the nodes that depend directly on the named node, in
// the order they were added.
func (g *Graph) Dependents(name string) []string {
	var res []string
	for _, candidate := range g.names {
		for _, dep := range g.nodes[candidate].DependsOn {
			if dep == name {
				res = append(res, candidate)
				break
			}
		}
	}
	return res
}

// AllDependents returns every node that depends on the named node directly
// or through other nodes, breadth first. These are the components affected
// when the named one fails.
func (g *Graph) AllDependents(name string) []string {
	seen := map[string]bool{name: true}
	var res []string
	queue := []string{name}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, d := range g.Dependents(current) {
			if seen[d] {
				continue
			}
			seen[d] = true
			res = append(res, d)
			queue = append(queue, d)
		}
	}
	return res
}
