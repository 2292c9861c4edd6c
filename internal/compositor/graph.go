package compositor

import (
	"fmt"
	"reflect"
	"regexp"
	"runtime"
	"strings"
	"unicode"

	"appi/internal/resolver"
)

// Item declares one component of a graph.
type Item struct {
	// Component is the component value: a Maker, a Func or *FuncComponent,
	// or any other value used as-is.
	Component any
	// Name is the name dependents see the service under. When empty it is
	// inferred from the component.
	Name string
	// Deps lists the components this one depends on, by the same values used
	// as their Component.
	Deps []any
}

// Graph is a declaration of components and their dependencies.
type Graph []Item

var namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]+$`)

// closureName matches the compiler generated names of function literals.
var closureName = regexp.MustCompile(`^func\d+$`)

// ValidName reports whether name can be used as an explicit component name.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// node is the per-component record of a composition run, addressed by its
// declaration index.
type node struct {
	component any
	name      string
	kind      Kind
	deps      []int
}

// buildNodes validates graph and returns one node per item.
func buildNodes(graph Graph) ([]node, error) {
	nodes := make([]node, len(graph))
	ids := make(map[resolver.Identity]int, len(graph))
	names := make(map[string]int, len(graph))
	// positions of components pointing to zero-size values
	var zeroSize []int

	for i, item := range graph {
		if isNil(item.Component) {
			return nil, validationError("graph item at position %d has no component", i)
		}
		if item.Deps == nil {
			return nil, validationError("graph item at position %d has no deps", i)
		}

		if pointsToZeroSize(item.Component) {
			zeroSize = append(zeroSize, i)
		} else {
			id, err := resolver.IdentityOf(item.Component)
			if err != nil {
				return nil, validationError("graph item at position %d has an invalid component: %v", i, err)
			}
			if prev, exists := ids[id]; exists {
				return nil, validationError("graph item at position %d declares the same component as position %d", i, prev)
			}
			ids[id] = i
		}

		name, err := itemName(i, item)
		if err != nil {
			return nil, err
		}
		if _, exists := names[name]; exists {
			return nil, validationError("Dependency graph item name %q is not unique", name)
		}
		names[name] = i

		nodes[i] = node{
			component: item.Component,
			name:      name,
			kind:      KindOf(item.Component),
		}
	}

	for i, item := range graph {
		nodes[i].deps = make([]int, 0, len(item.Deps))
		for j, dep := range item.Deps {
			if dep == nil {
				return nil, validationError("deps of %q at position %d must be a component", nodes[i].name, j)
			}
			if pointsToZeroSize(dep) {
				k, err := zeroSizeDep(graph, zeroSize, nodes, i, j, dep)
				if err != nil {
					return nil, err
				}
				nodes[i].deps = append(nodes[i].deps, k)
				continue
			}
			id, err := resolver.IdentityOf(dep)
			if err != nil {
				return nil, validationError("deps of %q at position %d must be a component: %v", nodes[i].name, j, err)
			}
			k, ok := ids[id]
			if !ok {
				return nil, validationError("component %q depends on a component that is not declared (deps position %d)", nodes[i].name, j)
			}
			nodes[i].deps = append(nodes[i].deps, k)
		}
	}

	return nodes, nil
}

// zeroSizeDep finds the declaration a dependency on a pointer to a zero-size
// value refers to. Such pointers may share one address, so the dependency is
// only resolvable while a single declared component matches it.
func zeroSizeDep(graph Graph, candidates []int, nodes []node, i, j int, dep any) (int, error) {
	var matches []string
	k := -1
	for _, c := range candidates {
		if graph[c].Component == dep {
			matches = append(matches, fmt.Sprintf("%q", nodes[c].name))
			k = c
		}
	}
	switch len(matches) {
	case 0:
		return 0, validationError("component %q depends on a component that is not declared (deps position %d)", nodes[i].name, j)
	case 1:
		return k, nil
	}
	return 0, validationError("deps of %q at position %d is ambiguous: components %s point to zero-size values of type %T and can not be told apart",
		nodes[i].name, j, strings.Join(matches, ", "), dep)
}

// isNil reports whether component is nil or a typed nil reference.
func isNil(component any) bool {
	if component == nil {
		return true
	}
	v := reflect.ValueOf(component)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// pointsToZeroSize reports whether v is a pointer to a zero-size value. Go may
// give all of those the same address.
func pointsToZeroSize(v any) bool {
	t := reflect.TypeOf(v)
	return t.Kind() == reflect.Pointer && t.Elem().Size() == 0
}

func itemName(pos int, item Item) (string, error) {
	if item.Name != "" {
		if !ValidName(item.Name) {
			return "", validationError("graph item at position %d has invalid name %q", pos, item.Name)
		}
		return item.Name, nil
	}
	if name := inferName(item.Component); name != "" {
		return name, nil
	}
	return "", validationError("graph item at position %d has no resolvable name", pos)
}

// inferName derives a component name from the component value itself, or
// returns "" when none can be found.
func inferName(component any) string {
	var name string
	switch c := component.(type) {
	case Named:
		name = c.ComponentName()
	case Maker:
		name = lowerCamel(typeName(reflect.TypeOf(c)))
	case Func:
		name = funcName(c)
	default:
		if reflect.ValueOf(component).Kind() == reflect.Func {
			name = funcName(component)
		}
	}
	if !ValidName(name) {
		return ""
	}
	return name
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// funcName returns the declared name of a function value. Function literals
// have no declared name.
func funcName(fn any) string {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return ""
	}
	f := runtime.FuncForPC(rv.Pointer())
	if f == nil {
		return ""
	}
	full := f.Name()
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}
	name := strings.TrimSuffix(full[strings.LastIndex(full, ".")+1:], "-fm")
	if closureName.MatchString(name) {
		return ""
	}
	return name
}

// lowerCamel lowers the leading upper case run of s, keeping the last letter
// of an acronym upper case when a lower case letter follows:
// Wheels -> wheels, HTTPServer -> httpServer, ID -> id.
func lowerCamel(s string) string {
	runes := []rune(s)
	for i := 0; i < len(runes) && unicode.IsUpper(runes[i]); i++ {
		if i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			break
		}
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// PlanEntry describes one component of a resolved graph.
type PlanEntry struct {
	Name string
	Kind Kind
	Type string
	Deps []string
}

// Plan validates and orders graph without building anything. The entries are
// in the order Compose would build the components.
func Plan(graph Graph) ([]PlanEntry, error) {
	nodes, err := buildNodes(graph)
	if err != nil {
		return nil, err
	}
	order, err := resolveOrder(nodes)
	if err != nil {
		return nil, err
	}

	plan := make([]PlanEntry, len(order))
	for i, idx := range order {
		n := nodes[idx]
		deps := make([]string, len(n.deps))
		for j, d := range n.deps {
			deps[j] = nodes[d].name
		}
		plan[i] = PlanEntry{
			Name: n.name,
			Kind: n.kind,
			Type: fmt.Sprintf("%T", n.component),
			Deps: deps,
		}
	}
	return plan, nil
}
