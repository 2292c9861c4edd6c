package compositor

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Deps holds the service values of a component's dependencies, keyed by the
// declared name of each dependency.
type Deps map[string]any

// Dep returns the dependency called name as a T.
//
// It fails when the dependency is missing or holds a value of another type,
// which makes it the usual first line of a Make implementation:
//
//	func (w *Web) Make(ctx context.Context, deps compositor.Deps) error {
//	    log, err := compositor.Dep[*slog.Logger](deps, "logger")
//	    if err != nil {
//	        return err
//	    }
//	    ...
//	}
func Dep[T any](deps Deps, name string) (T, error) {
	var zero T
	v, ok := deps[name]
	if !ok {
		return zero, fmt.Errorf("dependency %q is not available", name)
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("dependency %q is %T, not %T", name, v, zero)
	}
	return t, nil
}

// Lookup returns the dependency holding a T when the caller does not know its
// name. When several dependencies hold a T the one called preferred is used;
// without it the choice is ambiguous and Lookup fails. The bool is false when
// no dependency holds a T.
func Lookup[T any](deps Deps, preferred string) (T, bool, error) {
	var zero T
	var matches []string
	for name, v := range deps {
		if _, ok := v.(T); ok {
			matches = append(matches, name)
		}
	}
	switch len(matches) {
	case 0:
		return zero, false, nil
	case 1:
		return deps[matches[0]].(T), true, nil
	}
	if v, ok := deps[preferred].(T); ok {
		return v, true, nil
	}
	sort.Strings(matches)
	return zero, false, fmt.Errorf("dependencies %s all provide %T, name one %q to pick it",
		strings.Join(matches, ", "), zero, preferred)
}

// Maker is implemented by class-kind components. Make receives the service
// values of the component's dependencies; once it returned, Service must
// return the value exposed to dependents.
type Maker interface {
	Make(ctx context.Context, deps Deps) error
	Service() any
}

// Starter is the optional start hook of a class-kind component.
type Starter interface {
	Start(ctx context.Context) error
}

// Stopper is the optional stop hook of a class-kind component.
type Stopper interface {
	Stop(ctx context.Context) error
}

// Named lets a component provide its own name when the graph item does not
// declare one.
type Named interface {
	ComponentName() string
}

// Func is a function-kind component: it is called once with the dependency
// values and its result becomes the service value.
//
// Func values are identified by their funcval pointer. Closures that capture
// variables get a fresh one per evaluation, but a named function or a
// literal capturing nothing always yields the same Func, so declaring it twice
// counts as the same component. Wrap it in distinct *FuncComponent values to
// declare both.
type Func func(ctx context.Context, deps Deps) (any, error)

// FuncComponent is a named function-kind component.
type FuncComponent struct {
	Name string
	Fn   Func
}

// ComponentName implements Named.
func (f *FuncComponent) ComponentName() string {
	return f.Name
}

// Kind is the construction protocol of a component.
type Kind int

const (
	// KindUnsupported is a value that can not take part in a graph, such as
	// a bare string or number.
	KindUnsupported Kind = iota
	// KindClass components implement Maker.
	KindClass
	// KindFunction components are Func or *FuncComponent values.
	KindFunction
	// KindPlain components are used verbatim as their own service value.
	KindPlain
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindFunction:
		return "function"
	case KindPlain:
		return "plain"
	default:
		return "unsupported"
	}
}

// KindOf classifies a component value.
func KindOf(component any) Kind {
	switch c := component.(type) {
	case nil:
		return KindUnsupported
	case Maker:
		return KindClass
	case Func:
		if c == nil {
			return KindUnsupported
		}
		return KindFunction
	case *FuncComponent:
		if c == nil || c.Fn == nil {
			return KindUnsupported
		}
		return KindFunction
	}

	switch reflect.ValueOf(component).Kind() {
	case reflect.Struct, reflect.Pointer, reflect.Map, reflect.Slice,
		reflect.Array, reflect.Func, reflect.Chan, reflect.Interface:
		return KindPlain
	default:
		return KindUnsupported
	}
}
