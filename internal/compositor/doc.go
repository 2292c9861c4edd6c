// Package compositor assembles an application out of components.
//
// A Graph lists components with the components they depend on. Compose
// validates the declaration, asks the resolver for a construction order and
// builds each component exactly once, handing it the service values of its
// dependencies keyed by their names. The resulting App starts the components
// in that order and stops them in reverse.
//
// # Component kinds
//
// How a component is built depends on its kind, fixed once per component
// when the graph is validated:
//
//   - class: the value implements Maker. Make is called with the dependency
//     values, then Service provides the value dependents see. The optional
//     Starter and Stopper hooks take part in Start and Stop.
//   - function: a Func or *FuncComponent. It is called once and its result
//     is the service value.
//   - plain: any other struct, pointer, map, slice, channel or function value
//     is its own service value.
//   - unsupported: scalars such as strings and numbers. Composition fails
//     when such a component is reached.
//
// # Names
//
// Dependencies are handed over by name. A graph item either sets Name, which
// must match ^[A-Za-z][A-Za-z0-9]+$, or the name is inferred from the
// component: the Named interface first, then a class-kind component's type
// name in lower camel case (*Wheels becomes "wheels"), then the declared
// name of a named function.
//
// # Example
//
//	wheels, engine, car := &Wheels{}, &Engine{}, &Car{}
//	app, err := compositor.Compose(ctx, compositor.Graph{
//	    {Component: wheels, Deps: []any{}},
//	    {Component: engine, Deps: []any{wheels}},
//	    {Component: car, Deps: []any{wheels, engine}},
//	})
//	if err != nil {
//	    return err
//	}
//	if err := app.Start(ctx); err != nil {
//	    return err
//	}
//	defer app.Stop(context.Background())
//
// # Errors
//
// Validation, lifecycle and precondition failures are *AppError values with
// an ErrorKind and one of the Code constants. Ordering failures, cycles
// included, are returned as *resolver.GraphError. Both unwrap to
// *apperror.Error.
package compositor
