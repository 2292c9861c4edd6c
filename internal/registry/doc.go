// Package registry maps the component types named in graph files to the
// factories that build them.
//
// The application registers the built-in types at startup; Build then turns
// a validated graph file into a compositor.Graph whose items carry the
// declared names and whose deps point at the built component values.
package registry
