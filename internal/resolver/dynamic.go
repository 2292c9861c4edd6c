package resolver

import (
	"fmt"
	"reflect"
)

// ResolveAny resolves a graph whose shape is only known at runtime, such as
// one decoded from a document. graph must be a slice or array; each element
// is either an Item[any] or a map[string]any with a "node" and a "deps" key.
//
// Nodes may be strings, numbers, pointers, maps, channels or functions and are
// compared by identity. The returned order holds the original node values.
func ResolveAny(graph any) ([]any, error) {
	items, err := FromAny(graph)
	if err != nil {
		return nil, err
	}

	keyed := make([]Item[Identity], len(items))
	values := make(map[Identity]any, len(items))
	display := make(map[Identity]string, len(items))
	for i, item := range items {
		id, err := IdentityOf(item.Node)
		if err != nil {
			return nil, newGraphError(KindInvalidItem, CodeInvalidGraph, "",
				"graph item at position %d has invalid \"node\" property: %v", i, err)
		}
		keyed[i].Node = id
		if _, seen := values[id]; !seen {
			values[id] = item.Node
			display[id] = displayAny(item.Node)
		}
		for _, dep := range item.Deps {
			depID, err := IdentityOf(dep)
			if err != nil {
				return nil, newGraphError(KindInvalidItem, CodeInvalidGraph, "",
					"graph item at position %d has invalid \"deps\" property: %v", i, err)
			}
			if _, seen := display[depID]; !seen {
				display[depID] = displayAny(dep)
			}
			keyed[i].Deps = append(keyed[i].Deps, depID)
		}
	}

	order, err := Resolve(keyed, WithDisplay(func(id Identity) string { return display[id] }))
	if err != nil {
		return nil, err
	}
	out := make([]any, len(order))
	for i, id := range order {
		out[i] = values[id]
	}
	return out, nil
}

// FromAny converts an untyped graph into items, checking its shape.
func FromAny(graph any) ([]Item[any], error) {
	if graph == nil {
		return nil, newGraphError(KindInvalidGraph, CodeInvalidGraph, "", "graph must be a sequence")
	}
	if items, ok := graph.([]Item[any]); ok {
		for i, item := range items {
			if !allowedNode(item.Node) {
				return nil, invalidProperty(i, "node")
			}
			if item.Deps == nil {
				return nil, invalidProperty(i, "deps")
			}
		}
		return items, nil
	}

	rv := reflect.ValueOf(graph)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, newGraphError(KindInvalidGraph, CodeInvalidGraph, "", "graph must be a sequence")
	}

	items := make([]Item[any], 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		item, err := itemFromAny(i, rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func itemFromAny(pos int, v any) (Item[any], error) {
	switch t := v.(type) {
	case Item[any]:
		if !allowedNode(t.Node) {
			return Item[any]{}, invalidProperty(pos, "node")
		}
		if t.Deps == nil {
			return Item[any]{}, invalidProperty(pos, "deps")
		}
		return t, nil
	case map[string]any:
		node, ok := t["node"]
		if !ok || !allowedNode(node) {
			return Item[any]{}, invalidProperty(pos, "node")
		}
		deps, ok := toSequence(t["deps"])
		if !ok {
			return Item[any]{}, invalidProperty(pos, "deps")
		}
		return Item[any]{Node: node, Deps: deps}, nil
	default:
		return Item[any]{}, newGraphError(KindInvalidItem, CodeInvalidGraph, "",
			"graph item at position %d is not a graph item", pos)
	}
}

func invalidProperty(pos int, property string) *GraphError {
	return newGraphError(KindInvalidItem, CodeInvalidGraph, "",
		"graph item at position %d has invalid %q property", pos, property)
}

func toSequence(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func allowedNode(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
		return true
	}
	return false
}

func displayAny(v any) string {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
		if s, ok := v.(fmt.Stringer); ok {
			return s.String()
		}
		return fmt.Sprintf("%T", v)
	}
	return fmt.Sprint(v)
}
