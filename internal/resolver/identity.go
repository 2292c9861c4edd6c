package resolver

import (
	"fmt"
	"reflect"
)

// Identity is a comparable key standing for a value by reference. Pointers,
// maps, channels, functions and slices are identified by their address, every
// other comparable value by itself.
//
// Distinct pointers to zero-size values may share an address, so they can not
// be told apart.
type Identity struct {
	typ reflect.Type
	ptr uintptr
	len int
	val any
}

// IdentityOf returns the Identity of v.
//
// Args:
//   - v: value to identify, must not be nil
//
// Returns:
//   - Identity: the comparable key
//   - error: when v is nil or has no usable identity (for example a struct
//     holding a slice)
func IdentityOf(v any) (Identity, error) {
	if v == nil {
		return Identity{}, fmt.Errorf("nil value has no identity")
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return Identity{typ: rv.Type(), ptr: rv.Pointer()}, nil
	case reflect.Slice:
		return Identity{typ: rv.Type(), ptr: rv.Pointer(), len: rv.Len()}, nil
	}
	if !rv.Comparable() {
		return Identity{}, fmt.Errorf("value of type %T has no identity", v)
	}
	return Identity{typ: rv.Type(), val: v}, nil
}

// Type returns the dynamic type of the identified value.
func (id Identity) Type() reflect.Type {
	return id.typ
}
