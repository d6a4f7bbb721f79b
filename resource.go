package keel

import "reflect"

// ResourceStore holds process-wide singletons keyed by type: clocks, RNGs,
// asset registries, anything exactly one of which exists per World.
type ResourceStore struct {
	values map[reflect.Type]any
}

func newResourceStore() *ResourceStore {
	return &ResourceStore{values: make(map[reflect.Type]any)}
}

// AddResource stores val as the singleton for its type, replacing any
// previous value.
func AddResource[T any](rs *ResourceStore, val T) {
	rs.values[reflect.TypeFor[T]()] = val
}

// GetResource returns the singleton for T.
func GetResource[T any](rs *ResourceStore) (T, error) {
	v, ok := rs.values[reflect.TypeFor[T]()]
	if !ok {
		var zero T
		return zero, MissingResourceError{Type: reflect.TypeFor[T]()}
	}
	return v.(T), nil
}

// MustGetResource is GetResource for resources the caller knows are present.
// It panics when T was never added.
func MustGetResource[T any](rs *ResourceStore) T {
	v, err := GetResource[T](rs)
	if err != nil {
		panic(err)
	}
	return v
}

// HasResource reports whether a singleton for T is present.
func HasResource[T any](rs *ResourceStore) bool {
	_, ok := rs.values[reflect.TypeFor[T]()]
	return ok
}

// RemoveResource drops the singleton for T, reporting whether one was
// present.
func RemoveResource[T any](rs *ResourceStore) bool {
	t := reflect.TypeFor[T]()
	_, ok := rs.values[t]
	delete(rs.values, t)
	return ok
}
