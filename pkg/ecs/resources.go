package ecs

import "reflect"

// Resources is a heterogeneous, type-keyed singleton map: config values,
// PRNGs, delta-time, the legacy-world bridge, and similar world-scoped
// singletons that are not per-entity components.
type Resources struct {
	values map[reflect.Type]any
}

// NewResources returns an empty resource map.
func NewResources() *Resources {
	return &Resources{values: make(map[reflect.Type]any)}
}

func keyOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Set installs or replaces the resource of type T.
func Set[T any](r *Resources, v T) {
	r.values[keyOf[T]()] = v
}

// Get returns the resource of type T and true, or the zero value and
// false if none is installed.
func Get[T any](r *Resources) (T, bool) {
	v, ok := r.values[keyOf[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// MustGet returns the resource of type T, panicking if absent. Reserved
// for resources a stage cannot sensibly run without (e.g. Dt); everything
// reachable from planners or the validator must use Get instead.
func MustGet[T any](r *Resources) T {
	v, ok := Get[T](r)
	if !ok {
		panic("ecs: required resource " + keyOf[T]().String() + " not installed")
	}
	return v
}
