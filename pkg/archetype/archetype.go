// Package archetype stores named, reusable (tag, configuration) pairs.
//
// A Registry is generic over the configuration type so it can hold any
// option structure that knows how to copy and merge itself. Registration
// stores an independent snapshot; every Resolve hands out a fresh copy with
// the overrides merged on top.
package archetype

import (
	"sort"

	"github.com/vango-dev/forge/internal/errors"
)

// Archetype is one registered definition.
type Archetype[C any] struct {
	Name    string
	Tag     string
	Options C
}

// Registry maps archetype names to snapshots.
type Registry[C any] struct {
	clone func(C) C
	merge func(base, overrides C) C

	entries map[string]Archetype[C]
}

// New creates a registry. clone must return a copy that shares no mutable
// state with its argument; merge must not mutate either argument.
func New[C any](clone func(C) C, merge func(base, overrides C) C) *Registry[C] {
	return &Registry[C]{
		clone:   clone,
		merge:   merge,
		entries: make(map[string]Archetype[C]),
	}
}

// Register stores a snapshot of cfg under name, replacing any previous
// definition. Later changes to cfg do not affect the stored snapshot.
func (r *Registry[C]) Register(name, tag string, cfg C) {
	r.entries[name] = Archetype[C]{
		Name:    name,
		Tag:     tag,
		Options: r.clone(cfg),
	}
}

// Resolve returns the tag and the stored options with overrides merged on
// top. An unregistered name fails with UnknownArchetype.
func (r *Registry[C]) Resolve(name string, overrides C) (string, C, error) {
	a, ok := r.entries[name]
	if !ok {
		var zero C
		return "", zero, errors.New(errors.CodeUnknownArchetype).WithSubject(name)
	}
	return a.Tag, r.merge(r.clone(a.Options), overrides), nil
}

// Lookup returns a copy of the named archetype.
func (r *Registry[C]) Lookup(name string) (Archetype[C], bool) {
	a, ok := r.entries[name]
	if !ok {
		return Archetype[C]{}, false
	}
	a.Options = r.clone(a.Options)
	return a, true
}

// Has reports whether name is registered.
func (r *Registry[C]) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Delete removes the named archetype.
func (r *Registry[C]) Delete(name string) {
	delete(r.entries, name)
}

// Names returns the registered names in sorted order.
func (r *Registry[C]) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered archetypes.
func (r *Registry[C]) Len() int {
	return len(r.entries)
}
