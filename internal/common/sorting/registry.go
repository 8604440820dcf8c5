// Package sorting holds the per-resource sort option registries.
package sorting

import (
	"errors"
	"fmt"
)

// ErrUnknownSortKey is returned when a sort key is not registered for a resource.
var ErrUnknownSortKey = errors.New("unknown sort key")

// Option is one selectable sort order.
type Option struct {
	Key          string `json:"key"`
	Label        string `json:"label"`
	BackendValue string `json:"-"` // Forwarded opaquely to the backend as _sort
}

// Registry is an ordered, immutable set of sort options for one resource type.
// The default key is the first registered option unless overridden.
type Registry struct {
	options    []Option
	index      map[string]int
	defaultKey string
}

// NewRegistry creates a registry from opts in display order.
// It panics on an empty or duplicated key set; registries are built at init.
func NewRegistry(opts ...Option) *Registry {
	if len(opts) == 0 {
		panic("sorting: registry needs at least one option")
	}
	r := &Registry{
		options: make([]Option, len(opts)),
		index:   make(map[string]int, len(opts)),
	}
	copy(r.options, opts)
	for i, o := range r.options {
		if _, dup := r.index[o.Key]; dup {
			panic(fmt.Sprintf("sorting: duplicate sort key %q", o.Key))
		}
		r.index[o.Key] = i
	}
	r.defaultKey = r.options[0].Key
	return r
}

// WithDefault returns a copy of r whose default is key.
func (r *Registry) WithDefault(key string) (*Registry, error) {
	if _, ok := r.index[key]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSortKey, key)
	}
	out := NewRegistry(r.options...)
	out.defaultKey = key
	return out, nil
}

// Options returns the options in display order.
func (r *Registry) Options() []Option {
	out := make([]Option, len(r.options))
	copy(out, r.options)
	return out
}

// DefaultKey returns the key used when no sort is requested.
func (r *Registry) DefaultKey() string {
	return r.defaultKey
}

// Lookup returns the option registered under key.
func (r *Registry) Lookup(key string) (Option, bool) {
	i, ok := r.index[key]
	if !ok {
		return Option{}, false
	}
	return r.options[i], true
}

// Validate returns ErrUnknownSortKey when key is not registered.
func (r *Registry) Validate(key string) error {
	if _, ok := r.index[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSortKey, key)
	}
	return nil
}

// Resolve returns the effective sort key: key itself when registered,
// otherwise the default.
func (r *Registry) Resolve(key string) string {
	if _, ok := r.index[key]; ok {
		return key
	}
	return r.defaultKey
}

// BackendValue returns the backend sort value for key. Unknown keys yield
// ok=false and must not be sent.
func (r *Registry) BackendValue(key string) (string, bool) {
	o, ok := r.Lookup(key)
	if !ok {
		return "", false
	}
	return o.BackendValue, true
}
