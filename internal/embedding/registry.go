package embedding

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry maps backend names and aliases to descriptors. Registration
// is append-only: a name is never replaced.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	byName  map[string]Descriptor
	aliases map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]Descriptor),
		aliases: make(map[string]string),
	}
}

// NewDefaultRegistry creates a registry with the built-in backends.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, d := range []Descriptor{smallLocalDescriptor(), largeLocalDescriptor(), remoteDescriptor()} {
		if err := r.Register(d); err != nil {
			// Built-in names are distinct.
			panic(err)
		}
	}
	return r
}

// Register adds a descriptor. It fails when the name or any alias is
// already taken; the registry is unchanged on failure.
func (r *Registry) Register(d Descriptor) error {
	if d.Name == "" || d.Factory == nil || d.Dim == nil {
		return fmt.Errorf("embeddings backend %q: name, dim and factory are required", d.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	keys := append([]string{d.Name}, d.Aliases...)
	for _, k := range keys {
		k = strings.ToLower(k)
		if _, ok := r.byName[k]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateBackend, k)
		}
		if _, ok := r.aliases[k]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateBackend, k)
		}
	}

	name := strings.ToLower(d.Name)
	r.byName[name] = d
	r.order = append(r.order, name)
	for _, a := range d.Aliases {
		r.aliases[strings.ToLower(a)] = name
	}
	return nil
}

// Lookup finds a descriptor by name or alias, case-insensitively.
func (r *Registry) Lookup(name string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := r.aliases[key]; ok {
		key = canonical
	}
	d, ok := r.byName[key]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownBackend, name, strings.Join(r.order, ", "))
	}
	return d, nil
}

// Names returns the canonical names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}
