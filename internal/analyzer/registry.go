package analyzer

import (
	"slices"
	"sync"

	"github.com/nao1215/rookeen/internal/apperr"
)

// Registry holds analyzer descriptors in registration order.
type Registry struct {
	mu     sync.RWMutex
	order  []string
	byName map[string]Descriptor
	sealed bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Descriptor)}
}

// Register adds d. The registry is unchanged when d's name is taken or
// the registry is sealed.
func (r *Registry) Register(d Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return ErrRegistrySealed
	}
	if _, ok := r.byName[d.Name]; ok {
		return &DuplicateAnalyzerError{Name: d.Name}
	}
	r.byName[d.Name] = d
	r.order = append(r.order, d.Name)
	return nil
}

// Seal forbids further registration.
//
// Design decision: the first ResolveSelection seals the registry so the
// set of names a selection was validated against cannot change while
// requests are running. Batch workers resolve the same selection
// concurrently and must all see the same analyzers in the same order.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Sealed reports whether the registry is sealed.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byName[name]
	return d, ok
}

// Names returns every registered name in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Availability splits analyzers by their availability probe.
type Availability struct {
	Available   []string          `json:"available"`
	Unavailable map[string]string `json:"unavailable"`
}

// ListAvailable probes every registered analyzer.
func (r *Registry) ListAvailable() Availability {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := Availability{
		Available:   make([]string, 0, len(r.order)),
		Unavailable: make(map[string]string),
	}
	for _, name := range r.order {
		if err := r.byName[name].probe(); err != nil {
			out.Unavailable[name] = err.Error()
			continue
		}
		out.Available = append(out.Available, name)
	}
	return out
}

// Selection is a request for a set of analyzers.
type Selection struct {
	// Enable replaces the core set when non-empty.
	Enable []string

	// Disable removes analyzers. It wins over everything else.
	Disable []string

	// OptionalFlags switches optional analyzers on by name, e.g.
	// {"embeddings": true} for --enable-embeddings.
	OptionalFlags map[string]bool
}

// ResolveSelection returns the descriptors to run in registration
// order and seals the registry. The same selection always yields the
// same result. Unknown enable names are an UnknownAnalyzer error;
// unknown disable names are ignored.
func (r *Registry) ResolveSelection(sel Selection) ([]Descriptor, error) {
	r.Seal()

	r.mu.RLock()
	defer r.mu.RUnlock()

	// Only enable is checked. Disabling a name that does not exist
	// leaves the selection unchanged, so a shared disable list keeps
	// working when an analyzer is not registered in every build.
	var unknown []string
	for _, name := range sel.Enable {
		if _, ok := r.byName[name]; !ok && !slices.Contains(unknown, name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		err := &UnknownAnalyzerError{Names: unknown, Known: slices.Clone(r.order)}
		return nil, apperr.Wrap(apperr.UnknownAnalyzer, err, "")
	}

	selected := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		d := r.byName[name]
		if !wanted(d, sel) {
			continue
		}
		if err := d.probe(); err != nil {
			uerr := &UnavailableAnalyzerError{Name: d.Name, Requires: d.Requires, Err: err}
			return nil, apperr.Wrap(apperr.UnavailableAnalyzer, uerr, "")
		}
		selected = append(selected, d)
	}
	return selected, nil
}

// wanted applies the selection rules to one descriptor.
func wanted(d Descriptor, sel Selection) bool {
	if slices.Contains(sel.Disable, d.Name) {
		return false
	}
	if slices.Contains(sel.Enable, d.Name) {
		return true
	}
	if d.Kind == Optional {
		return sel.OptionalFlags[d.Name]
	}
	return len(sel.Enable) == 0
}
