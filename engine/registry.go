package engine

import "sort"

// Symbol is a named handle held by a Registry. Variable symbols carry a
// caller-assigned value; function symbols are read-only handles whose
// identity is the useful part.
type Symbol struct {
	name     string
	value    any
	readOnly bool

	// Reports a write violation to the owning engine, when bound to one.
	fail func(error)
}

// Name returns the symbol's name.
func (s *Symbol) Name() string {
	return s.name
}

// Value returns the value currently associated with the symbol.
func (s *Symbol) Value() any {
	return s.value
}

// ReadOnly returns true if the symbol refuses assignment.
func (s *Symbol) ReadOnly() bool {
	return s.readOnly
}

// Set associates a value with the symbol. Writing a read-only symbol fails
// with an ImmutableBindingError; when the symbol belongs to an engine, the
// violation also fails the compile in progress, so a routine that drops the
// returned error cannot continue past it.
func (s *Symbol) Set(value any) error {
	if s.readOnly {
		err := NewImmutableBindingError(s.name)
		if s.fail != nil {
			s.fail(err)
		}
		return err
	}
	s.value = value
	return nil
}

// Registry tracks named symbols for one engine. Entries are created lazily
// on first reference and cached for the registry's lifetime, so repeated
// lookups of one name always return the same *Symbol.
type Registry struct {
	readOnly bool
	symbols  map[string]*Symbol
	fail     func(error)
}

// NewRegistry returns a standalone registry. Registries obtained from an
// engine via Vars or Funcs additionally report write violations to that
// engine.
func NewRegistry(readOnly bool) *Registry {
	return &Registry{
		readOnly: readOnly,
		symbols:  map[string]*Symbol{},
	}
}

func newEngineRegistry(readOnly bool, fail func(error)) *Registry {
	return &Registry{
		readOnly: readOnly,
		symbols:  map[string]*Symbol{},
		fail:     fail,
	}
}

// Get returns the symbol with the specified name, creating it on first
// reference.
func (r *Registry) Get(name string) *Symbol {
	if s, ok := r.symbols[name]; ok {
		return s
	}
	s := &Symbol{name: name, readOnly: r.readOnly, fail: r.fail}
	r.symbols[name] = s
	return s
}

// Lookup returns the symbol with the specified name and a boolean
// indicating whether it exists. It does not create missing entries.
func (r *Registry) Lookup(name string) (*Symbol, bool) {
	s, ok := r.symbols[name]
	return s, ok
}

// Set associates a value with the named symbol, creating it if needed.
func (r *Registry) Set(name string, value any) error {
	return r.Get(name).Set(value)
}

// Count returns the number of symbols defined in this registry.
func (r *Registry) Count() int {
	return len(r.symbols)
}

// Names returns the defined symbol names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.symbols))
	for name := range r.symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
