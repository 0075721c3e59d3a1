package typesys

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Registry interns concrete types, tracks every placeholder ever created and
// resolves descriptors by full name. All methods are safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]Descriptor
	concrete    map[string]*ConcreteType
	undefined   map[uuid.UUID]*UndefinedGenericType
}

// NewRegistry creates an empty, isolated registry.
func NewRegistry() *Registry {
	return &Registry{
		descriptors: make(map[string]Descriptor),
		concrete:    make(map[string]*ConcreteType),
		undefined:   make(map[uuid.UUID]*UndefinedGenericType),
	}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// RegisterDescriptor makes d resolvable by its full name.
func (r *Registry) RegisterDescriptor(d Descriptor) error {
	if d == nil {
		return ErrNilType
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	name := d.FullName()
	if _, exists := r.descriptors[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateDescriptor, name)
	}
	r.descriptors[name] = d
	return nil
}

// Descriptor looks a registered descriptor up by full name.
func (r *Registry) Descriptor(fullName string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[fullName]
	return d, ok
}

// Get returns the interned concrete type for d instantiated with generics,
// creating it on first use. When generics is empty and d is generic, the
// arguments come from d's bound arguments if it is a ClosedDescriptor;
// otherwise ErrUnboundGenerics is returned.
func (r *Registry) Get(d Descriptor, generics ...Type) (*ConcreteType, error) {
	if d == nil {
		return nil, ErrNilType
	}
	params := d.GenericParams()

	if len(generics) == 0 && len(params) > 0 {
		closed, ok := d.(ClosedDescriptor)
		if !ok {
			return nil, fmt.Errorf("%w: %s declares %d parameter(s) and no arguments were supplied", ErrUnboundGenerics, d.FullName(), len(params))
		}
		bound := closed.BoundArguments()
		generics = make([]Type, len(bound))
		for i, b := range bound {
			t, err := r.Get(b)
			if err != nil {
				return nil, fmt.Errorf("materializing argument %d of %s: %w", i, d.FullName(), err)
			}
			generics[i] = t
		}
	}

	if len(generics) != len(params) {
		return nil, fmt.Errorf("%w: %s expects %d, got %d", ErrGenericArity, d.FullName(), len(params), len(generics))
	}
	for i, g := range generics {
		if g == nil {
			return nil, fmt.Errorf("%w: argument %d of %s", ErrNilType, i, d.FullName())
		}
	}

	key := internKey(d, generics)

	r.mu.RLock()
	existing, ok := r.concrete[key]
	r.mu.RUnlock()
	if ok {
		return existing, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.concrete[key]; ok {
		return existing, nil
	}
	if _, known := r.descriptors[d.FullName()]; !known {
		r.descriptors[d.FullName()] = d
	}

	args := make([]Type, len(generics))
	copy(args, generics)
	open := false
	for _, a := range args {
		if a.HasUndefinedGenerics() {
			open = true
			break
		}
	}

	ct := &ConcreteType{
		registry: r,
		desc:     d,
		args:     args,
		key:      key,
		open:     open,
	}
	r.concrete[key] = ct
	return ct, nil
}

// MustGet is like Get but panics on error. It is meant for statically known
// types in tests and builtin tables.
func (r *Registry) MustGet(d Descriptor, generics ...Type) *ConcreteType {
	t, err := r.Get(d, generics...)
	if err != nil {
		panic(err)
	}
	return t
}

// NewUndefined allocates a fresh placeholder with a new identifier. Two calls
// with the same name return distinct placeholders.
func (r *Registry) NewUndefined(name string) *UndefinedGenericType {
	u := &UndefinedGenericType{name: name, id: uuid.New()}
	r.mu.Lock()
	r.undefined[u.id] = u
	r.mu.Unlock()
	return u
}

// Undefined returns the placeholder registered under id.
func (r *Registry) Undefined(id uuid.UUID) (*UndefinedGenericType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.undefined[id]
	return u, ok
}

// restoreUndefined returns the placeholder registered under id, registering a
// new one with the stored identity when none exists.
func (r *Registry) restoreUndefined(name string, id uuid.UUID) (*UndefinedGenericType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.undefined[id]; ok {
		if u.name != name {
			return nil, fmt.Errorf("%w: placeholder %s is registered as %q, envelope says %q", ErrMalformedEnvelope, id, u.name, name)
		}
		return u, nil
	}
	u := &UndefinedGenericType{name: name, id: id}
	r.undefined[id] = u
	return u, nil
}

func internKey(d Descriptor, args []Type) string {
	if len(args) == 0 {
		return d.FullName()
	}
	var sb strings.Builder
	sb.WriteString(d.FullName())
	sb.WriteByte('[')
	for i, a := range args {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(argKey(a))
	}
	sb.WriteByte(']')
	return sb.String()
}

func argKey(t Type) string {
	switch v := t.(type) {
	case *ConcreteType:
		return v.key
	case *UndefinedGenericType:
		return "?" + v.id.String()
	default:
		return "!" + string(t.Kind())
	}
}
