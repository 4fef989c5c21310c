package conf

import (
	"sort"
	"sync"
)

// Registry maps type names to descriptors and factories. Configuration
// types register themselves at process start; deserialization fails when
// a document names a type the registry does not know.
//
// A Registry is an explicit object with no process-wide instance: the
// component that marshals configurations owns one and hands it to the
// serializer, deserializer and stores that need it.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*Descriptor
}

// NewRegistry creates an empty type registry.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[string]*Descriptor),
	}
}

// Register validates and stores a type descriptor. Fields are sorted
// lexicographically by name so that serialized output is reproducible
// across runs. Registration fails with a ResolutionError when the
// descriptor is malformed: missing type name or factory, a duplicate
// type registration, two fields sharing one serialized name, or a field
// without its accessor pair.
func (r *Registry) Register(d Descriptor) error {
	if d.TypeName == "" {
		return &ResolutionError{Message: "descriptor has no type name"}
	}
	if d.New == nil {
		return &ResolutionError{TypeName: d.TypeName, Message: "descriptor has no factory"}
	}

	seen := make(map[string]bool, len(d.Fields))
	for i := range d.Fields {
		f := &d.Fields[i]
		if f.Name == "" {
			return &ResolutionError{TypeName: d.TypeName, Message: "field with empty name"}
		}
		if seen[f.Name] {
			return &ResolutionError{
				TypeName: d.TypeName,
				Message:  "multiple accessors for field " + f.Name,
			}
		}
		seen[f.Name] = true

		if f.Get == nil || f.Set == nil {
			return &ResolutionError{
				TypeName: d.TypeName,
				Message:  "field " + f.Name + " is missing an accessor",
			}
		}
		if f.Kind == KindCollection && f.ElementType == "" {
			f.ElementType = TypeString
		}
	}

	// Keep our own sorted copy so caller mutations cannot disturb the
	// resolved descriptor.
	desc := d
	desc.Fields = make([]FieldDescriptor, len(d.Fields))
	copy(desc.Fields, d.Fields)
	sort.Slice(desc.Fields, func(i, j int) bool {
		return desc.Fields[i].Name < desc.Fields[j].Name
	})

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[desc.TypeName]; exists {
		return &ResolutionError{TypeName: desc.TypeName, Message: "type already registered"}
	}
	r.types[desc.TypeName] = &desc

	return nil
}

// MustRegister is Register for process-start wiring where a malformed
// descriptor is a programming error.
func (r *Registry) MustRegister(d Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// Lookup resolves the descriptor registered under typeName.
func (r *Registry) Lookup(typeName string) (*Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.types[typeName]
	if !ok {
		return nil, &ResolutionError{TypeName: typeName, Message: "type not registered"}
	}
	return d, nil
}

// DescriptorFor resolves the descriptor for a configuration value via its
// reported type name.
func (r *Registry) DescriptorFor(cfg Config) (*Descriptor, error) {
	if cfg == nil {
		return nil, &ResolutionError{Message: "nil configuration"}
	}
	return r.Lookup(cfg.TypeName())
}

// Types returns the sorted names of all registered types.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
