package conf

// Kind classifies how a field's value appears in a persisted document.
type Kind int

const (
	// KindScalar is a leaf value: text, integer or boolean.
	KindScalar Kind = iota
	// KindNested is another configuration object, recursed into fully.
	KindNested
	// KindCollection is a homogeneous list or set of values.
	KindCollection
)

// ScalarType enumerates the scalar kinds the marshaller understands.
type ScalarType int

const (
	ScalarString ScalarType = iota
	ScalarInt
	ScalarInt64
	ScalarBool
)

// CollectionKind distinguishes order-preserving lists from sets. Set
// membership survives a round trip but ordering may change: sets come
// back sorted.
type CollectionKind int

const (
	CollectionList CollectionKind = iota
	CollectionSet
)

// Scalar element type names. A collection field's ElementType may name
// one of these or a registered configuration type.
const (
	TypeString = "string"
	TypeInt    = "int"
	TypeLong   = "long"
	TypeBool   = "boolean"
)

// FieldDescriptor declares one persisted field of a configuration type.
// Accessor closures replace the reflective getter/setter pairs the
// marshaller would otherwise have to discover at runtime; fields a type
// wants to keep internal-only are simply not declared.
type FieldDescriptor struct {
	// Name is the serialized element name for this field.
	Name string

	// Kind classifies the field value.
	Kind Kind

	// Scalar is the value type for KindScalar fields.
	Scalar ScalarType

	// Collection is the container kind for KindCollection fields.
	Collection CollectionKind

	// ElementType names the declared value type: for KindCollection the
	// element type (defaults to "string"), for KindNested the declared
	// nested type used when a document element carries no type attribute.
	ElementType string

	// ElementName overrides the per-item tag for KindCollection fields.
	// When empty, scalar items are tagged with their type name and
	// config items with their own element name.
	ElementName string

	// Get returns the field value. Nested values must be returned as a
	// Config (nil when absent); collections as []string, []int, []int64,
	// []bool or []Config.
	Get func(cfg Config) any

	// Set assigns a value of the same shape Get returns.
	Set func(cfg Config, val any) error
}

// Descriptor declares the serializable surface of one configuration type.
type Descriptor struct {
	// TypeName is the registered name recorded in the type attribute.
	TypeName string

	// ElementName is the tag used for the type's own element. Defaults
	// to TypeName when empty.
	ElementName string

	// New constructs an empty instance for deserialization.
	New func() Config

	// Fields lists the persisted fields. Held sorted by Name once the
	// descriptor is registered.
	Fields []FieldDescriptor
}

func (d *Descriptor) elementName() string {
	if d.ElementName != "" {
		return d.ElementName
	}
	return d.TypeName
}

func (d *Descriptor) field(name string) *FieldDescriptor {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i]
		}
	}
	return nil
}

func (f *FieldDescriptor) elementType() string {
	if f.ElementType != "" {
		return f.ElementType
	}
	return TypeString
}

func scalarTypeByName(name string) (ScalarType, bool) {
	switch name {
	case TypeString:
		return ScalarString, true
	case TypeInt:
		return ScalarInt, true
	case TypeLong:
		return ScalarInt64, true
	case TypeBool:
		return ScalarBool, true
	}
	return ScalarString, false
}
