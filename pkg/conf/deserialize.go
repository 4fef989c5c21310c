package conf

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"confkit/internal/template"
)

// Deserializer reconstructs configuration objects from parsed documents.
// Structural mismatches between document and target type abort the whole
// operation; there is no partial recovery.
type Deserializer struct {
	registry *Registry
	engine   *template.Engine
	lookup   template.Lookup
}

// NewDeserializer creates a deserializer resolving types through
// registry. String scalars pass through ${name} substitution against the
// process environment.
func NewDeserializer(registry *Registry) *Deserializer {
	return &Deserializer{
		registry: registry,
		engine:   template.New(),
		lookup:   template.EnvLookup,
	}
}

// NewDeserializerWithVars creates a deserializer whose ${name}
// substitution resolves through vars first and the process environment
// second.
func NewDeserializerWithVars(registry *Registry, vars map[string]string) *Deserializer {
	return &Deserializer{
		registry: registry,
		engine:   template.New(),
		lookup:   template.MapLookup(vars, template.EnvLookup),
	}
}

// Deserialize parses a document from r and reconstructs the object graph.
// When typeName is empty the root element must carry a type attribute.
func (d *Deserializer) Deserialize(r io.Reader, typeName string) (Config, error) {
	root, err := ParseDocument(r)
	if err != nil {
		return nil, err
	}
	return d.FromElement(root, typeName)
}

// FromElement reconstructs a configuration from an already-parsed root
// element. An explicit typeName takes precedence over the element's type
// attribute.
func (d *Deserializer) FromElement(root *Element, typeName string) (Config, error) {
	if typeName == "" {
		typeName = root.Type
	}
	cfg, desc, err := d.instantiate(root, typeName)
	if err != nil {
		return nil, err
	}
	if err := d.populate(cfg, desc, root); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (d *Deserializer) instantiate(el *Element, typeName string) (Config, *Descriptor, error) {
	if typeName == "" {
		return nil, nil, &DeserializationError{
			Element: el.Name,
			Message: "no type attribute and no declared type",
		}
	}
	desc, err := d.registry.Lookup(typeName)
	if err != nil {
		return nil, nil, &DeserializationError{Element: el.Name, Message: "unresolvable type " + typeName, Err: err}
	}
	return desc.New(), desc, nil
}

// populate assigns every child element of el to the matching field of
// cfg. A child with no matching field fails the whole operation: stale
// configuration files are rejected, never silently dropped.
func (d *Deserializer) populate(cfg Config, desc *Descriptor, el *Element) error {
	for _, child := range el.Children {
		f := desc.field(child.Name)
		if f == nil {
			return &DeserializationError{
				Element: child.Name,
				Message: "no field for element in type " + desc.TypeName,
			}
		}
		if err := d.populateField(cfg, f, child); err != nil {
			return err
		}
	}
	return nil
}

func (d *Deserializer) populateField(cfg Config, f *FieldDescriptor, el *Element) error {
	switch {
	case f.Kind == KindCollection && el.HasChildren():
		return d.populateCollection(cfg, f, el)

	case !el.HasChildren():
		return d.populateLeaf(cfg, f, el)

	case f.Kind == KindNested:
		nested, err := d.nestedValue(el, f.ElementType)
		if err != nil {
			return err
		}
		return d.assign(cfg, f, nested, el)

	default:
		return &DeserializationError{
			Element: el.Name,
			Message: "element has child elements but field " + f.Name + " is scalar",
		}
	}
}

// populateLeaf parses a childless element's text as the field's scalar
// type. Empty text means an absent value and the setter is not invoked.
func (d *Deserializer) populateLeaf(cfg Config, f *FieldDescriptor, el *Element) error {
	if el.Text == "" {
		return nil
	}
	if f.Kind != KindScalar {
		// Indentation inside an otherwise empty wrapper is not content.
		if strings.TrimSpace(el.Text) == "" {
			return nil
		}
		return &DeserializationError{
			Element: el.Name,
			Message: "text content for non-scalar field " + f.Name,
		}
	}
	val, err := d.scalarValue(f.Scalar, el)
	if err != nil {
		return err
	}
	return d.assign(cfg, f, val, el)
}

// scalarValue parses element text as one of the supported scalar kinds.
// Every string value is scanned for ${name} placeholders before it is
// handed to the setter; unresolved placeholders stay verbatim.
func (d *Deserializer) scalarValue(st ScalarType, el *Element) (any, error) {
	text := el.Text
	switch st {
	case ScalarString:
		return d.engine.Replace(text, d.lookup), nil
	case ScalarInt:
		n, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return nil, &DeserializationError{Element: el.Name, Message: "invalid integer value " + strconv.Quote(text), Err: err}
		}
		return int(n), nil
	case ScalarInt64:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, &DeserializationError{Element: el.Name, Message: "invalid long value " + strconv.Quote(text), Err: err}
		}
		return n, nil
	case ScalarBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, &DeserializationError{Element: el.Name, Message: "invalid boolean value " + strconv.Quote(text), Err: err}
		}
		return b, nil
	}
	return nil, &DeserializationError{Element: el.Name, Message: "unsupported scalar type"}
}

// nestedValue resolves the concrete type of an object-valued element
// (type attribute first, declared type second), instantiates it and
// populates it from the element's children.
func (d *Deserializer) nestedValue(el *Element, declaredType string) (Config, error) {
	typeName := el.Type
	if typeName == "" {
		typeName = declaredType
	}
	cfg, desc, err := d.instantiate(el, typeName)
	if err != nil {
		return nil, err
	}
	if err := d.populate(cfg, desc, el); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (d *Deserializer) populateCollection(cfg Config, f *FieldDescriptor, el *Element) error {
	elementType := f.elementType()

	if st, ok := scalarTypeByName(elementType); ok {
		return d.populateScalarCollection(cfg, f, el, st)
	}

	items := make([]Config, 0, len(el.Children))
	for _, child := range el.Children {
		item, err := d.nestedValue(child, elementType)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	if f.Collection == CollectionSet {
		sort.Slice(items, func(i, j int) bool { return items[i].Name() < items[j].Name() })
	}
	return d.assign(cfg, f, items, el)
}

func (d *Deserializer) populateScalarCollection(cfg Config, f *FieldDescriptor, el *Element, st ScalarType) error {
	isSet := f.Collection == CollectionSet

	switch st {
	case ScalarString:
		vals := make([]string, 0, len(el.Children))
		for _, child := range el.Children {
			v, err := d.collectionItem(child, st)
			if err != nil {
				return err
			}
			if v == nil {
				continue
			}
			vals = append(vals, v.(string))
		}
		if isSet {
			sort.Strings(vals)
		}
		return d.assign(cfg, f, vals, el)

	case ScalarInt:
		vals := make([]int, 0, len(el.Children))
		for _, child := range el.Children {
			v, err := d.collectionItem(child, st)
			if err != nil {
				return err
			}
			if v == nil {
				continue
			}
			vals = append(vals, v.(int))
		}
		if isSet {
			sort.Ints(vals)
		}
		return d.assign(cfg, f, vals, el)

	case ScalarInt64:
		vals := make([]int64, 0, len(el.Children))
		for _, child := range el.Children {
			v, err := d.collectionItem(child, st)
			if err != nil {
				return err
			}
			if v == nil {
				continue
			}
			vals = append(vals, v.(int64))
		}
		if isSet {
			sort.Slice(vals, func(i, j int) bool { return vals[i] < vals[j] })
		}
		return d.assign(cfg, f, vals, el)

	case ScalarBool:
		vals := make([]bool, 0, len(el.Children))
		for _, child := range el.Children {
			v, err := d.collectionItem(child, st)
			if err != nil {
				return err
			}
			if v == nil {
				continue
			}
			vals = append(vals, v.(bool))
		}
		if isSet {
			sort.Slice(vals, func(i, j int) bool { return !vals[i] && vals[j] })
		}
		return d.assign(cfg, f, vals, el)
	}

	return &DeserializationError{Element: el.Name, Message: "unsupported collection element type"}
}

// collectionItem parses one scalar collection child. Items with empty
// text contribute nothing, mirroring how absent leaf values are skipped.
func (d *Deserializer) collectionItem(el *Element, st ScalarType) (any, error) {
	if el.HasChildren() {
		return nil, &DeserializationError{
			Element: el.Name,
			Message: "child elements inside scalar collection item",
		}
	}
	if el.Text == "" {
		return nil, nil
	}
	return d.scalarValue(st, el)
}

func (d *Deserializer) assign(cfg Config, f *FieldDescriptor, val any, el *Element) error {
	if err := f.Set(cfg, val); err != nil {
		return &DeserializationError{Element: el.Name, Message: "assignment to field " + f.Name + " failed", Err: err}
	}
	return nil
}
