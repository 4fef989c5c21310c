package conf

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
)

// Serializer writes configuration objects as XML documents. It holds no
// state beyond the registry and is safe to use concurrently on
// independent objects.
type Serializer struct {
	registry *Registry
}

// NewSerializer creates a serializer resolving types through registry.
func NewSerializer(registry *Registry) *Serializer {
	return &Serializer{registry: registry}
}

// Serialize writes a complete XML document for cfg to w. The root element
// is tagged with the type's declared element name and carries a type
// attribute naming the concrete type, as does every nested object
// element. Fields appear in ascending name order so persisted files stay
// diff-friendly.
func (s *Serializer) Serialize(cfg Config, w io.Writer) error {
	desc, err := s.registry.DescriptorFor(cfg)
	if err != nil {
		return &SerializationError{Message: "unresolved type", Err: err}
	}

	e := &emitter{w: w}
	e.writef("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	e.writef("<%s xmlns=\"%s\" type=\"%s\">\n", desc.elementName(), Namespace, desc.TypeName)

	if err := s.writeFields(e, cfg, desc, 1); err != nil {
		return err
	}

	e.writef("</%s>\n", desc.elementName())

	if e.err != nil {
		return &SerializationError{TypeName: desc.TypeName, Message: "write failed", Err: e.err}
	}
	return nil
}

func (s *Serializer) writeFields(e *emitter, cfg Config, desc *Descriptor, depth int) error {
	for i := range desc.Fields {
		f := &desc.Fields[i]

		val := f.Get(cfg)
		if isNilValue(val) {
			continue
		}

		var err error
		switch f.Kind {
		case KindScalar:
			err = s.writeScalar(e, desc, f, val, depth)
		case KindNested:
			err = s.writeNested(e, desc, f, val, depth)
		case KindCollection:
			err = s.writeCollection(e, desc, f, val, depth)
		default:
			err = &SerializationError{
				TypeName: desc.TypeName,
				Field:    f.Name,
				Message:  "unsupported value kind",
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Serializer) writeScalar(e *emitter, desc *Descriptor, f *FieldDescriptor, val any, depth int) error {
	text, ok := formatScalar(f.Scalar, val)
	if !ok {
		return &SerializationError{
			TypeName: desc.TypeName,
			Field:    f.Name,
			Message:  fmt.Sprintf("value of type %T does not match declared scalar kind", val),
		}
	}
	e.leaf(depth, f.Name, text)
	return nil
}

func (s *Serializer) writeNested(e *emitter, desc *Descriptor, f *FieldDescriptor, val any, depth int) error {
	child, ok := val.(Config)
	if !ok {
		return &SerializationError{
			TypeName: desc.TypeName,
			Field:    f.Name,
			Message:  fmt.Sprintf("nested value of type %T does not implement Config", val),
		}
	}

	childDesc, err := s.registry.Lookup(child.TypeName())
	if err != nil {
		return &SerializationError{TypeName: desc.TypeName, Field: f.Name, Message: "unresolved nested type", Err: err}
	}

	e.indent(depth)
	e.writef("<%s type=\"%s\">\n", f.Name, childDesc.TypeName)
	if err := s.writeFields(e, child, childDesc, depth+1); err != nil {
		return err
	}
	e.indent(depth)
	e.writef("</%s>\n", f.Name)
	return nil
}

// writeCollection emits a wrapper element named after the field with one
// child element per item. Empty collections are omitted entirely, never
// written as an empty wrapper.
func (s *Serializer) writeCollection(e *emitter, desc *Descriptor, f *FieldDescriptor, val any, depth int) error {
	switch items := val.(type) {
	case []string:
		if len(items) == 0 {
			return nil
		}
		e.open(depth, f.Name)
		for _, item := range items {
			e.leaf(depth+1, f.itemTag(TypeString), item)
		}
		e.close(depth, f.Name)

	case []int:
		if len(items) == 0 {
			return nil
		}
		e.open(depth, f.Name)
		for _, item := range items {
			e.leaf(depth+1, f.itemTag(TypeInt), strconv.Itoa(item))
		}
		e.close(depth, f.Name)

	case []int64:
		if len(items) == 0 {
			return nil
		}
		e.open(depth, f.Name)
		for _, item := range items {
			e.leaf(depth+1, f.itemTag(TypeLong), strconv.FormatInt(item, 10))
		}
		e.close(depth, f.Name)

	case []bool:
		if len(items) == 0 {
			return nil
		}
		e.open(depth, f.Name)
		for _, item := range items {
			e.leaf(depth+1, f.itemTag(TypeBool), strconv.FormatBool(item))
		}
		e.close(depth, f.Name)

	case []Config:
		if len(items) == 0 {
			return nil
		}
		e.open(depth, f.Name)
		for _, item := range items {
			itemDesc, err := s.registry.DescriptorFor(item)
			if err != nil {
				return &SerializationError{TypeName: desc.TypeName, Field: f.Name, Message: "unresolved item type", Err: err}
			}
			tag := f.itemTag(itemDesc.elementName())
			e.indent(depth + 1)
			e.writef("<%s type=\"%s\">\n", tag, itemDesc.TypeName)
			if err := s.writeFields(e, item, itemDesc, depth+2); err != nil {
				return err
			}
			e.indent(depth + 1)
			e.writef("</%s>\n", tag)
		}
		e.close(depth, f.Name)

	default:
		return &SerializationError{
			TypeName: desc.TypeName,
			Field:    f.Name,
			Message:  fmt.Sprintf("unsupported collection value of type %T", val),
		}
	}
	return nil
}

// itemTag returns the tag for one collection item: the field's element
// name override when present, otherwise the item's own type-derived tag.
func (f *FieldDescriptor) itemTag(fallback string) string {
	if f.ElementName != "" {
		return f.ElementName
	}
	return fallback
}

func formatScalar(st ScalarType, val any) (string, bool) {
	switch st {
	case ScalarString:
		s, ok := val.(string)
		return s, ok
	case ScalarInt:
		n, ok := val.(int)
		return strconv.Itoa(n), ok
	case ScalarInt64:
		n, ok := val.(int64)
		return strconv.FormatInt(n, 10), ok
	case ScalarBool:
		b, ok := val.(bool)
		return strconv.FormatBool(b), ok
	}
	return "", false
}

// isNilValue treats untyped nil, nil Config pointers and nil slices as
// absent values to be omitted from the document.
func isNilValue(val any) bool {
	if val == nil {
		return true
	}
	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
		return rv.IsNil()
	}
	return false
}

// emitter writes indented XML and remembers the first write error so
// callers can check once at the end.
type emitter struct {
	w   io.Writer
	err error
}

func (e *emitter) writef(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *emitter) indent(depth int) {
	e.writef("%s", strings.Repeat("  ", depth))
}

func (e *emitter) open(depth int, tag string) {
	e.indent(depth)
	e.writef("<%s>\n", tag)
}

func (e *emitter) close(depth int, tag string) {
	e.indent(depth)
	e.writef("</%s>\n", tag)
}

// leaf writes a leaf element. Text containing & or < goes into a CDATA
// section instead of being entity-escaped inline. A bare ]]> is not
// valid character data either, so it forces a CDATA section too.
func (e *emitter) leaf(depth int, tag, text string) {
	e.indent(depth)
	if strings.ContainsAny(text, "&<") || strings.Contains(text, "]]>") {
		escaped := strings.ReplaceAll(text, "]]>", "]]]]><![CDATA[>")
		e.writef("<%s><![CDATA[%s]]></%s>\n", tag, escaped, tag)
	} else {
		e.writef("<%s>%s</%s>\n", tag, text, tag)
	}
}
