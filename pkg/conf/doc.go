// Package conf implements descriptor-driven XML persistence for named
// configuration objects.
//
// Every configuration type declares its serializable surface once, at
// process start, as an explicit descriptor: the persisted fields, their
// element names, value kinds and accessor closures. Descriptors live in
// a Registry that also maps the type name written into each document's
// type attribute back to a factory, which is what lets a store
// reconstruct the concrete type on reload without an external schema.
//
// # Declaring a type
//
//	type PoolConfig struct {
//	    conf.Base
//	    Size int
//	}
//
//	func (c *PoolConfig) TypeName() string { return "example.PoolConfig" }
//
//	registry := conf.NewRegistry()
//	registry.MustRegister(conf.Descriptor{
//	    TypeName:    "example.PoolConfig",
//	    ElementName: "pool-conf",
//	    New:         func() conf.Config { return &PoolConfig{} },
//	    Fields: []conf.FieldDescriptor{
//	        {
//	            Name: "size",
//	            Kind: conf.KindScalar, Scalar: conf.ScalarInt,
//	            Get: func(c conf.Config) any { return c.(*PoolConfig).Size },
//	            Set: func(c conf.Config, v any) error { c.(*PoolConfig).Size = v.(int); return nil },
//	        },
//	    },
//	})
//
// # Document shape
//
// The root element and every nested object element carry a type
// attribute naming the concrete type. Fields serialize in ascending name
// order. Scalar text containing & or < is wrapped in a CDATA section.
// Empty collections are omitted entirely. String scalars pass through
// ${name} placeholder substitution on the way in; unresolved
// placeholders are left verbatim.
//
// The marshalling algorithms hold no shared mutable state and are safe
// to invoke concurrently on independent objects. Any structural mismatch
// between a document and its target type aborts the whole operation with
// a DeserializationError.
package conf
