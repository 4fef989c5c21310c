package conf

import "fmt"

// Test fixture types shared by the serializer, deserializer and registry
// tests.

type serverConfig struct {
	Base
	Host     string
	Port     int
	MaxBytes int64
	Debug    bool
	Tags     []string
	Aliases  []string
	Pool     *poolConfig
	Backends []Config
}

func (c *serverConfig) TypeName() string { return "test.ServerConfig" }

type poolConfig struct {
	Base
	Size int
	Idle int
}

func (c *poolConfig) TypeName() string { return "test.PoolConfig" }

type backendConfig struct {
	Base
	URL    string
	Weight int
}

func (c *backendConfig) TypeName() string { return "test.BackendConfig" }

func serverDescriptor() Descriptor {
	return Descriptor{
		TypeName:    "test.ServerConfig",
		ElementName: "server-conf",
		New:         func() Config { return &serverConfig{} },
		Fields: []FieldDescriptor{
			{
				Name: "host",
				Kind: KindScalar, Scalar: ScalarString,
				Get: func(c Config) any { return c.(*serverConfig).Host },
				Set: func(c Config, v any) error { c.(*serverConfig).Host = v.(string); return nil },
			},
			{
				Name: "port",
				Kind: KindScalar, Scalar: ScalarInt,
				Get: func(c Config) any { return c.(*serverConfig).Port },
				Set: func(c Config, v any) error { c.(*serverConfig).Port = v.(int); return nil },
			},
			{
				Name: "maxBytes",
				Kind: KindScalar, Scalar: ScalarInt64,
				Get: func(c Config) any { return c.(*serverConfig).MaxBytes },
				Set: func(c Config, v any) error { c.(*serverConfig).MaxBytes = v.(int64); return nil },
			},
			{
				Name: "debug",
				Kind: KindScalar, Scalar: ScalarBool,
				Get: func(c Config) any { return c.(*serverConfig).Debug },
				Set: func(c Config, v any) error { c.(*serverConfig).Debug = v.(bool); return nil },
			},
			{
				Name: "tags",
				Kind: KindCollection, Collection: CollectionList, ElementName: "tag",
				Get: func(c Config) any { return c.(*serverConfig).Tags },
				Set: func(c Config, v any) error { c.(*serverConfig).Tags = v.([]string); return nil },
			},
			{
				Name: "aliases",
				Kind: KindCollection, Collection: CollectionSet,
				Get: func(c Config) any { return c.(*serverConfig).Aliases },
				Set: func(c Config, v any) error { c.(*serverConfig).Aliases = v.([]string); return nil },
			},
			{
				Name: "pool",
				Kind: KindNested, ElementType: "test.PoolConfig",
				Get: func(c Config) any { return c.(*serverConfig).Pool },
				Set: func(c Config, v any) error { c.(*serverConfig).Pool = v.(*poolConfig); return nil },
			},
			{
				Name: "backends",
				Kind: KindCollection, Collection: CollectionList, ElementType: "test.BackendConfig",
				Get: func(c Config) any { return c.(*serverConfig).Backends },
				Set: func(c Config, v any) error { c.(*serverConfig).Backends = v.([]Config); return nil },
			},
		},
	}
}

func poolDescriptor() Descriptor {
	return Descriptor{
		TypeName:    "test.PoolConfig",
		ElementName: "pool-conf",
		New:         func() Config { return &poolConfig{} },
		Fields: []FieldDescriptor{
			{
				Name: "size",
				Kind: KindScalar, Scalar: ScalarInt,
				Get: func(c Config) any { return c.(*poolConfig).Size },
				Set: func(c Config, v any) error { c.(*poolConfig).Size = v.(int); return nil },
			},
			{
				Name: "idle",
				Kind: KindScalar, Scalar: ScalarInt,
				Get: func(c Config) any { return c.(*poolConfig).Idle },
				Set: func(c Config, v any) error { c.(*poolConfig).Idle = v.(int); return nil },
			},
		},
	}
}

func backendDescriptor() Descriptor {
	return Descriptor{
		TypeName:    "test.BackendConfig",
		ElementName: "backend",
		New:         func() Config { return &backendConfig{} },
		Fields: []FieldDescriptor{
			{
				Name: "url",
				Kind: KindScalar, Scalar: ScalarString,
				Get: func(c Config) any { return c.(*backendConfig).URL },
				Set: func(c Config, v any) error { c.(*backendConfig).URL = v.(string); return nil },
			},
			{
				Name: "weight",
				Kind: KindScalar, Scalar: ScalarInt,
				Get: func(c Config) any { return c.(*backendConfig).Weight },
				Set: func(c Config, v any) error { c.(*backendConfig).Weight = v.(int); return nil },
			},
		},
	}
}

func newTestRegistry() *Registry {
	r := NewRegistry()
	for _, d := range []Descriptor{serverDescriptor(), poolDescriptor(), backendDescriptor()} {
		if err := r.Register(d); err != nil {
			panic(fmt.Sprintf("test registry setup: %v", err))
		}
	}
	return r
}
