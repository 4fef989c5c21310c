package manage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confkit/pkg/conf"
	"confkit/pkg/store"
)

type dbConfig struct {
	conf.Base
	Host string
	Port int
}

func (c *dbConfig) TypeName() string { return "svc.DBConfig" }

func dbDescriptor() conf.Descriptor {
	return conf.Descriptor{
		TypeName:    "svc.DBConfig",
		ElementName: "db-conf",
		New:         func() conf.Config { return &dbConfig{} },
		Fields: []conf.FieldDescriptor{
			{
				Name: "host",
				Kind: conf.KindScalar, Scalar: conf.ScalarString,
				Get: func(c conf.Config) any { return c.(*dbConfig).Host },
				Set: func(c conf.Config, v any) error { c.(*dbConfig).Host = v.(string); return nil },
			},
			{
				Name: "port",
				Kind: conf.KindScalar, Scalar: conf.ScalarInt,
				Get: func(c conf.Config) any { return c.(*dbConfig).Port },
				Set: func(c conf.Config, v any) error { c.(*dbConfig).Port = v.(int); return nil },
			},
		},
	}
}

func newTestStore(t *testing.T) *store.FileStore {
	t.Helper()
	registry := conf.NewRegistry()
	require.NoError(t, registry.Register(dbDescriptor()))

	st, err := store.NewFileStore(registry, t.TempDir())
	require.NoError(t, err)
	return st
}

func saveConfig(t *testing.T, st store.Store, name string, cfg conf.Config) {
	t.Helper()
	cfg.SetName(name)
	require.NoError(t, st.Save(cfg))
}

func TestConfLoad(t *testing.T) {
	st := newTestStore(t)
	saveConfig(t, st, "db", &dbConfig{Host: "db.internal", Port: 5432})

	c := NewConf("dbsvc", "db", "", st)
	assert.Equal(t, StatusUnknown, c.Status())
	assert.Nil(t, c.Config())

	assert.Equal(t, "OK", c.Load())
	assert.Equal(t, StatusDone, c.Status())

	cfg := c.Config().(*dbConfig)
	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
}

func TestConfLoadWithTypeName(t *testing.T) {
	st := newTestStore(t)
	saveConfig(t, st, "db", &dbConfig{Host: "h"})

	c := NewConf("dbsvc", "db", "svc.DBConfig", st)
	assert.Equal(t, "OK", c.Load())

	c = NewConf("dbsvc", "db", "svc.Unknown", st)
	assert.Equal(t, "failed", c.Load())
	assert.Equal(t, StatusFailed, c.Status())
}

func TestConfLoadMissing(t *testing.T) {
	c := NewConf("dbsvc", "absent", "", newTestStore(t))

	assert.Equal(t, "failed", c.Load())
	assert.Equal(t, StatusFailed, c.Status())
	assert.Nil(t, c.Config())
}

func TestConfSave(t *testing.T) {
	st := newTestStore(t)

	c := NewConf("dbsvc", "db", "", st)
	c.SetConfig(&dbConfig{Host: "fresh", Port: 1})

	assert.Equal(t, "saved", c.Save())
	assert.Equal(t, StatusDone, c.Status())

	// The configName is applied when the config has no name of its own.
	loaded, err := st.Get("db")
	require.NoError(t, err)
	assert.Equal(t, "fresh", loaded.(*dbConfig).Host)
}

func TestConfSaveNothingLoaded(t *testing.T) {
	c := NewConf("dbsvc", "db", "", newTestStore(t))

	assert.Equal(t, "No configuration to save", c.Save())
}

func TestConfSaveReadOnlyStore(t *testing.T) {
	st := newTestStore(t)
	saveConfig(t, st, "db", &dbConfig{Host: "h"})

	registry := conf.NewRegistry()
	require.NoError(t, registry.Register(dbDescriptor()))
	ro, err := store.NewReadOnlyFileStore(registry, st.DirPath())
	require.NoError(t, err)

	c := NewConf("dbsvc", "db", "", ro)
	require.Equal(t, "OK", c.Load())

	result := c.Save()
	assert.Contains(t, result, "read-only")
	assert.Equal(t, StatusFailed, c.Status())
}

func TestConfLoadSaveRoundTrip(t *testing.T) {
	st := newTestStore(t)
	saveConfig(t, st, "db", &dbConfig{Host: "one", Port: 1})

	c := NewConf("dbsvc", "db", "", st)
	require.Equal(t, "OK", c.Load())

	cfg := c.Config().(*dbConfig)
	cfg.Host = "two"
	cfg.MarkChanged()
	require.Equal(t, "saved", c.Save())

	fresh := NewConf("other", "db", "", st)
	require.Equal(t, "OK", fresh.Load())
	assert.Equal(t, "two", fresh.Config().(*dbConfig).Host)
}
