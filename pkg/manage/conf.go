package manage

import (
	"sync"

	"confkit/pkg/conf"
	"confkit/pkg/logging"
	"confkit/pkg/store"
)

// Conf manages one named configuration: it knows which store the
// configuration lives in, holds the loaded value, and exposes
// load/save as operations that never propagate an error. Failures are
// logged, recorded in the status, and reported as a result string, so
// a management caller always gets an answer.
type Conf struct {
	mu          sync.Mutex
	serviceName string
	configName  string
	typeName    string
	store       store.Store
	status      string
	cfg         conf.Config
}

// Conf implements Bean.
var _ Bean = (*Conf)(nil)

// NewConf creates a managed configuration. typeName may be empty, in
// which case the stored document's type attribute decides the concrete
// type on load.
func NewConf(serviceName, configName, typeName string, st store.Store) *Conf {
	return &Conf{
		serviceName: serviceName,
		configName:  configName,
		typeName:    typeName,
		store:       st,
		status:      StatusUnknown,
	}
}

// ServiceName returns the name this configuration is managed under.
func (c *Conf) ServiceName() string {
	return c.serviceName
}

// ConfigName returns the name of the stored configuration.
func (c *Conf) ConfigName() string {
	return c.configName
}

// Status returns the status of the most recent operation.
func (c *Conf) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Config returns the currently loaded configuration, or nil before the
// first successful Load.
func (c *Conf) Config() conf.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// SetConfig replaces the in-memory configuration, typically after a
// caller mutated a copy it obtained from Config.
func (c *Conf) SetConfig(cfg conf.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = cfg
}

// Load reads the configuration from the store. It returns "OK" on
// success and "failed" otherwise; the cause is logged, not returned.
func (c *Conf) Load() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var cfg conf.Config
	var err error
	if c.typeName != "" {
		cfg, err = c.store.GetType(c.configName, c.typeName)
	} else {
		cfg, err = c.store.Get(c.configName)
	}
	if err != nil {
		c.status = StatusFailed
		logging.Error("Manage", err, "Failed to load configuration %s for service %s", c.configName, c.serviceName)
		return "failed"
	}

	c.cfg = cfg
	c.status = StatusDone
	logging.Info("Manage", "Loaded configuration %s for service %s", c.configName, c.serviceName)
	return "OK"
}

// Save writes the in-memory configuration back to the store. Like
// Load, it reports the outcome as a string.
func (c *Conf) Save() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfg == nil {
		return "No configuration to save"
	}

	if c.cfg.Name() == "" {
		c.cfg.SetName(c.configName)
	}

	if err := c.store.Save(c.cfg); err != nil {
		c.status = StatusFailed
		logging.Error("Manage", err, "Failed to save configuration %s for service %s", c.configName, c.serviceName)
		return err.Error()
	}

	c.status = StatusDone
	return "saved"
}
