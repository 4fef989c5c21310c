package manage

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"confkit/pkg/logging"
)

// Bean is the management surface of one configuration. Conf is the
// standard implementation; services with extra lifecycle needs provide
// their own.
type Bean interface {
	ServiceName() string
	ConfigName() string
	Status() string
	Load() string
	Save() string
}

// Registry tracks the beans registered by running services. Services
// register at startup and unregister, by handle, at shutdown.
type Registry struct {
	mu        sync.RWMutex
	byHandle  map[string]Bean
	byService map[string]string
	byConfig  map[string]string
}

// NewRegistry creates an empty management registry.
func NewRegistry() *Registry {
	return &Registry{
		byHandle:  make(map[string]Bean),
		byService: make(map[string]string),
		byConfig:  make(map[string]string),
	}
}

// Register adds a bean and returns the handle to unregister it with.
// Service names are unique across the registry.
func (r *Registry) Register(bean Bean) (string, error) {
	serviceName := bean.ServiceName()
	if serviceName == "" {
		return "", fmt.Errorf("bean has no service name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byService[serviceName]; exists {
		return "", fmt.Errorf("service %s is already registered", serviceName)
	}

	handle := uuid.NewString()
	r.byHandle[handle] = bean
	r.byService[serviceName] = handle
	if configName := bean.ConfigName(); configName != "" {
		r.byConfig[configName] = handle
	}

	logging.Info("Manage", "Registered service %s", serviceName)
	return handle, nil
}

// Unregister removes the bean registered under handle. Unknown handles
// are ignored.
func (r *Registry) Unregister(handle string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bean, ok := r.byHandle[handle]
	if !ok {
		return
	}

	delete(r.byHandle, handle)
	delete(r.byService, bean.ServiceName())
	if configName := bean.ConfigName(); configName != "" {
		if r.byConfig[configName] == handle {
			delete(r.byConfig, configName)
		}
	}

	logging.Info("Manage", "Unregistered service %s", bean.ServiceName())
}

// Get returns the bean registered under serviceName.
func (r *Registry) Get(serviceName string) (Bean, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handle, ok := r.byService[serviceName]
	if !ok {
		return nil, false
	}
	return r.byHandle[handle], true
}

// GetByConfigName returns the bean managing the named configuration.
func (r *Registry) GetByConfigName(configName string) (Bean, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handle, ok := r.byConfig[configName]
	if !ok {
		return nil, false
	}
	return r.byHandle[handle], true
}

// Names returns the sorted service names of all registered beans.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byService))
	for name := range r.byService {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
