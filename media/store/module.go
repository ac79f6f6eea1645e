package store

import (
	"sort"
	"sync"

	"github.com/timemore/blobstore/errors"
)

// Module contains attributes which describe a storage module.
type Module struct {
	// ServiceConfigSkeleton returns an instance of config used to initialize
	// the service. This skeleton contains a config structure.
	ServiceConfigSkeleton func() ServiceConfig

	// NewService create a storage service backend connection. This is
	// usually initialize the client of the object storage.
	NewService func(config ServiceConfig) (Service, error)
}

var (
	modules   = map[string]Module{}
	modulesMu sync.RWMutex
)

// ModuleNames returns the names of the registered storage clients,
// sorted.
func ModuleNames() []string {
	modulesMu.RLock()
	defer modulesMu.RUnlock()

	var names []string
	for name := range modules {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func NewServiceClient(
	serviceName string,
	config ServiceConfig,
) (Service, error) {
	if serviceName == "" {
		return nil, errors.ArgMsg("serviceName", "empty")
	}

	modulesMu.RLock()
	module, found := modules[serviceName]
	modulesMu.RUnlock()
	if !found || module.NewService == nil {
		return nil, errors.ArgMsg("serviceName", serviceName+" not registered")
	}

	return module.NewService(config)
}

// RegisterModule makes a storage client available by name. It is
// intended to be called from the init function of the client package
// and panics when called twice with the same name.
func RegisterModule(
	serviceName string,
	module Module,
) {
	modulesMu.Lock()
	defer modulesMu.Unlock()

	if _, dup := modules[serviceName]; dup {
		panic("called twice for service " + serviceName)
	}

	modules[serviceName] = module
}

func ModuleConfigSkeletons() map[string]any {
	modulesMu.RLock()
	defer modulesMu.RUnlock()

	configs := map[string]any{}
	for serviceName, mod := range modules {
		if mod.ServiceConfigSkeleton != nil {
			configs[serviceName] = mod.ServiceConfigSkeleton()
		}
	}

	return configs
}
