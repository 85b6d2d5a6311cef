// Package plugins lets applications extend the engine with additional
// handler kinds. A plugin is just a named factory for values satisfying
// types.Handler; it is registered on a Registry before the logger is
// constructed and referenced from configuration by its kind name. There is
// no dynamic loading mechanism here: how plugin code gets into the process
// is the application's concern.
package plugins

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/sealog/sealog/pkg/types"
)

// HandlerPlugin creates handler instances for one kind.
type HandlerPlugin interface {
	// Name returns the kind name the plugin is addressed by in
	// configuration.
	Name() string

	// Version returns the plugin version, for diagnostics.
	Version() string

	// NewHandler builds a handler from the spec's opaque config map.
	NewHandler(cfg map[string]interface{}) (types.Handler, error)
}

// Info describes a registered plugin.
type Info struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Registry holds handler plugins keyed by kind name. The zero value is not
// usable; call NewRegistry.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]HandlerPlugin
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]HandlerPlugin)}
}

// Register adds a plugin. Registering a duplicate name is an error.
func (r *Registry) Register(p HandlerPlugin) error {
	if p == nil {
		return errors.New("plugin cannot be nil")
	}
	name := p.Name()
	if name == "" {
		return errors.New("plugin name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.plugins[name]; exists {
		return errors.Errorf("plugin %q already registered", name)
	}
	r.plugins[name] = p
	return nil
}

// Lookup returns the plugin registered under name.
func (r *Registry) Lookup(name string) (HandlerPlugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[name]
	return p, ok
}

// NewHandler builds a handler for the named kind.
func (r *Registry) NewHandler(name string, cfg map[string]interface{}) (types.Handler, error) {
	p, ok := r.Lookup(name)
	if !ok {
		return nil, errors.Errorf("no plugin registered for kind %q", name)
	}
	h, err := p.NewHandler(cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "plugin %q", name)
	}
	return h, nil
}

// List returns info for all registered plugins, sorted by name.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]Info, 0, len(r.plugins))
	for _, p := range r.plugins {
		infos = append(infos, Info{Name: p.Name(), Version: p.Version()})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Func adapts a plain factory function into a HandlerPlugin.
func Func(name, version string, factory func(cfg map[string]interface{}) (types.Handler, error)) HandlerPlugin {
	return funcPlugin{name: name, version: version, factory: factory}
}

type funcPlugin struct {
	name    string
	version string
	factory func(cfg map[string]interface{}) (types.Handler, error)
}

func (p funcPlugin) Name() string    { return p.name }
func (p funcPlugin) Version() string { return p.version }
func (p funcPlugin) NewHandler(cfg map[string]interface{}) (types.Handler, error) {
	return p.factory(cfg)
}
