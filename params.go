package params

import (
	"sort"
	"sync"
)

// Config is one self-contained parameter registry: the registration metadata,
// the override tree, the deferred validation tasks, and the lifecycle state.
// Programs normally construct exactly one Config in main and thread it
// through; nothing in the package is process-global.
type Config struct {
	mutex      sync.RWMutex
	tree       *Tree
	registry   map[string]ParamInfo
	finalizers []func() error
	open       bool
}

// New creates an empty Config with registration open.
func New() *Config {
	return &Config{
		tree:     NewTree(),
		registry: make(map[string]ParamInfo),
		open:     true,
	}
}

// Reset reinitializes the registry, the override tree, and the finalizer list
// together, and reopens registration. It is used primarily to isolate test
// runs.
func (c *Config) Reset() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.tree = NewTree()
	c.registry = make(map[string]ParamInfo)
	c.finalizers = nil
	c.open = true
}

// RegistrationOpen reports whether parameters may still be registered.
func (c *Config) RegistrationOpen() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.open
}

// Set stores a raw override value for key, as if it had been given on the
// command line. The key may be a dotted path.
func (c *Config) Set(key, value string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.tree.Set(key, value)
}

// Has reports whether an override value exists for key.
func (c *Config) Has(key string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.tree.Has(key)
}

// Value returns the raw override value for key, or fallback if none is set.
func (c *Config) Value(key, fallback string) string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.tree.Get(key, fallback)
}

// Info returns the registration metadata for the canonical parameter name.
func (c *Config) Info(name string) (ParamInfo, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	info, ok := c.registry[name]
	return info, ok
}

// Names returns the canonical names of all registered parameters in
// lexicographic order.
func (c *Config) Names() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.sortedNames()
}

// setIfAbsent honors the overwrite flag shared by the file parsers.
func (c *Config) setIfAbsent(key, value string, overwrite bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if overwrite || !c.tree.Has(key) {
		c.tree.Set(key, value)
	}
}

// sortedNames must be called with at least a read lock held.
func (c *Config) sortedNames() []string {
	names := make([]string, 0, len(c.registry))
	for name := range c.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
