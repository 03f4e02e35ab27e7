package module

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/matzehuels/captain/pkg/bus"
)

// Reserved is the module name config.yaml may list but the registry never
// resolves: it denotes the driver itself and is skipped silently.
const Reserved = "core"

// Normalize maps a configured module name to its registry form: dots are
// replaced with underscores, so "parser.requirements" and
// "parser_requirements" select the same module.
func Normalize(name string) string {
	return strings.ReplaceAll(name, ".", "_")
}

// Registry holds the compiled-in module variants, keyed by normalized
// name. The mutex guards registration; resolution during a run is
// single-threaded.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]Module)}
}

// Register adds a module to the registry.
// Returns an error if a module with the same name is already registered.
func (r *Registry) Register(m Module) error {
	name := Normalize(m.Info().Name)
	if name == "" {
		return fmt.Errorf("module: empty name")
	}
	if name == Reserved {
		return fmt.Errorf("module: name %q is reserved", Reserved)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.modules[name]; exists {
		return fmt.Errorf("module: %q already registered", name)
	}
	r.modules[name] = m
	return nil
}

// MustRegister adds a module and panics on error. Intended for wiring the
// built-in set at startup, where a duplicate is a programming error.
func (r *Registry) MustRegister(m Module) {
	if err := r.Register(m); err != nil {
		panic(err)
	}
}

// Resolve returns the module registered under name, accepting both the
// dotted and underscored spellings.
func (r *Registry) Resolve(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[Normalize(name)]
	return m, ok
}

// Names returns the registered module names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load resolves each configured name in order and lets the resolved
// modules attach their handlers. An unresolved name produces exactly one
// "[WARN] missing module" line (with the name as configured) and the run
// continues; the reserved name "core" is skipped without a warning.
//
// Registration order follows the names slice, which fixes handler
// invocation order for topics with multiple subscribers.
func (r *Registry) Load(names []string, b *bus.Bus, rc *RunContext) []Module {
	var loaded []Module
	for _, name := range names {
		if Normalize(name) == Reserved {
			continue
		}
		m, ok := r.Resolve(name)
		if !ok {
			rc.Console.Warnf("missing module: %s", name)
			continue
		}
		m.Register(b, rc)
		loaded = append(loaded, m)
		rc.Logger.Debug("registered module", "name", m.Info().Name, "topics", m.Info().Topics)
	}
	return loaded
}
