package agent

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is the process-wide name-to-agent association.
// It also tracks the active agent: the host's currently selected
// general-purpose composer. Registry is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	agents map[string]Agent
	active string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		agents: make(map[string]Agent),
	}
}

// Register adds an agent under its own name.
// Registering the same name twice returns ErrAlreadyRegistered unless
// it is the identical agent, which is a no-op.
func (r *Registry) Register(a Agent) error {
	name := a.Name()
	if name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.agents[name]; ok {
		if existing == a {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
	}
	r.agents[name] = a
	return nil
}

// Unregister removes the agent registered under name.
// Removing the active agent clears the active slot.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.agents, name)
	if r.active == name {
		r.active = ""
	}
}

// Lookup returns the agent registered under name.
func (r *Registry) Lookup(name string) (Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.agents[name]
	return a, ok
}

// Has reports whether an agent is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.agents[name]
	return ok
}

// Names returns all registered agent names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.agents))
	for name := range r.agents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Active returns the name of the active agent, or "" if none is set.
func (r *Registry) Active() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// SetActive selects the active agent. The agent must be registered.
func (r *Registry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.agents[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	r.active = name
	return nil
}
