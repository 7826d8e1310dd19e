package dispatch

// DefaultAgentName is the name this client registers under.
const DefaultAgentName = "mailclient"

// Config holds dispatch client configuration.
type Config struct {
	// Name is the agent name this client registers under.
	Name string

	// Fallback is an explicitly configured fallback agent name.
	// Empty means "capture the previously active agent on Activate".
	Fallback string
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Name: DefaultAgentName,
	}
}

// WithFallback returns a copy of the config with the fallback agent set.
func (c Config) WithFallback(name string) Config {
	c.Fallback = name
	return c
}
