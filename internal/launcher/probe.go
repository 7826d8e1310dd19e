package launcher

// Probe detects one operating environment and knows how to open a
// mailto: URI there. Probes must be side-effect free when they decline.
type Probe interface {
	// Name identifies the probe (for configuration and logging).
	Name() string

	// Applies reports whether this probe's environment is present.
	Applies(env Environment) bool

	// Launch opens the URI in the environment's preferred handler.
	// Only called after Applies returned true. A nil return means the
	// launch request was accepted; errors are fatal to the compose call.
	Launch(env Environment, uri string) error
}

// Chain tries probes in priority order until one handles the URI.
type Chain struct {
	env    Environment
	probes []Probe
}

// NewChain creates a chain over the given environment and probes.
// Order encodes priority: the first applicable probe wins.
func NewChain(env Environment, probes ...Probe) *Chain {
	return &Chain{
		env:    env,
		probes: probes,
	}
}

// Append adds probes after the existing ones (lowest priority).
func (c *Chain) Append(probes ...Probe) {
	c.probes = append(c.probes, probes...)
}

// Probes returns the probes in priority order.
func (c *Chain) Probes() []Probe {
	out := make([]Probe, len(c.probes))
	copy(out, c.probes)
	return out
}

// Launch opens the URI with the first applicable probe.
// It returns ErrNoMUA when every probe declines. A launch failure from
// an applicable probe is returned as-is; no later probe is tried, since
// the failure is environmental, not a priority miss.
func (c *Chain) Launch(uri string) error {
	for _, p := range c.probes {
		if !p.Applies(c.env) {
			continue
		}
		return p.Launch(c.env, uri)
	}
	return ErrNoMUA
}
