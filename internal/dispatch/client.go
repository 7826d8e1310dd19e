package dispatch

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/mailstorm/internal/agent"
	"github.com/dshills/mailstorm/internal/launcher"
	"github.com/dshills/mailstorm/internal/logging"
	"github.com/dshills/mailstorm/internal/mailto"
)

// Client is the MUA dispatch controller. It is itself a registrable
// composer agent so Activate can install it as the host's active one.
type Client struct {
	mu        sync.RWMutex
	cfg       Config
	chain     *launcher.Chain
	registry  *agent.Registry
	fallback  string
	sendHooks []agent.Action
	log       *logging.Logger
}

// New creates a dispatch client over the launcher chain and registry.
func New(cfg Config, chain *launcher.Chain, registry *agent.Registry) *Client {
	if cfg.Name == "" {
		cfg.Name = DefaultAgentName
	}
	return &Client{
		cfg:      cfg,
		chain:    chain,
		registry: registry,
		fallback: cfg.Fallback,
		log:      logging.NullLogger,
	}
}

// SetLogger sets the client's logger.
func (c *Client) SetLogger(log *logging.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if log == nil {
		log = logging.NullLogger
	}
	c.log = log
}

// Name implements agent.Agent.
func (c *Client) Name() string {
	return c.cfg.Name
}

// Compose implements agent.Composer.
//
// The hook tripwire is checked before classification: it is a
// precondition, not a fallback trigger. Simple requests become a mailto:
// URI and go through the launcher chain; complex ones are delegated.
func (c *Client) Compose(req *agent.Request) error {
	logger := c.logger().WithField("request", uuid.New().String())

	if hooks := c.SendHooks(); len(hooks) > 0 {
		logger.Warn("rejecting compose with %d send hook(s) installed", len(hooks))
		return fmt.Errorf("%w: %s", ErrHookUnsupported, hooks[0].Name)
	}

	if req.Simple() {
		uri := mailto.URI(req.To, req.Subject)
		logger.Debug("launching %s", uri)
		return c.chain.Launch(uri)
	}

	logger.Debug("request too complex for external launch, delegating")
	return c.delegate(req)
}

// delegate routes a complex request to the fallback composer with the
// identical eight-field request, To and Subject included.
func (c *Client) delegate(req *agent.Request) error {
	name := c.FallbackAgent()
	if name == "" {
		return ErrFallbackNotConfigured
	}
	if name == c.cfg.Name {
		return fmt.Errorf("%w: %s", ErrFallbackLoop, name)
	}

	a, ok := c.registry.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: agent %s is not registered", ErrFallbackMisconfigured, name)
	}
	// Identity check catches a loop hidden behind an alias name. It runs
	// at call time because assignment order is not controllable.
	if a == agent.Agent(c) {
		return fmt.Errorf("%w: %s", ErrFallbackLoop, name)
	}

	composer, ok := a.(agent.Composer)
	if !ok {
		return fmt.Errorf("%w: agent %s has no compose operation", ErrFallbackMisconfigured, name)
	}

	c.logger().WithField("fallback", name).Debug("delegating compose")
	return composer.Compose(req)
}

// Activate installs this client as the host's active composer.
//
// If no fallback is configured yet, the previously active agent is
// captured first so it stays available as the escape hatch. The
// operation is idempotent: repeated calls never overwrite a captured
// fallback.
func (c *Client) Activate() error {
	c.mu.Lock()
	if c.fallback == "" {
		if prev := c.registry.Active(); prev != "" && prev != c.cfg.Name {
			c.fallback = prev
		}
	}
	c.mu.Unlock()

	if err := c.registry.Register(c); err != nil {
		return fmt.Errorf("activating %s: %w", c.cfg.Name, err)
	}
	if err := c.registry.SetActive(c.cfg.Name); err != nil {
		return fmt.Errorf("activating %s: %w", c.cfg.Name, err)
	}
	return nil
}

// FallbackAgent returns the configured or captured fallback agent name.
func (c *Client) FallbackAgent() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fallback
}

// SetFallbackAgent sets the fallback agent name (explicit operator action).
func (c *Client) SetFallbackAgent(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fallback = name
}

// SendHooks returns the installed send-completion hooks.
// The slice must stay empty for compose calls to be accepted.
func (c *Client) SendHooks() []agent.Action {
	c.mu.RLock()
	defer c.mu.RUnlock()
	hooks := make([]agent.Action, len(c.sendHooks))
	copy(hooks, c.sendHooks)
	return hooks
}

// SetSendHooks installs send-completion hooks. This exists only so host
// code that sets hooks by convention is detected and rejected at compose
// time; the hooks are never run.
func (c *Client) SetSendHooks(hooks []agent.Action) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sendHooks = hooks
}

// Chain returns the launcher chain.
func (c *Client) Chain() *launcher.Chain {
	return c.chain
}

// Registry returns the agent registry.
func (c *Client) Registry() *agent.Registry {
	return c.registry
}

func (c *Client) logger() *logging.Logger {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.log
}
