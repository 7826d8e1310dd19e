package agent

import "fmt"

// Agent is any registered mail user agent integration.
type Agent interface {
	// Name returns the agent's registered name.
	Name() string
}

// Composer is implemented by agents able to compose messages.
// An agent registered without this capability is misconfigured as a
// compose target; callers detect that with a type assertion.
type Composer interface {
	// Compose opens a message composer for the request.
	Compose(req *Request) error
}

// ComposeFunc adapts a named function to Agent and Composer.
type ComposeFunc struct {
	// AgentName is the registered name.
	AgentName string

	// Fn is the compose implementation.
	Fn func(req *Request) error
}

// Name implements Agent.
func (f *ComposeFunc) Name() string {
	return f.AgentName
}

// Compose implements Composer.
func (f *ComposeFunc) Compose(req *Request) error {
	if f.Fn == nil {
		return fmt.Errorf("agent %s: nil compose function", f.AgentName)
	}
	return f.Fn(req)
}
