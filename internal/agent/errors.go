package agent

import "errors"

// Agent registry errors.
var (
	// ErrNotRegistered indicates no agent is registered under the name.
	ErrNotRegistered = errors.New("agent: not registered")

	// ErrAlreadyRegistered indicates the name is already taken.
	ErrAlreadyRegistered = errors.New("agent: already registered")

	// ErrEmptyName indicates an agent with an empty name.
	ErrEmptyName = errors.New("agent: empty name")
)
