package plugin

import "errors"

// Plugin loading errors.
var (
	// ErrNotProbeTable indicates the script did not return a table.
	ErrNotProbeTable = errors.New("plugin: script did not return a probe table")

	// ErrMissingName indicates a probe table without a name string.
	ErrMissingName = errors.New("plugin: probe table has no name")

	// ErrMissingApplies indicates a probe table without an applies function.
	ErrMissingApplies = errors.New("plugin: probe table has no applies function")

	// ErrMissingLaunch indicates a probe table without a launch function.
	ErrMissingLaunch = errors.New("plugin: probe table has no launch function")

	// ErrLoaderClosed indicates the loader has been closed.
	ErrLoaderClosed = errors.New("plugin: loader is closed")
)
