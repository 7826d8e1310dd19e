package app

import "errors"

// Application errors.
var (
	// ErrUnknownProbe indicates a configured probe name with no built-in.
	ErrUnknownProbe = errors.New("app: unknown launcher probe")
)
