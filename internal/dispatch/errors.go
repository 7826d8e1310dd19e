package dispatch

import "errors"

// Dispatch errors. All are terminal; nothing is retried internally.
var (
	// ErrHookUnsupported indicates the caller installed a send-completion
	// hook. Launched mail clients are detached processes with no
	// completion signal, so hooks cannot be honored.
	ErrHookUnsupported = errors.New("dispatch: send hooks are not supported")

	// ErrFallbackNotConfigured indicates a complex request arrived with
	// no fallback agent configured.
	ErrFallbackNotConfigured = errors.New("dispatch: no fallback agent configured")

	// ErrFallbackLoop indicates the fallback agent resolves to this
	// dispatch client itself.
	ErrFallbackLoop = errors.New("dispatch: fallback agent loops back to mailclient dispatch")

	// ErrFallbackMisconfigured indicates the fallback agent is not
	// registered or lacks a compose operation.
	ErrFallbackMisconfigured = errors.New("dispatch: fallback agent misconfigured")
)
