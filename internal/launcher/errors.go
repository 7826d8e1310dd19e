package launcher

import "errors"

// Launcher errors.
var (
	// ErrNoMUA indicates every probe declined the request: no mechanism
	// for opening the desktop mail client exists in this environment.
	ErrNoMUA = errors.New("launcher: no mail user agent available")

	// ErrNoShellOpen indicates the native shell-open verb is unavailable.
	ErrNoShellOpen = errors.New("launcher: shell open not supported on this platform")
)
