// Package launcher opens a mailto: URI in the desktop's configured mail
// client via an ordered chain of platform probes.
//
// # Probes
//
// A probe pairs a platform applicability predicate with a launch action:
//
//	type Probe interface {
//	    Name() string
//	    Applies(env Environment) bool
//	    Launch(env Environment, uri string) error
//	}
//
// A probe whose Applies returns false must have no side effects. Launch is
// fire-and-forget: spawned helpers are detached and never waited on, so
// success means only that the OS accepted the launch request. There is no
// way to observe whether the user actually sends the message, and the
// package deliberately offers no API implying such observability.
//
// # Chain
//
// The chain tries probes in fixed priority order and stops at the first
// applicable one. A launch failure from an applicable probe is fatal to
// the call; retrying under identical environment conditions cannot
// succeed differently. If no probe applies the chain fails with ErrNoMUA.
//
// # Environment
//
// Probes consume the OS through the Environment interface (env lookup,
// PATH resolution, detached spawn, native shell-open verb) so tests can
// substitute a fake without touching the real desktop.
package launcher
