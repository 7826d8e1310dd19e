// Package dispatch routes compose requests to the desktop mail client or
// to a registered fallback composer.
//
// # Strategy
//
// A request that carries only a recipient and subject is expressible as a
// mailto: URI and is handed to the platform launcher chain, which opens
// the desktop's configured mail client fire-and-forget. A request with
// any of the six complex fields (extra headers, draft continuation,
// switch/yank/send/return callbacks) exceeds what an external client can
// honor and is delegated to the configured fallback agent with the full
// original request.
//
// # Preconditions
//
// Send-completion hooks are rejected outright: a detached GUI launch has
// no observable completion, so the tripwire check runs before any
// classification and fails with ErrHookUnsupported. All configuration
// checks happen before any side effect; either exactly one launcher or
// fallback is invoked, or nothing is.
//
// # Activation
//
// The Client itself implements agent.Agent and agent.Composer. Activate
// registers it as the host's active composer, capturing the previously
// active agent as the fallback the first time. Repeated activation never
// overwrites a captured fallback; the first-captured agent remains the
// permanent escape hatch.
package dispatch
