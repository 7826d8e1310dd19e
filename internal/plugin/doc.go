// Package plugin loads Lua-defined launcher probes.
//
// The built-in probe list covers the common desktop platforms; plugins
// extend it for environments the binary does not know about (sandboxed
// desktops, remote display bridges, niche window systems). A plugin is a
// Lua file that returns a probe table:
//
//	return {
//	    name = "flatpak",
//	    applies = function(env)
//	        return env.getenv("FLATPAK_ID") ~= "" and env.lookpath("flatpak-spawn")
//	    end,
//	    launch = function(env, uri)
//	        return env.start("flatpak-spawn", "--host", "xdg-open", uri)
//	    end,
//	}
//
// The env argument mirrors launcher.Environment: getenv(key), lookpath(name)
// (boolean), goos(), start(name, ...) for a detached spawn, and
// shellopen(uri) for the native open verb. start and shellopen return
// true on success or false and a message on failure.
//
// An applies function must be side-effect free; launching belongs in
// launch. Errors raised by launch are fatal to the compose call, exactly
// like a built-in probe's spawn failure.
//
// Each probe owns one Lua state guarded by a mutex: gopher-lua's LState
// is not goroutine-safe.
package plugin
