package launcher

import "fmt"

// DefaultHelperDisplay is the generic URI-open helper used under a
// graphical display environment.
const DefaultHelperDisplay = "xdg-open"

// helperDarwin is the macOS open helper.
const helperDarwin = "open"

// helperCygwin is the launch helper on the Cygwin compatibility shim.
const helperCygwin = "cygstart"

// DisplayProbe applies when a graphical display environment variable is
// present and a generic "open URI" helper is resolvable on the path.
type DisplayProbe struct {
	// Helper is the open helper executable. Empty means DefaultHelperDisplay.
	Helper string
}

// Name implements Probe.
func (*DisplayProbe) Name() string { return "display" }

func (p *DisplayProbe) helper() string {
	if p.Helper != "" {
		return p.Helper
	}
	return DefaultHelperDisplay
}

// Applies implements Probe.
func (p *DisplayProbe) Applies(env Environment) bool {
	if env.Getenv("DISPLAY") == "" && env.Getenv("WAYLAND_DISPLAY") == "" {
		return false
	}
	_, err := env.LookPath(p.helper())
	return err == nil
}

// Launch implements Probe. The helper is spawned detached with the URI
// as its sole argument and never waited on.
func (p *DisplayProbe) Launch(env Environment, uri string) error {
	if err := env.StartDetached(p.helper(), uri); err != nil {
		return fmt.Errorf("display probe: %w", err)
	}
	return nil
}

// DarwinProbe applies on macOS when the open helper is resolvable.
type DarwinProbe struct{}

// Name implements Probe.
func (*DarwinProbe) Name() string { return "darwin" }

// Applies implements Probe.
func (*DarwinProbe) Applies(env Environment) bool {
	if env.GOOS() != "darwin" {
		return false
	}
	_, err := env.LookPath(helperDarwin)
	return err == nil
}

// Launch implements Probe.
func (*DarwinProbe) Launch(env Environment, uri string) error {
	if err := env.StartDetached(helperDarwin, uri); err != nil {
		return fmt.Errorf("darwin probe: %w", err)
	}
	return nil
}

// WindowsProbe applies on Windows when either the native shell-open verb
// or the Cygwin launch helper is available.
type WindowsProbe struct{}

// Name implements Probe.
func (*WindowsProbe) Name() string { return "windows" }

// Applies implements Probe.
func (*WindowsProbe) Applies(env Environment) bool {
	if env.GOOS() != "windows" {
		return false
	}
	if _, err := env.LookPath("rundll32"); err == nil {
		return true
	}
	_, err := env.LookPath(helperCygwin)
	return err == nil
}

// Launch implements Probe. The native shell-open verb is preferred; on
// the Cygwin shim the launch helper is spawned detached instead.
func (*WindowsProbe) Launch(env Environment, uri string) error {
	if _, err := env.LookPath("rundll32"); err == nil {
		if err := env.ShellOpen(uri); err != nil {
			return fmt.Errorf("windows probe: %w", err)
		}
		return nil
	}
	if err := env.StartDetached(helperCygwin, uri); err != nil {
		return fmt.Errorf("windows probe: %w", err)
	}
	return nil
}

// DefaultProbes returns the built-in probes in priority order.
func DefaultProbes() []Probe {
	return []Probe{
		&DisplayProbe{},
		&DarwinProbe{},
		&WindowsProbe{},
	}
}

// ProbeByName returns the built-in probe with the given name.
func ProbeByName(name string) (Probe, bool) {
	switch name {
	case "display":
		return &DisplayProbe{}, true
	case "darwin":
		return &DarwinProbe{}, true
	case "windows":
		return &WindowsProbe{}, true
	default:
		return nil, false
	}
}
