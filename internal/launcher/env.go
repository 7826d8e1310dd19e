package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Environment is the operating-system surface probes consume.
// It exists so probes can be exercised against a fake desktop in tests.
type Environment interface {
	// Getenv returns the value of an environment variable ("" if unset).
	Getenv(key string) string

	// LookPath resolves an executable name on the search path.
	LookPath(file string) (string, error)

	// GOOS identifies the running platform ("linux", "darwin", "windows", ...).
	GOOS() string

	// StartDetached spawns an executable as a detached background process
	// with the given arguments. It never waits for the process to exit;
	// a nil return means only that the OS accepted the launch.
	StartDetached(name string, args ...string) error

	// ShellOpen invokes the platform's native "open" verb on the URI.
	// The call is synchronous but expected to return immediately, since
	// it only asks the OS to launch the registered handler.
	ShellOpen(uri string) error
}

// SystemEnvironment implements Environment on the real operating system.
type SystemEnvironment struct{}

// NewSystemEnvironment returns the real OS environment.
func NewSystemEnvironment() *SystemEnvironment {
	return &SystemEnvironment{}
}

// Getenv implements Environment.
func (*SystemEnvironment) Getenv(key string) string {
	return os.Getenv(key)
}

// LookPath implements Environment.
func (*SystemEnvironment) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// GOOS implements Environment.
func (*SystemEnvironment) GOOS() string {
	return runtime.GOOS
}

// StartDetached implements Environment. The child is released
// immediately so it outlives the caller and is never reaped here.
func (*SystemEnvironment) StartDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("releasing %s: %w", name, err)
	}
	return nil
}

// ShellOpen implements Environment. On Windows it runs the
// FileProtocolHandler verb via rundll32, which returns as soon as the
// handler launch is requested. Other platforms have no shell-open verb.
func (e *SystemEnvironment) ShellOpen(uri string) error {
	if e.GOOS() != "windows" {
		return ErrNoShellOpen
	}
	cmd := exec.Command("rundll32", "url.dll,FileProtocolHandler", uri)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("shell open: %w", err)
	}
	return nil
}
