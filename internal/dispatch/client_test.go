package dispatch_test

import (
	"errors"
	"testing"

	"github.com/dshills/mailstorm/internal/agent"
	"github.com/dshills/mailstorm/internal/dispatch"
	"github.com/dshills/mailstorm/internal/launcher"
)

// stubEnv satisfies launcher.Environment; the stub probes below never
// touch it.
type stubEnv struct{}

func (stubEnv) Getenv(string) string { return "" }

func (stubEnv) LookPath(string) (string, error) { return "", errors.New("not found") }

func (stubEnv) GOOS() string { return "linux" }

func (stubEnv) StartDetached(string, ...string) error { return nil }

func (stubEnv) ShellOpen(string) error { return nil }

// stubProbe records launches.
type stubProbe struct {
	applies  bool
	launches []string
	err      error
}

func (p *stubProbe) Name() string { return "stub" }

func (p *stubProbe) Applies(launcher.Environment) bool { return p.applies }

func (p *stubProbe) Launch(_ launcher.Environment, uri string) error {
	p.launches = append(p.launches, uri)
	return p.err
}

// recordAgent records compose delegations.
type recordAgent struct {
	name string
	reqs []*agent.Request
	err  error
}

func (a *recordAgent) Name() string { return a.name }

func (a *recordAgent) Compose(req *agent.Request) error {
	a.reqs = append(a.reqs, req)
	return a.err
}

// bareAgent registers but cannot compose.
type bareAgent struct{ name string }

func (a *bareAgent) Name() string { return a.name }

func newClient(t *testing.T, cfg dispatch.Config, probes ...launcher.Probe) (*dispatch.Client, *agent.Registry) {
	t.Helper()
	registry := agent.NewRegistry()
	chain := launcher.NewChain(stubEnv{}, probes...)
	return dispatch.New(cfg, chain, registry), registry
}

func TestComposeSimpleLaunchesURI(t *testing.T) {
	probe := &stubProbe{applies: true}
	client, _ := newClient(t, dispatch.DefaultConfig(), probe)

	req := &agent.Request{To: "a b@example.com", Subject: "Re: hi"}
	if err := client.Compose(req); err != nil {
		t.Fatalf("Compose: %v", err)
	}

	if len(probe.launches) != 1 {
		t.Fatalf("probe launched %d times, want 1", len(probe.launches))
	}
	want := "mailto:a%20b@example.com?subject=Re%3A%20hi"
	if probe.launches[0] != want {
		t.Errorf("launched %q, want %q", probe.launches[0], want)
	}
}

func TestComposeSimpleNoMUA(t *testing.T) {
	probe := &stubProbe{applies: false}
	client, _ := newClient(t, dispatch.DefaultConfig(), probe)

	err := client.Compose(&agent.Request{To: "a@example.com"})
	if !errors.Is(err, launcher.ErrNoMUA) {
		t.Fatalf("expected ErrNoMUA, got %v", err)
	}
	if len(probe.launches) != 0 {
		t.Error("declining probe must not launch")
	}
}

func TestComposeComplexNeverTouchesProbes(t *testing.T) {
	probe := &stubProbe{applies: true}
	client, registry := newClient(t, dispatch.DefaultConfig().WithFallback("mu4e"), probe)

	fallback := &recordAgent{name: "mu4e"}
	if err := registry.Register(fallback); err != nil {
		t.Fatalf("Register: %v", err)
	}

	complexReqs := []*agent.Request{
		{To: "a@example.com", OtherHeaders: []agent.Header{{Name: "Cc", Value: "b@example.com"}}},
		{Continue: true},
		{SwitchFunc: func() error { return nil }},
		{YankAction: &agent.Action{Name: "cite"}},
		{SendActions: []*agent.Action{{Name: "archive"}}},
		{ReturnAction: &agent.Action{Name: "restore"}},
	}

	for i, req := range complexReqs {
		if err := client.Compose(req); err != nil {
			t.Fatalf("Compose #%d: %v", i, err)
		}
	}

	if len(probe.launches) != 0 {
		t.Error("complex requests must never invoke a launcher probe")
	}
	if len(fallback.reqs) != len(complexReqs) {
		t.Errorf("fallback received %d requests, want %d", len(fallback.reqs), len(complexReqs))
	}
}

func TestComposeDelegatesFullRequest(t *testing.T) {
	client, registry := newClient(t, dispatch.DefaultConfig().WithFallback("mu4e"))

	fallback := &recordAgent{name: "mu4e"}
	if err := registry.Register(fallback); err != nil {
		t.Fatalf("Register: %v", err)
	}

	req := &agent.Request{
		To:           "a@example.com",
		Subject:      "Re: hi",
		OtherHeaders: []agent.Header{{Name: "Cc", Value: "b@example.com"}},
		Continue:     true,
	}
	if err := client.Compose(req); err != nil {
		t.Fatalf("Compose: %v", err)
	}

	if len(fallback.reqs) != 1 {
		t.Fatalf("fallback received %d requests, want 1", len(fallback.reqs))
	}
	got := fallback.reqs[0]
	if got != req {
		t.Error("fallback must receive the identical request")
	}
	if got.To != "a@example.com" || got.Subject != "Re: hi" {
		t.Error("To and Subject must pass through even on the complex path")
	}
}

func TestComposeHookTripwire(t *testing.T) {
	probe := &stubProbe{applies: true}
	client, registry := newClient(t, dispatch.DefaultConfig().WithFallback("mu4e"), probe)

	fallback := &recordAgent{name: "mu4e"}
	if err := registry.Register(fallback); err != nil {
		t.Fatalf("Register: %v", err)
	}

	client.SetSendHooks([]agent.Action{{Name: "notify-sent"}})

	// Rejected before classification: both simple and complex requests fail.
	for _, req := range []*agent.Request{
		{To: "a@example.com"},
		{Continue: true},
	} {
		err := client.Compose(req)
		if !errors.Is(err, dispatch.ErrHookUnsupported) {
			t.Fatalf("expected ErrHookUnsupported, got %v", err)
		}
	}

	if len(probe.launches) != 0 {
		t.Error("tripwire must fire before any launch")
	}
	if len(fallback.reqs) != 0 {
		t.Error("tripwire must fire before any delegation")
	}

	// Clearing the hooks restores normal dispatch.
	client.SetSendHooks(nil)
	if err := client.Compose(&agent.Request{To: "a@example.com"}); err != nil {
		t.Fatalf("Compose after clearing hooks: %v", err)
	}
}

func TestDelegateNotConfigured(t *testing.T) {
	client, _ := newClient(t, dispatch.DefaultConfig())

	err := client.Compose(&agent.Request{Continue: true})
	if !errors.Is(err, dispatch.ErrFallbackNotConfigured) {
		t.Fatalf("expected ErrFallbackNotConfigured, got %v", err)
	}
}

func TestDelegateLoop(t *testing.T) {
	cfg := dispatch.DefaultConfig().WithFallback(dispatch.DefaultAgentName)
	client, _ := newClient(t, cfg)

	err := client.Compose(&agent.Request{Continue: true})
	if !errors.Is(err, dispatch.ErrFallbackLoop) {
		t.Fatalf("expected ErrFallbackLoop, got %v", err)
	}
}

func TestDelegateUnregistered(t *testing.T) {
	client, _ := newClient(t, dispatch.DefaultConfig().WithFallback("ghost"))

	err := client.Compose(&agent.Request{Continue: true})
	if !errors.Is(err, dispatch.ErrFallbackMisconfigured) {
		t.Fatalf("expected ErrFallbackMisconfigured, got %v", err)
	}
}

func TestDelegateNoComposeOperation(t *testing.T) {
	client, registry := newClient(t, dispatch.DefaultConfig().WithFallback("bare"))

	if err := registry.Register(&bareAgent{name: "bare"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	err := client.Compose(&agent.Request{Continue: true})
	if !errors.Is(err, dispatch.ErrFallbackMisconfigured) {
		t.Fatalf("expected ErrFallbackMisconfigured, got %v", err)
	}
}

func TestDelegateErrorPropagates(t *testing.T) {
	client, registry := newClient(t, dispatch.DefaultConfig().WithFallback("mu4e"))

	composeErr := errors.New("draft buffer busy")
	if err := registry.Register(&recordAgent{name: "mu4e", err: composeErr}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	err := client.Compose(&agent.Request{Continue: true})
	if !errors.Is(err, composeErr) {
		t.Fatalf("expected fallback error, got %v", err)
	}
}

func TestActivateCapturesPreviousAgent(t *testing.T) {
	client, registry := newClient(t, dispatch.DefaultConfig())

	prev := &recordAgent{name: "mu4e"}
	if err := registry.Register(prev); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := registry.SetActive("mu4e"); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	if err := client.Activate(); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	if got := registry.Active(); got != dispatch.DefaultAgentName {
		t.Errorf("active = %q, want %q", got, dispatch.DefaultAgentName)
	}
	if got := client.FallbackAgent(); got != "mu4e" {
		t.Errorf("fallback = %q, want mu4e", got)
	}

	// A complex request now reaches the captured fallback.
	if err := client.Compose(&agent.Request{Continue: true}); err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(prev.reqs) != 1 {
		t.Error("captured fallback did not receive the delegation")
	}
}

func TestActivateIdempotent(t *testing.T) {
	client, registry := newClient(t, dispatch.DefaultConfig())

	first := &recordAgent{name: "first"}
	second := &recordAgent{name: "second"}
	for _, a := range []*recordAgent{first, second} {
		if err := registry.Register(a); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}

	if err := registry.SetActive("first"); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if err := client.Activate(); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	// Even if the host flips the active agent and re-activates, the
	// first-captured fallback stays the permanent escape hatch.
	if err := registry.SetActive("second"); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if err := client.Activate(); err != nil {
		t.Fatalf("re-Activate: %v", err)
	}

	if got := client.FallbackAgent(); got != "first" {
		t.Errorf("fallback = %q, want the first-captured agent", got)
	}
}

func TestActivateWithNothingActive(t *testing.T) {
	client, registry := newClient(t, dispatch.DefaultConfig())

	if err := client.Activate(); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if got := registry.Active(); got != dispatch.DefaultAgentName {
		t.Errorf("active = %q, want %q", got, dispatch.DefaultAgentName)
	}
	if got := client.FallbackAgent(); got != "" {
		t.Errorf("fallback = %q, want empty", got)
	}

	// No fallback was available to capture; complex requests fail.
	err := client.Compose(&agent.Request{Continue: true})
	if !errors.Is(err, dispatch.ErrFallbackNotConfigured) {
		t.Fatalf("expected ErrFallbackNotConfigured, got %v", err)
	}
}

func TestActivatePreservesExplicitFallback(t *testing.T) {
	client, registry := newClient(t, dispatch.DefaultConfig().WithFallback("mu4e"))

	other := &recordAgent{name: "gnus"}
	if err := registry.Register(other); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := registry.SetActive("gnus"); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	if err := client.Activate(); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if got := client.FallbackAgent(); got != "mu4e" {
		t.Errorf("fallback = %q, explicit configuration must win", got)
	}
}
