package agent_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/mailstorm/internal/agent"
)

func testAgent(name string) *agent.ComposeFunc {
	return &agent.ComposeFunc{
		AgentName: name,
		Fn: func(req *agent.Request) error {
			return nil
		},
	}
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	registry := agent.NewRegistry()

	a := testAgent("mu4e")
	if err := registry.Register(a); err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, ok := registry.Lookup("mu4e")
	if !ok {
		t.Fatal("expected agent to be registered")
	}
	if got != a {
		t.Error("Lookup returned a different agent")
	}
}

func TestRegistryLookupMissing(t *testing.T) {
	registry := agent.NewRegistry()

	if _, ok := registry.Lookup("missing"); ok {
		t.Error("expected Lookup to miss")
	}
}

func TestRegistryRegisterEmptyName(t *testing.T) {
	registry := agent.NewRegistry()

	err := registry.Register(testAgent(""))
	if !errors.Is(err, agent.ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
}

func TestRegistryRegisterDuplicate(t *testing.T) {
	registry := agent.NewRegistry()

	a := testAgent("mu4e")
	if err := registry.Register(a); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Same agent again is a no-op.
	if err := registry.Register(a); err != nil {
		t.Errorf("re-registering the identical agent: %v", err)
	}

	// A different agent under the same name is rejected.
	err := registry.Register(testAgent("mu4e"))
	if !errors.Is(err, agent.ErrAlreadyRegistered) {
		t.Errorf("expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestRegistryUnregisterClearsActive(t *testing.T) {
	registry := agent.NewRegistry()

	if err := registry.Register(testAgent("mu4e")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := registry.SetActive("mu4e"); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	registry.Unregister("mu4e")

	if registry.Has("mu4e") {
		t.Error("agent still registered after Unregister")
	}
	if registry.Active() != "" {
		t.Errorf("active = %q, want empty", registry.Active())
	}
}

func TestRegistrySetActiveUnknown(t *testing.T) {
	registry := agent.NewRegistry()

	err := registry.SetActive("missing")
	if !errors.Is(err, agent.ErrNotRegistered) {
		t.Errorf("expected ErrNotRegistered, got %v", err)
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	registry := agent.NewRegistry()

	for _, name := range []string{"notmuch", "gnus", "mu4e"} {
		if err := registry.Register(testAgent(name)); err != nil {
			t.Fatalf("Register(%s): %v", name, err)
		}
	}

	want := []string{"gnus", "mu4e", "notmuch"}
	if got := registry.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}
