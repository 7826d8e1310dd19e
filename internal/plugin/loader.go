package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/mailstorm/internal/launcher"
	"github.com/dshills/mailstorm/internal/logging"
)

// Loader compiles Lua probe scripts into launcher probes.
// It owns the Lua states of every probe it loaded; Close releases them.
type Loader struct {
	mu     sync.Mutex
	log    *logging.Logger
	probes []*luaProbe
	closed bool
}

// NewLoader creates a plugin loader.
func NewLoader(log *logging.Logger) *Loader {
	if log == nil {
		log = logging.NullLogger
	}
	return &Loader{
		log: log.WithComponent("plugin"),
	}
}

// LoadDir loads every *.lua file in dir, sorted by filename, and returns
// the resulting probes in that order. A missing directory yields no
// probes and no error. A broken script is a load error.
func (l *Loader) LoadDir(dir string) ([]launcher.Probe, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading plugin dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".lua") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	probes := make([]launcher.Probe, 0, len(names))
	for _, name := range names {
		p, err := l.LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		probes = append(probes, p)
	}
	return probes, nil
}

// LoadFile loads a single Lua probe script from path.
func (l *Loader) LoadFile(path string) (launcher.Probe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plugin %s: %w", path, err)
	}
	return l.LoadScript(filepath.Base(path), string(data))
}

// LoadScript compiles a probe from Lua source. The name is used in
// error messages only; the probe's own name comes from its table.
func (l *Loader) LoadScript(name, source string) (launcher.Probe, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, ErrLoaderClosed
	}

	L := lua.NewState()

	if err := L.DoString(source); err != nil {
		L.Close()
		return nil, fmt.Errorf("plugin %s: %w", name, err)
	}

	ret := L.Get(-1)
	L.Pop(1)

	table, ok := ret.(*lua.LTable)
	if !ok {
		L.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotProbeTable, name)
	}

	probe, err := newLuaProbe(L, table)
	if err != nil {
		L.Close()
		return nil, fmt.Errorf("plugin %s: %w", name, err)
	}

	l.probes = append(l.probes, probe)
	l.log.Debug("loaded probe %q from %s", probe.Name(), name)
	return probe, nil
}

// Close releases all Lua states owned by the loader.
// Probes returned by this loader must not be used afterwards.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.closed = true

	for _, p := range l.probes {
		p.close()
	}
	l.probes = nil
}

// luaProbe adapts a Lua probe table to launcher.Probe.
// All Lua calls are serialized through mu: LState is not goroutine-safe.
type luaProbe struct {
	mu      sync.Mutex
	L       *lua.LState
	name    string
	applies *lua.LFunction
	launch  *lua.LFunction
}

func newLuaProbe(L *lua.LState, table *lua.LTable) (*luaProbe, error) {
	name, ok := L.GetField(table, "name").(lua.LString)
	if !ok || name == "" {
		return nil, ErrMissingName
	}
	applies, ok := L.GetField(table, "applies").(*lua.LFunction)
	if !ok {
		return nil, ErrMissingApplies
	}
	launch, ok := L.GetField(table, "launch").(*lua.LFunction)
	if !ok {
		return nil, ErrMissingLaunch
	}

	return &luaProbe{
		L:       L,
		name:    string(name),
		applies: applies,
		launch:  launch,
	}, nil
}

// Name implements launcher.Probe.
func (p *luaProbe) Name() string {
	return p.name
}

// Applies implements launcher.Probe. A Lua error during detection counts
// as a decline: a probe that cannot even evaluate its environment does
// not apply to it.
func (p *luaProbe) Applies(env launcher.Environment) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.L == nil {
		return false
	}

	err := p.L.CallByParam(lua.P{
		Fn:      p.applies,
		NRet:    1,
		Protect: true,
	}, envTable(p.L, env))
	if err != nil {
		return false
	}

	ret := p.L.Get(-1)
	p.L.Pop(1)
	return lua.LVAsBool(ret)
}

// Launch implements launcher.Probe.
func (p *luaProbe) Launch(env launcher.Environment, uri string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.L == nil {
		return fmt.Errorf("%w: probe %s", ErrLoaderClosed, p.name)
	}

	err := p.L.CallByParam(lua.P{
		Fn:      p.launch,
		NRet:    2,
		Protect: true,
	}, envTable(p.L, env), lua.LString(uri))
	if err != nil {
		return fmt.Errorf("probe %s: %w", p.name, err)
	}

	okVal := p.L.Get(-2)
	msgVal := p.L.Get(-1)
	p.L.Pop(2)

	// nil (no return) and true both mean the launch fired.
	if okVal == lua.LNil || lua.LVAsBool(okVal) {
		return nil
	}
	msg := lua.LVAsString(msgVal)
	if msg == "" {
		msg = "launch failed"
	}
	return fmt.Errorf("probe %s: %s", p.name, msg)
}

func (p *luaProbe) close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.L != nil {
		p.L.Close()
		p.L = nil
	}
}

// envTable exposes a launcher.Environment to Lua.
func envTable(L *lua.LState, env launcher.Environment) *lua.LTable {
	t := L.NewTable()

	L.SetField(t, "getenv", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(env.Getenv(L.CheckString(1))))
		return 1
	}))

	L.SetField(t, "lookpath", L.NewFunction(func(L *lua.LState) int {
		_, err := env.LookPath(L.CheckString(1))
		L.Push(lua.LBool(err == nil))
		return 1
	}))

	L.SetField(t, "goos", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(env.GOOS()))
		return 1
	}))

	L.SetField(t, "start", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		args := make([]string, 0, L.GetTop()-1)
		for i := 2; i <= L.GetTop(); i++ {
			args = append(args, L.CheckString(i))
		}
		if err := env.StartDetached(name, args...); err != nil {
			L.Push(lua.LFalse)
			L.Push(lua.LString(err.Error()))
			return 2
		}
		L.Push(lua.LTrue)
		return 1
	}))

	L.SetField(t, "shellopen", L.NewFunction(func(L *lua.LState) int {
		if err := env.ShellOpen(L.CheckString(1)); err != nil {
			L.Push(lua.LFalse)
			L.Push(lua.LString(err.Error()))
			return 2
		}
		L.Push(lua.LTrue)
		return 1
	}))

	return t
}
