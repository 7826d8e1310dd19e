// Package app assembles the mailstorm components into a running host.
package app

import (
	"fmt"

	"github.com/dshills/mailstorm/internal/agent"
	"github.com/dshills/mailstorm/internal/config"
	"github.com/dshills/mailstorm/internal/dispatch"
	"github.com/dshills/mailstorm/internal/launcher"
	"github.com/dshills/mailstorm/internal/logging"
	"github.com/dshills/mailstorm/internal/plugin"
)

// Options control application startup.
type Options struct {
	// ConfigPath is the configuration file ("" = defaults + env).
	ConfigPath string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// Debug forces debug logging.
	Debug bool

	// Watch enables live reload of the configuration file.
	Watch bool
}

// Application wires config, logging, the agent registry, the launcher
// chain, plugins, and the dispatch client together.
type Application struct {
	cfg      config.Config
	log      *logging.Logger
	registry *agent.Registry
	chain    *launcher.Chain
	client   *dispatch.Client
	plugins  *plugin.Loader
	watcher  *config.Watcher
}

// New builds and activates an application from the given options.
func New(opts Options) (*Application, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.Logging.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(level)
	if opts.Debug {
		logCfg.Level = logging.LevelDebug
	}
	log := logging.New(logCfg)

	app := &Application{
		cfg:      cfg,
		log:      log,
		registry: agent.NewRegistry(),
	}

	env := launcher.NewSystemEnvironment()
	probes, err := buildProbes(cfg.Launcher)
	if err != nil {
		return nil, err
	}
	app.chain = launcher.NewChain(env, probes...)

	if cfg.Plugins.Enabled && cfg.Plugins.Dir != "" {
		app.plugins = plugin.NewLoader(log)
		extra, err := app.plugins.LoadDir(cfg.Plugins.Dir)
		if err != nil {
			app.plugins.Close()
			return nil, fmt.Errorf("loading probe plugins: %w", err)
		}
		app.chain.Append(extra...)
	}

	dispatchCfg := dispatch.Config{
		Name:     cfg.Dispatch.Agent,
		Fallback: cfg.Dispatch.Fallback,
	}
	app.client = dispatch.New(dispatchCfg, app.chain, app.registry)
	app.client.SetLogger(log.WithComponent("dispatch"))

	if err := app.client.Activate(); err != nil {
		app.Shutdown()
		return nil, err
	}

	if opts.Watch && opts.ConfigPath != "" {
		w, err := config.NewWatcher(opts.ConfigPath, app.onReload)
		if err != nil {
			app.Shutdown()
			return nil, fmt.Errorf("watching config: %w", err)
		}
		app.watcher = w
	}

	return app, nil
}

// buildProbes resolves the configured probe order and helper overrides.
func buildProbes(cfg config.LauncherConfig) ([]launcher.Probe, error) {
	var probes []launcher.Probe
	if len(cfg.Probes) == 0 {
		probes = launcher.DefaultProbes()
	} else {
		for _, name := range cfg.Probes {
			p, ok := launcher.ProbeByName(name)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownProbe, name)
			}
			probes = append(probes, p)
		}
	}

	if cfg.DisplayHelper != "" {
		for _, p := range probes {
			if dp, ok := p.(*launcher.DisplayProbe); ok {
				dp.Helper = cfg.DisplayHelper
			}
		}
	}
	return probes, nil
}

// onReload applies a reloaded configuration. Only operator-tunable
// settings change at runtime; probe wiring stays as built.
func (app *Application) onReload(cfg config.Config) {
	app.log.SetLevel(logging.ParseLevel(cfg.Logging.Level))
	if cfg.Dispatch.Fallback != "" {
		app.client.SetFallbackAgent(cfg.Dispatch.Fallback)
	}
	app.log.Info("configuration reloaded")
}

// Compose dispatches a compose request through the client.
func (app *Application) Compose(req *agent.Request) error {
	return app.client.Compose(req)
}

// Client returns the dispatch client.
func (app *Application) Client() *dispatch.Client {
	return app.client
}

// Registry returns the agent registry.
func (app *Application) Registry() *agent.Registry {
	return app.registry
}

// Config returns the loaded configuration.
func (app *Application) Config() config.Config {
	return app.cfg
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.log
}

// Shutdown releases the watcher and plugin states. Safe on a partially
// constructed application and safe to call more than once.
func (app *Application) Shutdown() {
	if app.watcher != nil {
		_ = app.watcher.Close()
		app.watcher = nil
	}
	if app.plugins != nil {
		app.plugins.Close()
		app.plugins = nil
	}
}
