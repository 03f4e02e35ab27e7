package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/captain/pkg/bus"
	"github.com/matzehuels/captain/pkg/config"
	"github.com/matzehuels/captain/pkg/console"
	"github.com/matzehuels/captain/pkg/convert"
	"github.com/matzehuels/captain/pkg/module"
	"github.com/matzehuels/captain/pkg/observability"
)

// Runner executes runs against a module registry.
//
// The Runner holds no per-run state: every Run builds a fresh event bus
// and run context, so one Runner can serve several sequential runs.
type Runner struct {
	Registry *module.Registry
	Logger   *log.Logger
	Console  *console.Reporter
}

// NewRunner creates a runner. A nil registry falls back to the built-in
// modules, a nil logger to log.Default(), and a nil console to the
// process streams.
func NewRunner(reg *module.Registry, logger *log.Logger, con *console.Reporter) *Runner {
	if reg == nil {
		reg = convert.NewRegistry()
	}
	if logger == nil {
		logger = log.Default()
	}
	if con == nil {
		con = console.Default()
	}
	return &Runner{
		Registry: reg,
		Logger:   logger,
		Console:  con,
	}
}

// Run executes one configured run: load the config, print the banner,
// register the configured modules, then publish every command in order.
//
// Handler failures surface as [ERR] console lines and never abort the
// run. The returned error is non-nil only for structural configuration
// problems or context cancellation; callers map it to an exit code.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	opts = opts.WithDefaults()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	r.Console.Banner(cfg.Version)

	rc := &module.RunContext{
		Version:      cfg.Version,
		RunID:        uuid.NewString(),
		ManifestPath: opts.ManifestPath,
		OutputDir:    opts.OutputDir,
		Logger:       r.Logger,
		Console:      r.Console,
	}

	start := time.Now()
	observability.Run().OnRunStart(ctx, cfg.Version, rc.RunID)

	b := bus.New(bus.WithErrorHandler(func(topic string, err error) {
		observability.Run().OnHandlerError(ctx, rc.RunID, topic, err)
		r.Logger.Debug("handler failed", "run_id", rc.RunID, "topic", topic, "error", err)
		r.Console.Errorf("%v", err)
	}))

	loaded := r.Registry.Load(cfg.Modules, b, rc)
	r.Logger.Debug("modules registered",
		"run_id", rc.RunID,
		"configured", len(cfg.Modules),
		"loaded", len(loaded))

	commands := cfg.Commands
	if opts.Command != "" {
		commands = []string{opts.Command}
	}

	for _, command := range commands {
		if err := ctx.Err(); err != nil {
			return err
		}
		topic := bus.CommandTopic(command)
		r.Logger.Debug("dispatch", "run_id", rc.RunID, "topic", topic)
		n := b.Publish(topic, rc)
		observability.Run().OnDispatch(ctx, rc.RunID, topic, n)
		if n == 0 {
			r.Console.Warnf("no handler for command: %s", command)
		}
	}

	observability.Run().OnRunComplete(ctx, rc.RunID, len(commands), len(rc.Artifacts), time.Since(start))
	r.Logger.Debug("run complete",
		"run_id", rc.RunID,
		"commands", len(commands),
		"artifacts", len(rc.Artifacts))
	return nil
}
