// Package main implements the retro CLI: weekly extraction, monthly rollups
// and habit evaluation over plain-text report blobs.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/retro/internal/config"
	"github.com/fyrsmithlabs/retro/internal/extract"
	"github.com/fyrsmithlabs/retro/internal/habits"
	"github.com/fyrsmithlabs/retro/internal/logging"
	"github.com/fyrsmithlabs/retro/internal/render"
	"github.com/fyrsmithlabs/retro/internal/retro"
	"github.com/fyrsmithlabs/retro/internal/store"
)

// version information
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// rootOptions holds the persistent flags.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "retro",
		Short: "Weekly and monthly retrospectives from plain-text reports",
		Long: `retro classifies weekly task and calendar reports into things that went
well and things that did not, rolls saved weeks up into monthly summaries,
and scores monthly habit counts against configured thresholds.

Configuration is read from ~/.config/retro/config.yaml (or --config) and
RETRO_* environment variables.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/retro/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (trace, debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format override (json, console)")

	cmd.AddCommand(newWeeklyCmd(opts))
	cmd.AddCommand(newMonthlyCmd(opts))
	cmd.AddCommand(newHabitsCmd(opts))
	cmd.AddCommand(newSectionsCmd())
	return cmd
}

// app is everything a command needs after configuration is loaded.
type app struct {
	cfg       *config.Config
	logger    *logging.Logger
	engine    *extract.Engine
	evaluator *habits.Evaluator
}

// load reads configuration, applies flag overrides and builds the logger,
// the extraction engine and the habit evaluator.
func (o *rootOptions) load(cmd *cobra.Command) (*app, error) {
	cfg, err := config.LoadWithFile(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}

	logCfg, err := logging.FromSettings(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("invalid log settings: %w", err)
	}
	var w io.Writer = cmd.ErrOrStderr()
	if logCfg.Output == logging.OutputStdout {
		w = cmd.OutOrStdout()
	}
	logger, err := logging.NewLoggerWithWriter(logCfg, w)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	engine, err := extract.NewEngine(cfg.Engine)
	if err != nil {
		return nil, fmt.Errorf("failed to build engine: %w", err)
	}
	evaluator, err := cfg.Habits.Compile()
	if err != nil {
		return nil, fmt.Errorf("failed to compile habit rules: %w", err)
	}

	return &app{cfg: cfg, logger: logger, engine: engine, evaluator: evaluator}, nil
}

// service builds a retro service, opening the week store when withStore is
// set. The returned cleanup closes the store and flushes the logger.
func (a *app) service(withStore bool) (*retro.Service, func(), error) {
	opts := []retro.Option{retro.WithLogger(a.logger)}
	cleanup := func() { _ = a.logger.Sync() }

	if withStore {
		db, err := store.Open(a.cfg.Store.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open store: %w", err)
		}
		opts = append(opts, retro.WithStore(db))
		cleanup = func() {
			_ = db.Close()
			_ = a.logger.Sync()
		}
	}

	svc, err := retro.NewService(a.engine, a.evaluator, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}

// format resolves the output format flag against the configured default.
func (a *app) format(flag string) string {
	if flag != "" {
		return flag
	}
	return a.cfg.Output.Format
}

func (a *app) renderOptions() render.Options {
	return render.Options{MaxLength: a.cfg.Output.MaxLength}
}

// readInput reads path, or stdin when path is "-". An empty path reads
// nothing.
func readInput(cmd *cobra.Command, path string) (string, error) {
	switch path {
	case "":
		return "", nil
	case "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read file %s: %w", path, err)
		}
		return string(data), nil
	}
}

// parseModes turns good|bad|both into modes.
func parseModes(s string) ([]extract.Mode, error) {
	switch s {
	case "", "both":
		return extract.Modes, nil
	case string(extract.ModeGood):
		return []extract.Mode{extract.ModeGood}, nil
	case string(extract.ModeBad):
		return []extract.Mode{extract.ModeBad}, nil
	default:
		return nil, fmt.Errorf("invalid --mode %q: must be good, bad or both", s)
	}
}
