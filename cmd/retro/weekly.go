package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/retro/internal/logging"
	"github.com/fyrsmithlabs/retro/internal/render"
	"github.com/fyrsmithlabs/retro/internal/retro"
	"github.com/fyrsmithlabs/retro/internal/watch"
)

type weeklyOptions struct {
	week     string
	tasks    string
	calendar string
	mode     string
	format   string
	save     bool
	forget   bool
	watch    bool
}

func newWeeklyCmd(root *rootOptions) *cobra.Command {
	opts := &weeklyOptions{}

	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Extract a week's good and bad items",
		Long: `Extract a week's retrospective from the task and calendar reports.

Examples:
  # Print both modes
  retro weekly --week 2026-10-05 --tasks tasks.txt --calendar cal.txt

  # Save the week for the monthly rollup
  retro weekly --week 2026-10-05 --tasks tasks.txt --calendar cal.txt --save

  # Drop a saved week from the monthly rollup
  retro weekly --week 2026-10-05 --forget

  # Re-run whenever either report changes
  retro weekly --tasks tasks.txt --calendar cal.txt --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.load(cmd)
			if err != nil {
				return err
			}
			if opts.forget {
				return forgetWeek(cmd, a, opts.week)
			}
			if opts.tasks == "" && opts.calendar == "" {
				return errors.New("at least one of --tasks or --calendar is required")
			}
			if opts.watch && (opts.tasks == "-" || opts.calendar == "-") {
				return errors.New("--watch needs file inputs, not stdin")
			}

			svc, cleanup, err := a.service(opts.save)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := runWeekly(cmd, a, svc, opts); err != nil {
				return err
			}
			if !opts.watch {
				return nil
			}
			return watchWeekly(logging.WithLogger(cmd.Context(), a.logger), cmd, a, svc, opts)
		},
	}

	cmd.Flags().StringVar(&opts.week, "week", "", "week start date (YYYY-MM-DD), required with --save")
	cmd.Flags().StringVar(&opts.tasks, "tasks", "", "task report file (- for stdin)")
	cmd.Flags().StringVar(&opts.calendar, "calendar", "", "calendar report file (- for stdin)")
	cmd.Flags().StringVar(&opts.mode, "mode", "both", "mode to print: good, bad or both")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: text, markdown, json or pretty")
	cmd.Flags().BoolVar(&opts.save, "save", false, "save the week for monthly rollups")
	cmd.Flags().BoolVar(&opts.forget, "forget", false, "remove the saved week given by --week")
	cmd.MarkFlagsMutuallyExclusive("forget", "save")
	cmd.MarkFlagsMutuallyExclusive("forget", "watch")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-run when the input files change")
	return cmd
}

func runWeekly(cmd *cobra.Command, a *app, svc *retro.Service, opts *weeklyOptions) error {
	modes, err := parseModes(opts.mode)
	if err != nil {
		return err
	}
	tasks, err := readInput(cmd, opts.tasks)
	if err != nil {
		return err
	}
	cal, err := readInput(cmd, opts.calendar)
	if err != nil {
		return err
	}

	rep, err := svc.ProcessWeek(cmd.Context(), retro.WeekInput{
		Week:         opts.week,
		TaskText:     tasks,
		CalendarText: cal,
		Modes:        modes,
		Save:         opts.save,
	})
	if err != nil {
		return fmt.Errorf("weekly retro failed: %w", err)
	}

	return writeWeekly(cmd.OutOrStdout(), a, rep, a.format(opts.format))
}

func forgetWeek(cmd *cobra.Command, a *app, week string) error {
	svc, cleanup, err := a.service(true)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.ForgetWeek(cmd.Context(), week); err != nil {
		return fmt.Errorf("forget failed: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Forgot week %s\n", week)
	return err
}

func writeWeekly(w io.Writer, a *app, rep *retro.WeekReport, format string) error {
	for _, res := range rep.Results {
		doc := render.Document{
			Kind:     render.KindWeekly,
			Label:    rep.Week,
			Mode:     res.Mode,
			RunID:    rep.RunID,
			Sections: render.Build(a.engine, res.Mode, res.Sections, a.renderOptions()),
		}
		if err := render.Render(w, format, doc); err != nil {
			return err
		}
	}
	return nil
}

// watchWeekly re-runs the weekly extraction on every debounced change until
// ctx is cancelled. Failed runs are logged and do not stop the loop.
func watchWeekly(ctx context.Context, cmd *cobra.Command, a *app, svc *retro.Service, opts *weeklyOptions) error {
	logger := logging.FromContext(ctx)
	w, err := watch.New([]string{opts.tasks, opts.calendar}, a.cfg.Watch.Debounce.Duration(), nil)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	logger.Info(ctx, "watching reports", zap.String("tasks", opts.tasks), zap.String("calendar", opts.calendar))
	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-w.Changes():
			if !ok {
				return nil
			}
			logger.Debug(ctx, "reports changed", zap.Strings("paths", change.Paths))
			if err := runWeekly(cmd, a, svc, opts); err != nil {
				logger.Warn(ctx, "weekly re-run failed", zap.Error(err))
			}
		}
	}
}
