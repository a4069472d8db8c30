package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/retro/internal/render"
)

func newHabitsCmd(root *rootOptions) *cobra.Command {
	var (
		text   string
		weeks  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "habits",
		Short: "Score a month's habit counts",
		Long: `Score habit counts (early wake-ups, sleep-ins, sober and drinking days,
workouts, weight, hobbies) against the configured thresholds.

Examples:
  retro habits --text habits.txt --weeks 4
  pbpaste | retro habits --text - --weeks 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.load(cmd)
			if err != nil {
				return err
			}
			content, err := readInput(cmd, text)
			if err != nil {
				return err
			}
			svc, cleanup, err := a.service(false)
			if err != nil {
				return err
			}
			defer cleanup()

			rep, err := svc.EvaluateHabits(cmd.Context(), content, weeks)
			if err != nil {
				return fmt.Errorf("habit evaluation failed: %w", err)
			}

			doc := render.Document{
				Kind:     render.KindHabits,
				RunID:    rep.RunID,
				Label:    fmt.Sprintf("(%d weeks)", rep.Weeks),
				Sections: render.HabitSections(rep.Result, a.renderOptions()),
			}
			return render.Render(cmd.OutOrStdout(), a.format(format), doc)
		},
	}

	cmd.Flags().StringVar(&text, "text", "-", "habit text file (- for stdin)")
	cmd.Flags().IntVar(&weeks, "weeks", 4, "number of weeks the counts cover")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text, markdown, json or pretty")
	return cmd
}
