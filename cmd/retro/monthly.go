package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/retro/internal/render"
	"github.com/fyrsmithlabs/retro/internal/retro"
)

func newMonthlyCmd(root *rootOptions) *cobra.Command {
	var (
		month  string
		mode   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Roll saved weeks up into a monthly retro",
		Long: `Roll up every saved week whose start date falls in the month.

Examples:
  # Both modes for October
  retro monthly --month 2026-10

  # Only what went badly, as markdown
  retro monthly --month 2026-10 --mode bad --format markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			modes, err := parseModes(mode)
			if err != nil {
				return err
			}
			a, err := root.load(cmd)
			if err != nil {
				return err
			}
			svc, cleanup, err := a.service(true)
			if err != nil {
				return err
			}
			defer cleanup()

			rep, err := svc.ProcessMonth(cmd.Context(), retro.MonthInput{Month: month, Modes: modes})
			if err != nil {
				return fmt.Errorf("monthly retro failed: %w", err)
			}

			for _, res := range rep.Results {
				doc := render.Document{
					Kind:     render.KindMonthly,
					Label:    rep.Month,
					Mode:     res.Mode,
					RunID:    rep.RunID,
					Sections: render.Build(a.engine, res.Mode, res.Sections, a.renderOptions()),
				}
				if err := render.Render(cmd.OutOrStdout(), a.format(format), doc); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to roll up (YYYY-MM)")
	cmd.Flags().StringVar(&mode, "mode", "both", "mode: good, bad or both")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text, markdown, json or pretty")
	_ = cmd.MarkFlagRequired("month")
	return cmd
}
