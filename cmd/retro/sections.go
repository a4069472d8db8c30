package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/retro/internal/report"
)

func newSectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sections FILE",
		Short: "List the sections found in a report",
		Long: `List every "===== NAME =====" section in a report with its line count.
Useful for checking why a configured section comes back empty.

Examples:
  retro sections tasks.txt
  cat cal.txt | retro sections -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			found := report.Sections(blob)
			if len(found) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sections found.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SECTION\tLINES")
			for _, s := range found {
				fmt.Fprintf(tw, "%s\t%d\n", s.Name, len(report.Lines(s.Body)))
			}
			return tw.Flush()
		},
	}
}
