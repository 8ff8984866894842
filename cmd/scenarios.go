package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/secjobcoach/internal/scenario"
	"github.com/abhisek/secjobcoach/internal/store"
)

func newScenariosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "List incident scenarios and past runs",
	}
	cmd.AddCommand(newScenariosListCmd(), newScenariosHistoryCmd())
	return cmd
}

func newScenariosListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scenarios for a track with the best recorded score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDeps(cmd, true)
			if err != nil {
				return err
			}
			defer d.Close()

			ctx := cmd.Context()
			trackFlag, _ := cmd.Flags().GetString("track")
			info, err := resolveTrack(ctx, d.coach, trackFlag)
			if err != nil {
				return err
			}
			runs, err := d.coach.Recorder.History(ctx, store.QueryOpts{})
			if err != nil {
				return err
			}
			best := scenario.Best(runs)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-26s  %-6s  %5s  %5s  %s\n", "ID", "Sev", "Steps", "Best", "Title")
			fmt.Fprintln(out, strings.Repeat("─", 80))
			list := d.coach.Catalog.Scenarios(info.ID)
			for _, sc := range list {
				score := "-"
				if b, ok := best[sc.ID]; ok {
					score = fmt.Sprintf("%d/%d", b, sc.MaxScore())
				}
				fmt.Fprintf(out, "%-26s  %-6s  %5d  %5s  %s\n", sc.ID, sc.Severity, len(sc.Steps), score, sc.Title)
			}
			fmt.Fprintf(out, "\n%d scenario(s)\n", len(list))
			return nil
		},
	}
	cmd.Flags().String("track", "", "Track id (defaults to the selected track)")
	return cmd
}

func newScenariosHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded scenario runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDeps(cmd, true)
			if err != nil {
				return err
			}
			defer d.Close()

			limit, _ := cmd.Flags().GetInt("limit")
			id, _ := cmd.Flags().GetString("scenario")
			runs, err := d.coach.Recorder.History(cmd.Context(), store.QueryOpts{Limit: limit, ScenarioID: id})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No scenario runs recorded.")
				return nil
			}
			fmt.Fprintf(out, "%-16s  %-26s  %5s  %6s\n", "Finished", "Scenario", "Score", "Checks")
			fmt.Fprintln(out, strings.Repeat("─", 60))
			for _, r := range runs {
				fmt.Fprintf(out, "%-16s  %-26s  %5s  %6s\n",
					r.FinishedAt.Local().Format("2006-01-02 15:04"), r.ScenarioID,
					fmt.Sprintf("%d/%d", r.Score, r.MaxScore),
					fmt.Sprintf("%d/%d", r.ChecksPassed, r.ChecksTotal))
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum runs to show (0 for all)")
	cmd.Flags().String("scenario", "", "Only show runs of this scenario id")
	return cmd
}
