package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show learning statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDeps(cmd, true)
			if err != nil {
				return err
			}
			defer d.Close()

			dash, err := d.coach.Dashboard(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dash.HasTrack {
				fmt.Fprintf(out, "Track:     %s (%s)\n", dash.Track.Name, dash.Track.ID)
				fmt.Fprintf(out, "Cards:     %d due of %d\n", dash.Cards.Due, dash.Cards.Total)
				fmt.Fprintf(out, "Scenarios: %d\n", dash.Scenarios)
			} else {
				fmt.Fprintln(out, "Track:     none selected")
			}

			streak := dash.State.Streak
			if streak.Active(d.coach.Today()) {
				fmt.Fprintf(out, "Streak:    %d day(s), last %s\n", streak.Count, streak.LastStudyDay)
			} else {
				fmt.Fprintln(out, "Streak:    0 day(s)")
			}

			s := dash.Attempts
			fmt.Fprintf(out, "Attempts:  %d (correct %d, incorrect %d, skipped %d)\n", s.Total, s.Correct, s.Incorrect, s.Skipped)
			if s.Correct+s.Incorrect > 0 {
				fmt.Fprintf(out, "Accuracy:  %.0f%%\n", s.Accuracy()*100)
			}

			if len(dash.Weak) > 0 {
				fmt.Fprintln(out, "\nWeak topics")
				for _, w := range dash.Weak {
					fmt.Fprintf(out, "  %-8s %dx  %s\n", w.Question.QuestionID(), w.Incorrect, w.Question.QuestionPrompt())
				}
			}
			return nil
		},
	}
}
