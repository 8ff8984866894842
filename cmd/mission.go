package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/secjobcoach/internal/content"
	"github.com/abhisek/secjobcoach/internal/day"
	"github.com/abhisek/secjobcoach/internal/mission"
)

func newMissionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mission",
		Short: "Print the daily mission",
		Long: `Print the learn block, practice questions and interview drill for a
day. The selection is the same for every run on the same day and track.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDeps(cmd, true)
			if err != nil {
				return err
			}
			defer d.Close()

			trackFlag, _ := cmd.Flags().GetString("track")
			dateFlag, _ := cmd.Flags().GetString("date")

			info, err := resolveTrack(cmd.Context(), d.coach, trackFlag)
			if err != nil {
				return err
			}
			date := d.coach.Today()
			if dateFlag != "" {
				if date, err = day.Parse(dateFlag); err != nil {
					return fmt.Errorf("parse --date: %w", err)
				}
			}

			m, ok := mission.Build(d.coach.Catalog, info.ID, date)
			if !ok {
				return fmt.Errorf("%w: %q", content.ErrUnknownTrack, info.ID)
			}
			printMission(cmd, m)
			return nil
		},
	}
	cmd.Flags().String("track", "", "Track id (defaults to the selected track)")
	cmd.Flags().String("date", "", "Day to build the mission for, YYYY-MM-DD (defaults to today)")
	return cmd
}

func printMission(cmd *cobra.Command, m mission.Mission) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s · %s\n", m.Track.Name, m.Date)
	fmt.Fprintln(out, strings.Repeat("─", 60))

	fmt.Fprintf(out, "\n%s\n", m.Learn.Title)
	for _, b := range m.Learn.Bullets {
		fmt.Fprintf(out, "  • %s\n", b)
	}

	fmt.Fprintf(out, "\nPractice\n")
	for i, q := range m.Practice {
		fmt.Fprintf(out, "  %d. %-7s %-8s %s\n", i+1, "["+string(q.QuestionKind())+"]", q.QuestionID(), q.QuestionPrompt())
	}

	fmt.Fprintf(out, "\nInterview drill\n")
	for i, q := range m.Drill {
		fmt.Fprintf(out, "  %d. %-8s %s\n", i+1, q.QuestionID(), q.QuestionPrompt())
	}
}
