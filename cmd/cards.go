package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/secjobcoach/internal/spacedrep"
	"github.com/abhisek/secjobcoach/internal/ui/layout"
)

func newCardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Review spaced-repetition flashcards",
	}
	cmd.AddCommand(newCardsDueCmd(), newCardsReviewCmd(), newCardsStatsCmd(), newCardsPruneCmd())
	return cmd
}

func newCardsDueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "due",
		Short: "List cards due today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDeps(cmd, true)
			if err != nil {
				return err
			}
			defer d.Close()

			trackFlag, _ := cmd.Flags().GetString("track")
			limit, _ := cmd.Flags().GetInt("limit")
			if limit <= 0 {
				limit = d.coach.DueLimit
			}

			info, err := resolveTrack(cmd.Context(), d.coach, trackFlag)
			if err != nil {
				return err
			}
			cards, err := d.coach.Deck.DueCards(cmd.Context(), info.ID, limit, d.coach.Today())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(cards) == 0 {
				fmt.Fprintln(out, "No cards due.")
				return nil
			}
			fmt.Fprintf(out, "%-10s  %-10s  %4s  %5s  %5s  %s\n", "ID", "Due", "Reps", "Days", "Ease", "Front")
			fmt.Fprintln(out, strings.Repeat("─", 90))
			for _, c := range cards {
				fmt.Fprintf(out, "%-10s  %-10s  %4d  %5d  %5.2f  %s\n",
					c.ID, c.Due, c.Repetitions, c.IntervalDays, c.Ease, layout.Truncate(c.Front, 46))
			}
			fmt.Fprintf(out, "\n%d card(s)\n", len(cards))
			return nil
		},
	}
	cmd.Flags().String("track", "", "Track id (defaults to the selected track)")
	cmd.Flags().Int("limit", 0, "Maximum cards to list (defaults to SECJOBCOACH_DUE_LIMIT)")
	return cmd
}

func newCardsReviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review <id> <grade>",
		Short: "Grade a card from 0 (blackout) to 5 (perfect)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := spacedrep.ParseGrade(args[1])
			if err != nil {
				return err
			}

			d, err := openDeps(cmd, true)
			if err != nil {
				return err
			}
			defer d.Close()

			ctx := cmd.Context()
			c := d.coach
			card, err := c.Deck.ReviewCard(ctx, args[0], g, c.Today())
			if err != nil {
				return err
			}
			if card == nil {
				return fmt.Errorf("unknown card %q", args[0])
			}
			if _, err := c.Progress.MarkStudied(ctx, c.Now()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: next due %s (interval %d day(s), ease %.2f, repetitions %d)\n",
				card.ID, card.Due, card.IntervalDays, card.Ease, card.Repetitions)
			return nil
		},
	}
}

func newCardsStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count cards and due cards for a track",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDeps(cmd, true)
			if err != nil {
				return err
			}
			defer d.Close()

			trackFlag, _ := cmd.Flags().GetString("track")
			info, err := resolveTrack(cmd.Context(), d.coach, trackFlag)
			if err != nil {
				return err
			}
			stats, err := d.coach.Deck.Stats(cmd.Context(), info.ID, d.coach.Today())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d due of %d card(s)\n", info.Name, stats.Due, stats.Total)
			return nil
		},
	}
	cmd.Flags().String("track", "", "Track id (defaults to the selected track)")
	return cmd
}

func newCardsPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove cards whose question is no longer in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDeps(cmd, true)
			if err != nil {
				return err
			}
			defer d.Close()

			n, err := d.coach.Deck.PruneOrphans(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d orphaned card(s)\n", n)
			return nil
		},
	}
}
