package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset learner data",
		Long:  "Delete the saved progress, all flashcard schedules and the scenario run history.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				return errors.New("reset deletes all learner data; pass --yes to confirm")
			}

			d, err := openDeps(cmd, true)
			if err != nil {
				return err
			}
			defer d.Close()

			if err := d.coach.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Learner data reset.")
			return nil
		},
	}
	cmd.Flags().Bool("yes", false, "Confirm deleting all learner data")
	return cmd
}
