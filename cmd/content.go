package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/secjobcoach/internal/content"
)

func newContentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect the content catalog",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate [dir]",
		Short: "Validate the embedded catalog, or the JSON files in dir",
		Long: `Validate tracks.json, questions.json and scenarios.json against their
schemas and check cross references. Without dir the embedded catalog is
checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var c *content.Catalog
			if len(args) == 1 {
				var err error
				c, err = content.Load(os.DirFS(args[0]))
				if err != nil {
					return fmt.Errorf("validate %s: %w", args[0], err)
				}
			} else {
				c = content.Default()
			}

			var scenarios int
			for _, t := range c.Tracks() {
				scenarios += len(c.Scenarios(t.ID))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Catalog %s OK: %d track(s), %d question(s), %d scenario(s)\n",
				c.Version(), len(c.Tracks()), len(c.ListQuestions()), scenarios)
			return nil
		},
	})
	return cmd
}
