package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/secjobcoach/internal/coach"
	"github.com/abhisek/secjobcoach/internal/content"
)

var errNoTrack = errors.New("no track selected; run `secjobcoach track <id>` first")

func newTrackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "track [id]",
		Short: "Show the available tracks or select one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDeps(cmd, true)
			if err != nil {
				return err
			}
			defer d.Close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			c := d.coach

			if len(args) == 1 {
				info, err := c.Catalog.ResolveTrack(args[0])
				if err != nil {
					return err
				}
				if _, err := c.Progress.SetTrack(ctx, info.ID); err != nil {
					return err
				}
				fmt.Fprintf(out, "Track set to %s (%s)\n", info.Name, info.ID)
				return nil
			}

			st, err := c.Progress.Load(ctx)
			if err != nil {
				return err
			}
			for _, t := range c.Catalog.Tracks() {
				marker := " "
				if t.ID == st.Track() {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-8s  %s\n", marker, t.ID, t.Name)
				fmt.Fprintf(out, "            %s\n", t.Description)
			}
			return nil
		},
	}
}

// resolveTrack returns the track named by flag, or the selected track when
// flag is empty.
func resolveTrack(ctx context.Context, c *coach.Coach, flag string) (content.TrackInfo, error) {
	if flag != "" {
		return c.Catalog.ResolveTrack(flag)
	}
	st, err := c.Progress.Load(ctx)
	if err != nil {
		return content.TrackInfo{}, err
	}
	info, ok := c.Catalog.Track(st.Track())
	if !ok {
		return content.TrackInfo{}, errNoTrack
	}
	return info, nil
}
