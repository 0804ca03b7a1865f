package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"soloquest/internal/ui"
)

func newStreakCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streak set <n>",
		Short: "Manually override the current streak",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 || args[0] != "set" {
				return errors.New("usage: sq streak set <n>")
			}
			if _, err := strconv.Atoi(args[1]); err != nil {
				return errors.New("streak must be an integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _ := strconv.Atoi(args[1])

			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.store.SetStreak(n); err != nil {
				return err
			}
			snap := a.store.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "%s streak %d (best %d)\n", ui.IconFlame, snap.Streak.Current, snap.Streak.Longest)
			return nil
		},
	}

	return cmd
}
