package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"soloquest/internal/ui"
)

func newResetCmd() *cobra.Command {
	var withXP bool
	var all bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Close out the day (or wipe all progress)",
		Long:  "Runs the daily reset by hand: rolls the streak, unchecks permanent quests and drops one-offs. With --xp it also takes back today's XP gains. With --all it wipes progression entirely.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			switch {
			case all:
				a.store.ResetProgressAll()
				fmt.Fprintln(out, ui.Warn.Render("All progress reset."))
			case withXP:
				a.store.ResetDayWithXP()
				fmt.Fprintln(out, "Day closed; today's XP gains taken back.")
			default:
				a.store.ResetDayTasksOnly()
				fmt.Fprintln(out, "Day closed.")
			}

			snap := a.store.Snapshot()
			fmt.Fprintf(out, "%s streak %d · level %d\n", ui.IconFlame, snap.Streak.Current, snap.Level)
			return nil
		},
	}

	cmd.Flags().BoolVar(&withXP, "xp", false, "Also subtract XP gained today")
	cmd.Flags().BoolVar(&all, "all", false, "Wipe all progression (keeps the quest list)")
	cmd.MarkFlagsMutuallyExclusive("xp", "all")

	return cmd
}
