package root

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"soloquest/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show per-day progress and the completed one-off archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			snap := a.store.Snapshot()
			out := cmd.OutOrStdout()

			dates := make([]string, 0, len(snap.History))
			for d := range snap.History {
				dates = append(dates, d)
			}
			// Date keys sort lexicographically; newest first.
			sort.Sort(sort.Reverse(sort.StringSlice(dates)))
			if days > 0 && len(dates) > days {
				dates = dates[:days]
			}

			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Day log"))
			if len(dates) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("  (empty)"))
			}
			for _, d := range dates {
				dp := snap.History[d]
				fmt.Fprintf(out, "  %s  %s %d  %s %d  %s %d  %s %d\n",
					ui.Key.Render(d),
					ui.Muted.Render("done"), dp.CompletedCount,
					ui.Muted.Render("xp"), dp.XPGained,
					ui.Muted.Render("lvl"), dp.Level,
					ui.Muted.Render("streak"), dp.Streak)
			}

			if len(snap.CompletedHistory) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.Heading(ui.IconDone, "Completed one-offs"))
				for _, e := range snap.CompletedHistory {
					fmt.Fprintf(out, "  %s  %s\n", e.Title, ui.Muted.Render(e.CompletedAt))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "n", 14, "Number of days to show (0 for all)")

	return cmd
}
