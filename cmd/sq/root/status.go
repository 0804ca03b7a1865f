package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"soloquest/internal/engine"
	"soloquest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show progression, streak and discipline",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			snap := a.store.Snapshot()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Hunter Status"))
			fmt.Fprintln(out, ui.LabelValue("Level", fmt.Sprintf("%d  (rank %s)", snap.Level, ui.RankBadge(engine.Rank(snap.Level)))))
			fmt.Fprintln(out, ui.LabelValue("XP", ui.XPBar(snap.XP, engine.RequiredXP(snap.Level), 24)))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d (best %d)", ui.IconFlame, snap.Streak.Current, snap.Streak.Longest)))
			if snap.DisciplineBroken {
				fmt.Fprintln(out, ui.LabelValue("Discipline", ui.Bad.Render("broken today")))
			} else {
				fmt.Fprintln(out, ui.LabelValue("Discipline", ui.Good.Render("intact")))
			}
			fmt.Fprintln(out, ui.LabelValue("Voice", onOff(snap.VoiceEnabled)))
			fmt.Fprintln(out, "")

			doneCount := 0
			for _, q := range snap.PermanentQuests {
				if q.Completed {
					doneCount++
				}
			}
			fmt.Fprintln(out, ui.H2.Render(ui.IconQuest+" Today"))
			fmt.Fprintf(out, "- %s %d/%d permanent quests done\n", ui.Key.Render("Quests:"), doneCount, len(snap.PermanentQuests))
			fmt.Fprintf(out, "- %s %d active\n", ui.Key.Render("One-offs:"), len(snap.TemporaryQuests))
			fmt.Fprintln(out, "")

			if len(snap.DisciplineChecks) > 0 {
				fmt.Fprintln(out, ui.H2.Render(ui.IconShield+" Discipline checks"))
				for _, c := range snap.DisciplineChecks {
					fmt.Fprintf(out, "- %s  %s streak %d  %s\n",
						c.Title, ui.IconFlame, c.CurrentStreak, ui.Muted.Render(shortID(c.ID)))
				}
				fmt.Fprintln(out, "")
			}

			if snap.Authenticated {
				status := fmt.Sprintf("%s signed in as %s", ui.IconCloud, ui.Key.Render(snap.UserCode))
				if a.coord == nil {
					status += ui.Muted.Render(" (no sync_url configured)")
				}
				fmt.Fprintln(out, status)
			} else {
				fmt.Fprintln(out, ui.Muted.Render("Not signed in; state is local only."))
			}
			return nil
		},
	}

	return cmd
}

func onOff(ok bool) string {
	if ok {
		return ui.Good.Render("on")
	}
	return ui.Muted.Render("off")
}
