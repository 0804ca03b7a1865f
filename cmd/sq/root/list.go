package root

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"soloquest/internal/engine"
	"soloquest/internal/ui"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List today's quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			snap := a.store.Snapshot()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconQuest, "Daily quests"))
			printQuests(out, snap.PermanentQuests)

			if len(snap.TemporaryQuests) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.Heading(ui.IconTemp, "Today only"))
				printQuests(out, snap.TemporaryQuests)
			}
			return nil
		},
	}

	return cmd
}

func printQuests(out io.Writer, quests []engine.Quest) {
	if len(quests) == 0 {
		fmt.Fprintln(out, ui.Muted.Render("  (none)"))
		return
	}
	for _, q := range quests {
		fmt.Fprintf(out, "  %s %s  %s\n", ui.QuestIcon(q.Completed), q.Title, ui.Muted.Render(shortID(q.ID)))
	}
}
