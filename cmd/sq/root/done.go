package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"soloquest/internal/ui"
)

func newDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a quest's completion",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("quest id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			q, err := a.resolveQuest(args[0])
			if err != nil {
				return err
			}

			res, err := a.store.ToggleQuest(q.ID, q.Kind)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.Quest.Completed {
				fmt.Fprintf(out, "%s %s %s\n", ui.IconDone, res.Quest.Title, ui.Good.Render(fmt.Sprintf("%+d XP", res.XPDelta)))
			} else {
				fmt.Fprintf(out, "%s %s %s\n", ui.IconOpen, res.Quest.Title, ui.Warn.Render(fmt.Sprintf("%+d XP", res.XPDelta)))
			}
			if res.Archived {
				fmt.Fprintln(out, ui.Muted.Render("Archived to completed history."))
			}
			switch {
			case res.LevelAfter > res.LevelBefore:
				fmt.Fprintf(out, "%s %s → level %d\n", ui.IconSparkle, ui.BadgeLevelUp, res.LevelAfter)
			case res.LevelAfter < res.LevelBefore:
				fmt.Fprintf(out, "%s Level down → level %d\n", ui.IconSkull, res.LevelAfter)
			}
			return nil
		},
	}

	return cmd
}
