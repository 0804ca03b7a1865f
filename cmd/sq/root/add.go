package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"soloquest/internal/engine"
	"soloquest/internal/ui"
)

func newAddCmd() *cobra.Command {
	var temp bool

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
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

			kind := engine.QuestPermanent
			if temp {
				kind = engine.QuestTemporary
			}

			q, err := a.store.AddQuest(args[0], kind)
			if err != nil {
				return err
			}

			icon := ui.IconQuest
			if temp {
				icon = ui.IconTemp
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s quest %s: %s\n",
				icon, kind, ui.Muted.Render(shortID(q.ID)), q.Title)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&temp, "temp", "t", false, "One-off quest for today only")

	return cmd
}
