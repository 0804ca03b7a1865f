package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id> <new-title>",
		Short: "Retitle a permanent quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("quest id and new title are required")
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
			if err := a.store.EditQuest(q.ID, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %q → %q\n", q.Title, args[1])
			return nil
		},
	}

	return cmd
}
