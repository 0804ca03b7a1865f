package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"soloquest/internal/ui"
)

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <code>",
		Short: "Sign in with a personal code and pull the cloud profile",
		Long:  "The code is an opaque lookup key shared between your devices, not a credential. If a cloud profile exists under it, the remote copy replaces local state.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("personal code is required")
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

			code := args[0]
			out := cmd.OutOrStdout()

			if a.coord == nil {
				a.store.Login(code)
				fmt.Fprintf(out, "Signed in as %s %s\n", ui.Key.Render(code), ui.Muted.Render("(local only; set sync_url to enable cloud sync)"))
				return nil
			}

			a.coord.Login(ctx, code)
			fmt.Fprintf(out, "%s Signed in as %s\n", ui.IconCloud, ui.Key.Render(code))
			return nil
		},
	}

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and reset local state",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if a.coord != nil {
				a.coord.Logout()
			} else {
				a.store.Logout()
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out. Local state reset.")
			return nil
		},
	}
}
