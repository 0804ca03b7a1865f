package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"soloquest/internal/ui"
)

func newVoiceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "voice",
		Short: "Toggle voice announcements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			enabled := a.store.ToggleVoice()
			fmt.Fprintf(cmd.OutOrStdout(), "%s Voice announcements %s\n", ui.IconVoice, onOff(enabled))
			return nil
		},
	}
}
