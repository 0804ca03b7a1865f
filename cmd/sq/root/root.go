package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"soloquest/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "sq",
	Short:         "Soloquest is a daily quest tracker with RPG progression",
	Long:          "Soloquest is a local-first habit/quest tracker: check off daily quests, earn XP, level up, keep your streak alive, and sync across devices.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(),
		newDoneCmd(),
		newRemoveCmd(),
		newEditCmd(),
		newListCmd(),
		newStatusCmd(),
		newHistoryCmd(),
		newCheckCmd(),
		newResetCmd(),
		newStreakCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newVoiceCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
