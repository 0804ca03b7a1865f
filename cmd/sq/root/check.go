package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"soloquest/internal/engine"
	"soloquest/internal/ui"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Manage discipline checks",
	}

	cmd.AddCommand(
		newCheckListCmd(),
		newCheckAddCmd(),
		newCheckEditCmd(),
		newCheckRemoveCmd(),
		newCheckFailCmd(),
	)

	return cmd
}

func newCheckListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List discipline checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			snap := a.store.Snapshot()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconShield, "Discipline checks"))
			if len(snap.DisciplineChecks) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("  (none)"))
			}
			for _, c := range snap.DisciplineChecks {
				penalty := "XP reset"
				if c.PenaltyKind == engine.PenaltyLevelReduction {
					penalty = fmt.Sprintf("-%d levels", c.PenaltyValue)
				}
				fmt.Fprintf(out, "  %s\n    %s %s · %s streak %d · %s\n",
					c.Title,
					ui.Warn.Render(penalty), ui.Muted.Render("on failure"),
					ui.IconFlame, c.CurrentStreak,
					ui.Muted.Render(shortID(c.ID)))
			}
			return nil
		},
	}
}

func newCheckAddCmd() *cobra.Command {
	var penalty string
	var levels int

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a discipline check",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := engine.ParsePenaltyKind(penalty)
			if err != nil {
				return err
			}

			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			c, err := a.store.AddCheck(args[0], kind, levels)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added check %s: %s\n", ui.IconShield, ui.Muted.Render(shortID(c.ID)), c.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&penalty, "penalty", "p", "xp_reset", "Penalty kind (xp_reset|level_reduction)")
	cmd.Flags().IntVarP(&levels, "levels", "l", 0, "Levels subtracted for level_reduction")

	return cmd
}

func newCheckEditCmd() *cobra.Command {
	var penalty string
	var levels int

	cmd := &cobra.Command{
		Use:   "edit <id> <title>",
		Short: "Update a discipline check",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("check id and title are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := engine.ParsePenaltyKind(penalty)
			if err != nil {
				return err
			}

			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			c, err := a.resolveCheck(args[0])
			if err != nil {
				return err
			}
			if err := a.store.UpdateCheck(c.ID, args[1], kind, levels); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated check %s\n", ui.Muted.Render(shortID(c.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&penalty, "penalty", "p", "xp_reset", "Penalty kind (xp_reset|level_reduction)")
	cmd.Flags().IntVarP(&levels, "levels", "l", 0, "Levels subtracted for level_reduction")

	return cmd
}

func newCheckRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a discipline check",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("check id is required")
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

			c, err := a.resolveCheck(args[0])
			if err != nil {
				return err
			}
			if err := a.store.RemoveCheck(c.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed check %q\n", c.Title)
			return nil
		},
	}
}

func newCheckFailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fail <id>",
		Short: "Record a failure (applies the penalty, once per day)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("check id is required")
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

			c, err := a.resolveCheck(args[0])
			if err != nil {
				return err
			}

			before := a.store.Snapshot()
			if err := a.store.TriggerFailure(c.ID); err != nil {
				return err
			}
			after := a.store.Snapshot()

			out := cmd.OutOrStdout()
			if before.LastUpdate == after.LastUpdate {
				fmt.Fprintln(out, ui.Muted.Render("Already recorded today; no double penalty."))
				return nil
			}
			fmt.Fprintf(out, "%s Penalty applied: level %d, %d XP\n", ui.IconSkull, after.Level, after.XP)
			return nil
		},
	}
}
