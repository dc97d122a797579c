package main

import (
	"fmt"

	"github.com/sanchay/planner/internal/domain"
	"github.com/sanchay/planner/internal/output"
	"github.com/spf13/cobra"
)

func newGoalCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage savings goals",
	}
	cmd.AddCommand(newGoalListCmd(a), newGoalAddCmd(a), newGoalUpdateCmd(a), newGoalDeleteCmd(a))
	return cmd
}

func newGoalListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals and their progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			goals := s.Goals()
			w := cmd.OutOrStdout()
			if len(goals) == 0 {
				fmt.Fprintln(w, "No goals yet. Add one with 'sanchay goal add'.")
				return nil
			}
			fmt.Fprintf(w, "%-36s %-24s %14s %14s %9s %s\n", "ID", "TITLE", "SAVED", "TARGET", "PROGRESS", "BY")
			for _, g := range goals {
				by := "-"
				if !g.TargetDate.IsZero() {
					by = g.TargetDate.Format(dateLayout)
				}
				fmt.Fprintf(w, "%-36s %-24s %14s %14s %9s %s\n", g.ID, g.Title,
					output.FormatCurrency(g.CurrentAmount), output.FormatCurrency(g.TargetAmount),
					output.FormatPercentage(g.Progress()), by)
			}
			return nil
		},
	}
}

func newGoalAddCmd(a *app) *cobra.Command {
	var title, target, by string
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a savings goal",
		Example: `  sanchay goal add --title "Hajj" --target 700000 --by 2030-06-01`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := domain.Goal{Title: title}
			var err error
			if g.TargetAmount, err = parseAmount("target", target); err != nil {
				return err
			}
			if by != "" {
				if g.TargetDate, err = parseDate("by", by); err != nil {
					return err
				}
			}
			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			added, err := s.AddGoal(cmd.Context(), g)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added goal %s (%s) target %s\n", added.ID, added.Title, output.FormatCurrency(added.TargetAmount))
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "goal title")
	cmd.Flags().StringVar(&target, "target", "0", "target amount in taka")
	cmd.Flags().StringVar(&by, "by", "", "target date (YYYY-MM-DD)")
	return cmd
}

func newGoalUpdateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Record progress or change a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fl := cmd.Flags()
			upd := domain.GoalUpdate{Title: changedString(fl, "title")}
			var err error
			if upd.TargetAmount, err = changedAmount(fl, "target"); err != nil {
				return err
			}
			if upd.CurrentAmount, err = changedAmount(fl, "saved"); err != nil {
				return err
			}
			if fl.Changed("by") {
				raw, _ := fl.GetString("by")
				t, err := parseDate("by", raw)
				if err != nil {
					return err
				}
				upd.TargetDate = &t
			}
			if fl.Changed("active") {
				active, _ := fl.GetBool("active")
				upd.Active = &active
			}
			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			g, err := s.UpdateGoal(cmd.Context(), args[0], upd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated goal %s: %s of %s (%s)\n", g.ID,
				output.FormatCurrency(g.CurrentAmount), output.FormatCurrency(g.TargetAmount), output.FormatPercentage(g.Progress()))
			return nil
		},
	}
	fl := cmd.Flags()
	fl.String("title", "", "goal title")
	fl.String("target", "", "target amount in taka")
	fl.String("saved", "", "amount saved so far in taka")
	fl.String("by", "", "target date (YYYY-MM-DD)")
	fl.Bool("active", true, "whether the goal is still pursued")
	return cmd
}

func newGoalDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a goal",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := s.DeleteGoal(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted goal %s\n", args[0])
			return nil
		},
	}
}
