package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sanchay/planner/internal/domain"
	"github.com/sanchay/planner/internal/output"
	"github.com/sanchay/planner/internal/store"
	"github.com/spf13/cobra"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage your user, financial and risk profile",
	}
	cmd.AddCommand(
		newProfileShowCmd(a),
		newProfileSetCmd(a),
		newProfileFinanceCmd(a),
		newProfileRiskCmd(a),
	)
	return cmd
}

func newProfileShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the saved profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			st := s.Snapshot()
			w := cmd.OutOrStdout()
			if st.User == nil {
				fmt.Fprintln(w, "No profile yet. Create one with 'sanchay profile set --name <name>'.")
				return nil
			}
			u := st.User
			fmt.Fprintf(w, "Name:            %s\n", u.Name)
			if u.Email != "" {
				fmt.Fprintf(w, "Email:           %s\n", u.Email)
			}
			if u.Phone != "" {
				fmt.Fprintf(w, "Phone:           %s\n", u.Phone)
			}
			fmt.Fprintf(w, "Language:        %s\n", u.Language)
			if fp := st.FinancialProfile; fp != nil {
				fmt.Fprintf(w, "Monthly income:  %s\n", output.FormatCurrency(fp.MonthlyIncome))
				fmt.Fprintf(w, "Monthly expense: %s\n", output.FormatCurrency(fp.MonthlyExpenses))
				fmt.Fprintf(w, "Monthly savings: %s\n", output.FormatCurrency(u.MonthlySavings))
				fmt.Fprintf(w, "Dependents:      %d\n", fp.Dependents)
				fmt.Fprintf(w, "TIN holder:      %t\n", fp.HasTIN)
			}
			if ra := st.RiskAssessment; ra != nil {
				fmt.Fprintf(w, "Risk tolerance:  %s (score %d, assessed %s)\n", ra.Tolerance, ra.Score, ra.AssessedAt.Format(dateLayout))
			}
			return nil
		},
	}
}

func newProfileSetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create the profile or change its fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fl := cmd.Flags()
			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			upd := domain.UserUpdate{
				Name:     changedString(fl, "name"),
				Email:    changedString(fl, "email"),
				Phone:    changedString(fl, "phone"),
				Language: changedString(fl, "language"),
			}
			if upd.Language != nil && *upd.Language != "en" && *upd.Language != "bn" {
				return fmt.Errorf("language must be en or bn, got %q", *upd.Language)
			}

			u, err := s.UpdateUser(cmd.Context(), upd)
			if errors.Is(err, store.ErrNoUser) {
				if upd.Name == nil || strings.TrimSpace(*upd.Name) == "" {
					return fmt.Errorf("--name is required when creating a profile")
				}
				nu := domain.UserProfile{Name: *upd.Name}
				if upd.Email != nil {
					nu.Email = *upd.Email
				}
				if upd.Phone != nil {
					nu.Phone = *upd.Phone
				}
				if upd.Language != nil {
					nu.Language = *upd.Language
				}
				u, err = s.SetUser(cmd.Context(), nu)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved profile for %s\n", u.Name)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.String("name", "", "your name")
	fl.String("email", "", "email address")
	fl.String("phone", "", "phone number")
	fl.String("language", "", "preferred language (en or bn)")
	return cmd
}

func newProfileFinanceCmd(a *app) *cobra.Command {
	var (
		income     string
		expenses   string
		employment string
		dependents int
		hasTIN     bool
	)
	cmd := &cobra.Command{
		Use:   "finance",
		Short: "Record monthly income and expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fp := domain.FinancialProfile{
				Dependents:     dependents,
				EmploymentType: employment,
				HasTIN:         hasTIN,
			}
			var err error
			if fp.MonthlyIncome, err = parseAmount("income", income); err != nil {
				return err
			}
			if fp.MonthlyExpenses, err = parseAmount("expenses", expenses); err != nil {
				return err
			}
			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			saved, err := s.UpdateFinancialProfile(cmd.Context(), fp)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Monthly surplus: %s\n", output.FormatCurrency(saved.Surplus()))
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&income, "income", "0", "monthly household income in taka")
	fl.StringVar(&expenses, "expenses", "0", "monthly household expenses in taka")
	fl.IntVar(&dependents, "dependents", 0, "number of dependents")
	fl.StringVar(&employment, "employment", "", "employment type (salaried, business, retired, ...)")
	fl.BoolVar(&hasTIN, "tin", false, "holds a taxpayer identification number")
	return cmd
}

func newProfileRiskCmd(a *app) *cobra.Command {
	var (
		score     int
		tolerance string
	)
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Record the risk questionnaire outcome",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			ra := domain.RiskAssessment{Score: score, Tolerance: domain.RiskTolerance(strings.ToLower(tolerance))}
			if err := s.SetRiskAssessment(cmd.Context(), ra); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Risk tolerance set to %s\n", ra.Tolerance)
			return nil
		},
	}
	cmd.Flags().IntVar(&score, "score", 0, "questionnaire score")
	cmd.Flags().StringVar(&tolerance, "tolerance", "", "conservative, moderate or aggressive")
	return cmd
}
