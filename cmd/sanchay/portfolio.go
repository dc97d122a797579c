package main

import (
	"fmt"
	"time"

	"github.com/sanchay/planner/internal/calculation"
	"github.com/sanchay/planner/internal/catalog"
	"github.com/sanchay/planner/internal/domain"
	"github.com/sanchay/planner/internal/output"
	"github.com/sanchay/planner/pkg/dateutil"
	pkgdecimal "github.com/sanchay/planner/pkg/decimal"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const dateLayout = "2006-01-02"

func parseAmount(flag, value string) (decimal.Decimal, error) {
	m, err := pkgdecimal.NewMoneyFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", flag, value, err)
	}
	return m.Decimal, nil
}

func parseDate(flag, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q, expected YYYY-MM-DD: %w", flag, value, err)
	}
	return t, nil
}

// changedAmount parses a money flag only when the user set it
func changedAmount(fl *pflag.FlagSet, name string) (*decimal.Decimal, error) {
	if !fl.Changed(name) {
		return nil, nil
	}
	raw, _ := fl.GetString(name)
	d, err := parseAmount(name, raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func changedString(fl *pflag.FlagSet, name string) *string {
	if !fl.Changed(name) {
		return nil
	}
	s, _ := fl.GetString(name)
	return &s
}

func newPortfolioCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Track the investments you hold",
	}
	cmd.AddCommand(
		newPortfolioListCmd(a),
		newPortfolioAddCmd(a),
		newPortfolioUpdateCmd(a),
		newPortfolioDeleteCmd(a),
	)
	return cmd
}

func newPortfolioListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List investments and portfolio totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			p := s.Portfolio()
			w := cmd.OutOrStdout()
			if len(p.Investments) == 0 {
				fmt.Fprintln(w, "No investments yet. Add one with 'sanchay portfolio add'.")
				return nil
			}
			now := time.Now()
			fmt.Fprintf(w, "%-36s %-28s %14s %14s %-10s %s\n", "ID", "NAME", "INVESTED", "VALUE", "STATUS", "MATURITY")
			for _, inv := range p.Investments {
				status := string(inv.Status)
				if inv.Status == domain.StatusActive && dateutil.IsMatured(inv.MaturityDate, now) {
					status = "due"
				}
				maturity := "-"
				if !inv.MaturityDate.IsZero() {
					maturity = inv.MaturityDate.Format(dateLayout)
				}
				fmt.Fprintf(w, "%-36s %-28s %14s %14s %-10s %s\n", inv.ID, inv.Name,
					output.FormatCurrency(inv.Amount), output.FormatCurrency(inv.CurrentValue), status, maturity)
				if inv.MonthlyContribution.IsPositive() && !inv.MaturityDate.IsZero() {
					total := dateutil.MonthsElapsed(inv.StartDate, inv.MaturityDate)
					fmt.Fprintf(w, "%-36s %d of %d installments of %s paid\n", "",
						dateutil.InstallmentsPaid(inv.StartDate, now, total), total, output.FormatCurrency(inv.MonthlyContribution))
				}
			}
			fmt.Fprintf(w, "\nTotal invested: %s\n", output.FormatCurrency(p.TotalInvestment))
			fmt.Fprintf(w, "Current value:  %s\n", output.FormatCurrency(p.TotalValue))
			fmt.Fprintf(w, "Gain:           %s\n", output.FormatCurrency(p.Gain()))
			return nil
		},
	}
}

type addInvestmentFlags struct {
	optionID     string
	name         string
	invType      string
	amount       string
	currentValue string
	monthly      string
	rate         float64
	years        int
	institution  string
	notes        string
	start        string
}

func newPortfolioAddCmd(a *app) *cobra.Command {
	f := &addInvestmentFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an investment",
		Example: `  sanchay portfolio add --option sanchayapatra-5y --amount 500000 --start 2024-07-01
  sanchay portfolio add --name "Savings account" --type fixed_deposit --amount 50000 --rate 6`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := calculation.FiniteDecimal("annual rate", f.rate)
			if err != nil {
				return err
			}
			inv := domain.Investment{
				Name:                  f.name,
				Type:                  domain.InvestmentType(f.invType),
				Institution:           f.institution,
				Notes:                 f.notes,
				ExpectedReturnPercent: rate,
			}
			if inv.Amount, err = parseAmount("amount", f.amount); err != nil {
				return err
			}
			if f.currentValue != "" {
				if inv.CurrentValue, err = parseAmount("current-value", f.currentValue); err != nil {
					return err
				}
			}
			if f.monthly != "" {
				if inv.MonthlyContribution, err = parseAmount("monthly", f.monthly); err != nil {
					return err
				}
			}
			if f.start != "" {
				if inv.StartDate, err = parseDate("start", f.start); err != nil {
					return err
				}
			}

			years := f.years
			if f.optionID != "" {
				option, err := a.catalog.ByID(f.optionID)
				if err != nil {
					return err
				}
				if !option.IsMonthly() {
					if err := catalog.ValidateAmount(option, inv.Amount); err != nil {
						return err
					}
				}
				if years == 0 {
					years = option.Tenure.Min
				}
				if err := catalog.ValidateTenure(option, years); err != nil {
					return err
				}
				inv.OptionID = option.ID
				inv.Type = option.Type
				if inv.Name == "" {
					inv.Name = option.NameEn
				}
				if inv.Institution == "" {
					inv.Institution = option.Provider
				}
				if !cmd.Flags().Changed("rate") {
					inv.ExpectedReturnPercent = option.ExpectedReturn.Average
				}
			}
			if years > 0 {
				from := inv.StartDate
				if from.IsZero() {
					from = dateutil.BeginningOfDay(time.Now())
				}
				inv.MaturityDate = dateutil.MaturityDate(from, years)
			}

			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			added, err := s.AddInvestment(cmd.Context(), inv)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) %s\n", added.ID, added.Name, output.FormatCurrency(added.Amount))
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.optionID, "option", "", "catalog product id; fills name, type, provider and expected return")
	fl.StringVar(&f.name, "name", "", "investment name")
	fl.StringVar(&f.invType, "type", "", "product family when no --option is given")
	fl.StringVar(&f.amount, "amount", "0", "amount invested in taka")
	fl.StringVar(&f.currentValue, "current-value", "", "current value in taka (defaults to the amount)")
	fl.StringVar(&f.monthly, "monthly", "", "monthly installment in taka")
	fl.Float64Var(&f.rate, "rate", 0, "expected annual return in percent")
	fl.IntVar(&f.years, "years", 0, "tenure in years, used for the maturity date")
	fl.StringVar(&f.institution, "institution", "", "bank or provider")
	fl.StringVar(&f.notes, "notes", "", "free-form notes")
	fl.StringVar(&f.start, "start", "", "start date (YYYY-MM-DD), defaults to today")
	return cmd
}

func newPortfolioUpdateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an investment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fl := cmd.Flags()
			var upd domain.InvestmentUpdate
			var err error
			upd.Name = changedString(fl, "name")
			upd.Institution = changedString(fl, "institution")
			upd.Notes = changedString(fl, "notes")
			if upd.Amount, err = changedAmount(fl, "amount"); err != nil {
				return err
			}
			if upd.CurrentValue, err = changedAmount(fl, "current-value"); err != nil {
				return err
			}
			if upd.MonthlyContribution, err = changedAmount(fl, "monthly"); err != nil {
				return err
			}
			if fl.Changed("rate") {
				rate, _ := fl.GetFloat64("rate")
				d, err := calculation.FiniteDecimal("annual rate", rate)
				if err != nil {
					return err
				}
				upd.ExpectedReturnPercent = &d
			}
			if fl.Changed("maturity") {
				raw, _ := fl.GetString("maturity")
				t, err := parseDate("maturity", raw)
				if err != nil {
					return err
				}
				upd.MaturityDate = &t
			}
			if status := changedString(fl, "status"); status != nil {
				st := domain.InvestmentStatus(*status)
				upd.Status = &st
			}

			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			inv, err := s.UpdateInvestment(cmd.Context(), args[0], upd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: value %s, status %s\n", inv.ID, output.FormatCurrency(inv.CurrentValue), inv.Status)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.String("name", "", "investment name")
	fl.String("amount", "", "amount invested in taka")
	fl.String("current-value", "", "current value in taka")
	fl.String("monthly", "", "monthly installment in taka")
	fl.Float64("rate", 0, "expected annual return in percent")
	fl.String("institution", "", "bank or provider")
	fl.String("notes", "", "free-form notes")
	fl.String("maturity", "", "maturity date (YYYY-MM-DD)")
	fl.String("status", "", "active, matured or closed")
	return cmd
}

func newPortfolioDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Remove an investment",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := s.DeleteInvestment(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}
