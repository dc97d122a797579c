package main

import (
	"errors"
	"fmt"

	"github.com/sanchay/planner/internal/calculation"
	"github.com/sanchay/planner/internal/catalog"
	"github.com/sanchay/planner/internal/domain"
	"github.com/sanchay/planner/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type projectFlags struct {
	optionID    string
	principal   float64
	rate        float64
	years       int
	monthly     float64
	timing      string
	taxCategory string
	hasTIN      bool
	payout      bool
	format      string
	outputDir   string
}

func newProjectCmd(a *app) *cobra.Command {
	f := &projectFlags{}
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project the future value of an investment",
		Long: `Project the future value of a lump sum and/or monthly contributions.

Use --option to project a catalog product with its expected return, tax
category and contribution rules, or give --principal, --rate and --years
for a plain compound-interest projection.`,
		Example: `  sanchay project --principal 100000 --rate 8.5 --years 5
  sanchay project --option sanchayapatra-5y --principal 500000 --payout
  sanchay project --option dps --monthly 2000 --years 5 --format csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.buildReport(f)
			if err != nil {
				return err
			}
			format := f.format
			if format == "" {
				format = a.cfg.Output.Format
			}
			if f.outputDir != "" {
				path, err := output.SaveReport(report, format, f.outputDir)
				if err != nil {
					return fmt.Errorf("failed to save report: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
				return nil
			}
			return output.GenerateReport(cmd.OutOrStdout(), report, format)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.optionID, "option", "", "catalog product id (see 'sanchay catalog list')")
	fl.Float64Var(&f.principal, "principal", 0, "initial lump sum in taka")
	fl.Float64Var(&f.rate, "rate", 0, "expected annual return in percent (ignored with --option)")
	fl.IntVar(&f.years, "years", 0, "investment horizon in years")
	fl.Float64Var(&f.monthly, "monthly", 0, "monthly contribution in taka")
	fl.StringVar(&f.timing, "timing", string(domain.TimingEnd), "when monthly contributions are credited: end or start")
	fl.StringVar(&f.taxCategory, "tax-category", "", "tax category for plain projections (government-certificate, fixed-deposit, equity, other)")
	fl.BoolVar(&f.hasTIN, "tin", false, "investor holds a taxpayer identification number")
	fl.BoolVar(&f.payout, "payout", false, "include the monthly profit payout for savings certificates")
	fl.StringVar(&f.format, "format", "", "output format (console, console-lite, csv, csv-summary, html, json, yaml)")
	fl.StringVar(&f.outputDir, "output-dir", "", "write the report to a timestamped file in this directory")
	return cmd
}

func (a *app) buildReport(f *projectFlags) (*domain.ProjectionReport, error) {
	if f.optionID != "" {
		return a.projectOption(f)
	}

	in, err := calculation.NewProjectionInput(f.principal, f.rate, f.years, f.monthly)
	if err != nil {
		return nil, err
	}
	in.ContributionTiming = domain.ContributionTiming(f.timing)

	var tax *domain.TaxInfo
	if f.taxCategory != "" {
		category, err := calculation.ParseTaxCategory(f.taxCategory)
		var catErr *calculation.UnknownCategoryError
		if errors.As(err, &catErr) {
			a.logger.Warn("unknown tax category, estimating as other",
				zap.String("op", "project"),
				zap.String("category", f.taxCategory),
			)
		}
		info, err := a.engine.EstimateTax(domain.TaxRequest{
			Category:              category,
			Amount:                in.Principal,
			ExpectedReturnPercent: in.AnnualRatePercent,
			HasTIN:                f.hasTIN,
		})
		if err != nil {
			return nil, err
		}
		tax = &info
	}
	return a.engine.NewReport(in, tax)
}

func (a *app) projectOption(f *projectFlags) (*domain.ProjectionReport, error) {
	option, err := a.catalog.ByID(f.optionID)
	if err != nil {
		return nil, err
	}
	years := f.years
	if years == 0 {
		years = option.Tenure.Min
	}
	if err := catalog.ValidateTenure(option, years); err != nil {
		return nil, err
	}
	amount, err := calculation.FiniteDecimal("principal", f.principal)
	if err != nil {
		return nil, err
	}
	monthly, err := calculation.FiniteDecimal("monthly contribution", f.monthly)
	if err != nil {
		return nil, err
	}
	// a mutual fund may run as a SIP alone, with no lump sum
	sipOnly := option.Type == domain.TypeMutualFund && amount.IsZero() && monthly.IsPositive()
	if !option.IsMonthly() && !sipOnly {
		if err := catalog.ValidateAmount(option, amount); err != nil {
			return nil, err
		}
	}
	return a.engine.ProjectOption(option, calculation.OptionRequest{
		Amount:              amount,
		MonthlyContribution: monthly,
		Years:               years,
		HasTIN:              f.hasTIN,
		IncludePayout:       f.payout,
	})
}

func newTaxCmd(a *app) *cobra.Command {
	var (
		category string
		amount   float64
		rate     float64
		hasTIN   bool
		optionID string
	)
	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Estimate the annual tax withheld on investment profit",
		Example: `  sanchay tax --category government-certificate --amount 600000 --rate 8.5
  sanchay tax --option fixed-deposit --amount 200000 --tin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := calculation.FiniteDecimal("amount", amount)
			if err != nil {
				return err
			}
			r, err := calculation.FiniteDecimal("annual rate", rate)
			if err != nil {
				return err
			}
			req := domain.TaxRequest{
				Amount:                amt,
				ExpectedReturnPercent: r,
				HasTIN:                hasTIN,
			}
			if optionID != "" {
				option, err := a.catalog.ByID(optionID)
				if err != nil {
					return err
				}
				req.Category = option.TaxCategory
				req.ExpectedReturnPercent = option.ExpectedReturn.Average
				req.FixedDepositRatePercent = option.FixedDepositTaxRate
			} else {
				c, err := calculation.ParseTaxCategory(category)
				if err != nil {
					a.logger.Warn(err.Error(), zap.String("op", "tax"))
				}
				req.Category = c
			}
			info, err := a.engine.EstimateTax(req)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Category:   %s\n", info.Category)
			fmt.Fprintf(w, "Rate:       %s%%\n", info.TaxRatePercent.String())
			fmt.Fprintf(w, "Annual tax: %s\n", output.FormatCurrency(info.AnnualTax))
			fmt.Fprintf(w, "%s\n%s\n", info.Description, info.DescriptionBn)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&category, "category", "", "tax category (government-certificate, fixed-deposit, equity, other)")
	fl.StringVar(&optionID, "option", "", "take category and expected return from a catalog product")
	fl.Float64Var(&amount, "amount", 0, "invested amount in taka")
	fl.Float64Var(&rate, "rate", 0, "expected annual return in percent")
	fl.BoolVar(&hasTIN, "tin", false, "investor holds a taxpayer identification number")
	return cmd
}

func newPayoutCmd(a *app) *cobra.Command {
	var (
		amount float64
		rate   float64
		years  int
	)
	cmd := &cobra.Command{
		Use:     "payout",
		Short:   "Monthly profit paid out by a savings certificate",
		Example: `  sanchay payout --amount 100000 --rate 8.5 --years 5`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := calculation.FiniteDecimal("amount", amount)
			if err != nil {
				return err
			}
			r, err := calculation.FiniteDecimal("annual rate", rate)
			if err != nil {
				return err
			}
			p, err := calculation.CertificatePayout(amt, r, years)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Monthly payout: %s\n", output.FormatCurrency(p.MonthlyPayout))
			fmt.Fprintf(w, "Total payout:   %s over %d months\n", output.FormatCurrency(p.TotalPayout), p.Payouts)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.Float64Var(&amount, "amount", 0, "certificate face value in taka")
	fl.Float64Var(&rate, "rate", 8.5, "annual profit rate in percent")
	fl.IntVar(&years, "years", 5, "certificate tenure in years")
	return cmd
}

func newScenariosCmd(a *app) *cobra.Command {
	var (
		optionID string
		amount   float64
	)
	cmd := &cobra.Command{
		Use:     "scenarios",
		Short:   "One-year gain at the low, average and high end of a product's return range",
		Example: `  sanchay scenarios --option stock --amount 100000`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			option, err := a.catalog.ByID(optionID)
			if err != nil {
				return err
			}
			amt, err := calculation.FiniteDecimal("amount", amount)
			if err != nil {
				return err
			}
			s, err := calculation.ReturnScenarios(amt, option.ExpectedReturn)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			rr := option.ExpectedReturn
			fmt.Fprintf(w, "%s (%s)\n", option.NameEn, rr.String())
			fmt.Fprintf(w, "  Low  (%s%%): %s\n", rr.Min.String(), output.FormatCurrency(s.MinReturn))
			fmt.Fprintf(w, "  Avg  (%s%%): %s\n", rr.Average.String(), output.FormatCurrency(s.AverageReturn))
			fmt.Fprintf(w, "  High (%s%%): %s\n", rr.Max.String(), output.FormatCurrency(s.MaxReturn))
			return nil
		},
	}
	cmd.Flags().StringVar(&optionID, "option", "stock", "catalog product id")
	cmd.Flags().Float64Var(&amount, "amount", 0, "invested amount in taka")
	return cmd
}

func newSuggestCmd(a *app) *cobra.Command {
	var optionID string
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest starting amounts from the saved financial profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			fp := s.Snapshot().FinancialProfile
			if fp == nil {
				return fmt.Errorf("no financial profile; run 'sanchay profile finance' first")
			}
			minInvestment := decimal.Zero
			if optionID != "" {
				option, err := a.catalog.ByID(optionID)
				if err != nil {
					return err
				}
				minInvestment = option.MinInvestment
			}
			sug := calculation.SuggestContribution(*fp, minInvestment)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Available each month: %s\n", output.FormatCurrency(sug.Available))
			fmt.Fprintf(w, "Suggested lump sum:   %s\n", output.FormatCurrency(sug.LumpSum))
			fmt.Fprintf(w, "Suggested monthly:    %s\n", output.FormatCurrency(sug.MonthlyContribution))
			return nil
		},
	}
	cmd.Flags().StringVar(&optionID, "option", "", "respect this product's minimum investment")
	return cmd
}
