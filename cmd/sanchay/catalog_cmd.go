package main

import (
	"fmt"
	"strings"

	"github.com/sanchay/planner/internal/domain"
	"github.com/sanchay/planner/internal/output"
	"github.com/spf13/cobra"
)

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the investment products",
	}

	var typeFilter string
	list := &cobra.Command{
		Use:   "list",
		Short: "List available products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			options := a.catalog.All()
			if typeFilter != "" {
				options = a.catalog.ByType(domain.InvestmentType(typeFilter))
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-24s %-14s %-8s %-10s %-8s %s\n", "ID", "TYPE", "RISK", "RETURN", "TENURE", "MINIMUM")
			for _, o := range options {
				fmt.Fprintf(w, "%-24s %-14s %-8s %-10s %-8s %s\n",
					o.ID, o.Type, o.RiskLevel, o.ExpectedReturn.String(), tenureString(o.Tenure), output.FormatCurrency(o.MinInvestment))
			}
			return nil
		},
	}
	list.Flags().StringVar(&typeFilter, "type", "", "only list one product family (sanchayapatra, dps, fixed_deposit, mutual_fund, stock)")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one product in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := a.catalog.ByID(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s\n%s\n", o.NameEn, o.Name)
			fmt.Fprintln(w, strings.Repeat("-", 40))
			fmt.Fprintf(w, "Provider:        %s\n", o.Provider)
			fmt.Fprintf(w, "Type:            %s (%s)\n", o.Type, o.PaymentStructure)
			fmt.Fprintf(w, "Risk:            %s\n", o.RiskLevel)
			fmt.Fprintf(w, "Expected return: %s\n", o.ExpectedReturn.String())
			fmt.Fprintf(w, "Tenure:          %s years\n", tenureString(o.Tenure))
			fmt.Fprintf(w, "Minimum:         %s\n", output.FormatCurrency(o.MinInvestment))
			if o.MaxInvestment.IsPositive() {
				fmt.Fprintf(w, "Maximum:         %s\n", output.FormatCurrency(o.MaxInvestment))
			}
			fmt.Fprintf(w, "Tax category:    %s\n", o.TaxCategory)
			if o.Description != "" {
				fmt.Fprintf(w, "\n%s\n", o.Description)
			}
			if len(o.Features) > 0 {
				fmt.Fprintln(w)
				for _, feat := range o.Features {
					fmt.Fprintf(w, "• %s\n", feat)
				}
			}
			return nil
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}

func tenureString(t domain.TenureRange) string {
	if t.Min == t.Max {
		return fmt.Sprintf("%d", t.Min)
	}
	return fmt.Sprintf("%d-%d", t.Min, t.Max)
}
