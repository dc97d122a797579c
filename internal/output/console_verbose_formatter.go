package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sanchay/planner/internal/domain"
)

// ConsoleVerboseFormatter renders the full projection report for a terminal.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	rule := strings.Repeat("=", 64)

	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, strings.ToUpper(report.Title()))
	fmt.Fprintln(&buf, rule)
	if opt := report.Option; opt != nil {
		fmt.Fprintf(&buf, "%s (%s)\n", opt.Name, opt.Provider)
		fmt.Fprintf(&buf, "Risk: %s | Expected return: %s | Tenure: %d-%d years\n",
			opt.RiskLevel, opt.ExpectedReturn.String(), opt.Tenure.Min, opt.Tenure.Max)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(report) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	in := report.Input
	fmt.Fprintln(&buf, "INPUT")
	fmt.Fprintln(&buf, strings.Repeat("-", 30))
	fmt.Fprintf(&buf, "Initial amount:       %s\n", FormatCurrency(in.Principal))
	if in.MonthlyContribution.IsPositive() {
		fmt.Fprintf(&buf, "Monthly contribution: %s\n", FormatCurrency(in.MonthlyContribution))
	}
	fmt.Fprintf(&buf, "Annual return:        %s%%\n", in.AnnualRatePercent.String())
	fmt.Fprintf(&buf, "Horizon:              %d years\n", in.HorizonYears)
	if !report.MaturityDate.IsZero() {
		fmt.Fprintf(&buf, "Maturity date:        %s\n", report.MaturityDate.Format("2006-01-02"))
	}
	fmt.Fprintln(&buf)

	res := report.Result
	h := AnalyzeReport(report)
	fmt.Fprintln(&buf, "PROJECTION")
	fmt.Fprintln(&buf, strings.Repeat("-", 30))
	fmt.Fprintf(&buf, "Future value:         %s\n", FormatCurrency(res.FutureValue))
	fmt.Fprintf(&buf, "Total investment:     %s\n", FormatCurrency(res.TotalInvestment))
	fmt.Fprintf(&buf, "Total return:         %s (%s)\n", FormatCurrency(res.TotalReturn), FormatPercentage(h.ReturnPercent))
	fmt.Fprintf(&buf, "Average annual gain:  %s\n", FormatCurrency(h.AverageAnnualGain))
	if h.DoublingYear > 0 {
		fmt.Fprintf(&buf, "Money doubles by:     year %d\n", h.DoublingYear)
	}
	fmt.Fprintln(&buf)

	if tax := report.Tax; tax != nil {
		fmt.Fprintln(&buf, "TAX ESTIMATE")
		fmt.Fprintln(&buf, strings.Repeat("-", 30))
		fmt.Fprintf(&buf, "Category:             %s\n", tax.Category)
		fmt.Fprintf(&buf, "Rate:                 %s%%\n", tax.TaxRatePercent.String())
		fmt.Fprintf(&buf, "Annual tax:           %s\n", FormatCurrency(tax.AnnualTax))
		fmt.Fprintf(&buf, "Return after tax:     %s\n", FormatCurrency(h.NetReturn))
		fmt.Fprintf(&buf, "Note:                 %s\n", tax.Description)
		fmt.Fprintln(&buf)
	}

	if p := report.Payout; p != nil {
		fmt.Fprintln(&buf, "MONTHLY PROFIT PAYOUT")
		fmt.Fprintln(&buf, strings.Repeat("-", 30))
		fmt.Fprintf(&buf, "Monthly payout:       %s\n", FormatCurrency(p.MonthlyPayout))
		fmt.Fprintf(&buf, "Total payout:         %s (%d months)\n", FormatCurrency(p.TotalPayout), p.Payouts)
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "YEAR-BY-YEAR BREAKDOWN")
	fmt.Fprintf(&buf, "%-6s %18s %18s %18s\n", "Year", "Invested", "Value", "Gain")
	fmt.Fprintln(&buf, strings.Repeat("-", 63))
	for _, row := range res.YearlyBreakdown {
		fmt.Fprintf(&buf, "%-6d %18s %18s %18s\n", row.Year,
			FormatCurrency(row.Investment), FormatCurrency(row.Value), FormatCurrency(row.Gain()))
	}
	return buf.Bytes(), nil
}
