package output

import (
	"fmt"

	"github.com/sanchay/planner/internal/calculation"
	"github.com/sanchay/planner/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Lump sums compound once a year at the nominal rate",
	"Monthly contributions compound monthly at one twelfth of the annual rate",
	"Amounts are rounded to whole taka",
	"Tax estimates hold the first-year withholding constant",
}

// GenerateAssumptions creates the assumptions list from the actual report inputs
func GenerateAssumptions(report *domain.ProjectionReport) []string {
	in := report.Input
	timing := "end"
	if in.ContributionTiming == domain.TimingStart {
		timing = "start"
	}
	out := []string{
		fmt.Sprintf("Lump sum compounds annually at %s%%", in.AnnualRatePercent.String()),
	}
	if in.MonthlyContribution.IsPositive() {
		out = append(out, fmt.Sprintf("Monthly contributions of %s credited at the %s of each month, compounding at %s%% per month",
			FormatCurrency(in.MonthlyContribution), timing,
			calculation.MonthlyRate(in.AnnualRatePercent).Mul(decimalHundred).StringFixed(4)))
	}
	out = append(out, DefaultAssumptions[2:]...)
	if report.Option != nil && !report.Option.ExpectedReturn.IsFixed() {
		out = append(out, fmt.Sprintf("Return varies between %s; the average is used", report.Option.ExpectedReturn.String()))
	}
	return out
}

var decimalHundred = decimal.NewFromInt(100)
