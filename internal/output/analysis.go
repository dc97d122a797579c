package output

import (
	"github.com/sanchay/planner/internal/domain"
	"github.com/shopspring/decimal"
)

// Highlights are derived figures shown next to the raw projection.
type Highlights struct {
	ReturnPercent     decimal.Decimal
	AverageAnnualGain decimal.Decimal
	// TaxOverHorizon is the annual tax estimate held flat for every year
	TaxOverHorizon decimal.Decimal
	NetReturn      decimal.Decimal
	// DoublingYear is the first year the value reaches twice the amount
	// invested so far, or 0 if it never does within the horizon.
	DoublingYear int
}

// AnalyzeReport computes the highlights of a projection report.
// Extracted from the formatters for testability.
func AnalyzeReport(report *domain.ProjectionReport) Highlights {
	res := report.Result
	h := Highlights{
		ReturnPercent:  res.ReturnPercent().Round(2),
		TaxOverHorizon: decimal.Zero,
	}
	years := len(res.YearlyBreakdown)
	if years > 0 {
		h.AverageAnnualGain = res.TotalReturn.Div(decimal.NewFromInt(int64(years))).Round(0)
	}
	if report.Tax != nil {
		h.TaxOverHorizon = report.Tax.AnnualTax.Mul(decimal.NewFromInt(int64(years)))
	}
	h.NetReturn = res.TotalReturn.Sub(h.TaxOverHorizon)
	two := decimal.NewFromInt(2)
	for _, row := range res.YearlyBreakdown {
		if row.Investment.IsPositive() && row.Value.GreaterThanOrEqual(row.Investment.Mul(two)) {
			h.DoublingYear = row.Year
			break
		}
	}
	return h
}
