package calculation

import (
	"github.com/sanchay/planner/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	lumpSumShare = decimal.NewFromFloat(0.2)
	lumpSumCap   = decimal.NewFromInt(50000)
	monthlyShare = decimal.NewFromFloat(0.1)
)

// SuggestContribution derives starting amounts from the monthly surplus:
// lump sum is 20% of the surplus capped at 50,000 but never below the product
// minimum, and the monthly contribution is 10% of the surplus rounded down.
func SuggestContribution(profile domain.FinancialProfile, minInvestment decimal.Decimal) domain.ContributionSuggestion {
	available := profile.Surplus()
	lumpSum := decimal.Max(decimal.Min(available.Mul(lumpSumShare), lumpSumCap), minInvestment)
	return domain.ContributionSuggestion{
		Available:           available,
		LumpSum:             lumpSum.Round(0),
		MonthlyContribution: available.Mul(monthlyShare).Floor(),
	}
}
