package calculation

import (
	"github.com/sanchay/planner/internal/domain"
	pkgdecimal "github.com/sanchay/planner/pkg/decimal"
	"github.com/shopspring/decimal"
)

// CertificatePayout computes the monthly profit a certificate pays out without
// compounding: amount * rate/100/12 each month for years*12 months.
func CertificatePayout(amount, annualRatePercent decimal.Decimal, years int) (*domain.PayoutResult, error) {
	if years <= 0 {
		return nil, &InvalidHorizonError{Years: years}
	}
	if amount.IsNegative() {
		return nil, &InvalidInputError{Field: "amount", Value: amount.String(), Reason: "cannot be negative"}
	}
	if annualRatePercent.IsNegative() {
		return nil, &InvalidInputError{Field: "annual rate", Value: annualRatePercent.String(), Reason: "certificate profit cannot be negative"}
	}
	months := years * 12
	monthly := pkgdecimal.NewMoneyFromDecimal(amount).Percent(annualRatePercent).Monthly().Decimal
	return &domain.PayoutResult{
		MonthlyPayout: monthly.Round(0),
		TotalPayout:   monthly.Mul(decimal.NewFromInt(int64(months))).Round(0),
		Payouts:       months,
	}, nil
}

// ReturnScenarios returns the one-year gain on amount at each end of the range
func ReturnScenarios(amount decimal.Decimal, rr domain.ReturnRange) (*domain.ReturnScenario, error) {
	if amount.IsNegative() {
		return nil, &InvalidInputError{Field: "amount", Value: amount.String(), Reason: "cannot be negative"}
	}
	gain := func(rate decimal.Decimal) decimal.Decimal {
		return pkgdecimal.NewMoneyFromDecimal(amount).Percent(rate).RoundTaka().Decimal
	}
	return &domain.ReturnScenario{
		MinReturn:     gain(rr.Min),
		AverageReturn: gain(rr.Average),
		MaxReturn:     gain(rr.Max),
	}, nil
}
