package calculation

import (
	"math"
	"strconv"

	"github.com/sanchay/planner/internal/domain"
	"github.com/shopspring/decimal"
)

// PROJECTION FORMULAS:
//
// 1. Lump sum compounds annually: principal * (1 + r/100)^years
// 2. Monthly contributions compound monthly at r/100/12 as an ordinary annuity:
//    contribution * ((1 + m)^months - 1) / m, or contribution * months when m is zero.
//    Start-of-month timing multiplies by (1 + m).
// 3. Every breakdown row is the closed form evaluated at that year, never a
//    running balance, so the last row always equals the totals.
// 4. Amounts are rounded to whole taka only when the result is assembled.

var (
	one         = decimal.NewFromInt(1)
	twelve      = decimal.NewFromInt(12)
	hundred     = decimal.NewFromInt(100)
	minRatePerc = decimal.NewFromInt(-100)
)

// FiniteDecimal converts a parsed float into a decimal. NaN and ±Inf are
// rejected with an InvalidInputError naming field, since decimal.Decimal
// cannot represent them.
func FiniteDecimal(field string, value float64) (decimal.Decimal, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return decimal.Zero, &InvalidInputError{
			Field:  field,
			Value:  strconv.FormatFloat(value, 'g', -1, 64),
			Reason: "must be a finite number",
		}
	}
	return decimal.NewFromFloat(value), nil
}

// NewProjectionInput converts parsed user input into a ProjectionInput.
func NewProjectionInput(principal, annualRatePercent float64, horizonYears int, monthlyContribution float64) (domain.ProjectionInput, error) {
	p, err := FiniteDecimal("principal", principal)
	if err != nil {
		return domain.ProjectionInput{}, err
	}
	r, err := FiniteDecimal("annual rate", annualRatePercent)
	if err != nil {
		return domain.ProjectionInput{}, err
	}
	m, err := FiniteDecimal("monthly contribution", monthlyContribution)
	if err != nil {
		return domain.ProjectionInput{}, err
	}
	in := domain.ProjectionInput{
		Principal:           p,
		AnnualRatePercent:   r,
		HorizonYears:        horizonYears,
		MonthlyContribution: m,
		ContributionTiming:  domain.TimingEnd,
	}
	return in, ValidateProjectionInput(in)
}

// ValidateProjectionInput checks the invariants the formulas rely on
func ValidateProjectionInput(in domain.ProjectionInput) error {
	if in.HorizonYears <= 0 {
		return &InvalidHorizonError{Years: in.HorizonYears}
	}
	if in.Principal.IsNegative() {
		return &InvalidInputError{Field: "principal", Value: in.Principal.String(), Reason: "cannot be negative"}
	}
	if in.MonthlyContribution.IsNegative() {
		return &InvalidInputError{Field: "monthly contribution", Value: in.MonthlyContribution.String(), Reason: "cannot be negative"}
	}
	if in.AnnualRatePercent.LessThan(minRatePerc) {
		return &InvalidInputError{Field: "annual rate", Value: in.AnnualRatePercent.String(), Reason: "cannot lose more than 100% per year"}
	}
	switch in.ContributionTiming {
	case "", domain.TimingEnd, domain.TimingStart:
	default:
		return &InvalidInputError{Field: "contribution timing", Value: string(in.ContributionTiming), Reason: "must be 'end' or 'start'"}
	}
	return nil
}

// Project computes future value, totals and the yearly breakdown for in.
// It is pure and safe for concurrent use.
func Project(in domain.ProjectionInput) (*domain.ProjectionResult, error) {
	if err := ValidateProjectionInput(in); err != nil {
		return nil, err
	}

	breakdown := make([]domain.YearlyBreakdown, 0, in.HorizonYears)
	for year := 1; year <= in.HorizonYears; year++ {
		breakdown = append(breakdown, domain.YearlyBreakdown{
			Year:       year,
			Investment: contributedBy(in, year).Round(0),
			Value:      valueAt(in, year).Round(0),
		})
	}

	futureValue := valueAt(in, in.HorizonYears).Round(0)
	totalInvestment := contributedBy(in, in.HorizonYears).Round(0)

	return &domain.ProjectionResult{
		FutureValue:     futureValue,
		TotalInvestment: totalInvestment,
		TotalReturn:     futureValue.Sub(totalInvestment),
		YearlyBreakdown: breakdown,
	}, nil
}

// valueAt evaluates the closed form at the given number of years
func valueAt(in domain.ProjectionInput, years int) decimal.Decimal {
	return LumpSumFutureValue(in.Principal, in.AnnualRatePercent, years).
		Add(AnnuityFutureValue(in.MonthlyContribution, in.AnnualRatePercent, years*12, in.ContributionTiming))
}

func contributedBy(in domain.ProjectionInput, years int) decimal.Decimal {
	return in.Principal.Add(in.MonthlyContribution.Mul(decimal.NewFromInt(int64(years * 12))))
}

// LumpSumFutureValue compounds principal annually for years
func LumpSumFutureValue(principal, annualRatePercent decimal.Decimal, years int) decimal.Decimal {
	if principal.IsZero() {
		return decimal.Zero
	}
	factor := one.Add(annualRatePercent.Div(hundred))
	return principal.Mul(factor.Pow(decimal.NewFromInt(int64(years))))
}

// MonthlyRate converts an annual percentage to the monthly fraction used for contributions
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(hundred).Div(twelve)
}

// AnnuityFutureValue returns the future value of months equal monthly contributions
func AnnuityFutureValue(contribution, annualRatePercent decimal.Decimal, months int, timing domain.ContributionTiming) decimal.Decimal {
	if contribution.IsZero() || months <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(months))
	rate := MonthlyRate(annualRatePercent)
	if rate.IsZero() {
		return contribution.Mul(n)
	}
	growth := one.Add(rate).Pow(n)
	fv := contribution.Mul(growth.Sub(one)).Div(rate)
	if timing == domain.TimingStart {
		fv = fv.Mul(one.Add(rate))
	}
	return fv
}
