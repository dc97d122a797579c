package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContributionTiming selects when monthly contributions are credited
type ContributionTiming string

const (
	// TimingEnd credits contributions at the end of each month (ordinary annuity)
	TimingEnd ContributionTiming = "end"
	// TimingStart credits contributions at the start of each month (annuity-due, SIP style)
	TimingStart ContributionTiming = "start"
)

// ProjectionInput holds the numeric inputs of a single projection run
type ProjectionInput struct {
	Principal           decimal.Decimal    `yaml:"principal" json:"principal"`
	AnnualRatePercent   decimal.Decimal    `yaml:"annual_rate_percent" json:"annual_rate_percent"`
	HorizonYears        int                `yaml:"horizon_years" json:"horizon_years"`
	MonthlyContribution decimal.Decimal    `yaml:"monthly_contribution" json:"monthly_contribution"`
	ContributionTiming  ContributionTiming `yaml:"contribution_timing,omitempty" json:"contribution_timing,omitempty"`
}

// TotalMonths returns the number of monthly periods in the horizon
func (pi ProjectionInput) TotalMonths() int {
	return pi.HorizonYears * 12
}

// YearlyBreakdown is one row of the year-by-year projection series
type YearlyBreakdown struct {
	Year       int             `yaml:"year" json:"year"`
	Investment decimal.Decimal `yaml:"investment" json:"investment"` // cumulative contribution to date
	Value      decimal.Decimal `yaml:"value" json:"value"`           // projected value to date
}

// Gain returns value minus investment for the row
func (yb YearlyBreakdown) Gain() decimal.Decimal {
	return yb.Value.Sub(yb.Investment)
}

// ProjectionResult is the outcome of a projection; all amounts are whole taka
type ProjectionResult struct {
	FutureValue     decimal.Decimal   `yaml:"future_value" json:"future_value"`
	TotalInvestment decimal.Decimal   `yaml:"total_investment" json:"total_investment"`
	TotalReturn     decimal.Decimal   `yaml:"total_return" json:"total_return"`
	YearlyBreakdown []YearlyBreakdown `yaml:"yearly_breakdown" json:"yearly_breakdown"`
}

// ReturnPercent expresses TotalReturn as a percentage of TotalInvestment
func (pr ProjectionResult) ReturnPercent() decimal.Decimal {
	if pr.TotalInvestment.IsZero() {
		return decimal.Zero
	}
	return pr.TotalReturn.Div(pr.TotalInvestment).Mul(decimal.NewFromInt(100))
}

// PayoutResult describes periodic profit paid out by a certificate
type PayoutResult struct {
	MonthlyPayout decimal.Decimal `yaml:"monthly_payout" json:"monthly_payout"`
	TotalPayout   decimal.Decimal `yaml:"total_payout" json:"total_payout"`
	Payouts       int             `yaml:"payouts" json:"payouts"`
}

// ReturnScenario is the one-year gain at the low, average and high end of a return range
type ReturnScenario struct {
	MinReturn     decimal.Decimal `yaml:"min_return" json:"min_return"`
	AverageReturn decimal.Decimal `yaml:"average_return" json:"average_return"`
	MaxReturn     decimal.Decimal `yaml:"max_return" json:"max_return"`
}

// ContributionSuggestion is a starting amount derived from the user's monthly surplus
type ContributionSuggestion struct {
	Available           decimal.Decimal `yaml:"available" json:"available"`
	LumpSum             decimal.Decimal `yaml:"lump_sum" json:"lump_sum"`
	MonthlyContribution decimal.Decimal `yaml:"monthly_contribution" json:"monthly_contribution"`
}

// ProjectionReport bundles everything a formatter renders for one calculation
type ProjectionReport struct {
	GeneratedAt  time.Time         `yaml:"generated_at" json:"generated_at"`
	MaturityDate time.Time         `yaml:"maturity_date" json:"maturity_date"`
	Option       *InvestmentOption `yaml:"option,omitempty" json:"option,omitempty"`
	Input        ProjectionInput   `yaml:"input" json:"input"`
	Result       ProjectionResult  `yaml:"result" json:"result"`
	Tax          *TaxInfo          `yaml:"tax,omitempty" json:"tax,omitempty"`
	Payout       *PayoutResult     `yaml:"payout,omitempty" json:"payout,omitempty"`
}

// Title returns a human readable heading for the report
func (r ProjectionReport) Title() string {
	if r.Option != nil {
		return r.Option.NameEn
	}
	return "Investment Projection"
}
