package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentStatus tracks the lifecycle of a held investment
type InvestmentStatus string

const (
	StatusActive  InvestmentStatus = "active"
	StatusMatured InvestmentStatus = "matured"
	StatusClosed  InvestmentStatus = "closed"
)

// Investment is a product the user holds
type Investment struct {
	ID                    string           `yaml:"id" json:"id"`
	OptionID              string           `yaml:"option_id,omitempty" json:"option_id,omitempty"`
	Name                  string           `yaml:"name" json:"name"`
	Type                  InvestmentType   `yaml:"type" json:"type"`
	Amount                decimal.Decimal  `yaml:"amount" json:"amount"`
	CurrentValue          decimal.Decimal  `yaml:"current_value" json:"current_value"`
	ExpectedReturnPercent decimal.Decimal  `yaml:"expected_return_percent" json:"expected_return_percent"`
	MonthlyContribution   decimal.Decimal  `yaml:"monthly_contribution" json:"monthly_contribution"`
	Institution           string           `yaml:"institution,omitempty" json:"institution,omitempty"`
	StartDate             time.Time        `yaml:"start_date" json:"start_date"`
	MaturityDate          time.Time        `yaml:"maturity_date" json:"maturity_date"`
	Status                InvestmentStatus `yaml:"status" json:"status"`
	Notes                 string           `yaml:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt             time.Time        `yaml:"created_at" json:"created_at"`
	UpdatedAt             time.Time        `yaml:"updated_at" json:"updated_at"`
}

// InvestmentUpdate is a partial update; nil fields are left unchanged
type InvestmentUpdate struct {
	Name                  *string
	Amount                *decimal.Decimal
	CurrentValue          *decimal.Decimal
	ExpectedReturnPercent *decimal.Decimal
	MonthlyContribution   *decimal.Decimal
	Institution           *string
	MaturityDate          *time.Time
	Status                *InvestmentStatus
	Notes                 *string
}

// Portfolio aggregates the user's investments
type Portfolio struct {
	Investments     []Investment    `yaml:"investments" json:"investments"`
	TotalInvestment decimal.Decimal `yaml:"total_investment" json:"total_investment"`
	TotalValue      decimal.Decimal `yaml:"total_value" json:"total_value"`
	LastUpdated     time.Time       `yaml:"last_updated" json:"last_updated"`
}

// Gain returns TotalValue minus TotalInvestment
func (p Portfolio) Gain() decimal.Decimal {
	return p.TotalValue.Sub(p.TotalInvestment)
}

// RiskTolerance is the user's declared appetite for volatility
type RiskTolerance string

const (
	ToleranceConservative RiskTolerance = "conservative"
	ToleranceModerate     RiskTolerance = "moderate"
	ToleranceAggressive   RiskTolerance = "aggressive"
)

// RiskAssessment is the outcome of the risk questionnaire
type RiskAssessment struct {
	Score      int           `yaml:"score" json:"score"`
	Tolerance  RiskTolerance `yaml:"tolerance" json:"tolerance"`
	AssessedAt time.Time     `yaml:"assessed_at" json:"assessed_at"`
}

// UserProfile identifies the app user
type UserProfile struct {
	ID             string          `yaml:"id" json:"id"`
	Name           string          `yaml:"name" json:"name"`
	Email          string          `yaml:"email,omitempty" json:"email,omitempty"`
	Phone          string          `yaml:"phone,omitempty" json:"phone,omitempty"`
	Language       string          `yaml:"language" json:"language"` // en or bn
	MonthlyIncome  decimal.Decimal `yaml:"monthly_income" json:"monthly_income"`
	MonthlySavings decimal.Decimal `yaml:"monthly_savings" json:"monthly_savings"`
	RiskTolerance  RiskTolerance   `yaml:"risk_tolerance,omitempty" json:"risk_tolerance,omitempty"`
	CreatedAt      time.Time       `yaml:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `yaml:"updated_at" json:"updated_at"`
}

// UserUpdate is a partial user update; nil fields are left unchanged
type UserUpdate struct {
	Name     *string
	Email    *string
	Phone    *string
	Language *string
}

// FinancialProfile captures the household cash flow used for suggestions
type FinancialProfile struct {
	MonthlyIncome   decimal.Decimal `yaml:"monthly_income" json:"monthly_income"`
	MonthlyExpenses decimal.Decimal `yaml:"monthly_expenses" json:"monthly_expenses"`
	Dependents      int             `yaml:"dependents" json:"dependents"`
	EmploymentType  string          `yaml:"employment_type,omitempty" json:"employment_type,omitempty"`
	HasTIN          bool            `yaml:"has_tin" json:"has_tin"`
	UpdatedAt       time.Time       `yaml:"updated_at" json:"updated_at"`
}

// Surplus returns income minus expenses, floored at zero
func (fp FinancialProfile) Surplus() decimal.Decimal {
	s := fp.MonthlyIncome.Sub(fp.MonthlyExpenses)
	if s.IsNegative() {
		return decimal.Zero
	}
	return s
}

// Goal is a savings target
type Goal struct {
	ID            string          `yaml:"id" json:"id"`
	Title         string          `yaml:"title" json:"title"`
	TargetAmount  decimal.Decimal `yaml:"target_amount" json:"target_amount"`
	CurrentAmount decimal.Decimal `yaml:"current_amount" json:"current_amount"`
	TargetDate    time.Time       `yaml:"target_date" json:"target_date"`
	Active        bool            `yaml:"active" json:"active"`
	CreatedAt     time.Time       `yaml:"created_at" json:"created_at"`
}

// Progress returns CurrentAmount as a percentage of TargetAmount, capped at 100
func (g Goal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	p := g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100))
	if p.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.NewFromInt(100)
	}
	return p.Round(2)
}

// GoalUpdate is a partial goal update; nil fields are left unchanged
type GoalUpdate struct {
	Title         *string
	TargetAmount  *decimal.Decimal
	CurrentAmount *decimal.Decimal
	TargetDate    *time.Time
	Active        *bool
}

// UserState is the persisted snapshot of everything the state container holds
type UserState struct {
	User             *UserProfile      `yaml:"user,omitempty" json:"user,omitempty"`
	FinancialProfile *FinancialProfile `yaml:"financial_profile,omitempty" json:"financial_profile,omitempty"`
	Portfolio        Portfolio         `yaml:"portfolio" json:"portfolio"`
	Goals            []Goal            `yaml:"goals" json:"goals"`
	RiskAssessment   *RiskAssessment   `yaml:"risk_assessment,omitempty" json:"risk_assessment,omitempty"`
}
