package calculation

import (
	"fmt"

	"github.com/sanchay/planner/internal/domain"
	"github.com/sanchay/planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// DefaultMaxHorizonYears caps projections the same way the investment form does
const DefaultMaxHorizonYears = 30

// CalculationEngine wraps the pure formulas with configuration and logging
type CalculationEngine struct {
	TaxCalc         *TaxCalculator
	MaxHorizonYears int  // zero disables the cap
	Debug           bool // Enable debug output for detailed calculations
	Logger          Logger
}

// NewCalculationEngine creates a new calculation engine with default tax rules
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		TaxCalc:         NewTaxCalculator(),
		MaxHorizonYears: DefaultMaxHorizonYears,
		Logger:          NopLogger{},
	}
}

// NewCalculationEngineWithConfig creates a new calculation engine with configurable tax rules and horizon cap
func NewCalculationEngineWithConfig(rules domain.TaxRules, maxHorizonYears int) *CalculationEngine {
	return &CalculationEngine{
		TaxCalc:         NewTaxCalculatorWithConfig(rules),
		MaxHorizonYears: maxHorizonYears,
		Logger:          NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Project validates the horizon cap and runs the projection formulas
func (ce *CalculationEngine) Project(in domain.ProjectionInput) (*domain.ProjectionResult, error) {
	if ce.MaxHorizonYears > 0 && in.HorizonYears > ce.MaxHorizonYears {
		return nil, &InvalidHorizonError{Years: in.HorizonYears, MaxYears: ce.MaxHorizonYears}
	}
	result, err := Project(in)
	if err != nil {
		ce.Logger.Warnf("projection rejected: %v", err)
		return nil, err
	}
	if ce.Debug {
		ce.Logger.Debugf("PROJECTION: principal=%s rate=%s%% years=%d monthly=%s timing=%s",
			in.Principal.StringFixed(2), in.AnnualRatePercent.String(), in.HorizonYears,
			in.MonthlyContribution.StringFixed(2), in.ContributionTiming)
		for _, row := range result.YearlyBreakdown {
			ce.Logger.Debugf("  year %2d: invested=%s value=%s", row.Year, row.Investment.StringFixed(0), row.Value.StringFixed(0))
		}
		ce.Logger.Debugf("  future value=%s total investment=%s total return=%s",
			result.FutureValue.StringFixed(0), result.TotalInvestment.StringFixed(0), result.TotalReturn.StringFixed(0))
	}
	return result, nil
}

// EstimateTax estimates annual withholding with the engine's tax table
func (ce *CalculationEngine) EstimateTax(req domain.TaxRequest) (domain.TaxInfo, error) {
	return ce.TaxCalc.EstimateTax(req)
}

// OptionRequest describes a projection for a catalog product
type OptionRequest struct {
	Amount              decimal.Decimal
	MonthlyContribution decimal.Decimal
	Years               int
	HasTIN              bool
	// IncludePayout adds the monthly profit schedule for certificates
	IncludePayout bool
}

// ProjectOption resolves a catalog product into a full report. Monthly
// products project contributions only; lump-sum products ignore the monthly
// amount unless the product is a mutual fund, where it becomes a SIP credited
// at the start of each month.
func (ce *CalculationEngine) ProjectOption(option domain.InvestmentOption, req OptionRequest) (*domain.ProjectionReport, error) {
	in := domain.ProjectionInput{
		Principal:           req.Amount,
		AnnualRatePercent:   option.ExpectedReturn.Average,
		HorizonYears:        req.Years,
		MonthlyContribution: req.MonthlyContribution,
		ContributionTiming:  domain.TimingEnd,
	}
	switch {
	case option.IsMonthly():
		if !req.MonthlyContribution.IsPositive() {
			return nil, &InvalidInputError{Field: "monthly contribution", Value: req.MonthlyContribution.String(), Reason: fmt.Sprintf("%s requires a monthly installment", option.NameEn)}
		}
		in.Principal = decimal.Zero
	case option.Type == domain.TypeMutualFund:
		in.ContributionTiming = domain.TimingStart
	default:
		in.MonthlyContribution = decimal.Zero
	}

	result, err := ce.Project(in)
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", option.ID, err)
	}

	taxReq := domain.TaxRequest{
		Category:                option.TaxCategory,
		Amount:                  in.Principal,
		ExpectedReturnPercent:   option.ExpectedReturn.Average,
		HasTIN:                  req.HasTIN,
		FixedDepositRatePercent: option.FixedDepositTaxRate,
	}
	tax, err := ce.EstimateTax(taxReq)
	if err != nil {
		return nil, fmt.Errorf("estimate tax for %s: %w", option.ID, err)
	}

	now := nowFunc()
	opt := option
	report := &domain.ProjectionReport{
		GeneratedAt:  now,
		MaturityDate: dateutil.MaturityDate(dateutil.BeginningOfDay(now), req.Years),
		Option:       &opt,
		Input:        in,
		Result:       *result,
		Tax:          &tax,
	}
	if req.IncludePayout && option.Type == domain.TypeSanchayapatra {
		payout, err := CertificatePayout(in.Principal, option.ExpectedReturn.Average, req.Years)
		if err != nil {
			return nil, fmt.Errorf("payout for %s: %w", option.ID, err)
		}
		report.Payout = payout
	}
	ce.Logger.Infof("projected %s for %d years: future value %s", option.ID, req.Years, result.FutureValue.StringFixed(0))
	return report, nil
}

// NewReport wraps a plain projection (no catalog product) into a report
func (ce *CalculationEngine) NewReport(in domain.ProjectionInput, tax *domain.TaxInfo) (*domain.ProjectionReport, error) {
	result, err := ce.Project(in)
	if err != nil {
		return nil, err
	}
	now := nowFunc()
	return &domain.ProjectionReport{
		GeneratedAt:  now,
		MaturityDate: dateutil.MaturityDate(dateutil.BeginningOfDay(now), in.HorizonYears),
		Input:        in,
		Result:       *result,
		Tax:          tax,
	}, nil
}
