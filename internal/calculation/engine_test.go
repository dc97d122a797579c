package calculation

import (
	"errors"
	"testing"
	"time"

	"github.com/sanchay/planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func fixedNow(t *testing.T) time.Time {
	t.Helper()
	now := time.Date(2025, time.January, 15, 10, 30, 0, 0, time.UTC)
	SetNowFunc(func() time.Time { return now })
	t.Cleanup(func() { SetNowFunc(time.Now) })
	return now
}

func certificateOption() domain.InvestmentOption {
	return domain.InvestmentOption{
		ID:               "sanchayapatra-5y",
		Type:             domain.TypeSanchayapatra,
		NameEn:           "5-Year Bangladesh Sanchayapatra",
		Tenure:           domain.TenureRange{Min: 5, Max: 5},
		MinInvestment:    decimal.NewFromInt(1000),
		ExpectedReturn:   domain.FixedReturn(decimal.NewFromFloat(8.5)),
		PaymentStructure: domain.PaymentLumpSum,
		TaxCategory:      domain.TaxGovernmentCertificate,
	}
}

func TestProjectOption(t *testing.T) {
	now := fixedNow(t)
	engine := NewCalculationEngine()

	tests := []struct {
		name            string
		option          domain.InvestmentOption
		req             OptionRequest
		futureValue     string
		totalInvestment string
		annualTax       string
		timing          domain.ContributionTiming
	}{
		{
			name:            "Certificate with payout",
			option:          certificateOption(),
			req:             OptionRequest{Amount: decimal.NewFromInt(100000), Years: 5, IncludePayout: true},
			futureValue:     "150366",
			totalInvestment: "100000",
			annualTax:       "425",
			timing:          domain.TimingEnd,
		},
		{
			name: "DPS projects installments only",
			option: domain.InvestmentOption{
				ID: "dps", Type: domain.TypeDPS, NameEn: "Deposit Pension Scheme",
				ExpectedReturn: domain.FixedReturn(decimal.NewFromFloat(7.2)), PaymentStructure: domain.PaymentMonthly,
				TaxCategory: domain.TaxFixedDeposit,
			},
			req:             OptionRequest{Amount: decimal.NewFromInt(50000), MonthlyContribution: decimal.NewFromInt(1000), Years: 5},
			futureValue:     "71965",
			totalInvestment: "60000",
			annualTax:       "0",
			timing:          domain.TimingEnd,
		},
		{
			name: "Mutual fund SIP at start of month",
			option: domain.InvestmentOption{
				ID: "mutual-fund", Type: domain.TypeMutualFund, NameEn: "Mutual Fund",
				ExpectedReturn: domain.FixedReturn(decimal.NewFromInt(12)), PaymentStructure: domain.PaymentLumpSum,
				TaxCategory: domain.TaxOther,
			},
			req:             OptionRequest{Amount: decimal.NewFromInt(200000), MonthlyContribution: decimal.NewFromInt(5000), Years: 5},
			futureValue:     "764900",
			totalInvestment: "500000",
			annualTax:       "0",
			timing:          domain.TimingStart,
		},
		{
			name: "Fixed deposit ignores monthly amount",
			option: domain.InvestmentOption{
				ID: "fdr", Type: domain.TypeFixedDeposit, NameEn: "Fixed Deposit",
				ExpectedReturn: domain.FixedReturn(decimal.NewFromInt(9)), PaymentStructure: domain.PaymentLumpSum,
				TaxCategory: domain.TaxFixedDeposit,
			},
			req:             OptionRequest{Amount: decimal.NewFromInt(100000), MonthlyContribution: decimal.NewFromInt(5000), Years: 1},
			futureValue:     "109000",
			totalInvestment: "100000",
			annualTax:       "1350", // 15% without TIN
			timing:          domain.TimingEnd,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := engine.ProjectOption(tt.option, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.futureValue, report.Result.FutureValue.String())
			assert.Equal(t, tt.totalInvestment, report.Result.TotalInvestment.String())
			assert.Equal(t, tt.timing, report.Input.ContributionTiming)
			require.NotNil(t, report.Tax)
			assert.Equal(t, tt.annualTax, report.Tax.AnnualTax.String())
			require.NotNil(t, report.Option)
			assert.Equal(t, tt.option.NameEn, report.Title())
			assert.Equal(t, now, report.GeneratedAt)
			assert.Equal(t, time.Date(2025+tt.req.Years, time.January, 15, 0, 0, 0, 0, time.UTC), report.MaturityDate)
		})
	}
}

func TestProjectOptionPayoutOnlyForCertificates(t *testing.T) {
	fixedNow(t)
	engine := NewCalculationEngine()

	report, err := engine.ProjectOption(certificateOption(), OptionRequest{Amount: decimal.NewFromInt(100000), Years: 5, IncludePayout: true})
	require.NoError(t, err)
	require.NotNil(t, report.Payout)
	assert.Equal(t, "708", report.Payout.MonthlyPayout.String())
	assert.Equal(t, 60, report.Payout.Payouts)

	fdr := certificateOption()
	fdr.Type = domain.TypeFixedDeposit
	report, err = engine.ProjectOption(fdr, OptionRequest{Amount: decimal.NewFromInt(100000), Years: 5, IncludePayout: true})
	require.NoError(t, err)
	assert.Nil(t, report.Payout)
}

func TestProjectOptionMonthlyRequiresInstallment(t *testing.T) {
	engine := NewCalculationEngine()
	dps := domain.InvestmentOption{ID: "dps", NameEn: "DPS", PaymentStructure: domain.PaymentMonthly,
		ExpectedReturn: domain.FixedReturn(decimal.NewFromInt(7))}

	_, err := engine.ProjectOption(dps, OptionRequest{Amount: decimal.NewFromInt(1000), Years: 5})
	var inputErr *InvalidInputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "monthly contribution", inputErr.Field)
}

func TestEngineHorizonCap(t *testing.T) {
	engine := NewCalculationEngine()
	_, err := engine.Project(input(1000, 8, DefaultMaxHorizonYears+1, 0))
	var horizonErr *InvalidHorizonError
	require.True(t, errors.As(err, &horizonErr))
	assert.Equal(t, DefaultMaxHorizonYears, horizonErr.MaxYears)
	assert.Contains(t, err.Error(), "maximum of 30")

	_, err = engine.ProjectOption(certificateOption(), OptionRequest{Amount: decimal.NewFromInt(1000), Years: 31})
	require.True(t, errors.As(err, &horizonErr))
	assert.Contains(t, err.Error(), "project sanchayapatra-5y")

	uncapped := NewCalculationEngineWithConfig(domain.DefaultTaxRules(), 0)
	result, err := uncapped.Project(input(1000, 8, 40, 0))
	require.NoError(t, err)
	assert.Len(t, result.YearlyBreakdown, 40)
}

func TestEngineLogging(t *testing.T) {
	fixedNow(t)
	core, logs := observer.New(zapcore.DebugLevel)
	engine := NewCalculationEngine()
	engine.Debug = true
	engine.SetLogger(zap.New(core).Sugar())

	_, err := engine.ProjectOption(certificateOption(), OptionRequest{Amount: decimal.NewFromInt(100000), Years: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessageSnippet("projected sanchayapatra-5y").Len())
	assert.Equal(t, 5, logs.FilterMessageSnippet("  year ").Len())

	_, err = engine.Project(input(-1, 8, 5, 0))
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestSetLoggerNilUsesNop(t *testing.T) {
	engine := NewCalculationEngine()
	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)
	_, err := engine.Project(input(1000, 8, 5, 0))
	assert.NoError(t, err)
}
