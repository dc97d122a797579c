package calculation

import (
	"errors"
	"math"
	"testing"

	"github.com/sanchay/planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func input(principal, rate float64, years int, monthly float64) domain.ProjectionInput {
	return domain.ProjectionInput{
		Principal:           decimal.NewFromFloat(principal),
		AnnualRatePercent:   decimal.NewFromFloat(rate),
		HorizonYears:        years,
		MonthlyContribution: decimal.NewFromFloat(monthly),
	}
}

func values(rows []domain.YearlyBreakdown) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Value.String()
	}
	return out
}

// TestProjectKnownValues checks closed-form results against hand computed figures
func TestProjectKnownValues(t *testing.T) {
	tests := []struct {
		name            string
		in              domain.ProjectionInput
		futureValue     string
		totalInvestment string
		totalReturn     string
		yearlyValues    []string
	}{
		{
			name:            "5-year certificate lump sum",
			in:              input(100000, 8.5, 5, 0),
			futureValue:     "150366", // 100000 * 1.085^5 = 150365.67
			totalInvestment: "100000",
			totalReturn:     "50366",
			yearlyValues:    []string{"108500", "117723", "127729", "138586", "150366"},
		},
		{
			name:            "DPS monthly installments only",
			in:              input(0, 7.2, 5, 1000),
			futureValue:     "71965",
			totalInvestment: "60000",
			totalReturn:     "11965",
			yearlyValues:    []string{"12404", "25731", "40050", "55435", "71965"},
		},
		{
			name:            "One year of contributions at 12%",
			in:              input(0, 12, 1, 1000),
			futureValue:     "12683", // 1000 * (1.01^12 - 1) / 0.01
			totalInvestment: "12000",
			totalReturn:     "683",
			yearlyValues:    []string{"12683"},
		},
		{
			name:            "Principal plus contributions",
			in:              input(100000, 10, 10, 5000),
			futureValue:     "1283599",
			totalInvestment: "700000",
			totalReturn:     "583599",
			yearlyValues: []string{"172828", "253235", "342009", "440022", "548236",
				"667713", "799624", "945264", "1106063", "1283599"},
		},
		{
			name:            "Loss scenario for equities",
			in:              input(100000, -10, 2, 0),
			futureValue:     "81000",
			totalInvestment: "100000",
			totalReturn:     "-19000",
			yearlyValues:    []string{"90000", "81000"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Project(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.futureValue, result.FutureValue.String())
			assert.Equal(t, tt.totalInvestment, result.TotalInvestment.String())
			assert.Equal(t, tt.totalReturn, result.TotalReturn.String())
			assert.Equal(t, tt.yearlyValues, values(result.YearlyBreakdown))
		})
	}
}

// TestProjectInvariants sweeps a grid of inputs and checks the structural guarantees
func TestProjectInvariants(t *testing.T) {
	principals := []float64{0, 1000, 100000, 2500000}
	rates := []float64{-20, 0, 4.25, 8.5, 12, 40}
	horizons := []int{1, 2, 5, 10, 30}
	monthlies := []float64{0, 500, 10000}

	for _, p := range principals {
		for _, r := range rates {
			for _, h := range horizons {
				for _, m := range monthlies {
					result, err := Project(input(p, r, h, m))
					require.NoError(t, err)

					assert.True(t, result.FutureValue.Equal(result.TotalInvestment.Add(result.TotalReturn)),
						"identity broken for p=%v r=%v h=%d m=%v", p, r, h, m)
					require.Len(t, result.YearlyBreakdown, h)

					last := result.YearlyBreakdown[h-1]
					assert.True(t, last.Value.Equal(result.FutureValue), "last row must match totals")
					assert.True(t, last.Investment.Equal(result.TotalInvestment))

					for i, row := range result.YearlyBreakdown {
						assert.Equal(t, i+1, row.Year)
						if i == 0 {
							continue
						}
						prev := result.YearlyBreakdown[i-1]
						assert.True(t, row.Investment.GreaterThanOrEqual(prev.Investment),
							"investment must not decrease (p=%v r=%v h=%d m=%v)", p, r, h, m)
						if r > 0 && (p > 0 || m > 0) {
							assert.True(t, row.Value.GreaterThan(prev.Value),
								"value must increase (p=%v r=%v h=%d m=%v year=%d)", p, r, h, m, row.Year)
						}
					}
				}
			}
		}
	}
}

func TestProjectLumpSumReducesToCompoundInterest(t *testing.T) {
	for _, h := range []int{1, 3, 7, 15} {
		result, err := Project(input(250000, 9, h, 0))
		require.NoError(t, err)
		expected := decimal.NewFromInt(250000).Mul(decimal.NewFromFloat(1.09).Pow(decimal.NewFromInt(int64(h)))).Round(0)
		assert.True(t, expected.Equal(result.FutureValue), "h=%d: want %s got %s", h, expected, result.FutureValue)
	}
}

func TestProjectZeroRate(t *testing.T) {
	result, err := Project(input(50000, 0, 3, 2000))
	require.NoError(t, err)
	assert.Equal(t, "122000", result.FutureValue.String()) // 50000 + 2000*36
	assert.True(t, result.TotalReturn.IsZero())
	assert.Equal(t, []string{"74000", "98000", "122000"}, values(result.YearlyBreakdown))
}

func TestProjectAllZero(t *testing.T) {
	result, err := Project(input(0, 8.5, 4, 0))
	require.NoError(t, err)
	assert.True(t, result.FutureValue.IsZero())
	assert.True(t, result.TotalInvestment.IsZero())
	assert.True(t, result.TotalReturn.IsZero())
	require.Len(t, result.YearlyBreakdown, 4)
	for _, row := range result.YearlyBreakdown {
		assert.True(t, row.Value.IsZero())
		assert.True(t, row.Investment.IsZero())
	}
}

func TestProjectStartOfMonthTiming(t *testing.T) {
	in := input(0, 12, 1, 1000)
	in.ContributionTiming = domain.TimingStart
	result, err := Project(in)
	require.NoError(t, err)
	assert.Equal(t, "12809", result.FutureValue.String()) // 12682.50 * 1.01

	sip := input(200000, 12, 5, 5000)
	sip.ContributionTiming = domain.TimingStart
	result, err = Project(sip)
	require.NoError(t, err)
	assert.Equal(t, "764900", result.FutureValue.String())
	assert.Equal(t, "500000", result.TotalInvestment.String())
}

// TestProjectInvalidHorizon verifies every non-positive horizon is rejected regardless of amounts
func TestProjectInvalidHorizon(t *testing.T) {
	for _, p := range []float64{0, 1000, 100000} {
		for _, r := range []float64{-5, 0, 8.5} {
			for _, h := range []int{0, -1, -30} {
				_, err := Project(input(p, r, h, 100))
				var horizonErr *InvalidHorizonError
				require.True(t, errors.As(err, &horizonErr), "p=%v r=%v h=%d: got %v", p, r, h, err)
				assert.Equal(t, h, horizonErr.Years)
			}
		}
	}
}

func TestProjectInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		in    domain.ProjectionInput
		field string
	}{
		{"Negative principal", input(-1, 8.5, 5, 0), "principal"},
		{"Negative contribution", input(1000, 8.5, 5, -100), "monthly contribution"},
		{"Rate below total loss", input(1000, -150, 5, 0), "annual rate"},
		{"Unknown timing", domain.ProjectionInput{Principal: decimal.NewFromInt(1), HorizonYears: 1, ContributionTiming: "middle"}, "contribution timing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Project(tt.in)
			var inputErr *InvalidInputError
			require.True(t, errors.As(err, &inputErr), "got %v", err)
			assert.Equal(t, tt.field, inputErr.Field)
		})
	}
}

func TestNewProjectionInputRejectsNonFinite(t *testing.T) {
	cases := []struct {
		name      string
		principal float64
		rate      float64
		monthly   float64
	}{
		{"NaN principal", math.NaN(), 8.5, 0},
		{"Infinite rate", 1000, math.Inf(1), 0},
		{"Negative infinite contribution", 1000, 8.5, math.Inf(-1)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewProjectionInput(c.principal, c.rate, 5, c.monthly)
			var inputErr *InvalidInputError
			require.True(t, errors.As(err, &inputErr), "got %v", err)
			assert.Contains(t, inputErr.Error(), "finite")
		})
	}

	_, err := FiniteDecimal("amount", math.Inf(-1))
	var amountErr *InvalidInputError
	require.True(t, errors.As(err, &amountErr))
	assert.Equal(t, "amount", amountErr.Field)
	d, err := FiniteDecimal("amount", 1234.5)
	require.NoError(t, err)
	assert.Equal(t, "1234.5", d.String())

	in, err := NewProjectionInput(100000, 8.5, 5, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.TimingEnd, in.ContributionTiming)
	assert.Equal(t, 60, in.TotalMonths())

	_, err = NewProjectionInput(100000, 8.5, 0, 0)
	var horizonErr *InvalidHorizonError
	assert.True(t, errors.As(err, &horizonErr))
}

func TestAnnuityFutureValueEdgeCases(t *testing.T) {
	assert.True(t, AnnuityFutureValue(decimal.Zero, decimal.NewFromInt(10), 12, domain.TimingEnd).IsZero())
	assert.True(t, AnnuityFutureValue(decimal.NewFromInt(100), decimal.NewFromInt(10), 0, domain.TimingEnd).IsZero())
	assert.Equal(t, "1200", AnnuityFutureValue(decimal.NewFromInt(100), decimal.Zero, 12, domain.TimingStart).String())
	assert.Equal(t, "0.01", MonthlyRate(decimal.NewFromInt(12)).String())
}
