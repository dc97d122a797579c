package calculation

import (
	"errors"
	"testing"

	"github.com/sanchay/planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stockRange() domain.ReturnRange {
	return domain.ReturnRange{Min: decimal.NewFromInt(-10), Max: decimal.NewFromInt(40), Average: decimal.NewFromInt(15)}
}

// TestSimulateFixedRangeMatchesProjection checks that a zero-width range reproduces the deterministic result
func TestSimulateFixedRangeMatchesProjection(t *testing.T) {
	tests := []struct {
		name     string
		in       domain.ProjectionInput
		rate     float64
		expected string
	}{
		{"certificate lump sum", input(100000, 0, 5, 0), 8.5, "150366"},
		{"DPS installments", input(0, 0, 5, 1000), 7.2, "71965"},
		{"SIP at start of month", domain.ProjectionInput{
			Principal:           decimal.NewFromInt(200000),
			MonthlyContribution: decimal.NewFromInt(5000),
			HorizonYears:        5,
			ContributionTiming:  domain.TimingStart,
		}, 12, "764900"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := SimulateReturnRange(RangeSimulationConfig{
				Input:          tt.in,
				Range:          domain.FixedReturn(decimal.NewFromFloat(tt.rate)),
				NumSimulations: 20,
				Seed:           7,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, res.DeterministicValue.String())
			assert.Equal(t, tt.expected, res.MedianEndingValue.String())
			assert.Equal(t, tt.expected, res.Percentiles.P10.String())
			assert.Equal(t, tt.expected, res.Percentiles.P90.String())
			assert.True(t, res.LossProbability.IsZero())
			assert.True(t, res.MedianMaxDrawdown.IsZero())
		})
	}
}

func TestSimulateReturnRangeIsReproducible(t *testing.T) {
	cfg := RangeSimulationConfig{Input: input(100000, 0, 10, 2000), Range: stockRange(), NumSimulations: 200, Seed: 42}
	first, err := SimulateReturnRange(cfg)
	require.NoError(t, err)
	second, err := SimulateReturnRange(cfg)
	require.NoError(t, err)

	for _, pair := range [][2]decimal.Decimal{
		{first.Percentiles.P10, second.Percentiles.P10},
		{first.Percentiles.P50, second.Percentiles.P50},
		{first.Percentiles.P90, second.Percentiles.P90},
		{first.LossProbability, second.LossProbability},
		{first.MedianMaxDrawdown, second.MedianMaxDrawdown},
	} {
		assert.True(t, pair[0].Equal(pair[1]), "%s != %s", pair[0], pair[1])
	}
	assert.Equal(t, 200, first.NumSimulations)
	assert.Len(t, first.Simulations, 200)
	assert.Equal(t, "340000", first.TotalInvestment.String())
}

func TestSimulateReturnRangeBounds(t *testing.T) {
	rr := stockRange()
	res, err := SimulateReturnRange(RangeSimulationConfig{Input: input(100000, 0, 5, 0), Range: rr, NumSimulations: 300, Seed: 1})
	require.NoError(t, err)

	p := res.Percentiles
	assert.True(t, p.P10.LessThanOrEqual(p.P25))
	assert.True(t, p.P25.LessThanOrEqual(p.P50))
	assert.True(t, p.P50.LessThanOrEqual(p.P75))
	assert.True(t, p.P75.LessThanOrEqual(p.P90))
	assert.True(t, p.P10.LessThan(p.P90), "a wide range must spread outcomes")

	floor := decimal.NewFromInt(59049) // 100000 * 0.9^5
	ceiling := decimal.NewFromInt(537824)
	for _, sim := range res.Simulations {
		require.Len(t, sim.YearOutcomes, 5)
		for _, y := range sim.YearOutcomes {
			assert.True(t, y.AnnualRatePercent.GreaterThanOrEqual(rr.Min) && y.AnnualRatePercent.LessThanOrEqual(rr.Max),
				"rate %s outside range", y.AnnualRatePercent)
		}
		assert.True(t, sim.EndingValue.GreaterThanOrEqual(floor) && sim.EndingValue.LessThanOrEqual(ceiling))
		assert.Equal(t, sim.EndingValue.LessThan(decimal.NewFromInt(100000)), sim.Loss)
	}
	assert.True(t, res.LossProbability.GreaterThanOrEqual(decimal.Zero) && res.LossProbability.LessThan(decimal.NewFromFloat(0.5)))
}

func TestSimulateReturnRangeDefaults(t *testing.T) {
	orig := seedFunc
	SetSeedFunc(func() int64 { return 99 })
	defer SetSeedFunc(orig)

	res, err := SimulateReturnRange(RangeSimulationConfig{Input: input(1000, 0, 1, 0), Range: stockRange()})
	require.NoError(t, err)
	assert.Equal(t, DefaultSimulations, res.NumSimulations)
	assert.Equal(t, int64(99), res.Seed)
}

func TestSimulateReturnRangeRejectsBadInput(t *testing.T) {
	_, err := SimulateReturnRange(RangeSimulationConfig{Input: input(1000, 0, 0, 0), Range: stockRange()})
	var horizonErr *InvalidHorizonError
	assert.True(t, errors.As(err, &horizonErr))

	inverted := domain.ReturnRange{Min: decimal.NewFromInt(20), Max: decimal.NewFromInt(5), Average: decimal.NewFromInt(10)}
	_, err = SimulateReturnRange(RangeSimulationConfig{Input: input(1000, 0, 3, 0), Range: inverted})
	var inputErr *InvalidInputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "return range", inputErr.Field)
}
