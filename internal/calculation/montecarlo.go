package calculation

import (
	"math"
	"math/rand"
	"sort"
	"sync"

	"github.com/sanchay/planner/internal/domain"
	"github.com/shopspring/decimal"
)

// RANGE SIMULATION ASSUMPTIONS:
//
// 1. Products with a return range (mutual funds, stocks) draw one annual rate
//    per year from a normal distribution centred on the average, with a
//    standard deviation of a quarter of the range, clamped to [min, max].
// 2. Within a year the lump sum compounds once and contributions compound
//    monthly at the drawn rate, the same way the deterministic projection does.
//    A fixed range therefore reproduces the deterministic future value.
// 3. Each simulation has its own seeded source, so a given seed always yields
//    the same outcomes regardless of scheduling.

// DefaultSimulations is the number of paths run when none is configured
const DefaultSimulations = 1000

// maxConcurrentSimulations bounds the worker goroutines
const maxConcurrentSimulations = 10

// RangeSimulationConfig describes one simulation run
type RangeSimulationConfig struct {
	Input          domain.ProjectionInput
	Range          domain.ReturnRange
	NumSimulations int
	Seed           int64
}

// SimulationOutcome is a single simulated path
type SimulationOutcome struct {
	YearOutcomes []YearOutcome   `json:"year_outcomes"`
	EndingValue  decimal.Decimal `json:"ending_value"`
	Loss         bool            `json:"loss"`
	MaxDrawdown  decimal.Decimal `json:"max_drawdown"`
}

// YearOutcome is one year of a simulated path
type YearOutcome struct {
	Year              int             `json:"year"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	Value             decimal.Decimal `json:"value"`
}

// PercentileRanges summarises the distribution of ending values
type PercentileRanges struct {
	P10 decimal.Decimal `json:"p10"`
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`
}

// RangeSimulationResult aggregates all simulated paths. DeterministicValue
// is the projection at the range average, for comparison.
type RangeSimulationResult struct {
	Simulations        []SimulationOutcome `json:"simulations"`
	NumSimulations     int                 `json:"num_simulations"`
	HorizonYears       int                 `json:"horizon_years"`
	Seed               int64               `json:"seed"`
	TotalInvestment    decimal.Decimal     `json:"total_investment"`
	DeterministicValue decimal.Decimal     `json:"deterministic_value"`
	LossProbability    decimal.Decimal     `json:"loss_probability"`
	MedianEndingValue  decimal.Decimal     `json:"median_ending_value"`
	MedianMaxDrawdown  decimal.Decimal     `json:"median_max_drawdown"`
	Percentiles        PercentileRanges    `json:"percentiles"`
}

// SimulateReturnRange runs NumSimulations paths of cfg.Input with yearly
// rates drawn from cfg.Range.
func SimulateReturnRange(cfg RangeSimulationConfig) (*RangeSimulationResult, error) {
	in := cfg.Input
	in.AnnualRatePercent = cfg.Range.Average
	if err := ValidateProjectionInput(in); err != nil {
		return nil, err
	}
	if cfg.Range.Min.GreaterThan(cfg.Range.Max) || cfg.Range.Min.LessThan(minRatePerc) {
		return nil, &InvalidInputError{Field: "return range", Value: cfg.Range.String(), Reason: "min must be at least -100% and not above max"}
	}
	if cfg.NumSimulations <= 0 {
		cfg.NumSimulations = DefaultSimulations
	}
	if cfg.Seed == 0 {
		cfg.Seed = seedFunc()
	}

	results := make([]SimulationOutcome, cfg.NumSimulations)
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxConcurrentSimulations)
	for i := 0; i < cfg.NumSimulations; i++ {
		wg.Add(1)
		go func(simIndex int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			rng := rand.New(rand.NewSource(cfg.Seed + int64(simIndex)))
			results[simIndex] = runSinglePath(in, cfg.Range, rng)
		}(i)
	}
	wg.Wait()

	deterministic := valueAt(in, in.HorizonYears).Round(0)
	totalInvestment := contributedBy(in, in.HorizonYears).Round(0)

	losses := 0
	endings := make([]decimal.Decimal, len(results))
	drawdowns := make([]decimal.Decimal, len(results))
	for i, r := range results {
		if r.Loss {
			losses++
		}
		endings[i] = r.EndingValue
		drawdowns[i] = r.MaxDrawdown
	}
	sortDecimals(endings)
	sortDecimals(drawdowns)
	n := len(endings)

	return &RangeSimulationResult{
		Simulations:        results,
		NumSimulations:     cfg.NumSimulations,
		HorizonYears:       in.HorizonYears,
		Seed:               cfg.Seed,
		TotalInvestment:    totalInvestment,
		DeterministicValue: deterministic,
		LossProbability:    decimal.NewFromInt(int64(losses)).Div(decimal.NewFromInt(int64(n))),
		MedianEndingValue:  endings[n/2],
		MedianMaxDrawdown:  drawdowns[n/2],
		Percentiles: PercentileRanges{
			P10: endings[n/10],
			P25: endings[n/4],
			P50: endings[n/2],
			P75: endings[3*n/4],
			P90: endings[9*n/10],
		},
	}, nil
}

// runSinglePath walks one path year by year. The lump sum and the
// contribution pot are tracked apart because they compound differently.
func runSinglePath(in domain.ProjectionInput, rr domain.ReturnRange, rng *rand.Rand) SimulationOutcome {
	lump := in.Principal
	pot := decimal.Zero
	invested := in.Principal
	yearly := in.MonthlyContribution.Mul(twelve)
	peak := decimal.Zero
	maxDrawdown := decimal.Zero
	outcomes := make([]YearOutcome, 0, in.HorizonYears)

	for year := 1; year <= in.HorizonYears; year++ {
		rate := sampleRate(rr, rng)
		lump = lump.Mul(one.Add(rate.Div(hundred))).Round(8)
		monthly := one.Add(MonthlyRate(rate)).Pow(twelve)
		pot = pot.Mul(monthly).Add(AnnuityFutureValue(in.MonthlyContribution, rate, 12, in.ContributionTiming)).Round(8)
		invested = invested.Add(yearly)

		value := lump.Add(pot)
		if value.GreaterThan(peak) {
			peak = value
		} else if peak.IsPositive() {
			if dd := peak.Sub(value).Div(peak); dd.GreaterThan(maxDrawdown) {
				maxDrawdown = dd
			}
		}
		outcomes = append(outcomes, YearOutcome{Year: year, AnnualRatePercent: rate, Value: value.Round(0)})
	}

	ending := lump.Add(pot).Round(0)
	return SimulationOutcome{
		YearOutcomes: outcomes,
		EndingValue:  ending,
		Loss:         ending.LessThan(invested.Round(0)),
		MaxDrawdown:  maxDrawdown.Round(4),
	}
}

// sampleRate draws one annual rate in percent
func sampleRate(rr domain.ReturnRange, rng *rand.Rand) decimal.Decimal {
	if rr.IsFixed() {
		return rr.Average
	}
	stdDev := rr.Max.Sub(rr.Min).Div(decimal.NewFromInt(4))
	z := boxMullerTransform(1-rng.Float64(), rng.Float64())
	rate := rr.Average.Add(decimal.NewFromFloat(z).Mul(stdDev)).Round(2)
	if rate.LessThan(rr.Min) {
		return rr.Min
	}
	if rate.GreaterThan(rr.Max) {
		return rr.Max
	}
	return rate
}

// boxMullerTransform maps two uniforms in (0,1] and [0,1) to a standard normal
func boxMullerTransform(u1, u2 float64) float64 {
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

func sortDecimals(ds []decimal.Decimal) {
	sort.Slice(ds, func(i, j int) bool { return ds[i].LessThan(ds[j]) })
}
