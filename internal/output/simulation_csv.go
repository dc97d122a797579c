package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sanchay/planner/internal/calculation"
	"github.com/shopspring/decimal"
)

// SimulationCSVReport exports return range simulation results
type SimulationCSVReport struct {
	Result *calculation.RangeSimulationResult
	Label  string
}

// WriteSummaryCSV writes aggregate statistics
func (s *SimulationCSVReport) WriteSummaryCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"Metric", "Value", "Description"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	r := s.Result
	rows := [][]string{
		{"Product", s.Label, "Simulated investment"},
		{"Number of Simulations", strconv.Itoa(r.NumSimulations), "Total number of paths run"},
		{"Seed", strconv.FormatInt(r.Seed, 10), "Random seed, rerun with it to reproduce"},
		{"Horizon Years", strconv.Itoa(r.HorizonYears), "Years simulated per path"},
		{"Total Investment", r.TotalInvestment.StringFixed(0), "Principal plus all installments"},
		{"Projected Value", r.DeterministicValue.StringFixed(0), "Future value at the average rate"},
		{"Median Value", r.MedianEndingValue.StringFixed(0), "Median ending value"},
		{"Loss Probability", percentOf(r.LossProbability), "Share of paths ending below the amount invested"},
		{"Median Max Drawdown", percentOf(r.MedianMaxDrawdown), "Median worst peak-to-trough fall"},
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write data row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteDetailedCSV writes one row per simulated path
func (s *SimulationCSVReport) WriteDetailedCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	header := []string{"Simulation", "EndingValue", "Loss", "MaxDrawdown"}
	for y := 1; y <= s.Result.HorizonYears; y++ {
		header = append(header, fmt.Sprintf("Year%dRate", y))
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, sim := range s.Result.Simulations {
		row := []string{
			strconv.Itoa(i + 1),
			sim.EndingValue.StringFixed(0),
			strconv.FormatBool(sim.Loss),
			sim.MaxDrawdown.StringFixed(4),
		}
		for _, y := range sim.YearOutcomes {
			row = append(row, y.AnnualRatePercent.StringFixed(2))
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write simulation row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WritePercentileCSV writes the ending value distribution
func (s *SimulationCSVReport) WritePercentileCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"Percentile", "EndingValue", "Interpretation"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	p := s.Result.Percentiles
	rows := [][]string{
		{"10th", p.P10.StringFixed(0), "Worst 10% of scenarios"},
		{"25th", p.P25.StringFixed(0), "Below average scenarios"},
		{"50th (Median)", p.P50.StringFixed(0), "Typical scenario"},
		{"75th", p.P75.StringFixed(0), "Above average scenarios"},
		{"90th", p.P90.StringFixed(0), "Best 10% of scenarios"},
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write percentile row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// GenerateAllCSVReports writes the three reports into outputDir
func (s *SimulationCSVReport) GenerateAllCSVReports(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"simulation_summary.csv", s.WriteSummaryCSV},
		{"simulation_detailed.csv", s.WriteDetailedCSV},
		{"simulation_percentiles.csv", s.WritePercentileCSV},
	}
	for _, f := range files {
		if err := writeCSVFile(filepath.Join(outputDir, f.name), f.write); err != nil {
			return fmt.Errorf("failed to generate %s: %w", f.name, err)
		}
	}
	return nil
}

func writeCSVFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// percentOf renders a 0..1 fraction as a percentage
func percentOf(fraction decimal.Decimal) string {
	return FormatPercentage(fraction.Mul(decimal.NewFromInt(100)))
}
