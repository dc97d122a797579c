package output

import (
	"bytes"
	"encoding/csv"

	"github.com/sanchay/planner/internal/domain"
)

// CSVDetailedExporter provides the year-by-year projection series.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "csv" }

func (c CSVDetailedExporter) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "Investment", "Value", "Gain", "Matured"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	last := len(report.Result.YearlyBreakdown)
	for _, yr := range report.Result.YearlyBreakdown {
		row := []string{
			intToString(yr.Year),
			yr.Investment.StringFixed(0),
			yr.Value.StringFixed(0),
			yr.Gain().StringFixed(0),
			boolToString(yr.Year == last),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
