package output

import (
	"bytes"
	"encoding/csv"

	"github.com/sanchay/planner/internal/domain"
)

// CSVSummarizer implements the one-row summary CSV output.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv-summary" }

func (c CSVSummarizer) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Product", "Principal", "MonthlyContribution", "AnnualRatePercent", "HorizonYears", "FutureValue", "TotalInvestment", "TotalReturn", "TaxCategory", "AnnualTax"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	in, res := report.Input, report.Result
	category, annualTax := "", ""
	if report.Tax != nil {
		category = string(report.Tax.Category)
		annualTax = report.Tax.AnnualTax.StringFixed(0)
	}
	row := []string{
		report.Title(),
		in.Principal.StringFixed(2),
		in.MonthlyContribution.StringFixed(2),
		in.AnnualRatePercent.String(),
		intToString(in.HorizonYears),
		res.FutureValue.StringFixed(0),
		res.TotalInvestment.StringFixed(0),
		res.TotalReturn.StringFixed(0),
		category,
		annualTax,
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
