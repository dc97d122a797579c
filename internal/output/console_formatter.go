package output

import (
	"bytes"
	"fmt"

	"github.com/sanchay/planner/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	res := report.Result
	fmt.Fprintf(&buf, "%s: %d years at %s%%\n", report.Title(), report.Input.HorizonYears, report.Input.AnnualRatePercent.String())
	fmt.Fprintf(&buf, "  Future value=%s Invested=%s Return=%s (%s)\n",
		FormatCurrency(res.FutureValue),
		FormatCurrency(res.TotalInvestment),
		FormatCurrency(res.TotalReturn),
		FormatPercentage(res.ReturnPercent()),
	)
	if report.Tax != nil {
		fmt.Fprintf(&buf, "  Annual tax=%s at %s%%\n", FormatCurrency(report.Tax.AnnualTax), report.Tax.TaxRatePercent.String())
	}
	return buf.Bytes(), nil
}
