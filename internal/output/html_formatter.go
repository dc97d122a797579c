package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/sanchay/planner/internal/domain"
)

// HTMLFormatter produces a self-contained HTML report with a growth chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	"date": func(t interface{ Format(string) string }) string { return t.Format("2006-01-02") },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

type chartSeries struct {
	Years      []int    `json:"years"`
	Investment []string `json:"investment"`
	Value      []string `json:"value"`
}

func (h HTMLFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	series := chartSeries{}
	for _, row := range report.Result.YearlyBreakdown {
		series.Years = append(series.Years, row.Year)
		series.Investment = append(series.Investment, row.Investment.StringFixed(0))
		series.Value = append(series.Value, row.Value.StringFixed(0))
	}
	data := struct {
		*domain.ProjectionReport
		Heading     string
		Highlights  Highlights
		Assumptions []string
		Chart       chartSeries
	}{report, report.Title(), AnalyzeReport(report), GenerateAssumptions(report), series}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
