package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sanchay/planner/internal/calculation"
	"github.com/sanchay/planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// buildTestReport projects the 5-year certificate with payout and tax
func buildTestReport(t *testing.T) *domain.ProjectionReport {
	t.Helper()
	rate := decimal.NewFromFloat(8.5)
	in := domain.ProjectionInput{
		Principal:         decimal.NewFromInt(100000),
		AnnualRatePercent: rate,
		HorizonYears:      5,
	}
	result, err := calculation.Project(in)
	require.NoError(t, err)
	tax, err := calculation.EstimateTax(domain.TaxGovernmentCertificate, in.Principal, rate)
	require.NoError(t, err)
	payout, err := calculation.CertificatePayout(in.Principal, rate, 5)
	require.NoError(t, err)
	return &domain.ProjectionReport{
		GeneratedAt:  time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
		MaturityDate: time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC),
		Option: &domain.InvestmentOption{
			ID:             "sanchayapatra-5y",
			Type:           domain.TypeSanchayapatra,
			Name:           "৫ বছর মেয়াদী বাংলাদেশ সঞ্চয়পত্র",
			NameEn:         "5-Year Bangladesh Sanchayapatra",
			Provider:       "Bangladesh Bank",
			RiskLevel:      domain.RiskLow,
			Tenure:         domain.TenureRange{Min: 5, Max: 5},
			ExpectedReturn: domain.FixedReturn(rate),
			TaxCategory:    domain.TaxGovernmentCertificate,
		},
		Input:  in,
		Result: *result,
		Tax:    &tax,
		Payout: payout,
	}
}

func TestConsoleLiteFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "Future value=৳1,50,366")
	assert.Contains(t, content, "Invested=৳1,00,000")
	assert.Contains(t, content, "Annual tax=৳425 at 5%")
}

func TestConsoleVerboseFormatter(t *testing.T) {
	out, err := ConsoleVerboseFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "5-YEAR BANGLADESH SANCHAYAPATRA")
	assert.Contains(t, content, "KEY ASSUMPTIONS:")
	assert.Contains(t, content, "Lump sum compounds annually at 8.5%")
	assert.Contains(t, content, "Maturity date:        2030-01-15")
	assert.Contains(t, content, "Monthly payout:       ৳708")
	assert.Contains(t, content, "Return after tax:     ৳48,241")
	assert.NotContains(t, content, "Money doubles by")

	// header row plus one line per year
	idx := strings.Index(content, "YEAR-BY-YEAR BREAKDOWN")
	require.GreaterOrEqual(t, idx, 0)
	tail := strings.Split(strings.TrimSpace(content[idx:]), "\n")
	assert.Len(t, tail, 3+5)
	assert.Contains(t, tail[len(tail)-1], "৳1,50,366")
}

func TestCSVDetailedExporter(t *testing.T) {
	out, err := CSVDetailedExporter{}.Format(buildTestReport(t))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 6, "header plus 5 years")
	assert.Equal(t, "1,100000,108500,8500,false", lines[1])
	assert.Equal(t, "5,100000,150366,50366,true", lines[5])
}

func TestCSVSummarizer(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestReport(t))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "5-Year Bangladesh Sanchayapatra,100000.00,0.00,8.5,5,150366,100000,50366,government-certificate,425", lines[1])
}

func TestJSONFormatterRoundTrip(t *testing.T) {
	report := buildTestReport(t)
	out, err := JSONFormatter{}.Format(report)
	require.NoError(t, err)

	var decoded domain.ProjectionReport
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.True(t, decoded.Result.FutureValue.Equal(report.Result.FutureValue))
	assert.Len(t, decoded.Result.YearlyBreakdown, 5)
	assert.Contains(t, string(out), `"future_value": "150366"`)
}

func TestYAMLFormatter(t *testing.T) {
	out, err := YAMLFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	var decoded domain.ProjectionReport
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, "150366", decoded.Result.FutureValue.String())
	require.NotNil(t, decoded.Tax)
	assert.Equal(t, domain.TaxGovernmentCertificate, decoded.Tax.Category)
}

// Golden snapshot tests (prefix-based) ensure key headers remain stable.
func TestGoldenSnapshots(t *testing.T) {
	cases := []struct {
		name      string
		golden    string
		formatter Formatter
	}{
		{"console_verbose", "console_verbose.golden", ConsoleVerboseFormatter{}},
		{"console_lite", "console_lite.golden", ConsoleFormatter{}},
		{"csv_summary", "csv_summary.golden", CSVSummarizer{}},
		{"csv_detailed", "csv_detailed.golden", CSVDetailedExporter{}},
		{"html", "html_prefix.golden", HTMLFormatter{}},
	}

	report := buildTestReport(t)
	update := os.Getenv("UPDATE_GOLDEN") == "1"
	for _, tc := range cases {
		out, err := tc.formatter.Format(report)
		if err != nil {
			t.Fatalf("%s: format error: %v", tc.name, err)
		}
		goldenPath := filepath.Join("testdata", tc.golden)
		if update {
			// only first line to keep golden small & stable
			line := firstLine(string(out)) + "\n"
			if err := os.WriteFile(goldenPath, []byte(line), 0644); err != nil {
				t.Fatalf("%s: update golden failed: %v", tc.name, err)
			}
		}
		data, err := os.ReadFile(goldenPath)
		if err != nil {
			t.Fatalf("%s: read golden: %v", tc.name, err)
		}
		if !strings.HasPrefix(string(out), strings.TrimSpace(string(data))) {
			t.Fatalf("%s: output does not match golden prefix %q", tc.name, strings.TrimSpace(string(data)))
		}
	}
}

func TestHTMLFormatterBasic(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "<h1>5-Year Bangladesh Sanchayapatra</h1>")
	assert.Contains(t, content, "Year-by-Year Breakdown")
	assert.Contains(t, content, "৳1,50,366")
	assert.Contains(t, content, "2030-01-15")
	assert.Contains(t, content, `"years":[1,2,3,4,5]`)
}

func TestHTMLAssumptionsSectionPresent(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "Key Assumptions")
	assert.Contains(t, content, "Amounts are rounded to whole taka")
}

func TestHTMLWithoutOptionOrTax(t *testing.T) {
	report := buildTestReport(t)
	report.Option = nil
	report.Tax = nil
	report.Payout = nil
	out, err := HTMLFormatter{}.Format(report)
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "<h1>Investment Projection</h1>")
	assert.NotContains(t, content, "Tax Estimate")
	assert.NotContains(t, content, "Monthly Profit Payout")
}

func TestGenerateAssumptionsForContributions(t *testing.T) {
	report := &domain.ProjectionReport{
		Input: domain.ProjectionInput{
			AnnualRatePercent:   decimal.NewFromInt(12),
			HorizonYears:        5,
			MonthlyContribution: decimal.NewFromInt(5000),
			ContributionTiming:  domain.TimingStart,
		},
		Option: &domain.InvestmentOption{
			ExpectedReturn: domain.ReturnRange{Min: decimal.NewFromInt(8), Max: decimal.NewFromInt(15), Average: decimal.NewFromInt(12)},
		},
	}
	got := GenerateAssumptions(report)
	assert.Contains(t, got, "Monthly contributions of ৳5,000 credited at the start of each month, compounding at 1.0000% per month")
	assert.Contains(t, got, "Return varies between 8-15%; the average is used")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func TestFormatterAliasResolution(t *testing.T) {
	tests := map[string]string{
		"console-verbose": "console",
		"TEXT":            "console",
		"summary":         "console-lite",
		"detailed-csv":    "csv",
		"yml":             "yaml",
		"html":            "html",
	}
	for alias, want := range tests {
		f := GetFormatterByName(alias)
		require.NotNil(t, f, "alias %s did not resolve to a formatter", alias)
		assert.Equal(t, want, f.Name())
	}
	assert.Nil(t, GetFormatterByName("pdf"))
}

func TestAvailableFormatterNames(t *testing.T) {
	assert.Equal(t, []string{"console", "console-lite", "csv", "csv-summary", "html", "json", "yaml"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "yml")
}

func TestFileExtension(t *testing.T) {
	assert.Equal(t, "txt", FileExtension("console"))
	assert.Equal(t, "txt", FileExtension("summary"))
	assert.Equal(t, "csv", FileExtension("csv-summary"))
	assert.Equal(t, "html", FileExtension("html-report"))
	assert.Equal(t, "yaml", FileExtension("yml"))
}

func TestUnknownFormatErrorIncludesSuggestions(t *testing.T) {
	var buf bytes.Buffer
	err := GenerateReport(&buf, buildTestReport(t), "definitely-not-a-format")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	msg := err.Error()
	assert.Contains(t, msg, "unsupported report format")
	assert.Contains(t, msg, "Try one of:")
	assert.Zero(t, buf.Len())
}
