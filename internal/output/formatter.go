package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sanchay/planner/internal/domain"
)

// ErrUnsupportedFormat is returned when no formatter matches the requested name.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// Formatter renders a projection report. Name is the canonical format id.
type Formatter interface {
	Format(report *domain.ProjectionReport) ([]byte, error)
	Name() string
}

// WriteFormatted renders report into dir. The file name carries the product
// id (or "projection") and the report timestamp.
func WriteFormatted(f Formatter, report *domain.ProjectionReport, dir, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	stem := "projection"
	if report.Option != nil {
		stem = report.Option.ID
	}
	stamp := report.GeneratedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(dir, fmt.Sprintf("sanchay_%s_%s.%s", stem, stamp.Format("20060102_150405"), ext))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

var builtInFormatters = []Formatter{
	ConsoleVerboseFormatter{},
	ConsoleFormatter{},
	CSVSummarizer{},
	CSVDetailedExporter{},
	HTMLFormatter{},
	JSONFormatter{},
	YAMLFormatter{},
}

// GetFormatterByName fetches a registered formatter.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap maps synonyms accepted on the command line to canonical names
var aliasMap = map[string]string{
	"console-verbose": "console",
	"verbose":         "console",
	"text":            "console",
	"summary":         "console-lite",
	"breakdown":       "csv",
	"csv-breakdown":   "csv",
	"detailed-csv":    "csv",
	"summary-csv":     "csv-summary",
	"html-report":     "html",
	"json-pretty":     "json",
	"yml":             "yaml",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists alias keys, sorted
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FileExtension maps a format to the extension SaveReport uses
func FileExtension(format string) string {
	switch n := NormalizeFormatName(format); n {
	case "console", "console-lite":
		return "txt"
	case "csv", "csv-summary":
		return "csv"
	default:
		return n
	}
}
