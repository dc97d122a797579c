package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/sanchay/planner/internal/domain"
)

// GenerateReport renders report in the named format and writes it to w.
func GenerateReport(w io.Writer, report *domain.ProjectionReport, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	if report == nil {
		return fmt.Errorf("nothing to report")
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// SaveReport renders report into a timestamped file in dir and returns its path.
func SaveReport(report *domain.ProjectionReport, format, dir string) (string, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return WriteFormatted(f, report, dir, FileExtension(format))
}
