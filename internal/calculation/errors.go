package calculation

import (
	"fmt"

	"github.com/sanchay/planner/internal/domain"
)

// InvalidHorizonError reports a horizon outside 1..MaxYears
type InvalidHorizonError struct {
	Years    int
	MaxYears int // zero when no cap applies
}

func (e *InvalidHorizonError) Error() string {
	if e.MaxYears > 0 && e.Years > e.MaxYears {
		return fmt.Sprintf("invalid horizon: %d years exceeds the maximum of %d", e.Years, e.MaxYears)
	}
	return fmt.Sprintf("invalid horizon: %d years, must be at least 1", e.Years)
}

// InvalidInputError reports a malformed numeric input reaching the engine
type InvalidInputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// UnknownCategoryError reports a tax category outside the recognized set.
// Estimation is advisory, so callers fall back to domain.TaxOther.
type UnknownCategoryError struct {
	Category string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown tax category %q, using %q", e.Category, domain.TaxOther)
}
