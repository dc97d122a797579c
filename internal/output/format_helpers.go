package output

import (
	"strconv"

	pkgdecimal "github.com/sanchay/planner/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as whole taka with lakh/crore grouping.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string {
	return pkgdecimal.NewMoneyFromDecimal(amount).Format()
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
