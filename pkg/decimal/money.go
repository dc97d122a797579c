package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol is the Bangladeshi taka sign used by Format.
const CurrencySymbol = "৳"

// Money represents a BDT amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromInt creates a new Money instance from a whole taka amount
func NewMoneyFromInt(value int64) Money {
	return Money{decimal.NewFromInt(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(value), ",", ""))
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds the money amount to poisha (two places)
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// RoundTaka rounds to the nearest whole taka, half away from zero
func (m Money) RoundTaka() Money {
	return Money{m.Decimal.Round(0)}
}

// Monthly converts an annual amount to monthly
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(decimal.NewFromInt(12))}
}

// Percent returns ratePercent% of the amount (ratePercent=5 means five percent)
func (m Money) Percent(ratePercent decimal.Decimal) Money {
	return Money{m.Decimal.Mul(ratePercent).Div(decimal.NewFromInt(100))}
}

// String returns the plain representation with two decimals
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders whole taka with lakh/crore digit grouping, e.g. ৳1,50,366.
func (m Money) Format() string {
	rounded := m.RoundTaka()
	digits := rounded.Decimal.Abs().StringFixed(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	return sign + CurrencySymbol + GroupDigits(digits)
}

// GroupDigits applies South Asian grouping to a string of digits: the last
// three digits form one group, everything before is grouped in pairs.
func GroupDigits(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(append(groups, tail), ",")
}
