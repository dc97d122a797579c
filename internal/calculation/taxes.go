package calculation

import (
	"strings"

	"github.com/sanchay/planner/internal/domain"
	pkgdecimal "github.com/sanchay/planner/pkg/decimal"
	"github.com/shopspring/decimal"
)

// TAX ESTIMATION ASSUMPTIONS:
//
// 1. Government certificates: source tax on profit, 5% up to the threshold
//    (500,000 taka by default) and 10% above it.
// 2. Fixed deposits: 10% with a TIN, 15% without, unless the product carries its own rate.
// 3. Equities: capital gains of individual retail investors are exempt.
// 4. Everything else has no tax information and estimates to zero.

// taxRule resolves the applicable rate and descriptions for a request
type taxRule func(rules domain.TaxRules, req domain.TaxRequest) (rate decimal.Decimal, desc, descBn string)

// taxRuleTable is the closed dispatch over domain.TaxCategory
var taxRuleTable = map[domain.TaxCategory]taxRule{
	domain.TaxGovernmentCertificate: func(rules domain.TaxRules, req domain.TaxRequest) (decimal.Decimal, string, string) {
		if req.Amount.LessThanOrEqual(rules.CertificateThreshold) {
			return rules.CertificateLowRatePercent,
				"source tax of " + rules.CertificateLowRatePercent.String() + "% for holdings up to " + rules.CertificateThreshold.StringFixed(0),
				bnAmount(rules.CertificateThreshold) + " পর্যন্ত " + bnPercent(rules.CertificateLowRatePercent) + " কর কর্তন"
		}
		return rules.CertificateHighRatePercent,
			"source tax of " + rules.CertificateHighRatePercent.String() + "% for holdings above " + rules.CertificateThreshold.StringFixed(0),
			bnAmount(rules.CertificateThreshold) + "র বেশি " + bnPercent(rules.CertificateHighRatePercent) + " কর কর্তন"
	},
	domain.TaxFixedDeposit: func(rules domain.TaxRules, req domain.TaxRequest) (decimal.Decimal, string, string) {
		if req.FixedDepositRatePercent != nil {
			return *req.FixedDepositRatePercent, "product withholding rate of " + req.FixedDepositRatePercent.String() + "%",
				"পণ্যের নির্ধারিত হারে " + bnPercent(*req.FixedDepositRatePercent) + " কর কর্তন"
		}
		bn := "টিন থাকলে " + bnPercent(rules.FixedDepositTINRatePercent) + ", না থাকলে " + bnPercent(rules.FixedDepositNonTINRatePercent) + " কর কর্তন"
		if req.HasTIN {
			return rules.FixedDepositTINRatePercent, "TIN holder withholding rate of " + rules.FixedDepositTINRatePercent.String() + "%", bn
		}
		return rules.FixedDepositNonTINRatePercent, "withholding rate of " + rules.FixedDepositNonTINRatePercent.String() + "% without a TIN", bn
	},
	domain.TaxEquity: func(domain.TaxRules, domain.TaxRequest) (decimal.Decimal, string, string) {
		return decimal.Zero, "capital gains exempt for individual retail investors", "ব্যক্তিগত বিনিয়োগকারীদের জন্য ক্যাপিটাল গেইন কর মুক্ত"
	},
	domain.TaxOther: otherTaxRule,
}

var bnDigitReplacer = strings.NewReplacer(
	"0", "০", "1", "১", "2", "২", "3", "৩", "4", "৪",
	"5", "৫", "6", "৬", "7", "৭", "8", "৮", "9", "৯",
)

var lakh = decimal.NewFromInt(100000)

// bnPercent renders a rate in Bengali digits, e.g. 12.5 as ১২.৫%
func bnPercent(rate decimal.Decimal) string {
	return bnDigitReplacer.Replace(rate.String()) + "%"
}

// bnAmount renders whole lakhs as "৫ লক্ষ টাকা" and anything else with
// lakh/crore grouping
func bnAmount(amount decimal.Decimal) string {
	if amount.IsPositive() && amount.Mod(lakh).IsZero() {
		return bnDigitReplacer.Replace(amount.Div(lakh).String()) + " লক্ষ টাকা"
	}
	return bnDigitReplacer.Replace(pkgdecimal.GroupDigits(amount.Abs().Round(0).String())) + " টাকা"
}

func otherTaxRule(domain.TaxRules, domain.TaxRequest) (decimal.Decimal, string, string) {
	return decimal.Zero, "no tax information available", "কর তথ্য উপলব্ধ নেই"
}

// ParseTaxCategory maps a user supplied tag onto the closed category set.
// Unknown tags return domain.TaxOther together with an *UnknownCategoryError.
func ParseTaxCategory(tag string) (domain.TaxCategory, error) {
	normalized := strings.ToLower(strings.TrimSpace(tag))
	normalized = strings.ReplaceAll(normalized, "_", "-")
	if alias, ok := taxCategoryAliases[normalized]; ok {
		return alias, nil
	}
	category := domain.TaxCategory(normalized)
	if _, ok := taxRuleTable[category]; ok {
		return category, nil
	}
	return domain.TaxOther, &UnknownCategoryError{Category: tag}
}

var taxCategoryAliases = map[string]domain.TaxCategory{
	"sanchayapatra": domain.TaxGovernmentCertificate,
	"certificate":   domain.TaxGovernmentCertificate,
	"fdr":           domain.TaxFixedDeposit,
	"stock":         domain.TaxEquity,
	"stocks":        domain.TaxEquity,
	"":              domain.TaxOther,
}

// TaxCalculator estimates withholding tax from a static rule table
type TaxCalculator struct {
	Rules domain.TaxRules
}

// NewTaxCalculator creates a calculator with the default rates
func NewTaxCalculator() *TaxCalculator {
	return &TaxCalculator{Rules: domain.DefaultTaxRules()}
}

// NewTaxCalculatorWithConfig creates a calculator with configured rates
func NewTaxCalculatorWithConfig(rules domain.TaxRules) *TaxCalculator {
	return &TaxCalculator{Rules: rules}
}

// EstimateTax returns the rate, annual tax and description for req.
// annualTax = amount * expectedReturn/100 * rate/100, rounded to whole taka.
func (tc *TaxCalculator) EstimateTax(req domain.TaxRequest) (domain.TaxInfo, error) {
	if req.Amount.IsNegative() {
		return domain.TaxInfo{}, &InvalidInputError{Field: "amount", Value: req.Amount.String(), Reason: "cannot be negative"}
	}
	rule, ok := taxRuleTable[req.Category]
	if !ok {
		rule = otherTaxRule
		req.Category = domain.TaxOther
	}
	rate, desc, descBn := rule(tc.Rules, req)
	annualTax := req.Amount.
		Mul(req.ExpectedReturnPercent).Div(hundred).
		Mul(rate).Div(hundred).
		Round(0)
	if annualTax.IsNegative() {
		// a loss carries no withholding
		annualTax = decimal.Zero
	}
	return domain.TaxInfo{
		Category:       req.Category,
		TaxRatePercent: rate,
		AnnualTax:      annualTax,
		Description:    desc,
		DescriptionBn:  descBn,
	}, nil
}

// EstimateTax runs the default table; see TaxCalculator.EstimateTax
func EstimateTax(category domain.TaxCategory, amount, expectedReturnPercent decimal.Decimal) (domain.TaxInfo, error) {
	return NewTaxCalculator().EstimateTax(domain.TaxRequest{
		Category:              category,
		Amount:                amount,
		ExpectedReturnPercent: expectedReturnPercent,
	})
}
