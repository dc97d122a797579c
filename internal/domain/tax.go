package domain

import "github.com/shopspring/decimal"

// TaxCategory is the closed set of tax treatments known to the estimator
type TaxCategory string

const (
	TaxGovernmentCertificate TaxCategory = "government-certificate"
	TaxFixedDeposit          TaxCategory = "fixed-deposit"
	TaxEquity                TaxCategory = "equity"
	TaxOther                 TaxCategory = "other"
)

// AllTaxCategories lists every category in display order
var AllTaxCategories = []TaxCategory{
	TaxGovernmentCertificate,
	TaxFixedDeposit,
	TaxEquity,
	TaxOther,
}

// TaxRules holds the configurable rates behind the static tax table.
// Rates are percentages (5 means 5%).
type TaxRules struct {
	CertificateThreshold          decimal.Decimal `yaml:"certificate_threshold" json:"certificate_threshold"`
	CertificateLowRatePercent     decimal.Decimal `yaml:"certificate_low_rate_percent" json:"certificate_low_rate_percent"`
	CertificateHighRatePercent    decimal.Decimal `yaml:"certificate_high_rate_percent" json:"certificate_high_rate_percent"`
	FixedDepositTINRatePercent    decimal.Decimal `yaml:"fixed_deposit_tin_rate_percent" json:"fixed_deposit_tin_rate_percent"`
	FixedDepositNonTINRatePercent decimal.Decimal `yaml:"fixed_deposit_non_tin_rate_percent" json:"fixed_deposit_non_tin_rate_percent"`
}

// DefaultTaxRules returns the source withholding rates used when nothing is configured
func DefaultTaxRules() TaxRules {
	return TaxRules{
		CertificateThreshold:          decimal.NewFromInt(500000),
		CertificateLowRatePercent:     decimal.NewFromInt(5),
		CertificateHighRatePercent:    decimal.NewFromInt(10),
		FixedDepositTINRatePercent:    decimal.NewFromInt(10),
		FixedDepositNonTINRatePercent: decimal.NewFromInt(15),
	}
}

// TaxRequest carries the inputs of a tax estimate
type TaxRequest struct {
	Category              TaxCategory     `yaml:"category" json:"category"`
	Amount                decimal.Decimal `yaml:"amount" json:"amount"`
	ExpectedReturnPercent decimal.Decimal `yaml:"expected_return_percent" json:"expected_return_percent"`
	// HasTIN selects the fixed-deposit rate for taxpayer ID holders
	HasTIN bool `yaml:"has_tin" json:"has_tin"`
	// FixedDepositRatePercent overrides the TIN based rate when the product carries its own
	FixedDepositRatePercent *decimal.Decimal `yaml:"fixed_deposit_rate_percent,omitempty" json:"fixed_deposit_rate_percent,omitempty"`
}

// TaxInfo is the result of a tax estimate
type TaxInfo struct {
	Category       TaxCategory     `yaml:"category" json:"category"`
	TaxRatePercent decimal.Decimal `yaml:"tax_rate_percent" json:"tax_rate_percent"`
	AnnualTax      decimal.Decimal `yaml:"annual_tax" json:"annual_tax"`
	Description    string          `yaml:"description" json:"description"`
	DescriptionBn  string          `yaml:"description_bn" json:"description_bn"`
}
