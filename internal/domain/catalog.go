package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InvestmentType identifies a product family
type InvestmentType string

const (
	TypeSanchayapatra InvestmentType = "sanchayapatra"
	TypeDPS           InvestmentType = "dps"
	TypeFixedDeposit  InvestmentType = "fixed_deposit"
	TypeMutualFund    InvestmentType = "mutual_fund"
	TypeStock         InvestmentType = "stock"
)

// RiskLevel grades a product's volatility
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// PaymentStructure says whether a product is bought once or paid monthly
type PaymentStructure string

const (
	PaymentLumpSum PaymentStructure = "lumpsum"
	PaymentMonthly PaymentStructure = "monthly"
)

// ReturnRange is the canonical expected-return shape. Projections use Average.
type ReturnRange struct {
	Min     decimal.Decimal `yaml:"min" json:"min"`
	Max     decimal.Decimal `yaml:"max" json:"max"`
	Average decimal.Decimal `yaml:"average" json:"average"`
}

// FixedReturn builds a range where min, max and average coincide
func FixedReturn(rate decimal.Decimal) ReturnRange {
	return ReturnRange{Min: rate, Max: rate, Average: rate}
}

// IsFixed reports whether the range collapses to a single rate
func (rr ReturnRange) IsFixed() bool {
	return rr.Min.Equal(rr.Max)
}

// String renders "8.5%" or "-10-40%"
func (rr ReturnRange) String() string {
	if rr.IsFixed() {
		return rr.Average.String() + "%"
	}
	return fmt.Sprintf("%s-%s%%", rr.Min.String(), rr.Max.String())
}

// TenureRange bounds the holding period in whole years
type TenureRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// Contains reports whether years lies within the range
func (tr TenureRange) Contains(years int) bool {
	return years >= tr.Min && years <= tr.Max
}

// InvestmentOption is one product in the catalog
type InvestmentOption struct {
	ID               string           `yaml:"id" json:"id"`
	Type             InvestmentType   `yaml:"type" json:"type"`
	Name             string           `yaml:"name" json:"name"`
	NameEn           string           `yaml:"name_en" json:"name_en"`
	Provider         string           `yaml:"provider" json:"provider"`
	Description      string           `yaml:"description,omitempty" json:"description,omitempty"`
	RiskLevel        RiskLevel        `yaml:"risk_level" json:"risk_level"`
	Tenure           TenureRange      `yaml:"tenure" json:"tenure"`
	MinInvestment    decimal.Decimal  `yaml:"min_investment" json:"min_investment"`
	MaxInvestment    decimal.Decimal  `yaml:"max_investment,omitempty" json:"max_investment,omitempty"`
	ExpectedReturn   ReturnRange      `yaml:"expected_return" json:"expected_return"`
	PaymentStructure PaymentStructure `yaml:"payment_structure" json:"payment_structure"`
	TaxCategory      TaxCategory      `yaml:"tax_category" json:"tax_category"`
	// FixedDepositTaxRate is a product specific withholding rate in percent
	FixedDepositTaxRate *decimal.Decimal `yaml:"fixed_deposit_tax_rate,omitempty" json:"fixed_deposit_tax_rate,omitempty"`
	Features            []string         `yaml:"features,omitempty" json:"features,omitempty"`
}

// IsMonthly reports whether the product is funded by monthly installments
func (io InvestmentOption) IsMonthly() bool {
	return io.PaymentStructure == PaymentMonthly
}
