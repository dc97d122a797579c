package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sanchay/planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	all := c.All()
	assert.Len(t, all, 8)

	fiveYear, err := c.ByID("sanchayapatra-5y")
	require.NoError(t, err)
	assert.Equal(t, "8.5", fiveYear.ExpectedReturn.Average.String())
	assert.Equal(t, domain.TaxGovernmentCertificate, fiveYear.TaxCategory)
	assert.Equal(t, "3000000", fiveYear.MaxInvestment.String())
	assert.Equal(t, 5, fiveYear.Tenure.Min)
	assert.NotEmpty(t, fiveYear.Features)

	stock, err := c.ByID("stock")
	require.NoError(t, err)
	assert.Equal(t, "-10-40%", stock.ExpectedReturn.String())
	assert.Equal(t, domain.RiskHigh, stock.RiskLevel)

	dps, err := c.ByID("dps")
	require.NoError(t, err)
	assert.True(t, dps.IsMonthly())

	assert.Len(t, c.ByType(domain.TypeSanchayapatra), 4)
	assert.Len(t, c.ByType(domain.TypeStock), 1)
	assert.Empty(t, c.ByType(domain.InvestmentType("gold")))
}

func TestByIDUnknown(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	_, err = c.ByID("prize-bond")
	assert.True(t, errors.Is(err, ErrUnknownOption))
}

func TestAllReturnsCopy(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	all := c.All()
	all[0].ID = "mutated"
	first, err := c.ByID("sanchayapatra-5y")
	require.NoError(t, err)
	assert.Equal(t, "sanchayapatra-5y", first.ID)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "Empty catalog",
			yaml:    "products: []",
			wantErr: "no products",
		},
		{
			name: "Duplicate id",
			yaml: `products:
  - {id: a, type: dps, name_en: A, tenure: {min: 1, max: 2}, payment_structure: monthly, tax_category: other}
  - {id: a, type: dps, name_en: B, tenure: {min: 1, max: 2}, payment_structure: monthly, tax_category: other}`,
			wantErr: "duplicate product id",
		},
		{
			name:    "Unknown type",
			yaml:    `products: [{id: a, type: gold, name_en: A, tenure: {min: 1, max: 2}, payment_structure: monthly, tax_category: other}]`,
			wantErr: "unknown type",
		},
		{
			name:    "Inverted tenure",
			yaml:    `products: [{id: a, type: dps, name_en: A, tenure: {min: 5, max: 2}, payment_structure: monthly, tax_category: other}]`,
			wantErr: "invalid tenure",
		},
		{
			name:    "Average outside range",
			yaml:    `products: [{id: a, type: stock, name_en: A, tenure: {min: 1, max: 2}, expected_return: {min: 1, max: 5, average: 9}, payment_structure: lumpsum, tax_category: equity}]`,
			wantErr: "min <= average <= max",
		},
		{
			name:    "Unknown tax category",
			yaml:    `products: [{id: a, type: dps, name_en: A, tenure: {min: 1, max: 2}, payment_structure: monthly, tax_category: zakat}]`,
			wantErr: "unknown tax category",
		},
		{
			name:    "Malformed YAML",
			yaml:    "products: [",
			wantErr: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.yaml")
	data := `products:
  - id: fdr-city
    type: fixed_deposit
    name_en: City Bank FDR
    tenure: {min: 1, max: 3}
    min_investment: 50000
    expected_return: {min: 9.5, max: 9.5, average: 9.5}
    payment_structure: lumpsum
    tax_category: fixed-deposit
    fixed_deposit_tax_rate: 12.5
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	fdr, err := c.ByID("fdr-city")
	require.NoError(t, err)
	require.NotNil(t, fdr.FixedDepositTaxRate)
	assert.Equal(t, "12.5", fdr.FixedDepositTaxRate.String())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateAmount(t *testing.T) {
	option := domain.InvestmentOption{
		NameEn:        "5-Year Bangladesh Sanchayapatra",
		MinInvestment: decimal.NewFromInt(1000),
		MaxInvestment: decimal.NewFromInt(3000000),
	}
	assert.NoError(t, ValidateAmount(option, decimal.NewFromInt(1000)))
	assert.NoError(t, ValidateAmount(option, decimal.NewFromInt(3000000)))
	assert.ErrorContains(t, ValidateAmount(option, decimal.NewFromInt(999)), "minimum investment")
	assert.ErrorContains(t, ValidateAmount(option, decimal.NewFromInt(3000001)), "maximum investment")

	option.MaxInvestment = decimal.Zero
	assert.NoError(t, ValidateAmount(option, decimal.NewFromInt(100000000)))
}

func TestValidateTenure(t *testing.T) {
	fixed := domain.InvestmentOption{NameEn: "Pensioner Sanchayapatra", Tenure: domain.TenureRange{Min: 5, Max: 5}}
	assert.NoError(t, ValidateTenure(fixed, 5))
	assert.ErrorContains(t, ValidateTenure(fixed, 3), "fixed tenure of 5 years")

	ranged := domain.InvestmentOption{NameEn: "DPS", Tenure: domain.TenureRange{Min: 3, Max: 10}}
	assert.NoError(t, ValidateTenure(ranged, 10))
	assert.ErrorContains(t, ValidateTenure(ranged, 11), "between 3 and 10")
}
