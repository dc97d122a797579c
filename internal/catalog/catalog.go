package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/sanchay/planner/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed products.yaml
var builtinProducts []byte

// ErrUnknownOption is returned when a product id is not in the catalog
var ErrUnknownOption = errors.New("unknown investment option")

type catalogFile struct {
	Products []domain.InvestmentOption `yaml:"products"`
}

// Catalog is an immutable list of investment products indexed by id
type Catalog struct {
	options []domain.InvestmentOption
	byID    map[string]int
}

// Default loads the catalog compiled into the binary
func Default() (*Catalog, error) {
	return Load(builtinProducts)
}

// LoadFile loads a catalog from a YAML file on disk
func LoadFile(filename string) (*Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", filename, err)
	}
	return Load(data)
}

// Load parses and validates a YAML catalog
func Load(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	if len(file.Products) == 0 {
		return nil, fmt.Errorf("catalog contains no products")
	}

	c := &Catalog{
		options: file.Products,
		byID:    make(map[string]int, len(file.Products)),
	}
	for i, option := range file.Products {
		if err := validateOption(option); err != nil {
			return nil, fmt.Errorf("product %d (%s): %w", i, option.ID, err)
		}
		if _, dup := c.byID[option.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", option.ID)
		}
		c.byID[option.ID] = i
	}
	return c, nil
}

func validateOption(o domain.InvestmentOption) error {
	if o.ID == "" {
		return fmt.Errorf("id is required")
	}
	if o.NameEn == "" {
		return fmt.Errorf("name_en is required")
	}
	switch o.Type {
	case domain.TypeSanchayapatra, domain.TypeDPS, domain.TypeFixedDeposit, domain.TypeMutualFund, domain.TypeStock:
	default:
		return fmt.Errorf("unknown type %q", o.Type)
	}
	switch o.PaymentStructure {
	case domain.PaymentLumpSum, domain.PaymentMonthly:
	default:
		return fmt.Errorf("unknown payment structure %q", o.PaymentStructure)
	}
	if o.Tenure.Min < 1 || o.Tenure.Max < o.Tenure.Min {
		return fmt.Errorf("invalid tenure %d-%d", o.Tenure.Min, o.Tenure.Max)
	}
	if o.MinInvestment.IsNegative() {
		return fmt.Errorf("min_investment cannot be negative")
	}
	if o.MaxInvestment.IsPositive() && o.MaxInvestment.LessThan(o.MinInvestment) {
		return fmt.Errorf("max_investment %s is below min_investment %s", o.MaxInvestment, o.MinInvestment)
	}
	rr := o.ExpectedReturn
	if rr.Min.GreaterThan(rr.Average) || rr.Average.GreaterThan(rr.Max) {
		return fmt.Errorf("expected return must satisfy min <= average <= max, got %s avg %s", rr, rr.Average)
	}
	known := false
	for _, c := range domain.AllTaxCategories {
		if o.TaxCategory == c {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown tax category %q", o.TaxCategory)
	}
	return nil
}

// All returns every product in catalog order
func (c *Catalog) All() []domain.InvestmentOption {
	out := make([]domain.InvestmentOption, len(c.options))
	copy(out, c.options)
	return out
}

// ByID looks up a product by id
func (c *Catalog) ByID(id string) (domain.InvestmentOption, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.InvestmentOption{}, fmt.Errorf("%w: %q", ErrUnknownOption, id)
	}
	return c.options[i], nil
}

// ByType returns the products of one family in catalog order
func (c *Catalog) ByType(t domain.InvestmentType) []domain.InvestmentOption {
	var out []domain.InvestmentOption
	for _, o := range c.options {
		if o.Type == t {
			out = append(out, o)
		}
	}
	return out
}

// ValidateAmount checks amount against the product's investment limits.
// Monthly products are checked per installment. A zero maximum means no cap.
func ValidateAmount(option domain.InvestmentOption, amount decimal.Decimal) error {
	if amount.LessThan(option.MinInvestment) {
		return fmt.Errorf("minimum investment for %s is %s", option.NameEn, option.MinInvestment.StringFixed(0))
	}
	if option.MaxInvestment.IsPositive() && amount.GreaterThan(option.MaxInvestment) {
		return fmt.Errorf("maximum investment for %s is %s", option.NameEn, option.MaxInvestment.StringFixed(0))
	}
	return nil
}

// ValidateTenure checks years against the product's tenure range
func ValidateTenure(option domain.InvestmentOption, years int) error {
	if !option.Tenure.Contains(years) {
		if option.Tenure.Min == option.Tenure.Max {
			return fmt.Errorf("%s has a fixed tenure of %d years", option.NameEn, option.Tenure.Min)
		}
		return fmt.Errorf("tenure for %s must be between %d and %d years", option.NameEn, option.Tenure.Min, option.Tenure.Max)
	}
	return nil
}
