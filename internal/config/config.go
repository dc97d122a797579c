package config

import (
	"github.com/sanchay/planner/internal/domain"
	"github.com/shopspring/decimal"
)

// AppConfig holds all configuration for the planner
type AppConfig struct {
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging"`
	Output     OutputConfig     `mapstructure:"output" yaml:"output"`
	Store      StoreConfig      `mapstructure:"store" yaml:"store"`
	Projection ProjectionConfig `mapstructure:"projection" yaml:"projection"`
	Tax        TaxConfig        `mapstructure:"tax" yaml:"tax"`
	// CatalogFile replaces the built-in product catalog when set
	CatalogFile string `mapstructure:"catalog_file" yaml:"catalog_file,omitempty"`
}

// LoggingConfig holds logging configuration options. Level is one of debug,
// info, warn or error; Format is json or console.
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	OutputFile string `mapstructure:"output_file" yaml:"output_file,omitempty"`
}

// OutputConfig holds report output options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
}

// Store backends
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// StoreConfig selects where the user's state is persisted
type StoreConfig struct {
	Backend   string `mapstructure:"backend" yaml:"backend"`
	Path      string `mapstructure:"path" yaml:"path,omitempty"`
	RedisAddr string `mapstructure:"redis_addr" yaml:"redis_addr,omitempty"`
	RedisKey  string `mapstructure:"redis_key" yaml:"redis_key,omitempty"`
}

// ProjectionConfig holds projection engine limits. Simulations is the
// number of paths a return range simulation runs.
type ProjectionConfig struct {
	MaxHorizonYears int  `mapstructure:"max_horizon_years" yaml:"max_horizon_years"`
	Simulations     int  `mapstructure:"simulations" yaml:"simulations"`
	Debug           bool `mapstructure:"debug" yaml:"debug"`
}

// TaxConfig holds the withholding table; rates are percentages
type TaxConfig struct {
	CertificateThreshold          float64 `mapstructure:"certificate_threshold" yaml:"certificate_threshold"`
	CertificateLowRatePercent     float64 `mapstructure:"certificate_low_rate_percent" yaml:"certificate_low_rate_percent"`
	CertificateHighRatePercent    float64 `mapstructure:"certificate_high_rate_percent" yaml:"certificate_high_rate_percent"`
	FixedDepositTINRatePercent    float64 `mapstructure:"fixed_deposit_tin_rate_percent" yaml:"fixed_deposit_tin_rate_percent"`
	FixedDepositNonTINRatePercent float64 `mapstructure:"fixed_deposit_non_tin_rate_percent" yaml:"fixed_deposit_non_tin_rate_percent"`
}

// TaxRules converts the configured table into engine rules
func (tc TaxConfig) TaxRules() domain.TaxRules {
	return domain.TaxRules{
		CertificateThreshold:          decimal.NewFromFloat(tc.CertificateThreshold),
		CertificateLowRatePercent:     decimal.NewFromFloat(tc.CertificateLowRatePercent),
		CertificateHighRatePercent:    decimal.NewFromFloat(tc.CertificateHighRatePercent),
		FixedDepositTINRatePercent:    decimal.NewFromFloat(tc.FixedDepositTINRatePercent),
		FixedDepositNonTINRatePercent: decimal.NewFromFloat(tc.FixedDepositNonTINRatePercent),
	}
}
