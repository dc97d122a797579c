package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to environment overrides, e.g. SANCHAY_LOGGING_LEVEL
const EnvPrefix = "SANCHAY"

// InputParser handles loading of configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// setDefaults registers every key so environment overrides are honoured
// even when the file does not mention them
func setDefaults(v *viper.Viper) {
	d := DefaultConfiguration()
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output_file", d.Logging.OutputFile)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("store.backend", d.Store.Backend)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("store.redis_addr", d.Store.RedisAddr)
	v.SetDefault("store.redis_key", d.Store.RedisKey)
	v.SetDefault("projection.max_horizon_years", d.Projection.MaxHorizonYears)
	v.SetDefault("projection.simulations", d.Projection.Simulations)
	v.SetDefault("projection.debug", d.Projection.Debug)
	v.SetDefault("tax.certificate_threshold", d.Tax.CertificateThreshold)
	v.SetDefault("tax.certificate_low_rate_percent", d.Tax.CertificateLowRatePercent)
	v.SetDefault("tax.certificate_high_rate_percent", d.Tax.CertificateHighRatePercent)
	v.SetDefault("tax.fixed_deposit_tin_rate_percent", d.Tax.FixedDepositTINRatePercent)
	v.SetDefault("tax.fixed_deposit_non_tin_rate_percent", d.Tax.FixedDepositNonTINRatePercent)
	v.SetDefault("catalog_file", d.CatalogFile)
}

// LoadFromFile loads configuration from a YAML file layered over the
// defaults and SANCHAY_* environment variables. An empty filename loads
// defaults and environment only.
func (ip *InputParser) LoadFromFile(filename string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if filename != "" {
		v.SetConfigFile(filename)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
		}
	}

	var config AppConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *AppConfig) error {
	switch strings.ToLower(config.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}
	switch config.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %s", config.Logging.Format)
	}

	switch config.Store.Backend {
	case BackendMemory:
	case BackendFile:
		if config.Store.Path == "" {
			return fmt.Errorf("store path is required for the file backend")
		}
	case BackendRedis:
		if config.Store.RedisAddr == "" {
			return fmt.Errorf("redis address is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown store backend: %s", config.Store.Backend)
	}

	if config.Projection.MaxHorizonYears < 0 {
		return fmt.Errorf("max horizon years cannot be negative")
	}
	if config.Projection.Simulations < 0 {
		return fmt.Errorf("simulations cannot be negative")
	}

	if err := ip.validateTax(&config.Tax); err != nil {
		return fmt.Errorf("tax table validation failed: %w", err)
	}

	return nil
}

func (ip *InputParser) validateTax(tax *TaxConfig) error {
	if tax.CertificateThreshold < 0 {
		return fmt.Errorf("certificate threshold cannot be negative")
	}
	rates := map[string]float64{
		"certificate low rate":       tax.CertificateLowRatePercent,
		"certificate high rate":      tax.CertificateHighRatePercent,
		"fixed deposit TIN rate":     tax.FixedDepositTINRatePercent,
		"fixed deposit non-TIN rate": tax.FixedDepositNonTINRatePercent,
	}
	for name, rate := range rates {
		if rate < 0 || rate > 100 {
			return fmt.Errorf("%s must be between 0 and 100, got %v", name, rate)
		}
	}
	return nil
}

// DefaultConfiguration returns the configuration used when nothing is set
func DefaultConfiguration() *AppConfig {
	return &AppConfig{
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Output: OutputConfig{Format: "console"},
		Store: StoreConfig{
			Backend:  BackendFile,
			Path:     "sanchay-state.json",
			RedisKey: "sanchay:state",
		},
		Projection: ProjectionConfig{MaxHorizonYears: 30, Simulations: 1000},
		Tax: TaxConfig{
			CertificateThreshold:          500000,
			CertificateLowRatePercent:     5,
			CertificateHighRatePercent:    10,
			FixedDepositTINRatePercent:    10,
			FixedDepositNonTINRatePercent: 15,
		},
	}
}

// CreateExampleConfiguration creates an example configuration for documentation
func (ip *InputParser) CreateExampleConfiguration() *AppConfig {
	config := DefaultConfiguration()
	config.Logging.Level = "info"
	config.Store.Path = "data/sanchay-state.json"
	config.Store.RedisAddr = "localhost:6379"
	return config
}

// ExampleYAML renders the example configuration as YAML
func (ip *InputParser) ExampleYAML() ([]byte, error) {
	out, err := yaml.Marshal(ip.CreateExampleConfiguration())
	if err != nil {
		return nil, fmt.Errorf("failed to encode example configuration: %w", err)
	}
	return out, nil
}
