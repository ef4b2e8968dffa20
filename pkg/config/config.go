package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Sources  SourcesConfig `yaml:"sources"`
	Output   OutputConfig  `yaml:"output"`
	LogLevel string        `yaml:"log_level"`
	Progress bool          `yaml:"progress"`
}

type SourcesConfig struct {
	OrdersCSV   string `yaml:"orders_csv"`
	PaymentsCSV string `yaml:"payments_csv"`

	// When DSN is set the tables are read over SQL instead of CSV.
	DSN           string `yaml:"dsn"`
	OrdersTable   string `yaml:"orders_table"`
	PaymentsTable string `yaml:"payments_table"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// Load builds the configuration from defaults, then the YAML file at path
// if it exists, then environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Sources: SourcesConfig{
			OrdersCSV:     "rfm_dataset/olist_orders_dataset.csv",
			PaymentsCSV:   "rfm_dataset/olist_order_payments_dataset.csv",
			OrdersTable:   "orders",
			PaymentsTable: "order_payments",
		},
		Output: OutputConfig{
			Dir: "reports",
		},
		LogLevel: "info",
		Progress: true,
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("RFM_ORDERS_CSV"); v != "" {
		cfg.Sources.OrdersCSV = v
	}
	if v := os.Getenv("RFM_PAYMENTS_CSV"); v != "" {
		cfg.Sources.PaymentsCSV = v
	}
	if v := os.Getenv("RFM_DSN"); v != "" {
		cfg.Sources.DSN = v
	}
	if v := os.Getenv("RFM_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}
