package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the per-project configuration file.
const FileName = "kasflow.yaml"

// Config represents the top-level kasflow.yaml configuration.
type Config struct {
	Wallet   WalletConfig   `yaml:"wallet"`
	Explorer ExplorerConfig `yaml:"explorer"`
	Inputs   InputsConfig   `yaml:"inputs"`
	Dip      DipConfig      `yaml:"dip"`
}

// WalletConfig identifies the tracked address.
type WalletConfig struct {
	Address string `yaml:"address"`
}

// ExplorerConfig controls the block-explorer client.
type ExplorerConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxRetries     int    `yaml:"max_retries"`
	MaxPages       int    `yaml:"max_pages"`
	Cutoff         string `yaml:"cutoff"` // "YYYY-MM-DD", empty = full history
}

// InputsConfig names the static input CSVs inside the project dir.
type InputsConfig struct {
	PriceCSV  string `yaml:"price_csv"`
	LabelsCSV string `yaml:"labels_csv"`
}

// DipConfig holds the default thresholds (percent) for the dip command.
type DipConfig struct {
	Drop float64 `yaml:"drop"`
	Rise float64 `yaml:"rise"`
}

// Load reads a kasflow.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(address string) *Config {
	return &Config{
		Wallet: WalletConfig{
			Address: address,
		},
		Explorer: ExplorerConfig{
			BaseURL:        "https://api.kaspa.org",
			TimeoutSeconds: 30,
			MaxRetries:     3,
			MaxPages:       100000,
			Cutoff:         "2022-01-01",
		},
		Inputs: InputsConfig{
			PriceCSV:  "kas-usd-max.csv",
			LabelsCSV: "known_labels.csv",
		},
		Dip: DipConfig{
			Drop: -1.0,
			Rise: 1.0,
		},
	}
}
