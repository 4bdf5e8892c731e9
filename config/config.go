package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rustyeddy/etfdesk/sizing"
	"github.com/rustyeddy/etfdesk/strategy"
	"github.com/rustyeddy/etfdesk/volume"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config is the complete process configuration. Amounts are plain
// numbers here; the converters hand the core packages exact decimals.
type Config struct {
	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
	Volume   VolumeConfig   `json:"volume" yaml:"volume"`
	Sizing   SizingConfig   `json:"sizing" yaml:"sizing"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Store    StoreConfig    `json:"store" yaml:"store"`
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch"`
}

// StrategyConfig contains the recommendation pipeline tunables.
type StrategyConfig struct {
	TopRanks           int     `json:"top_ranks" yaml:"top_ranks"`
	AveragingThreshold float64 `json:"averaging_threshold" yaml:"averaging_threshold"`
	ProfitThreshold    float64 `json:"profit_threshold" yaml:"profit_threshold"`
	MaxOrderQuantity   int64   `json:"max_order_quantity" yaml:"max_order_quantity"`
	PriceCeiling       float64 `json:"price_ceiling" yaml:"price_ceiling"`
}

// VolumeConfig contains the liquidity filter parameters.
type VolumeConfig struct {
	Threshold int64 `json:"threshold" yaml:"threshold"`
	Enabled   bool  `json:"enabled" yaml:"enabled"`
}

// SizingConfig contains the position sizing parameters.
type SizingConfig struct {
	DefaultPerTrade float64            `json:"default_per_trade" yaml:"default_per_trade"`
	MinPerTrade     float64            `json:"min_per_trade" yaml:"min_per_trade"`
	MaxPerTrade     float64            `json:"max_per_trade" yaml:"max_per_trade"`
	MinQuantity     int64              `json:"min_quantity" yaml:"min_quantity"`
	MaxQuantity     int64              `json:"max_quantity" yaml:"max_quantity"`
	BufferPercent   float64            `json:"buffer_percent" yaml:"buffer_percent"`
	RoundDown       bool               `json:"round_down" yaml:"round_down"`
	Presets         map[string]float64 `json:"presets,omitempty" yaml:"presets,omitempty"`
}

// JournalConfig selects the transaction journal backend.
type JournalConfig struct {
	Type    string `json:"type" yaml:"type"` // "sqlite", "csv" or "none"
	DBPath  string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	CSVPath string `json:"csv_path,omitempty" yaml:"csv_path,omitempty"`
}

// StoreConfig locates the state snapshot.
type StoreConfig struct {
	Path string `json:"path" yaml:"path"`
}

// FetchConfig contains market-data client parameters.
type FetchConfig struct {
	BaseURL        string `json:"base_url" yaml:"base_url"`
	SymbolSuffix   string `json:"symbol_suffix" yaml:"symbol_suffix"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// LoadFromFile loads configuration from a file (YAML first, JSON fallback).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Strategy.TopRanks <= 0 {
		return fmt.Errorf("strategy.top_ranks must be positive")
	}
	if c.Strategy.AveragingThreshold >= 0 {
		return fmt.Errorf("strategy.averaging_threshold must be negative")
	}
	if c.Strategy.ProfitThreshold <= 0 {
		return fmt.Errorf("strategy.profit_threshold must be positive")
	}
	if c.Strategy.MaxOrderQuantity <= 0 {
		return fmt.Errorf("strategy.max_order_quantity must be positive")
	}
	if c.Strategy.PriceCeiling <= 0 {
		return fmt.Errorf("strategy.price_ceiling must be positive")
	}
	if c.Volume.Threshold <= 0 {
		return fmt.Errorf("volume.threshold must be positive")
	}
	if c.Sizing.MinPerTrade <= 0 || c.Sizing.MaxPerTrade < c.Sizing.MinPerTrade {
		return fmt.Errorf("sizing per-trade bounds invalid")
	}
	if c.Sizing.DefaultPerTrade < c.Sizing.MinPerTrade || c.Sizing.DefaultPerTrade > c.Sizing.MaxPerTrade {
		return fmt.Errorf("sizing.default_per_trade outside [min, max]")
	}
	if c.Sizing.MinQuantity <= 0 || c.Sizing.MaxQuantity < c.Sizing.MinQuantity {
		return fmt.Errorf("sizing quantity bounds invalid")
	}
	if c.Sizing.BufferPercent < 0 {
		return fmt.Errorf("sizing.buffer_percent must not be negative")
	}
	switch c.Journal.Type {
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for sqlite journal")
		}
	case "csv":
		if c.Journal.CSVPath == "" {
			return fmt.Errorf("journal.csv_path required for csv journal")
		}
	case "none":
	default:
		return fmt.Errorf("journal.type must be 'sqlite', 'csv' or 'none'")
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Strategy: StrategyConfig{
			TopRanks:           5,
			AveragingThreshold: -2.5,
			ProfitThreshold:    6.0,
			MaxOrderQuantity:   10_000,
			PriceCeiling:       100_000,
		},
		Volume: VolumeConfig{
			Threshold: volume.DefaultThreshold,
			Enabled:   true,
		},
		Sizing: SizingConfig{
			DefaultPerTrade: 10_000,
			MinPerTrade:     1_000,
			MaxPerTrade:     100_000,
			MinQuantity:     1,
			MaxQuantity:     1_000,
			BufferPercent:   2.0,
			RoundDown:       true,
			Presets: map[string]float64{
				"conservative": 5_000,
				"balanced":     10_000,
				"aggressive":   25_000,
			},
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./etfdesk.sqlite",
		},
		Store: StoreConfig{
			Path: "./etfdesk.json",
		},
		Fetch: FetchConfig{
			BaseURL:        "https://query1.finance.yahoo.com",
			SymbolSuffix:   ".NS",
			TimeoutSeconds: 30,
		},
	}
}

// StrategyParams converts the config into strategy parameters.
func (c *Config) StrategyParams() strategy.Params {
	return strategy.Params{
		TopRanks:           c.Strategy.TopRanks,
		AveragingThreshold: decimal.NewFromFloat(c.Strategy.AveragingThreshold),
		ProfitThreshold:    decimal.NewFromFloat(c.Strategy.ProfitThreshold),
		MaxOrderQuantity:   c.Strategy.MaxOrderQuantity,
		PriceCeiling:       decimal.NewFromFloat(c.Strategy.PriceCeiling),
	}
}

// SizingConfig converts the config into the sizer's exact-decimal form.
func (c *Config) SizingConfig() sizing.Config {
	out := sizing.Config{
		DefaultPerTrade: decimal.NewFromFloat(c.Sizing.DefaultPerTrade),
		MinPerTrade:     decimal.NewFromFloat(c.Sizing.MinPerTrade),
		MaxPerTrade:     decimal.NewFromFloat(c.Sizing.MaxPerTrade),
		MinQuantity:     c.Sizing.MinQuantity,
		MaxQuantity:     c.Sizing.MaxQuantity,
		BufferPercent:   decimal.NewFromFloat(c.Sizing.BufferPercent),
		RoundDown:       c.Sizing.RoundDown,
	}
	if len(c.Sizing.Presets) > 0 {
		out.Presets = make(map[string]decimal.Decimal, len(c.Sizing.Presets))
		for name, amount := range c.Sizing.Presets {
			out.Presets[name] = decimal.NewFromFloat(amount)
		}
	}
	return out
}
