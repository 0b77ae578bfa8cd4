package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`

	// Aggregation and rule parameters
	TopStates          int     `mapstructure:"top_states" yaml:"top_states"`
	TechDefaultPrice   float64 `mapstructure:"tech_default_price" yaml:"tech_default_price"`
	TechPriceThreshold float64 `mapstructure:"tech_price_threshold" yaml:"tech_price_threshold"`
	FallbackDiscount   float64 `mapstructure:"fallback_discount" yaml:"fallback_discount"`

	// Synthetic data generation
	GenerateRecords int    `mapstructure:"generate_records" yaml:"generate_records"`
	GenerateOutput  string `mapstructure:"generate_output" yaml:"generate_output"`

	// Extra header spellings per canonical column, e.g. {"category": ["dept"]}
	ColumnAliases map[string][]string `mapstructure:"column_aliases" yaml:"column_aliases,omitempty"`
}

// Defaults returns the configuration used when no file or env overrides exist.
func Defaults() *Global {
	return &Global{
		LogLevel:           "info",
		LogFormat:          "text",
		TopStates:          5,
		TechDefaultPrice:   250,
		TechPriceThreshold: 200,
		FallbackDiscount:   18.5,
		GenerateRecords:    5000,
		GenerateOutput:     "synthetic_ecommerce_data.csv",
	}
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".orderlens"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.orderlens/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
// A .env file in the working directory is applied to the environment first.
func Load(cfgFile string) (*Global, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ORDERLENS")
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("top_states", d.TopStates)
	v.SetDefault("tech_default_price", d.TechDefaultPrice)
	v.SetDefault("tech_price_threshold", d.TechPriceThreshold)
	v.SetDefault("fallback_discount", d.FallbackDiscount)
	v.SetDefault("generate_records", d.GenerateRecords)
	v.SetDefault("generate_output", d.GenerateOutput)
	v.SetDefault("column_aliases", map[string][]string{})

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read; a missing file falls back to env and defaults
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects values the analytics cannot work with.
func (c *Global) Validate() error {
	if c.TopStates <= 0 {
		return fmt.Errorf("invalid top_states: %d (must be > 0)", c.TopStates)
	}
	if c.TechPriceThreshold < 0 || c.TechDefaultPrice < 0 {
		return fmt.Errorf("invalid tech price settings: default %.2f, threshold %.2f", c.TechDefaultPrice, c.TechPriceThreshold)
	}
	if c.FallbackDiscount < 0 || c.FallbackDiscount > 100 {
		return fmt.Errorf("invalid fallback_discount: %.2f (must be 0-100)", c.FallbackDiscount)
	}
	if c.GenerateRecords < 0 {
		return fmt.Errorf("invalid generate_records: %d", c.GenerateRecords)
	}
	return nil
}
