package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/carloom/internal/utils"
)

// Global configuration structure.
type Global struct {
	RawPath     string `mapstructure:"raw_path" yaml:"raw_path"`
	CleanedPath string `mapstructure:"cleaned_path" yaml:"cleaned_path"`
	ListenAddr  string `mapstructure:"listen_addr" yaml:"listen_addr"`

	// Well-known dataset columns. The dashboard degrades per-widget when one
	// is absent; only the filter columns are load-bearing.
	CompanyColumn      string `mapstructure:"company_column" yaml:"company_column"`
	YearColumn         string `mapstructure:"year_column" yaml:"year_column"`
	PriceColumn        string `mapstructure:"price_column" yaml:"price_column"`
	KilometersColumn   string `mapstructure:"kilometers_column" yaml:"kilometers_column"`
	PowerColumn        string `mapstructure:"power_column" yaml:"power_column"`
	FuelColumn         string `mapstructure:"fuel_column" yaml:"fuel_column"`
	TransmissionColumn string `mapstructure:"transmission_column" yaml:"transmission_column"`
	LatitudeColumn     string `mapstructure:"latitude_column" yaml:"latitude_column"`
	LongitudeColumn    string `mapstructure:"longitude_column" yaml:"longitude_column"`

	// Presentation
	ChartWidth  int `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight int `mapstructure:"chart_height" yaml:"chart_height"`
	PreviewRows int `mapstructure:"preview_rows" yaml:"preview_rows"`

	// Server
	ShutdownTimeoutSec int `mapstructure:"shutdown_timeout_sec" yaml:"shutdown_timeout_sec"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.carloom/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".carloom")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("CARLOOM")
	v.AutomaticEnv()

	// Defaults mirror the Cars dataset schema
	v.SetDefault("raw_path", "Cars.csv")
	v.SetDefault("cleaned_path", "Cars_cleaned.csv")
	v.SetDefault("listen_addr", ":8090")
	v.SetDefault("company_column", "Company_Name")
	v.SetDefault("year_column", "Year")
	v.SetDefault("price_column", "Price")
	v.SetDefault("kilometers_column", "Kilometers_Driven")
	v.SetDefault("power_column", "Power_value")
	v.SetDefault("fuel_column", "Fuel_Type")
	v.SetDefault("transmission_column", "Transmission")
	v.SetDefault("latitude_column", "Latitude")
	v.SetDefault("longitude_column", "Longitude")
	v.SetDefault("chart_width", 700)
	v.SetDefault("chart_height", 400)
	v.SetDefault("preview_rows", 25)
	v.SetDefault("shutdown_timeout_sec", 10)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".carloom")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
