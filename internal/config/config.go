package config

import (
	"os"
	"strconv"

	"pricetable/domain/pricing"
	"pricetable/internal/errors"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Page      PageConfig
	Profiling ProfilingConfig
	LogLevel  string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig describes where the price table and its images live
type DataConfig struct {
	PriceTableFile string
	SheetName      string
	HeaderRows     int
	CSVDelimiter   string
	AssetsDir      string
}

// PageConfig holds the literal texts and images of the price page
type PageConfig struct {
	Title           string                         `yaml:"title"`
	FooterText      string                         `yaml:"footer_text"`
	CurrencyPrefix  string                         `yaml:"currency_prefix"`
	BackgroundImage string                         `yaml:"background_image"`
	NotesFile       string                         `yaml:"notes_file"`
	VehicleImages   map[pricing.VehicleType]string `yaml:"-"`
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// fileOverlay is the optional YAML file named by CONFIG_FILE
type fileOverlay struct {
	Page          PageConfig        `yaml:"page"`
	VehicleImages map[string]string `yaml:"vehicle_images"`
}

// Load reads configuration from environment variables, applies the optional YAML overlay
// and validates the result
func Load() (*Config, error) {
	config := &Config{
		Server:    *loadServerConfig(),
		Data:      *loadDataConfig(),
		Page:      *loadPageConfig(),
		Profiling: *loadProfilingConfig(),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := config.applyFile(path); err != nil {
			return nil, errors.Wrapf(err, "failed to apply config file %s", path)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		PriceTableFile: getEnvOrDefault("PRICE_TABLE_FILE", "Price Table_FCN7_V6.xlsx"),
		SheetName:      getEnvOrDefault("PRICE_TABLE_SHEET", "Table_Price"),
		HeaderRows:     getEnvIntOrDefault("PRICE_TABLE_HEADER_ROWS", 5),
		CSVDelimiter:   getEnvOrDefault("PRICE_TABLE_CSV_DELIMITER", ","),
		AssetsDir:      getEnvOrDefault("ASSETS_DIR", "."),
	}
}

func loadPageConfig() *PageConfig {
	images := make(map[pricing.VehicleType]string, pricing.NumVehicleTypes)
	for _, v := range pricing.AllVehicleTypes() {
		images[v] = v.ImageFile()
	}
	return &PageConfig{
		Title:           getEnvOrDefault("PAGE_TITLE", "FCN7 Simulator"),
		FooterText:      getEnvOrDefault("FOOTER_TEXT", "FCN7 - All rights reserved"),
		CurrencyPrefix:  getEnvOrDefault("CURRENCY_PREFIX", pricing.DefaultCurrencyPrefix),
		BackgroundImage: getEnvOrDefault("BACKGROUND_IMAGE", "Capa_Dashboard.png"),
		NotesFile:       getEnvOrDefault("NOTES_FILE", ""),
		VehicleImages:   images,
	}
}

func loadProfilingConfig() *ProfilingConfig {
	return &ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

// applyFile overlays page texts and vehicle image names from a YAML file. Keys left out
// of the file keep their environment or default values.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var overlay fileOverlay
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return errors.Wrap(err, "failed to parse config file")
	}

	setIfNotEmpty(&c.Page.Title, overlay.Page.Title)
	setIfNotEmpty(&c.Page.FooterText, overlay.Page.FooterText)
	setIfNotEmpty(&c.Page.CurrencyPrefix, overlay.Page.CurrencyPrefix)
	setIfNotEmpty(&c.Page.BackgroundImage, overlay.Page.BackgroundImage)
	setIfNotEmpty(&c.Page.NotesFile, overlay.Page.NotesFile)

	for label, file := range overlay.VehicleImages {
		v, err := pricing.ParseVehicleType(label)
		if err != nil {
			return errors.ConfigInvalid(err.Error())
		}
		c.Page.VehicleImages[v] = file
	}
	return nil
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	if c.Data.PriceTableFile == "" {
		return errors.ConfigInvalid("PRICE_TABLE_FILE is required")
	}
	if port, err := strconv.Atoi(c.Server.Port); err != nil || port <= 0 || port > 65535 {
		return errors.ConfigInvalid("PORT must be a number between 1 and 65535")
	}
	if c.Data.HeaderRows < 0 {
		return errors.ConfigInvalid("PRICE_TABLE_HEADER_ROWS cannot be negative")
	}
	if len([]rune(c.Data.CSVDelimiter)) != 1 {
		return errors.ConfigInvalid("PRICE_TABLE_CSV_DELIMITER must be a single character")
	}
	return nil
}

// CSVDelimiterRune returns the CSV delimiter as a rune
func (d DataConfig) CSVDelimiterRune() rune {
	for _, r := range d.CSVDelimiter {
		return r
	}
	return ','
}

func setIfNotEmpty(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
