package fanlog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/lixenwraith/config"
)

// Config holds all construction-time settings for a built dispatcher and
// its sinks.
type Config struct {
	// Dispatch settings
	Level string `toml:"level"` // Comma/pipe level list: "info,error", or "all"/"none"

	// Output selection
	EnableConsole bool `toml:"enable_console"` // Mirror records to stdout/stderr
	EnableFile    bool `toml:"enable_file"`    // Write date-named files under Directory

	// File sink settings
	Directory     string `toml:"directory"`
	RetentionDays int64  `toml:"retention_days"` // Days of history kept; 0 keeps only the current day

	// Queue and reporting
	BufferSize          int64 `toml:"buffer_size"`            // Record channel capacity
	DropReportIntervalS int64 `toml:"drop_report_interval_s"` // Interval seconds for drop reports, 0 disables the ticker

	// Formatting
	TimestampFormat string `toml:"timestamp_format"` // Time format for record timestamps
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	Level:               "all",
	EnableConsole:       false,
	EnableFile:          true,
	Directory:           "./logs",
	RetentionDays:       7,
	BufferSize:          1024,
	DropReportIntervalS: 60,
	TimestampFormat:     time.RFC3339,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	// Create a copy to prevent modifications to the original
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from a TOML file and returns a validated Config
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Use lixenwraith/config as a loader
	loader := config.New()

	// Register the struct to enable proper unmarshaling
	if err := loader.RegisterStruct("fanlog.", *cfg); err != nil {
		return nil, fmt.Errorf("failed to register config struct: %w", err)
	}

	// Load from file (a missing file keeps the defaults)
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	// Extract values into our Config struct
	if err := extractConfig(loader, "fanlog.", cfg); err != nil {
		return nil, fmt.Errorf("failed to extract config values: %w", err)
	}

	// Validate the loaded configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		// Get the toml tag to determine the config key
		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		key := prefix + tomlTag

		// Get value from loader
		val, found := loader.Get(key)
		if !found {
			continue // Use default value
		}

		// Set the field value with type conversion
		if err := setFieldValue(fieldValue, val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.Level); err != nil {
		return err
	}

	if c.BufferSize <= 0 {
		return fmtErrorf("buffer_size must be positive: %d", c.BufferSize)
	}

	if c.RetentionDays < 0 {
		return fmtErrorf("retention_days cannot be negative: %d", c.RetentionDays)
	}

	if c.DropReportIntervalS < 0 {
		return fmtErrorf("drop_report_interval_s cannot be negative: %d", c.DropReportIntervalS)
	}

	if strings.TrimSpace(c.TimestampFormat) == "" {
		return fmtErrorf("timestamp_format cannot be empty")
	}

	// Cross-field validations
	if c.EnableFile && strings.TrimSpace(c.Directory) == "" {
		return fmtErrorf("directory cannot be empty when file output is enabled")
	}

	return nil
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}
