package fanlog

import (
	"fmt"
	"strconv"
	"strings"
)

// ApplyOverride applies string key-value overrides to the configuration.
// Each override should be in the format "key=value"; keys match the toml
// tags. All overrides are attempted and their errors collected, so one bad
// entry does not hide the rest.
//
// Example:
//
//	cfg := fanlog.DefaultConfig()
//	err := cfg.ApplyOverride(
//	    "directory=/var/log/app",
//	    "level=info,error",
//	    "retention_days=30",
//	)
func (c *Config) ApplyOverride(overrides ...string) error {
	var errs []error

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if err := applyConfigField(c, key, value); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return combineConfigErrors(errs)
	}

	return nil
}

// combineConfigErrors combines multiple configuration errors into a single error.
func combineConfigErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}

	var sb strings.Builder
	sb.WriteString(diagPrefix + "multiple configuration errors:")
	for i, err := range errs {
		errMsg := err.Error()
		// Remove package prefix from individual errors to avoid duplication
		errMsg = strings.TrimPrefix(errMsg, diagPrefix)
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, errMsg))
	}
	return fmt.Errorf("%s", sb.String())
}

// applyConfigField applies a single key-value override to a Config.
// This is the core field mapping logic for string overrides.
func applyConfigField(cfg *Config, key, value string) error {
	switch key {
	// Dispatch settings
	case "level":
		if _, err := ParseLevel(value); err != nil {
			return err
		}
		cfg.Level = value

	// Output selection
	case "enable_console":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for enable_console '%s': %w", value, err)
		}
		cfg.EnableConsole = boolVal
	case "enable_file":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for enable_file '%s': %w", value, err)
		}
		cfg.EnableFile = boolVal

	// File sink settings
	case "directory":
		cfg.Directory = value
	case "retention_days":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for retention_days '%s': %w", value, err)
		}
		cfg.RetentionDays = intVal

	// Queue and reporting
	case "buffer_size":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for buffer_size '%s': %w", value, err)
		}
		cfg.BufferSize = intVal
	case "drop_report_interval_s":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for drop_report_interval_s '%s': %w", value, err)
		}
		cfg.DropReportIntervalS = intVal

	// Formatting
	case "timestamp_format":
		cfg.TimestampFormat = value

	default:
		return fmtErrorf("unknown configuration key '%s'", key)
	}

	return nil
}
