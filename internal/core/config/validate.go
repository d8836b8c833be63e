package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/parley/internal/core/clock"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	switch c.TimeFormat {
	case TimeFormatAuto, TimeFormat12h, TimeFormat24h:
	default:
		errs = errs.Append("time_format", fmt.Errorf("must be one of auto, 12h, 24h; got %q", c.TimeFormat))
	}

	if c.DataDir == "" {
		errs = errs.Append("data_dir", fmt.Errorf("cannot be empty"))
	}

	if c.PollInterval < 0 {
		errs = errs.Append("poll_interval", fmt.Errorf("cannot be negative"))
	}

	if c.MaxMessages < 1 {
		errs = errs.Append("max_messages", fmt.Errorf("must be at least 1"))
	}

	if c.HistorySize < 1 {
		errs = errs.Append("history_size", fmt.Errorf("must be at least 1"))
	}

	if c.BubbleWidthPercent < 20 || c.BubbleWidthPercent > 100 {
		errs = errs.Append("bubble_width_percent", fmt.Errorf("must be between 20 and 100"))
	}

	colors := []struct {
		field string
		value string
	}{
		{"theme.user_background", c.Theme.UserBackground},
		{"theme.user_foreground", c.Theme.UserForeground},
		{"theme.ai_background", c.Theme.AIBackground},
		{"theme.ai_foreground", c.Theme.AIForeground},
	}
	for _, col := range colors {
		if !hexColorPattern.MatchString(col.value) {
			errs = errs.Append(col.field, fmt.Errorf("invalid hex color %q", col.value))
		}
	}

	return errs.ToError()
}

// ValidateDeep performs Validate plus checks that touch the environment: the
// config file and data directory are accessible and the locale parses.
func (c *Config) ValidateDeep(configPath string) error {
	var errs criterio.FieldErrorsBuilder

	if err := c.Validate(); err != nil {
		var fieldErrs criterio.FieldErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			errs = errs.Append(fe.Field, fe.Err)
		}
	}

	if configPath != "" {
		if info, err := os.Stat(configPath); err == nil {
			if info.IsDir() {
				errs = errs.Append("config", fmt.Errorf("%s is a directory, not a file", configPath))
			}
		} else if !os.IsNotExist(err) {
			errs = errs.Append("config", fmt.Errorf("cannot access %s: %w", configPath, err))
		}
	}

	if c.DataDir != "" {
		if info, err := os.Stat(c.DataDir); err == nil {
			if !info.IsDir() {
				errs = errs.Append("data_dir", fmt.Errorf("%s exists but is not a directory", c.DataDir))
			}
		} else if !os.IsNotExist(err) {
			errs = errs.Append("data_dir", fmt.Errorf("cannot access %s: %w", c.DataDir, err))
		}
	}

	if c.Locale != "" {
		if _, err := clock.ParseLocale(c.Locale); err != nil {
			errs = errs.Append("locale", fmt.Errorf("unrecognized locale %q: %w", c.Locale, err))
		}
	}

	return errs.ToError()
}
