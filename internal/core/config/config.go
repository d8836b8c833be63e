// Package config handles configuration loading and validation for parley.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/parley/internal/core/clock"
)

// Time format settings.
const (
	TimeFormatAuto = "auto"
	TimeFormat12h  = "12h"
	TimeFormat24h  = "24h"
)

// Config holds the application configuration.
type Config struct {
	TimeFormat         string        `yaml:"time_format"`
	Locale             string        `yaml:"locale"`
	Markdown           bool          `yaml:"markdown"`
	AnimateScroll      bool          `yaml:"animate_scroll"`
	PollInterval       time.Duration `yaml:"poll_interval"`
	MaxMessages        int           `yaml:"max_messages"`
	BubbleWidthPercent int           `yaml:"bubble_width_percent"`
	HistorySize        int           `yaml:"history_size"`
	Theme              Theme         `yaml:"theme"`
	DataDir            string        `yaml:"-"` // set by caller, not from config file
}

// Theme holds the bubble colours as hex strings.
type Theme struct {
	UserBackground string `yaml:"user_background"`
	UserForeground string `yaml:"user_foreground"`
	AIBackground   string `yaml:"ai_background"`
	AIForeground   string `yaml:"ai_foreground"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		TimeFormat:         TimeFormatAuto,
		AnimateScroll:      true,
		PollInterval:       500 * time.Millisecond,
		MaxMessages:        500,
		BubbleWidthPercent: 80,
		HistorySize:        100,
		Theme: Theme{
			UserBackground: "#007AFF",
			UserForeground: "#FFFFFF",
			AIBackground:   "#E9ECEF",
			AIForeground:   "#000000",
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.TimeFormat == "" {
		c.TimeFormat = defaults.TimeFormat
	}
	if c.PollInterval == 0 {
		c.PollInterval = defaults.PollInterval
	}
	if c.MaxMessages == 0 {
		c.MaxMessages = defaults.MaxMessages
	}
	if c.BubbleWidthPercent == 0 {
		c.BubbleWidthPercent = defaults.BubbleWidthPercent
	}
	if c.HistorySize == 0 {
		c.HistorySize = defaults.HistorySize
	}
	if c.Theme.UserBackground == "" {
		c.Theme.UserBackground = defaults.Theme.UserBackground
	}
	if c.Theme.UserForeground == "" {
		c.Theme.UserForeground = defaults.Theme.UserForeground
	}
	if c.Theme.AIBackground == "" {
		c.Theme.AIBackground = defaults.Theme.AIBackground
	}
	if c.Theme.AIForeground == "" {
		c.Theme.AIForeground = defaults.Theme.AIForeground
	}
}

// Clock returns the timestamp formatter selected by time_format and locale.
func (c *Config) Clock() clock.Formatter {
	switch c.TimeFormat {
	case TimeFormat12h:
		return clock.Formatter{Hour12: true}
	case TimeFormat24h:
		return clock.Formatter{}
	}

	locale := c.Locale
	if locale == "" {
		locale = clock.DetectLocale()
	}
	return clock.FromLocale(locale)
}

// ConversationsDir returns the directory holding conversation transcripts.
func (c *Config) ConversationsDir() string {
	return filepath.Join(c.DataDir, "conversations")
}

// HistoryFile returns the path of the compose history file.
func (c *Config) HistoryFile() string {
	return filepath.Join(c.DataDir, "history.json")
}

// ReadMarkersFile returns the path of the per-conversation read markers file.
func (c *Config) ReadMarkersFile() string {
	return filepath.Join(c.DataDir, "read.json")
}
