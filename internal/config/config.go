// Package config handles application configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	// SourcePath is the spreadsheet file to watch (.xlsx or .xls).
	SourcePath string `yaml:"source_path"`
	// TimeColumn is the header cell value of the column holding each
	// row's timestamp.
	TimeColumn string `yaml:"time_column"`
	// ContentColumns are the header cell values of the columns carried
	// into extracted records, in display order. The first one doubles as
	// the name-like column for change detection.
	ContentColumns []string `yaml:"content_columns"`
	// IntervalSeconds is the background poll interval.
	IntervalSeconds int `yaml:"interval_seconds"`
	// CachePath is where the daily extraction cache is stored.
	CachePath string `yaml:"cache_path"`
	// JournalPath is the SQLite database recording poll outcomes.
	JournalPath string `yaml:"journal_path"`
	LogLevel    string `yaml:"log_level"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.normalize()

	if cfg.SourcePath == "" {
		return nil, fmt.Errorf("source_path is required")
	}
	if cfg.TimeColumn == "" {
		return nil, fmt.Errorf("time_column is required")
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	if c.IntervalSeconds <= 0 {
		c.IntervalSeconds = 300
	}
	if c.CachePath == "" {
		c.CachePath = "./data/cache.json"
	}
	if c.JournalPath == "" {
		c.JournalPath = "./data/journal.db"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Interval returns the poll interval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// NameColumn returns the column whose value identifies a record, the
// first configured content column.
func (c *Config) NameColumn() string {
	if len(c.ContentColumns) == 0 {
		return ""
	}
	return c.ContentColumns[0]
}
