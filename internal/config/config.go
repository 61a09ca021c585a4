package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Source struct {
		BaseURL        string `yaml:"base_url"`
		HTMLFile       string `yaml:"html_file"` // offline mode: parse a saved page
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"source"`
	Validation struct {
		MinYield  float64 `yaml:"min_yield"`
		MaxYield  float64 `yaml:"max_yield"`
		MinTenors int     `yaml:"min_tenors"`
	} `yaml:"validation"`
	Schedule struct {
		DailyCron  string `yaml:"daily_cron"`
		WeeklyCron string `yaml:"weekly_cron"`
	} `yaml:"schedule"`
	Output struct {
		Dir       string `yaml:"dir"`
		IndexFile string `yaml:"index_file"`
	} `yaml:"output"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("PHEI_BASE_URL"); v != "" {
		cfg.Source.BaseURL = v
	}
	if v := os.Getenv("PHEI_HTML_FILE"); v != "" {
		cfg.Source.HTMLFile = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("FETCH_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Source.TimeoutSeconds = n
		}
	}

	// Defaults
	if cfg.Source.BaseURL == "" {
		cfg.Source.BaseURL = "https://www.phei.co.id/Data/HPW-dan-Imbal-Hasil"
	}
	if cfg.Source.TimeoutSeconds == 0 {
		cfg.Source.TimeoutSeconds = 30
	}
	if cfg.Validation.MinYield == 0 {
		cfg.Validation.MinYield = 0.0001
	}
	if cfg.Validation.MaxYield == 0 {
		cfg.Validation.MaxYield = 0.5
	}
	if cfg.Validation.MinTenors == 0 {
		cfg.Validation.MinTenors = 3
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 18 * * 1-5" // after PHEI publishes
	}
	if cfg.Schedule.WeeklyCron == "" {
		cfg.Schedule.WeeklyCron = "0 0 9 * * 6"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "data"
	}
	if cfg.Output.IndexFile == "" {
		cfg.Output.IndexFile = "data/archive_index.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/curvewatch.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if c.Source.BaseURL == "" && c.Source.HTMLFile == "" {
		return fmt.Errorf("source.base_url or source.html_file is required")
	}
	if c.Validation.MinYield >= c.Validation.MaxYield {
		return fmt.Errorf("validation.min_yield must be below validation.max_yield")
	}
	if c.Validation.MinTenors < 1 {
		return fmt.Errorf("validation.min_tenors must be at least 1")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	return nil
}
