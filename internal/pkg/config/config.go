package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Scraper  ScraperConfig  `yaml:"scraper"`
	Export   ExportConfig   `yaml:"export"`
	Telegram TelegramConfig `yaml:"telegram"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ScraperConfig struct {
	BaseURL   string `yaml:"base_url"`
	LeagueURL string `yaml:"league_url"`

	// SportPath is the path marker that identifies event detail links inside
	// a results row, e.g. "/american-football/".
	SportPath string `yaml:"sport_path"`

	// PossibleOutcomes is 2 for win/lose sports, 3 where draws happen.
	PossibleOutcomes int `yaml:"possible_outcomes"`

	UserAgent string `yaml:"user_agent"`

	// PageSettle is how long to wait after navigation for client-side
	// rendering before probing the page. There is no network-idle signal.
	PageSettle time.Duration `yaml:"page_settle"`

	NavRetries int           `yaml:"nav_retries"`
	DNSBackoff time.Duration `yaml:"dns_backoff"`

	// PercentTimeout bounds the poll for the public-betting percentage.
	PercentTimeout time.Duration `yaml:"percent_timeout"`

	// DebugDir, when set, receives raw rendered HTML dumps.
	DebugDir string `yaml:"debug_dir"`
}

type ExportConfig struct {
	OutputPath string `yaml:"output_path"`
}

type TelegramConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // optional JSON log file
}

func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	s := &c.Scraper
	if s.BaseURL == "" {
		s.BaseURL = "https://www.oddsportal.com"
	}
	if s.PossibleOutcomes == 0 {
		s.PossibleOutcomes = 2
	}
	if s.PageSettle <= 0 {
		s.PageSettle = 3 * time.Second
	}
	if s.NavRetries <= 0 {
		s.NavRetries = 3
	}
	if s.DNSBackoff <= 0 {
		s.DNSBackoff = 5 * time.Second
	}
	if s.PercentTimeout <= 0 {
		s.PercentTimeout = 10 * time.Second
	}
	if c.Export.OutputPath == "" {
		c.Export.OutputPath = "games.json"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c *Config) validate() error {
	if c.Scraper.PossibleOutcomes != 2 && c.Scraper.PossibleOutcomes != 3 {
		return fmt.Errorf("scraper.possible_outcomes must be 2 or 3, got %d", c.Scraper.PossibleOutcomes)
	}
	if c.Telegram.Enabled && c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required when telegram.enabled is true")
	}
	return nil
}
