package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Data struct {
		CSVPaths  []string `yaml:"csv_paths"`
		ModelPath string   `yaml:"model_path"`
	} `yaml:"data"`
	Realtime struct {
		URL    string `yaml:"url"`
		APIKey string `yaml:"api_key"`
	} `yaml:"realtime"`
	Profile struct {
		RiskScore            int     `yaml:"risk_score"`
		TimeHorizon          string  `yaml:"time_horizon"`
		DiversificationScore float64 `yaml:"diversification_score"`
	} `yaml:"profile"`
	Server struct {
		Port            int `yaml:"port"`
		TopK            int `yaml:"top_k"`
		CacheTTLMinutes int `yaml:"cache_ttl_minutes"`
	} `yaml:"server"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
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
	if v := os.Getenv("MODEL_PATH"); v != "" {
		cfg.Data.ModelPath = v
	}
	if v := os.Getenv("REALTIME_URL"); v != "" {
		cfg.Realtime.URL = v
	}
	if v := os.Getenv("REALTIME_API_KEY"); v != "" {
		cfg.Realtime.APIKey = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}

	// Defaults
	if cfg.Data.ModelPath == "" {
		cfg.Data.ModelPath = "data/model.json"
	}
	if cfg.Profile.RiskScore == 0 {
		cfg.Profile.RiskScore = 50
	}
	if cfg.Profile.TimeHorizon == "" {
		cfg.Profile.TimeHorizon = "medium"
	}
	if cfg.Profile.DiversificationScore == 0 {
		cfg.Profile.DiversificationScore = 0.5
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.TopK == 0 {
		cfg.Server.TopK = 5
	}
	if cfg.Server.CacheTTLMinutes == 0 {
		cfg.Server.CacheTTLMinutes = 60
	}
	if cfg.Schedule.RefreshCron == "" {
		// Weekday mornings, before the session opens.
		cfg.Schedule.RefreshCron = "0 0 7 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stockcompass.db"
	}

	return cfg, nil
}

// Validate checks the fields every command depends on.
func (c *Config) Validate() error {
	if len(c.Data.CSVPaths) == 0 {
		return fmt.Errorf("data.csv_paths is required")
	}
	if c.Data.ModelPath == "" {
		return fmt.Errorf("data.model_path is required")
	}
	switch c.Profile.TimeHorizon {
	case "short", "medium", "long":
	default:
		return fmt.Errorf("profile.time_horizon must be short, medium or long")
	}
	if c.Profile.RiskScore < 0 || c.Profile.RiskScore > 100 {
		return fmt.Errorf("profile.risk_score must be within 0-100")
	}
	return nil
}
