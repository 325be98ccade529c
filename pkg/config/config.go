// Package config loads the application configuration from the environment.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// DefaultSheetName is the sheet/tab the ledger writes to when GSHEETS_NAME is unset.
const DefaultSheetName = "Transactions"

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// TelegramToken is the bot credential issued by BotFather.
	// Environment variable: TELEGRAM_BOT_TOKEN
	TelegramToken string `koanf:"TELEGRAM_BOT_TOKEN"`

	// GSheetsID is the ID of the spreadsheet holding the ledger.
	// Environment variable: GSHEETS_ID
	GSheetsID string `koanf:"GSHEETS_ID"`

	// GSheetsName is the name of the sheet/tab within the spreadsheet.
	// Environment variable: GSHEETS_NAME
	GSheetsName string `koanf:"GSHEETS_NAME"`

	// AllowedUserID is the single Telegram user the bot answers to.
	// Environment variable: ALLOWED_USER_ID
	AllowedUserID int64 `koanf:"ALLOWED_USER_ID"`
}

// Load reads the configuration from the process environment. A local .env
// file is merged in first when present; a missing .env is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", nil), nil); err != nil {
		return nil, fmt.Errorf("loading config from environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true}); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.GSheetsName == "" {
		cfg.GSheetsName = DefaultSheetName
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is required")
	}
	if c.GSheetsID == "" {
		return fmt.Errorf("GSHEETS_ID environment variable is required")
	}
	if c.AllowedUserID == 0 {
		return fmt.Errorf("ALLOWED_USER_ID environment variable is required")
	}
	return nil
}
