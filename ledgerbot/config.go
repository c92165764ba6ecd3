package ledgerbot

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/guildforge/ledgerbot/ledgerbot/ai"
	"github.com/guildforge/ledgerbot/ledgerbot/config"
	"github.com/guildforge/ledgerbot/ledgerbot/database"
	"github.com/guildforge/ledgerbot/ledgerbot/logger"
	"github.com/guildforge/ledgerbot/ledgerbot/services"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// LoadConfig reads and validates the bot configuration.
func LoadConfig(path string) (*Config, error) {
	cfg, err := ReadConfig(path)
	if err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadConfig reads .env (if any), then the TOML file at path (if any), then
// applies environment overrides and defaults. Nothing is validated.
func ReadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		slog.Warn("Config file not found, using environment only", slog.String("path", path))
	default:
		return nil, fmt.Errorf("failed to open config: %w", err)
	}

	cfg.applyEnv(os.LookupEnv)
	cfg.applyDefaults()
	return &cfg, nil
}

type Config struct {
	Log    logger.Config         `toml:"log"`
	Bot    BotConfig             `toml:"bot"`
	DB     database.DBConfig     `toml:"db"`
	AI     AIConfig              `toml:"ai"`
	Spaces services.SpacesConfig `toml:"spaces"`
}

type BotConfig struct {
	DevGuilds []snowflake.ID `toml:"dev_guilds"`
	Token     string         `toml:"token"`
	Prefix    string         `toml:"prefix"`
}

type AIConfig struct {
	ai.Limits
	APIKey                string  `toml:"api_key"`
	BaseURL               string  `toml:"base_url"`
	Model                 string  `toml:"model"`
	Temperature           float64 `toml:"temperature"`
	RequestTimeoutSeconds int     `toml:"request_timeout_seconds"`
}

func (c AIConfig) Enabled() bool {
	return c.APIKey != ""
}

func (c AIConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	override := func(dst *string, key string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	override(&c.Bot.Token, "DISCORD_TOKEN")
	override(&c.Bot.Prefix, "BOT_PREFIX")
	override(&c.DB.URL, "DATABASE_URL")
	override(&c.AI.APIKey, "OPENAI_API_KEY")
	override(&c.AI.Model, "OPENAI_MODEL")
	override(&c.AI.BaseURL, "OPENAI_BASE_URL")
}

func (c *Config) applyDefaults() {
	if c.Log.Format == "" {
		c.Log.Format = config.LogFormatText
	}
	if c.Bot.Prefix == "" {
		c.Bot.Prefix = config.DefaultPrefix
	}
	if c.DB.PoolSize <= 0 {
		c.DB.PoolSize = 10
	}
	if c.AI.Model == "" {
		c.AI.Model = config.DefaultAIModel
	}
	if c.AI.Temperature == 0 {
		c.AI.Temperature = config.DefaultAITemperature
	}
	if c.AI.RequestTimeoutSeconds <= 0 {
		c.AI.RequestTimeoutSeconds = int(config.DefaultAIRequestTimeout / time.Second)
	}
	if c.AI.UserDaily == 0 {
		c.AI.UserDaily = config.DefaultUserDailyLimit
	}
	if c.AI.GuildDaily == 0 {
		c.AI.GuildDaily = config.DefaultGuildDailyLimit
	}
	if c.AI.MaxInputChars == 0 {
		c.AI.MaxInputChars = config.DefaultMaxInputChars
	}
	if c.AI.MaxOutputTokens == 0 {
		c.AI.MaxOutputTokens = config.DefaultMaxOutputTokens
	}
}

func (c *Config) Validate() error {
	if c.Bot.Token == "" {
		return fmt.Errorf("bot token is required (set [bot] token or DISCORD_TOKEN)")
	}
	if err := c.ValidateDatabase(); err != nil {
		return err
	}
	if err := c.AI.Limits.Validate(); err != nil {
		return fmt.Errorf("invalid [ai] limits: %w", err)
	}
	return nil
}

func (c *Config) ValidateDatabase() error {
	if c.DB.URL == "" && c.DB.Host == "" {
		return fmt.Errorf("database is not configured (set [db] or DATABASE_URL)")
	}
	return nil
}
