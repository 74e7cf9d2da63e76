package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process configuration, read once at startup from the
// environment (with an optional .env file for development).
type Config struct {
	DiscordToken     string        `env:"DISCORD_TOKEN,required"`
	BotPersonalities []string      `env:"BOT_PERSONALITIES" envDefault:"FordBot"`
	StoragePath      string        `env:"STORAGE_PATH" envDefault:"datastore.json"`
	PersonalityFile  string        `env:"PERSONALITY_FILE"`
	MetricsAddr      string        `env:"METRICS_ADDR"` // empty disables the listener
	TickInterval     time.Duration `env:"TICK_INTERVAL" envDefault:"5s"`
	ReplyCooldown    time.Duration `env:"REPLY_COOLDOWN" envDefault:"45s"`
	HourlyReplyQuota int           `env:"HOURLY_REPLY_QUOTA" envDefault:"12"`
	RandomSeed       int64         `env:"RANDOM_SEED"` // 0 = seed from time
}

// New loads configuration from the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] no .env file found, using system environment")
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
