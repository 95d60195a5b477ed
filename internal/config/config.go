package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is everything the client reads from its environment.
type Config struct {
	AuthorityURL string        `env:"WEREWOLF_AUTHORITY_URL" envDefault:"ws://localhost:8000/ws"`
	ListenAddr   string        `env:"WEREWOLF_LISTEN_ADDR" envDefault:":8080"`
	DatabaseURL  string        `env:"WEREWOLF_DATABASE_URL"` // empty keeps replays in memory
	LogLevel     string        `env:"WEREWOLF_LOG_LEVEL" envDefault:"info"`
	LogDev       bool          `env:"WEREWOLF_LOG_DEV" envDefault:"false"`
	InboxSize    int           `env:"WEREWOLF_INBOX_SIZE" envDefault:"64"`
	OutboxSize   int           `env:"WEREWOLF_OUTBOX_SIZE" envDefault:"16"`
	WriteTimeout time.Duration `env:"WEREWOLF_WRITE_TIMEOUT" envDefault:"3s"`
}

var ErrInvalidSize = errors.New("queue sizes must be positive")

// Load reads the optional dotenv files, then the environment.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}
	return Parse()
}

func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.InboxSize <= 0 || cfg.OutboxSize <= 0 {
		return Config{}, ErrInvalidSize
	}
	return cfg, nil
}
