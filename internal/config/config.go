package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"

	"mc-control-bot/internal/server"
)

type Config struct {
	TelegramBotToken string  `env:"TELEGRAM_BOT_TOKEN,required"`
	AuthorizedUsers  []int64 `env:"AUTHORIZED_USERS" envSeparator:":"`
	SuperUser        int64   `env:"SUPER_USER"`

	// Backends
	ModernLabel        string `env:"MODERN_LABEL" envDefault:"ATM10"`
	ModernRconAddr     string `env:"MODERN_RCON_ADDR,required"`
	ModernRconPassword string `env:"MODERN_RCON_PASSWORD,required"`
	ModernStatusURL    string `env:"MODERN_STATUS_URL,required"`

	ClassicLabel        string `env:"CLASSIC_LABEL" envDefault:"Классика"`
	ClassicRconAddr     string `env:"CLASSIC_RCON_ADDR,required"`
	ClassicRconPassword string `env:"CLASSIC_RCON_PASSWORD,required"`
	ClassicStatusURL    string `env:"CLASSIC_STATUS_URL,required"`

	// Timings
	BackendTimeout    time.Duration `env:"BACKEND_TIMEOUT" envDefault:"2s"`
	PendingTimeout    time.Duration `env:"PENDING_TIMEOUT" envDefault:"15s"`
	SweepInterval     time.Duration `env:"SWEEP_INTERVAL" envDefault:"10s"`
	SleepCooldown     time.Duration `env:"SLEEP_COOLDOWN" envDefault:"20m"`
	CooldownRetention time.Duration `env:"COOLDOWN_RETENTION" envDefault:"24h"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}

// Servers assembles the configured backend set.
func (c *Config) Servers() []server.Server {
	return []server.Server{
		{
			ID:           server.Modern,
			Label:        c.ModernLabel,
			RconAddr:     c.ModernRconAddr,
			RconPassword: c.ModernRconPassword,
			StatusURL:    c.ModernStatusURL,
		},
		{
			ID:           server.Classic,
			Label:        c.ClassicLabel,
			RconAddr:     c.ClassicRconAddr,
			RconPassword: c.ClassicRconPassword,
			StatusURL:    c.ClassicStatusURL,
		},
	}
}
