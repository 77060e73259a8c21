package config

import (
	"log/slog"
	"os"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Data        Data
	Sweep       Sweep
	League      League
	Daemon      Daemon
	TelegramBot TelegramBot
	Results     Results
	LogLevel    slog.Level `envconfig:"LOG_LEVEL" default:"INFO"`
}

type Data struct {
	Dir         string   `envconfig:"DATA_DIR" required:"true"`
	Seasons     []string `envconfig:"SEASONS"`
	BaselineDir string   `envconfig:"BASELINE_DIR" required:"true"`
	OutputDir   string   `envconfig:"OUTPUT_DIR" default:"simulation_output"`
}

type Sweep struct {
	Workers    int    `envconfig:"WORKERS" default:"4"`
	SchemaPath string `envconfig:"SWEEP_SCHEMA"`
	Rounds     int    `envconfig:"ROUNDS" default:"1"`
	Resume     bool   `envconfig:"RESUME"`
	// Seed 0 seeds from the clock.
	Seed int64 `envconfig:"SEED"`
}

type League struct {
	Teams                int `envconfig:"LEAGUE_TEAMS" default:"10"`
	SimulationsPerConfig int `envconfig:"SIMULATIONS_PER_CONFIG" default:"10"`
	DraftPosition        int `envconfig:"DRAFT_POSITION"`
}

type Daemon struct {
	Cron     string `envconfig:"SWEEP_CRON" default:"0 6 * * 2"`
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	Timezone string `envconfig:"TIMEZONE" default:"America/Chicago"`
}

// TelegramBot is optional; the bot is disabled without a token.
type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

func (t TelegramBot) Enabled() bool {
	return t.Token != ""
}

type Results struct {
	DSN string `envconfig:"RESULTS_DSN"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Logger returns a text logger at the configured level.
func (c *Config) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.LogLevel}))
}
