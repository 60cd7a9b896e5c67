// Package acrobot parses bot service flags and launches the Telegram poller.
package acrobot

import (
	"context"
	"flag"
	"time"

	entrypoint "github.com/louisbranch/acrobot/internal/platform/cmd"
	"github.com/louisbranch/acrobot/internal/services/acronym/app"
)

// Config holds bot command configuration.
type Config struct {
	DBPath             string `env:"ACROBOT_DB_PATH" envDefault:"acrobot.db"`
	TelegramToken      string `env:"ACROBOT_TELEGRAM_TOKEN"`
	TelegramAPIURL     string `env:"ACROBOT_TELEGRAM_API_URL"`
	PollTimeoutSeconds int    `env:"ACROBOT_POLL_TIMEOUT_SECONDS" envDefault:"30"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.TelegramToken, "token", cfg.TelegramToken, "Telegram bot token")
	fs.IntVar(&cfg.PollTimeoutSeconds, "poll-timeout", cfg.PollTimeoutSeconds, "Long-poll timeout in seconds")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the acronym bot service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceBot, func(runCtx context.Context) error {
		return app.Run(runCtx, app.Config{
			DBPath:         cfg.DBPath,
			TelegramToken:  cfg.TelegramToken,
			TelegramAPIURL: cfg.TelegramAPIURL,
			PollTimeout:    time.Duration(cfg.PollTimeoutSeconds) * time.Second,
		})
	})
}
