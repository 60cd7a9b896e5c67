// Package app wires the acronym bot process: storage, command handling, and
// the Telegram poller.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/louisbranch/acrobot/internal/services/acronym/command"
	"github.com/louisbranch/acrobot/internal/services/acronym/storage/sqlite"
	"github.com/louisbranch/acrobot/internal/services/acronym/telegram"
)

// Config defines the inputs for the bot process.
type Config struct {
	DBPath         string
	TelegramToken  string
	TelegramAPIURL string
	PollTimeout    time.Duration
}

// Run opens the acronym store and polls Telegram until the context ends. The
// store closes deterministically on every exit path.
func Run(ctx context.Context, cfg Config) error {
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open acronym store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close acronym store: %v", err)
		}
	}()

	client, err := telegram.NewClient(cfg.TelegramToken, cfg.TelegramAPIURL, nil)
	if err != nil {
		return fmt.Errorf("configure telegram client: %w", err)
	}

	handler := command.NewHandler(store)
	poller := telegram.NewPoller(client, handler, cfg.PollTimeout)

	log.Printf("acronym bot polling (db=%s)", cfg.DBPath)
	err = poller.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
