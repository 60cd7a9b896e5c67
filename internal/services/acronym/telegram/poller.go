package telegram

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// commandPrefix is stripped from inbound messages so both "/acro get x"
	// and plain "get x" work.
	commandPrefix = "/acro"

	defaultPollTimeout = 30 * time.Second
	pollRetryBackoff   = 5 * time.Second
)

// MessageHandler turns one inbound message text into a reply.
type MessageHandler interface {
	Handle(ctx context.Context, input string) string
}

// Poller runs the getUpdates long-poll loop and dispatches message text to a
// handler. One poller per bot token; Telegram serializes updates per token.
type Poller struct {
	client      *Client
	handler     MessageHandler
	pollTimeout time.Duration
	tracer      trace.Tracer
}

// NewPoller creates a poller. pollTimeout <= 0 uses the default long-poll
// window.
func NewPoller(client *Client, handler MessageHandler, pollTimeout time.Duration) *Poller {
	if pollTimeout <= 0 {
		pollTimeout = defaultPollTimeout
	}
	return &Poller{
		client:      client,
		handler:     handler,
		pollTimeout: pollTimeout,
		tracer:      otel.Tracer("acrobot/telegram"),
	}
}

// Run polls for updates until the context ends. Poll failures are logged and
// retried after a backoff; the loop only stops on context cancellation.
func (p *Poller) Run(ctx context.Context) error {
	var offset int64
	for {
		updates, err := p.client.GetUpdates(ctx, offset, int(p.pollTimeout.Seconds()))
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("poll updates: %v", err)
			select {
			case <-time.After(pollRetryBackoff):
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			if err := p.dispatch(ctx, update); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				log.Printf("dispatch update %d: %v", update.UpdateID, err)
			}
		}
	}
}

func (p *Poller) dispatch(ctx context.Context, update Update) error {
	if update.Message == nil || strings.TrimSpace(update.Message.Text) == "" {
		return nil
	}

	ctx, span := p.tracer.Start(ctx, "telegram.message",
		trace.WithAttributes(attribute.Int64("telegram.update_id", update.UpdateID)),
	)
	defer span.End()

	reply := p.handler.Handle(ctx, stripCommandPrefix(update.Message.Text))
	return p.client.SendMessage(ctx, update.Message.Chat.ID, reply)
}

// stripCommandPrefix removes a leading /acro (optionally with an @botname
// suffix) so group-mention commands parse the same as direct ones.
func stripCommandPrefix(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, commandPrefix) {
		return trimmed
	}
	rest := trimmed[len(commandPrefix):]
	if strings.HasPrefix(rest, "@") {
		if idx := strings.IndexAny(rest, " \t"); idx >= 0 {
			rest = rest[idx:]
		} else {
			rest = ""
		}
	}
	return strings.TrimSpace(rest)
}
