package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const ticketChannel = "tickets.events"

// RedisBus broadcasts ticket events over Redis pub/sub so every API instance
// can serve live views regardless of which instance committed a transition.
type RedisBus struct {
	Client *redis.Client
	Logger zerolog.Logger
}

func NewRedisBus(addr, password string, logger zerolog.Logger) *RedisBus {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn().Err(err).Msg("unable to reach redis")
	}
	return &RedisBus{Client: client, Logger: logger}
}

func (b *RedisBus) Close() error {
	return b.Client.Close()
}

func (b *RedisBus) Publish(ctx context.Context, ev TicketEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.Client.Publish(ctx, ticketChannel, payload).Err()
}

func (b *RedisBus) Subscribe(ctx context.Context) (<-chan TicketEvent, func(), error) {
	sub := b.Client.Subscribe(ctx, ticketChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, err
	}

	out := make(chan TicketEvent, 16)
	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			var ev TicketEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				b.Logger.Warn().Err(err).Msg("malformed ticket event")
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	cancel := func() {
		_ = sub.Close()
	}
	return out, cancel, nil
}
