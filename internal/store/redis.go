package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const bridgeChannel = "talentflow:changes"

// bridgeMessage is the wire form of an Event on the Redis channel. The
// instance id lets a bridge skip events it published itself.
type bridgeMessage struct {
	Instance string `json:"instance"`
	Event    Event  `json:"event"`
}

// RedisBridge mirrors local change events onto a Redis pub/sub channel and
// republishes remote events locally, so live queries on one engine instance
// recompute when another instance commits a write.
type RedisBridge struct {
	client   *redis.Client
	bus      *Bus
	instance string
	cancel   func()
}

// NewRedisBridge connects to Redis and verifies the connection
func NewRedisBridge(ctx context.Context, address, password string, bus *Bus) (*RedisBridge, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisBridge{
		client:   client,
		bus:      bus,
		instance: uuid.NewString(),
	}, nil
}

// Start begins forwarding in both directions until the context is cancelled
func (b *RedisBridge) Start(ctx context.Context) {
	events, cancel := b.bus.Subscribe()
	b.cancel = cancel

	go b.forwardLocal(ctx, events)
	go b.forwardRemote(ctx)

	slog.Info("redis change-event bridge started", "channel", bridgeChannel, "instance", b.instance)
}

func (b *RedisBridge) forwardLocal(ctx context.Context, events <-chan Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Origin != "" {
				continue
			}
			payload, err := json.Marshal(bridgeMessage{Instance: b.instance, Event: ev})
			if err != nil {
				continue
			}
			if err := b.client.Publish(ctx, bridgeChannel, payload).Err(); err != nil {
				slog.Warn("failed to publish change event to redis", "error", err)
			}
		}
	}
}

func (b *RedisBridge) forwardRemote(ctx context.Context) {
	sub := b.client.Subscribe(ctx, bridgeChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var bm bridgeMessage
			if err := json.Unmarshal([]byte(msg.Payload), &bm); err != nil {
				slog.Warn("dropping malformed change event from redis", "error", err)
				continue
			}
			if bm.Instance == b.instance {
				continue
			}
			ev := bm.Event
			ev.Origin = bm.Instance
			b.bus.Publish(ev)
		}
	}
}

// Close releases the bus subscription and the Redis connection
func (b *RedisBridge) Close() error {
	if b.cancel != nil {
		b.cancel()
	}
	return b.client.Close()
}
