package poller

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/beamctl/tpgctl/internal/gauge"
)

// historyDepth caps the per-channel reading list kept in Redis.
const historyDepth = 1000

type readingEnvelope struct {
	Channel  int     `json:"channel"`
	Status   string  `json:"status"`
	Pressure float64 `json:"pressure"`
	Valid    bool    `json:"valid"`
	UnixMS   int64   `json:"unix_ms"`
}

// RedisPublisher fans readings out on pub/sub and keeps a capped
// per-channel history list as backup.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(ctx context.Context, addr, password, channel string, db int) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("poller: redis ping %s: %w", addr, err)
	}
	return &RedisPublisher{client: client, channel: channel}, nil
}

func (p *RedisPublisher) Publish(ctx context.Context, r gauge.Reading) error {
	payload, err := json.Marshal(readingEnvelope{
		Channel:  r.Channel,
		Status:   r.Status.String(),
		Pressure: r.Pressure,
		Valid:    r.Valid,
		UnixMS:   r.At.UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("poller: marshal reading: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("poller: publish reading: %w", err)
	}

	// History list is best effort; pub/sub delivery already succeeded.
	listKey := fmt.Sprintf("tpg:ch%d:readings", r.Channel)
	pipe := p.client.Pipeline()
	pipe.LPush(ctx, listKey, payload)
	pipe.LTrim(ctx, listKey, 0, historyDepth-1)
	_, _ = pipe.Exec(ctx)
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
