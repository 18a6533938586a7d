package workers

import (
	"context"
	"fmt"

	go_redis "github.com/redis/go-redis/v9"

	"charity-lottery-backend/internal/features/lottery/models"
	"charity-lottery-backend/internal/platform/redis"
)

const (
	DefaultEventsStream = "lottery:events"
	defaultEventsMaxLen = 100_000
)

// StreamPublisher appends lottery events to a capped redis stream
type StreamPublisher struct {
	rdb    *redis.Client
	stream string
	maxLen int64
}

func NewStreamPublisher(rdb *redis.Client, stream string) *StreamPublisher {
	if stream == "" {
		stream = DefaultEventsStream
	}
	return &StreamPublisher{rdb: rdb, stream: stream, maxLen: defaultEventsMaxLen}
}

func (p *StreamPublisher) Publish(ctx context.Context, event models.Event) error {
	err := p.rdb.XAdd(ctx, &go_redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: event.Values(),
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", p.stream, err)
	}
	return nil
}
