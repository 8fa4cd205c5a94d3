package services

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"whiteboardLabeler/internal/models"
)

// RedisEventPublisher fans annotation events out on a redis channel for
// downstream consumers.
type RedisEventPublisher struct {
	redis   *redis.Client
	channel string
}

func NewRedisEventPublisher(redis *redis.Client, channel string) *RedisEventPublisher {
	return &RedisEventPublisher{
		redis:   redis,
		channel: channel,
	}
}

func (rp *RedisEventPublisher) Publish(ctx context.Context, event *models.AnnotationEvent) error {
	jsonEvent, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return rp.redis.Publish(ctx, rp.channel, jsonEvent).Err()
}

type NopEventPublisher struct{}

func (NopEventPublisher) Publish(context.Context, *models.AnnotationEvent) error {
	return nil
}
