package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pkordes/site-visits/internal/domain"
)

// redisClient is the subset of *redis.Client the publisher uses.
type redisClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisPublisher pushes notifications over Redis pub/sub, one channel per
// recipient.
type RedisPublisher struct {
	client redisClient
}

// NewRedisPublisher returns a publisher over client (normally *redis.Client).
func NewRedisPublisher(client redisClient) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Channel is the pub/sub channel a recipient's live session subscribes to.
func Channel(recipient domain.ProfileID) string {
	return "notifications:" + recipient.String()
}

// Publish implements Publisher. Having no subscribers is not an error.
func (p *RedisPublisher) Publish(ctx context.Context, n domain.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("notify.RedisPublisher.Publish: marshal: %w", err)
	}
	if err := p.client.Publish(ctx, Channel(n.RecipientID), payload).Err(); err != nil {
		return fmt.Errorf("notify.RedisPublisher.Publish: %w", err)
	}
	return nil
}
