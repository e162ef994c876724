package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/SinghShreyansh/users-service/internal/core/domain"
)

const defaultChannelPrefix = "users"

// ChangePublisher publishes change events over Redis pub/sub.
// Channel format: <prefix>.<kind>, e.g. users.updated
type ChangePublisher struct {
	client *redis.Client
	prefix string
}

// NewChangePublisher creates a ChangePublisher wrapping the given Redis client.
func NewChangePublisher(client *redis.Client, prefix string) *ChangePublisher {
	if prefix == "" {
		prefix = defaultChannelPrefix
	}
	return &ChangePublisher{client: client, prefix: prefix}
}

// Publish sends the JSON-encoded event. Subscribers that are not listening
// at that moment miss it.
func (p *ChangePublisher) Publish(ctx context.Context, event domain.ChangeEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode change event: %w", err)
	}
	if err := p.client.Publish(ctx, p.Channel(event.Kind), body).Err(); err != nil {
		return fmt.Errorf("publish change event: %w", err)
	}
	return nil
}

// Channel returns the channel events of kind are published on.
func (p *ChangePublisher) Channel(kind domain.ChangeKind) string {
	return p.prefix + "." + string(kind)
}
