package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/farmkart/farmkart-api/internal/config"
)

const broadcastChannel = "notifications:all"

func userChannel(userID uuid.UUID) string {
	return fmt.Sprintf("notifications:%s", userID)
}

// Publisher fans events out through Redis Pub/Sub. Subscribed websocket
// connections pick them up; nobody listening is not an error.
type Publisher struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewPublisher(cfg config.RedisConfig, log zerolog.Logger) (*Publisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return &Publisher{client: client, log: log}, nil
}

func (p *Publisher) Client() *redis.Client { return p.client }

func (p *Publisher) NotifyUser(ctx context.Context, userID uuid.UUID, event Event) {
	if err := p.client.Publish(ctx, userChannel(userID), event.Marshal()).Err(); err != nil {
		p.log.Warn().Err(err).Str("user_id", userID.String()).Str("event", event.Type).
			Msg("notification publish failed")
	}
}

func (p *Publisher) Broadcast(ctx context.Context, event Event) {
	if err := p.client.Publish(ctx, broadcastChannel, event.Marshal()).Err(); err != nil {
		p.log.Warn().Err(err).Str("event", event.Type).Msg("broadcast publish failed")
	}
}

func (p *Publisher) Close() error {
	return p.client.Close()
}
