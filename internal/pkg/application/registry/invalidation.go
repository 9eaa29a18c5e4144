package registry

import (
	"context"
	"fmt"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-redis/redis/v8"
)

const InvalidationChannel string = "registry.invalidate"

const invalidateAll string = "*"

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return client, nil
}

// ListenForInvalidations subscribes to the invalidation channel and drops cached entries
// for every id that is announced. It returns when the subscription is confirmed and keeps
// listening until ctx is cancelled.
func ListenForInvalidations(ctx context.Context, client *redis.Client, r Registry) error {
	log := logging.GetFromContext(ctx).With().Str("channel", InvalidationChannel).Logger()

	pubsub := client.Subscribe(ctx, InvalidationChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return fmt.Errorf("failed to subscribe to %s: %w", InvalidationChannel, err)
	}

	messages := pubsub.Channel()

	go func() {
		defer pubsub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					log.Info().Msg("invalidation subscription closed")
					return
				}

				if msg.Payload == invalidateAll {
					log.Debug().Msg("invalidating all cached registry entries")
					r.InvalidateAll()
					continue
				}

				log.Debug().Str("id", msg.Payload).Msg("invalidating cached registry entries")
				r.Invalidate(msg.Payload)
			}
		}
	}()

	log.Info().Msg("listening for registry invalidations")

	return nil
}

// PublishInvalidation announces that cached data about id is stale. Use "*" to drop everything.
func PublishInvalidation(ctx context.Context, client *redis.Client, id string) error {
	return client.Publish(ctx, InvalidationChannel, id).Err()
}
