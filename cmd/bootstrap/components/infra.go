package components

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"coworking-reservations/internal/infra/lock"
	"coworking-reservations/internal/infra/messaging"
	"coworking-reservations/internal/pkg/config"
	"coworking-reservations/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var InfraModule = fx.Module("infra",
	fx.Provide(
		NewSpaceLocker,
		NewEventPublisher,
	),
)

func NewSpaceLocker(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.SpaceLocker, error) {
	if cfg.Lock.Driver != config.LockDriverRedis {
		return lock.NewMemoryLocker(cfg.Lock.Wait), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Lock.RedisAddr,
		Password: cfg.Lock.RedisPassword,
		DB:       cfg.Lock.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.Lock.RedisAddr, err)
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	logger.Info("space locks backed by redis", slog.String("addr", cfg.Lock.RedisAddr))
	return lock.NewRedisLocker(client, cfg.Lock.TTL, cfg.Lock.Wait, logger), nil
}

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.EventPublisher {
	if cfg.Events.AMQPURL == "" {
		return messaging.NewLogPublisher(logger)
	}

	publisher := messaging.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Queue, cfg.Events.DialTimeout)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	logger.Info("reservation events published to AMQP", slog.String("queue", cfg.Events.Queue))
	return publisher
}
