package components

import (
	"context"
	"log/slog"

	"coworking-reservations/internal/infra/memory"
	"coworking-reservations/internal/infra/postgres"
	"coworking-reservations/internal/infra/seed"
	"coworking-reservations/internal/pkg/config"
	"coworking-reservations/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewRepositories,
	),
	fx.Invoke(RegisterSeed),
)

type Repositories struct {
	fx.Out

	Reservations shared.ReservationRepository
	Spaces       shared.SpaceRepository
	Users        shared.UserRepository
}

// NewRepositories picks the store named by STORE_DRIVER.
func NewRepositories(cfg config.Config, pool *pgxpool.Pool) Repositories {
	if cfg.Store.Driver == config.StoreDriverPostgres {
		return Repositories{
			Reservations: postgres.NewReservationRepository(pool),
			Spaces:       postgres.NewSpaceRepository(pool),
			Users:        postgres.NewUserRepository(pool),
		}
	}

	store := memory.NewStore()
	return Repositories{
		Reservations: store.Reservations(),
		Spaces:       store.Spaces(),
		Users:        store.Users(),
	}
}

func RegisterSeed(
	lc fx.Lifecycle,
	cfg config.Config,
	users shared.UserRepository,
	spaces shared.SpaceRepository,
	reservations shared.ReservationRepository,
	logger *slog.Logger,
) {
	if !cfg.Store.SeedData {
		return
	}
	seeder := seed.NewSeeder(users, spaces, reservations, logger)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ds, err := seed.Default()
			if err != nil {
				return err
			}
			return seeder.Run(ctx, ds)
		},
	})
}
