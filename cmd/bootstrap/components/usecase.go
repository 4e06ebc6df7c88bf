package components

import (
	"coworking-reservations/internal/domain/reservation"
	"coworking-reservations/internal/pkg/clock"
	"coworking-reservations/internal/pkg/config"
	"coworking-reservations/internal/usecase/commands"
	"coworking-reservations/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewPolicy,
	func(clock clock.Clock, policy reservation.Policy, cfg config.Config) *reservation.Factory {
		return reservation.NewFactory(clock, policy, cfg.Schedule.AutoConfirm)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationCommands,
		commands.NewSpaceCommands,
		commands.NewUserCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewSpaceQueries,
		queries.NewUserQueries,
	),
)

func NewPolicy(cfg config.Config) (reservation.Policy, error) {
	loc, err := cfg.Schedule.Location()
	if err != nil {
		return reservation.Policy{}, err
	}
	policy, err := reservation.NewPolicy(loc,
		cfg.Schedule.OpenHour, cfg.Schedule.CloseHour,
		cfg.Schedule.MinDuration, cfg.Schedule.MaxDuration,
	)
	if err != nil {
		return reservation.Policy{}, err
	}
	policy.SameDayClose = cfg.Schedule.SameDayClose
	return policy, nil
}
