package messaging

import (
	"context"
	"log/slog"

	"coworking-reservations/internal/usecase/shared"
)

// LogPublisher records events in the application log when no broker is
// configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event shared.ReservationEvent) error {
	p.logger.InfoContext(ctx, "reservation event",
		slog.String("type", string(event.Type)),
		slog.String("reservation_id", event.ReservationID.String()),
		slog.String("space_id", event.SpaceID.String()),
		slog.String("status", event.Status),
		slog.Time("start_time", event.StartTime),
		slog.Time("end_time", event.EndTime),
	)
	return nil
}
