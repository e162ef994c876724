package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/SinghShreyansh/users-service/internal/core/domain"
)

// LogPublisher writes change events to the log. Used when no broker is configured.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, event domain.ChangeEvent) error {
	p.log.Info().
		Str("entity", event.Entity).
		Str("kind", string(event.Kind)).
		Str("id", event.Payload.ID()).
		Time("occurred_at", event.OccurredAt).
		Msg("entity changed")
	return nil
}
