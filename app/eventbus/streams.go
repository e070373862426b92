package eventbus

import (
	"context"
	"fmt"
	"log/slog"

	tournamentevents "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/events"
)

// InitializeStreams creates the streams the application publishes into.
func InitializeStreams(ctx context.Context, bus EventBus, logger *slog.Logger) error {
	streams := []struct {
		name     string
		subjects []string
	}{
		{name: tournamentevents.StreamName, subjects: []string{tournamentevents.StreamSubject}},
	}

	for _, s := range streams {
		if err := bus.CreateStream(ctx, s.name, s.subjects...); err != nil {
			logger.ErrorContext(ctx, "Failed to create JetStream stream", slog.String("stream", s.name), slog.Any("error", err))
			return fmt.Errorf("failed to initialize stream %s: %w", s.name, err)
		}
	}
	return nil
}
